// Package auth owns administrator authentication: login, session issuance
// and validation, logout, permission resolution and admin provisioning.
//
// The identity provider only proves who a caller is; capability comes from an
// active row in the admin directory. A provider-authenticated identity with
// no such row is signed out again and denied.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/RommelSharma23/travel-admin-sub001/internal/identity"
	"github.com/RommelSharma23/travel-admin-sub001/internal/models"
	"github.com/RommelSharma23/travel-admin-sub001/internal/session"
	"github.com/RommelSharma23/travel-admin-sub001/internal/settings"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Options configures a Service.
type Options struct {
	SessionLifetime time.Duration // Fallback lifetime; settings may override. Defaults to 24h.
	Production      bool          // Suppresses detailed failure logs.
}

// RequestMeta carries per-request attribution for the activity log.
type RequestMeta struct {
	UserAgent string
}

// Service implements administrator authentication over an identity provider,
// the admin directory, and a session store. Construct one at startup and
// pass it by reference; it holds no per-request state.
type Service struct {
	provider identity.Provider
	dir      Directory
	store    session.Store
	recorder ActivityRecorder
	opts     Options

	now func() time.Time
}

// NewService constructs a Service.
func NewService(provider identity.Provider, dir Directory, store session.Store, recorder ActivityRecorder, opts Options) *Service {
	if opts.SessionLifetime <= 0 {
		opts.SessionLifetime = 24 * time.Hour
	}
	return &Service{
		provider: provider,
		dir:      dir,
		store:    store,
		recorder: recorder,
		opts:     opts,
		now:      time.Now,
	}
}

// Login authenticates an administrator and opens a session. On success it
// returns the profile snapshot and the opaque session id the client presents
// on later calls.
//
// Credential rejections are uniformly ErrInvalidCredentials; a valid identity
// without an active directory profile is signed out of the provider and
// denied with ErrAccessDenied.
func (s *Service) Login(ctx context.Context, email, password string, meta RequestMeta) (*models.AdminProfile, string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	signIn, errSignIn := s.provider.SignInWithPassword(ctx, email, password)
	if errSignIn != nil {
		s.logDetail("login: provider rejected sign-in", errSignIn)
		return nil, "", ErrInvalidCredentials
	}

	profile, errFind := s.dir.FindActiveByProviderUserID(ctx, signIn.User.ID)
	if errFind != nil {
		s.logDetail("login: directory lookup failed", errFind)
		s.signOutQuiet(ctx, signIn.Token)
		return nil, "", ErrInternal
	}
	if profile == nil {
		// Valid identity, but not an administrator. Do not leave a dangling
		// provider session behind.
		s.signOutQuiet(ctx, signIn.Token)
		return nil, "", ErrAccessDenied
	}

	loginTime := s.now().UTC()
	if errTouch := s.dir.TouchLastLogin(ctx, profile.ID, loginTime); errTouch != nil {
		log.Warnf("login: last_login update failed for %s: %v", profile.ID, errTouch)
	} else {
		touched := loginTime
		profile.LastLogin = &touched
	}

	sessionID, errID := session.NewID()
	if errID != nil {
		s.logDetail("login: session id generation failed", errID)
		s.signOutQuiet(ctx, signIn.Token)
		return nil, "", ErrInternal
	}

	sess := &session.Session{
		User:          *profile,
		LoginTime:     loginTime,
		ProviderToken: signIn.Token,
	}
	if errSet := s.store.Set(ctx, sessionID, sess, s.lifetime()); errSet != nil {
		s.logDetail("login: session persist failed", errSet)
		s.signOutQuiet(ctx, signIn.Token)
		return nil, "", ErrInternal
	}

	s.record(ctx, ActivityEntry{
		AdminProfileID: profile.ID,
		Action:         "login",
		UserAgent:      meta.UserAgent,
	})

	snapshot := *profile
	return &snapshot, sessionID, nil
}

// CurrentUser resolves a session id to the profile snapshot taken at login.
// It returns nil - never an error - when there is no session, the store is
// unreachable, the record is unreadable, the session has outlived its
// lifetime, or the profile has since been deactivated. Expiry detection
// tears the session down the same way Logout does.
func (s *Service) CurrentUser(ctx context.Context, sessionID string) *models.AdminProfile {
	if strings.TrimSpace(sessionID) == "" || s.store == nil {
		return nil
	}
	if !s.store.Available(ctx) {
		return nil
	}

	sess, errGet := s.store.Get(ctx, sessionID)
	if errGet != nil {
		s.logDetail("session: read failed", errGet)
		return nil
	}
	if sess == nil {
		return nil
	}

	if s.now().Sub(sess.LoginTime) > s.lifetime() {
		s.teardown(ctx, sessionID, sess.ProviderToken)
		return nil
	}

	// A deactivated or deleted profile loses access on the next read rather
	// than at the session's natural expiry.
	current, errFind := s.dir.GetByID(ctx, sess.User.ID)
	if errFind != nil {
		// Directory unavailable: keep serving the login-time snapshot.
		s.logDetail("session: directory re-check failed", errFind)
	} else if current == nil || !current.IsActive {
		s.teardown(ctx, sessionID, sess.ProviderToken)
		return nil
	}

	snapshot := sess.User
	return &snapshot
}

// Logout removes the local session unconditionally and asks the provider to
// invalidate its side best-effort.
func (s *Service) Logout(ctx context.Context, sessionID string) {
	if strings.TrimSpace(sessionID) == "" || s.store == nil {
		return
	}

	providerToken := ""
	if sess, errGet := s.store.Get(ctx, sessionID); errGet == nil && sess != nil {
		providerToken = sess.ProviderToken
	}
	s.teardown(ctx, sessionID, providerToken)
}

// HasPermission reports whether the profile's role grants the permission tag.
// Nil and inactive profiles hold no permissions; unknown roles resolve to an
// empty set.
func (s *Service) HasPermission(profile *models.AdminProfile, tag string) bool {
	if profile == nil || !profile.IsActive {
		return false
	}
	return roleAllows(profile.Role, tag)
}

// CreateAdminInput holds the fields for provisioning a new administrator.
type CreateAdminInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

// CreateAdminUser provisions a provider identity plus a directory profile.
// The super-admin precondition is enforced by the caller, not here. If the
// directory insert fails after the identity was created, the identity is
// deleted again so no orphaned identity remains.
func (s *Service) CreateAdminUser(ctx context.Context, input CreateAdminInput, createdBy string, meta RequestMeta) (*models.AdminProfile, error) {
	if _, ok := rolePermissions[input.Role]; !ok {
		return nil, ErrProvisioningFailed
	}

	user, errCreate := s.provider.CreateUser(ctx, input.Email, input.Password, true)
	if errCreate != nil {
		s.logDetail("create admin: provider create failed", errCreate)
		return nil, ErrProvisioningFailed
	}

	profile := &models.AdminProfile{
		ID:             uuid.NewString(),
		ProviderUserID: user.ID,
		Email:          user.Email,
		FirstName:      strings.TrimSpace(input.FirstName),
		LastName:       strings.TrimSpace(input.LastName),
		Role:           input.Role,
		IsActive:       true,
		CreatedBy:      &createdBy,
	}
	if errInsert := s.dir.Insert(ctx, profile); errInsert != nil {
		s.logDetail("create admin: directory insert failed", errInsert)
		if errDelete := s.provider.DeleteUser(ctx, user.ID); errDelete != nil {
			log.Warnf("create admin: compensation delete for %s failed: %v", user.ID, errDelete)
		}
		return nil, ErrProvisioningFailed
	}

	s.record(ctx, ActivityEntry{
		AdminProfileID: createdBy,
		Action:         "create_user",
		Table:          models.AdminProfile{}.TableName(),
		RecordID:       profile.ID,
		Changes:        map[string]any{"email": profile.Email, "role": profile.Role},
		UserAgent:      meta.UserAgent,
	})

	snapshot := *profile
	return &snapshot, nil
}

// lifetime returns the effective session lifetime, preferring the DB setting.
func (s *Service) lifetime() time.Duration {
	return settings.SessionLifetime(s.opts.SessionLifetime)
}

// teardown removes the local session and signs the provider session out
// best-effort.
func (s *Service) teardown(ctx context.Context, sessionID, providerToken string) {
	if errRemove := s.store.Remove(ctx, sessionID); errRemove != nil {
		log.Warnf("session: remove %s failed: %v", sessionID, errRemove)
	}
	if providerToken != "" {
		s.signOutQuiet(ctx, providerToken)
	}
}

// signOutQuiet asks the provider to invalidate a session and swallows any
// failure.
func (s *Service) signOutQuiet(ctx context.Context, token string) {
	if errSignOut := s.provider.SignOut(ctx, token); errSignOut != nil {
		log.Warnf("provider sign-out failed: %v", errSignOut)
	}
}

// record appends an activity entry when a recorder is configured.
func (s *Service) record(ctx context.Context, entry ActivityEntry) {
	if s.recorder == nil {
		return
	}
	s.recorder.Record(ctx, entry)
}

// logDetail logs an internal failure; the detail is dropped in production.
func (s *Service) logDetail(msg string, err error) {
	if s.opts.Production {
		log.Warn(msg)
		return
	}
	log.Warnf("%s: %v", msg, err)
}
