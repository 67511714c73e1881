package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/RommelSharma23/travel-admin-sub001/internal/identity"
	"github.com/RommelSharma23/travel-admin-sub001/internal/models"
	"github.com/RommelSharma23/travel-admin-sub001/internal/session"
)

// fakeProvider is an in-memory identity.Provider that counts side effects.
type fakeProvider struct {
	passwords map[string]string // email -> password
	ids       map[string]string // email -> provider user id

	signOutCalls int
	signOutErr   error
	createErr    error
	deleteCalls  int
	deleteErr    error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{passwords: map[string]string{}, ids: map[string]string{}}
}

func (p *fakeProvider) addUser(email, password, id string) {
	p.passwords[email] = password
	p.ids[email] = id
}

func (p *fakeProvider) SignInWithPassword(_ context.Context, email, password string) (*identity.SignInResult, error) {
	stored, ok := p.passwords[email]
	if !ok || stored != password {
		return nil, identity.ErrBadCredentials
	}
	return &identity.SignInResult{
		User:  identity.User{ID: p.ids[email], Email: email},
		Token: "tok-" + p.ids[email],
	}, nil
}

func (p *fakeProvider) SignOut(_ context.Context, _ string) error {
	p.signOutCalls++
	return p.signOutErr
}

func (p *fakeProvider) CreateUser(_ context.Context, email, _ string, _ bool) (*identity.User, error) {
	if p.createErr != nil {
		return nil, p.createErr
	}
	id := "prov-" + email
	p.ids[email] = id
	return &identity.User{ID: id, Email: email}, nil
}

func (p *fakeProvider) DeleteUser(_ context.Context, _ string) error {
	p.deleteCalls++
	return p.deleteErr
}

// fakeDirectory is an in-memory Directory.
type fakeDirectory struct {
	profiles  map[string]*models.AdminProfile // by profile id
	insertErr error
	findErr   error
	touchErr  error
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{profiles: map[string]*models.AdminProfile{}}
}

func (d *fakeDirectory) FindActiveByProviderUserID(_ context.Context, providerUserID string) (*models.AdminProfile, error) {
	if d.findErr != nil {
		return nil, d.findErr
	}
	for _, profile := range d.profiles {
		if profile.ProviderUserID == providerUserID && profile.IsActive {
			copied := *profile
			return &copied, nil
		}
	}
	return nil, nil
}

func (d *fakeDirectory) GetByID(_ context.Context, id string) (*models.AdminProfile, error) {
	profile, ok := d.profiles[id]
	if !ok {
		return nil, nil
	}
	copied := *profile
	return &copied, nil
}

func (d *fakeDirectory) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	if d.touchErr != nil {
		return d.touchErr
	}
	if profile, ok := d.profiles[id]; ok {
		touched := at
		profile.LastLogin = &touched
	}
	return nil
}

func (d *fakeDirectory) Insert(_ context.Context, profile *models.AdminProfile) error {
	if d.insertErr != nil {
		return d.insertErr
	}
	copied := *profile
	d.profiles[profile.ID] = &copied
	return nil
}

// recordedEntry captures ActivityRecorder calls.
type fakeRecorder struct {
	entries []ActivityEntry
}

func (r *fakeRecorder) Record(_ context.Context, entry ActivityEntry) {
	r.entries = append(r.entries, entry)
}

// unavailableStore reports itself unusable, as in a context without durable
// storage access.
type unavailableStore struct{ session.MemoryStore }

func (s *unavailableStore) Available(_ context.Context) bool { return false }

func activeSuperAdmin() *models.AdminProfile {
	return &models.AdminProfile{
		ID:             "profile-1",
		ProviderUserID: "prov-1",
		Email:          "admin@example.com",
		FirstName:      "Asha",
		LastName:       "Verma",
		Role:           models.RoleSuperAdmin,
		IsActive:       true,
	}
}

func newTestService(provider *fakeProvider, dir *fakeDirectory) (*Service, *session.MemoryStore, *fakeRecorder) {
	store := session.NewMemoryStore()
	recorder := &fakeRecorder{}
	svc := NewService(provider, dir, store, recorder, Options{SessionLifetime: 24 * time.Hour})
	return svc, store, recorder
}

func TestHasPermissionInactiveProfileDeniesEverything(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(newFakeProvider(), newFakeDirectory())
	for _, role := range []string{models.RoleSuperAdmin, models.RoleContentManager, models.RoleStaff} {
		profile := &models.AdminProfile{Role: role, IsActive: false}
		if svc.HasPermission(profile, PermInquiriesRead) {
			t.Fatalf("inactive %s granted a permission", role)
		}
	}
	if svc.HasPermission(nil, PermInquiriesRead) {
		t.Fatalf("nil profile granted a permission")
	}
}

func TestHasPermissionSuperAdminWildcard(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(newFakeProvider(), newFakeDirectory())
	profile := &models.AdminProfile{Role: models.RoleSuperAdmin, IsActive: true}
	for _, tag := range []string{PermDestinationsDelete, PermPackagesDelete, PermPDFGenerate, "some:future-tag"} {
		if !svc.HasPermission(profile, tag) {
			t.Fatalf("super_admin denied %q", tag)
		}
	}
}

func TestHasPermissionContentManager(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(newFakeProvider(), newFakeDirectory())
	profile := &models.AdminProfile{Role: models.RoleContentManager, IsActive: true}
	if !svc.HasPermission(profile, PermDestinationsWrite) {
		t.Fatalf("content_manager denied destinations:write")
	}
	if svc.HasPermission(profile, "super_admin_only") {
		t.Fatalf("content_manager granted a tag outside its allow-list")
	}
	if svc.HasPermission(profile, PermAdminsRead) {
		t.Fatalf("content_manager granted admins:read")
	}
}

func TestHasPermissionStaff(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(newFakeProvider(), newFakeDirectory())
	profile := &models.AdminProfile{Role: models.RoleStaff, IsActive: true}
	if !svc.HasPermission(profile, PermPDFGenerate) {
		t.Fatalf("staff denied pdf:generate")
	}
	if svc.HasPermission(profile, PermDestinationsWrite) {
		t.Fatalf("staff granted destinations:write")
	}
}

func TestHasPermissionUnknownRole(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(newFakeProvider(), newFakeDirectory())
	profile := &models.AdminProfile{Role: "intern", IsActive: true}
	if svc.HasPermission(profile, PermInquiriesRead) {
		t.Fatalf("unknown role granted a permission")
	}
}

func TestCurrentUserWithoutSession(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(newFakeProvider(), newFakeDirectory())
	if got := svc.CurrentUser(context.Background(), "never-issued"); got != nil {
		t.Fatalf("expected nil without a session, got %+v", got)
	}
	if got := svc.CurrentUser(context.Background(), ""); got != nil {
		t.Fatalf("expected nil for empty session id, got %+v", got)
	}
}

func TestCurrentUserStoreUnavailable(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	recorder := &fakeRecorder{}
	svc := NewService(provider, newFakeDirectory(), &unavailableStore{}, recorder, Options{})
	if got := svc.CurrentUser(context.Background(), "any"); got != nil {
		t.Fatalf("expected nil when store is unavailable, got %+v", got)
	}
}

func TestLoginSuccessThenCurrentUser(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	provider.addUser("admin@example.com", "admin123", "prov-1")
	dir := newFakeDirectory()
	dir.profiles["profile-1"] = activeSuperAdmin()
	svc, _, recorder := newTestService(provider, dir)

	profile, sessionID, errLogin := svc.Login(context.Background(), "admin@example.com", "admin123", RequestMeta{UserAgent: "test-agent"})
	if errLogin != nil {
		t.Fatalf("login: %v", errLogin)
	}
	if profile.Role != models.RoleSuperAdmin {
		t.Fatalf("profile.Role = %q, want super_admin", profile.Role)
	}
	if sessionID == "" {
		t.Fatalf("expected a session id")
	}
	if profile.LastLogin == nil {
		t.Fatalf("expected last_login to be set")
	}

	got := svc.CurrentUser(context.Background(), sessionID)
	if got == nil {
		t.Fatalf("expected current user after login")
	}
	// The snapshot must equal the directory record with no transformation.
	want := dir.profiles["profile-1"]
	if got.ID != want.ID || got.Email != want.Email || got.Role != want.Role ||
		got.FirstName != want.FirstName || got.LastName != want.LastName || got.IsActive != want.IsActive {
		t.Fatalf("snapshot mismatch: got %+v want %+v", got, want)
	}

	if !svc.HasPermission(got, PermPackagesDelete) {
		t.Fatalf("super_admin denied packages:delete")
	}

	if len(recorder.entries) != 1 || recorder.entries[0].Action != "login" {
		t.Fatalf("expected one login activity entry, got %+v", recorder.entries)
	}
	if recorder.entries[0].UserAgent != "test-agent" {
		t.Fatalf("activity user agent = %q", recorder.entries[0].UserAgent)
	}
}

func TestLoginUniformInvalidCredentials(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	provider.addUser("admin@example.com", "admin123", "prov-1")
	svc, _, _ := newTestService(provider, newFakeDirectory())

	_, _, errUnknown := svc.Login(context.Background(), "nobody@example.com", "admin123", RequestMeta{})
	_, _, errWrong := svc.Login(context.Background(), "admin@example.com", "wrong", RequestMeta{})
	_, _, errEmpty := svc.Login(context.Background(), "", "", RequestMeta{})
	for _, err := range []error{errUnknown, errWrong, errEmpty} {
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected uniform ErrInvalidCredentials, got %v", err)
		}
	}
}

func TestLoginNoDirectoryProfileSignsOutProvider(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	provider.addUser("user@example.com", "hunter22", "prov-9")
	svc, store, _ := newTestService(provider, newFakeDirectory())

	_, _, errLogin := svc.Login(context.Background(), "user@example.com", "hunter22", RequestMeta{})
	if !errors.Is(errLogin, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", errLogin)
	}
	if provider.signOutCalls != 1 {
		t.Fatalf("provider sign-out calls = %d, want 1", provider.signOutCalls)
	}
	if store.Len() != 0 {
		t.Fatalf("no session should be stored, len=%d", store.Len())
	}
}

func TestLoginInactiveProfileDenied(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	provider.addUser("admin@example.com", "admin123", "prov-1")
	dir := newFakeDirectory()
	inactive := activeSuperAdmin()
	inactive.IsActive = false
	dir.profiles[inactive.ID] = inactive
	svc, _, _ := newTestService(provider, dir)

	if _, _, errLogin := svc.Login(context.Background(), "admin@example.com", "admin123", RequestMeta{}); !errors.Is(errLogin, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied for inactive profile, got %v", errLogin)
	}
}

func TestLoginSurvivesLastLoginFailure(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	provider.addUser("admin@example.com", "admin123", "prov-1")
	dir := newFakeDirectory()
	dir.profiles["profile-1"] = activeSuperAdmin()
	dir.touchErr = errors.New("column locked")
	svc, _, _ := newTestService(provider, dir)

	if _, _, errLogin := svc.Login(context.Background(), "admin@example.com", "admin123", RequestMeta{}); errLogin != nil {
		t.Fatalf("login must not fail on a last_login write error: %v", errLogin)
	}
}

func TestSessionExpiryIsSelfHealing(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	provider.addUser("admin@example.com", "admin123", "prov-1")
	dir := newFakeDirectory()
	dir.profiles["profile-1"] = activeSuperAdmin()
	svc, store, _ := newTestService(provider, dir)

	start := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }

	_, sessionID, errLogin := svc.Login(context.Background(), "admin@example.com", "admin123", RequestMeta{})
	if errLogin != nil {
		t.Fatalf("login: %v", errLogin)
	}

	// Just inside the lifetime the session is still valid.
	svc.now = func() time.Time { return start.Add(24 * time.Hour) }
	if got := svc.CurrentUser(context.Background(), sessionID); got == nil {
		t.Fatalf("session should still be valid at exactly 24h")
	}

	// One millisecond past the lifetime it is gone and torn down.
	svc.now = func() time.Time { return start.Add(24*time.Hour + time.Millisecond) }
	if got := svc.CurrentUser(context.Background(), sessionID); got != nil {
		t.Fatalf("expected nil past the session lifetime, got %+v", got)
	}
	if store.Len() != 0 {
		t.Fatalf("expired session must be removed from the store")
	}
	if provider.signOutCalls != 1 {
		t.Fatalf("expiry should sign out the provider session, calls=%d", provider.signOutCalls)
	}

	// A second read must also return nil without re-deriving stale data.
	if got := svc.CurrentUser(context.Background(), sessionID); got != nil {
		t.Fatalf("expected nil on repeated read, got %+v", got)
	}
}

func TestCurrentUserRevokesDeactivatedProfile(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	provider.addUser("admin@example.com", "admin123", "prov-1")
	dir := newFakeDirectory()
	dir.profiles["profile-1"] = activeSuperAdmin()
	svc, store, _ := newTestService(provider, dir)

	_, sessionID, errLogin := svc.Login(context.Background(), "admin@example.com", "admin123", RequestMeta{})
	if errLogin != nil {
		t.Fatalf("login: %v", errLogin)
	}

	dir.profiles["profile-1"].IsActive = false
	if got := svc.CurrentUser(context.Background(), sessionID); got != nil {
		t.Fatalf("deactivated profile must lose access on next read, got %+v", got)
	}
	if store.Len() != 0 {
		t.Fatalf("session of a deactivated profile must be removed")
	}
}

func TestLogoutClearsLocalEvenIfProviderFails(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	provider.addUser("admin@example.com", "admin123", "prov-1")
	provider.signOutErr = errors.New("provider unreachable")
	dir := newFakeDirectory()
	dir.profiles["profile-1"] = activeSuperAdmin()
	svc, store, _ := newTestService(provider, dir)

	_, sessionID, errLogin := svc.Login(context.Background(), "admin@example.com", "admin123", RequestMeta{})
	if errLogin != nil {
		t.Fatalf("login: %v", errLogin)
	}

	svc.Logout(context.Background(), sessionID)
	if store.Len() != 0 {
		t.Fatalf("local session must be removed despite provider failure")
	}
	if got := svc.CurrentUser(context.Background(), sessionID); got != nil {
		t.Fatalf("expected nil after logout, got %+v", got)
	}
}

func TestCreateAdminUserSuccess(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	dir := newFakeDirectory()
	svc, _, recorder := newTestService(provider, dir)

	created, errCreate := svc.CreateAdminUser(context.Background(), CreateAdminInput{
		Email:     "new@example.com",
		Password:  "longenough",
		FirstName: "Nina",
		LastName:  "Rao",
		Role:      models.RoleContentManager,
	}, "profile-1", RequestMeta{})
	if errCreate != nil {
		t.Fatalf("create admin: %v", errCreate)
	}
	if created.Role != models.RoleContentManager || !created.IsActive {
		t.Fatalf("unexpected created profile: %+v", created)
	}
	if created.CreatedBy == nil || *created.CreatedBy != "profile-1" {
		t.Fatalf("created_by not recorded: %+v", created.CreatedBy)
	}
	if _, ok := dir.profiles[created.ID]; !ok {
		t.Fatalf("profile not inserted into directory")
	}

	if len(recorder.entries) != 1 || recorder.entries[0].Action != "create_user" {
		t.Fatalf("expected create_user activity entry, got %+v", recorder.entries)
	}
	if recorder.entries[0].RecordID != created.ID {
		t.Fatalf("activity record id = %q, want %q", recorder.entries[0].RecordID, created.ID)
	}
}

func TestCreateAdminUserCompensatesDirectoryFailure(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	dir := newFakeDirectory()
	dir.insertErr = errors.New("unique violation")
	svc, _, _ := newTestService(provider, dir)

	_, errCreate := svc.CreateAdminUser(context.Background(), CreateAdminInput{
		Email:    "new@example.com",
		Password: "longenough",
		Role:     models.RoleStaff,
	}, "profile-1", RequestMeta{})
	if !errors.Is(errCreate, ErrProvisioningFailed) {
		t.Fatalf("expected ErrProvisioningFailed, got %v", errCreate)
	}
	if provider.deleteCalls != 1 {
		t.Fatalf("provider identity must be deleted on compensation, calls=%d", provider.deleteCalls)
	}
}

func TestCreateAdminUserRejectsUnknownRole(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	svc, _, _ := newTestService(provider, newFakeDirectory())

	_, errCreate := svc.CreateAdminUser(context.Background(), CreateAdminInput{
		Email:    "new@example.com",
		Password: "longenough",
		Role:     "owner",
	}, "profile-1", RequestMeta{})
	if !errors.Is(errCreate, ErrProvisioningFailed) {
		t.Fatalf("expected ErrProvisioningFailed for unknown role, got %v", errCreate)
	}
	if provider.deleteCalls != 0 || len(provider.ids) != 0 {
		t.Fatalf("no provider identity should be touched for an invalid role")
	}
}
