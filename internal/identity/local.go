package identity

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/RommelSharma23/travel-admin-sub001/internal/models"
	"github.com/RommelSharma23/travel-admin-sub001/internal/security"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// LocalProvider implements Provider against the identities table, with
// bcrypt-verified passwords and HS256 provider-session tokens.
type LocalProvider struct {
	db       *gorm.DB
	secret   string
	tokenTTL time.Duration

	mu      sync.Mutex
	revoked map[string]time.Time // token id -> expiry, pruned lazily
}

// NewLocalProvider constructs a LocalProvider.
func NewLocalProvider(db *gorm.DB, secret string, tokenTTL time.Duration) *LocalProvider {
	return &LocalProvider{
		db:       db,
		secret:   secret,
		tokenTTL: tokenTTL,
		revoked:  map[string]time.Time{},
	}
}

// SignInWithPassword verifies email/password and issues a session token.
func (p *LocalProvider) SignInWithPassword(ctx context.Context, email, password string) (*SignInResult, error) {
	normalized := normalizeEmail(email)
	if normalized == "" || password == "" {
		return nil, ErrBadCredentials
	}

	var row models.Identity
	if errFind := p.db.WithContext(ctx).Where("email = ?", normalized).First(&row).Error; errFind != nil {
		if !errors.Is(errFind, gorm.ErrRecordNotFound) {
			log.Warnf("identity: sign-in lookup failed: %v", errFind)
		}
		return nil, ErrBadCredentials
	}

	if !security.CheckPassword(row.Password, password) {
		return nil, ErrBadCredentials
	}

	token, _, errToken := security.GenerateProviderToken(p.secret, row.ID, row.Email, p.tokenTTL)
	if errToken != nil {
		log.Warnf("identity: token issue failed: %v", errToken)
		return nil, ErrBadCredentials
	}

	return &SignInResult{
		User:  User{ID: row.ID, Email: row.Email},
		Token: token,
	}, nil
}

// SignOut revokes the session token. Unknown or malformed tokens are ignored.
func (p *LocalProvider) SignOut(_ context.Context, token string) error {
	claims, errParse := security.ParseProviderToken(p.secret, token)
	if errParse != nil {
		// Expired or malformed tokens need no revocation entry.
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.pruneLocked()
	p.revoked[claims.ID] = claims.ExpiresAt.Time
	return nil
}

// ValidateToken resolves a live, unrevoked session token to its identity.
func (p *LocalProvider) ValidateToken(_ context.Context, token string) (*User, error) {
	claims, errParse := security.ParseProviderToken(p.secret, token)
	if errParse != nil {
		return nil, ErrBadCredentials
	}

	p.mu.Lock()
	_, isRevoked := p.revoked[claims.ID]
	p.mu.Unlock()
	if isRevoked {
		return nil, ErrBadCredentials
	}

	return &User{ID: claims.UserID, Email: claims.Email}, nil
}

// CreateUser provisions a new identity with a pre-confirmed email.
func (p *LocalProvider) CreateUser(ctx context.Context, email, password string, emailConfirm bool) (*User, error) {
	normalized := normalizeEmail(email)
	if normalized == "" {
		return nil, errors.New("identity: missing email")
	}
	if errPolicy := security.ValidateNewPassword(password); errPolicy != nil {
		return nil, errPolicy
	}

	var exists models.Identity
	errCheck := p.db.WithContext(ctx).Where("email = ?", normalized).First(&exists).Error
	if errCheck == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(errCheck, gorm.ErrRecordNotFound) {
		return nil, errCheck
	}

	hash, errHash := security.HashPassword(password)
	if errHash != nil {
		return nil, errHash
	}

	row := models.Identity{
		ID:             uuid.NewString(),
		Email:          normalized,
		Password:       hash,
		EmailConfirmed: emailConfirm,
	}
	if errCreate := p.db.WithContext(ctx).Create(&row).Error; errCreate != nil {
		return nil, errCreate
	}

	return &User{ID: row.ID, Email: row.Email}, nil
}

// DeleteUser removes an identity row.
func (p *LocalProvider) DeleteUser(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrUserNotFound
	}
	result := p.db.WithContext(ctx).Delete(&models.Identity{}, "id = ?", userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// pruneLocked drops revocation entries whose tokens have expired anyway.
// Callers must hold p.mu.
func (p *LocalProvider) pruneLocked() {
	now := time.Now()
	for id, expiry := range p.revoked {
		if expiry.Before(now) {
			delete(p.revoked, id)
		}
	}
}

// normalizeEmail lowercases and trims a login address.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
