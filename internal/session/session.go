// Package session holds the local session record and its durable stores.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/RommelSharma23/travel-admin-sub001/internal/models"
)

// Session is the record created by a successful login. The profile is a
// snapshot taken at login time, not a live view.
type Session struct {
	User          models.AdminProfile `json:"user"`           // Profile snapshot.
	LoginTime     time.Time           `json:"login_time"`     // Session creation time.
	ProviderToken string              `json:"provider_token"` // Identity-provider session token.
}

// Store persists session records under opaque ids. A Get miss (absent,
// expired or unreadable record) yields (nil, nil); errors are reserved for a
// store that cannot be reached at all.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Set(ctx context.Context, id string, sess *Session, ttl time.Duration) error
	Remove(ctx context.Context, id string) error
	// Available reports whether the store is usable in this context.
	Available(ctx context.Context) bool
}

// NewID generates a cryptographically random session id.
func NewID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session: generate id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
