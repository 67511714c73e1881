package auth

import "errors"

// Public error kinds. Every operation maps internal failures onto one of
// these; messages are safe to show to callers and deliberately do not say
// which step failed.
var (
	// ErrInvalidCredentials covers every credential rejection, including
	// unknown emails, so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccessDenied means the identity is valid but holds no active
	// administrative profile.
	ErrAccessDenied = errors.New("access denied")
	// ErrProvisioningFailed means admin creation failed at the provider or
	// directory step; partial state has been compensated.
	ErrProvisioningFailed = errors.New("could not create admin user")
	// ErrInternal covers unexpected failures in any operation.
	ErrInternal = errors.New("authentication service error")
)
