package vault

import (
	"errors"
)

var (
	ErrSecretNotFound   = errors.New("secret not found")
	ErrSecretConflict   = errors.New("secret is in a conflicting state")
	ErrPermissionDenied = errors.New("permission denied")
	ErrSecretDisabled   = errors.New("secret is disabled or outside of its validity window")
	ErrInvalidRequest   = errors.New("invalid request")
	ErrThrottled        = errors.New("request throttled by provider")
	ErrNotSupported     = errors.New("operation not supported by provider")
)
