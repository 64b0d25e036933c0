package ports

import (
	"context"

	"github.com/geotrace/geolocation-api/internal/core/domain"
)

// AuthService issues session tokens for valid credentials.
type AuthService interface {
	// Login verifies email/password and returns a signed bearer token plus
	// the identity's public fields. Missing input yields
	// domain.ErrMissingCredentials; any authentication failure yields
	// domain.ErrInvalidCredentials regardless of cause.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
