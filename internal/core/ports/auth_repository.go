package ports

import (
	"context"

	"github.com/geotrace/geolocation-api/internal/core/domain"
)

// UserRepository defines the persistence surface the auth core depends on.
// FindByEmail matches the email exactly (no normalization).
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
