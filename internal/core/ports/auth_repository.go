package ports

import (
	"context"
	"time"

	"github.com/networkasro/backoffice/internal/core/domain"
)

// UserRepository defines persistence for auth users and their profiles.
type UserRepository interface {
	// CreateWithProfile inserts user and profile in a single transaction.
	CreateWithProfile(ctx context.Context, user *domain.User, profile *domain.Profile) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// ProfileRepository defines read/update access to profiles.
type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
}

// TokenStore holds refresh tokens with a TTL. Tokens are single use:
// Consume atomically invalidates the token and returns its user id.
type TokenStore interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	Consume(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}
