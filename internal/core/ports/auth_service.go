package ports

import (
	"context"

	"github.com/networkasro/backoffice/internal/core/domain"
)

// SignUpInput carries everything needed to create an auth user plus its
// profile. Role defaults to sales when empty.
type SignUpInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
	Role     domain.Role
}

// AuthService defines session-lifecycle and account operations.
type AuthService interface {
	// SignUp creates the auth user and its profile atomically: a profile
	// insert failure rolls the user back, so no orphaned auth records exist.
	SignUp(ctx context.Context, input SignUpInput) (*domain.Profile, error)
	// SignIn verifies the password and issues a fresh session.
	SignIn(ctx context.Context, email, password string) (*domain.Session, *domain.Profile, error)
	// Refresh rotates the refresh token and issues a new session. The spent
	// token is invalid afterwards.
	Refresh(ctx context.Context, refreshToken string) (*domain.Session, error)
	// SignOut revokes the refresh token. Unknown tokens are not an error.
	SignOut(ctx context.Context, refreshToken string) error
	// Profile loads the profile for a user id.
	Profile(ctx context.Context, userID string) (*domain.Profile, error)
	// AdminCreateUser creates another account on behalf of callerRole
	// without touching the caller's own session. Requires admin rank.
	AdminCreateUser(ctx context.Context, callerRole domain.Role, input SignUpInput) (*domain.Profile, error)
}
