package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/networkasro/backoffice/internal/core/domain"
	"github.com/networkasro/backoffice/internal/core/ports"
)

// AuthService implements sign-up, password sign-in, token refresh and the
// privileged admin user creation.
type AuthService struct {
	users      ports.UserRepository
	profiles   ports.ProfileRepository
	tokens     ports.TokenStore
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     zerolog.Logger
}

func NewAuthService(users ports.UserRepository, profiles ports.ProfileRepository, tokens ports.TokenStore, jwtSecret string, accessTTL, refreshTTL time.Duration, logger zerolog.Logger) *AuthService {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	if refreshTTL <= 0 {
		refreshTTL = 30 * 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		profiles:   profiles,
		tokens:     tokens,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

// SignUp creates the auth user and its profile in one transaction. The
// repository rolls both back on a profile failure, so a user never exists
// without a profile.
func (s *AuthService) SignUp(ctx context.Context, input ports.SignUpInput) (*domain.Profile, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" || input.FullName == "" {
		return nil, domain.ErrInvalidInput
	}
	role := input.Role
	if role == "" {
		role = domain.RoleSales
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	profile := &domain.Profile{
		ID:       uuid.NewString(),
		UserID:   user.ID,
		FullName: input.FullName,
		Role:     role,
		Phone:    input.Phone,
		Email:    email,
	}

	if err := s.users.CreateWithProfile(ctx, user, profile); err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("sign up failed")
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("user registered")
	return profile, nil
}

// SignIn verifies the password and issues a session plus the profile in one
// round trip, so callers need not wait for a separate profile fetch.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.Session, *domain.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	session, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	profile, err := s.profiles.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("signed in")
	return session, profile, nil
}

// Refresh spends the refresh token and issues a new session. A consumed,
// unknown or expired token yields ErrSessionExpired.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.Session, error) {
	if refreshToken == "" {
		return nil, domain.ErrSessionExpired
	}

	userID, err := s.tokens.Consume(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) || errors.Is(err, domain.ErrSessionRevoked) {
			return nil, domain.ErrSessionExpired
		}
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.issueSession(ctx, user)
}

// SignOut revokes the refresh token. Revoking an unknown token succeeds so
// clients can always complete a local sign-out.
func (s *AuthService) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.tokens.Revoke(ctx, refreshToken); err != nil && !errors.Is(err, domain.ErrSessionRevoked) {
		s.logger.Warn().Err(err).Msg("refresh token revoke failed")
		return err
	}
	return nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profiles.FindByUserID(ctx, userID)
}

// AdminCreateUser creates another account server-side. The caller's own
// session is never touched: this replaces any client-side sign-up-and-
// restore-tokens workaround.
func (s *AuthService) AdminCreateUser(ctx context.Context, callerRole domain.Role, input ports.SignUpInput) (*domain.Profile, error) {
	if !domain.HasPermission(callerRole, domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	if input.Role == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.SignUp(ctx, input)
}

func (s *AuthService) issueSession(ctx context.Context, user *domain.User) (*domain.Session, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.accessTTL)

	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"exp":   expiresAt.Unix(),
		"iat":   now.Unix(),
	}
	if profile, err := s.profiles.FindByUserID(ctx, user.ID); err == nil {
		claims["role"] = string(profile.Role)
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	refreshToken := uuid.NewString()
	if err := s.tokens.Save(ctx, refreshToken, user.ID, s.refreshTTL); err != nil {
		return nil, err
	}

	return &domain.Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		User:         user,
	}, nil
}
