package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/networkasro/backoffice/internal/core/domain"
)

// UserRepository persists auth users and their profiles.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateWithProfile inserts the user and its profile in one transaction: a
// profile failure rolls the user back, so no orphaned auth rows can exist.
func (r *UserRepository) CreateWithProfile(ctx context.Context, user *domain.User, profile *domain.Profile) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&userRecord{
			ID:           user.ID,
			Email:        user.Email,
			PasswordHash: user.PasswordHash,
		}).Error; err != nil {
			return err
		}
		return tx.Create(&profileRecord{
			ID:       profile.ID,
			UserID:   profile.UserID,
			FullName: profile.FullName,
			Role:     string(profile.Role),
			Phone:    profile.Phone,
			Email:    profile.Email,
		}).Error
	})
	if err != nil {
		if isDuplicateKey(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).First(&rec, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return rec.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return rec.toDomain(), nil
}

// ProfileRepository reads and updates application profiles.
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	var rec profileRecord
	if err := r.db.WithContext(ctx).First(&rec, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return rec.toDomain(), nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]domain.Profile, error) {
	var recs []profileRecord
	if err := r.db.WithContext(ctx).Order("full_name").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profilesToDomain(recs), nil
}

func (r *ProfileRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.Profile, error) {
	var recs []profileRecord
	if err := r.db.WithContext(ctx).Where("role = ?", string(role)).Order("full_name").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profilesToDomain(recs), nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	res := r.db.WithContext(ctx).Model(&profileRecord{}).Where("id = ?", profile.ID).Updates(map[string]any{
		"full_name": profile.FullName,
		"role":      string(profile.Role),
		"phone":     profile.Phone,
	})
	if res.Error != nil {
		return fmt.Errorf("update profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func profilesToDomain(recs []profileRecord) []domain.Profile {
	out := make([]domain.Profile, 0, len(recs))
	for i := range recs {
		out = append(out, *recs[i].toDomain())
	}
	return out
}

// isDuplicateKey matches the Postgres unique-violation error.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key")
}
