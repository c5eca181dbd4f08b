package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/networkasro/backoffice/internal/core/domain"
)

// PlanRepository persists service packages.
type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) Create(ctx context.Context, p *domain.Plan) error {
	if err := r.db.WithContext(ctx).Create(planFromDomain(p)).Error; err != nil {
		return fmt.Errorf("create plan: %w", err)
	}
	return nil
}

func (r *PlanRepository) FindByID(ctx context.Context, id string) (*domain.Plan, error) {
	var rec planRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, fmt.Errorf("find plan: %w", err)
	}
	return rec.toDomain(), nil
}

func (r *PlanRepository) List(ctx context.Context, activeOnly bool) ([]domain.Plan, error) {
	q := r.db.WithContext(ctx).Order("speed_mbps")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var recs []planRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	plans := make([]domain.Plan, 0, len(recs))
	for i := range recs {
		plans = append(plans, *recs[i].toDomain())
	}
	return plans, nil
}

func (r *PlanRepository) Update(ctx context.Context, p *domain.Plan) error {
	res := r.db.WithContext(ctx).Model(&planRecord{}).Where("id = ?", p.ID).Updates(map[string]any{
		"name":          p.Name,
		"speed_mbps":    p.SpeedMbps,
		"price_monthly": p.PriceMonthly,
		"description":   p.Description,
		"is_active":     p.IsActive,
	})
	if res.Error != nil {
		return fmt.Errorf("update plan: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrPlanNotFound
	}
	return nil
}

func (r *PlanRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&planRecord{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete plan: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrPlanNotFound
	}
	return nil
}
