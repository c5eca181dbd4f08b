package ports

import (
	"context"

	"github.com/networkasro/backoffice/internal/core/domain"
)

// PlanInput carries the fields of a service package.
type PlanInput struct {
	Name         string
	SpeedMbps    int
	PriceMonthly int64
	Description  string
	IsActive     bool
}

// PlanService defines service-package use cases. Listing active plans is
// open to all authenticated roles; mutations require admin rank and are
// enforced at the transport layer.
type PlanService interface {
	Create(ctx context.Context, input PlanInput) (*domain.Plan, error)
	Get(ctx context.Context, id string) (*domain.Plan, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Plan, error)
	Update(ctx context.Context, id string, input PlanInput) (*domain.Plan, error)
	Delete(ctx context.Context, id string) error
}

// PlanRepository defines persistence for service packages. List orders by
// speed ascending.
type PlanRepository interface {
	Create(ctx context.Context, p *domain.Plan) error
	FindByID(ctx context.Context, id string) (*domain.Plan, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Plan, error)
	Update(ctx context.Context, p *domain.Plan) error
	Delete(ctx context.Context, id string) error
}
