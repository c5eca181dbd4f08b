package ports

import (
	"context"

	"github.com/networkasro/backoffice/internal/core/domain"
)

// CustomerScope carries the caller identity used for ownership filtering:
// sales users only see their own customers, admin and owner see all.
type CustomerScope struct {
	Role    domain.Role
	SalesID string
}

// CreateCustomerInput carries all fields for a new subscriber.
type CreateCustomerInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
	PlanID  string
	SalesID string
	DueDay  int
}

// UpdateCustomerInput carries mutable subscriber fields. Nil pointers are
// left unchanged.
type UpdateCustomerInput struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *string
	PlanID  *string
	DueDay  *int
	Status  *domain.CustomerStatus
}

// CustomerService defines subscriber use cases.
type CustomerService interface {
	Create(ctx context.Context, scope CustomerScope, input CreateCustomerInput) (*domain.Customer, error)
	Get(ctx context.Context, scope CustomerScope, id string) (*domain.Customer, error)
	List(ctx context.Context, scope CustomerScope, search string) ([]domain.Customer, error)
	Update(ctx context.Context, scope CustomerScope, id string, input UpdateCustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, scope CustomerScope, id string) error
	Count(ctx context.Context, scope CustomerScope) (int64, error)
}

// CustomerFilter narrows repository listings. Empty SalesID means no
// ownership filter.
type CustomerFilter struct {
	SalesID string
	Status  domain.CustomerStatus
	Search  string
}

// CustomerRepository defines persistence for subscribers.
type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context, filter CustomerFilter) ([]domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, filter CustomerFilter) (int64, error)
}
