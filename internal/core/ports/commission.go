package ports

import (
	"context"

	"github.com/networkasro/backoffice/internal/core/domain"
)

// AccrualJob is the unit of work handed to the accrual dispatcher when an
// invoice is verified. Jobs for the same sales user are processed in order.
type AccrualJob struct {
	InvoiceID  string
	CustomerID string
	SalesID    string
	Amount     int64
	Month      int
	Year       int
}

// CommissionService defines commission use cases.
type CommissionService interface {
	// Accrue records the commission for one verified invoice. Replays of the
	// same invoice are no-ops; customers without a commission setting accrue
	// nothing.
	Accrue(ctx context.Context, job AccrualJob) error
	List(ctx context.Context, scope CustomerScope, month, year int) ([]domain.Commission, error)
	MarkPaid(ctx context.Context, id string) (*domain.Commission, error)
	Total(ctx context.Context, scope CustomerScope, month, year int) (int64, error)

	SetPercentage(ctx context.Context, customerID, salesID string, percentage float64) (*domain.CommissionSetting, error)
	ListSettings(ctx context.Context) ([]domain.CommissionSetting, error)
	DeleteSetting(ctx context.Context, id string) error
}

// CommissionFilter narrows commission listings. Zero month/year means all
// periods.
type CommissionFilter struct {
	SalesID string
	Month   int
	Year    int
}

// CommissionRepository defines persistence for accrued commissions.
type CommissionRepository interface {
	Create(ctx context.Context, c *domain.Commission) error
	FindByInvoiceID(ctx context.Context, invoiceID string) (*domain.Commission, error)
	FindByID(ctx context.Context, id string) (*domain.Commission, error)
	List(ctx context.Context, filter CommissionFilter) ([]domain.Commission, error)
	Update(ctx context.Context, c *domain.Commission) error
	SumAmount(ctx context.Context, filter CommissionFilter) (int64, error)
}

// CommissionSettingRepository defines persistence for percentage settings.
type CommissionSettingRepository interface {
	Upsert(ctx context.Context, s *domain.CommissionSetting) error
	FindByCustomer(ctx context.Context, customerID string) (*domain.CommissionSetting, error)
	List(ctx context.Context) ([]domain.CommissionSetting, error)
	Delete(ctx context.Context, id string) error
}
