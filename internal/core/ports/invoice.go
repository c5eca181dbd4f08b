package ports

import (
	"context"
	"time"

	"github.com/networkasro/backoffice/internal/core/domain"
)

// InvoiceFilter narrows invoice listings to one billing period and,
// optionally, to one sales user's customers.
type InvoiceFilter struct {
	Month   int
	Year    int
	Status  domain.InvoiceStatus
	SalesID string
}

// MarkPaidInput records a customer payment against a pending invoice.
type MarkPaidInput struct {
	PaymentDate time.Time
	ProofURL    string
}

// InvoiceService defines billing use cases.
type InvoiceService interface {
	// GenerateMonthly creates pending invoices for all active customers for
	// the given period. Customers already invoiced for the period are
	// skipped; the count of created invoices is returned.
	GenerateMonthly(ctx context.Context, month, year int) (int, error)
	List(ctx context.Context, scope CustomerScope, filter InvoiceFilter) ([]domain.Invoice, error)
	// Get and MarkPaid carry the caller's scope: sales users may only reach
	// invoices of their own customers.
	Get(ctx context.Context, scope CustomerScope, id string) (*domain.Invoice, error)
	MarkPaid(ctx context.Context, scope CustomerScope, id string, input MarkPaidInput) (*domain.Invoice, error)
	// Verify confirms a reported payment. Requires admin rank; on success a
	// commission accrual is scheduled for the owning sales user.
	Verify(ctx context.Context, id, verifierID string) (*domain.Invoice, error)
	// Revert moves a paid invoice back to pending (mistaken payment report).
	Revert(ctx context.Context, id string) (*domain.Invoice, error)
}

// InvoiceRepository defines persistence for invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	FindByID(ctx context.Context, id string) (*domain.Invoice, error)
	FindByPeriod(ctx context.Context, customerID string, month, year int) (*domain.Invoice, error)
	List(ctx context.Context, filter InvoiceFilter) ([]domain.Invoice, error)
	Update(ctx context.Context, inv *domain.Invoice) error
}
