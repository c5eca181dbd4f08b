package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/networkasro/backoffice/internal/api/metrics"
	"github.com/networkasro/backoffice/internal/core/domain"
	"github.com/networkasro/backoffice/internal/core/ports"
)

// InvoiceService implements monthly billing: generation, payment marking,
// and the verification step that schedules commission accrual.
type InvoiceService struct {
	repo      ports.InvoiceRepository
	customers ports.CustomerRepository
	accruals  ports.AccrualEnqueuer
	logger    zerolog.Logger
}

func NewInvoiceService(repo ports.InvoiceRepository, customers ports.CustomerRepository, accruals ports.AccrualEnqueuer, logger zerolog.Logger) *InvoiceService {
	return &InvoiceService{repo: repo, customers: customers, accruals: accruals, logger: logger}
}

// GenerateMonthly creates one pending invoice per active customer for the
// period at the customer's plan price. Already-invoiced customers are
// skipped, so reruns are safe.
func (s *InvoiceService) GenerateMonthly(ctx context.Context, month, year int) (int, error) {
	if month < 1 || month > 12 || year < 2000 {
		return 0, fmt.Errorf("generate invoices: invalid period %d/%d", month, year)
	}

	customers, err := s.customers.List(ctx, ports.CustomerFilter{Status: domain.CustomerActive})
	if err != nil {
		return 0, fmt.Errorf("generate invoices: %w", err)
	}

	created := 0
	for i := range customers {
		c := &customers[i]
		if c.Plan == nil {
			s.logger.Warn().Str("customer_id", c.ID).Msg("customer has no plan, skipping invoice")
			continue
		}

		if _, err := s.repo.FindByPeriod(ctx, c.ID, month, year); err == nil {
			continue
		} else if !errors.Is(err, domain.ErrInvoiceNotFound) {
			return created, fmt.Errorf("generate invoices: %w", err)
		}

		inv := &domain.Invoice{
			ID:         uuid.NewString(),
			CustomerID: c.ID,
			Month:      month,
			Year:       year,
			Amount:     c.Plan.PriceMonthly,
			Status:     domain.InvoicePending,
		}
		if err := s.repo.Create(ctx, inv); err != nil {
			s.logger.Error().Err(err).Str("customer_id", c.ID).Msg("invoice create failed")
			continue
		}
		created++
	}

	metrics.InvoicesGeneratedTotal.Add(float64(created))
	s.logger.Info().Int("month", month).Int("year", year).Int("created", created).Msg("monthly invoices generated")
	return created, nil
}

func (s *InvoiceService) List(ctx context.Context, scope ports.CustomerScope, filter ports.InvoiceFilter) ([]domain.Invoice, error) {
	if !domain.CanAccessAllData(scope.Role) {
		filter.SalesID = scope.SalesID
	}
	return s.repo.List(ctx, filter)
}

func (s *InvoiceService) Get(ctx context.Context, scope ports.CustomerScope, id string) (*domain.Invoice, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, scope, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// authorize rejects sales users reaching an invoice outside their book.
func (s *InvoiceService) authorize(ctx context.Context, scope ports.CustomerScope, inv *domain.Invoice) error {
	if domain.CanAccessAllData(scope.Role) {
		return nil
	}
	customer, err := s.customers.FindByID(ctx, inv.CustomerID)
	if err != nil {
		return err
	}
	if customer.SalesID != scope.SalesID {
		return domain.ErrForbidden
	}
	return nil
}

// MarkPaid records a customer payment report against a pending invoice.
func (s *InvoiceService) MarkPaid(ctx context.Context, scope ports.CustomerScope, id string, input ports.MarkPaidInput) (*domain.Invoice, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, scope, inv); err != nil {
		return nil, err
	}
	if !inv.Status.CanTransitionTo(domain.InvoicePaid) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, inv.Status, domain.InvoicePaid)
	}

	paymentDate := input.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = time.Now().UTC()
	}
	inv.Status = domain.InvoicePaid
	inv.PaymentDate = &paymentDate
	inv.PaymentProofURL = input.ProofURL

	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Verify confirms a reported payment and schedules commission accrual for
// the customer's sales owner. Accrual runs asynchronously on the sharded
// worker pool.
func (s *InvoiceService) Verify(ctx context.Context, id, verifierID string) (*domain.Invoice, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !inv.Status.CanTransitionTo(domain.InvoiceVerified) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, inv.Status, domain.InvoiceVerified)
	}

	customer, err := s.customers.FindByID(ctx, inv.CustomerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	inv.Status = domain.InvoiceVerified
	inv.VerifiedBy = verifierID
	inv.VerifiedAt = &now

	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}

	metrics.InvoicesVerifiedTotal.Inc()
	s.accruals.Enqueue(ports.AccrualJob{
		InvoiceID:  inv.ID,
		CustomerID: customer.ID,
		SalesID:    customer.SalesID,
		Amount:     inv.Amount,
		Month:      inv.Month,
		Year:       inv.Year,
	})

	s.logger.Info().Str("invoice_id", inv.ID).Str("verified_by", verifierID).Msg("invoice verified")
	return inv, nil
}

// Revert moves a paid invoice back to pending, clearing the payment report.
func (s *InvoiceService) Revert(ctx context.Context, id string) (*domain.Invoice, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !inv.Status.CanTransitionTo(domain.InvoicePending) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, inv.Status, domain.InvoicePending)
	}

	inv.Status = domain.InvoicePending
	inv.PaymentDate = nil
	inv.PaymentProofURL = ""

	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}
