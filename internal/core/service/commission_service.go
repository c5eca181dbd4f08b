package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/networkasro/backoffice/internal/core/domain"
	"github.com/networkasro/backoffice/internal/core/ports"
)

// CommissionService implements commission accrual and payout tracking.
type CommissionService struct {
	repo     ports.CommissionRepository
	settings ports.CommissionSettingRepository
	logger   zerolog.Logger
}

func NewCommissionService(repo ports.CommissionRepository, settings ports.CommissionSettingRepository, logger zerolog.Logger) *CommissionService {
	return &CommissionService{repo: repo, settings: settings, logger: logger}
}

// Accrue records the commission for one verified invoice. The operation is
// idempotent per invoice, and customers without a commission setting simply
// accrue nothing.
func (s *CommissionService) Accrue(ctx context.Context, job ports.AccrualJob) error {
	if _, err := s.repo.FindByInvoiceID(ctx, job.InvoiceID); err == nil {
		s.logger.Debug().Str("invoice_id", job.InvoiceID).Msg("commission already accrued, skipping")
		return nil
	} else if !errors.Is(err, domain.ErrCommissionNotFound) {
		return err
	}

	setting, err := s.settings.FindByCustomer(ctx, job.CustomerID)
	if err != nil {
		if errors.Is(err, domain.ErrCommissionSettingMissing) {
			s.logger.Info().Str("customer_id", job.CustomerID).Msg("no commission setting, nothing accrued")
			return nil
		}
		return err
	}

	commission := &domain.Commission{
		ID:         uuid.NewString(),
		SalesID:    job.SalesID,
		CustomerID: job.CustomerID,
		InvoiceID:  job.InvoiceID,
		Percentage: setting.Percentage,
		Amount:     int64(float64(job.Amount) * setting.Percentage / 100),
		Month:      job.Month,
		Year:       job.Year,
		Status:     domain.CommissionPending,
	}

	if err := s.repo.Create(ctx, commission); err != nil {
		s.logger.Error().Err(err).Str("invoice_id", job.InvoiceID).Msg("commission accrual failed")
		return err
	}

	s.logger.Info().
		Str("commission_id", commission.ID).
		Str("sales_id", job.SalesID).
		Int64("amount", commission.Amount).
		Msg("commission accrued")
	return nil
}

func (s *CommissionService) List(ctx context.Context, scope ports.CustomerScope, month, year int) ([]domain.Commission, error) {
	filter := ports.CommissionFilter{Month: month, Year: year}
	if !domain.CanAccessAllData(scope.Role) {
		filter.SalesID = scope.SalesID
	}
	return s.repo.List(ctx, filter)
}

// MarkPaid records a commission payout. Admin rank required, enforced at
// transport.
func (s *CommissionService) MarkPaid(ctx context.Context, id string) (*domain.Commission, error) {
	commission, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	commission.Status = domain.CommissionPaid
	if err := s.repo.Update(ctx, commission); err != nil {
		return nil, err
	}
	return commission, nil
}

func (s *CommissionService) Total(ctx context.Context, scope ports.CustomerScope, month, year int) (int64, error) {
	filter := ports.CommissionFilter{Month: month, Year: year}
	if !domain.CanAccessAllData(scope.Role) {
		filter.SalesID = scope.SalesID
	}
	return s.repo.SumAmount(ctx, filter)
}

func (s *CommissionService) SetPercentage(ctx context.Context, customerID, salesID string, percentage float64) (*domain.CommissionSetting, error) {
	if percentage < 0 || percentage > 100 {
		return nil, domain.ErrInvalidPercentage
	}

	setting := &domain.CommissionSetting{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		SalesID:    salesID,
		Percentage: percentage,
	}
	if existing, err := s.settings.FindByCustomer(ctx, customerID); err == nil {
		setting.ID = existing.ID
	}

	if err := s.settings.Upsert(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *CommissionService) ListSettings(ctx context.Context) ([]domain.CommissionSetting, error) {
	return s.settings.List(ctx)
}

func (s *CommissionService) DeleteSetting(ctx context.Context, id string) error {
	return s.settings.Delete(ctx, id)
}
