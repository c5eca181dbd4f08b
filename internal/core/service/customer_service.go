package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/networkasro/backoffice/internal/core/domain"
	"github.com/networkasro/backoffice/internal/core/ports"
)

// CustomerService implements subscriber management with role-based
// ownership scoping: sales users operate only on customers they own.
type CustomerService struct {
	repo   ports.CustomerRepository
	plans  ports.PlanRepository
	logger zerolog.Logger
}

func NewCustomerService(repo ports.CustomerRepository, plans ports.PlanRepository, logger zerolog.Logger) *CustomerService {
	return &CustomerService{repo: repo, plans: plans, logger: logger}
}

func (s *CustomerService) Create(ctx context.Context, scope ports.CustomerScope, input ports.CreateCustomerInput) (*domain.Customer, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Phone) == "" || strings.TrimSpace(input.Address) == "" {
		return nil, domain.ErrInvalidInput
	}

	plan, err := s.plans.FindByID(ctx, input.PlanID)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, domain.ErrPlanNotFound
	}

	salesID := input.SalesID
	// Sales users always create customers under their own account.
	if !domain.CanAccessAllData(scope.Role) {
		salesID = scope.SalesID
	}

	dueDay := input.DueDay
	if dueDay < 1 || dueDay > 28 {
		dueDay = 1
	}

	customer := &domain.Customer{
		ID:      uuid.NewString(),
		Name:    input.Name,
		Phone:   input.Phone,
		Email:   input.Email,
		Address: input.Address,
		PlanID:  plan.ID,
		SalesID: salesID,
		DueDay:  dueDay,
		Status:  domain.CustomerActive,
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("customer create failed")
		return nil, err
	}

	s.logger.Info().Str("customer_id", customer.ID).Str("sales_id", salesID).Msg("customer created")
	return customer, nil
}

func (s *CustomerService) Get(ctx context.Context, scope ports.CustomerScope, id string) (*domain.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanAccessAllData(scope.Role) && customer.SalesID != scope.SalesID {
		return nil, domain.ErrForbidden
	}
	return customer, nil
}

func (s *CustomerService) List(ctx context.Context, scope ports.CustomerScope, search string) ([]domain.Customer, error) {
	filter := ports.CustomerFilter{Search: search}
	if !domain.CanAccessAllData(scope.Role) {
		filter.SalesID = scope.SalesID
	}
	return s.repo.List(ctx, filter)
}

func (s *CustomerService) Update(ctx context.Context, scope ports.CustomerScope, id string, input ports.UpdateCustomerInput) (*domain.Customer, error) {
	customer, err := s.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.PlanID != nil {
		plan, err := s.plans.FindByID(ctx, *input.PlanID)
		if err != nil {
			return nil, err
		}
		customer.PlanID = plan.ID
	}
	if input.DueDay != nil && *input.DueDay >= 1 && *input.DueDay <= 28 {
		customer.DueDay = *input.DueDay
	}
	if input.Status != nil {
		// Isolation (cutting service for non-payment) is an admin act.
		if !domain.CanAccessAllData(scope.Role) {
			return nil, domain.ErrForbidden
		}
		customer.Status = *input.Status
	}

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) Delete(ctx context.Context, scope ports.CustomerScope, id string) error {
	if _, err := s.Get(ctx, scope, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("customer_id", id).Msg("customer delete failed")
		return err
	}
	return nil
}

func (s *CustomerService) Count(ctx context.Context, scope ports.CustomerScope) (int64, error) {
	filter := ports.CustomerFilter{}
	if !domain.CanAccessAllData(scope.Role) {
		filter.SalesID = scope.SalesID
	}
	return s.repo.Count(ctx, filter)
}
