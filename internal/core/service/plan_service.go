package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/networkasro/backoffice/internal/core/domain"
	"github.com/networkasro/backoffice/internal/core/ports"
)

// PlanService implements service-package management.
type PlanService struct {
	repo   ports.PlanRepository
	logger zerolog.Logger
}

func NewPlanService(repo ports.PlanRepository, logger zerolog.Logger) *PlanService {
	return &PlanService{repo: repo, logger: logger}
}

func (s *PlanService) Create(ctx context.Context, input ports.PlanInput) (*domain.Plan, error) {
	if strings.TrimSpace(input.Name) == "" || input.SpeedMbps <= 0 || input.PriceMonthly <= 0 {
		return nil, domain.ErrInvalidInput
	}

	plan := &domain.Plan{
		ID:           uuid.NewString(),
		Name:         input.Name,
		SpeedMbps:    input.SpeedMbps,
		PriceMonthly: input.PriceMonthly,
		Description:  input.Description,
		IsActive:     input.IsActive,
	}
	if err := s.repo.Create(ctx, plan); err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("plan create failed")
		return nil, err
	}
	return plan, nil
}

func (s *PlanService) Get(ctx context.Context, id string) (*domain.Plan, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PlanService) List(ctx context.Context, activeOnly bool) ([]domain.Plan, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *PlanService) Update(ctx context.Context, id string, input ports.PlanInput) (*domain.Plan, error) {
	plan, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	plan.Name = input.Name
	plan.SpeedMbps = input.SpeedMbps
	plan.PriceMonthly = input.PriceMonthly
	plan.Description = input.Description
	plan.IsActive = input.IsActive

	if err := s.repo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *PlanService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
