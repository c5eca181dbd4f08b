package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/networkasro/backoffice/internal/core/domain"
	"github.com/networkasro/backoffice/internal/core/ports"
)

// ContentService implements the content-app use cases: pages, sliders and
// the settings singleton.
type ContentService struct {
	pages    ports.PageRepository
	sliders  ports.SliderRepository
	settings ports.SettingsRepository
	logger   zerolog.Logger
}

func NewContentService(pages ports.PageRepository, sliders ports.SliderRepository, settings ports.SettingsRepository, logger zerolog.Logger) *ContentService {
	return &ContentService{pages: pages, sliders: sliders, settings: settings, logger: logger}
}

func (s *ContentService) ListPages(ctx context.Context, activeOnly bool) ([]domain.Page, error) {
	return s.pages.List(ctx, activeOnly)
}

func (s *ContentService) GetPageBySlug(ctx context.Context, slug string) (*domain.Page, error) {
	return s.pages.FindBySlug(ctx, slug)
}

func (s *ContentService) CreatePage(ctx context.Context, createdBy string, input ports.PageInput) (*domain.Page, error) {
	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	if strings.TrimSpace(input.Title) == "" || slug == "" || !domain.ValidPageType(input.Type) {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.pages.FindBySlug(ctx, slug); err == nil {
		return nil, domain.ErrSlugTaken
	} else if !errors.Is(err, domain.ErrPageNotFound) {
		return nil, err
	}

	page := &domain.Page{
		ID:        uuid.NewString(),
		Title:     input.Title,
		Slug:      slug,
		Icon:      input.Icon,
		Type:      input.Type,
		Order:     input.Order,
		Active:    input.Active,
		Content:   input.Content,
		URL:       input.URL,
		CreatedBy: createdBy,
	}
	if err := s.pages.Create(ctx, page); err != nil {
		s.logger.Error().Err(err).Str("slug", slug).Msg("page create failed")
		return nil, err
	}
	return page, nil
}

func (s *ContentService) UpdatePage(ctx context.Context, id string, input ports.PageInput) (*domain.Page, error) {
	page, err := s.pages.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.ValidPageType(input.Type) {
		return nil, domain.ErrInvalidInput
	}

	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	if slug != page.Slug {
		if _, err := s.pages.FindBySlug(ctx, slug); err == nil {
			return nil, domain.ErrSlugTaken
		} else if !errors.Is(err, domain.ErrPageNotFound) {
			return nil, err
		}
	}

	page.Title = input.Title
	page.Slug = slug
	page.Icon = input.Icon
	page.Type = input.Type
	page.Order = input.Order
	page.Active = input.Active
	page.Content = input.Content
	page.URL = input.URL

	if err := s.pages.Update(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *ContentService) DeletePage(ctx context.Context, id string) error {
	if _, err := s.pages.FindByID(ctx, id); err != nil {
		return err
	}
	return s.pages.Delete(ctx, id)
}

func (s *ContentService) ListSliders(ctx context.Context, activeOnly bool) ([]domain.Slider, error) {
	return s.sliders.List(ctx, activeOnly)
}

func (s *ContentService) CreateSlider(ctx context.Context, input ports.SliderInput) (*domain.Slider, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, domain.ErrInvalidInput
	}

	slider := &domain.Slider{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Icon:        input.Icon,
		ImageBase64: input.ImageBase64,
		Order:       input.Order,
		Active:      input.Active,
		TargetType:  normalizeTarget(input.TargetType),
		TargetSlug:  input.TargetSlug,
		TargetURL:   input.TargetURL,
	}
	if err := s.sliders.Create(ctx, slider); err != nil {
		s.logger.Error().Err(err).Str("title", input.Title).Msg("slider create failed")
		return nil, err
	}
	return slider, nil
}

func (s *ContentService) UpdateSlider(ctx context.Context, id string, input ports.SliderInput) (*domain.Slider, error) {
	slider, err := s.sliders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	slider.Title = input.Title
	slider.Description = input.Description
	slider.Icon = input.Icon
	slider.ImageBase64 = input.ImageBase64
	slider.Order = input.Order
	slider.Active = input.Active
	slider.TargetType = normalizeTarget(input.TargetType)
	slider.TargetSlug = input.TargetSlug
	slider.TargetURL = input.TargetURL

	if err := s.sliders.Update(ctx, slider); err != nil {
		return nil, err
	}
	return slider, nil
}

func (s *ContentService) DeleteSlider(ctx context.Context, id string) error {
	if _, err := s.sliders.FindByID(ctx, id); err != nil {
		return err
	}
	return s.sliders.Delete(ctx, id)
}

// GetSettings returns stored settings, or branding defaults when nothing
// has been saved yet.
func (s *ContentService) GetSettings(ctx context.Context) (*domain.AppSettings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return &domain.AppSettings{
			PrimaryColor:   "#8B4513",
			SecondaryColor: "#D2691E",
		}, nil
	}
	return settings, nil
}

func (s *ContentService) UpdateSettings(ctx context.Context, settings *domain.AppSettings) (*domain.AppSettings, error) {
	if err := s.settings.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func normalizeTarget(t domain.SliderTarget) domain.SliderTarget {
	switch t {
	case domain.SliderTargetPage, domain.SliderTargetURL:
		return t
	default:
		return domain.SliderTargetNone
	}
}
