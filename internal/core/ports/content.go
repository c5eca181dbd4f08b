package ports

import (
	"context"

	"github.com/networkasro/backoffice/internal/core/domain"
)

// PageInput carries the editable fields of a content page.
type PageInput struct {
	Title   string
	Slug    string
	Icon    string
	Type    domain.PageType
	Order   int
	Active  bool
	Content string
	URL     string
}

// SliderInput carries the editable fields of a home slider.
type SliderInput struct {
	Title       string
	Description string
	Icon        string
	ImageBase64 string
	Order       int
	Active      bool
	TargetType  domain.SliderTarget
	TargetSlug  string
	TargetURL   string
}

// ContentService defines the content-app use cases. Reads marked "public"
// need no authentication; every mutation requires admin rank.
type ContentService interface {
	// ListPages returns all pages for admins, or only active ones when
	// activeOnly is set (public listing). Ordered by Order ascending.
	ListPages(ctx context.Context, activeOnly bool) ([]domain.Page, error)
	GetPageBySlug(ctx context.Context, slug string) (*domain.Page, error)
	CreatePage(ctx context.Context, createdBy string, input PageInput) (*domain.Page, error)
	UpdatePage(ctx context.Context, id string, input PageInput) (*domain.Page, error)
	DeletePage(ctx context.Context, id string) error

	ListSliders(ctx context.Context, activeOnly bool) ([]domain.Slider, error)
	CreateSlider(ctx context.Context, input SliderInput) (*domain.Slider, error)
	UpdateSlider(ctx context.Context, id string, input SliderInput) (*domain.Slider, error)
	DeleteSlider(ctx context.Context, id string) error

	GetSettings(ctx context.Context) (*domain.AppSettings, error)
	UpdateSettings(ctx context.Context, s *domain.AppSettings) (*domain.AppSettings, error)
}

// PageRepository defines persistence for content pages.
type PageRepository interface {
	Create(ctx context.Context, p *domain.Page) error
	FindByID(ctx context.Context, id string) (*domain.Page, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Page, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Page, error)
	Update(ctx context.Context, p *domain.Page) error
	Delete(ctx context.Context, id string) error
}

// SliderRepository defines persistence for sliders.
type SliderRepository interface {
	Create(ctx context.Context, s *domain.Slider) error
	FindByID(ctx context.Context, id string) (*domain.Slider, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Slider, error)
	Update(ctx context.Context, s *domain.Slider) error
	Delete(ctx context.Context, id string) error
}

// SettingsRepository stores the singleton app settings document.
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.AppSettings, error)
	Save(ctx context.Context, s *domain.AppSettings) error
}
