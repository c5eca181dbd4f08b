package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/networkasro/backoffice/internal/core/domain"
	"github.com/networkasro/backoffice/internal/core/ports"
)

type stubPageRepo struct {
	byID map[string]*domain.Page
}

func newStubPageRepo() *stubPageRepo {
	return &stubPageRepo{byID: make(map[string]*domain.Page)}
}

func (r *stubPageRepo) Create(ctx context.Context, p *domain.Page) error {
	r.byID[p.ID] = p
	return nil
}

func (r *stubPageRepo) FindByID(ctx context.Context, id string) (*domain.Page, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPageNotFound
	}
	return p, nil
}

func (r *stubPageRepo) FindBySlug(ctx context.Context, slug string) (*domain.Page, error) {
	for _, p := range r.byID {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, domain.ErrPageNotFound
}

func (r *stubPageRepo) List(ctx context.Context, activeOnly bool) ([]domain.Page, error) {
	var out []domain.Page
	for _, p := range r.byID {
		if activeOnly && !p.Active {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPageRepo) Update(ctx context.Context, p *domain.Page) error {
	r.byID[p.ID] = p
	return nil
}

func (r *stubPageRepo) Delete(ctx context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

type stubSliderRepo struct {
	byID map[string]*domain.Slider
}

func newStubSliderRepo() *stubSliderRepo {
	return &stubSliderRepo{byID: make(map[string]*domain.Slider)}
}

func (r *stubSliderRepo) Create(ctx context.Context, s *domain.Slider) error {
	r.byID[s.ID] = s
	return nil
}

func (r *stubSliderRepo) FindByID(ctx context.Context, id string) (*domain.Slider, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSliderNotFound
	}
	return s, nil
}

func (r *stubSliderRepo) List(ctx context.Context, activeOnly bool) ([]domain.Slider, error) {
	var out []domain.Slider
	for _, s := range r.byID {
		if activeOnly && !s.Active {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSliderRepo) Update(ctx context.Context, s *domain.Slider) error {
	r.byID[s.ID] = s
	return nil
}

func (r *stubSliderRepo) Delete(ctx context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

type stubSettingsRepo struct {
	stored *domain.AppSettings
}

func (r *stubSettingsRepo) Get(ctx context.Context) (*domain.AppSettings, error) {
	return r.stored, nil
}

func (r *stubSettingsRepo) Save(ctx context.Context, s *domain.AppSettings) error {
	r.stored = s
	return nil
}

func newTestContentService() (*ContentService, *stubPageRepo, *stubSliderRepo, *stubSettingsRepo) {
	pages := newStubPageRepo()
	sliders := newStubSliderRepo()
	settings := &stubSettingsRepo{}
	svc := NewContentService(pages, sliders, settings, zerolog.Nop())
	return svc, pages, sliders, settings
}

func TestCreatePage_NormalizesSlug(t *testing.T) {
	svc, _, _, _ := newTestContentService()

	page, err := svc.CreatePage(context.Background(), "admin-1", ports.PageInput{
		Title: "Tentang Kami",
		Slug:  "  Tentang-Kami ",
		Type:  domain.PageStatic,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if page.Slug != "tentang-kami" {
		t.Errorf("slug = %q", page.Slug)
	}
	if page.CreatedBy != "admin-1" {
		t.Errorf("created_by = %q", page.CreatedBy)
	}
}

func TestCreatePage_DuplicateSlug(t *testing.T) {
	svc, pages, _, _ := newTestContentService()
	pages.byID["p1"] = &domain.Page{ID: "p1", Slug: "promo"}

	_, err := svc.CreatePage(context.Background(), "admin-1", ports.PageInput{
		Title: "Promo",
		Slug:  "Promo",
		Type:  domain.PageStatic,
	})
	if !errors.Is(err, domain.ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
}

func TestCreatePage_RejectsBadInput(t *testing.T) {
	svc, _, _, _ := newTestContentService()

	cases := []ports.PageInput{
		{Title: "", Slug: "x", Type: domain.PageStatic},
		{Title: "X", Slug: "  ", Type: domain.PageStatic},
		{Title: "X", Slug: "x", Type: domain.PageType("popup")},
	}
	for i, input := range cases {
		if _, err := svc.CreatePage(context.Background(), "admin-1", input); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestUpdatePage_SlugConflictOnlyWhenChanged(t *testing.T) {
	svc, pages, _, _ := newTestContentService()
	pages.byID["p1"] = &domain.Page{ID: "p1", Slug: "promo", Type: domain.PageStatic}
	pages.byID["p2"] = &domain.Page{ID: "p2", Slug: "info", Type: domain.PageStatic}

	// Keeping its own slug is fine.
	updated, err := svc.UpdatePage(context.Background(), "p1", ports.PageInput{
		Title: "Promo", Slug: "promo", Type: domain.PageStatic,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Promo" {
		t.Errorf("title = %q", updated.Title)
	}

	// Moving onto another page's slug is not.
	if _, err := svc.UpdatePage(context.Background(), "p1", ports.PageInput{
		Title: "Promo", Slug: "info", Type: domain.PageStatic,
	}); !errors.Is(err, domain.ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
}

func TestCreateSlider_NormalizesTarget(t *testing.T) {
	svc, _, _, _ := newTestContentService()

	slider, err := svc.CreateSlider(context.Background(), ports.SliderInput{
		Title:      "Paket Baru",
		TargetType: domain.SliderTarget("banner"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if slider.TargetType != domain.SliderTargetNone {
		t.Errorf("target = %q, want none", slider.TargetType)
	}

	slider, err = svc.CreateSlider(context.Background(), ports.SliderInput{
		Title:      "Promo",
		TargetType: domain.SliderTargetPage,
		TargetSlug: "promo",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if slider.TargetType != domain.SliderTargetPage {
		t.Errorf("target = %q, want page", slider.TargetType)
	}
}

func TestListSliders_ActiveOnly(t *testing.T) {
	svc, _, sliders, _ := newTestContentService()
	sliders.byID["s1"] = &domain.Slider{ID: "s1", Active: true}
	sliders.byID["s2"] = &domain.Slider{ID: "s2", Active: false}

	list, err := svc.ListSliders(context.Background(), true)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != "s1" {
		t.Fatalf("got %+v, want only the active slider", list)
	}
}

func TestGetSettings_DefaultsWhenUnset(t *testing.T) {
	svc, _, _, _ := newTestContentService()

	settings, err := svc.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if settings.PrimaryColor != "#8B4513" || settings.SecondaryColor != "#D2691E" {
		t.Errorf("defaults = %q / %q", settings.PrimaryColor, settings.SecondaryColor)
	}
}

func TestUpdateSettings_RoundTrip(t *testing.T) {
	svc, _, _, repo := newTestContentService()

	in := &domain.AppSettings{AppName: "NetworkAsro", PrimaryColor: "#000000", SecondaryColor: "#FFFFFF"}
	if _, err := svc.UpdateSettings(context.Background(), in); err != nil {
		t.Fatalf("update: %v", err)
	}
	if repo.stored == nil || repo.stored.AppName != "NetworkAsro" {
		t.Fatalf("stored = %+v", repo.stored)
	}

	settings, err := svc.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if settings.PrimaryColor != "#000000" {
		t.Errorf("primary = %q", settings.PrimaryColor)
	}
}
