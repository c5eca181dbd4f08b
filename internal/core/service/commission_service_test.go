package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/networkasro/backoffice/internal/core/domain"
	"github.com/networkasro/backoffice/internal/core/ports"
)

type stubCommissionRepo struct {
	byID      map[string]*domain.Commission
	byInvoice map[string]*domain.Commission
	created   int
}

func newStubCommissionRepo() *stubCommissionRepo {
	return &stubCommissionRepo{
		byID:      make(map[string]*domain.Commission),
		byInvoice: make(map[string]*domain.Commission),
	}
}

func (r *stubCommissionRepo) Create(ctx context.Context, c *domain.Commission) error {
	r.byID[c.ID] = c
	r.byInvoice[c.InvoiceID] = c
	r.created++
	return nil
}

func (r *stubCommissionRepo) FindByInvoiceID(ctx context.Context, invoiceID string) (*domain.Commission, error) {
	c, ok := r.byInvoice[invoiceID]
	if !ok {
		return nil, domain.ErrCommissionNotFound
	}
	return c, nil
}

func (r *stubCommissionRepo) FindByID(ctx context.Context, id string) (*domain.Commission, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCommissionNotFound
	}
	return c, nil
}

func (r *stubCommissionRepo) List(ctx context.Context, filter ports.CommissionFilter) ([]domain.Commission, error) {
	var out []domain.Commission
	for _, c := range r.byID {
		if filter.SalesID != "" && c.SalesID != filter.SalesID {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCommissionRepo) Update(ctx context.Context, c *domain.Commission) error {
	r.byID[c.ID] = c
	r.byInvoice[c.InvoiceID] = c
	return nil
}

func (r *stubCommissionRepo) SumAmount(ctx context.Context, filter ports.CommissionFilter) (int64, error) {
	list, _ := r.List(ctx, filter)
	var total int64
	for _, c := range list {
		total += c.Amount
	}
	return total, nil
}

type stubSettingRepo struct {
	byCustomer map[string]*domain.CommissionSetting
}

func newStubSettingRepo() *stubSettingRepo {
	return &stubSettingRepo{byCustomer: make(map[string]*domain.CommissionSetting)}
}

func (r *stubSettingRepo) Upsert(ctx context.Context, s *domain.CommissionSetting) error {
	r.byCustomer[s.CustomerID] = s
	return nil
}

func (r *stubSettingRepo) FindByCustomer(ctx context.Context, customerID string) (*domain.CommissionSetting, error) {
	s, ok := r.byCustomer[customerID]
	if !ok {
		return nil, domain.ErrCommissionSettingMissing
	}
	return s, nil
}

func (r *stubSettingRepo) List(ctx context.Context) ([]domain.CommissionSetting, error) {
	var out []domain.CommissionSetting
	for _, s := range r.byCustomer {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSettingRepo) Delete(ctx context.Context, id string) error {
	for customerID, s := range r.byCustomer {
		if s.ID == id {
			delete(r.byCustomer, customerID)
		}
	}
	return nil
}

func newTestCommissionService() (*CommissionService, *stubCommissionRepo, *stubSettingRepo) {
	repo := newStubCommissionRepo()
	settings := newStubSettingRepo()
	return NewCommissionService(repo, settings, zerolog.Nop()), repo, settings
}

var accrualJob = ports.AccrualJob{
	InvoiceID:  "i1",
	CustomerID: "c1",
	SalesID:    "sales-1",
	Amount:     150000,
	Month:      8,
	Year:       2026,
}

func TestAccrue(t *testing.T) {
	svc, repo, settings := newTestCommissionService()
	settings.byCustomer["c1"] = &domain.CommissionSetting{ID: "s1", CustomerID: "c1", SalesID: "sales-1", Percentage: 10}

	if err := svc.Accrue(context.Background(), accrualJob); err != nil {
		t.Fatalf("accrue: %v", err)
	}

	commission, err := repo.FindByInvoiceID(context.Background(), "i1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if commission.Amount != 15000 {
		t.Errorf("amount = %d, want 15000", commission.Amount)
	}
	if commission.Status != domain.CommissionPending {
		t.Errorf("status = %s", commission.Status)
	}
	if commission.SalesID != "sales-1" || commission.Month != 8 || commission.Year != 2026 {
		t.Errorf("commission = %+v", commission)
	}
}

func TestAccrue_ReplayIsNoop(t *testing.T) {
	svc, repo, settings := newTestCommissionService()
	settings.byCustomer["c1"] = &domain.CommissionSetting{ID: "s1", CustomerID: "c1", Percentage: 10}

	if err := svc.Accrue(context.Background(), accrualJob); err != nil {
		t.Fatalf("accrue: %v", err)
	}
	if err := svc.Accrue(context.Background(), accrualJob); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if repo.created != 1 {
		t.Fatalf("created = %d, want 1", repo.created)
	}
}

func TestAccrue_NoSettingAccruesNothing(t *testing.T) {
	svc, repo, _ := newTestCommissionService()

	if err := svc.Accrue(context.Background(), accrualJob); err != nil {
		t.Fatalf("accrue: %v", err)
	}
	if repo.created != 0 {
		t.Fatalf("created = %d, want 0", repo.created)
	}
}

func TestAccrue_AmountTruncates(t *testing.T) {
	svc, repo, settings := newTestCommissionService()
	settings.byCustomer["c1"] = &domain.CommissionSetting{ID: "s1", CustomerID: "c1", Percentage: 7.5}

	job := accrualJob
	job.Amount = 99999

	if err := svc.Accrue(context.Background(), job); err != nil {
		t.Fatalf("accrue: %v", err)
	}
	commission, _ := repo.FindByInvoiceID(context.Background(), "i1")
	// 99999 * 7.5% = 7499.925, fractional rupiah are dropped.
	if commission.Amount != 7499 {
		t.Errorf("amount = %d, want 7499", commission.Amount)
	}
}

func TestSetPercentage(t *testing.T) {
	svc, _, settings := newTestCommissionService()

	setting, err := svc.SetPercentage(context.Background(), "c1", "sales-1", 12.5)
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if setting.Percentage != 12.5 {
		t.Errorf("percentage = %v", setting.Percentage)
	}

	// Updating keeps the original setting ID.
	updated, err := svc.SetPercentage(context.Background(), "c1", "sales-1", 20)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != setting.ID {
		t.Errorf("id changed from %s to %s", setting.ID, updated.ID)
	}
	if got := settings.byCustomer["c1"]; got.Percentage != 20 {
		t.Errorf("stored percentage = %v", got.Percentage)
	}
}

func TestSetPercentage_OutOfRange(t *testing.T) {
	svc, _, _ := newTestCommissionService()

	for _, pct := range []float64{-1, 100.5} {
		if _, err := svc.SetPercentage(context.Background(), "c1", "sales-1", pct); !errors.Is(err, domain.ErrInvalidPercentage) {
			t.Errorf("pct %v: expected ErrInvalidPercentage, got %v", pct, err)
		}
	}
}

func TestCommissionTotal_ScopedToSales(t *testing.T) {
	svc, repo, _ := newTestCommissionService()
	repo.byID["cm1"] = &domain.Commission{ID: "cm1", SalesID: "sales-1", Amount: 10000}
	repo.byID["cm2"] = &domain.Commission{ID: "cm2", SalesID: "sales-2", Amount: 25000}

	total, err := svc.Total(context.Background(), salesScope, 0, 0)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != 10000 {
		t.Errorf("sales total = %d, want 10000", total)
	}

	total, err = svc.Total(context.Background(), adminScope, 0, 0)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != 35000 {
		t.Errorf("admin total = %d, want 35000", total)
	}
}
