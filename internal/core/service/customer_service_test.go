package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/networkasro/backoffice/internal/core/domain"
	"github.com/networkasro/backoffice/internal/core/ports"
)

type stubCustomerRepo struct {
	byID       map[string]*domain.Customer
	lastFilter ports.CustomerFilter
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{byID: make(map[string]*domain.Customer)}
}

func (r *stubCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	r.byID[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	return c, nil
}

func (r *stubCustomerRepo) List(ctx context.Context, filter ports.CustomerFilter) ([]domain.Customer, error) {
	r.lastFilter = filter
	var out []domain.Customer
	for _, c := range r.byID {
		if filter.SalesID != "" && c.SalesID != filter.SalesID {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	if _, ok := r.byID[c.ID]; !ok {
		return domain.ErrCustomerNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrCustomerNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubCustomerRepo) Count(ctx context.Context, filter ports.CustomerFilter) (int64, error) {
	list, _ := r.List(ctx, filter)
	return int64(len(list)), nil
}

type stubPlanRepo struct {
	byID map[string]*domain.Plan
}

func newStubPlanRepo(plans ...*domain.Plan) *stubPlanRepo {
	r := &stubPlanRepo{byID: make(map[string]*domain.Plan)}
	for _, p := range plans {
		r.byID[p.ID] = p
	}
	return r
}

func (r *stubPlanRepo) Create(ctx context.Context, p *domain.Plan) error {
	r.byID[p.ID] = p
	return nil
}

func (r *stubPlanRepo) FindByID(ctx context.Context, id string) (*domain.Plan, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPlanNotFound
	}
	return p, nil
}

func (r *stubPlanRepo) List(ctx context.Context, activeOnly bool) ([]domain.Plan, error) {
	var out []domain.Plan
	for _, p := range r.byID {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPlanRepo) Update(ctx context.Context, p *domain.Plan) error {
	r.byID[p.ID] = p
	return nil
}

func (r *stubPlanRepo) Delete(ctx context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

var testPlan = &domain.Plan{ID: "plan-1", Name: "Home 20", SpeedMbps: 20, PriceMonthly: 150000, IsActive: true}

func newTestCustomerService() (*CustomerService, *stubCustomerRepo) {
	repo := newStubCustomerRepo()
	svc := NewCustomerService(repo, newStubPlanRepo(testPlan), zerolog.Nop())
	return svc, repo
}

var (
	adminScope = ports.CustomerScope{Role: domain.RoleAdmin}
	salesScope = ports.CustomerScope{Role: domain.RoleSales, SalesID: "sales-1"}
)

func TestCustomerCreate_SalesForcedToOwnAccount(t *testing.T) {
	svc, _ := newTestCustomerService()

	c, err := svc.Create(context.Background(), salesScope, ports.CreateCustomerInput{
		Name: "Budi", Phone: "0812", Address: "Jl. Mawar 1",
		PlanID: "plan-1", SalesID: "someone-else", DueDay: 5,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.SalesID != "sales-1" {
		t.Errorf("sales_id = %q, want the caller's own", c.SalesID)
	}
	if c.Status != domain.CustomerActive {
		t.Errorf("status = %s, want active", c.Status)
	}
}

func TestCustomerCreate_DueDayClamped(t *testing.T) {
	svc, _ := newTestCustomerService()

	c, err := svc.Create(context.Background(), adminScope, ports.CreateCustomerInput{
		Name: "Budi", Phone: "0812", Address: "Jl. Mawar 1",
		PlanID: "plan-1", SalesID: "sales-1", DueDay: 31,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.DueDay != 1 {
		t.Errorf("due_day = %d, want clamp to 1", c.DueDay)
	}
}

func TestCustomerCreate_InactivePlanRejected(t *testing.T) {
	repo := newStubCustomerRepo()
	inactive := &domain.Plan{ID: "plan-2", Name: "Old", IsActive: false}
	svc := NewCustomerService(repo, newStubPlanRepo(inactive), zerolog.Nop())

	_, err := svc.Create(context.Background(), adminScope, ports.CreateCustomerInput{
		Name: "Budi", Phone: "0812", Address: "Jl. Mawar 1", PlanID: "plan-2", DueDay: 1,
	})
	if !errors.Is(err, domain.ErrPlanNotFound) {
		t.Fatalf("expected ErrPlanNotFound, got %v", err)
	}
}

func TestCustomerGet_OwnershipEnforced(t *testing.T) {
	svc, repo := newTestCustomerService()
	repo.byID["c1"] = &domain.Customer{ID: "c1", SalesID: "sales-2"}

	if _, err := svc.Get(context.Background(), salesScope, "c1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Get(context.Background(), adminScope, "c1"); err != nil {
		t.Fatalf("admin read: %v", err)
	}
}

func TestCustomerList_SalesScoped(t *testing.T) {
	svc, repo := newTestCustomerService()
	repo.byID["c1"] = &domain.Customer{ID: "c1", SalesID: "sales-1"}
	repo.byID["c2"] = &domain.Customer{ID: "c2", SalesID: "sales-2"}

	list, err := svc.List(context.Background(), salesScope, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != "c1" {
		t.Fatalf("got %+v, want only the caller's customer", list)
	}

	all, err := svc.List(context.Background(), adminScope, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin sees %d customers, want 2", len(all))
	}
}

func TestCustomerUpdate_StatusChangeIsAdminOnly(t *testing.T) {
	svc, repo := newTestCustomerService()
	repo.byID["c1"] = &domain.Customer{ID: "c1", SalesID: "sales-1", Status: domain.CustomerActive}

	isolated := domain.CustomerIsolated
	_, err := svc.Update(context.Background(), salesScope, "c1", ports.UpdateCustomerInput{Status: &isolated})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	updated, err := svc.Update(context.Background(), adminScope, "c1", ports.UpdateCustomerInput{Status: &isolated})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Status != domain.CustomerIsolated {
		t.Errorf("status = %s", updated.Status)
	}
}

func TestCustomerUpdate_PatchSemantics(t *testing.T) {
	svc, repo := newTestCustomerService()
	repo.byID["c1"] = &domain.Customer{ID: "c1", Name: "Budi", Phone: "0812", SalesID: "sales-1"}

	name := "Budi Santoso"
	updated, err := svc.Update(context.Background(), salesScope, "c1", ports.UpdateCustomerInput{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Budi Santoso" {
		t.Errorf("name = %q", updated.Name)
	}
	if updated.Phone != "0812" {
		t.Errorf("phone = %q, untouched field changed", updated.Phone)
	}
}

func TestCustomerCount_Scoped(t *testing.T) {
	svc, repo := newTestCustomerService()
	repo.byID["c1"] = &domain.Customer{ID: "c1", SalesID: "sales-1"}
	repo.byID["c2"] = &domain.Customer{ID: "c2", SalesID: "sales-2"}

	n, err := svc.Count(context.Background(), salesScope)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}
}
