package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/networkasro/backoffice/internal/core/domain"
	"github.com/networkasro/backoffice/internal/core/ports"
)

type stubInvoiceRepo struct {
	byID map[string]*domain.Invoice
}

func newStubInvoiceRepo() *stubInvoiceRepo {
	return &stubInvoiceRepo{byID: make(map[string]*domain.Invoice)}
}

func (r *stubInvoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	for _, existing := range r.byID {
		if existing.CustomerID == inv.CustomerID && existing.Month == inv.Month && existing.Year == inv.Year {
			return domain.ErrDuplicateInvoice
		}
	}
	r.byID[inv.ID] = inv
	return nil
}

func (r *stubInvoiceRepo) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	inv, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrInvoiceNotFound
	}
	return inv, nil
}

func (r *stubInvoiceRepo) FindByPeriod(ctx context.Context, customerID string, month, year int) (*domain.Invoice, error) {
	for _, inv := range r.byID {
		if inv.CustomerID == customerID && inv.Month == month && inv.Year == year {
			return inv, nil
		}
	}
	return nil, domain.ErrInvoiceNotFound
}

func (r *stubInvoiceRepo) List(ctx context.Context, filter ports.InvoiceFilter) ([]domain.Invoice, error) {
	var out []domain.Invoice
	for _, inv := range r.byID {
		out = append(out, *inv)
	}
	return out, nil
}

func (r *stubInvoiceRepo) Update(ctx context.Context, inv *domain.Invoice) error {
	if _, ok := r.byID[inv.ID]; !ok {
		return domain.ErrInvoiceNotFound
	}
	r.byID[inv.ID] = inv
	return nil
}

type stubEnqueuer struct {
	jobs []ports.AccrualJob
}

func (s *stubEnqueuer) Enqueue(job ports.AccrualJob) {
	s.jobs = append(s.jobs, job)
}

func newTestInvoiceService() (*InvoiceService, *stubInvoiceRepo, *stubCustomerRepo, *stubEnqueuer) {
	invoices := newStubInvoiceRepo()
	customers := newStubCustomerRepo()
	enqueuer := &stubEnqueuer{}
	svc := NewInvoiceService(invoices, customers, enqueuer, zerolog.Nop())
	return svc, invoices, customers, enqueuer
}

func TestGenerateMonthly(t *testing.T) {
	svc, invoices, customers, _ := newTestInvoiceService()
	customers.byID["c1"] = &domain.Customer{
		ID: "c1", SalesID: "sales-1", Status: domain.CustomerActive,
		Plan: &domain.Plan{ID: "plan-1", PriceMonthly: 150000},
	}
	customers.byID["c2"] = &domain.Customer{
		ID: "c2", SalesID: "sales-2", Status: domain.CustomerActive,
		Plan: &domain.Plan{ID: "plan-1", PriceMonthly: 250000},
	}

	created, err := svc.GenerateMonthly(context.Background(), 8, 2026)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if created != 2 {
		t.Fatalf("created = %d, want 2", created)
	}

	inv, err := invoices.FindByPeriod(context.Background(), "c1", 8, 2026)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if inv.Amount != 150000 || inv.Status != domain.InvoicePending {
		t.Fatalf("invoice = %+v", inv)
	}

	// A rerun only fills gaps.
	created, err = svc.GenerateMonthly(context.Background(), 8, 2026)
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if created != 0 {
		t.Fatalf("rerun created = %d, want 0", created)
	}
}

func TestGenerateMonthly_InvalidPeriod(t *testing.T) {
	svc, _, _, _ := newTestInvoiceService()
	if _, err := svc.GenerateMonthly(context.Background(), 13, 2026); err == nil {
		t.Fatal("expected error for month 13")
	}
	if _, err := svc.GenerateMonthly(context.Background(), 0, 2026); err == nil {
		t.Fatal("expected error for month 0")
	}
}

func TestMarkPaid(t *testing.T) {
	svc, invoices, _, _ := newTestInvoiceService()
	invoices.byID["i1"] = &domain.Invoice{ID: "i1", Status: domain.InvoicePending}

	inv, err := svc.MarkPaid(context.Background(), adminScope, "i1", ports.MarkPaidInput{ProofURL: "https://proof"})
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if inv.Status != domain.InvoicePaid {
		t.Errorf("status = %s", inv.Status)
	}
	if inv.PaymentDate == nil {
		t.Error("payment date should default to now")
	}

	// Paying a paid invoice is not a valid transition.
	if _, err := svc.MarkPaid(context.Background(), adminScope, "i1", ports.MarkPaidInput{}); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestGet_ScopedToSales(t *testing.T) {
	svc, invoices, customers, _ := newTestInvoiceService()
	customers.byID["c1"] = &domain.Customer{ID: "c1", SalesID: "sales-2"}
	invoices.byID["i1"] = &domain.Invoice{ID: "i1", CustomerID: "c1", Status: domain.InvoicePending}

	// Another sales user's customer is off limits.
	if _, err := svc.Get(context.Background(), salesScope, "i1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	ownScope := ports.CustomerScope{Role: domain.RoleSales, SalesID: "sales-2"}
	if _, err := svc.Get(context.Background(), ownScope, "i1"); err != nil {
		t.Fatalf("own invoice: %v", err)
	}
	if _, err := svc.Get(context.Background(), adminScope, "i1"); err != nil {
		t.Fatalf("admin get: %v", err)
	}
}

func TestMarkPaid_ScopedToSales(t *testing.T) {
	svc, invoices, customers, _ := newTestInvoiceService()
	customers.byID["c1"] = &domain.Customer{ID: "c1", SalesID: "sales-2"}
	invoices.byID["i1"] = &domain.Invoice{ID: "i1", CustomerID: "c1", Status: domain.InvoicePending}

	if _, err := svc.MarkPaid(context.Background(), salesScope, "i1", ports.MarkPaidInput{}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if invoices.byID["i1"].Status != domain.InvoicePending {
		t.Fatal("forbidden caller must not change the invoice")
	}

	ownScope := ports.CustomerScope{Role: domain.RoleSales, SalesID: "sales-2"}
	if _, err := svc.MarkPaid(context.Background(), ownScope, "i1", ports.MarkPaidInput{}); err != nil {
		t.Fatalf("own invoice: %v", err)
	}
}

func TestVerify_SchedulesAccrual(t *testing.T) {
	svc, invoices, customers, enqueuer := newTestInvoiceService()
	customers.byID["c1"] = &domain.Customer{ID: "c1", SalesID: "sales-1"}
	invoices.byID["i1"] = &domain.Invoice{
		ID: "i1", CustomerID: "c1", Status: domain.InvoicePaid,
		Amount: 150000, Month: 8, Year: 2026,
	}

	inv, err := svc.Verify(context.Background(), "i1", "admin-1")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if inv.Status != domain.InvoiceVerified || inv.VerifiedBy != "admin-1" || inv.VerifiedAt == nil {
		t.Fatalf("invoice = %+v", inv)
	}

	if len(enqueuer.jobs) != 1 {
		t.Fatalf("accrual jobs = %d, want 1", len(enqueuer.jobs))
	}
	job := enqueuer.jobs[0]
	if job.InvoiceID != "i1" || job.SalesID != "sales-1" || job.Amount != 150000 {
		t.Fatalf("job = %+v", job)
	}
}

func TestVerify_PendingInvoiceRejected(t *testing.T) {
	svc, invoices, _, enqueuer := newTestInvoiceService()
	invoices.byID["i1"] = &domain.Invoice{ID: "i1", Status: domain.InvoicePending}

	if _, err := svc.Verify(context.Background(), "i1", "admin-1"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if len(enqueuer.jobs) != 0 {
		t.Fatal("no accrual should be scheduled")
	}
}

func TestRevert(t *testing.T) {
	svc, invoices, _, _ := newTestInvoiceService()
	now := time.Now().UTC()
	invoices.byID["i1"] = &domain.Invoice{
		ID: "i1", Status: domain.InvoicePaid,
		PaymentDate: &now, PaymentProofURL: "https://proof",
	}

	inv, err := svc.Revert(context.Background(), "i1")
	if err != nil {
		t.Fatalf("revert: %v", err)
	}
	if inv.Status != domain.InvoicePending || inv.PaymentDate != nil || inv.PaymentProofURL != "" {
		t.Fatalf("invoice = %+v", inv)
	}

	// Verified invoices are final.
	invoices.byID["i2"] = &domain.Invoice{ID: "i2", Status: domain.InvoiceVerified}
	if _, err := svc.Revert(context.Background(), "i2"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}
