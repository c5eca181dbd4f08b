package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/networkasro/backoffice/internal/core/domain"
	"github.com/networkasro/backoffice/internal/core/ports"
)

// InvoiceRepository persists monthly invoices. A composite unique index on
// (customer_id, month, year) backs the one-invoice-per-period rule.
type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	if err := r.db.WithContext(ctx).Create(invoiceFromDomain(inv)).Error; err != nil {
		if isDuplicateKey(err) {
			return domain.ErrDuplicateInvoice
		}
		return fmt.Errorf("create invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	var rec invoiceRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("find invoice: %w", err)
	}
	return rec.toDomain(), nil
}

func (r *InvoiceRepository) FindByPeriod(ctx context.Context, customerID string, month, year int) (*domain.Invoice, error) {
	var rec invoiceRecord
	err := r.db.WithContext(ctx).
		First(&rec, "customer_id = ? AND month = ? AND year = ?", customerID, month, year).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("find invoice: %w", err)
	}
	return rec.toDomain(), nil
}

type invoiceListRow struct {
	invoiceRecord
	CustomerName  string `gorm:"column:customer_name"`
	CustomerPhone string `gorm:"column:customer_phone"`
}

func (r *InvoiceRepository) List(ctx context.Context, filter ports.InvoiceFilter) ([]domain.Invoice, error) {
	q := r.db.WithContext(ctx).Table("invoices").
		Select("invoices.*, c.name AS customer_name, c.phone AS customer_phone").
		Joins("JOIN customers c ON c.id = invoices.customer_id").
		Order("c.name")

	if filter.Month != 0 {
		q = q.Where("invoices.month = ?", filter.Month)
	}
	if filter.Year != 0 {
		q = q.Where("invoices.year = ?", filter.Year)
	}
	if filter.Status != "" {
		q = q.Where("invoices.status = ?", string(filter.Status))
	}
	if filter.SalesID != "" {
		q = q.Where("c.sales_id = ?", filter.SalesID)
	}

	var rows []invoiceListRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}

	invoices := make([]domain.Invoice, 0, len(rows))
	for i := range rows {
		inv := rows[i].invoiceRecord.toDomain()
		inv.CustomerName = rows[i].CustomerName
		inv.CustomerPhone = rows[i].CustomerPhone
		invoices = append(invoices, *inv)
	}
	return invoices, nil
}

func (r *InvoiceRepository) Update(ctx context.Context, inv *domain.Invoice) error {
	res := r.db.WithContext(ctx).Model(&invoiceRecord{}).Where("id = ?", inv.ID).Updates(map[string]any{
		"status":            string(inv.Status),
		"payment_date":      inv.PaymentDate,
		"payment_proof_url": inv.PaymentProofURL,
		"verified_by":       inv.VerifiedBy,
		"verified_at":       inv.VerifiedAt,
	})
	if res.Error != nil {
		return fmt.Errorf("update invoice: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}
