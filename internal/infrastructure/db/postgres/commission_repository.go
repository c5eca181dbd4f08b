package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/networkasro/backoffice/internal/core/domain"
	"github.com/networkasro/backoffice/internal/core/ports"
)

// CommissionRepository persists accrued commissions. The unique index on
// invoice_id keeps accrual idempotent per invoice.
type CommissionRepository struct {
	db *gorm.DB
}

func NewCommissionRepository(db *gorm.DB) *CommissionRepository {
	return &CommissionRepository{db: db}
}

func (r *CommissionRepository) Create(ctx context.Context, c *domain.Commission) error {
	rec := &commissionRecord{
		ID:         c.ID,
		SalesID:    c.SalesID,
		CustomerID: c.CustomerID,
		InvoiceID:  c.InvoiceID,
		Percentage: c.Percentage,
		Amount:     c.Amount,
		Month:      c.Month,
		Year:       c.Year,
		Status:     string(c.Status),
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("create commission: %w", err)
	}
	return nil
}

func (r *CommissionRepository) FindByInvoiceID(ctx context.Context, invoiceID string) (*domain.Commission, error) {
	var rec commissionRecord
	if err := r.db.WithContext(ctx).First(&rec, "invoice_id = ?", invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCommissionNotFound
		}
		return nil, fmt.Errorf("find commission: %w", err)
	}
	return rec.toDomain(), nil
}

func (r *CommissionRepository) FindByID(ctx context.Context, id string) (*domain.Commission, error) {
	var rec commissionRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCommissionNotFound
		}
		return nil, fmt.Errorf("find commission: %w", err)
	}
	return rec.toDomain(), nil
}

type commissionListRow struct {
	commissionRecord
	SalesName    *string `gorm:"column:sales_name"`
	CustomerName string  `gorm:"column:customer_name"`
}

func (r *CommissionRepository) List(ctx context.Context, filter ports.CommissionFilter) ([]domain.Commission, error) {
	q := r.db.WithContext(ctx).Table("commissions").
		Select("commissions.*, p.full_name AS sales_name, c.name AS customer_name").
		Joins("LEFT JOIN user_profiles p ON p.user_id = commissions.sales_id").
		Joins("LEFT JOIN customers c ON c.id = commissions.customer_id").
		Order("commissions.created_at DESC")

	if filter.SalesID != "" {
		q = q.Where("commissions.sales_id = ?", filter.SalesID)
	}
	if filter.Month != 0 {
		q = q.Where("commissions.month = ?", filter.Month)
	}
	if filter.Year != 0 {
		q = q.Where("commissions.year = ?", filter.Year)
	}

	var rows []commissionListRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list commissions: %w", err)
	}

	commissions := make([]domain.Commission, 0, len(rows))
	for i := range rows {
		c := rows[i].commissionRecord.toDomain()
		if rows[i].SalesName != nil {
			c.SalesName = *rows[i].SalesName
		}
		c.CustomerName = rows[i].CustomerName
		commissions = append(commissions, *c)
	}
	return commissions, nil
}

func (r *CommissionRepository) Update(ctx context.Context, c *domain.Commission) error {
	res := r.db.WithContext(ctx).Model(&commissionRecord{}).Where("id = ?", c.ID).
		Update("status", string(c.Status))
	if res.Error != nil {
		return fmt.Errorf("update commission: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrCommissionNotFound
	}
	return nil
}

func (r *CommissionRepository) SumAmount(ctx context.Context, filter ports.CommissionFilter) (int64, error) {
	q := r.db.WithContext(ctx).Model(&commissionRecord{})
	if filter.SalesID != "" {
		q = q.Where("sales_id = ?", filter.SalesID)
	}
	if filter.Month != 0 {
		q = q.Where("month = ?", filter.Month)
	}
	if filter.Year != 0 {
		q = q.Where("year = ?", filter.Year)
	}

	var total *int64
	if err := q.Select("SUM(amount)").Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("sum commissions: %w", err)
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// CommissionSettingRepository persists per-customer percentage settings.
type CommissionSettingRepository struct {
	db *gorm.DB
}

func NewCommissionSettingRepository(db *gorm.DB) *CommissionSettingRepository {
	return &CommissionSettingRepository{db: db}
}

func (r *CommissionSettingRepository) Upsert(ctx context.Context, s *domain.CommissionSetting) error {
	rec := &commissionSettingRecord{
		ID:         s.ID,
		CustomerID: s.CustomerID,
		SalesID:    s.SalesID,
		Percentage: s.Percentage,
	}
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", s.CustomerID).
		Assign(map[string]any{"sales_id": s.SalesID, "percentage": s.Percentage}).
		Attrs(map[string]any{"id": s.ID}).
		FirstOrCreate(rec).Error
	if err != nil {
		return fmt.Errorf("upsert commission setting: %w", err)
	}
	return nil
}

func (r *CommissionSettingRepository) FindByCustomer(ctx context.Context, customerID string) (*domain.CommissionSetting, error) {
	var rec commissionSettingRecord
	if err := r.db.WithContext(ctx).First(&rec, "customer_id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCommissionSettingMissing
		}
		return nil, fmt.Errorf("find commission setting: %w", err)
	}
	return rec.toDomain(), nil
}

type settingListRow struct {
	commissionSettingRecord
	SalesName    *string `gorm:"column:sales_name"`
	CustomerName string  `gorm:"column:customer_name"`
}

func (r *CommissionSettingRepository) List(ctx context.Context) ([]domain.CommissionSetting, error) {
	var rows []settingListRow
	err := r.db.WithContext(ctx).Table("commission_settings").
		Select("commission_settings.*, p.full_name AS sales_name, c.name AS customer_name").
		Joins("LEFT JOIN user_profiles p ON p.user_id = commission_settings.sales_id").
		Joins("LEFT JOIN customers c ON c.id = commission_settings.customer_id").
		Order("c.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list commission settings: %w", err)
	}

	settings := make([]domain.CommissionSetting, 0, len(rows))
	for i := range rows {
		s := rows[i].commissionSettingRecord.toDomain()
		if rows[i].SalesName != nil {
			s.SalesName = *rows[i].SalesName
		}
		s.CustomerName = rows[i].CustomerName
		settings = append(settings, *s)
	}
	return settings, nil
}

func (r *CommissionSettingRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&commissionSettingRecord{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete commission setting: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrCommissionSettingMissing
	}
	return nil
}
