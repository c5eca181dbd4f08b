package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/networkasro/backoffice/internal/core/domain"
	"github.com/networkasro/backoffice/internal/core/ports"
)

// CustomerRepository persists subscribers. List views carry the joined
// plan and the owning sales user's name.
type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	if err := r.db.WithContext(ctx).Create(customerFromDomain(c)).Error; err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	var rec customerRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}

	customer := rec.toDomain()
	var plan planRecord
	if err := r.db.WithContext(ctx).First(&plan, "id = ?", rec.PlanID).Error; err == nil {
		customer.Plan = plan.toDomain()
	}
	return customer, nil
}

type customerListRow struct {
	customerRecord
	SalesName *string `gorm:"column:sales_name"`
}

func (r *CustomerRepository) List(ctx context.Context, filter ports.CustomerFilter) ([]domain.Customer, error) {
	q := r.db.WithContext(ctx).Table("customers").
		Select("customers.*, p.full_name AS sales_name").
		Joins("LEFT JOIN user_profiles p ON p.user_id = customers.sales_id").
		Order("customers.name")

	if filter.SalesID != "" {
		q = q.Where("customers.sales_id = ?", filter.SalesID)
	}
	if filter.Status != "" {
		q = q.Where("customers.status = ?", string(filter.Status))
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("customers.name ILIKE ? OR customers.phone ILIKE ?", like, like)
	}

	var rows []customerListRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	customers := make([]domain.Customer, 0, len(rows))
	planIDs := make([]string, 0, len(rows))
	for i := range rows {
		c := rows[i].customerRecord.toDomain()
		if rows[i].SalesName != nil {
			c.SalesName = *rows[i].SalesName
		}
		customers = append(customers, *c)
		planIDs = append(planIDs, c.PlanID)
	}
	if len(planIDs) == 0 {
		return customers, nil
	}

	// Attach plans in one query instead of per-row lookups.
	var plans []planRecord
	if err := r.db.WithContext(ctx).Where("id IN ?", planIDs).Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("list customers: load plans: %w", err)
	}
	byID := make(map[string]*domain.Plan, len(plans))
	for i := range plans {
		byID[plans[i].ID] = plans[i].toDomain()
	}
	for i := range customers {
		customers[i].Plan = byID[customers[i].PlanID]
	}
	return customers, nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *domain.Customer) error {
	res := r.db.WithContext(ctx).Model(&customerRecord{}).Where("id = ?", c.ID).Updates(map[string]any{
		"name":    c.Name,
		"phone":   c.Phone,
		"email":   c.Email,
		"address": c.Address,
		"plan_id": c.PlanID,
		"due_day": c.DueDay,
		"status":  string(c.Status),
	})
	if res.Error != nil {
		return fmt.Errorf("update customer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&customerRecord{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete customer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepository) Count(ctx context.Context, filter ports.CustomerFilter) (int64, error) {
	q := r.db.WithContext(ctx).Model(&customerRecord{})
	if filter.SalesID != "" {
		q = q.Where("sales_id = ?", filter.SalesID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}
