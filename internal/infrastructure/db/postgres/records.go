package postgres

import (
	"time"

	"github.com/networkasro/backoffice/internal/core/domain"
)

type userRecord struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userRecord) TableName() string { return "users" }

type profileRecord struct {
	ID       string `gorm:"type:uuid;primaryKey"`
	UserID   string `gorm:"type:uuid;uniqueIndex;not null"`
	FullName string `gorm:"not null"`
	Role     string `gorm:"not null;index"`
	Phone    string
	Email    string `gorm:"not null"`
}

func (profileRecord) TableName() string { return "user_profiles" }

type planRecord struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	Name         string `gorm:"not null"`
	SpeedMbps    int    `gorm:"not null"`
	PriceMonthly int64  `gorm:"not null"`
	Description  string
	IsActive     bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (planRecord) TableName() string { return "plans" }

type customerRecord struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	Name      string `gorm:"not null"`
	Phone     string `gorm:"not null"`
	Email     string
	Address   string `gorm:"not null"`
	PlanID    string `gorm:"type:uuid;index;not null"`
	SalesID   string `gorm:"type:uuid;index;not null"`
	DueDay    int    `gorm:"not null;default:1"`
	Status    string `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (customerRecord) TableName() string { return "customers" }

type invoiceRecord struct {
	ID              string `gorm:"type:uuid;primaryKey"`
	CustomerID      string `gorm:"type:uuid;not null;uniqueIndex:idx_invoice_period,priority:1"`
	Month           int    `gorm:"not null;uniqueIndex:idx_invoice_period,priority:2"`
	Year            int    `gorm:"not null;uniqueIndex:idx_invoice_period,priority:3"`
	Amount          int64  `gorm:"not null"`
	Status          string `gorm:"not null;index"`
	PaymentDate     *time.Time
	PaymentProofURL string
	VerifiedBy      string
	VerifiedAt      *time.Time
	CreatedAt       time.Time
}

func (invoiceRecord) TableName() string { return "invoices" }

type commissionSettingRecord struct {
	ID         string  `gorm:"type:uuid;primaryKey"`
	CustomerID string  `gorm:"type:uuid;uniqueIndex;not null"`
	SalesID    string  `gorm:"type:uuid;index;not null"`
	Percentage float64 `gorm:"not null"`
}

func (commissionSettingRecord) TableName() string { return "commission_settings" }

type commissionRecord struct {
	ID         string  `gorm:"type:uuid;primaryKey"`
	SalesID    string  `gorm:"type:uuid;index;not null"`
	CustomerID string  `gorm:"type:uuid;index;not null"`
	InvoiceID  string  `gorm:"type:uuid;uniqueIndex;not null"`
	Percentage float64 `gorm:"not null"`
	Amount     int64   `gorm:"not null"`
	Month      int     `gorm:"not null"`
	Year       int     `gorm:"not null"`
	Status     string  `gorm:"not null;index"`
	CreatedAt  time.Time
}

func (commissionRecord) TableName() string { return "commissions" }

// --- record <-> domain mapping ---

func (r *userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (r *profileRecord) toDomain() *domain.Profile {
	return &domain.Profile{
		ID:       r.ID,
		UserID:   r.UserID,
		FullName: r.FullName,
		Role:     domain.Role(r.Role),
		Phone:    r.Phone,
		Email:    r.Email,
	}
}

func (r *planRecord) toDomain() *domain.Plan {
	return &domain.Plan{
		ID:           r.ID,
		Name:         r.Name,
		SpeedMbps:    r.SpeedMbps,
		PriceMonthly: r.PriceMonthly,
		Description:  r.Description,
		IsActive:     r.IsActive,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func planFromDomain(p *domain.Plan) *planRecord {
	return &planRecord{
		ID:           p.ID,
		Name:         p.Name,
		SpeedMbps:    p.SpeedMbps,
		PriceMonthly: p.PriceMonthly,
		Description:  p.Description,
		IsActive:     p.IsActive,
	}
}

func (r *customerRecord) toDomain() *domain.Customer {
	return &domain.Customer{
		ID:        r.ID,
		Name:      r.Name,
		Phone:     r.Phone,
		Email:     r.Email,
		Address:   r.Address,
		PlanID:    r.PlanID,
		SalesID:   r.SalesID,
		DueDay:    r.DueDay,
		Status:    domain.CustomerStatus(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func customerFromDomain(c *domain.Customer) *customerRecord {
	return &customerRecord{
		ID:      c.ID,
		Name:    c.Name,
		Phone:   c.Phone,
		Email:   c.Email,
		Address: c.Address,
		PlanID:  c.PlanID,
		SalesID: c.SalesID,
		DueDay:  c.DueDay,
		Status:  string(c.Status),
	}
}

func (r *invoiceRecord) toDomain() *domain.Invoice {
	return &domain.Invoice{
		ID:              r.ID,
		CustomerID:      r.CustomerID,
		Month:           r.Month,
		Year:            r.Year,
		Amount:          r.Amount,
		Status:          domain.InvoiceStatus(r.Status),
		PaymentDate:     r.PaymentDate,
		PaymentProofURL: r.PaymentProofURL,
		VerifiedBy:      r.VerifiedBy,
		VerifiedAt:      r.VerifiedAt,
		CreatedAt:       r.CreatedAt,
	}
}

func invoiceFromDomain(inv *domain.Invoice) *invoiceRecord {
	return &invoiceRecord{
		ID:              inv.ID,
		CustomerID:      inv.CustomerID,
		Month:           inv.Month,
		Year:            inv.Year,
		Amount:          inv.Amount,
		Status:          string(inv.Status),
		PaymentDate:     inv.PaymentDate,
		PaymentProofURL: inv.PaymentProofURL,
		VerifiedBy:      inv.VerifiedBy,
		VerifiedAt:      inv.VerifiedAt,
	}
}

func (r *commissionRecord) toDomain() *domain.Commission {
	return &domain.Commission{
		ID:         r.ID,
		SalesID:    r.SalesID,
		CustomerID: r.CustomerID,
		InvoiceID:  r.InvoiceID,
		Percentage: r.Percentage,
		Amount:     r.Amount,
		Month:      r.Month,
		Year:       r.Year,
		Status:     domain.CommissionStatus(r.Status),
		CreatedAt:  r.CreatedAt,
	}
}

func (r *commissionSettingRecord) toDomain() *domain.CommissionSetting {
	return &domain.CommissionSetting{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		SalesID:    r.SalesID,
		Percentage: r.Percentage,
	}
}
