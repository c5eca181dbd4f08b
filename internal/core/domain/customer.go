package domain

import "time"

// CustomerStatus is the service state of a subscriber.
type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "active"
	CustomerIsolated CustomerStatus = "isolated"
)

// Customer is an internet subscriber. SalesID is the profile id of the
// sales user who acquired the customer and earns its commissions.
type Customer struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Phone     string         `json:"phone"`
	Email     string         `json:"email,omitempty"`
	Address   string         `json:"address"`
	PlanID    string         `json:"plan_id"`
	SalesID   string         `json:"sales_id"`
	DueDay    int            `json:"due_day"` // billing day of month, 1..28
	Status    CustomerStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	// Joined views, populated by list queries.
	Plan      *Plan  `json:"plan,omitempty"`
	SalesName string `json:"sales_name,omitempty"`
}

// Plan is a sellable internet service package.
type Plan struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	SpeedMbps    int       `json:"speed_mbps"`
	PriceMonthly int64     `json:"price_monthly"` // rupiah, no decimals
	Description  string    `json:"description,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
