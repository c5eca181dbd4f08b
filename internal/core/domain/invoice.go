package domain

import "time"

// InvoiceStatus is the payment lifecycle state of a monthly invoice.
type InvoiceStatus string

const (
	InvoicePending  InvoiceStatus = "pending"
	InvoicePaid     InvoiceStatus = "paid"
	InvoiceVerified InvoiceStatus = "verified"
)

// validInvoiceTransitions defines the allowed payment state machine.
var validInvoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoicePending: {InvoicePaid},
	InvoicePaid:    {InvoiceVerified, InvoicePending},
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	for _, allowed := range validInvoiceTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Invoice is one billing period for one customer. Verification is the
// admin/owner act that confirms a reported payment and triggers commission
// accrual for the owning sales user.
type Invoice struct {
	ID              string        `json:"id"`
	CustomerID      string        `json:"customer_id"`
	Month           int           `json:"month"` // 1..12
	Year            int           `json:"year"`
	Amount          int64         `json:"amount"`
	Status          InvoiceStatus `json:"status"`
	PaymentDate     *time.Time    `json:"payment_date,omitempty"`
	PaymentProofURL string        `json:"payment_proof_url,omitempty"`
	VerifiedBy      string        `json:"verified_by,omitempty"`
	VerifiedAt      *time.Time    `json:"verified_at,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`

	// Joined view for list responses.
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerPhone string `json:"customer_phone,omitempty"`
}

// CommissionStatus is the payout state of an accrued commission.
type CommissionStatus string

const (
	CommissionPending CommissionStatus = "pending"
	CommissionPaid    CommissionStatus = "paid"
)

// CommissionSetting fixes the percentage a sales user earns on one
// customer's verified invoices.
type CommissionSetting struct {
	ID         string  `json:"id"`
	CustomerID string  `json:"customer_id"`
	SalesID    string  `json:"sales_id"`
	Percentage float64 `json:"percentage"` // 0..100

	CustomerName string `json:"customer_name,omitempty"`
	SalesName    string `json:"sales_name,omitempty"`
}

// Commission is the amount accrued to a sales user when one invoice is
// verified. Amount = invoice amount * percentage / 100, truncated to whole
// rupiah.
type Commission struct {
	ID         string           `json:"id"`
	SalesID    string           `json:"sales_id"`
	CustomerID string           `json:"customer_id"`
	InvoiceID  string           `json:"invoice_id"`
	Percentage float64          `json:"percentage"`
	Amount     int64            `json:"amount"`
	Month      int              `json:"month"`
	Year       int              `json:"year"`
	Status     CommissionStatus `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`

	SalesName    string `json:"sales_name,omitempty"`
	CustomerName string `json:"customer_name,omitempty"`
}
