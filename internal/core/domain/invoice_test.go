package domain

import "testing"

func TestInvoiceTransitions(t *testing.T) {
	cases := []struct {
		from InvoiceStatus
		to   InvoiceStatus
		want bool
	}{
		{InvoicePending, InvoicePaid, true},
		{InvoicePending, InvoiceVerified, false},
		{InvoicePaid, InvoiceVerified, true},
		{InvoicePaid, InvoicePending, true}, // mistaken payment report
		{InvoiceVerified, InvoicePending, false},
		{InvoiceVerified, InvoicePaid, false},
		{InvoicePending, InvoicePending, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s → %s = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
