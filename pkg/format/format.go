// Package format renders currency and dates for the id-ID locale used
// across the back office.
package format

import (
	"strconv"
	"strings"
	"time"
)

var monthNames = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// Currency renders an amount in rupiah with dot-grouped thousands,
// e.g. 1500000 → "Rp 1.500.000".
func Currency(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	out := "Rp " + b.String()
	if negative {
		out = "-" + out
	}
	return out
}

// MonthName returns the Indonesian name for month 1..12, or "" out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// MonthYear renders a billing period, e.g. (8, 2026) → "Agustus 2026".
func MonthYear(month, year int) string {
	name := MonthName(month)
	if name == "" {
		return strconv.Itoa(year)
	}
	return name + " " + strconv.Itoa(year)
}

// Date renders a date as "2 Januari 2026".
func Date(t time.Time) string {
	return strconv.Itoa(t.Day()) + " " + MonthName(int(t.Month())) + " " + strconv.Itoa(t.Year())
}

// CurrentMonthYear returns the current billing period.
func CurrentMonthYear() (month, year int) {
	now := time.Now()
	return int(now.Month()), now.Year()
}
