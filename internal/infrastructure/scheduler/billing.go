// Package scheduler runs the recurring billing job that opens each
// month's invoices.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/networkasro/backoffice/internal/core/ports"
)

// First day of every month at 00:05 local time. The five minute offset
// keeps the run clear of other midnight jobs.
const monthlySpec = "5 0 1 * *"

type BillingScheduler struct {
	cron     *cron.Cron
	invoices ports.InvoiceService
	log      zerolog.Logger
}

func NewBillingScheduler(invoices ports.InvoiceService, log zerolog.Logger) *BillingScheduler {
	return &BillingScheduler{
		cron:     cron.New(),
		invoices: invoices,
		log:      log,
	}
}

// Start registers the monthly generation job and starts the cron loop.
func (s *BillingScheduler) Start() error {
	if _, err := s.cron.AddFunc(monthlySpec, s.runMonthly); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *BillingScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *BillingScheduler) runMonthly() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	now := time.Now()
	created, err := s.invoices.GenerateMonthly(ctx, int(now.Month()), now.Year())
	if err != nil {
		s.log.Error().Err(err).
			Int("month", int(now.Month())).
			Int("year", now.Year()).
			Msg("monthly invoice generation failed")
		return
	}
	s.log.Info().
		Int("month", int(now.Month())).
		Int("year", now.Year()).
		Int("created", created).
		Msg("monthly invoices generated")
}
