package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/networkasro/backoffice/internal/api/metrics"
	"github.com/networkasro/backoffice/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Accruer processes a single commission accrual job.
type Accruer interface {
	Accrue(ctx context.Context, job ports.AccrualJob) error
}

// Dispatcher routes accrual jobs to a fixed set of workers using consistent
// hashing on the sales user id, guaranteeing per-sales-user ordering.
type Dispatcher struct {
	workers []chan ports.AccrualJob
	service Accruer
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service Accruer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.AccrualJob, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.AccrualJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a job to the worker responsible for its sales user.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(job ports.AccrualJob) {
	idx := d.shardIndex(job.SalesID)
	d.workers[idx] <- job
	metrics.AccrualQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a sales user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(salesID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(salesID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.AccrualJob) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			metrics.AccrualQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			if err := d.service.Accrue(ctx, job); err != nil {
				metrics.AccrualsProcessedTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("invoice_id", job.InvoiceID).
					Str("sales_id", job.SalesID).
					Int("worker_id", id).
					Msg("commission accrual failed")
				continue
			}
			metrics.AccrualsProcessedTotal.WithLabelValues("ok").Inc()
		}
	}
}
