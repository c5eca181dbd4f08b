package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/networkasro/backoffice/internal/core/ports"
)

type recordingAccruer struct {
	mu   sync.Mutex
	jobs []ports.AccrualJob
	done chan struct{}
	want int
}

func (a *recordingAccruer) Accrue(ctx context.Context, job ports.AccrualJob) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.jobs = append(a.jobs, job)
	if len(a.jobs) == a.want {
		close(a.done)
	}
	return nil
}

func TestDispatcher_ProcessesJobs(t *testing.T) {
	accruer := &recordingAccruer{done: make(chan struct{}), want: 3}
	d := NewDispatcher(2, accruer, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for _, id := range []string{"i1", "i2", "i3"} {
		d.Enqueue(ports.AccrualJob{InvoiceID: id, SalesID: "sales-1"})
	}

	select {
	case <-accruer.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("jobs not processed in time")
	}
}

func TestDispatcher_SameSalesKeepsOrder(t *testing.T) {
	accruer := &recordingAccruer{done: make(chan struct{}), want: 5}
	d := NewDispatcher(4, accruer, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	ids := []string{"i1", "i2", "i3", "i4", "i5"}
	for _, id := range ids {
		d.Enqueue(ports.AccrualJob{InvoiceID: id, SalesID: "sales-1"})
	}

	select {
	case <-accruer.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("jobs not processed in time")
	}

	accruer.mu.Lock()
	defer accruer.mu.Unlock()
	for i, job := range accruer.jobs {
		if job.InvoiceID != ids[i] {
			t.Fatalf("job %d = %s, want %s", i, job.InvoiceID, ids[i])
		}
	}
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(8, &recordingAccruer{done: make(chan struct{})}, zerolog.Nop())

	first := d.shardIndex("sales-42")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("sales-42"); got != first {
			t.Fatalf("shard changed: %d != %d", got, first)
		}
	}
}
