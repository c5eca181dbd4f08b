package ports

// AccrualEnqueuer hands commission accrual jobs to a background worker.
// Implementations must preserve ordering per sales user.
type AccrualEnqueuer interface {
	Enqueue(job AccrualJob)
}
