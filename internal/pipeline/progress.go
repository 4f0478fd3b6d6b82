package pipeline

import (
	"fmt"
	"sync"
	"time"
)

// ProgressTracker tracks how far the batch has advanced. It is safe for
// concurrent use by parallel extraction workers.
type ProgressTracker struct {
	total     int
	current   int
	message   string
	startTime time.Time
	mu        sync.Mutex
}

// NewProgressTracker creates a new progress tracker over total units of
// work.
func NewProgressTracker(total int) *ProgressTracker {
	return &ProgressTracker{
		total:     total,
		startTime: time.Now(),
	}
}

// Increment advances progress by one unit and returns the new count, so
// concurrent workers each observe a distinct position.
func (p *ProgressTracker) Increment(message string) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current++
	p.message = message
	return p.current
}

// Progress returns the current progress state.
func (p *ProgressTracker) Progress() (current, total int, percentage float64, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	percentage = 0
	if p.total > 0 {
		percentage = float64(p.current) / float64(p.total) * 100
	}

	return p.current, p.total, percentage, p.message
}

// Elapsed returns the time since tracking started.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	return time.Since(p.startTime)
}

// ETA estimates the remaining time from the observed rate.
func (p *ProgressTracker) ETA() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == 0 || p.total == 0 {
		return "calculating..."
	}

	elapsed := time.Since(p.startTime)
	rate := float64(p.current) / elapsed.Seconds()
	if rate == 0 {
		return "calculating..."
	}

	remaining := float64(p.total-p.current) / rate
	switch {
	case remaining < 60:
		return fmt.Sprintf("%.0f seconds", remaining)
	case remaining < 3600:
		return fmt.Sprintf("%.1f minutes", remaining/60)
	default:
		return fmt.Sprintf("%.1f hours", remaining/3600)
	}
}
