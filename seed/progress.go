package seed

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// progress prints a running count of processed contacts every interval items.
type progress struct {
	writer   io.Writer
	interval int

	mu        sync.Mutex
	done      int
	startTime time.Time
}

func newProgress(writer io.Writer, interval int) *progress {
	if interval < 1 {
		interval = 1
	}
	return &progress{
		writer:    writer,
		interval:  interval,
		startTime: time.Now(),
	}
}

// tick records one processed contact.
func (p *progress) tick() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++
	if p.done%p.interval == 0 {
		p.report()
	}
}

// finish prints the final count followed by a newline.
func (p *progress) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.report()
	fmt.Fprintln(p.writer)
}

// report must be called with the lock held.
func (p *progress) report() {
	rate := float64(p.done) / time.Since(p.startTime).Seconds()
	fmt.Fprintf(p.writer, "\rProgress: %d contacts - %.1f contacts/s", p.done, rate)
}
