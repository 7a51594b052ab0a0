package seed

import (
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/phonebook/core"
	"github.com/poiesic/phonebook/directory"
)

// Report counts what happened to each submitted contact.
type Report struct {
	Added      int
	Duplicates int
	Invalid    int
	Failed     int
}

// Total is the number of contacts processed.
func (r Report) Total() int {
	return r.Added + r.Duplicates + r.Invalid + r.Failed
}

// Seeder adds contacts to a directory on a worker pool.
type Seeder struct {
	dir    *directory.Locked
	pool   *ants.Pool
	logger *slog.Logger

	progressOut      io.Writer
	progressInterval int
}

// Option configures a Seeder.
type Option func(*Seeder) error

// WithPoolSize sets the number of concurrent workers.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Seeder) error {
		if size < 1 {
			size = 1
		}
		if s.pool != nil {
			s.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Seeder) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithProgress prints a running count to w every interval contacts.
// Default is no progress output.
func WithProgress(w io.Writer, interval int) Option {
	return func(s *Seeder) error {
		s.progressOut = w
		s.progressInterval = interval
		return nil
	}
}

// NewSeeder creates a Seeder writing to dir.
func NewSeeder(dir *directory.Locked, opts ...Option) (*Seeder, error) {
	if dir == nil {
		return nil, ErrDirectoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Seeder{
		dir:    dir,
		pool:   pool,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if optErr := opt(s); optErr != nil {
			s.Release()
			return nil, optErr
		}
	}
	return s, nil
}

// Load adds every contact from source and waits for all of them.
// Rejected contacts are counted in the report, not returned as errors.
// The only error is a pool that refuses work; contacts already submitted are
// still waited for.
func (s *Seeder) Load(ctx context.Context, source iter.Seq[core.Contact]) (Report, error) {
	var (
		wg                                 sync.WaitGroup
		added, duplicates, invalid, failed atomic.Int64
		submitErr                          error
		tracker                            *progress
	)
	if s.progressOut != nil {
		tracker = newProgress(s.progressOut, s.progressInterval)
	}

	for contact := range source {
		if ctx.Err() != nil {
			submitErr = ctx.Err()
			break
		}

		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			if tracker != nil {
				defer tracker.tick()
			}
			err := s.dir.AddContact(ctx, contact)
			switch {
			case err == nil:
				added.Add(1)
			case errors.Is(err, core.ErrDuplicatePhone):
				duplicates.Add(1)
			case errors.Is(err, core.ErrInvalidCategory):
				invalid.Add(1)
			default:
				failed.Add(1)
				s.logger.Error("error adding contact", "phone", contact.Phone, "err", err)
			}
		})
		if err != nil {
			wg.Done()
			submitErr = err
			break
		}
	}
	wg.Wait()
	if tracker != nil {
		tracker.finish()
	}

	report := Report{
		Added:      int(added.Load()),
		Duplicates: int(duplicates.Load()),
		Invalid:    int(invalid.Load()),
		Failed:     int(failed.Load()),
	}
	s.logger.Info("seeding finished",
		"added", report.Added,
		"duplicates", report.Duplicates,
		"invalid", report.Invalid,
		"failed", report.Failed)
	return report, submitErr
}

// Release releases the worker pool.
// The Seeder should not be used after calling Release.
func (s *Seeder) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}
