package session

import (
	"context"
	"log/slog"
	"time"
)

// DefaultSweepInterval bounds how long an expired session may linger in a
// store that does not expire entries on its own.
const DefaultSweepInterval = time.Minute

// purger is implemented by stores that keep expired entries until told to drop them.
type purger interface {
	Purge(ctx context.Context) (int64, error)
}

// sweeper calls Purge on a fixed interval until closed.
type sweeper struct {
	stop chan struct{}
	done chan struct{}
}

func startSweeper(p purger, interval time.Duration, logger *slog.Logger) *sweeper {
	s := &sweeper{stop: make(chan struct{}), done: make(chan struct{})}
	go s.run(p, interval, logger)

	return s
}

func (s *sweeper) run(p purger, interval time.Duration, logger *slog.Logger) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			n, err := p.Purge(context.Background())
			if logger == nil {
				continue
			}
			if err != nil {
				logger.Warn("session sweep failed", slog.String("error", err.Error()))
			} else if n > 0 {
				logger.Debug("expired sessions purged", slog.Int64("count", n))
			}
		}
	}
}

// close stops the goroutine and waits for it. A nil sweeper is a no-op.
func (s *sweeper) close() {
	if s == nil {
		return
	}
	close(s.stop)
	<-s.done
}

// sweepInterval picks the sweep period for ttl: the requested interval, or
// the smaller of ttl and DefaultSweepInterval.
func sweepInterval(ttl, requested time.Duration) time.Duration {
	if requested > 0 {
		return requested
	}
	if ttl < DefaultSweepInterval {
		return ttl
	}

	return DefaultSweepInterval
}
