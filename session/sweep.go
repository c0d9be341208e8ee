package session

import (
	"context"
	"time"

	"github.com/mbolis/survey-box/log"
)

// Sweeper is a Store that can drop sessions created before a given time,
// reporting how many stored entries went with them.
type Sweeper interface {
	Sweep(ctx context.Context, before time.Time) (int64, error)
}

// RunSweeper drops sessions older than ttl every interval, until ctx is done.
// Their cookies have expired by then, so nothing can reach them anymore.
func RunSweeper(ctx context.Context, s Sweeper, ttl time.Duration, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		n, err := s.Sweep(ctx, time.Now().Add(-ttl))
		if err != nil {
			log.Errorf("session.sweep: %s", err)
			continue
		}
		if n > 0 {
			log.Debugf("session.sweep: %d expired entries removed", n)
		}
	}
}
