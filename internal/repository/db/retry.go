package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"travro/internal/logger"
)

// ConnectWithRetry calls Open until it succeeds or attempts are exhausted,
// waiting backoff between tries. The last error is returned on failure.
func ConnectWithRetry(ctx context.Context, opts Options, attempts int, backoff time.Duration, log *logger.Logger) (*sql.DB, Dialect, error) {
	if attempts < 1 {
		attempts = 1
	}
	if backoff <= 0 {
		backoff = time.Second
	}

	var (
		conn    *sql.DB
		dialect Dialect
		try     int
	)
	b := retry.WithMaxRetries(uint64(attempts-1), retry.NewConstant(backoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		try++
		c, d, err := Open(ctx, opts)
		if err != nil {
			if log != nil {
				log.Warnw("db_connect_failed", "driver", opts.Driver, "attempt", try, "max_attempts", attempts, "err", err)
			}
			return retry.RetryableError(err)
		}
		conn, dialect = c, d
		return nil
	})
	if err != nil {
		return nil, dialect, fmt.Errorf("connect to %s after %d attempts: %w", opts.Driver, try, err)
	}
	if log != nil {
		log.Infow("db_connected", "driver", opts.Driver, "attempts", try)
	}
	return conn, dialect, nil
}
