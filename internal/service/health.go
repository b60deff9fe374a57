package service

import (
	"context"
	"sync"
	"time"

	"travro/internal/logger"
	"travro/internal/models"
	"travro/internal/repository"
)

const pingTimeout = 2 * time.Second

// HealthService pings the store on a ticker and keeps the last result.
type HealthService struct {
	store repository.Pinger
	log   *logger.Logger
	now   func() time.Time

	mu      sync.RWMutex
	status  models.StoreStatus
	checked bool
}

func NewHealthService(store repository.Pinger, log *logger.Logger) *HealthService {
	return &HealthService{store: store, log: log, now: time.Now}
}

// Run ticks at the given interval until ctx is canceled.
func (s *HealthService) Run(ctx context.Context, tick time.Duration) {
	s.check(ctx)
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.check(ctx)
		}
	}
}

// Status returns the last observed state, probing once if Run has not yet.
func (s *HealthService) Status(ctx context.Context) models.StoreStatus {
	s.mu.RLock()
	st, checked := s.status, s.checked
	s.mu.RUnlock()
	if checked {
		return st
	}
	return s.check(ctx)
}

func (s *HealthService) check(ctx context.Context) models.StoreStatus {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	st := models.StoreStatus{Connected: true, Message: "Database connected", CheckedAt: s.now().UTC()}
	if err := s.store.PingContext(pingCtx); err != nil {
		st.Connected = false
		st.Message = "Database disconnected"
	}

	s.mu.Lock()
	prev, wasChecked := s.status, s.checked
	s.status, s.checked = st, true
	s.mu.Unlock()

	if s.log != nil && (!wasChecked || prev.Connected != st.Connected) {
		if st.Connected {
			s.log.Infow("store_connected")
		} else {
			s.log.Warnw("store_disconnected")
		}
	}
	return st
}
