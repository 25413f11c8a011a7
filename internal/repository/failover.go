package repository

import (
	"context"
	"sync/atomic"
	"time"

	"hotelier/internal/domain"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

// FailoverAvailabilityCache prefers the primary cache and falls back to
// the in-memory one when the primary errors. It retries the primary after
// a minute.
type FailoverAvailabilityCache struct {
	primary   domain.AvailabilityCache
	fallback  domain.AvailabilityCache
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck time.Time
}

func NewFailoverAvailabilityCache(primary, fallback domain.AvailabilityCache, logger *zerolog.Logger) *FailoverAvailabilityCache {
	return &FailoverAvailabilityCache{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (f *FailoverAvailabilityCache) GetAvailableRooms(ctx context.Context) ([]*models.RoomDetail, bool, error) {
	if !f.isDown.Load() {
		rooms, ok, err := f.primary.GetAvailableRooms(ctx)
		if err == nil {
			return rooms, ok, nil
		}
		f.logger.Error().Err(err).Msg("Primary availability cache failed, falling back to memory")
		f.isDown.Store(true)
		f.lastCheck = time.Now()
	}

	// Try to recover after 1 minute
	if f.isDown.Load() && time.Since(f.lastCheck) > time.Minute {
		rooms, ok, err := f.primary.GetAvailableRooms(ctx)
		if err == nil {
			f.isDown.Store(false)
			return rooms, ok, nil
		}
		f.lastCheck = time.Now()
	}

	return f.fallback.GetAvailableRooms(ctx)
}

func (f *FailoverAvailabilityCache) SetAvailableRooms(ctx context.Context, rooms []*models.RoomDetail, ttl time.Duration) error {
	if !f.isDown.Load() {
		err := f.primary.SetAvailableRooms(ctx, rooms, ttl)
		if err == nil {
			return nil
		}
		f.logger.Error().Err(err).Msg("Primary availability cache failed, falling back to memory")
		f.isDown.Store(true)
		f.lastCheck = time.Now()
	}

	return f.fallback.SetAvailableRooms(ctx, rooms, ttl)
}

// Invalidate clears both layers so a recovered primary cannot serve a
// stale list written before the outage.
func (f *FailoverAvailabilityCache) Invalidate(ctx context.Context) error {
	if !f.isDown.Load() {
		if err := f.primary.Invalidate(ctx); err != nil {
			f.logger.Error().Err(err).Msg("Primary availability cache failed, falling back to memory")
			f.isDown.Store(true)
			f.lastCheck = time.Now()
		}
	}

	return f.fallback.Invalidate(ctx)
}

func (f *FailoverAvailabilityCache) Healthy(ctx context.Context) bool {
	return f.primary.Healthy(ctx) || f.fallback.Healthy(ctx)
}
