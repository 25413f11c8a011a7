package service

import (
	"context"
	"time"

	"hotelier/internal/domain"
	"hotelier/internal/metrics"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

// RoomService fronts room reads with the availability cache. Mutations and
// booking lifecycle events invalidate it; a short TTL bounds staleness if
// an invalidation is lost.
type RoomService struct {
	repo   domain.RoomRepository
	cache  domain.AvailabilityCache
	logger *zerolog.Logger
}

func NewRoomService(repo domain.RoomRepository, cache domain.AvailabilityCache, logger *zerolog.Logger) *RoomService {
	return &RoomService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// ListAvailableRooms serves from the cache when it holds a fresh list and
// repopulates it from the database otherwise. Cache errors degrade to a
// plain database read.
func (s *RoomService) ListAvailableRooms(ctx context.Context) ([]*models.RoomDetail, error) {
	if s.cache != nil {
		rooms, ok, err := s.cache.GetAvailableRooms(ctx)
		switch {
		case err != nil:
			metrics.IncCache("error")
			s.logger.Warn().Err(err).Msg("availability cache read failed")
		case ok:
			metrics.IncCache("hit")
			return rooms, nil
		default:
			metrics.IncCache("miss")
		}
	}

	rooms, err := s.repo.ListAvailableRooms(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		ttl := time.Duration(models.AvailabilityCacheTTL) * time.Second
		if err := s.cache.SetAvailableRooms(ctx, rooms, ttl); err != nil {
			s.logger.Warn().Err(err).Msg("availability cache write failed")
		}
	}
	return rooms, nil
}

// InvalidateAvailability drops the cached free-room list. Wired to room
// mutations and to booking check-in/check-out events.
func (s *RoomService) InvalidateAvailability(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("availability cache invalidation failed")
	}
}

func (s *RoomService) CreateRoom(ctx context.Context, room *models.Room) error {
	if _, err := s.repo.GetRoomType(ctx, room.RoomTypeID); err != nil {
		return err
	}
	if err := s.repo.CreateRoom(ctx, room); err != nil {
		return err
	}
	s.InvalidateAvailability(ctx)
	return nil
}

func (s *RoomService) GetRoom(ctx context.Context, id int64) (*models.RoomDetail, error) {
	return s.repo.GetRoom(ctx, id)
}

func (s *RoomService) ListRooms(ctx context.Context) ([]*models.RoomDetail, error) {
	return s.repo.ListRooms(ctx)
}

func (s *RoomService) UpdateRoom(ctx context.Context, room *models.Room) error {
	if _, err := s.repo.GetRoomType(ctx, room.RoomTypeID); err != nil {
		return err
	}
	if err := s.repo.UpdateRoom(ctx, room); err != nil {
		return err
	}
	s.InvalidateAvailability(ctx)
	return nil
}

func (s *RoomService) DeleteRoom(ctx context.Context, id int64) error {
	if err := s.repo.DeleteRoom(ctx, id); err != nil {
		return err
	}
	s.InvalidateAvailability(ctx)
	return nil
}

func (s *RoomService) CreateRoomType(ctx context.Context, rt *models.RoomType) error {
	return s.repo.CreateRoomType(ctx, rt)
}

func (s *RoomService) GetRoomType(ctx context.Context, id int64) (*models.RoomType, error) {
	return s.repo.GetRoomType(ctx, id)
}

func (s *RoomService) ListRoomTypes(ctx context.Context) ([]*models.RoomType, error) {
	return s.repo.ListRoomTypes(ctx)
}

func (s *RoomService) UpdateRoomType(ctx context.Context, rt *models.RoomType) error {
	return s.repo.UpdateRoomType(ctx, rt)
}

func (s *RoomService) DeleteRoomType(ctx context.Context, id int64) error {
	return s.repo.DeleteRoomType(ctx, id)
}
