package repository

import (
	"context"
	"sync"
	"time"

	"hotelier/internal/models"
)

// MemoryAvailabilityCache is the in-process fallback used when Redis is
// unreachable. Entries expire by wall clock, checked on read.
type MemoryAvailabilityCache struct {
	mu        sync.RWMutex
	rooms     []*models.RoomDetail
	populated bool
	expiresAt time.Time
}

func NewMemoryAvailabilityCache() *MemoryAvailabilityCache {
	return &MemoryAvailabilityCache{}
}

func (m *MemoryAvailabilityCache) GetAvailableRooms(_ context.Context) ([]*models.RoomDetail, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.populated || time.Now().After(m.expiresAt) {
		return nil, false, nil
	}
	rooms := make([]*models.RoomDetail, len(m.rooms))
	copy(rooms, m.rooms)
	return rooms, true, nil
}

func (m *MemoryAvailabilityCache) SetAvailableRooms(_ context.Context, rooms []*models.RoomDetail, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rooms = make([]*models.RoomDetail, len(rooms))
	copy(m.rooms, rooms)
	m.populated = true
	m.expiresAt = time.Now().Add(ttl)
	return nil
}

func (m *MemoryAvailabilityCache) Invalidate(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rooms = nil
	m.populated = false
	return nil
}

func (m *MemoryAvailabilityCache) Healthy(_ context.Context) bool {
	return true
}
