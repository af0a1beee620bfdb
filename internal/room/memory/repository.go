// Package memory provides an in-memory implementation of the room store.
// It backs unit tests and the zero-configuration deployment mode.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/foresight-sec/incident-room/internal/domain"
	"github.com/foresight-sec/incident-room/internal/room"
)

// Store implements room.Store with a mutex-guarded map. Rooms are stored as
// serialized records and deep-copied through the same JSON codec the
// postgres store uses, so both adapters share round-trip semantics,
// including lossless timestamps.
type Store struct {
	mu    sync.RWMutex
	rooms map[string][]byte
}

// NewStore creates a new in-memory room store.
func NewStore() *Store {
	return &Store{rooms: make(map[string][]byte)}
}

// Put overwrites the stored room (last-write-wins).
func (s *Store) Put(_ context.Context, r *domain.IncidentRoom) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode room: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[r.ID] = data
	return nil
}

// Get returns the room with the given ID, or room.ErrRoomNotFound.
func (s *Store) Get(_ context.Context, id string) (*domain.IncidentRoom, error) {
	s.mu.RLock()
	data, ok := s.rooms[id]
	s.mu.RUnlock()

	if !ok {
		return nil, room.ErrRoomNotFound
	}

	var r domain.IncidentRoom
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode room %s: %w", id, err)
	}
	return &r, nil
}

// List returns all rooms ordered by creation time, newest first.
func (s *Store) List(_ context.Context) ([]*domain.IncidentRoom, error) {
	s.mu.RLock()
	encoded := make([][]byte, 0, len(s.rooms))
	for _, data := range s.rooms {
		encoded = append(encoded, data)
	}
	s.mu.RUnlock()

	rooms := make([]*domain.IncidentRoom, 0, len(encoded))
	for _, data := range encoded {
		var r domain.IncidentRoom
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("decode room: %w", err)
		}
		rooms = append(rooms, &r)
	}

	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].CreatedAt.After(rooms[j].CreatedAt)
	})
	return rooms, nil
}
