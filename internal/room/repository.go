package room

import (
	"context"

	"github.com/foresight-sec/incident-room/internal/domain"
)

// Store is the keyed persistence contract backing the aggregate.
// Put overwrites the stored room (last-write-wins); Get returns
// ErrRoomNotFound for unknown IDs. Implementations must round-trip every
// timestamp-bearing field losslessly.
type Store interface {
	Put(ctx context.Context, room *domain.IncidentRoom) error
	Get(ctx context.Context, id string) (*domain.IncidentRoom, error)
	List(ctx context.Context) ([]*domain.IncidentRoom, error)
}
