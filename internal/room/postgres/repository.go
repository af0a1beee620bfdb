// Package postgres provides the PostgreSQL implementation of the room store.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/foresight-sec/incident-room/internal/domain"
	"github.com/foresight-sec/incident-room/internal/room"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements room.Store using PostgreSQL.
//
// The aggregate is persisted as a single JSONB document, so every timestamp
// round-trips losslessly as RFC 3339 with nanoseconds. The scalar columns
// (stage, client_name, created_at) exist for ordering and reporting only
// and are never read back into the aggregate.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL room repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Put upserts the room record. Last write wins; there is no concurrent
// writer model beyond the service's per-room serialization.
func (r *Repository) Put(ctx context.Context, rm *domain.IncidentRoom) error {
	data, err := json.Marshal(rm)
	if err != nil {
		return fmt.Errorf("encode room: %w", err)
	}

	query := `
		INSERT INTO incident_rooms (id, client_id, client_name, stage, risk_score, created_at, data)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET stage = EXCLUDED.stage,
		    risk_score = EXCLUDED.risk_score,
		    data = EXCLUDED.data
	`
	_, err = r.db.Exec(ctx, query,
		rm.ID,
		rm.ClientID,
		rm.ClientName,
		string(rm.Stage),
		rm.RiskScore,
		rm.CreatedAt,
		data,
	)
	if err != nil {
		return fmt.Errorf("put room: %w", err)
	}
	return nil
}

// Get retrieves a room by ID.
func (r *Repository) Get(ctx context.Context, id string) (*domain.IncidentRoom, error) {
	query := `SELECT data FROM incident_rooms WHERE id = $1`

	var data []byte
	err := r.db.QueryRow(ctx, query, id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, room.ErrRoomNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}

	var rm domain.IncidentRoom
	if err := json.Unmarshal(data, &rm); err != nil {
		return nil, fmt.Errorf("decode room %s: %w", id, err)
	}
	return &rm, nil
}

// List retrieves all rooms, newest first.
func (r *Repository) List(ctx context.Context) ([]*domain.IncidentRoom, error) {
	query := `SELECT data FROM incident_rooms ORDER BY created_at DESC, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	rooms := make([]*domain.IncidentRoom, 0)
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		var rm domain.IncidentRoom
		if err := json.Unmarshal(data, &rm); err != nil {
			return nil, fmt.Errorf("decode room: %w", err)
		}
		rooms = append(rooms, &rm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rooms: %w", err)
	}
	return rooms, nil
}
