package room

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/foresight-sec/incident-room/internal/domain"
	"github.com/google/uuid"
)

// CollectorConfig contains evidence auto-collection configuration.
type CollectorConfig struct {
	Enabled    bool
	DelayScale float64 // scales per-source delays; 0 collects immediately
}

// DefaultCollectorConfig returns default collector configuration.
func DefaultCollectorConfig() CollectorConfig {
	return CollectorConfig{
		Enabled:    true,
		DelayScale: 1.0,
	}
}

// collectionSource describes one automated evidence source. IDs are stable
// per source so re-running collection for a room is idempotent: an item
// already present is simply skipped.
type collectionSource struct {
	ID       string
	FileName string
	FileSize int64
	FileType string
	Category domain.EvidenceCategory
	Source   string
	Delay    time.Duration
}

// collectionSources is the fixed catalogue of automated sources queried for
// every insider-threat room.
var collectionSources = []collectionSource{
	{
		ID:       "auto-dlp-alerts",
		FileName: "dlp-alerts-7days.json",
		FileSize: 245680,
		FileType: "json",
		Category: domain.EvidenceCategoryDLPAlert,
		Source:   "DLP Platform",
		Delay:    1200 * time.Millisecond,
	},
	{
		ID:       "auto-access-patterns",
		FileName: "user-access-patterns-90days.csv",
		FileSize: 189234,
		FileType: "csv",
		Category: domain.EvidenceCategoryDocument,
		Source:   "UEBA Platform",
		Delay:    2400 * time.Millisecond,
	},
	{
		ID:       "auto-download-history",
		FileName: "file-download-history.log",
		FileSize: 456123,
		FileType: "log",
		Category: domain.EvidenceCategoryDocument,
		Source:   "File Server Logs",
		Delay:    1800 * time.Millisecond,
	},
	{
		ID:       "auto-email-metadata",
		FileName: "email-metadata.json",
		FileSize: 98765,
		FileType: "json",
		Category: domain.EvidenceCategoryEmail,
		Source:   "Email Security Gateway",
		Delay:    3000 * time.Millisecond,
	},
	{
		ID:       "auto-vpn-logs",
		FileName: "vpn-connection-logs.log",
		FileSize: 134567,
		FileType: "log",
		Category: domain.EvidenceCategoryDocument,
		Source:   "VPN Gateway",
		Delay:    2100 * time.Millisecond,
	},
	{
		ID:       "auto-ad-logs",
		FileName: "active-directory-logs.evtx",
		FileSize: 287654,
		FileType: "evtx",
		Category: domain.EvidenceCategoryDocument,
		Source:   "Active Directory",
		Delay:    2700 * time.Millisecond,
	},
}

// Collector runs automated evidence collection for a room as a set of
// independent delayed tasks, one per source. Items complete in no defined
// order; the fan-in is observable through Wait.
type Collector struct {
	config  CollectorConfig
	service *Service

	baseCtx context.Context
	wg      sync.WaitGroup
}

// NewCollector creates a new evidence collector.
func NewCollector(config CollectorConfig, service *Service) *Collector {
	return &Collector{
		config:  config,
		service: service,
		baseCtx: context.Background(),
	}
}

// Start binds the collector to the application lifecycle. In-flight tasks
// stop when ctx is cancelled, not when the triggering request ends.
func (c *Collector) Start(ctx context.Context) {
	c.baseCtx = ctx
}

// Collect starts collection for every source in the catalogue and returns
// immediately. Each source completes after its own delay and appends one
// evidence item; a source that finds the room closed drops its item with a
// warning. Re-running collection skips items already present.
func (c *Collector) Collect(roomID string) error {
	if !c.config.Enabled {
		return nil
	}

	ctx := c.baseCtx
	if err := c.service.appendComment(ctx, roomID, domain.SystemActor,
		fmt.Sprintf("Auto-collection initiated for %d evidence sources", len(collectionSources))); err != nil {
		return fmt.Errorf("record collection start: %w", err)
	}

	slog.Info("evidence auto-collection started",
		"room_id", roomID,
		"sources", len(collectionSources),
	)

	for _, src := range collectionSources {
		c.wg.Add(1)
		go func(src collectionSource) {
			defer c.wg.Done()
			c.collectOne(ctx, roomID, src)
		}(src)
	}

	return nil
}

// Stop waits for in-flight collection tasks during shutdown.
func (c *Collector) Stop() {
	c.wg.Wait()
	slog.Info("evidence collector stopped")
}

// Wait blocks until all in-flight collection tasks have completed.
func (c *Collector) Wait() {
	c.wg.Wait()
}

func (c *Collector) collectOne(ctx context.Context, roomID string, src collectionSource) {
	delay := time.Duration(float64(src.Delay) * c.config.DelayScale)
	select {
	case <-ctx.Done():
		recordEvidenceCollected(src.Source, "cancelled")
		return
	case <-time.After(delay):
	}

	content := []byte(fmt.Sprintf("export:%s\nsource:%s\nroom:%s\ncollected:%s\n",
		src.FileName, src.Source, roomID, time.Now().UTC().Format(time.RFC3339Nano)))

	_, err := c.service.AddEvidence(ctx, roomID, EvidenceInput{
		ID:               src.ID,
		FileName:         src.FileName,
		FileSize:         src.FileSize,
		FileType:         src.FileType,
		Category:         src.Category,
		Source:           src.Source,
		CollectionMethod: domain.CollectionMethodAutomated,
		Content:          content,
	}, domain.SystemActor)

	switch {
	case err == nil:
		recordEvidenceCollected(src.Source, "collected")
	case errors.Is(err, ErrDuplicateEvidence):
		// already collected on a previous run
		recordEvidenceCollected(src.Source, "skipped")
	case errors.Is(err, ErrRoomClosed), errors.Is(err, ErrRoomNotFound):
		slog.Warn("dropping collected evidence, room no longer accepts writes",
			"room_id", roomID,
			"source", src.Source,
			"error", err,
		)
		recordEvidenceCollected(src.Source, "dropped")
	default:
		slog.Error("evidence collection failed",
			"room_id", roomID,
			"source", src.Source,
			"error", err,
		)
		recordEvidenceCollected(src.Source, "failed")
	}
}

// appendComment appends a comment-typed timeline event to a room.
func (s *Service) appendComment(ctx context.Context, roomID string, actor domain.Actor, description string) error {
	lock := s.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	r, err := s.store.Get(ctx, roomID)
	if err != nil {
		return err
	}
	if r.Stage.IsTerminal() {
		return ErrRoomClosed
	}

	r.Timeline = append(r.Timeline, domain.TimelineEvent{
		ID:          uuid.New().String(),
		Timestamp:   time.Now().UTC(),
		Type:        domain.TimelineEventComment,
		Actor:       actor,
		Description: description,
	})

	if err := s.store.Put(ctx, r); err != nil {
		return fmt.Errorf("persist room: %w", err)
	}
	return nil
}
