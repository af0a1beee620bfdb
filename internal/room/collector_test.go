package room

import (
	"context"
	"testing"

	"github.com/foresight-sec/incident-room/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollector(svc *Service) *Collector {
	// DelayScale 0 collects immediately so tests only wait on the WaitGroup
	return NewCollector(CollectorConfig{Enabled: true, DelayScale: 0}, svc)
}

func TestCollect_GathersAllSources(t *testing.T) {
	svc := NewService(newMockStore())
	r := seedRoom(t, svc)

	c := newTestCollector(svc)
	c.Start(context.Background())

	require.NoError(t, c.Collect(r.ID))
	c.Wait()

	updated, err := svc.GetRoom(context.Background(), r.ID)
	require.NoError(t, err)

	require.Len(t, updated.Evidence, len(collectionSources))
	byID := make(map[string]domain.EvidenceItem, len(updated.Evidence))
	for _, item := range updated.Evidence {
		byID[item.ID] = item
	}
	for _, src := range collectionSources {
		item, ok := byID[src.ID]
		require.True(t, ok, "missing evidence from %s", src.Source)
		assert.Equal(t, src.FileName, item.FileName)
		assert.Equal(t, src.FileSize, item.FileSize)
		assert.Equal(t, domain.CollectionMethodAutomated, item.CollectionMethod)
		assert.Equal(t, domain.SystemActor.UserID, item.UploadedBy.UserID)
		assert.NotEmpty(t, item.Hash)
	}

	// Kickoff comment plus one evidence event per source, after the alert event
	var comments, evidenceEvents int
	for _, ev := range updated.Timeline {
		switch ev.Type {
		case domain.TimelineEventComment:
			comments++
		case domain.TimelineEventEvidenceAdded:
			evidenceEvents++
		}
	}
	assert.Equal(t, 1, comments)
	assert.Equal(t, len(collectionSources), evidenceEvents)
}

func TestCollect_RerunSkipsExistingItems(t *testing.T) {
	svc := NewService(newMockStore())
	r := seedRoom(t, svc)

	c := newTestCollector(svc)
	c.Start(context.Background())

	require.NoError(t, c.Collect(r.ID))
	c.Wait()
	require.NoError(t, c.Collect(r.ID))
	c.Wait()

	updated, err := svc.GetRoom(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Len(t, updated.Evidence, len(collectionSources), "rerun must not duplicate the ledger")
}

func TestCollect_Disabled(t *testing.T) {
	svc := NewService(newMockStore())
	r := seedRoom(t, svc)

	c := NewCollector(CollectorConfig{Enabled: false}, svc)
	c.Start(context.Background())

	require.NoError(t, c.Collect(r.ID))
	c.Wait()

	updated, err := svc.GetRoom(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Evidence)
	assert.Len(t, updated.Timeline, 1, "disabled collector must not touch the timeline")
}

func TestCollect_RoomNotFound(t *testing.T) {
	svc := NewService(newMockStore())

	c := newTestCollector(svc)
	c.Start(context.Background())

	err := c.Collect("missing")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestCollect_DropsItemsWhenRoomCloses(t *testing.T) {
	svc := NewService(newMockStore())
	r := seedRoom(t, svc)
	advanceTo(t, svc, r.ID, domain.RoomStageRemediation, "analyst-1")
	_, err := svc.TransitionStage(context.Background(), r.ID, domain.RoomStageClosed, "ciso-1")
	require.NoError(t, err)

	c := newTestCollector(svc)
	c.Start(context.Background())

	// Collection against a closed room cannot even record its kickoff
	err = c.Collect(r.ID)
	assert.ErrorIs(t, err, ErrRoomClosed)
	c.Wait()

	updated, err := svc.GetRoom(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Evidence)
}

func TestDefaultCollectorConfig(t *testing.T) {
	cfg := DefaultCollectorConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 1.0, cfg.DelayScale)
}
