package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	guildevents "github.com/Black-And-White-Club/discord-guild-generator/app/events/guild"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func event(runID, kind string, at time.Time) guildevents.GuildGenerationEvent {
	return guildevents.GuildGenerationEvent{
		RunID:      runID,
		Kind:       kind,
		GuildID:    "g1",
		Reason:     "Automated by builder",
		OccurredAt: at,
	}
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "")
	assert.Error(t, err)
}

func TestStore_RecordsRunLifecycle(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.Record(ctx, event("run-1", "guildGenerate", base)))
	role := event("run-1", "roleCreate", base.Add(time.Second))
	role.EntityType, role.EntityID, role.EntityName = guildevents.EntityRole, "r1", "mod"
	require.NoError(t, s.Record(ctx, role))
	require.NoError(t, s.Record(ctx, event("run-1", "guildGenerated", base.Add(2*time.Second))))

	// A second run that never finished.
	require.NoError(t, s.Record(ctx, event("run-2", "guildGenerate", base.Add(time.Hour))))

	runs, err := s.Runs(ctx, "g1", 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "run-2", runs[0].RunID)
	assert.Equal(t, StatusIncomplete, runs[0].Status)
	assert.Nil(t, runs[0].FinishedAt)
	assert.Equal(t, 1, runs[0].Events)

	assert.Equal(t, "run-1", runs[1].RunID)
	assert.Equal(t, StatusFinished, runs[1].Status)
	require.NotNil(t, runs[1].FinishedAt)
	assert.True(t, runs[1].FinishedAt.Equal(base.Add(2*time.Second)))
	assert.True(t, runs[1].StartedAt.Equal(base))
	assert.Equal(t, 3, runs[1].Events)
	assert.Equal(t, "Automated by builder", runs[1].Reason)

	events, err := s.Events(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, []string{"guildGenerate", "roleCreate", "guildGenerated"},
		[]string{events[0].Kind, events[1].Kind, events[2].Kind})
	assert.Equal(t, "mod", events[1].EntityName)
	assert.Equal(t, "g1", events[1].GuildID)
}

func TestStore_RunsFiltersAndLimits(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		e := event(id, "guildGenerate", base.Add(time.Duration(i)*time.Minute))
		if id == "c" {
			e.GuildID = "g2"
		}
		require.NoError(t, s.Record(ctx, e))
	}

	runs, err := s.Runs(ctx, "g1", 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "b", runs[0].RunID)

	all, err := s.Runs(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStore_RecordRejectsMissingRunID(t *testing.T) {
	s := openTestStore(t)
	err := s.Record(context.Background(), guildevents.GuildGenerationEvent{Kind: "guildGenerate"})
	assert.Error(t, err)
}

func TestStore_DuplicateStartIsIgnored(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.Record(ctx, event("run-1", "guildGenerate", at)))
	require.NoError(t, s.Record(ctx, event("run-1", "guildGenerate", at)))

	runs, err := s.Runs(ctx, "g1", 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestStore_RecordRequest(t *testing.T) {
	s := openTestStore(t)
	err := s.RecordRequest(context.Background(), guildevents.GuildGenerationRequestedEvent{
		GuildID:     "g1",
		RequestedBy: "u1",
		LayoutPath:  "layout.yaml",
		RequestedAt: time.Now(),
	})
	require.NoError(t, err)

	var n int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM requests WHERE guild_id = 'g1'").Scan(&n))
	assert.Equal(t, 1, n)
}
