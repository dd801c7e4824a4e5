package journal

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	guildevents "github.com/Black-And-White-Club/discord-guild-generator/app/events/guild"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecorder struct {
	mu       sync.Mutex
	events   []guildevents.GuildGenerationEvent
	requests []guildevents.GuildGenerationRequestedEvent
	err      error
}

func (f *fakeRecorder) Record(_ context.Context, e guildevents.GuildGenerationEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, e)
	return nil
}

func (f *fakeRecorder) RecordRequest(_ context.Context, r guildevents.GuildGenerationRequestedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r)
	return nil
}

func (f *fakeRecorder) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events), len(f.requests)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func jsonMessage(t *testing.T, v any) *message.Message {
	t.Helper()
	payload, err := json.Marshal(v)
	require.NoError(t, err)
	return message.NewMessage(watermill.NewUUID(), payload)
}

func TestHandleGenerationEvent(t *testing.T) {
	tests := []struct {
		name     string
		msg      func(t *testing.T) *message.Message
		recErr   error
		wantErr  bool
		wantRows int
	}{
		{
			name: "stores decoded event",
			msg: func(t *testing.T) *message.Message {
				return jsonMessage(t, guildevents.GuildGenerationEvent{RunID: "r1", Kind: "roleCreate", GuildID: "g1"})
			},
			wantRows: 1,
		},
		{
			name: "drops undecodable payload",
			msg: func(*testing.T) *message.Message {
				return message.NewMessage(watermill.NewUUID(), []byte("{not json"))
			},
		},
		{
			name: "returns store failures for retry",
			msg: func(t *testing.T) *message.Message {
				return jsonMessage(t, guildevents.GuildGenerationEvent{RunID: "r1", Kind: "roleCreate"})
			},
			recErr:  errors.New("disk full"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &fakeRecorder{err: tt.recErr}
			r := NewJournalRouter(discardLogger(), nil, nil, rec, nil)

			err := r.HandleGenerationEvent(tt.msg(t))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			events, _ := rec.counts()
			assert.Equal(t, tt.wantRows, events)
		})
	}
}

func TestJournalRouter_ConsumesTopics(t *testing.T) {
	logger := discardLogger()
	wmLogger := watermill.NewSlogLogger(logger)
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, wmLogger)
	defer pubsub.Close()

	router, err := message.NewRouter(message.RouterConfig{}, wmLogger)
	require.NoError(t, err)

	rec := &fakeRecorder{}
	jr := NewJournalRouter(logger, router, pubsub, rec, nil)
	require.NoError(t, jr.Configure(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = router.Run(ctx) }()
	<-router.Running()
	defer jr.Close()

	require.NoError(t, pubsub.Publish(guildevents.GuildGenerationEventTopic,
		jsonMessage(t, guildevents.GuildGenerationEvent{RunID: "r1", Kind: "guildGenerate", GuildID: "g1"})))
	require.NoError(t, pubsub.Publish(guildevents.GuildGenerationRequestedTopic,
		jsonMessage(t, guildevents.GuildGenerationRequestedEvent{GuildID: "g1", RequestedBy: "u1"})))

	assert.Eventually(t, func() bool {
		events, requests := rec.counts()
		return events == 1 && requests == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestJournalRouter_AcksAfterRetriesAreSpent(t *testing.T) {
	logger := discardLogger()
	wmLogger := watermill.NewSlogLogger(logger)
	pubsub := gochannel.NewGoChannel(gochannel.Config{BlockPublishUntilSubscriberAck: true}, wmLogger)
	defer pubsub.Close()

	router, err := message.NewRouter(message.RouterConfig{}, wmLogger)
	require.NoError(t, err)

	rec := &fakeRecorder{err: errors.New("database is locked")}
	jr := NewJournalRouter(logger, router, pubsub, rec, nil)
	require.NoError(t, jr.Configure(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = router.Run(ctx) }()
	<-router.Running()
	defer jr.Close()

	failing := jsonMessage(t, guildevents.GuildGenerationEvent{RunID: "r1", Kind: "roleCreate", GuildID: "g1"})
	published := make(chan error, 1)
	go func() {
		published <- pubsub.Publish(guildevents.GuildGenerationEventTopic, failing)
	}()

	select {
	case err := <-published:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("publish still waiting for an ack after the handler gave up")
	}

	rec.mu.Lock()
	rec.err = nil
	rec.mu.Unlock()
	require.NoError(t, pubsub.Publish(guildevents.GuildGenerationEventTopic,
		jsonMessage(t, guildevents.GuildGenerationEvent{RunID: "r2", Kind: "roleCreate", GuildID: "g1"})))

	events, _ := rec.counts()
	assert.Equal(t, 1, events)
}
