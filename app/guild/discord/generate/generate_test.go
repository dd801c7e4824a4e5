package generate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	discord "github.com/Black-And-White-Club/discord-guild-generator/app/discordgo"
	guildevents "github.com/Black-And-White-Club/discord-guild-generator/app/events/guild"
	"github.com/Black-And-White-Club/discord-guild-generator/app/generator/layout"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/bwmarrin/discordgo"
	"go.opentelemetry.io/otel/trace/noop"
)

type fakeGenerator struct {
	calls   []string
	reasons []string
	err     error
}

func (f *fakeGenerator) Generate(_ context.Context, guildID string, _ *layout.Guild, reason string) error {
	f.calls = append(f.calls, guildID)
	f.reasons = append(f.reasons, reason)
	return f.err
}

type fakePublisher struct {
	mu       sync.Mutex
	messages map[string][]*message.Message
}

func (f *fakePublisher) Publish(topic string, msgs ...*message.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.messages == nil {
		f.messages = map[string][]*message.Message{}
	}
	f.messages[topic] = append(f.messages[topic], msgs...)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

type fakeMetrics struct {
	commands []string
}

func (f *fakeMetrics) RecordRun(string, time.Duration)           {}
func (f *fakeMetrics) RecordPhase(string, string, time.Duration) {}
func (f *fakeMetrics) RecordEntityOperation(string, string)      {}
func (f *fakeMetrics) RecordListenerFailure(string)              {}
func (f *fakeMetrics) RecordCommand(_ string, outcome string) {
	f.commands = append(f.commands, outcome)
}

type harness struct {
	gm        *generateManager
	session   *discord.FakeSession
	generator *fakeGenerator
	publisher *fakePublisher
	metrics   *fakeMetrics
	responses []*discordgo.InteractionResponse
	edits     []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		session:   discord.NewFakeSession(),
		generator: &fakeGenerator{},
		publisher: &fakePublisher{},
		metrics:   &fakeMetrics{},
	}
	h.session.GuildFunc = func(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error) {
		return &discordgo.Guild{ID: guildID, Name: "Test Guild"}, nil
	}
	h.session.InteractionRespondFunc = func(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
		h.responses = append(h.responses, resp)
		return nil
	}
	h.session.InteractionResponseEditFunc = func(_ *discordgo.Interaction, edit *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
		h.edits = append(h.edits, *edit.Content)
		return &discordgo.Message{}, nil
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m, err := NewGenerateManager(h.session, h.generator, h.publisher, logger, noop.NewTracerProvider().Tracer("test"), h.metrics, Config{LayoutPath: "layout.yaml"})
	if err != nil {
		t.Fatalf("NewGenerateManager returned error: %v", err)
	}
	h.gm = m.(*generateManager)
	h.gm.loadLayout = func(string) (*layout.Guild, error) { return &layout.Guild{}, nil }
	h.gm.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	h.gm.goFunc = func(fn func()) { fn() }
	return h
}

func generateInteraction(guildID string, opts map[string]string) *discordgo.InteractionCreate {
	var options []*discordgo.ApplicationCommandInteractionDataOption
	for name, value := range opts {
		options = append(options, &discordgo.ApplicationCommandInteractionDataOption{
			Name:  name,
			Type:  discordgo.ApplicationCommandOptionString,
			Value: value,
		})
	}
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:    discordgo.InteractionApplicationCommand,
		GuildID: guildID,
		Member: &discordgo.Member{
			User:        &discordgo.User{ID: "u1", Username: "alice", Discriminator: "0"},
			Permissions: discordgo.PermissionAdministrator,
		},
		Data: discordgo.ApplicationCommandInteractionData{Name: discord.GenerateCommandName, Options: options},
	}}
}

func TestNewGenerateManager_RequiresDependencies(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	session := discord.NewFakeSession()
	gen := &fakeGenerator{}
	cfg := Config{LayoutPath: "layout.yaml"}

	tests := []struct {
		name string
		fn   func() (GenerateManager, error)
	}{
		{"nil session", func() (GenerateManager, error) { return NewGenerateManager(nil, gen, nil, logger, tracer, nil, cfg) }},
		{"nil generator", func() (GenerateManager, error) { return NewGenerateManager(session, nil, nil, logger, tracer, nil, cfg) }},
		{"nil logger", func() (GenerateManager, error) { return NewGenerateManager(session, gen, nil, nil, tracer, nil, cfg) }},
		{"nil tracer", func() (GenerateManager, error) { return NewGenerateManager(session, gen, nil, logger, nil, nil, cfg) }},
		{"no layout", func() (GenerateManager, error) { return NewGenerateManager(session, gen, nil, logger, tracer, nil, Config{}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.fn(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestHandleGenerateCommand_Success(t *testing.T) {
	h := newHarness(t)

	err := h.gm.HandleGenerateCommand(context.Background(), generateInteraction("g1", map[string]string{
		discord.ConfirmOptionName: " Test Guild ",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(h.generator.calls) != 1 || h.generator.calls[0] != "g1" {
		t.Fatalf("generator calls = %v", h.generator.calls)
	}
	if got := h.generator.reasons[0]; got != "Requested by alice via /generate" {
		t.Errorf("reason = %q", got)
	}
	if len(h.responses) != 1 || h.responses[0].Type != discordgo.InteractionResponseDeferredChannelMessageWithSource {
		t.Fatalf("expected one deferred response, got %+v", h.responses)
	}
	if len(h.edits) != 1 || !strings.HasPrefix(h.edits[0], "✅") {
		t.Errorf("edits = %v", h.edits)
	}
	if got := strings.Join(h.metrics.commands, ","); got != "accepted,success" {
		t.Errorf("command outcomes = %s", got)
	}
	if h.gm.inFlight["g1"] {
		t.Error("guild should be released after the run")
	}

	msgs := h.publisher.messages[guildevents.GuildGenerationRequestedTopic]
	if len(msgs) != 1 {
		t.Fatalf("expected one request message, got %d", len(msgs))
	}
	var req guildevents.GuildGenerationRequestedEvent
	if err := json.Unmarshal(msgs[0].Payload, &req); err != nil {
		t.Fatalf("failed to decode request: %v", err)
	}
	if req.GuildID != "g1" || req.RequestedBy != "u1" || req.LayoutPath != "layout.yaml" {
		t.Errorf("unexpected request %+v", req)
	}
}

func TestHandleGenerateCommand_ReasonOption(t *testing.T) {
	h := newHarness(t)

	err := h.gm.HandleGenerateCommand(context.Background(), generateInteraction("g1", map[string]string{
		discord.ConfirmOptionName: "Test Guild",
		discord.ReasonOptionName:  "Season reset",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(h.generator.reasons) != 1 || h.generator.reasons[0] != "Season reset" {
		t.Errorf("reasons = %v", h.generator.reasons)
	}
}

func TestHandleGenerateCommand_Rejections(t *testing.T) {
	tests := []struct {
		name        string
		guildID     string
		confirm     string
		setup       func(h *harness)
		wantErr     bool
		wantOutcome string
		wantMessage string
	}{
		{
			name:        "outside a guild",
			guildID:     "",
			confirm:     "Test Guild",
			wantOutcome: outcomeRejected,
			wantMessage: "only be used in a server",
		},
		{
			name:        "confirmation mismatch",
			guildID:     "g1",
			confirm:     "test guild",
			wantOutcome: outcomeRejected,
			wantMessage: "did not match",
		},
		{
			name:    "already running",
			guildID: "g1",
			confirm: "Test Guild",
			setup: func(h *harness) {
				h.gm.inFlight["g1"] = true
			},
			wantOutcome: outcomeBusy,
			wantMessage: "already running",
		},
		{
			name:    "layout fails to load",
			guildID: "g1",
			confirm: "Test Guild",
			setup: func(h *harness) {
				h.gm.loadLayout = func(string) (*layout.Guild, error) { return nil, errors.New("bad yaml") }
			},
			wantErr:     true,
			wantOutcome: outcomeInvalidLayout,
			wantMessage: "could not be loaded",
		},
		{
			name:    "guild lookup fails",
			guildID: "g1",
			confirm: "Test Guild",
			setup: func(h *harness) {
				h.session.GuildFunc = func(string, ...discordgo.RequestOption) (*discordgo.Guild, error) {
					return nil, errors.New("unavailable")
				}
			},
			wantErr:     true,
			wantOutcome: outcomeFailure,
			wantMessage: "Could not look up",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			if tt.setup != nil {
				tt.setup(h)
			}

			err := h.gm.HandleGenerateCommand(context.Background(), generateInteraction(tt.guildID, map[string]string{
				discord.ConfirmOptionName: tt.confirm,
			}))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if len(h.generator.calls) != 0 {
				t.Fatal("generator must not run")
			}
			if len(h.responses) != 1 {
				t.Fatalf("expected one response, got %d", len(h.responses))
			}
			data := h.responses[0].Data
			if data.Flags&discordgo.MessageFlagsEphemeral == 0 {
				t.Errorf("response should be ephemeral: %+v", data)
			}
			if tt.guildID == "" {
				if !strings.Contains(data.Content, tt.wantMessage) {
					t.Errorf("response = %+v", data)
				}
			} else {
				if h.responses[0].Type != discordgo.InteractionResponseDeferredChannelMessageWithSource {
					t.Errorf("expected the interaction to be deferred, got type %d", h.responses[0].Type)
				}
				if len(h.edits) != 1 || !strings.Contains(h.edits[0], tt.wantMessage) {
					t.Errorf("edits = %v, want one containing %q", h.edits, tt.wantMessage)
				}
			}
			if len(h.metrics.commands) != 1 || h.metrics.commands[0] != tt.wantOutcome {
				t.Errorf("outcomes = %v, want [%s]", h.metrics.commands, tt.wantOutcome)
			}
			if tt.name != "already running" && h.gm.inFlight["g1"] {
				t.Error("guild must not stay locked")
			}
			if len(h.publisher.messages) != 0 {
				t.Error("no request should be published")
			}
		})
	}
}

func TestHandleGenerateCommand_DefersBeforeGuildLookup(t *testing.T) {
	h := newHarness(t)

	err := h.gm.HandleGenerateCommand(context.Background(), generateInteraction("g1", map[string]string{
		discord.ConfirmOptionName: "Test Guild",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	trace := h.session.Trace()
	respond, lookup := slices.Index(trace, "InteractionRespond"), slices.Index(trace, "Guild")
	if respond < 0 || lookup < 0 || respond > lookup {
		t.Fatalf("expected InteractionRespond before Guild, got %v", trace)
	}
}

func TestHandleGenerateCommand_DeferFailure(t *testing.T) {
	h := newHarness(t)
	h.session.InteractionRespondFunc = func(*discordgo.Interaction, *discordgo.InteractionResponse, ...discordgo.RequestOption) error {
		return errors.New("unknown interaction")
	}

	err := h.gm.HandleGenerateCommand(context.Background(), generateInteraction("g1", map[string]string{
		discord.ConfirmOptionName: "Test Guild",
	}))
	if err == nil {
		t.Fatal("expected error")
	}
	if slices.Contains(h.session.Trace(), "Guild") || len(h.generator.calls) != 0 || h.gm.inFlight["g1"] {
		t.Fatalf("nothing should happen after a failed deferral: trace %v", h.session.Trace())
	}
}

func TestHandleGenerateCommand_GenerationFailure(t *testing.T) {
	h := newHarness(t)
	h.generator.err = errors.New("failed to delete role \"mod\": 403 Forbidden")
	h.session.InteractionResponseEditFunc = func(_ *discordgo.Interaction, edit *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
		h.edits = append(h.edits, *edit.Content)
		return nil, errors.New("unknown channel")
	}

	err := h.gm.HandleGenerateCommand(context.Background(), generateInteraction("g1", map[string]string{
		discord.ConfirmOptionName: "Test Guild",
	}))
	if err != nil {
		t.Fatalf("the command itself should succeed once deferred: %v", err)
	}
	if len(h.edits) != 1 || !strings.Contains(h.edits[0], "Generation failed") {
		t.Errorf("edits = %v", h.edits)
	}
	if got := strings.Join(h.metrics.commands, ","); got != "accepted,failure" {
		t.Errorf("command outcomes = %s", got)
	}
	if h.gm.inFlight["g1"] {
		t.Error("guild should be released after a failed run")
	}
}

func TestGenerateManager_AcquireIsPerGuild(t *testing.T) {
	h := newHarness(t)
	if !h.gm.acquire("g1") {
		t.Fatal("first acquire should succeed")
	}
	if h.gm.acquire("g1") {
		t.Fatal("second acquire of the same guild should fail")
	}
	if !h.gm.acquire("g2") {
		t.Fatal("other guilds are independent")
	}
	h.gm.release("g1")
	if !h.gm.acquire("g1") {
		t.Fatal("acquire after release should succeed")
	}
}
