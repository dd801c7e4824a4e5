// Package generator rebuilds a Discord guild from a declarative layout: it tears down
// the guild's roles, channels, emojis and stickers and recreates them in dependency order.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	discord "github.com/Black-And-White-Club/discord-guild-generator/app/discordgo"
	"github.com/Black-And-White-Club/discord-guild-generator/app/generator/assets"
	"github.com/Black-And-White-Club/discord-guild-generator/app/generator/eventbus"
	"github.com/Black-And-White-Club/discord-guild-generator/app/generator/layout"
	"github.com/Black-And-White-Club/discord-guild-generator/app/shared/attr"
	"github.com/Black-And-White-Club/discord-guild-generator/app/shared/metrics"
	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// maxAuditReasonLength is Discord's limit on the X-Audit-Log-Reason header.
const maxAuditReasonLength = 512

// Features is fixed when the manager is built.
type Features struct {
	// Expressions enables emoji and sticker fetch, teardown and creation.
	Expressions bool
}

// Options configures a Manager. Only the session is required.
type Options struct {
	// Reason is the default audit log reason. Empty means "Automated by <bot>".
	Reason    string
	Publisher eventbus.Publisher
	Logger    *slog.Logger
	Tracer    trace.Tracer
	Metrics   metrics.GeneratorMetrics
	Assets    assets.Loader
}

// Manager runs generations. It is safe for concurrent use across different guilds;
// callers must not run two generations against the same guild at once.
type Manager struct {
	session   discord.Session
	features  Features
	reason    string
	publisher eventbus.Publisher
	logger    *slog.Logger
	tracer    trace.Tracer
	metrics   metrics.GeneratorMetrics
	assets    assets.Loader
	now       func() time.Time
	newRunID  func() string

	operationWrapper func(ctx context.Context, opName string, fn func(ctx context.Context) error) error
}

// NewManager checks the session's intents once. IntentsGuilds is mandatory;
// without IntentsGuildEmojis every emoji and sticker step is skipped.
func NewManager(session discord.Session, opts Options) (*Manager, error) {
	if session == nil {
		return nil, fmt.Errorf("session cannot be nil")
	}

	intents := session.Intents()
	if intents&discordgo.IntentsGuilds == 0 {
		return nil, &MissingCapabilityError{Capability: "GUILDS"}
	}

	m := &Manager{
		session:   session,
		features:  Features{Expressions: intents&discordgo.IntentsGuildEmojis != 0},
		reason:    opts.Reason,
		publisher: opts.Publisher,
		logger:    opts.Logger,
		tracer:    opts.Tracer,
		metrics:   opts.Metrics,
		assets:    opts.Assets,
		now:       time.Now,
		newRunID:  uuid.NewString,
	}
	if m.publisher == nil {
		m.publisher = eventbus.Discard{}
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if m.tracer == nil {
		m.tracer = noop.NewTracerProvider().Tracer("generator")
	}
	if m.metrics == nil {
		m.metrics = metrics.NoOp{}
	}
	if m.assets == nil {
		m.assets = assets.NewResolver(assets.Options{Logger: m.logger})
	}
	m.operationWrapper = func(ctx context.Context, opName string, fn func(ctx context.Context) error) error {
		return wrapGenerateOperation(ctx, opName, fn, m.logger, m.tracer)
	}

	if !m.features.Expressions {
		m.logger.Warn("GUILD_EMOJIS_AND_STICKERS intent is missing; emojis and stickers will be skipped")
	}
	return m, nil
}

// Features reports what the manager was built with.
func (m *Manager) Features() Features {
	return m.features
}

// Generate replaces the structure of guildID with g. reason overrides the manager's
// default audit reason. A failure leaves the guild partially rebuilt; running
// Generate again converges it.
func (m *Manager) Generate(ctx context.Context, guildID string, g *layout.Guild, reason string) error {
	if !m.session.IsReady() {
		return ErrNotReady
	}
	if g == nil {
		return &InvalidLayoutError{Err: fmt.Errorf("layout is nil")}
	}
	if err := layout.Validate(g); err != nil {
		return &InvalidLayoutError{Err: err}
	}

	r := &run{
		m:       m,
		guildID: guildID,
		layout:  g,
		runID:   m.newRunID(),
		roleIDs: make(map[string]string, len(g.Roles)),
	}

	start := time.Now()
	err := m.operationWrapper(ctx, "run", func(ctx context.Context) error {
		return r.execute(ctx, reason)
	})

	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.metrics.RecordRun(outcome, time.Since(start))
	return err
}

// run holds the state of one Generate call.
type run struct {
	m       *Manager
	guildID string
	layout  *layout.Guild
	runID   string
	reason  string

	snap *snapshot
	// roleIDs maps declared role names to created IDs; roleOrder follows declaration order.
	roleIDs   map[string]string
	roleOrder []*discordgo.Role
	// guild is the most recent remote view of the guild.
	guild *discordgo.Guild
}

func (r *run) execute(ctx context.Context, reason string) error {
	logger := r.m.logger.With(attr.RunID(r.runID), attr.GuildID(r.guildID))

	if err := r.phase(ctx, "snapshot", r.loadSnapshot); err != nil {
		return err
	}
	r.reason = r.auditReason(reason)

	if err := r.phase(ctx, "authority", r.checkAuthority); err != nil {
		return err
	}

	logger.InfoContext(ctx, "Generating guild",
		attr.String("guild_name", r.snap.guild.Name),
		attr.Bool("expressions", r.m.features.Expressions),
	)
	r.emit(ctx, eventbus.GenerationStarted{Meta: r.meta(), Guild: r.snap.guild, Layout: r.layout})

	phases := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"teardown", r.teardown},
		{"roles", r.createRoles},
		{"expressions", r.createExpressions},
		{"root_channels", r.createRootChannels},
		{"categories", r.createCategories},
		{"settings", r.applySettings},
	}
	for _, p := range phases {
		if err := r.phase(ctx, p.name, p.fn); err != nil {
			return err
		}
	}

	r.emit(ctx, eventbus.GenerationFinished{Meta: r.meta(), Guild: r.guild, Layout: r.layout})
	logger.InfoContext(ctx, "Guild generated")
	return nil
}

func (r *run) phase(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := r.m.operationWrapper(ctx, name, fn)
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	r.m.metrics.RecordPhase(name, outcome, time.Since(start))
	return err
}

// auditReason picks the per-call reason, then the manager default, then one naming the bot.
func (r *run) auditReason(reason string) string {
	if reason == "" {
		reason = r.m.reason
	}
	if reason == "" {
		name := "the bot"
		if r.snap != nil && r.snap.bot != nil {
			name = r.snap.bot.String()
		}
		reason = "Automated by " + name
	}
	return reason
}

func (r *run) meta() eventbus.Meta {
	return eventbus.Meta{RunID: r.runID, GuildID: r.guildID, Reason: r.reason, At: r.m.now()}
}

func (r *run) emit(ctx context.Context, e eventbus.Event) {
	r.m.publisher.Publish(ctx, e)
}

// requestOptions binds ctx and the audit reason to a mutating call.
func (r *run) requestOptions(ctx context.Context) []discordgo.RequestOption {
	opts := []discordgo.RequestOption{discordgo.WithContext(ctx)}
	if header := encodeAuditReason(r.reason); header != "" {
		opts = append(opts, discordgo.WithAuditLogReason(header))
	}
	return opts
}

// encodeAuditReason escapes reason for the header and caps it at Discord's limit
// without splitting an escape sequence.
func encodeAuditReason(reason string) string {
	escaped := url.PathEscape(reason)
	if len(escaped) <= maxAuditReasonLength {
		return escaped
	}
	cut := maxAuditReasonLength
	for i := cut - 1; i >= cut-2 && i >= 0; i-- {
		if escaped[i] == '%' {
			cut = i
			break
		}
	}
	return escaped[:cut]
}
