// Package generate implements the /generate slash command.
package generate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	discord "github.com/Black-And-White-Club/discord-guild-generator/app/discordgo"
	"github.com/Black-And-White-Club/discord-guild-generator/app/generator/layout"
	"github.com/Black-And-White-Club/discord-guild-generator/app/shared/attr"
	"github.com/Black-And-White-Club/discord-guild-generator/app/shared/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/bwmarrin/discordgo"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Generator runs one generation. *generator.Manager satisfies it.
type Generator interface {
	Generate(ctx context.Context, guildID string, g *layout.Guild, reason string) error
}

// GenerateManager handles the /generate command.
type GenerateManager interface {
	HandleGenerateCommand(ctx context.Context, i *discordgo.InteractionCreate) error
}

// Config holds what the command needs beyond its collaborators.
type Config struct {
	// LayoutPath is the layout every /generate run applies.
	LayoutPath string
	// Timeout bounds one generation. Zero means no limit.
	Timeout time.Duration
}

type generateManager struct {
	session   discord.Session
	generator Generator
	publisher message.Publisher
	logger    *slog.Logger
	tracer    trace.Tracer
	metrics   metrics.GeneratorMetrics
	cfg       Config

	loadLayout func(path string) (*layout.Guild, error)
	now        func() time.Time
	// goFunc runs the generation off the gateway goroutine.
	goFunc func(fn func())

	mu       sync.Mutex
	inFlight map[string]bool

	operationWrapper func(ctx context.Context, operationName string, fn func(context.Context) error) error
}

// NewGenerateManager creates a new generate manager. publisher may be nil.
func NewGenerateManager(
	session discord.Session,
	generator Generator,
	publisher message.Publisher,
	logger *slog.Logger,
	tracer trace.Tracer,
	m metrics.GeneratorMetrics,
	cfg Config,
) (GenerateManager, error) {
	if session == nil {
		return nil, fmt.Errorf("session cannot be nil")
	}
	if generator == nil {
		return nil, fmt.Errorf("generator cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if tracer == nil {
		return nil, fmt.Errorf("tracer cannot be nil")
	}
	if cfg.LayoutPath == "" {
		return nil, fmt.Errorf("layout path cannot be empty")
	}
	if m == nil {
		m = metrics.NoOp{}
	}

	logger.InfoContext(context.Background(), "Creating GenerateManager", attr.String("layout", cfg.LayoutPath))

	return &generateManager{
		session:    session,
		generator:  generator,
		publisher:  publisher,
		logger:     logger,
		tracer:     tracer,
		metrics:    m,
		cfg:        cfg,
		loadLayout: layout.LoadFile,
		now:        time.Now,
		goFunc:     func(fn func()) { go fn() },
		inFlight:   make(map[string]bool),
		operationWrapper: func(ctx context.Context, operationName string, fn func(context.Context) error) error {
			return wrapCommandOperation(ctx, operationName, fn, logger, tracer)
		},
	}, nil
}

// acquire marks guildID busy. It reports false when a run is already in flight.
func (gm *generateManager) acquire(guildID string) bool {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	if gm.inFlight[guildID] {
		return false
	}
	gm.inFlight[guildID] = true
	return true
}

func (gm *generateManager) release(guildID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	delete(gm.inFlight, guildID)
}

// wrapCommandOperation wraps command operations with a span and a timing log line
func wrapCommandOperation(
	ctx context.Context,
	operationName string,
	fn func(context.Context) error,
	logger *slog.Logger,
	tracer trace.Tracer,
) error {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("guild.command.%s", operationName))
	defer span.End()

	start := time.Now()

	err := fn(ctx)

	duration := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.ErrorContext(ctx, "Guild command operation failed",
			attr.Operation(operationName),
			attr.String("duration_sec", fmt.Sprintf("%.2f", duration.Seconds())),
			attr.Error(err))
		return err
	}

	logger.InfoContext(ctx, "Guild command operation completed",
		attr.Operation(operationName),
		attr.String("duration_sec", fmt.Sprintf("%.2f", duration.Seconds())))
	return nil
}
