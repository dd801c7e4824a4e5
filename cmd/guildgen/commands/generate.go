package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Black-And-White-Club/discord-guild-generator/app/bot"
	"github.com/Black-And-White-Club/discord-guild-generator/app/generator/eventbus"
	"github.com/Black-And-White-Club/discord-guild-generator/app/generator/layout"
	"github.com/Black-And-White-Club/discord-guild-generator/app/shared/attr"
	"github.com/Black-And-White-Club/discord-guild-generator/app/shared/logging"
	"github.com/Black-And-White-Club/discord-guild-generator/app/shared/tracing"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	layoutPath   string
	guildID      string
	reason       string
	yes          bool
	readyTimeout time.Duration
}

func newGenerateCommand(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Delete and regenerate a guild from a layout",
		Long: `Generate connects to the gateway, waits for Ready and runs one generation.

Every emoji, sticker, unmanaged role and non-thread channel in the guild is
deleted before the layout is created. There is no rollback: a failed run
leaves the guild partially rebuilt.`,
		Example: `  guildgen generate --guild 123456789012345678 --layout ./layouts/club.yaml --yes`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), cmd.OutOrStdout(), root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.layoutPath, "layout", "l", "", "layout file path (defaults to generator.layout_path)")
	cmd.Flags().StringVarP(&opts.guildID, "guild", "g", "", "guild to regenerate")
	cmd.Flags().StringVarP(&opts.reason, "reason", "r", "", "audit log reason")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "confirm that the guild's current structure will be deleted")
	cmd.Flags().DurationVar(&opts.readyTimeout, "ready-timeout", 0, "how long to wait for the gateway (defaults to discord.ready_timeout_seconds)")
	_ = cmd.MarkFlagRequired("guild")

	return cmd
}

func runGenerate(ctx context.Context, out io.Writer, root *rootOptions, opts *generateOptions) error {
	if !opts.yes {
		return errors.New("generate deletes the guild's roles, channels, emojis and stickers; pass --yes to continue")
	}

	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	layoutPath := opts.layoutPath
	if layoutPath == "" {
		layoutPath = cfg.Generator.LayoutPath
	}
	if layoutPath == "" {
		return errors.New("no layout given: pass --layout or set generator.layout_path")
	}
	g, err := layout.LoadFile(layoutPath)
	if err != nil {
		return err
	}

	logger, logCloser, err := logging.NewLogger(logging.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		File:    cfg.Logging.File,
		Service: cfg.Service.Name,
	})
	if err != nil {
		return err
	}
	defer logCloser.Close()

	tracer, tracerShutdown, err := tracing.InitTracing(ctx, tracing.Options{
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
		Exporter:       cfg.Tempo.Exporter,
		Endpoint:       cfg.Tempo.Endpoint,
		Insecure:       cfg.Tempo.Insecure,
		SampleRate:     cfg.Tempo.SampleRate,
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerShutdown(shutdownCtx); err != nil {
			logger.Warn("Failed to flush traces", attr.Error(err))
		}
	}()

	inf, err := bot.NewInfrastructure(ctx, cfg, logger, tracer, nil)
	if err != nil {
		return err
	}
	defer inf.Close()
	if err := inf.Start(ctx); err != nil {
		return err
	}

	summary := newRunSummary()
	inf.Bus.OnAll(summary.listen)

	session, err := bot.NewSession(cfg, logger)
	if err != nil {
		return err
	}
	if err := session.Open(); err != nil {
		return fmt.Errorf("failed to open gateway: %w", err)
	}
	defer session.Close()

	readyTimeout := opts.readyTimeout
	if readyTimeout <= 0 {
		readyTimeout = cfg.ReadyTimeout()
	}
	readyCtx, cancelReady := context.WithTimeout(ctx, readyTimeout)
	err = session.WaitReady(readyCtx)
	cancelReady()
	if err != nil {
		return fmt.Errorf("gateway not ready after %s: %w", readyTimeout, err)
	}

	manager, err := inf.NewManager(session, cfg.Generator.Reason)
	if err != nil {
		return err
	}

	runCtx := ctx
	if timeout := cfg.GenerateTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	err = manager.Generate(runCtx, opts.guildID, g, opts.reason)
	fmt.Fprintln(out, summary.String())
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	return nil
}

// runSummary tallies events of one run for the closing report.
type runSummary struct {
	mu       sync.Mutex
	runID    string
	finished bool
	deleted  map[string]int
	created  map[string]int
}

func newRunSummary() *runSummary {
	return &runSummary{deleted: map[string]int{}, created: map[string]int{}}
}

func (s *runSummary) listen(_ context.Context, e eventbus.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := eventbus.Describe(e)
	switch e.Kind() {
	case eventbus.KindGenerationStarted:
		s.runID = d.RunID
	case eventbus.KindGenerationFinished:
		s.finished = true
	case eventbus.KindRoleDeleted, eventbus.KindChannelDeleted, eventbus.KindEmojiDeleted, eventbus.KindStickerDeleted:
		s.deleted[d.EntityType]++
	default:
		s.created[d.EntityType]++
	}
	return nil
}

func (s *runSummary) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.runID == "" {
		return "Generation did not start."
	}
	status := "finished"
	if !s.finished {
		status = "incomplete"
	}
	return fmt.Sprintf("Run %s %s. Deleted: %s. Created: %s.", s.runID, status, tally(s.deleted), tally(s.created))
}

func tally(counts map[string]int) string {
	if len(counts) == 0 {
		return "nothing"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%d %s", counts[k], k))
	}
	return strings.Join(parts, ", ")
}
