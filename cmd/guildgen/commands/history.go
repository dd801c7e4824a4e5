package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	guildevents "github.com/Black-And-White-Club/discord-guild-generator/app/events/guild"
	"github.com/Black-And-White-Club/discord-guild-generator/app/journal"
	"github.com/spf13/cobra"
)

func newHistoryCommand(root *rootOptions) *cobra.Command {
	var (
		journalPath string
		guildID     string
		runID       string
		limit       int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past generation runs from the journal",
		Long: `History lists generation runs recorded in the journal, newest first.

A run whose status is "incomplete" emitted generation-started but never
generation-finished: it failed or was interrupted part way through.`,
		Example: `  # Recent runs for one guild
  guildgen history --guild 123456789012345678

  # Every event of one run
  guildgen history --run 2f1c...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if journalPath == "" {
				cfg, err := root.loadConfig()
				if err != nil {
					return err
				}
				journalPath = cfg.Journal.Path
			}
			if journalPath == "" {
				return errors.New("no journal configured: pass --journal or set journal.path")
			}

			store, err := journal.Open(cmd.Context(), journalPath)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if runID != "" {
				events, err := store.Events(cmd.Context(), runID)
				if err != nil {
					return err
				}
				if root.jsonOutput {
					return writeJSON(out, events)
				}
				return writeEvents(out, events)
			}

			runs, err := store.Runs(cmd.Context(), guildID, limit)
			if err != nil {
				return err
			}
			if root.jsonOutput {
				return writeJSON(out, runs)
			}
			return writeRuns(out, runs)
		},
	}

	cmd.Flags().StringVar(&journalPath, "journal", "", "journal database path (defaults to journal.path)")
	cmd.Flags().StringVarP(&guildID, "guild", "g", "", "only show runs for this guild")
	cmd.Flags().StringVar(&runID, "run", "", "show the events of one run")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs")

	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeRuns(w io.Writer, runs []journal.Run) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tGUILD\tSTATUS\tSTARTED\tDURATION\tEVENTS\tREASON")
	for _, r := range runs {
		duration := "-"
		if r.FinishedAt != nil {
			duration = r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond).String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			r.RunID, r.GuildID, r.Status, r.StartedAt.Format(time.RFC3339), duration, r.Events, r.Reason)
	}
	return tw.Flush()
}

func writeEvents(w io.Writer, events []guildevents.GuildGenerationEvent) error {
	if len(events) == 0 {
		_, err := fmt.Fprintln(w, "No events recorded for this run.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tKIND\tTYPE\tID\tNAME\tPARENT")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.OccurredAt.Format(time.RFC3339), e.Kind, e.EntityType, e.EntityID, e.EntityName, e.ParentID)
	}
	return tw.Flush()
}
