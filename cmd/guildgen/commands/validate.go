package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/discord-guild-generator/app/generator/layout"
	"github.com/spf13/cobra"
)

// layoutSummary counts what a layout declares.
type layoutSummary struct {
	Path        string `json:"path"`
	Roles       int    `json:"roles"`
	Emojis      int    `json:"emojis"`
	Stickers    int    `json:"stickers"`
	RootChannel int    `json:"root_channels"`
	Categories  int    `json:"categories"`
	Channels    int    `json:"channels"`
	Threads     int    `json:"threads"`
	Settings    bool   `json:"settings"`
}

func summarizeLayout(path string, g *layout.Guild) layoutSummary {
	s := layoutSummary{
		Path:        path,
		Roles:       len(g.Roles),
		Emojis:      len(g.Emojis),
		Stickers:    len(g.Stickers),
		RootChannel: len(g.RootChannels),
		Categories:  len(g.Categories),
		Settings:    g.HasSettings(),
	}
	for _, ch := range g.RootChannels {
		s.Threads += len(ch.Children)
	}
	for _, cat := range g.Categories {
		s.Channels += len(cat.Children)
		for _, ch := range cat.Children {
			s.Threads += len(ch.Children)
		}
	}
	return s
}

func newValidateCommand(root *rootOptions) *cobra.Command {
	var layoutPath string

	cmd := &cobra.Command{
		Use:   "validate [layout]",
		Short: "Validate a layout file without contacting Discord",
		Long: `Validate decodes a layout file and checks it the same way a generation run does.

This command checks:
  - YAML/JSON syntax and unknown fields
  - Field constraints (names, kinds, limits)
  - Role references in overwrites and emoji restrictions
  - Threads only under thread-capable channel kinds`,
		Example: `  # Validate the layout named in config.yaml
  guildgen validate

  # Validate a specific file
  guildgen validate ./layouts/club.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := layoutPath
			if len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				cfg, err := root.loadConfig()
				if err != nil {
					return err
				}
				path = cfg.Generator.LayoutPath
			}
			if path == "" {
				return errors.New("no layout given: pass a path or set generator.layout_path")
			}

			g, err := layout.LoadFile(path)
			if err != nil {
				return err
			}

			summary := summarizeLayout(path, g)
			out := cmd.OutOrStdout()
			if root.jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			fmt.Fprintf(out, "%s is valid: %d roles, %d emojis, %d stickers, %d root channels, %d categories, %d channels, %d threads\n",
				path, summary.Roles, summary.Emojis, summary.Stickers, summary.RootChannel,
				summary.Categories, summary.Channels, summary.Threads)
			return nil
		},
	}

	cmd.Flags().StringVarP(&layoutPath, "layout", "l", "", "layout file path")

	return cmd
}
