package commands

import (
	"context"
	"fmt"

	"github.com/Black-And-White-Club/discord-guild-generator/config"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "config.yaml"

type rootOptions struct {
	configPath string
	jsonOutput bool
}

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	return NewRootCommand(version, commit, buildDate).ExecuteContext(ctx)
}

// NewRootCommand builds the guildgen command tree.
func NewRootCommand(version, commit, buildDate string) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "guildgen",
		Short: "Regenerate a Discord guild from a declarative layout",
		Long: `guildgen tears a Discord guild down and rebuilds it from a layout file.

A layout declares roles, emojis, stickers, root channels and categories with
their channels and threads. Every run deletes the guild's mutable structure
before recreating it.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", defaultConfigPath, "config file path")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "output in JSON format")

	rootCmd.AddCommand(newGenerateCommand(opts))
	rootCmd.AddCommand(newValidateCommand(opts))
	rootCmd.AddCommand(newHistoryCommand(opts))

	return rootCmd
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
