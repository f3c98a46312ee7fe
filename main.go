package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"hnterm/cache"
	"hnterm/domain"
	"hnterm/infra/config"
	"hnterm/infra/hackernews"
	"hnterm/infra/logging"
	"hnterm/tui"
)

// version is set at build time with -ldflags.
var version = "dev"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "hnterm",
		Short:        "Browse Hacker News from the terminal",
		Long:         "An interactive terminal client for Hacker News: story lists, paging and lazily loaded comment threads.",
		Version:      version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         run,
	}
	cmd.Flags().IntP("length", "l", 0, fmt.Sprintf("stories per page (1-%d)", config.MaxLength))
	cmd.Flags().StringP("story-type", "s", "", "story category: top, new or best")
	cmd.Flags().BoolP("version", "V", false, "print the version and exit")
	cmd.SetVersionTemplate("hnterm {{.Version}}\n")
	return cmd
}

// buildConfig merges file, environment and flag settings and validates the
// result. Flags win.
func buildConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("length") {
		cfg.Length, _ = cmd.Flags().GetInt("length")
	}
	if cmd.Flags().Changed("story-type") {
		cfg.StoryType, _ = cmd.Flags().GetString("story-type")
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		cmd.Usage()
		return err
	}
	if err := logging.Setup(cfg.Log.File, cfg.Log.Level); err != nil {
		return err
	}

	storyType, err := domain.ParseStoryType(cfg.StoryType)
	if err != nil {
		return err
	}

	var opts []hackernews.Option
	if cfg.APIURL != "" {
		opts = append(opts, hackernews.WithBaseURL(cfg.APIURL))
	}
	client := hackernews.NewClient(opts...)

	store := cache.NewStore(hackernews.NewGateway(client), cache.Options{
		PageTTL:    cfg.Cache.PageTTL,
		ItemTTL:    cfg.Cache.ItemTTL,
		PageCap:    cfg.Cache.PageCap,
		ItemCap:    cfg.Cache.ItemCap,
		FetchLimit: cfg.Cache.FetchConcurrency,
	})

	logging.Log.WithField("version", version).Info("starting")

	p := tea.NewProgram(tui.NewApp(store, storyType, cfg.Length), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
