package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/laagtabai/laag-tui/internal/catalog"
	"github.com/laagtabai/laag-tui/internal/locale"
	"github.com/laagtabai/laag-tui/internal/nav"
	"github.com/laagtabai/laag-tui/internal/platform"
	"github.com/laagtabai/laag-tui/internal/scan"
	"github.com/laagtabai/laag-tui/internal/text"
	"github.com/laagtabai/laag-tui/internal/ui"
	"github.com/laagtabai/laag-tui/internal/util"
)

var version = "0.1.0-alpha"

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type flags struct {
	config         string
	env            string
	locale         string
	theme          string
	logPath        string
	logLevel       string
	skipOnboarding bool
}

func rootCmd() *cobra.Command {
	var f flags
	root := &cobra.Command{
		Use:           "laagtabai",
		Short:         "Laag ta bAI: a pocket guide to Cebu's heritage",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&f.config, "config", util.DefaultConfigPath(), "config file (TOML)")
	root.Flags().StringVar(&f.env, "env", "", "environment: DEV or release")
	root.Flags().StringVar(&f.locale, "locale", "", "language: en or ceb")
	root.Flags().StringVar(&f.theme, "theme", "", "color theme")
	root.Flags().StringVar(&f.logPath, "log-path", "", "log file")
	root.Flags().StringVar(&f.logLevel, "log-level", "", "debug|info|warn|error")
	root.Flags().BoolVar(&f.skipOnboarding, "skip-onboarding", false, "start on the main tabs")

	root.AddCommand(versionCmd(), routesCmd())
	return root
}

// loadConfig layers explicitly set flags over file and environment.
func loadConfig(cmd *cobra.Command, f flags) (util.Config, error) {
	cfg, err := util.Load(f.config)
	if err != nil {
		return cfg, err
	}
	set := cmd.Flags().Changed
	if set("env") {
		cfg.Env = f.env
	}
	if set("locale") {
		cfg.Locale = f.locale
	}
	if set("theme") {
		cfg.Theme = f.theme
	}
	if set("log-path") {
		cfg.LogPath = f.logPath
	}
	if set("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if set("skip-onboarding") {
		cfg.SkipOnboarding = f.skipOnboarding
	}
	return cfg, cfg.Validate()
}

func run(parent context.Context, cfg util.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := util.NewLogger(cfg.LogPath, cfg.LogLevel)
	defer logger.Close()
	logger.Info("starting", "version", version, "env", cfg.Env, "locale", cfg.Locale)

	cat, err := catalog.Default()
	if err != nil {
		return err
	}
	bundle, err := locale.Bundle()
	if err != nil {
		return err
	}
	scanCfg := scan.DefaultConfig()
	scanCfg.StepInterval = cfg.StepInterval
	scanCfg.Timeout = cfg.IdentifyTimeout

	err = ui.Run(ctx, ui.Deps{
		Config:  cfg,
		Catalog: cat,
		Bundle:  bundle,
		Device:  platform.NewStubDevice("gallery/magellans-cross.jpg"),
		Scanner: scan.NewScanner(scan.NewSimulated(cfg.IdentifyDuration), scanCfg, logger.Logger),
		Guide:   text.WithFallback(text.NewScriptedGuide(cat), text.NewMinimalGuide()),
		Logger:  logger.Logger,
	})
	if err != nil {
		logger.Error("ui exited", "error", err)
	}
	return err
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "laagtabai", version)
		},
	}
}

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the registered screens and how they are presented",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), routesTable(nav.DefaultRegistry()))
		},
	}
}

func routesTable(reg *nav.Registry) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ROUTE", "PRESENTATION", "ANIMATION", "TAB BAR", "BACK", "PARAMS")
	for _, name := range reg.Names() {
		d, err := reg.Lookup(name)
		if err != nil {
			continue
		}
		tr := nav.TransitionFor(d)
		t.Row(string(name), d.Presentation.String(), tr.Animation.String(), chromeLabel(tr.Chrome),
			fmt.Sprint(tr.BackGesture), schemaLabel(d.ParamSchema()))
	}
	return t.Render()
}

func chromeLabel(c nav.Chrome) string {
	switch c {
	case nav.ChromeShowsTabBar:
		return "shown"
	case nav.ChromeReplacesTabBar:
		return "hidden"
	default:
		return "covered"
	}
}

func schemaLabel(schema map[string]string) string {
	if len(schema) == 0 {
		return "-"
	}
	fields := make([]string, 0, len(schema))
	for k, v := range schema {
		fields = append(fields, k+" "+v)
	}
	sort.Strings(fields)
	return strings.Join(fields, ", ")
}
