package cmd

import (
	"fmt"
	"log/slog"
	"os"

	cfgpkg "github.com/KaramelBytes/courtside/internal/config"
	"github.com/KaramelBytes/courtside/internal/dataset"
	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

var (
	// Global flags
	cfgFile  string
	debug    bool
	dataFlag string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "courtside",
	Short: "Courtside: interactive game statistics dashboard",
	Long: `Courtside loads a table of game statistics, lets you filter it by season and team,
and shows summary figures, charts, and a downloadable CSV of the selection.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.courtside/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&dataFlag, "data", "", "data file (.csv, .tsv or .xlsx; overrides config data_path)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Defaults()
	}
	cfg = c
	setupLogger(cfg.LogFormat, debug)
}

func setupLogger(format string, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if format == "json" {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}

// loadTable reads and normalizes the data file.
// Precedence: positional path, then --data, then config data_path.
func loadTable(path string) (*dataset.Table, error) {
	if path == "" {
		path = dataFlag
	}
	if path == "" && cfg != nil {
		path = cfg.DataPath
	}
	if path == "" {
		return nil, fmt.Errorf("no data file: pass a path, --data, or set data_path")
	}
	opt := dataset.LoadOptions{}
	if cfg != nil {
		opt.Delimiter = cfg.DelimiterRune()
		opt.Sheet = cfg.Sheet
	}
	raw, err := dataset.Load(path, opt)
	if err != nil {
		return nil, err
	}
	t, err := dataset.Normalize(raw)
	if err != nil {
		return nil, err
	}
	if n := t.BadMinutes(); n > 0 {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %d minutes values in %s could not be parsed and are treated as missing\n", n, t.Name)
	}
	slog.Debug("Loaded data", slog.String("file", t.Name), slog.String("load_id", t.ID), slog.Int("rows", t.Nrow()), slog.Int("cols", t.Ncol()))
	return t, nil
}

func argOrEmpty(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
