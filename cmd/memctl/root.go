package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/memory/alloc"
)

var (
	// Global flags
	configPath string
	jsonOut    bool
	quiet      bool

	// Resolved from flags, environment and config file before each command.
	cfg    settings
	logger = discardLogger()
)

var rootCmd = &cobra.Command{
	Use:   "memctl",
	Short: "Probe and stress the memkit aligned allocator",
	Long: `memctl drives the memkit aligned allocator: it reports the addresses and
alignments produced for size/alignment pairs and runs randomized
malloc/realloc/free churn that verifies block contents and checks for leaks.

Every flag can also be set through a MEMCTL_ environment variable
(MEMCTL_STRATEGY=header) or a config file passed with --config.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		s, err := loadSettings(cmd, configPath)
		if err != nil {
			return err
		}
		cfg = s
		logger, err = newLogger(cfg.LogLevel)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (yaml, toml or json)")
	rootCmd.PersistentFlags().String("strategy", "auto", "Allocation strategy: auto, native or header")
	rootCmd.PersistentFlags().String("system", "heap", "System allocator behind the header strategy: heap or page")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// backend is the allocator a command runs against.
type backend struct {
	allocator *alloc.Allocator
	// track counts system calls; nil unless the header strategy is in use.
	track *alloc.Tracking
	// system names the System behind the header strategy, empty for native.
	system string
	// offHeap reports whether blocks live outside the Go heap.
	offHeap bool
}

// newBackend builds the allocator selected by the resolved settings.
func newBackend(s settings, log *slog.Logger) (backend, error) {
	strategy, err := alloc.ParseStrategy(s.Strategy)
	if err != nil {
		return backend{}, err
	}

	b := backend{system: s.System}
	var sys alloc.System
	switch s.System {
	case "", "heap":
		b.system = "heap"
		sys = alloc.NewHeapSystem()
	case "page":
		pages := alloc.NewPageSystem()
		b.offHeap = pages.OffHeap()
		sys = pages
	default:
		return backend{}, fmt.Errorf("unknown system allocator %q (want heap or page)", s.System)
	}
	track := alloc.NewTracking(sys)

	a, err := alloc.New(alloc.Config{Strategy: strategy, System: track, Logger: log})
	if err != nil {
		return backend{}, err
	}
	b.allocator = a
	if a.Strategy() != alloc.StrategyHeader {
		// Native blocks come from the platform's C runtime heap.
		b.system, b.offHeap = "", true
		return b, nil
	}
	b.track = track
	return b, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
