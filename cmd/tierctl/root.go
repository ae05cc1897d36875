package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/tierkit/internal/logger"
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	jsonOut  bool
	logLevel string

	// Tier selection
	backend   string
	tierPath  string
	tierBanks int
)

var rootCmd = &cobra.Command{
	Use:   "tierctl",
	Short: "Inspect and exercise secondary-tier storage",
	Long: `tierctl attaches a transfer channel to a secondary tier (in memory, a
memory-mapped image file, or a LevelDB database) and runs capacity detection,
bulk clears, container self-tests and transfer benchmarks against it.`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logging")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.PersistentFlags().
		StringVar(&backend, "backend", backendMem, "Tier backend: mem, mmap or leveldb")
	rootCmd.PersistentFlags().StringVar(&tierPath, "path", "", "Tier image file (mmap) or database directory (leveldb)")
	rootCmd.PersistentFlags().IntVar(&tierBanks, "banks", 16, "Tier size in 64KB banks; 0 adopts an existing image")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogging routes library logs to stderr when asked for.
func setupLogging(cmd *cobra.Command, args []string) error {
	if !verbose && logLevel == "" {
		logger.Init(logger.Options{})
		return nil
	}
	level, err := logger.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	if verbose && logLevel == "" {
		level, _ = logger.ParseLevel("debug")
	}
	logger.Init(logger.Options{Enabled: true, Output: os.Stderr, JSON: jsonOut, Level: level})
	return nil
}

// Helper functions for output

var numbers = message.NewPrinter(language.English)

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		numbers.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		numbers.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// formatBytes renders a byte count with a binary unit.
func formatBytes(n int64) string {
	switch {
	case n < 1024:
		return numbers.Sprintf("%d bytes", n)
	case n < 1024*1024:
		return numbers.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return numbers.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}
