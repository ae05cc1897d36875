package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/tierkit/internal/logger"
	"github.com/joshuapare/tierkit/tier"
	"github.com/joshuapare/tierkit/tier/levelstore"
	"github.com/joshuapare/tierkit/tier/mmapstore"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Parse flags first (before positional args)
	args := os.Args[1:]
	debugMode := false
	useLevelDB := false

	filteredArgs := make([]string, 0, len(args))
	for _, arg := range args {
		switch arg {
		case "--debug", "-d":
			debugMode = true
		case "--leveldb":
			useLevelDB = true
		default:
			filteredArgs = append(filteredArgs, arg)
		}
	}

	if len(filteredArgs) < 1 {
		printUsage()
		os.Exit(1)
	}

	if filteredArgs[0] == "--help" || filteredArgs[0] == "-h" {
		printHelp()
		os.Exit(0)
	}

	if filteredArgs[0] == "--version" || filteredArgs[0] == "-v" {
		fmt.Printf("tierview %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		os.Exit(0)
	}

	// The TUI owns the terminal, so debug logs go to a file
	if debugMode {
		logPath := filepath.Join(os.TempDir(), "tierview.log")
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
		} else {
			defer f.Close()
			logger.Init(logger.Options{Enabled: true, Output: f, Level: slog.LevelDebug})
		}
	}

	path := filteredArgs[0]
	logger.Info("starting tierview", "path", path, "leveldb", useLevelDB)

	store, closeStore, err := openStore(path, useLevelDB)
	if err != nil {
		logger.Error("open failed", "path", path, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("error closing tier", "error", err)
		}
	}()

	banks := int(store.Size() / tier.BankSize)
	m := NewModel(path, tier.NewChannel(store), banks)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	// A LevelDB tier is locked while open, so only image files can change under us
	if !useLevelDB {
		w, err := watchImage(path, 100*time.Millisecond, p.Send)
		if err != nil {
			logger.Warn("live refresh disabled", "error", err)
		} else {
			defer w.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	logger.Info("tierview exited normally")
}

// openStore opens an existing tier image without resizing it.
func openStore(path string, useLevelDB bool) (tier.Store, func() error, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil, fmt.Errorf("tier not found: %s", path)
	}

	if useLevelDB {
		s, err := levelstore.Open(path, levelstore.Options{ReadOnly: true})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open tier database: %w", err)
		}
		if s.Size() == 0 {
			_ = s.Close()
			return nil, nil, errors.New("tier database holds no banks")
		}
		return s, s.Close, nil
	}

	s, err := mmapstore.Open(path, mmapstore.Options{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open tier image: %w", err)
	}
	if s.Size() == 0 {
		_ = s.Close()
		return nil, nil, errors.New("tier image is empty")
	}
	return s, s.Close, nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: tierview [options] <tier-image>\n")
	fmt.Fprintf(os.Stderr, "Try 'tierview --help' for more information.\n")
}

func printHelp() {
	fmt.Println("tierview - Interactive TUI for tier images")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  tierview [options] <tier-image>")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Browses a tier image bank by bank as a hex dump. Every visible row is")
	fmt.Println("  fetched through a transfer channel and the status bar shows the traffic.")
	fmt.Println("  The image is never written; writes by other processes show up live.")
	fmt.Println()
	fmt.Println("  Navigation:")
	fmt.Println("    ↑/k, ↓/j    Move up/down")
	fmt.Println("    pgup/pgdn   Page up/down")
	fmt.Println("    g/G         Start/end of bank")
	fmt.Println("    ]/n, [/p    Next/previous bank")
	fmt.Println("    c           Copy row")
	fmt.Println("    ?           Show help")
	fmt.Println("    q           Quit")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  --leveldb      Open a LevelDB tier directory instead of an image file")
	fmt.Println("  -d, --debug    Log to tierview.log in the temp directory")
	fmt.Println("  -h, --help     Show this help message")
	fmt.Println("  -v, --version  Show version information")
}
