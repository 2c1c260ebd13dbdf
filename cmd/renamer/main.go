// Command renamer is the CLI entrypoint for the batch file renamer.
//
// It parses flags, validates that they form one complete rename mode, and
// runs the batch against the target directory on the OS filesystem.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/renamer/internal/config"
	"github.com/backmassage/renamer/internal/display"
	"github.com/backmassage/renamer/internal/logging"
	"github.com/backmassage/renamer/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes one CLI invocation and returns its exit code.
func run(args []string) int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// straight to stderr.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, args, version); err != nil {
		if errors.Is(err, flag.ErrHelp) || errors.Is(err, config.ErrVersion) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "renamer: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "renamer: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "renamer: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available.
	display.PrintBanner(os.Stdout)
	log.Info("=== renamer v%s (%s) ===", version, commit)
	log.Debug(cfg.Verbose, "Run ID: %s", log.RunID())
	if cfg.DryRun {
		log.Warn("DRY RUN: no files will be renamed")
	}

	// Phase 3: Stop between files on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Received interrupt, stopping before the next file")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Phase 4: list, transform, rename.
	if _, err := pipeline.Run(ctx, &cfg, pipeline.NewHostFS(), log); err != nil {
		log.Error("%v", err)
		return 1
	}
	return 0
}
