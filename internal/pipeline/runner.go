package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"

	"github.com/backmassage/renamer/internal/config"
	"github.com/backmassage/renamer/internal/display"
	"github.com/backmassage/renamer/internal/logging"
	"github.com/backmassage/renamer/internal/naming"
	"github.com/backmassage/renamer/internal/sequence"
)

// Run is the top-level batch entry point. It builds the transformation
// from cfg, lists cfg.Dir, validates any sequence against the file count,
// then renames each file in listing order through fsys. Every check that
// can fail before the first rename does so before anything is touched.
//
// cfg is validated first, so conflicting modes fail here even when the
// caller skipped Validate. With no mode selected it logs a notice and
// returns without listing.
func Run(ctx context.Context, cfg *config.Config, fsys billy.Filesystem, log *logging.Logger) (RunStats, error) {
	var stats RunStats

	if err := cfg.Validate(); err != nil {
		return stats, err
	}
	rule, err := BuildRule(cfg)
	if err != nil {
		return stats, err
	}
	if rule.Op == 0 {
		log.Warn("No rename mode selected; nothing to do (see --help)")
		return stats, nil
	}

	files, err := ListFiles(fsys, cfg.Dir, cfg.Glob)
	if err != nil {
		return stats, err
	}
	stats.Total = len(files)
	logBatchHeader(cfg, log, rule, &stats)

	var gen *sequence.Generator
	if rule.UsesSequence() {
		if err := rule.Range.Validate(); err != nil {
			return stats, err
		}
		if err := rule.Range.CheckSufficient(len(files)); err != nil {
			return stats, err
		}
		gen = sequence.NewGenerator(rule.Range)
		defer gen.Close()
	}

	for i, f := range files {
		stats.Current = i + 1

		if ctx.Err() != nil {
			log.Warn("Interrupted after %s", display.Count(stats.Renamed, "rename", "renames"))
			return stats, ctx.Err()
		}

		value := 0
		if gen != nil {
			value, err = gen.Next()
			if err != nil {
				return stats, fmt.Errorf("%s: %w", f.Name, err)
			}
		}

		if err := processFile(cfg, fsys, log, rule, f, value, &stats); err != nil {
			return stats, err
		}
	}

	logSummary(cfg, log, &stats)
	return stats, nil
}

// processFile computes one new name, reports it, and commits it unless
// this is a dry run or the name is unchanged.
func processFile(
	cfg *config.Config,
	fsys billy.Filesystem,
	log *logging.Logger,
	rule naming.Rule,
	f Entry,
	value int,
	stats *RunStats,
) error {
	newName := rule.Apply(f.Name, value)
	log.Debug(cfg.Verbose, "[%d/%d] %s (value %d)", stats.Current, stats.Total, f.Name, value)

	if err := checkName(newName); err != nil {
		stats.Failed++
		return &RenameError{Old: f.Name, New: newName, Err: err}
	}
	stats.Renames = append(stats.Renames, Rename{Old: f.Name, New: newName})

	if newName == f.Name {
		stats.Unchanged++
		log.Info("%s", display.RenameLine(f.Name, newName, cfg.DryRun))
		return nil
	}

	log.Success("%s", display.RenameLine(f.Name, newName, cfg.DryRun))
	if cfg.DryRun {
		stats.Renamed++
		return nil
	}

	if err := fsys.Rename(f.Path, fsys.Join(cfg.Dir, newName)); err != nil {
		stats.Failed++
		return &RenameError{Old: f.Name, New: newName, Err: err}
	}
	stats.Renamed++
	return nil
}

// checkName rejects results that would leave the directory or name it.
func checkName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsRune(name, '/'), strings.ContainsRune(name, filepath.Separator), strings.ContainsRune(name, 0):
		return fmt.Errorf("%w: %q contains a path separator or NUL", ErrInvalidName, name)
	}
	return nil
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, rule naming.Rule, stats *RunStats) {
	switch rule.Op {
	case naming.OpReplace:
		log.Info("Replace Mode")
		log.Info("Replace With: %s", display.Quote(rule.Replacement))
		log.Info("REGEX Pattern: %s", rule.Pattern)
	case naming.OpDelete:
		log.Info("Delete Mode")
		log.Info("REGEX Pattern: %s", rule.Pattern)
	case naming.OpInject:
		log.Info("Inject Mode")
		log.Info("Text: %s at %s", display.Quote(rule.Text), positionLabel(rule.Position))
	case naming.OpReplaceSequence:
		log.Info("Replace With Sequence Mode")
		log.Info("REGEX Pattern: %s", rule.Pattern)
		log.Info("Sequence: %s", rule.Range)
	case naming.OpInjectSequence:
		log.Info("Inject Sequence Mode")
		log.Info("Sequence: %s at %s", rule.Range, positionLabel(rule.Position))
	}
	if cfg.Glob != "" {
		log.Info("Only names matching: %s", cfg.Glob)
	}
	log.Info("Found %s in %s", display.Count(stats.Total, "file", "files"), cfg.Dir)
}

func positionLabel(pos int) string {
	if pos < 0 {
		return "end"
	}
	return fmt.Sprintf("position %d", pos)
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	verb := "renamed"
	if cfg.DryRun {
		verb = "would be renamed"
	}
	log.Info("Done: %d %s, %d unchanged, %d failed", stats.Renamed, verb, stats.Unchanged, stats.Failed)
}
