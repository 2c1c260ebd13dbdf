package pipeline

import (
	"github.com/backmassage/renamer/internal/config"
	"github.com/backmassage/renamer/internal/naming"
	"github.com/backmassage/renamer/internal/sequence"
)

// BuildRule turns a validated config into a naming.Rule, compiling the
// pattern. A config with no mode yields the zero Rule.
func BuildRule(cfg *config.Config) (naming.Rule, error) {
	r := sequence.Range{Start: cfg.Start, Step: cfg.Step, Stop: cfg.Stop}
	pos := cfg.InsertPosition()

	switch cfg.Mode() {
	case config.ModeInject:
		return naming.Rule{Op: naming.OpInject, Position: pos, Text: cfg.InjectText}, nil
	case config.ModeInjectSequence:
		return naming.Rule{Op: naming.OpInjectSequence, Position: pos, Range: r}, nil
	case config.ModeNone:
		return naming.Rule{}, nil
	}

	re, err := naming.CompilePattern(cfg.Pattern)
	if err != nil {
		return naming.Rule{}, err
	}
	switch cfg.Mode() {
	case config.ModeReplace:
		return naming.Rule{Op: naming.OpReplace, Pattern: re, Replacement: cfg.Replacement}, nil
	case config.ModeDelete:
		return naming.Rule{Op: naming.OpDelete, Pattern: re}, nil
	default:
		return naming.Rule{Op: naming.OpReplaceSequence, Pattern: re, Range: r}, nil
	}
}
