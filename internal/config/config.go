// Package config holds runtime configuration: defaults, CLI flag parsing,
// and validation of flag combinations before any file is touched.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrConfiguration marks an invalid or incomplete flag combination.
var ErrConfiguration = errors.New("configuration error")

// Mode is the rename transformation selected on the command line.
type Mode string

const (
	ModeNone            Mode = ""
	ModeReplace         Mode = "replace"
	ModeDelete          Mode = "delete"
	ModeInject          Mode = "inject"
	ModeReplaceSequence Mode = "replace-with-sequence"
	ModeInjectSequence  Mode = "inject-sequence"
)

// Flag returns the long command-line flag that selects m.
func (m Mode) Flag() string {
	if m == ModeReplace {
		return "--replace-with"
	}
	return "--" + string(m)
}

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// AppendPosition is the position used by --tail.
const AppendPosition = -1

// Config holds all runtime settings. It is populated by [DefaultConfig]
// and then mutated by [ParseFlags].
type Config struct {
	// Target directory (positional).
	Dir string

	// Mode selectors. Exactly one may be set.
	Replacement         string // --replace-with text; see ReplaceSet.
	ReplaceSet          bool   // Set when --replace-with was given (empty text allowed).
	Delete              bool
	ReplaceWithSequence bool
	InjectText          string // --inject text; see InjectSet.
	InjectSet           bool
	InjectSequence      bool

	// Mode arguments.
	Pattern     string
	PatternSet  bool // Set when --pattern was given (empty regex allowed).
	Position    int
	PositionSet bool // Set when --position was given.
	Head        bool
	Tail        bool
	Start       int // Default: 0.
	Step        int // Default: 1.
	Stop        int // Default: 0 (exclusive).
	Glob        string

	// Behavior.
	DryRun bool

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string
}

// DefaultConfig returns a Config with the documented defaults.
func DefaultConfig() Config {
	return Config{
		Start:     0,
		Step:      1,
		Stop:      0,
		ColorMode: ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// SelectedModes lists every mode flag that was given, in a fixed order.
func (c *Config) SelectedModes() []Mode {
	var modes []Mode
	if c.ReplaceSet {
		modes = append(modes, ModeReplace)
	}
	if c.Delete {
		modes = append(modes, ModeDelete)
	}
	if c.InjectSet {
		modes = append(modes, ModeInject)
	}
	if c.ReplaceWithSequence {
		modes = append(modes, ModeReplaceSequence)
	}
	if c.InjectSequence {
		modes = append(modes, ModeInjectSequence)
	}
	return modes
}

// Mode returns the single selected mode, or ModeNone. Call after Validate.
func (c *Config) Mode() Mode {
	modes := c.SelectedModes()
	if len(modes) != 1 {
		return ModeNone
	}
	return modes[0]
}

// InsertPosition resolves --position, --head and --tail into one index.
func (c *Config) InsertPosition() int {
	switch {
	case c.PositionSet:
		return c.Position
	case c.Head:
		return 0
	default:
		return AppendPosition
	}
}

// Validate checks the color mode, the positional directory, and that the
// flags form exactly one complete rename mode. No mode at all is valid.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("%w: invalid color mode %q", ErrConfiguration, c.ColorMode)
	}

	if c.Dir == "" {
		return fmt.Errorf("%w: need exactly one target directory", ErrConfiguration)
	}

	if c.Glob != "" && !doublestar.ValidatePattern(c.Glob) {
		return fmt.Errorf("%w: invalid --glob pattern %q", ErrConfiguration, c.Glob)
	}

	modes := c.SelectedModes()
	if len(modes) > 1 {
		names := make([]string, len(modes))
		for i, m := range modes {
			names[i] = m.Flag()
		}
		return fmt.Errorf("%w: modes are mutually exclusive (got %s)", ErrConfiguration, strings.Join(names, ", "))
	}
	if len(modes) == 0 {
		return nil
	}

	switch modes[0] {
	case ModeReplace, ModeDelete, ModeReplaceSequence:
		if !c.PatternSet && c.Pattern == "" {
			return fmt.Errorf("%w: --pattern has not been set", ErrConfiguration)
		}
	case ModeInject, ModeInjectSequence:
		return c.validatePosition()
	}
	return nil
}

func (c *Config) validatePosition() error {
	given := 0
	for _, set := range []bool{c.PositionSet, c.Head, c.Tail} {
		if set {
			given++
		}
	}
	switch given {
	case 0:
		return fmt.Errorf("%w: no position specified (use --position, --head or --tail)", ErrConfiguration)
	case 1:
		return nil
	default:
		return fmt.Errorf("%w: --position, --head and --tail are mutually exclusive", ErrConfiguration)
	}
}
