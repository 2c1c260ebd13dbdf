package config

// This file implements CLI flag parsing and help text. Every option has a
// short and a long name registered against the same destination.

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrVersion is returned by ParseFlags after --version has been printed.
var ErrVersion = errors.New("version requested")

// ParseFlags parses args (without the program name) into cfg. Flags may
// appear before or after the target directory. On --help it prints usage
// and returns flag.ErrHelp; on --version it prints and returns ErrVersion.
func ParseFlags(cfg *Config, args []string, version string) error {
	fs := flag.NewFlagSet("renamer", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs.Output(), version) }

	var u utilityFlags
	defineModeFlags(fs, cfg)
	defineArgumentFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &u)

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}

	if u.showHelp {
		printUsage(fs.Output(), version)
		return flag.ErrHelp
	}
	if u.showVersion {
		fmt.Fprintln(os.Stdout, "renamer v"+version)
		return ErrVersion
	}
	if u.noColor {
		cfg.ColorMode = ColorNever
	} else if u.forceColor {
		cfg.ColorMode = ColorAlways
	}

	if len(positional) != 1 {
		return fmt.Errorf("%w: need exactly one target directory (got %d)", ErrConfiguration, len(positional))
	}
	cfg.Dir = NormalizeDirArg(positional[0])
	return nil
}

// parseInterspersed runs fs.Parse repeatedly so positionals may sit
// between flags. Everything after "--" is positional.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		consumed := rest[:len(rest)-fs.NArg()]
		if terminated(fs, consumed) {
			return append(positional, fs.Args()...), nil
		}
		if fs.NArg() == 0 {
			return positional, nil
		}
		positional = append(positional, fs.Arg(0))
		rest = fs.Args()[1:]
	}
}

// terminated reports whether Parse stopped at a bare "--". A "--" that
// was taken as the value of the preceding flag does not count.
func terminated(fs *flag.FlagSet, consumed []string) bool {
	for i := 0; i < len(consumed); i++ {
		arg := consumed[i]
		if arg == "--" {
			return i == len(consumed)-1
		}
		if takesValue(fs, arg) {
			i++
		}
	}
	return false
}

// takesValue reports whether arg is a non-boolean flag whose value is the
// next argument.
func takesValue(fs *flag.FlagSet, arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	name := strings.TrimPrefix(arg[1:], "-")
	if name == "" || strings.Contains(name, "=") {
		return false
	}
	f := fs.Lookup(name)
	if f == nil {
		return false
	}
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return false
	}
	return true
}

// utilityFlags holds flags applied after Parse.
type utilityFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineModeFlags registers the five mutually exclusive mode selectors.
func defineModeFlags(fs *flag.FlagSet, cfg *Config) {
	replace := &optionalString{p: &cfg.Replacement, set: &cfg.ReplaceSet}
	fs.Var(replace, "replace-with", "Replace pattern matches with this text")
	fs.Var(replace, "r", "Same as --replace-with")
	fs.BoolVar(&cfg.Delete, "delete", false, "Delete pattern matches")
	fs.BoolVar(&cfg.Delete, "d", false, "Same as --delete")
	fs.BoolVar(&cfg.ReplaceWithSequence, "replace-with-sequence", false, "Replace pattern matches with sequence values")
	fs.BoolVar(&cfg.ReplaceWithSequence, "j", false, "Same as --replace-with-sequence")
	inject := &optionalString{p: &cfg.InjectText, set: &cfg.InjectSet}
	fs.Var(inject, "inject", "Inject this text at --position")
	fs.Var(inject, "i", "Same as --inject")
	fs.BoolVar(&cfg.InjectSequence, "inject-sequence", false, "Inject sequence values at --position")
	fs.BoolVar(&cfg.InjectSequence, "q", false, "Same as --inject-sequence")
}

// defineArgumentFlags registers pattern, position, sequence bounds, glob and dry-run.
func defineArgumentFlags(fs *flag.FlagSet, cfg *Config) {
	pattern := &optionalString{p: &cfg.Pattern, set: &cfg.PatternSet}
	fs.Var(pattern, "pattern", "Regex pattern to look for")
	fs.Var(pattern, "p", "Same as --pattern")
	pos := &positionValue{p: &cfg.Position, set: &cfg.PositionSet}
	fs.Var(pos, "position", "0-based insertion index; negative appends")
	fs.Var(pos, "n", "Same as --position")
	fs.BoolVar(&cfg.Head, "head", false, "Insert at the beginning")
	fs.BoolVar(&cfg.Head, "e", false, "Same as --head")
	fs.BoolVar(&cfg.Tail, "tail", false, "Insert at the end")
	fs.BoolVar(&cfg.Tail, "t", false, "Same as --tail")
	fs.IntVar(&cfg.Start, "start", cfg.Start, "First sequence value")
	fs.IntVar(&cfg.Start, "u", cfg.Start, "Same as --start")
	fs.IntVar(&cfg.Step, "step", cfg.Step, "Sequence increment")
	fs.IntVar(&cfg.Step, "v", cfg.Step, "Same as --step")
	fs.IntVar(&cfg.Stop, "stop", cfg.Stop, "Exclusive sequence bound")
	fs.IntVar(&cfg.Stop, "x", cfg.Stop, "Same as --stop")
	fs.StringVar(&cfg.Glob, "glob", "", "Only rename files whose name matches this glob")
	fs.StringVar(&cfg.Glob, "g", "", "Same as --glob")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Report renames without performing them")
	fs.BoolVar(&cfg.DryRun, "a", false, "Same as --dry-run")
}

// defineDisplayFlags registers color, verbose, log, version and help.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, u *utilityFlags) {
	fs.BoolVar(&u.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&u.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.StringVar(&cfg.LogFile, "log", "", "Append a structured log to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
	fs.BoolVar(&u.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&u.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&u.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&u.showHelp, "h", false, "Same as --help")
}

// printUsage writes the help text. Column-aligned for readability.
func printUsage(w io.Writer, version string) {
	const col1 = 34 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "renamer v" + version + " - batch file renamer"},
		{"", ""},
		{"  renamer [OPTIONS] <path>", ""},
		{"", ""},
		{"Modes (pick one)", ""},
		{"  -r, --replace-with <text>", "Replace --pattern matches with text"},
		{"  -d, --delete", "Delete --pattern matches"},
		{"  -j, --replace-with-sequence", "Replace --pattern matches with sequence values"},
		{"  -i, --inject <text>", "Inject text at the chosen position"},
		{"  -q, --inject-sequence", "Inject sequence values at the chosen position"},
		{"", ""},
		{"Arguments", ""},
		{"  -p, --pattern <regex>", "Pattern for replace and delete modes"},
		{"  -n, --position <int>", "0-based insertion index; negative appends"},
		{"  -e, --head", "Insert at the beginning"},
		{"  -t, --tail", "Insert at the end"},
		{"  -u, --start <int>", "First sequence value (default: 0)"},
		{"  -v, --step <int>", "Sequence increment (default: 1)"},
		{"  -x, --stop <int>", "Exclusive sequence bound (default: 0)"},
		{"  -g, --glob <pattern>", "Only rename matching file names"},
		{"", ""},
		{"Behavior & display", ""},
		{"  -a, --dry-run", "Report renames without performing them"},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  --verbose", "Verbose output"},
		{"  -l, --log <path>", "Append a structured log to file"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(w)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(w, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(w, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(w, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapters that record whether the flag was given at all.

type optionalString struct {
	p   *string
	set *bool
}

func (o *optionalString) String() string {
	if o.p == nil {
		return ""
	}
	return *o.p
}

func (o *optionalString) Set(s string) error {
	*o.p = s
	*o.set = true
	return nil
}

type positionValue struct {
	p   *int
	set *bool
}

func (v *positionValue) String() string {
	if v.p == nil {
		return ""
	}
	return strconv.Itoa(*v.p)
}

func (v *positionValue) Set(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("position must be a whole number (got %q)", s)
	}
	*v.p = n
	*v.set = true
	return nil
}
