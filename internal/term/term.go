// Package term decides whether output is colored and holds the escape
// codes used for it. Call [Configure] once at startup, then color text
// with [Paint]. With color off the codes are empty strings.
package term

import (
	"os"
	"strings"

	"github.com/backmassage/renamer/internal/config"
)

// Escape codes set by Configure.
var (
	Red     = ""
	Green   = ""
	Yellow  = ""
	Blue    = ""
	Cyan    = ""
	Magenta = ""
	NC      = "" // reset
)

// Configure turns color on or off for mode. ColorAuto colors only a
// terminal stdout without NO_COLOR or TERM=dumb.
func Configure(mode config.ColorMode) {
	on := wantColor(mode)
	code := func(sgr string) string {
		if !on {
			return ""
		}
		return "\033[" + sgr + "m"
	}
	Red, Green, Yellow = code("1;91"), code("1;92"), code("1;93")
	Blue, Magenta, Cyan = code("1;94"), code("1;95"), code("1;96")
	NC = code("0")
}

// Enabled reports the outcome of the last Configure.
func Enabled() bool { return NC != "" }

// Paint returns s wrapped in color, or s itself when color is empty.
func Paint(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + NC
}

func wantColor(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		if os.Getenv("NO_COLOR") != "" || strings.EqualFold(os.Getenv("TERM"), "dumb") {
			return false
		}
		return IsTerminal(os.Stdout)
	}
}

// IsTerminal reports whether f is a character device.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
