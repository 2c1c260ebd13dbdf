package naming

import (
	"errors"
	"fmt"
	"regexp"
)

// Append is the canonical position for appending injected text. Any
// negative position behaves the same; it is not an offset from the end.
const Append = -1

// ErrPattern wraps regular expression compile failures.
var ErrPattern = errors.New("invalid pattern")

// CompilePattern compiles a user-supplied regex.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrPattern, pattern, err)
	}
	return re, nil
}

// Replace substitutes every match of re in name with repl. repl is
// expanded, so $1 and ${name} refer to capture groups.
func Replace(name string, re *regexp.Regexp, repl string) string {
	return re.ReplaceAllString(name, repl)
}

// Delete removes every match of re from name.
func Delete(name string, re *regexp.Regexp) string {
	return Replace(name, re, "")
}

// Inject inserts text before the character at pos. A pos past the end of
// name appends, and so does any negative pos.
func Inject(name string, pos int, text string) string {
	if pos < 0 {
		return name + text
	}
	runes := []rune(name)
	if pos > len(runes) {
		pos = len(runes)
	}
	return string(runes[:pos]) + text + string(runes[pos:])
}
