// Package display formats the human-readable parts of a run: the banner,
// per-file status lines and counts.
package display

import "fmt"

// RenameLine is the status line emitted for every processed file,
// including one whose name comes out unchanged.
func RenameLine(oldName, newName string, dryRun bool) string {
	if dryRun {
		return fmt.Sprintf("[DRY] %s Would be renamed to -> %s", oldName, newName)
	}
	return fmt.Sprintf("%s Renamed to -> %s", oldName, newName)
}

// Count renders n with a singular or plural noun, e.g. "1 file", "3 files".
func Count(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// Quote renders s for log lines, making empty and whitespace-edged
// values visible.
func Quote(s string) string {
	return fmt.Sprintf("%q", s)
}
