package display

import (
	"fmt"
	"io"

	"github.com/backmassage/renamer/internal/term"
)

// PrintBanner writes the ASCII art banner to w; magenta when colors are on.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, term.Paint(term.Magenta, ` _ __ ___ _ __   __ _ _ __ ___   ___ _ __
| '__/ _ \ '_ \ / _`+"`"+` | '_ `+"`"+` _ \ / _ \ '__|
| | |  __/ | | | (_| | | | | | |  __/ |
|_|  \___|_| |_|\__,_|_| |_| |_|\___|_|
`))
	fmt.Fprintln(w)
}
