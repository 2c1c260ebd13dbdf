package naming

import (
	"regexp"
	"strconv"

	"github.com/backmassage/renamer/internal/sequence"
)

// Op selects the transformation a Rule applies.
type Op int

const (
	OpReplace         Op = iota + 1 // Pattern -> Replacement.
	OpDelete                        // Pattern -> "".
	OpInject                        // Text at Position.
	OpReplaceSequence               // Pattern -> current sequence value.
	OpInjectSequence                // Current sequence value at Position.
)

func (o Op) String() string {
	switch o {
	case OpReplace:
		return "replace"
	case OpDelete:
		return "delete"
	case OpInject:
		return "inject"
	case OpReplaceSequence:
		return "replace-with-sequence"
	case OpInjectSequence:
		return "inject-sequence"
	}
	return "none"
}

// Rule is one fully-resolved transformation. Only the fields relevant to
// Op are read.
type Rule struct {
	Op          Op
	Pattern     *regexp.Regexp // OpReplace, OpDelete, OpReplaceSequence
	Replacement string         // OpReplace
	Position    int            // OpInject, OpInjectSequence
	Text        string         // OpInject
	Range       sequence.Range // OpReplaceSequence, OpInjectSequence
}

// UsesSequence reports whether Apply consumes a sequence value per file.
func (s Rule) UsesSequence() bool {
	return s.Op == OpReplaceSequence || s.Op == OpInjectSequence
}

// Apply computes the new base name for name. value is ignored unless the
// rule uses a sequence.
func (s Rule) Apply(name string, value int) string {
	switch s.Op {
	case OpReplace:
		return Replace(name, s.Pattern, s.Replacement)
	case OpDelete:
		return Delete(name, s.Pattern)
	case OpInject:
		return Inject(name, s.Position, s.Text)
	case OpReplaceSequence:
		return Replace(name, s.Pattern, strconv.Itoa(value))
	case OpInjectSequence:
		return Inject(name, s.Position, strconv.Itoa(value))
	}
	return name
}
