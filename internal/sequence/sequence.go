// Package sequence produces the arithmetic progressions used by the
// sequence rename modes: one value per file, in listing order.
package sequence

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Unbounded is returned by [Range.Len] when the range never ends (Step == 0).
const Unbounded = -1

// Sentinel errors for range validation and consumption.
var (
	ErrInvalidRange = errors.New("invalid sequence range")
	ErrInsufficient = errors.New("sequence too short for file count")
	ErrExhausted    = errors.New("sequence exhausted")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Range describes the progression Start, Start+Step, ... strictly below Stop.
type Range struct {
	Start int `validate:"gte=0,ltfield=Stop"`
	Step  int `validate:"gte=0"`
	Stop  int `validate:"gte=0"`
}

func (r Range) String() string {
	return fmt.Sprintf("start=%d step=%d stop=%d", r.Start, r.Step, r.Stop)
}

// Validate rejects negative bounds and empty ranges (Start >= Stop).
func (r Range) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "gte":
			msgs = append(msgs, field+" must not be negative")
		case "ltfield":
			msgs = append(msgs, field+" must be less than stop")
		default:
			msgs = append(msgs, field+" failed "+fe.Tag())
		}
	}
	return fmt.Errorf("%w (%s): %s", ErrInvalidRange, r, strings.Join(msgs, "; "))
}

// Len returns how many values the range yields, or [Unbounded].
func (r Range) Len() int {
	if r.Start >= r.Stop {
		return 0
	}
	if r.Step == 0 {
		return Unbounded
	}
	return (r.Stop-r.Start-1)/r.Step + 1
}

// CheckSufficient reports [ErrInsufficient] when the range yields fewer
// than count values. The real length is used, so Start and Step count.
func (r Range) CheckSufficient(count int) error {
	n := r.Len()
	if n == Unbounded || n >= count {
		return nil
	}
	return fmt.Errorf("%w: %s yields %d value(s) for %d file(s)", ErrInsufficient, r, n, count)
}

// Values lazily yields the range. A zero Step repeats Start forever.
func (r Range) Values() iter.Seq[int] {
	return func(yield func(int) bool) {
		if r.Step < 0 {
			return
		}
		for v := r.Start; v < r.Stop; v += r.Step {
			if !yield(v) {
				return
			}
			// Stop before v+Step could overflow.
			if r.Stop-v <= r.Step {
				return
			}
		}
	}
}

// Generator pulls values from a Range one at a time.
type Generator struct {
	next func() (int, bool)
	stop func()
}

// NewGenerator starts pulling from r. Call Close when done.
func NewGenerator(r Range) *Generator {
	next, stop := iter.Pull(r.Values())
	return &Generator{next: next, stop: stop}
}

// Next returns the next value, or [ErrExhausted] once the range is spent.
func (g *Generator) Next() (int, error) {
	v, ok := g.next()
	if !ok {
		return 0, ErrExhausted
	}
	return v, nil
}

// Close releases the underlying iterator.
func (g *Generator) Close() {
	g.stop()
}
