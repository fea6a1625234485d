// Package validate runs the pre-core request checks. Handlers collect rule
// failures into one invalid-argument error with a message per broken rule;
// core logic only ever sees input that passed.
package validate

import (
	"fmt"
	"time"

	dErrors "minehub/pkg/domain-errors"
)

// Rules accumulates failed-rule messages. The zero value is ready to use.
type Rules struct {
	msgs []string
}

// Length checks that value is between min and max characters.
func (r *Rules) Length(field, value string, min, max int) {
	if n := len([]rune(value)); n < min || n > max {
		r.addf("'%s' must be between %d and %d characters. You entered %d characters.", field, min, max, n)
	}
}

// IntBetween checks an inclusive integer range.
func (r *Rules) IntBetween(field string, v, min, max int) {
	if v < min || v > max {
		r.addf("'%s' must be between %d and %d. You entered %d.", field, min, max, v)
	}
}

// FloatBetween checks an inclusive float range.
func (r *Rules) FloatBetween(field string, v, min, max float64) {
	if v < min || v > max {
		r.addf("'%s' must be between %v and %v. You entered %v.", field, min, max, v)
	}
}

// NonNegative checks v >= 0.
func (r *Rules) NonNegative(field string, v float64) {
	if v < 0 {
		r.addf("'%s' must be greater than or equal to '0'.", field)
	}
}

// PastYear checks that t falls within the year ending now. Zero times are
// skipped so callers can default them separately.
func (r *Rules) PastYear(field string, t, now time.Time) {
	if t.IsZero() {
		return
	}
	if t.Before(now.AddDate(-1, 0, 0)) || t.After(now) {
		r.add("Dates must be some datetime value that occurred in the past year.")
	}
}

func (r *Rules) add(msg string) { r.msgs = append(r.msgs, msg) }

func (r *Rules) addf(format string, args ...any) { r.add(fmt.Sprintf(format, args...)) }

// Err returns nil when every rule passed, or one invalid-argument error
// carrying all failure messages.
func (r *Rules) Err() error {
	if len(r.msgs) == 0 {
		return nil
	}
	return dErrors.NewValidation(r.msgs...)
}
