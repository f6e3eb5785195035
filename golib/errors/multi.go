package errors

import (
	"strings"
)

// list is a non-empty sequence of errors reported as one.
type list []error

func (l list) Error() string {
	msgs := make([]string, 0, len(l))
	for _, err := range l {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "\n")
}

// Unwrap exposes the first error so Is/As and KindOf see the primary failure.
func (l list) Unwrap() error {
	return l[0]
}

// Combine combines errors e & f into a single error
func Combine(e, f error) error {
	switch {
	case e == nil:
		return f
	case f == nil:
		return e
	}
	var out list
	for _, err := range []error{e, f} {
		if l, ok := err.(list); ok {
			out = append(out, l...)
			continue
		}
		out = append(out, err)
	}
	return out
}

// Defer is a helper method for deferring error-returning functions
func Defer(err *error, f func() error) {
	*err = Combine(*err, f())
}
