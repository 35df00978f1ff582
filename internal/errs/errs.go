// Package errs collects small error-merging helpers used by the client
// package.
package errs

import (
	"errors"
	"strings"
)

// List wraps multiple errors raised by independent components (e.g. several
// listeners failing configure) into a single error.
type List []error

func (e List) Error() string {
	s := make([]string, len(e))
	for i, se := range e {
		s[i] = se.Error()
	}
	return strings.Join(s, "; ")
}

// Ret returns nil if the list is empty, otherwise itself as an error.
func (e List) Ret() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Is reports whether target matches any error in the list, so callers can
// still branch on a specific sentinel with errors.Is after merging.
func (e List) Is(target error) bool {
	for _, se := range e {
		if errors.Is(se, target) {
			return true
		}
	}
	return false
}
