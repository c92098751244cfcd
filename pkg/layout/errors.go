package layout

import "fmt"

// ErrorKind classifies a layout engine failure so callers can map it to a
// transport status or exit code without parsing the message text.
type ErrorKind string

const (
	// InvalidInputShape means the raw input was not a JSON array of objects.
	InvalidInputShape ErrorKind = "InvalidInputShape"
	// NoValidEntries means every candidate entry was rejected during
	// normalization.
	NoValidEntries ErrorKind = "NoValidEntries"
	// NotEnoughEntries means the generator was asked for more entries than
	// it was given and fewer than MinWords are available at all.
	NotEnoughEntries ErrorKind = "NotEnoughEntries"
	// CountBelowMinimum means the requested count is below MinWords.
	CountBelowMinimum ErrorKind = "CountBelowMinimum"
	// CountExceedsAvailable means the requested count is greater than the
	// number of normalized entries available, and at least MinWords are
	// available.
	CountExceedsAvailable ErrorKind = "CountExceedsAvailable"
	// Unplaceable means every backtracking attempt failed to place all
	// entries.
	Unplaceable ErrorKind = "Unplaceable"
)

// Error is the engine's single error type. Kind is stable and meant for
// programmatic branching; Message is meant for display to the end user
// verbatim.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the ErrorKind carried by err, and true, if err (or
// something it wraps) is a *layout.Error. Otherwise it returns ("", false).
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if ok := asLayoutError(err, &e); ok {
		return e.Kind, true
	}
	return "", false
}

func asLayoutError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}
