package qm

import "fmt"

// ErrorKind discriminates the fatal failure modes Minimize can return. It
// is exhaustive: every Error returned by this package carries one of
// these.
type ErrorKind int

const (
	// InvalidNVars means NVars was outside [2,15].
	InvalidNVars ErrorKind = iota
	// InvalidMinterm means some minterm or don't-care value was outside [0, 2^NVars).
	InvalidMinterm
	// Overlap means a value appeared in both Ones and DontCares.
	Overlap
	// UncoverableMinterm means PI-chart construction found a required
	// column with no covering prime implicant: the caller's Ones/DontCares
	// are structurally inconsistent (this cannot happen for well-formed
	// inputs; it indicates corrupted data, since every minterm is covered
	// at minimum by its own 1-cube unless that cube was itself dropped as
	// don't-care-only, which PI generation never does for required ones).
	UncoverableMinterm
	// Internal marks an assertion-class bug in the solver itself.
	Internal
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidNVars:
		return "INVALID_NVARS"
	case InvalidMinterm:
		return "INVALID_MINTERM"
	case Overlap:
		return "OVERLAP"
	case UncoverableMinterm:
		return "UNCOVERABLE_MINTERM"
	case Internal:
		return "INTERNAL"
	default:
		return "UNKNOWN"
	}
}

// Error is the error type returned by Minimize for every fatal condition
// listed in ErrorKind. Cancellation is reported separately: Minimize
// returns ctx.Err() (context.Canceled or context.DeadlineExceeded) as is,
// not an *Error, since it isn't one of the caller-correctable kinds.
type Error struct {
	Kind    ErrorKind
	Context string
}

func (e *Error) Error() string {
	if e.Context == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Context)
}

// Is reports whether target is an *Error with the same Kind, so callers
// can write errors.Is(err, &qm.Error{Kind: qm.Overlap}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Context: fmt.Sprintf(format, args...)}
}
