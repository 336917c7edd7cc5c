package amqp

import "fmt"

// Kind classifies the error taxonomy described for the codec: every
// failure is exactly one of these, never a blend.
type Kind int

const (
	// Underflow means the input ran out mid-atom during decode.
	Underflow Kind = iota
	// Overflow means the output destination ran out of space.
	Overflow
	// ArgErr means the input was structurally malformed: an unknown
	// typecode, a missing array element type, a TYPE atom outside an
	// array context.
	ArgErr
	// Err is a semantic violation not covered by the other three, e.g.
	// scan failing to exit a container, or an unrecognized format code.
	Err
)

func (k Kind) String() string {
	switch k {
	case Underflow:
		return "underflow"
	case Overflow:
		return "overflow"
	case ArgErr:
		return "arg_err"
	case Err:
		return "err"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every Tree operation that can
// fail (Put*, Exit, Decode, Encode, Fill, Scan, Append). It carries the most recent
// failure's kind, the operation that produced it, and a printf-style
// message, mirroring the teacher's errNoEncoder/errByteCount/errRange
// constructor style (encoding/atom/codec.go) but closed over a Kind so
// callers can branch on failure class with errors.As instead of
// string-matching.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Msg)
}

func errf(op string, kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func errUnderflow(op string) *Error {
	return errf(op, Underflow, "input ran out mid-atom")
}

func errOverflow(op string, needed int) *Error {
	return errf(op, Overflow, "destination needs %d more bytes", needed)
}

func errUnknownTypecode(op string, code byte) *Error {
	return errf(op, ArgErr, "unknown typecode 0x%02x", code)
}

func errBadStructure(op, format string, args ...interface{}) *Error {
	return errf(op, ArgErr, format, args...)
}

func errSemantic(op, format string, args ...interface{}) *Error {
	return errf(op, Err, format, args...)
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, k Kind) bool {
	ae, ok := err.(*Error)
	return ok && ae.Kind == k
}
