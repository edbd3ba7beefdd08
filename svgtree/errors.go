package svgtree

import "fmt"

// ErrorMode determines how the parser reacts to the anomalies
// of a document (unsupported elements or attribute values, stray text,
// duplicated identifiers).
type ErrorMode uint8

const (
	// IgnoreErrorMode silently skips anomalies.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode logs anomalies, and goes on.
	WarnErrorMode
	// StrictErrorMode aborts the parsing on the first anomaly.
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	default:
		return "<unknown ErrorMode>"
	}
}

// MalformedMarkupError is returned when the XML stream
// is invalid, or contains no element. No document is built in this case.
type MalformedMarkupError struct {
	Line int // 0 if unknown
	Err  error
}

func (e *MalformedMarkupError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed svg markup (line %d): %s", e.Line, e.Err)
	}
	return fmt.Sprintf("malformed svg markup: %s", e.Err)
}

func (e *MalformedMarkupError) Unwrap() error { return e.Err }

// DuplicateIDError is reported when two elements share the
// same explicit identifier.
type DuplicateIDError struct {
	ID string
}

func (e DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate element id %q", e.ID)
}

// Diagnostic is a non fatal anomaly found while parsing.
type Diagnostic struct {
	Line    int
	Element string
	Attr    string // may be empty
	Value   string // may be empty
	Err     error
}

func (d Diagnostic) Error() string {
	s := fmt.Sprintf("line %d: <%s>", d.Line, d.Element)
	if d.Attr != "" {
		s += fmt.Sprintf(" %s=%q", d.Attr, d.Value)
	}
	return s + ": " + d.Err.Error()
}

func (d Diagnostic) Unwrap() error { return d.Err }

// DiagnosticError is returned in StrictErrorMode, wrapping
// the first anomaly found.
type DiagnosticError struct {
	Diagnostic
}

func (e *DiagnosticError) Error() string {
	return "invalid svg document: " + e.Diagnostic.Error()
}
