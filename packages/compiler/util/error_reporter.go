package util

import "fmt"

// ReportMode controls how an ErrorReporter responds to a reported problem.
type ReportMode int

const (
	// ReportModeCollect accumulates diagnostics and lets the caller keep going.
	ReportModeCollect ReportMode = iota
	// ReportModeExplode panics on the first error. Useful in tests and for
	// asserting that a code path cannot produce diagnostics.
	ReportModeExplode
)

// Checkpoint marks a position in an ErrorReporter's diagnostic stream.
type Checkpoint struct {
	index int
}

// ErrorReporter collects diagnostics produced while parsing and structuring
// template bodies. It is passed explicitly into every entry point that can
// report; there is no ambient global reporter.
type ErrorReporter struct {
	mode   ReportMode
	errors []*ParseError
}

// NewErrorReporter creates a collecting ErrorReporter.
func NewErrorReporter() *ErrorReporter {
	return &ErrorReporter{mode: ReportModeCollect}
}

// NewExplodingErrorReporter creates an ErrorReporter that panics on the first
// reported error. Warnings are still collected.
func NewExplodingErrorReporter() *ErrorReporter {
	return &ErrorReporter{mode: ReportModeExplode}
}

// Report records an error diagnostic at span.
func (r *ErrorReporter) Report(span *ParseSourceSpan, format string, args ...interface{}) {
	err := NewParseError(span, fmt.Sprintf(format, args...))
	r.errors = append(r.errors, err)
	if r.mode == ReportModeExplode {
		panic(err)
	}
}

// Warn records a warning diagnostic at span.
func (r *ErrorReporter) Warn(span *ParseSourceSpan, format string, args ...interface{}) {
	r.errors = append(r.errors, NewParseWarning(span, fmt.Sprintf(format, args...)))
}

// Checkpoint returns a marker for the current position in the diagnostic
// stream, for later use with ErrorsSince.
func (r *ErrorReporter) Checkpoint() Checkpoint {
	return Checkpoint{index: len(r.errors)}
}

// ErrorsSince reports whether any error-level diagnostics were recorded after
// the checkpoint was taken.
func (r *ErrorReporter) ErrorsSince(c Checkpoint) bool {
	for _, err := range r.errors[c.index:] {
		if err.Level == ParseErrorLevelError {
			return true
		}
	}
	return false
}

// HasErrors reports whether any error-level diagnostics were recorded.
func (r *ErrorReporter) HasErrors() bool {
	return r.ErrorsSince(Checkpoint{})
}

// Errors returns all recorded diagnostics, warnings included, in report order.
func (r *ErrorReporter) Errors() []*ParseError {
	return r.errors
}
