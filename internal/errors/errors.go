package errors

import (
	stdErrors "errors"
	"fmt"
)

// harnessMarker is implemented by all harness-layer error types so we can classify them.
type harnessMarker interface {
	error
	isHarness()
}

// FormatError indicates an unknown or unsupported sample format / channel layout.
type FormatError struct {
	Op  string // high-level operation (e.g. "format.channels", "format.parse")
	Err error  // underlying cause (may be nil)
}

func (e *FormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("format error: %s", e.Op)
	}
	return fmt.Sprintf("format error: %s: %v", e.Op, e.Err)
}
func (e *FormatError) Unwrap() error { return e.Err }
func (e *FormatError) isHarness()    {}

// LayoutError indicates incompatible rx/tx channel layouts for a scenario.
type LayoutError struct {
	Op  string
	Err error
}

func (e *LayoutError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("layout error: %s", e.Op)
	}
	return fmt.Sprintf("layout error: %s: %v", e.Op, e.Err)
}
func (e *LayoutError) Unwrap() error { return e.Err }
func (e *LayoutError) isHarness()    {}

// SizeError indicates a violated buffer sizing invariant (e.g. payload smaller
// than the metadata header it must carry).
type SizeError struct {
	Op  string
	Err error
}

func (e *SizeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("size error: %s", e.Op)
	}
	return fmt.Sprintf("size error: %s: %v", e.Op, e.Err)
}
func (e *SizeError) Unwrap() error { return e.Err }
func (e *SizeError) isHarness()    {}

// PatternError indicates a contract violation in pattern generation or
// verification (nil buffer, invalid length, invalid sample size or stride).
type PatternError struct {
	Op  string
	Err error
}

func (e *PatternError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("pattern error: %s", e.Op)
	}
	return fmt.Sprintf("pattern error: %s: %v", e.Op, e.Err)
}
func (e *PatternError) Unwrap() error { return e.Err }
func (e *PatternError) isHarness()    {}

// TransformError indicates a failure reported by the interleave/deinterleave
// codec. Code carries the codec's status code; buffer contents are undefined
// after a failed transform.
type TransformError struct {
	Op   string
	Code int
	Err  error
}

func (e *TransformError) Error() string {
	base := fmt.Sprintf("transform error: %s (code %d)", e.Op, e.Code)
	if e.Err != nil {
		return base + ": " + e.Err.Error()
	}
	return base
}
func (e *TransformError) Unwrap() error { return e.Err }
func (e *TransformError) isHarness()    {}

// VerifyError indicates that a content check found mismatching words.
// Mismatches is the full count reported by the verifier, never just the first.
type VerifyError struct {
	Op         string
	Mismatches int
	Err        error
}

func (e *VerifyError) Error() string {
	base := fmt.Sprintf("verify error: %s (%d mismatched words)", e.Op, e.Mismatches)
	if e.Err != nil {
		return base + ": " + e.Err.Error()
	}
	return base
}
func (e *VerifyError) Unwrap() error { return e.Err }
func (e *VerifyError) isHarness()    {}

// IsHarnessError returns true if the error chain contains any harness-layer
// error (FormatError, LayoutError, SizeError, PatternError, TransformError,
// VerifyError).
func IsHarnessError(err error) bool {
	if err == nil {
		return false
	}
	var hm harnessMarker
	return stdErrors.As(err, &hm)
}

// IsVerifyError returns true if the error chain contains a VerifyError, i.e.
// the failure was a content mismatch rather than a precondition or codec fault.
func IsVerifyError(err error) bool {
	if err == nil {
		return false
	}
	var ve *VerifyError
	return stdErrors.As(err, &ve)
}

// Constructors (encourage contextual wrapping with %w when used by callers).
func NewFormatError(op string, cause error) error  { return &FormatError{Op: op, Err: cause} }
func NewLayoutError(op string, cause error) error  { return &LayoutError{Op: op, Err: cause} }
func NewSizeError(op string, cause error) error    { return &SizeError{Op: op, Err: cause} }
func NewPatternError(op string, cause error) error { return &PatternError{Op: op, Err: cause} }
func NewTransformError(op string, code int, cause error) error {
	return &TransformError{Op: op, Code: code, Err: cause}
}
func NewVerifyError(op string, mismatches int, cause error) error {
	return &VerifyError{Op: op, Mismatches: mismatches, Err: cause}
}

// Usage pattern example:
//  if n := len(res.Mismatches); n > 0 {
//      return NewVerifyError("check interleaved ch0", n, nil)
//  }
// Keep layering context with fmt.Errorf("...: %w", err).
