package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"

	"collection-export/internal/shared/logger"
)

const (
	unknownFile = "<unknown_file>"
	unknownLine = "<unknown_line>"

	// Log scrapers match on this prefix; keep it byte-for-byte.
	diagnosticFormat = "Error occurred in python script: [%s] at line number [%s]: %s"
)

// SourceLocation is the frame an error was raised or caught in.
type SourceLocation struct {
	File     string
	Line     int
	Function string
}

// String renders the location as file:line.
func (l *SourceLocation) String() string {
	if l == nil {
		return unknownFile + ":" + unknownLine
	}
	return l.File + ":" + strconv.Itoa(l.Line)
}

// Caller captures the location skip frames above the caller of Caller.
// Returns nil when the runtime cannot resolve the frame.
func Caller(skip int) *SourceLocation {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return nil
	}
	loc := &SourceLocation{File: file, Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		loc.Function = fn.Name()
	}
	return loc
}

// Describe formats err with its origin and logs the result at error level
// on the process-wide logger. A nil loc yields placeholder file and line.
func Describe(err error, loc *SourceLocation) string {
	return DescribeWith(logger.Default(), err, loc)
}

// DescribeWith is Describe with an explicit sink. A nil sink skips logging.
func DescribeWith(log logger.Logger, err error, loc *SourceLocation) string {
	file, line := unknownFile, unknownLine
	if loc != nil {
		file = loc.File
		line = strconv.Itoa(loc.Line)
	}

	text := "<nil>"
	if err != nil {
		text = err.Error()
	}

	msg := fmt.Sprintf(diagnosticFormat, file, line, text)
	if log != nil {
		log.Error(msg)
	}
	return msg
}

// WrappedError carries the original error together with the diagnostic
// computed when it was wrapped.
type WrappedError struct {
	cause    error
	location *SourceLocation
	message  string
}

// NewWrappedError describes err at loc, logs it once and returns the carrier.
func NewWrappedError(err error, loc *SourceLocation) *WrappedError {
	return &WrappedError{
		cause:    err,
		location: loc,
		message:  Describe(err, loc),
	}
}

// Error returns the stored diagnostic.
func (e *WrappedError) Error() string {
	return e.message
}

// Unwrap returns the original error.
func (e *WrappedError) Unwrap() error {
	return e.cause
}

// Location returns where the error was raised, or nil if unknown.
func (e *WrappedError) Location() *SourceLocation {
	return e.location
}

// Wrap converts err into a *WrappedError. If err is one, or its chain
// already holds one, that *WrappedError is returned so the failure is logged
// only once. Any text added by outer layers (fmt.Errorf("ctx: %w", wrapped))
// is not part of the result; wrap the error before annotating it. The location
// is the raise site recorded by Trace when present, else the caller of Wrap.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	var wrapped *WrappedError
	if errors.As(err, &wrapped) {
		return wrapped
	}
	if loc := tracedLocation(err); loc != nil {
		return NewWrappedError(err, loc)
	}
	return NewWrappedError(err, Caller(1))
}

// tracedError records the site an error was raised at without logging it.
type tracedError struct {
	err      error
	location *SourceLocation
}

func (t *tracedError) Error() string             { return t.err.Error() }
func (t *tracedError) Unwrap() error             { return t.err }
func (t *tracedError) Location() *SourceLocation { return t.location }

// Trace annotates err with the caller's location. Nil stays nil, and an
// already traced error keeps its innermost location.
func Trace(err error) error {
	if err == nil {
		return nil
	}
	if tracedLocation(err) != nil {
		return err
	}
	return &tracedError{err: err, location: Caller(1)}
}

// Tracef is fmt.Errorf followed by Trace at the caller.
func Tracef(format string, args ...interface{}) error {
	return &tracedError{err: fmt.Errorf(format, args...), location: Caller(1)}
}

func tracedLocation(err error) *SourceLocation {
	var t *tracedError
	if errors.As(err, &t) {
		return t.location
	}
	return nil
}
