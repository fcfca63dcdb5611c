// Package errors is a drop-in replacement for the standard library errors package that annotates errors with
// structured log attributes and the source location where they were created or wrapped.
package errors

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
)

type annotatedError struct {
	msg   string
	err   error
	attrs []slog.Attr
	// source is the file:line where the error was created or wrapped.
	source string
}

func (e *annotatedError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.err
}

// callerSource returns file:line of the caller skip frames above the caller of callerSource.
func callerSource(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return ""
	}
	return file + ":" + strconv.Itoa(line)
}

// NewSentinel creates an error meant to be declared as a package level variable and compared with [Is].
//
// Sentinels do not capture a source location because they are created during package initialisation.
func NewSentinel(msg string) error {
	return stderrors.New(msg) //nolint:err113 // this is the constructor for sentinels.
}

// New creates an error that remembers where it was created and carries optional log attributes.
func New(msg string, attrs ...slog.Attr) error {
	return &annotatedError{msg: msg, err: nil, attrs: attrs, source: callerSource(1)}
}

// Wrap wraps err with msg and annotates it with attrs. The returned error reads "msg: err".
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &annotatedError{msg: msg, err: err, attrs: attrs, source: callerSource(1)}
}

// DecoratePanic converts the value returned by recover into an error pointing at the panic site.
//
// It must be called from the deferred function that recovered.
func DecoratePanic(excp any) error {
	if excp == nil {
		return nil
	}
	var source string
	pcs := make([]uintptr, 32) //nolint:mnd // deep enough for the deferred call chain.
	n := runtime.Callers(1, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	afterPanic := false
	for {
		frame, more := frames.Next()
		if afterPanic {
			source = frame.File + ":" + strconv.Itoa(frame.Line)
			break
		}
		if frame.Function == "runtime.gopanic" {
			afterPanic = true
		}
		if !more {
			break
		}
	}
	var cause error
	if err, ok := excp.(error); ok {
		cause = err
	} else {
		cause = NewSentinel(fmt.Sprint(excp))
	}
	return &annotatedError{msg: "panic", err: cause, attrs: nil, source: source}
}

// SlogError converts err into a structured log attribute.
//
// The attribute is a group named "error" with the message, the source location of the innermost annotated error and
// every annotation collected from the error tree under "annotations".
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	var (
		annotations []any
		source      string
	)
	walk(err, func(ae *annotatedError) {
		for _, attr := range ae.attrs {
			annotations = append(annotations, attr)
		}
		if ae.source != "" {
			source = ae.source
		}
	})
	attrs := []any{slog.String("message", err.Error())}
	if source != "" {
		attrs = append(attrs, slog.String("source", source))
	}
	if len(annotations) > 0 {
		attrs = append(attrs, slog.Group("annotations", annotations...))
	}
	return slog.Group("error", attrs...)
}

// walk visits every annotated error in the tree rooted at err from the outermost to the innermost.
func walk(err error, visit func(*annotatedError)) {
	if err == nil {
		return
	}
	if ae, ok := err.(*annotatedError); ok { //nolint:errorlint // we walk the chain ourselves.
		visit(ae)
	}
	switch x := err.(type) { //nolint:errorlint // we walk the chain ourselves.
	case interface{ Unwrap() []error }:
		for _, e := range x.Unwrap() {
			walk(e, visit)
		}
	case interface{ Unwrap() error }:
		walk(x.Unwrap(), visit)
	}
}

// Is reports whether any error in err's tree matches target. See [stderrors.Is].
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target. See [stderrors.As].
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err. See [stderrors.Unwrap].
func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}

// Join returns an error that wraps the given errors. See [stderrors.Join].
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}
