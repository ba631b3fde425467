// Package errs defines the failure kinds returned by every computation in
// this module.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure. A Kind is itself an error so callers can test
// for it with errors.Is.
type Kind uint8

const (
	Unknown Kind = iota
	InvalidArgument
	InvalidCashFlowShape
	DivisionByZero
	Diverged
	MaxIterationsExceeded
	InvalidDayCountMethod
	InvalidDateOrdering
)

var kindNames = map[Kind]string{
	Unknown:               "unknown",
	InvalidArgument:       "invalid argument",
	InvalidCashFlowShape:  "invalid cash flow shape",
	DivisionByZero:        "division by zero",
	Diverged:              "diverged",
	MaxIterationsExceeded: "max iterations exceeded",
	InvalidDayCountMethod: "invalid day count method",
	InvalidDateOrdering:   "invalid date ordering",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

func (k Kind) Error() string { return k.String() }

// Error is a failure of operation Op.
type Error struct {
	Op   string
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Op + ": " + e.Kind.String()
	}
	return e.Op + ": " + e.Msg
}

// Is matches a bare Kind target.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// E builds an *Error with a formatted message.
func E(op string, kind Kind, format string, args ...any) error {
	return &Error{Op: op, Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind carried by err, or Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	return Unknown
}
