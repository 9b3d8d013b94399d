// errors.go - process-wide error classification and reaction policy

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/vectrexcore
License: GPLv3 or later
*/

package core

import (
	"fmt"
	"os"

	"github.com/intuitionamiga/vectrexcore/internal/corelog"
)

// ErrorKind classifies why a core operation could not complete as the
// emulated hardware would. Core code never panics on these; every site
// continues with a conservative value and reports through an ErrorHandler.
type ErrorKind int

const (
	// Unmapped is a bus access outside any connected device's range.
	Unmapped ErrorKind = iota
	// Undefined is a legal bus access with no meaningful semantics, e.g. a
	// write to a ROM region or the illegal combined VIA+RAM window.
	Undefined
	// Illegal is an illegal opcode or EXG/TFR postbyte.
	Illegal
	// Unsupported is a valid but unimplemented mode, e.g. a FreeRunning timer.
	Unsupported
)

func (k ErrorKind) String() string {
	switch k {
	case Unmapped:
		return "Unmapped"
	case Undefined:
		return "Undefined"
	case Illegal:
		return "Illegal"
	case Unsupported:
		return "Unsupported"
	default:
		return "Unknown"
	}
}

// Policy selects how the emulator reacts to a classified error.
type Policy int

const (
	PolicyIgnore Policy = iota
	PolicyLog
	PolicyLogOnce
	PolicyFail
)

// EmuError is the value passed to a Fail policy's panic, and to any caller
// that wants to inspect what went wrong.
type EmuError struct {
	Kind    ErrorKind
	Message string
}

func (e *EmuError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// ErrorHandler is the single process-wide error policy, carried as a
// configuration value threaded into the Emulator at construction rather
// than a mutable global. Its lifecycle is set once at construction and
// never mutated thereafter, besides the LogOnce dedupe set its logger owns.
type ErrorHandler struct {
	policy Policy
	log    *corelog.Logger
}

// NewErrorHandler builds a handler for the given policy, writing Log and
// LogOnce output to os.Stderr.
func NewErrorHandler(policy Policy) *ErrorHandler {
	return &ErrorHandler{
		policy: policy,
		log:    corelog.New(os.Stderr),
	}
}

func (h *ErrorHandler) Policy() Policy { return h.policy }

func (h *ErrorHandler) handle(kind ErrorKind, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	switch h.policy {
	case PolicyIgnore:
		return
	case PolicyLog:
		h.log.Printf("[%s] %s", kind, message)
	case PolicyLogOnce:
		h.log.PrintOnce("[%s] %s", kind, message)
	case PolicyFail:
		panic(&EmuError{Kind: kind, Message: message})
	}
}

func (h *ErrorHandler) Unmapped(format string, args ...interface{}) {
	h.handle(Unmapped, format, args...)
}

func (h *ErrorHandler) Undefined(format string, args ...interface{}) {
	h.handle(Undefined, format, args...)
}

func (h *ErrorHandler) Illegal(format string, args ...interface{}) {
	h.handle(Illegal, format, args...)
}

func (h *ErrorHandler) Unsupported(format string, args ...interface{}) {
	h.handle(Unsupported, format, args...)
}
