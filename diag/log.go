// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diag implements the transformer's diagnostic sink: an ordered
// log of informational messages, warnings, and errors, that a host
// program can stream to its own info/warn/error-shaped object.
package diag

import (
	"bytes"
	"fmt"
)

// Severity classifies a log Entry.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return "Info"
	}
}

// Entry is a single diagnostic: a malformed initializer, an unconsumed
// initializer, a missing argument, or an unsupported enclosing context,
// distinguished by Severity and Message.
type Entry struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	GoalID   int      `json:"goalId,omitempty"`
}

func (e *Entry) String() string {
	var buf bytes.Buffer
	switch e.Severity {
	case Warning:
		buf.WriteString("Warning: ")
	case Error:
		buf.WriteString("Error: ")
	}
	buf.WriteString(e.Message)
	return buf.String()
}

// Sink lets a host program receive diagnostics as they are emitted by
// supplying an object with Info, Warn and Error methods.
type Sink interface {
	Info(string)
	Warn(string)
	Error(string)
}

// Log accumulates diagnostics produced by a single transform run.
type Log struct {
	Entries []*Entry
	sink    Sink
}

// NewLog returns an empty Log that also forwards entries to sink, if
// sink is non-nil.
func NewLog(sink Sink) *Log {
	return &Log{sink: sink}
}

func (l *Log) add(sev Severity, goalID int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.Entries = append(l.Entries, &Entry{Severity: sev, Message: msg, GoalID: goalID})
	if l.sink == nil {
		return
	}
	switch sev {
	case Warning:
		l.sink.Warn(msg)
	case Error:
		l.sink.Error(msg)
	default:
		l.sink.Info(msg)
	}
}

func (l *Log) Infof(format string, args ...interface{})  { l.add(Info, 0, format, args...) }
func (l *Log) Warnf(format string, args ...interface{})  { l.add(Warning, 0, format, args...) }
func (l *Log) Errorf(format string, args ...interface{}) { l.add(Error, 0, format, args...) }

// InfofFor, WarnfFor and ErrorfFor associate the entry with the goal id
// that produced it, so a caller can correlate a diagnostic with the
// returned block description array.
func (l *Log) InfofFor(goalID int, format string, args ...interface{}) {
	l.add(Info, goalID, format, args...)
}
func (l *Log) WarnfFor(goalID int, format string, args ...interface{}) {
	l.add(Warning, goalID, format, args...)
}
func (l *Log) ErrorfFor(goalID int, format string, args ...interface{}) {
	l.add(Error, goalID, format, args...)
}

// ContainsErrors returns true iff at least one Entry has Error severity.
func (l *Log) ContainsErrors() bool {
	for _, e := range l.Entries {
		if e.Severity == Error {
			return true
		}
	}
	return false
}

func (l *Log) String() string {
	var buf bytes.Buffer
	for _, e := range l.Entries {
		buf.WriteString(e.String())
		buf.WriteByte('\n')
	}
	return buf.String()
}

// InternalError is the sentinel fatal marker for an invariant violation,
// as opposed to a user-correctable diagnostic. The transformer panics
// with this type; Transform recovers it and turns it into a returned
// error, the one case where the transform fails outright rather than
// succeeding with diagnostics attached.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string { return "INTERNAL ERROR: " + e.Message }
