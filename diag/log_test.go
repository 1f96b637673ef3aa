// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diag_test

import (
	"strings"
	"testing"

	"github.com/mikesamuel/comehere/diag"
)

type recordingSink struct {
	infos, warns, errors []string
}

func (s *recordingSink) Info(msg string)  { s.infos = append(s.infos, msg) }
func (s *recordingSink) Warn(msg string)  { s.warns = append(s.warns, msg) }
func (s *recordingSink) Error(msg string) { s.errors = append(s.errors, msg) }

func TestEntryString(t *testing.T) {
	cases := []struct {
		entry diag.Entry
		want  string
	}{
		{diag.Entry{Severity: diag.Info, Message: "hello"}, "hello"},
		{diag.Entry{Severity: diag.Warning, Message: "careful"}, "Warning: careful"},
		{diag.Entry{Severity: diag.Error, Message: "broken"}, "Error: broken"},
	}
	for _, c := range cases {
		if got := c.entry.String(); got != c.want {
			t.Errorf("Entry{%v, %q}.String() = %q, want %q", c.entry.Severity, c.entry.Message, got, c.want)
		}
	}
}

func TestLogForwardsToSink(t *testing.T) {
	sink := &recordingSink{}
	log := diag.NewLog(sink)

	log.Infof("info %d", 1)
	log.Warnf("warn %d", 2)
	log.Errorf("error %d", 3)

	if len(sink.infos) != 1 || sink.infos[0] != "info 1" {
		t.Errorf("infos = %v", sink.infos)
	}
	if len(sink.warns) != 1 || sink.warns[0] != "warn 2" {
		t.Errorf("warns = %v", sink.warns)
	}
	if len(sink.errors) != 1 || sink.errors[0] != "error 3" {
		t.Errorf("errors = %v", sink.errors)
	}
}

func TestLogWithNilSinkDoesNotPanic(t *testing.T) {
	log := diag.NewLog(nil)
	log.Infof("fine")
	log.Warnf("also fine")
	if len(log.Entries) != 2 {
		t.Fatalf("Entries = %v, want 2 entries", log.Entries)
	}
}

func TestContainsErrors(t *testing.T) {
	log := diag.NewLog(nil)
	if log.ContainsErrors() {
		t.Fatal("empty log reports errors")
	}
	log.Warnf("just a warning")
	if log.ContainsErrors() {
		t.Fatal("a log with only a warning reports errors")
	}
	log.Errorf("now it's an error")
	if !log.ContainsErrors() {
		t.Fatal("a log with an error entry does not report it")
	}
}

func TestGoalCorrelatedEntries(t *testing.T) {
	log := diag.NewLog(nil)
	log.WarnfFor(3, "unconsumed initializer")
	if len(log.Entries) != 1 || log.Entries[0].GoalID != 3 {
		t.Fatalf("Entries = %v, want one entry with GoalID 3", log.Entries)
	}
}

func TestLogStringJoinsEntries(t *testing.T) {
	log := diag.NewLog(nil)
	log.Infof("first")
	log.Errorf("second")
	got := log.String()
	if !strings.Contains(got, "first\n") || !strings.Contains(got, "Error: second\n") {
		t.Fatalf("String() = %q", got)
	}
}

func TestInternalErrorMessage(t *testing.T) {
	err := &diag.InternalError{Message: "goal id reused"}
	if got := err.Error(); got != "INTERNAL ERROR: goal id reused" {
		t.Fatalf("Error() = %q", got)
	}
}
