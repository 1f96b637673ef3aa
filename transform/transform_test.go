// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform_test

import (
	"strings"
	"testing"

	"github.com/mikesamuel/comehere/transform"
)

type collectingSink struct {
	infos, warns, errors []string
}

func (s *collectingSink) Info(msg string)  { s.infos = append(s.infos, msg) }
func (s *collectingSink) Warn(msg string)  { s.warns = append(s.warns, msg) }
func (s *collectingSink) Error(msg string) { s.errors = append(s.errors, msg) }

func mustTransform(t *testing.T, src string) *transform.Result {
	t.Helper()
	result, err := transform.Transform(src, transform.Options{})
	if err != nil {
		t.Fatalf("Transform(%q) failed: %v", src, err)
	}
	return result
}

func TestPipelineOrderIsFixed(t *testing.T) {
	names := make([]string, 0)
	for _, p := range transform.Pipeline() {
		names = append(names, p.Name())
	}
	want := []string{
		"block-normalizer",
		"return-capture",
		"extractor",
		"control-driver",
		"capture-variable-pass",
		"preamble-emitter",
	}
	if len(names) != len(want) {
		t.Fatalf("Pipeline() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Pipeline()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestProgramWithNoGoalsIsUnchangedInBehavior(t *testing.T) {
	result := mustTransform(t, "let x = 1; x = x + 1;")
	if strings.Contains(result.Code, "COMEHERE") {
		t.Fatalf("output still mentions the goal-block surface syntax:\n%s", result.Code)
	}
	if strings.Contains(result.Code, "seek") {
		t.Fatalf("a program with no goals should not need a seek variable:\n%s", result.Code)
	}
}

func TestModuleScopeGoalIsReachableOnSeek(t *testing.T) {
	result := mustTransform(t, `
let x = 1;
COMEHERE: with (_) {
  x = 2;
}
`)
	if strings.Contains(result.Code, "COMEHERE") {
		t.Fatalf("surface syntax survived transformation:\n%s", result.Code)
	}
	if !strings.Contains(result.Code, "seek") {
		t.Fatalf("module-scope goal did not synthesize a seek variable:\n%s", result.Code)
	}
	if !strings.Contains(result.Code, "== 1") {
		t.Fatalf("goal 1's guard is missing its id comparison:\n%s", result.Code)
	}
}

func TestGoalDescriptionIsReturnedByID(t *testing.T) {
	result := mustTransform(t, `
COMEHERE: with ("first goal") {
  doSomething();
}
`)
	if len(result.Descriptions) < 2 || result.Descriptions[1] == nil || *result.Descriptions[1] != "first goal" {
		t.Fatalf("Descriptions = %v, want [nil, \"first goal\"]", describeAll(result.Descriptions))
	}
}

func describeAll(descs []*string) []string {
	out := make([]string, len(descs))
	for i, d := range descs {
		if d == nil {
			out[i] = "<nil>"
		} else {
			out[i] = *d
		}
	}
	return out
}

func TestGoalInsideFunctionGetsActiveFrameGuard(t *testing.T) {
	result := mustTransform(t, `
function outer() {
  let y = 1;
  COMEHERE: with (_) {
    y = 2;
  }
}
`)
	if !strings.Contains(result.Code, "activeMask") {
		t.Fatalf("a goal nested in a function should synthesize the active-frame mask:\n%s", result.Code)
	}
	if !strings.Contains(result.Code, "outer();") {
		t.Fatalf("control driver did not synthesize a guarded call to outer:\n%s", result.Code)
	}
}

func TestDottedInitializerAssignsBeforeTheGoalRuns(t *testing.T) {
	result := mustTransform(t, `
class Counter {
  static bump(n) {
    COMEHERE: with (Counter.bump.n = 41) {
      n = n + 1;
    }
  }
}
`)
	if !strings.Contains(result.Code, "41") {
		t.Fatalf("dotted-path initializer value missing from output:\n%s", result.Code)
	}
}

func TestTwoSigilCaptureIsBoxed(t *testing.T) {
	result := mustTransform(t, `
function f() {
  $$result = compute();
  return $$result;
}
`)
	if strings.Contains(result.Code, "$$result") {
		t.Fatalf("capture variable identifier survived rewriting:\n%s", result.Code)
	}
	if !strings.Contains(result.Code, "[undefined, undefined]") {
		t.Fatalf("capture variable box declaration missing:\n%s", result.Code)
	}
}

func TestCaptureDeclaredAtCommonAncestorScope(t *testing.T) {
	result := mustTransform(t, `
function a() { $$shared = 1; }
function b() { return $$shared; }
`)
	// Both functions reference the capture; its box must be declared once,
	// at module scope, not duplicated inside each function.
	count := strings.Count(result.Code, "undefined, undefined")
	if count != 1 {
		t.Fatalf("capture box declared %d times, want exactly once:\n%s", count, result.Code)
	}
}

func TestMalformedGoalConfigurationIsDiagnosedNotFatal(t *testing.T) {
	sink := &collectingSink{}
	result, err := transform.Transform(`
COMEHERE: with (1 + 1) {
  doSomething();
}
`, transform.Options{Sink: sink})
	if err != nil {
		t.Fatalf("a malformed goal configuration should not fail the whole transform: %v", err)
	}
	if !result.Log.ContainsErrors() {
		t.Fatal("malformed goal configuration should produce a log error")
	}
	if len(sink.errors) == 0 {
		t.Fatal("malformed goal configuration should stream an error to the sink")
	}
}

func TestSyntaxErrorFailsTheWholeTransform(t *testing.T) {
	_, err := transform.Transform("let x = ;", transform.Options{})
	if err == nil {
		t.Fatal("expected a parse error for invalid source")
	}
}

func TestLoopGoalForcesAtLeastOneIteration(t *testing.T) {
	result := mustTransform(t, `
function scan(items) {
  for (const item of items) {
    COMEHERE: with (_) {
      inspect(item);
    }
  }
}
`)
	if !strings.Contains(result.Code, "scan(") {
		t.Fatalf("control driver did not synthesize a call reaching the for-of loop's enclosing function:\n%s", result.Code)
	}
	if !strings.Contains(result.Code, "maybeNotEmptyIterator") {
		t.Fatalf("for-of loop source was not wrapped in the iterator helper that forces one iteration:\n%s", result.Code)
	}
}
