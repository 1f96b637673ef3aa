// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hostlang_test

import (
	"strings"
	"testing"

	"github.com/mikesamuel/comehere/hostlang"
)

func mustParse(t *testing.T, src string) string {
	t.Helper()
	prog, err := hostlang.Parse("<test>", src)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	return hostlang.Generate(prog)
}

func TestParseSyntaxErrorIsReported(t *testing.T) {
	_, err := hostlang.Parse("bad.js", "let x = ;")
	if err == nil {
		t.Fatal("Parse accepted invalid source")
	}
	if !strings.Contains(err.Error(), "bad.js") {
		t.Fatalf("error %q does not name its source", err.Error())
	}
}

func TestLetAndConstSurviveTheRoundTrip(t *testing.T) {
	out := mustParse(t, "let a = 1; const b = 2;")
	if !strings.Contains(out, "let a") {
		t.Errorf("let declaration lost on round trip:\n%s", out)
	}
	if !strings.Contains(out, "const b") {
		t.Errorf("const declaration lost on round trip:\n%s", out)
	}
}

func TestVarSurvivesTheRoundTrip(t *testing.T) {
	out := mustParse(t, "var a = 1;")
	if !strings.Contains(out, "var a") {
		t.Errorf("var declaration lost on round trip:\n%s", out)
	}
}

func TestCountedForLoopKeepsItsInitializer(t *testing.T) {
	out := mustParse(t, "for (let i = 0; i < 10; i = i + 1) { f(i); }")
	if !strings.Contains(out, "let i = 0") {
		t.Fatalf("for-loop initializer lost on round trip:\n%s", out)
	}
	if !strings.Contains(out, "i < 10") || !strings.Contains(out, "f(i)") {
		t.Fatalf("for-loop test/body lost on round trip:\n%s", out)
	}
}

func TestForInKeepsItsBindingTarget(t *testing.T) {
	out := mustParse(t, "for (let k in obj) { use(k); }")
	if !strings.Contains(out, "let k") {
		t.Fatalf("for-in binding target lost on round trip:\n%s", out)
	}
}

func TestForOfKeepsItsBindingTarget(t *testing.T) {
	out := mustParse(t, "for (const v of items) { use(v); }")
	if !strings.Contains(out, "const v") {
		t.Fatalf("for-of binding target lost on round trip:\n%s", out)
	}
}

func TestFunctionDeclarationRoundTrips(t *testing.T) {
	out := mustParse(t, "function add(a, b) { return a + b; }")
	if !strings.Contains(out, "function add(a, b)") {
		t.Fatalf("function header lost on round trip:\n%s", out)
	}
	if !strings.Contains(out, "return (a + b)") {
		t.Fatalf("function body lost on round trip:\n%s", out)
	}
}

func TestClassWithMethodRoundTrips(t *testing.T) {
	out := mustParse(t, "class C { constructor() { this.x = 1; } go() { return this.x; } }")
	if !strings.Contains(out, "class C") {
		t.Fatalf("class header lost on round trip:\n%s", out)
	}
	if !strings.Contains(out, "go()") {
		t.Fatalf("method lost on round trip:\n%s", out)
	}
}

func TestTryCatchFinallyRoundTrips(t *testing.T) {
	out := mustParse(t, "try { risky(); } catch (e) { handle(e); } finally { cleanup(); }")
	for _, want := range []string{"try", "catch (e)", "finally", "risky()", "handle(e)", "cleanup()"} {
		if !strings.Contains(out, want) {
			t.Fatalf("round trip dropped %q:\n%s", want, out)
		}
	}
}

func TestSwitchStatementRoundTrips(t *testing.T) {
	out := mustParse(t, "switch (x) { case 1: f(); break; default: g(); }")
	if !strings.Contains(out, "switch (x)") || !strings.Contains(out, "case 1:") || !strings.Contains(out, "default:") {
		t.Fatalf("switch statement lost structure on round trip:\n%s", out)
	}
}
