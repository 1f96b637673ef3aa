// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform_test

import (
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/mikesamuel/comehere/transform"
)

// Fixtures are stored the way golang.org/x/tools itself stores its own
// test data: a txtar archive with one "input.js" file holding the
// program to transform, and one "expect.txt" file holding substrings
// the transformed output must contain, one per line. This keeps the
// input and its expectations next to each other as a single unit,
// without pinning the exact byte-for-byte formatting of a synthesized
// call site.
const switchGoalArchive = `
-- input.js --
function route(code) {
  switch (code) {
    case 1:
      COMEHERE: with (_) {
        handleOne();
      }
      break;
    case 2:
      handleTwo();
      break;
  }
}
-- expect.txt --
route(
seek
handleOne()
`

const tryCatchGoalArchive = `
-- input.js --
function risky() {
  try {
    COMEHERE: with (_) {
      inspect();
    }
  } catch (e) {
    recover(e);
  }
}
-- expect.txt --
risky(
try
catch (e)
inspect()
recover(e)
`

func runGoldenArchive(t *testing.T, archive string) {
	t.Helper()
	a := txtar.Parse([]byte(archive))

	var input, expect string
	for _, f := range a.Files {
		switch f.Name {
		case "input.js":
			input = string(f.Data)
		case "expect.txt":
			expect = string(f.Data)
		}
	}
	if input == "" || expect == "" {
		t.Fatal("golden archive is missing its input.js or expect.txt file")
	}

	result, err := transform.Transform(input, transform.Options{})
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	for _, want := range strings.Split(strings.TrimSpace(expect), "\n") {
		if want == "" {
			continue
		}
		if !strings.Contains(result.Code, want) {
			t.Errorf("output missing %q:\n%s", want, result.Code)
		}
	}
}

func TestGoldenSwitchGoal(t *testing.T) {
	runGoldenArchive(t, switchGoalArchive)
}

func TestGoldenTryCatchGoal(t *testing.T) {
	runGoldenArchive(t, tryCatchGoalArchive)
}
