// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine_test

import (
	"strings"
	"testing"

	"github.com/mikesamuel/comehere/engine"
)

func TestPassesMatchesFixedPipelineOrder(t *testing.T) {
	passes := engine.Passes()
	if len(passes) == 0 {
		t.Fatal("Passes() returned no phases")
	}
	if passes[0].Name() != "block-normalizer" {
		t.Fatalf("Passes()[0].Name() = %q, want the block normalizer first", passes[0].Name())
	}
}

func TestTransformRunsTheFixedPipeline(t *testing.T) {
	result, err := engine.Transform(`
let x = 1;
COMEHERE: with (_) {
  x = 2;
}
`, nil)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if strings.Contains(result.Code, "COMEHERE") {
		t.Fatalf("output still contains goal-block surface syntax:\n%s", result.Code)
	}
}

func TestTransformPropagatesParseErrors(t *testing.T) {
	if _, err := engine.Transform("let x = ;", nil); err == nil {
		t.Fatal("expected a parse error for invalid source")
	}
}
