// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli_test

import (
	"bytes"
	"flag"
	"os"
	"strings"
	"testing"

	"github.com/mikesamuel/comehere/engine/cli"
)

const goalScript = `
let x = 1;
COMEHERE: with (_) {
  x = 2;
}
`

func runCLI(stdin string, args ...string) (exit int, stdout string, stderr string) {
	full := append([]string{"comehere"}, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	exit = cli.Run(strings.NewReader(stdin), &stdoutBuf, &stderrBuf, full)
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()
	return
}

func TestHelp(t *testing.T) {
	for _, helpFlag := range []string{"-help", "--help"} {
		exit, stdout, stderr := runCLI("", helpFlag)
		if exit != 2 || stdout != "" || !strings.Contains(stderr, "Usage: comehere ") {
			t.Fatalf("%s expected usage string with exit 2", helpFlag)
		}
	}
}

func TestInvalidFlag(t *testing.T) {
	exit, stdout, stderr := runCLI("", "-somethinginvalid")
	if exit != 1 || stdout != "" || stderr == "" {
		t.Fatal("invalid flag expected exit 1")
	}
}

func TestList(t *testing.T) {
	exit, stdout, stderr := runCLI("", "-list")
	if exit != 0 || stdout != "" || !strings.Contains(stderr, "extractor") {
		t.Fatalf("-list expected pass list on stderr with exit 0, got stdout=%q stderr=%q exit=%d", stdout, stderr, exit)
	}
}

func TestWriteRequiresFile(t *testing.T) {
	exit, stdout, stderr := runCLI(goalScript, "-w")
	if exit != 1 || stdout != "" || !strings.Contains(stderr, "-w flag requires -file") {
		t.Fatalf("-w without -file expected exit 1, got stdout=%q stderr=%q exit=%d", stdout, stderr, exit)
	}
}

func TestTransformStdin(t *testing.T) {
	exit, stdout, _ := runCLI(goalScript)
	if exit != 0 {
		t.Fatalf("expected exit 0, got %d", exit)
	}
	if strings.Contains(stdout, "COMEHERE") {
		t.Fatalf("output still contains the goal-block surface syntax:\n%s", stdout)
	}
	if !strings.Contains(stdout, "seek") {
		t.Fatalf("output missing the synthesized seek variable:\n%s", stdout)
	}
}

func TestTransformJSON(t *testing.T) {
	exit, stdout, _ := runCLI(goalScript, "-json")
	if exit != 0 {
		t.Fatalf("expected exit 0, got %d", exit)
	}
	if !strings.Contains(stdout, `"code"`) || !strings.Contains(stdout, `"blocks"`) {
		t.Fatalf("expected a {code, blocks} JSON object, got %s", stdout)
	}
}

func TestSyntaxError(t *testing.T) {
	exit, stdout, stderr := runCLI("let x = ;")
	if exit != 1 || stdout != "" || stderr == "" {
		t.Fatalf("syntax error expected exit 1 with a message on stderr, got stdout=%q stderr=%q exit=%d", stdout, stderr, exit)
	}
}
