// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The comehere command transforms COMEHERE source, turning each
// COMEHERE block into code reachable on demand through a seek variable.
package main

import (
	"os"

	"github.com/mikesamuel/comehere/engine/cli"
)

func main() {
	os.Exit(cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args))
}
