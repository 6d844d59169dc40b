// Copyright (c) 2015 Mute Communications Ltd.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gotool implements wrappers for the Go tool.
package gotool

import (
	"fmt"
	"io"
	"os/exec"
	"sort"
	"strings"
)

// Generate executes `go generate -v` in directory dir.
func Generate(dir, arg string, outfp, statfp io.Writer) error {
	cmd := exec.Command("go", "generate", "-v", arg)
	if dir != "" {
		cmd.Dir = dir
	}
	cmd.Stdout = outfp
	cmd.Stderr = statfp
	return cmd.Run()
}

// LDFlags returns an -ldflags argument which sets the string variables in
// vars (map from fully qualified variable name to value). The result is
// sorted by variable name.
func LDFlags(vars map[string]string) string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	flags := make([]string, 0, len(names))
	for _, name := range names {
		flags = append(flags, fmt.Sprintf("-X '%s=%s'", name, vars[name]))
	}
	return strings.Join(flags, " ")
}

// Build executes `go build -v -ldflags ldflags -o output arg` in directory
// dir. If output is empty, the go tool picks the name.
func Build(dir, ldflags, output, arg string, outfp, statfp io.Writer) error {
	args := []string{"build", "-v"}
	if ldflags != "" {
		args = append(args, "-ldflags", ldflags)
	}
	if output != "" {
		args = append(args, "-o", output)
	}
	args = append(args, arg)
	cmd := exec.Command("go", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	cmd.Stdout = outfp
	cmd.Stderr = statfp
	return cmd.Run()
}
