// Copyright (c) 2015 Mute Communications Ltd.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package util contains utility functions for gnbuild.
package util

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mutecomm/gnbuild/log"
	"golang.org/x/crypto/ssh/terminal"
)

// Fatal prints err to stderr and exits the process with exit code 1.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "%s: error: %s\n", filepath.Base(os.Args[0]), err)
	os.Exit(1)
}

// Readline reads a single line from the file pointer fp.
// If fp is a terminal the input is not echoed.
func Readline(fp *os.File) ([]byte, error) {
	fd := int(fp.Fd())
	if terminal.IsTerminal(fd) {
		return terminal.ReadPassword(fd)
	}
	return ReadlineFrom(fp)
}

// ReadlineFrom reads a single line from r, without the line terminator.
// An empty reader yields an empty line.
func ReadlineFrom(r io.Reader) ([]byte, error) {
	scanner := bufio.NewScanner(r)
	var line []byte
	if scanner.Scan() {
		line = scanner.Bytes()
	} else if err := scanner.Err(); err != nil {
		return nil, log.Error(err)
	}
	return line, nil
}

// CreateDirs creates all given directories.
func CreateDirs(dirs ...string) error {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0700); err != nil {
			return log.Error(err)
		}
	}
	return nil
}

// ContainsString returns true, if the the string array sa contains the string s.
// Otherwise, it returns false.
func ContainsString(sa []string, s string) bool {
	for _, v := range sa {
		if v == s {
			return true
		}
	}
	return false
}
