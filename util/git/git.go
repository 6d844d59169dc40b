// Package git implements git wrappers.
package git

import (
	"bytes"
	"errors"
	"io"
	"os/exec"
	"strings"
)

// Date defines the layout of git dates useful for time.Parse.
const Date = "Mon Jan _2 15:04:05 2006 -0700"

// ErrOutput is returned if git produced unexpected output.
var ErrOutput = errors.New("git: unexpected output")

func run(dir string, statfp io.Writer, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	var outbuf bytes.Buffer
	cmd.Stdout = &outbuf
	cmd.Stderr = statfp
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return outbuf.String(), nil
}

// GetHead returns the commit and date of the git HEAD in the directory dir.
// If dir is empty, the current working directory of the calling binary is used.
func GetHead(dir string, statfp io.Writer) (commit, date string, err error) {
	out, err := run(dir, statfp, "log", "-1", "--format=%H %ad", "--date=default")
	if err != nil {
		return "", "", err
	}
	return ParseHead(out)
}

// ParseHead parses the output of `git log -1 --format="%H %ad"`.
func ParseHead(out string) (commit, date string, err error) {
	parts := strings.SplitN(strings.TrimSpace(out), " ", 2)
	if len(parts) != 2 {
		return "", "", ErrOutput
	}
	return parts[0], strings.TrimSpace(parts[1]), nil
}

// Describe returns the output of `git describe --all --long --abbrev=10`
// in directory dir.
func Describe(dir string, statfp io.Writer) (string, error) {
	out, err := run(dir, statfp, "describe", "--all", "--long", "--abbrev=10")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
