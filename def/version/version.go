// Package version defines the current gnbuild version number and the
// helpers to derive full build versions from version.json and git.
package version

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"strings"
	"time"
)

// Number is the current gnbuild version number.
// We use semantic versioning (http://semver.org/).
const Number = "1.0.0"

// DateLayout is the layout of the build date in full versions (yymmdd-HHMMSS).
const DateLayout = "060102-150405"

// ErrDescribe is returned if git describe output cannot be parsed.
var ErrDescribe = errors.New("version: cannot parse git describe output")

// Semver is the content of a version.json file.
type Semver struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
	Patch int `json:"patch"`
}

// String returns the short semantic version "major.minor.patch".
func (s Semver) String() string {
	return fmt.Sprintf("%d.%d.%d", s.Major, s.Minor, s.Patch)
}

// ReadSemver reads the version.json file filename.
func ReadSemver(filename string) (*Semver, error) {
	b, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var s Semver
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("version: cannot parse %s: %s", filename, err)
	}
	return &s, nil
}

// ParseDescribe parses the output of `git describe --all --long --abbrev=10`
// (e.g. "heads/main-0-g6ff87c4924") into branch and revision.
// Remote prefixes are removed, tags (detached commits) map to branch "heads".
func ParseDescribe(desc string) (branch, revision string, err error) {
	desc = strings.TrimSpace(desc)
	desc = strings.Replace(desc, "/", "_", -1)
	desc = strings.Replace(desc, "remotes_", "", -1)
	desc = strings.Replace(desc, "origin_", "", -1)
	last := strings.LastIndex(desc, "-")
	if last <= 0 || last == len(desc)-1 {
		return "", "", ErrDescribe
	}
	revision = desc[last+1:]
	// the branch is the name before the count, it can contain '-' itself
	name := desc[:last]
	i := strings.LastIndex(name, "-")
	if i <= 0 {
		return "", "", ErrDescribe
	}
	name = name[:i]
	switch {
	case strings.HasPrefix(name, "tags_"):
		branch = "heads"
	case strings.HasPrefix(name, "heads_"):
		branch = strings.TrimPrefix(name, "heads_")
	default:
		branch = name
	}
	return branch, revision, nil
}

// Full returns the full version <semver>-<branch>-<yymmdd-HHMMSS>-<revision>
// (e.g. "1.2.3-main-210101-120000-g6ff87c4924").
func Full(semver, branch, revision string, t time.Time) string {
	return fmt.Sprintf("%s-%s-%s-%s", semver, branch, t.Format(DateLayout),
		revision)
}
