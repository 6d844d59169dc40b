package main

import (
	"bytes"
	"go/parser"
	"go/token"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadFile(t *testing.T) {
	src := headFile("6ff87c4924", "Sun Feb 28 12:00:00 2021 +0800")
	_, err := parser.ParseFile(token.NewFileSet(), "head.go", src, 0)
	require.NoError(t, err)
	assert.Contains(t, string(src), `var Commit = "6ff87c4924"`)
	assert.Contains(t, string(src), `var Date = "Sun Feb 28 12:00:00 2021 +0800"`)
}

func TestSemver(t *testing.T) {
	dir, err := ioutil.TempDir("", "gbeversion_test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	err = ioutil.WriteFile(filepath.Join(dir, "version.json"),
		[]byte(`{"major": 1, "minor": 2, "patch": 3}`), 0644)
	require.NoError(t, err)

	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	require.NoError(t, app.Run([]string{"gbeversion", "--dir", dir, "semver"}))
	assert.Equal(t, "1.2.3\n", buf.String())

	app = newApp()
	app.Writer = &buf
	err = app.Run([]string{"gbeversion", "--dir", dir, "--versionfile", "missing.json", "semver"})
	assert.Error(t, err)
}
