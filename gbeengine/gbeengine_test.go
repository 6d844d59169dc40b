package gbeengine

import (
	"bytes"
	"errors"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mutecomm/gnbuild/def"
	"github.com/mutecomm/gnbuild/encode/base64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type linesPrompter struct {
	lines   []string
	history []string
	closed  bool
}

func (p *linesPrompter) Prompt(string) (string, error) {
	if len(p.lines) == 0 {
		return "", io.EOF
	}
	ln := p.lines[0]
	p.lines = p.lines[1:]
	return ln, nil
}

func (p *linesPrompter) AppendHistory(item string) {
	p.history = append(p.history, item)
}

func (p *linesPrompter) Close() error {
	p.closed = true
	return nil
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	var out, status bytes.Buffer
	ce := newEngine(strings.NewReader(stdin), &out, &status)
	defer ce.Close()
	err := ce.Start(append([]string{"gbe"}, args...))
	return out.String(), status.String(), err
}

func TestVersion(t *testing.T) {
	version := def.Version
	defer func() { def.Version = version }()
	def.Version = ""
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "Unknown\n", out)
	out, _, err = run(t, "", "--lib-version", "1.2.3", "version")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", out)
}

func TestMessage(t *testing.T) {
	out, _, err := run(t, "", "--lib-message", "Hello World!", "message")
	require.NoError(t, err)
	assert.Equal(t, "Hello World!\n", out)
	out, _, err = run(t, "", "--lib-message", "Hello World!", "message", "--type", "base64")
	require.NoError(t, err)
	assert.Equal(t, "SGVsbG8gV29ybGQh\n", out)
	out, _, err = run(t, "", "--lib-message", "a", "message", "--type", "1")
	require.NoError(t, err)
	assert.Equal(t, "YQ==\n", out)
	_, _, err = run(t, "", "message", "--type", "hex")
	assert.Error(t, err)
}

func TestEncode(t *testing.T) {
	out, _, err := run(t, "", "encode", "Hello", "World!")
	require.NoError(t, err)
	assert.Equal(t, "SGVsbG8gV29ybGQh\n", out)
	out, _, err = run(t, "ab\nignored\n", "encode")
	require.NoError(t, err)
	assert.Equal(t, "YWI=\n", out)
	out, _, err = run(t, "", "encode")
	require.NoError(t, err)
	assert.Equal(t, "\n", out)
}

func TestDecode(t *testing.T) {
	out, _, err := run(t, "", "decode", "SGVsbG8gV29ybGQh")
	require.NoError(t, err)
	assert.Equal(t, "Hello World!\n", out)
	_, _, err = run(t, "", "decode", "YWI")
	assert.True(t, errors.Is(err, base64.ErrInvalidEncoding), "%v", err)
	_, _, err = run(t, "", "decode", "Y*I=")
	assert.True(t, errors.Is(err, base64.ErrInvalidEncoding), "%v", err)
	_, _, err = run(t, "", "decode")
	assert.Error(t, err)
	_, _, err = run(t, "", "decode", "YQ==", "YQ==")
	assert.Error(t, err)
}

func TestInfo(t *testing.T) {
	out, _, err := run(t, "", "--lib-version", "0.1.0", "--lib-message", "ab", "info")
	require.NoError(t, err)
	assert.Equal(t, "Version: 0.1.0\nMessage: ab\nBase64: YWI=\n", out)
}

func TestConfigFile(t *testing.T) {
	version, message := def.Version, def.Message
	defer func() { def.Version, def.Message = version, message }()
	dir, err := ioutil.TempDir("", "gbeengine_test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	filename := filepath.Join(dir, "gbe.json")
	err = ioutil.WriteFile(filename,
		[]byte(`{"version": "9.9.9", "message": "from file"}`), 0644)
	require.NoError(t, err)
	out, _, err := run(t, "", "--config", filename, "message")
	require.NoError(t, err)
	assert.Equal(t, "from file\n", out)
	// flags take precedence
	out, _, err = run(t, "", "--config", filename, "--lib-version", "1.0.0", "version")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0\n", out)
}

func TestSuperfluousArgs(t *testing.T) {
	_, _, err := run(t, "", "version", "now")
	assert.Error(t, err)
}

func TestInteractive(t *testing.T) {
	var out, status bytes.Buffer
	ce := newEngine(strings.NewReader(""), &out, &status)
	p := &linesPrompter{lines: []string{
		"version",
		"",
		"encode ab",
		"decode YWI",
		"bogus",
		"message --type base64",
		"quit",
		"version",
	}}
	ce.newPrompter = func(commands []string) prompter {
		assert.Contains(t, commands, "encode")
		assert.Contains(t, commands, "quit")
		return p
	}
	err := ce.Start([]string{"gbe", "--lib-version", "2.0.0", "--lib-message", "a"})
	require.NoError(t, err)
	assert.Equal(t, "2.0.0\nYWI=\nYQ==\n", out.String())
	assert.Contains(t, status.String(), "invalid encoding")
	assert.Contains(t, status.String(), "unknown command 'bogus'")
	assert.Equal(t, []string{"version"}, p.lines, "must stop at quit")
	assert.True(t, p.closed)
	assert.Len(t, p.history, 7)
}

func TestInteractiveEOF(t *testing.T) {
	var out, status bytes.Buffer
	ce := newEngine(strings.NewReader(""), &out, &status)
	p := &linesPrompter{lines: []string{"version"}}
	ce.newPrompter = func([]string) prompter { return p }
	err := ce.Start([]string{"gbe", "--lib-version", "3.0.0"})
	require.NoError(t, err)
	assert.Equal(t, "3.0.0\n", out.String())
	assert.True(t, p.closed)
}

func TestUnknownCommand(t *testing.T) {
	_, _, err := run(t, "", "bogus")
	assert.Error(t, err)
}
