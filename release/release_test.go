package release

import (
	"bytes"
	"testing"

	"github.com/mutecomm/gnbuild/def"
	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli"
)

func TestPrintVersion(t *testing.T) {
	version := def.Version
	defer func() { def.Version = version }()
	def.Version = "1.2.3-main-210101-120000-g6ff87c4924"

	var buf bytes.Buffer
	app := cli.NewApp()
	app.Name = "gbe"
	app.Version = "1.0.0"
	app.Writer = &buf
	PrintVersion(cli.NewContext(app, nil, nil))
	assert.Equal(t, "gbe version 1.0.0\n"+
		"library 1.2.3-main-210101-120000-g6ff87c4924\n"+
		"commit "+Commit+"\n"+
		"Date:   "+Date+"\n", buf.String())
}
