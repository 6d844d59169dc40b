// Copyright (c) 2015 Mute Communications Ltd.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// gbeversion generates gnbuild version strings from version.json and git,
// writes the release commit file, and builds gbe with the version baked in.
package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/frankbraun/codechain/util/file"
	"github.com/mutecomm/gnbuild/def/version"
	"github.com/mutecomm/gnbuild/log"
	"github.com/mutecomm/gnbuild/util"
	"github.com/mutecomm/gnbuild/util/git"
	"github.com/mutecomm/gnbuild/util/gotool"
	"github.com/urfave/cli"
)

const (
	defPkg     = "github.com/mutecomm/gnbuild/def"
	headFormat = `// Code generated by gbeversion; DO NOT EDIT.

package release

// Commit is the git commit the release was built from.
var Commit = %q

// Date is the date of Commit.
var Date = %q
`
)

func headFile(commit, date string) []byte {
	return []byte(fmt.Sprintf(headFormat, commit, date))
}

func semver(c *cli.Context) (string, error) {
	filename := filepath.Join(c.GlobalString("dir"), c.GlobalString("versionfile"))
	exists, err := file.Exists(filename)
	if err != nil {
		return "", log.Error(err)
	}
	if !exists {
		return "", log.Errorf("version file '%s' does not exist", filename)
	}
	s, err := version.ReadSemver(filename)
	if err != nil {
		return "", log.Error(err)
	}
	return s.String(), nil
}

func describe(c *cli.Context) (branch, revision string, err error) {
	desc, err := git.Describe(c.GlobalString("dir"), os.Stderr)
	if err != nil {
		return "", "", log.Error(err)
	}
	branch, revision, err = version.ParseDescribe(desc)
	if err != nil {
		return "", "", log.Errorf("%s: %q", err, desc)
	}
	return branch, revision, nil
}

func fullver(c *cli.Context) (string, error) {
	sv, err := semver(c)
	if err != nil {
		return "", err
	}
	branch, revision, err := describe(c)
	if err != nil {
		return "", err
	}
	return version.Full(sv, branch, revision, time.Now()), nil
}

func generate(c *cli.Context) error {
	commit, date, err := git.GetHead(c.GlobalString("dir"), os.Stderr)
	if err != nil {
		return log.Error(err)
	}
	out := c.String("o")
	if out == "" {
		return log.Error("option -o is mandatory")
	}
	log.Infof("write %s (commit %s)", out, commit)
	return ioutil.WriteFile(out, headFile(commit, date), 0644)
}

func build(c *cli.Context) error {
	dir := c.GlobalString("dir")
	v, err := fullver(c)
	if err != nil {
		return err
	}
	if err := gotool.Generate(dir, "./release", os.Stdout, os.Stderr); err != nil {
		return log.Error(err)
	}
	vars := map[string]string{defPkg + ".Version": v}
	if msg := c.String("message"); msg != "" {
		vars[defPkg+".Message"] = msg
	}
	pkg := "./cmd/gbe"
	if c.NArg() > 0 {
		pkg = c.Args().First()
	}
	log.Infof("build %s (version %s)", pkg, v)
	err = gotool.Build(dir, gotool.LDFlags(vars), c.String("output"), pkg,
		os.Stdout, os.Stderr)
	if err != nil {
		return log.Error(err)
	}
	fmt.Fprintln(c.App.Writer, v)
	return nil
}

func printer(f func(*cli.Context) (string, error)) func(*cli.Context) error {
	return func(c *cli.Context) error {
		s, err := f(c)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, s)
		return nil
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "gbeversion"
	app.Usage = "generate gnbuild version strings and builds"
	app.Version = version.Number
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "dir",
			Value: ".",
			Usage: "project directory",
		},
		cli.StringFlag{
			Name:  "versionfile",
			Value: "version.json",
			Usage: "version file, relative to --dir",
		},
		cli.BoolFlag{
			Name:  "logconsole",
			Usage: "enable logging to console",
		},
	}
	app.Before = func(c *cli.Context) error {
		return log.Init("info", "gbver", "", c.GlobalBool("logconsole"))
	}
	app.Commands = []cli.Command{
		{
			Name:   "semver",
			Usage:  "Print short semantic version (e.g. '1.2.3')",
			Action: printer(semver),
		},
		{
			Name:  "revision",
			Usage: "Print git revision (e.g. 'g6ff87c4924')",
			Action: printer(func(c *cli.Context) (string, error) {
				_, revision, err := describe(c)
				return revision, err
			}),
		},
		{
			Name:   "fullver",
			Usage:  "Print full version (e.g. '1.2.3-main-210101-120000-g6ff87c4924')",
			Action: printer(fullver),
		},
		{
			Name:  "generate",
			Usage: "Write release commit file",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "o",
					Usage: "output file",
				},
			},
			Action: generate,
		},
		{
			Name:      "build",
			Usage:     "Build gbe with the full version baked in",
			ArgsUsage: "[package]",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "output",
					Usage: "output binary",
				},
				cli.StringFlag{
					Name:  "message",
					Usage: "custom message baked into the binary",
				},
			},
			Action: build,
		},
	}
	return app
}

func gbeversionMain() error {
	defer log.Flush()
	return newApp().Run(os.Args)
}

func main() {
	// work around defer not working after os.Exit()
	if err := gbeversionMain(); err != nil {
		util.Fatal(err)
	}
}
