// Copyright (c) 2015 Mute Communications Ltd.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gbeengine implements the command engine for gbe.
package gbeengine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/structs"
	"github.com/mutecomm/gnbuild/def"
	"github.com/mutecomm/gnbuild/def/version"
	"github.com/mutecomm/gnbuild/encode/base64"
	"github.com/mutecomm/gnbuild/gbe"
	"github.com/mutecomm/gnbuild/log"
	"github.com/mutecomm/gnbuild/util"
	"github.com/peterh/liner"
	"github.com/urfave/cli"
)

// cmdPrefix is the log prefix of gbe.
const cmdPrefix = "gbe  "

const prompt = "gbe> "

var errExit = errors.New("gbeengine: requests exit")

// prompter reads command lines in interactive mode.
type prompter interface {
	Prompt(p string) (string, error)
	AppendHistory(item string)
	Close() error
}

// GbeEngine abstracts a gbe command engine.
type GbeEngine struct {
	prepared    bool
	interactive bool
	app         *cli.App
	config      *gbe.Config
	err         error
	in          io.Reader
	out         io.Writer
	status      io.Writer
	line        prompter
	newPrompter func(commands []string) prompter
}

func newLinerPrompter(commands []string) prompter {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(line string) (c []string) {
		for _, command := range commands {
			if strings.HasPrefix(command, line) {
				c = append(c, command)
			}
		}
		return
	})
	return line
}

func (ce *GbeEngine) prepare(c *cli.Context) error {
	if ce.prepared {
		return nil
	}
	// create the log directory if it doesn't already exist
	logDir := c.GlobalString("logdir")
	if err := util.CreateDirs(logDir); err != nil {
		return err
	}
	err := log.Init(c.GlobalString("loglevel"), cmdPrefix, logDir,
		c.GlobalBool("logconsole"))
	if err != nil {
		return err
	}
	// startup configuration overrides build-time defaults
	if filename := c.GlobalString("config"); filename != "" {
		if err := def.LoadConfig(filename); err != nil {
			return err
		}
	}
	ce.config = gbe.DefaultConfig()
	if v := c.GlobalString("lib-version"); v != "" {
		ce.config.Version = v
	}
	if m := c.GlobalString("lib-message"); m != "" {
		ce.config.Message = m
	}
	log.Debugf("gbeengine: version '%s', message '%s'", ce.config.Version,
		ce.config.Message)
	ce.prepared = true
	return nil
}

func buildCmdList(commands []cli.Command, prefix string) []string {
	var cmds []string
	for _, cmd := range commands {
		if cmd.Subcommands != nil {
			cmds = append(cmds, buildCmdList(cmd.Subcommands, cmd.Name+" ")...)
		} else {
			cmds = append(cmds, prefix+cmd.Name)
		}
	}
	return cmds
}

// loop runs the GbeEngine in a loop and reads commands from the prompter.
func (ce *GbeEngine) loop(c *cli.Context) {
	if len(c.Args()) > 0 {
		ce.err = log.Errorf("gbeengine: unknown command '%s', try 'help'",
			strings.Join(c.Args(), " "))
		return
	}

	log.Info("gbeengine: starting")

	ce.interactive = true
	defer func() { ce.interactive = false }()
	ce.line = ce.newPrompter(buildCmdList(ce.app.Commands, ""))
	defer ce.closePrompter()

	for {
		ln, err := ce.line.Prompt(prompt)
		if err != nil {
			if err == liner.ErrPromptAborted {
				fmt.Fprintf(ce.status, "aborting...\n")
			}
			if err != io.EOF {
				log.Error(err)
			}
			log.Info("gbeengine: stopping")
			return
		}
		ce.line.AppendHistory(ln)

		args := []string{ce.app.Name}
		fields := strings.Fields(ln)
		if len(fields) == 0 {
			log.Debug("read empty line")
			continue
		}
		log.Infof("read: %s", ln)
		args = append(args, fields...)
		if err := ce.app.Run(args); err != nil {
			// command execution failed -> issue status and continue
			log.Infof("command execution failed (app): %s", err)
			fmt.Fprintln(ce.status, err)
			continue
		}
		if ce.err != nil {
			if ce.err == errExit {
				log.Info("gbeengine: stopping (exit requested)")
				ce.err = nil
				return
			}
			// command execution failed -> issue status and continue
			fmt.Fprintln(ce.status, ce.err)
			ce.err = nil
		} else {
			log.Info("command successful")
		}
	}
}

func (ce *GbeEngine) closePrompter() {
	if ce.line != nil {
		ce.line.Close()
		ce.line = nil
	}
}

func noArgs(c *cli.Context) error {
	if len(c.Args()) > 0 {
		return log.Errorf("superfluous argument(s): %s",
			strings.Join(c.Args(), " "))
	}
	return nil
}

// New returns a new GbeEngine which reads from stdin and writes to stdout
// (results) and stderr (status).
func New() *GbeEngine {
	return newEngine(os.Stdin, os.Stdout, os.Stderr)
}

func newEngine(in io.Reader, out, status io.Writer) *GbeEngine {
	ce := &GbeEngine{
		in:          in,
		out:         out,
		status:      status,
		newPrompter: newLinerPrompter,
	}
	ce.app = cli.NewApp()
	ce.app.Usage = "reports the gnbuild library version and message, encodes and decodes base64."
	ce.app.Version = version.Number
	ce.app.Writer = out
	ce.app.ErrWriter = status
	ce.app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "config",
			Usage:  "JSON configuration file overriding build-time values",
			EnvVar: "GBE_CONFIG",
		},
		cli.StringFlag{
			Name:   "lib-version",
			Usage:  "override the configured library version",
			EnvVar: "GBE_VERSION",
		},
		cli.StringFlag{
			Name:   "lib-message",
			Usage:  "override the configured message",
			EnvVar: "GBE_MESSAGE",
		},
		cli.StringFlag{
			Name:  "loglevel",
			Value: "info",
			Usage: fmt.Sprintf("logging level {%s}", strings.Join(log.Levels, ", ")),
		},
		cli.StringFlag{
			Name:  "logdir",
			Usage: "directory to log output",
		},
		cli.BoolFlag{
			Name:  "logconsole",
			Usage: "enable logging to console",
		},
	}
	ce.app.Before = func(c *cli.Context) error {
		return ce.prepare(c)
	}
	ce.app.Action = func(c *cli.Context) {
		if ce.interactive {
			ce.err = log.Errorf("gbeengine: unknown command '%s', try 'help'",
				strings.Join(c.Args(), " "))
			return
		}
		ce.loop(c)
	}
	ce.app.Commands = []cli.Command{
		{
			Name:   "version",
			Usage:  "Show the library's version number",
			Before: noArgs,
			Action: func(c *cli.Context) {
				fmt.Fprintln(ce.out, ce.config.GetVersion())
			},
		},
		{
			Name:  "message",
			Usage: "Show the message",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "type",
					Value: gbe.MessageRaw.String(),
					Usage: "message type {raw, base64}",
				},
			},
			Before: noArgs,
			Action: func(c *cli.Context) {
				ce.err = ce.message(c.String("type"))
			},
		},
		{
			Name:      "encode",
			Usage:     "Encode arguments (or a line from stdin) as base64",
			ArgsUsage: "[text...]",
			Action: func(c *cli.Context) {
				ce.err = ce.encode(c.Args())
			},
		},
		{
			Name:      "decode",
			Usage:     "Decode base64 text",
			ArgsUsage: "base64",
			Action: func(c *cli.Context) {
				ce.err = ce.decode(c.Args())
			},
		},
		{
			Name:   "info",
			Usage:  "Show the effective configuration",
			Before: noArgs,
			Action: func(c *cli.Context) {
				ce.info()
			},
		},
		{
			Name:   "quit",
			Usage:  "Quit interactive mode",
			Before: noArgs,
			Action: func(c *cli.Context) {
				if ce.interactive {
					ce.err = errExit
				}
			},
		},
	}
	return ce
}

func (ce *GbeEngine) message(typ string) error {
	t, err := gbe.ParseMessageType(typ)
	if err != nil {
		return log.Errorf("%s: %q", err, typ)
	}
	fmt.Fprintln(ce.out, ce.config.GetMessage(t))
	return nil
}

func (ce *GbeEngine) encode(args []string) error {
	var raw []byte
	if len(args) > 0 {
		raw = []byte(strings.Join(args, " "))
	} else {
		var err error
		if fp, ok := ce.in.(*os.File); ok {
			raw, err = util.Readline(fp)
		} else {
			raw, err = util.ReadlineFrom(ce.in)
		}
		if err != nil {
			return err
		}
	}
	log.Debugf("gbeengine: encode %d bytes", len(raw))
	fmt.Fprintln(ce.out, base64.Encode(raw))
	return nil
}

func (ce *GbeEngine) decode(args []string) error {
	if len(args) != 1 {
		return log.Errorf("decode needs exactly one argument, got %d", len(args))
	}
	dec, err := base64.Decode(args[0])
	if err != nil {
		return log.Error(err)
	}
	fmt.Fprintf(ce.out, "%s\n", dec)
	return nil
}

func (ce *GbeEngine) info() {
	for _, f := range structs.New(ce.config).Fields() {
		fmt.Fprintf(ce.out, "%s: %v\n", f.Name(), f.Value())
	}
	fmt.Fprintf(ce.out, "Base64: %s\n", ce.config.GetMessage(gbe.MessageBase64))
}

// Start starts the GbeEngine with the given command-line arguments.
func (ce *GbeEngine) Start(args []string) error {
	ce.app.Name = filepath.Base(args[0])
	if err := ce.app.Run(args); err != nil {
		return err
	}
	return ce.err
}

// Close restores the terminal if the engine is in interactive mode.
func (ce *GbeEngine) Close() {
	ce.closePrompter()
}
