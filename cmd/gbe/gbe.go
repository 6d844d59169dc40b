// Copyright (c) 2015 Mute Communications Ltd.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// gbe is the command-line tool of the gnbuild library. It reports the
// configured version and message and encodes and decodes base64.
package main

import (
	"os"

	"github.com/mutecomm/gnbuild/gbeengine"
	"github.com/mutecomm/gnbuild/log"
	"github.com/mutecomm/gnbuild/release"
	"github.com/mutecomm/gnbuild/util"
	"github.com/mutecomm/gnbuild/util/interrupt"
	"github.com/urfave/cli"
)

func init() {
	cli.VersionPrinter = release.PrintVersion
}

func gbeMain() error {
	defer log.Flush()

	// create command engine
	ce := gbeengine.New()
	defer ce.Close()

	// add interrupt handler
	interrupt.AddInterruptHandler(func() {
		log.Infof("gracefully shutting down...")
		ce.Close()
	})

	// start command engine
	go func() {
		if err := ce.Start(os.Args); err != nil {
			interrupt.ShutdownChannel <- err
			return
		}
		interrupt.ShutdownChannel <- nil
	}()

	return <-interrupt.ShutdownChannel
}

func main() {
	// work around defer not working after os.Exit()
	if err := gbeMain(); err != nil {
		util.Fatal(err)
	}
}
