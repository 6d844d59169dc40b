// Copyright (c) 2015 Mute Communications Ltd.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package def defines all default values used in gnbuild.
//
// Version and Message are set at build time, for example:
//
//	go build -ldflags "-X github.com/mutecomm/gnbuild/def.Version=1.2.3-main-210101-120000-g6ff87c4924"
//
// and can be overridden at startup with LoadConfig.
package def

import (
	"encoding/json"
	"io/ioutil"

	"github.com/frankbraun/codechain/util/file"
	"github.com/mutecomm/gnbuild/log"
)

const (
	// UnknownVersion is reported if no version was configured.
	UnknownVersion = "Unknown"
	// DefaultMessage is the message reported if no message was configured.
	DefaultMessage = "Hello World!"
	// UnknownType is reported for message types which do not exist.
	UnknownType = "Unknown type"
)

var (
	// Version is the library version configured at build time.
	Version string
	// Message is the custom message configured at build time.
	Message = DefaultMessage
)

// Config is the startup configuration. Empty fields keep the build-time
// values.
type Config struct {
	Version string `json:"version,omitempty"`
	Message string `json:"message,omitempty"`
}

// LoadConfig reads the JSON configuration file filename and applies it to
// Version and Message. A missing file is not an error.
func LoadConfig(filename string) error {
	exists, err := file.Exists(filename)
	if err != nil {
		return log.Error(err)
	}
	if !exists {
		log.Infof("def: config file '%s' does not exist, using build defaults",
			filename)
		return nil
	}
	b, err := ioutil.ReadFile(filename)
	if err != nil {
		return log.Error(err)
	}
	var config Config
	if err := json.Unmarshal(b, &config); err != nil {
		return log.Errorf("def: cannot parse config file '%s': %s", filename, err)
	}
	Apply(&config)
	log.Infof("def: config file '%s' loaded", filename)
	return nil
}

// Apply overrides Version and Message with the non-empty fields of config.
func Apply(config *Config) {
	if config.Version != "" {
		Version = config.Version
	}
	if config.Message != "" {
		Message = config.Message
	}
}
