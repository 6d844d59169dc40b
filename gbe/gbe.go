// Copyright (c) 2015 Mute Communications Ltd.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gbe exposes the gnbuild library API: the configured version and
// message, the latter either raw or base64 encoded.
package gbe

import (
	"errors"
	"strconv"
	"strings"

	"github.com/mutecomm/gnbuild/def"
	"github.com/mutecomm/gnbuild/encode/base64"
)

// MessageType selects the representation returned by GetMessage.
type MessageType int

// Message types. The numeric values are part of the API.
const (
	MessageRaw    MessageType = 0
	MessageBase64 MessageType = 1
)

// ErrMessageType is returned by ParseMessageType for unknown types.
var ErrMessageType = errors.New("gbe: unknown message type")

// String returns the name of the message type.
func (t MessageType) String() string {
	switch t {
	case MessageRaw:
		return "raw"
	case MessageBase64:
		return "base64"
	default:
		return "MessageType(" + strconv.Itoa(int(t)) + ")"
	}
}

// ParseMessageType parses "raw", "base64" or their numeric values.
func ParseMessageType(s string) (MessageType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "raw", "0":
		return MessageRaw, nil
	case "base64", "1":
		return MessageBase64, nil
	default:
		return 0, ErrMessageType
	}
}

// Config holds the version and message reported by the library.
type Config struct {
	Version string
	Message string
}

// DefaultConfig returns the configuration currently set in package def.
func DefaultConfig() *Config {
	return &Config{
		Version: def.Version,
		Message: def.Message,
	}
}

// GetVersion returns the library's version number.
func (c *Config) GetVersion() string {
	if c.Version == "" {
		return def.UnknownVersion
	}
	return c.Version
}

// GetMessage returns the message in the representation t.
func (c *Config) GetMessage(t MessageType) string {
	switch t {
	case MessageRaw:
		return c.Message
	case MessageBase64:
		return base64.Encode([]byte(c.Message))
	default:
		return def.UnknownType
	}
}

// GetVersion returns the library's version number from DefaultConfig.
func GetVersion() string {
	return DefaultConfig().GetVersion()
}

// GetMessage returns the message from DefaultConfig in the representation t.
func GetMessage(t MessageType) string {
	return DefaultConfig().GetMessage(t)
}
