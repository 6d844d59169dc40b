// Copyright (c) 2015 Mute Communications Ltd.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package base64 implements the RFC 4648 base64 encoding (standard alphabet,
// '=' padding) used by gnbuild.
package base64

import (
	"errors"
	"fmt"
)

const (
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	padChar  = '='
	invalid  = 0xff
)

// ErrInvalidEncoding is returned if a string is not valid base64.
var ErrInvalidEncoding = errors.New("base64: invalid encoding")

// InvalidEncodingError describes where and why decoding failed.
// It matches ErrInvalidEncoding with errors.Is.
type InvalidEncodingError struct {
	Offset int    // byte offset in the input
	Reason string // malformed length, illegal character or misplaced padding
}

func (e *InvalidEncodingError) Error() string {
	return fmt.Sprintf("base64: invalid encoding at offset %d: %s", e.Offset,
		e.Reason)
}

// Is reports whether target is ErrInvalidEncoding.
func (e *InvalidEncodingError) Is(target error) bool {
	return target == ErrInvalidEncoding
}

var decodeMap [256]byte

func init() {
	for i := range decodeMap {
		decodeMap[i] = invalid
	}
	for i := 0; i < len(alphabet); i++ {
		decodeMap[alphabet[i]] = byte(i)
	}
}

// EncodedLen returns the length of the base64 encoding of n bytes.
func EncodedLen(n int) int {
	return (n + 2) / 3 * 4
}

// DecodedLen returns the maximum number of bytes an encoding of length n
// decodes to.
func DecodedLen(n int) int {
	return n / 4 * 3
}

// encodeBlock encodes src into dst. len(dst) must be EncodedLen(len(src)).
func encodeBlock(dst, src []byte) {
	di, si := 0, 0
	n := len(src) / 3 * 3
	for si < n {
		v := uint(src[si])<<16 | uint(src[si+1])<<8 | uint(src[si+2])
		dst[di+0] = alphabet[v>>18&0x3f]
		dst[di+1] = alphabet[v>>12&0x3f]
		dst[di+2] = alphabet[v>>6&0x3f]
		dst[di+3] = alphabet[v&0x3f]
		si += 3
		di += 4
	}
	switch len(src) - si {
	case 1:
		v := uint(src[si]) << 16
		dst[di+0] = alphabet[v>>18&0x3f]
		dst[di+1] = alphabet[v>>12&0x3f]
		dst[di+2] = padChar
		dst[di+3] = padChar
	case 2:
		v := uint(src[si])<<16 | uint(src[si+1])<<8
		dst[di+0] = alphabet[v>>18&0x3f]
		dst[di+1] = alphabet[v>>12&0x3f]
		dst[di+2] = alphabet[v>>6&0x3f]
		dst[di+3] = padChar
	}
}

// decodeBlock decodes src into dst and returns the number of bytes written.
// offset is added to the offsets reported in errors. If last is false,
// padding is not allowed anywhere in src.
func decodeBlock(dst, src []byte, offset int, last bool) (int, error) {
	if len(src)%4 != 0 {
		return 0, &InvalidEncodingError{
			Offset: offset + len(src)/4*4,
			Reason: "length is not a multiple of 4",
		}
	}
	di := 0
	for si := 0; si < len(src); si += 4 {
		var q [4]byte
		pad := 0
		for j := 0; j < 4; j++ {
			c := src[si+j]
			if c == padChar {
				// padding only in the last two positions of the final quantum
				if !last || si+4 != len(src) || j < 2 {
					return 0, &InvalidEncodingError{
						Offset: offset + si + j,
						Reason: "misplaced padding",
					}
				}
				pad++
				continue
			}
			if pad > 0 {
				return 0, &InvalidEncodingError{
					Offset: offset + si + j,
					Reason: "misplaced padding",
				}
			}
			v := decodeMap[c]
			if v == invalid {
				return 0, &InvalidEncodingError{
					Offset: offset + si + j,
					Reason: fmt.Sprintf("illegal character %q", c),
				}
			}
			q[j] = v
		}
		v := uint(q[0])<<18 | uint(q[1])<<12 | uint(q[2])<<6 | uint(q[3])
		switch pad {
		case 0:
			dst[di+0] = byte(v >> 16)
			dst[di+1] = byte(v >> 8)
			dst[di+2] = byte(v)
			di += 3
		case 1:
			dst[di+0] = byte(v >> 16)
			dst[di+1] = byte(v >> 8)
			di += 2
		case 2:
			dst[di+0] = byte(v >> 16)
			di++
		}
	}
	return di, nil
}

// Encode returns the base64 encoding of src.
func Encode(src []byte) string {
	dst := make([]byte, EncodedLen(len(src)))
	encodeBlock(dst, src)
	return string(dst)
}

// Decode returns the bytes represented by the base64 string s.
// Whitespace is not skipped. All failures match ErrInvalidEncoding.
func Decode(s string) ([]byte, error) {
	dst := make([]byte, DecodedLen(len(s)))
	n, err := decodeBlock(dst, []byte(s), 0, true)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}
