// Copyright (c) 2015 Mute Communications Ltd.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package base64

import (
	"io"
)

type encoder struct {
	w    io.Writer
	err  error
	buf  [3]byte // pending input bytes
	nbuf int
	out  [1024]byte
}

// NewEncoder returns a new base64 stream encoder. Data written to the
// returned writer is encoded and written to w. The caller must Close the
// encoder to flush the padded final group.
func NewEncoder(w io.Writer) io.WriteCloser {
	return &encoder{w: w}
}

func (e *encoder) Write(p []byte) (n int, err error) {
	if e.err != nil {
		return 0, e.err
	}

	// complete a pending group first
	if e.nbuf > 0 {
		var i int
		for i = 0; i < len(p) && e.nbuf < 3; i++ {
			e.buf[e.nbuf] = p[i]
			e.nbuf++
		}
		n += i
		p = p[i:]
		if e.nbuf < 3 {
			return
		}
		encodeBlock(e.out[:4], e.buf[:])
		if _, e.err = e.w.Write(e.out[:4]); e.err != nil {
			return n, e.err
		}
		e.nbuf = 0
	}

	for len(p) >= 3 {
		nn := len(e.out) / 4 * 3
		if nn > len(p) {
			nn = len(p) / 3 * 3
		}
		encodeBlock(e.out[:nn/3*4], p[:nn])
		if _, e.err = e.w.Write(e.out[:nn/3*4]); e.err != nil {
			return n, e.err
		}
		n += nn
		p = p[nn:]
	}

	copy(e.buf[:], p)
	e.nbuf = len(p)
	n += len(p)
	return
}

// Close flushes any pending output. It does not close the underlying writer.
func (e *encoder) Close() error {
	if e.err == nil && e.nbuf > 0 {
		encodeBlock(e.out[:4], e.buf[:e.nbuf])
		_, e.err = e.w.Write(e.out[:4])
		e.nbuf = 0
	}
	return e.err
}

type decoder struct {
	r       io.Reader
	err     error
	readErr error
	padded  bool // a padded quantum has been consumed
	offset  int  // input offset of buf[0]
	buf     [1024]byte
	nbuf    int
	out     []byte // decoded but not yet returned
	outbuf  [1024 / 4 * 3]byte
}

// NewDecoder constructs a new base64 stream decoder reading from r.
func NewDecoder(r io.Reader) io.Reader {
	return &decoder{r: r}
}

func (d *decoder) Read(p []byte) (int, error) {
	if len(d.out) > 0 {
		n := copy(p, d.out)
		d.out = d.out[n:]
		return n, nil
	}
	if d.err != nil {
		return 0, d.err
	}

	// read at least one complete quantum
	for d.nbuf < 4 && d.readErr == nil {
		var n int
		n, d.readErr = d.r.Read(d.buf[d.nbuf:])
		d.nbuf += n
		if d.padded && d.nbuf > 0 {
			d.err = &InvalidEncodingError{
				Offset: d.offset,
				Reason: "data after padding",
			}
			return 0, d.err
		}
	}
	if d.nbuf < 4 {
		if d.readErr == io.EOF && d.nbuf > 0 {
			d.err = &InvalidEncodingError{
				Offset: d.offset,
				Reason: "length is not a multiple of 4",
			}
		} else {
			d.err = d.readErr
		}
		return 0, d.err
	}

	nr := d.nbuf / 4 * 4
	n, err := decodeBlock(d.outbuf[:], d.buf[:nr], d.offset, true)
	if err != nil {
		d.err = err
		return 0, d.err
	}
	d.padded = d.buf[nr-1] == padChar
	d.offset += nr
	d.nbuf = copy(d.buf[:], d.buf[nr:d.nbuf])
	if d.padded && d.nbuf > 0 {
		d.err = &InvalidEncodingError{
			Offset: d.offset,
			Reason: "data after padding",
		}
		return 0, d.err
	}

	d.out = d.outbuf[:n]
	m := copy(p, d.out)
	d.out = d.out[m:]
	return m, nil
}
