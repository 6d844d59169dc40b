// Copyright (c) 2015 Mute Communications Ltd.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fuzzer implements a simple bit-flip fuzzer for parsers.
package fuzzer

// SequentialFuzzer flips every bit of Data, one at a time, and passes each
// mutation to TestFunc. TestFunc is expected to detect the mutation by
// returning an error.
type SequentialFuzzer struct {
	Data     []byte             // input to mutate, left unmodified
	TestFunc func([]byte) error // must return an error for a mutated input
}

// Fuzz runs the fuzzer and returns true if TestFunc returned an error for
// every mutation. It returns false as soon as one mutation went undetected.
func (f *SequentialFuzzer) Fuzz() bool {
	mutation := make([]byte, len(f.Data))
	for i := 0; i < len(f.Data)*8; i++ {
		copy(mutation, f.Data)
		mutation[i/8] ^= 1 << uint(i%8)
		if err := f.TestFunc(mutation); err == nil {
			return false
		}
	}
	return true
}
