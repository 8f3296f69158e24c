// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

// Frequencies counts the occurrences of each byte value.
// A zero entry means the byte value does not occur.
type Frequencies [256]uint64

// Count scans data once and returns its byte frequencies.
func Count(data []byte) Frequencies {
	var f Frequencies
	for _, b := range data {
		f[b]++
	}
	return f
}

// Distinct returns the number of byte values that occur at least once.
func (f *Frequencies) Distinct() int {
	n := 0
	for _, c := range f {
		if c != 0 {
			n++
		}
	}
	return n
}

// Total returns the sum of all counts, which is the length of the counted input.
func (f *Frequencies) Total() uint64 {
	var n uint64
	for _, c := range f {
		n += c
	}
	return n
}
