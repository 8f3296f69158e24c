// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package container

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/elliotnunn/huffpack/internal/huffman"
	"pgregory.net/rapid"
)

const scenarioA = "aaaaaabbbccccccccbdddeeeeffdfadskfbbbbbbbuuuubbbmbbgdsakfds"

func mustEncode(t *testing.T, data []byte) []byte {
	t.Helper()
	b, err := Encode(data)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestScenarioA(t *testing.T) {
	b := mustEncode(t, []byte(scenarioA))
	h, payload, err := Unmarshal(b)
	if err != nil {
		t.Fatal(err)
	}
	if len(payload) >= len(scenarioA) {
		t.Errorf("payload of %d bytes is not shorter than %d input bytes", len(payload), len(scenarioA))
	}
	if h.Freqs['b'] != 17 || h.Freqs.Total() != uint64(len(scenarioA)) {
		t.Errorf("header counts b=%d total=%d", h.Freqs['b'], h.Freqs.Total())
	}
	got, err := Decode(b)
	if err != nil || string(got) != scenarioA {
		t.Errorf("Decode = %q, %v", got, err)
	}
}

func TestScenarioB(t *testing.T) {
	b := mustEncode(t, []byte("aaaa"))
	want := []byte("HUFF\x04\x01\x00\x01a\x00\x00\x00\x04\x00")
	if !bytes.Equal(b, want) {
		t.Errorf("got %q expected %q", b, want)
	}
	got, err := Decode(b)
	if err != nil || string(got) != "aaaa" {
		t.Errorf("Decode = %q, %v", got, err)
	}
}

func TestScenarioC(t *testing.T) {
	b := mustEncode(t, []byte(scenarioA))
	for i := range len(Magic) {
		bad := bytes.Clone(b)
		bad[i] ^= 0x20
		got, err := Decode(bad)
		if !errors.Is(err, ErrHeader) || got != nil {
			t.Errorf("corrupt magic byte %d: got %q, %v", i, got, err)
		}
	}
}

func TestScenarioD(t *testing.T) {
	b := mustEncode(t, []byte("abab"))
	want := []byte("HUFF\x04\x01\x00\x02a\x00\x00\x00\x02b\x00\x00\x00\x02\x50")
	if !bytes.Equal(b, want) {
		t.Errorf("got %q expected %q", b, want)
	}
	got, err := Decode(b)
	if err != nil || string(got) != "abab" {
		t.Errorf("Decode = %q, %v", got, err)
	}
}

func TestEncodeEmpty(t *testing.T) {
	if _, err := Encode(nil); !errors.Is(err, huffman.ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for n := 1; n <= 256; n++ {
		h := &Header{ValidBits: 1 + rng.IntN(8), Version: Version}
		for _, v := range rng.Perm(256)[:n] {
			h.Freqs[v] = 1 + rng.Uint64N(math.MaxUint32)
		}
		b, err := Marshal(h, []byte{0xa5})
		if err != nil {
			t.Fatal(err)
		}
		if len(b) != h.Size()+1 {
			t.Errorf("%d pairs: %d bytes, expected %d", n, len(b), h.Size()+1)
		}
		got, payload, err := Unmarshal(b)
		if err != nil {
			t.Fatalf("%d pairs: %v", n, err)
		}
		if *got != *h || !bytes.Equal(payload, []byte{0xa5}) {
			t.Errorf("%d pairs: header did not survive", n)
		}
	}
}

func TestMarshalErrors(t *testing.T) {
	var one huffman.Frequencies
	one['x'] = 1
	var huge huffman.Frequencies
	huge['x'] = math.MaxUint32 + 1

	cases := []struct {
		name    string
		h       Header
		payload []byte
		want    error
	}{
		{"noPayload", Header{ValidBits: 8, Freqs: one}, nil, ErrHeader},
		{"zeroValid", Header{ValidBits: 0, Freqs: one}, []byte{0}, ErrHeader},
		{"nineValid", Header{ValidBits: 9, Freqs: one}, []byte{0}, ErrHeader},
		{"noPairs", Header{ValidBits: 8}, []byte{0}, ErrHeader},
		{"version", Header{ValidBits: 8, Version: 300, Freqs: one}, []byte{0}, ErrVersion},
		{"tooLarge", Header{ValidBits: 8, Freqs: huge}, []byte{0}, ErrTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Marshal(&tc.h, tc.payload); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestUnmarshalErrors(t *testing.T) {
	good := mustEncode(t, []byte("abab"))
	edit := func(fn func(b []byte) []byte) []byte { return fn(bytes.Clone(good)) }

	cases := []struct {
		name string
		b    []byte
		want error
	}{
		{"empty", nil, ErrHeader},
		{"short", good[:7], ErrHeader},
		{"magic", edit(func(b []byte) []byte { b[0] = 'h'; return b }), ErrHeader},
		{"version", edit(func(b []byte) []byte { b[5] = 2; return b }), ErrVersion},
		{"zeroValid", edit(func(b []byte) []byte { b[4] = 0; return b }), ErrHeader},
		{"nineValid", edit(func(b []byte) []byte { b[4] = 9; return b }), ErrHeader},
		{"zeroPairs", edit(func(b []byte) []byte { binary.BigEndian.PutUint16(b[6:], 0); return b }), ErrHeader},
		{"manyPairs", edit(func(b []byte) []byte { binary.BigEndian.PutUint16(b[6:], 257); return b }), ErrHeader},
		{"pairsPastEnd", edit(func(b []byte) []byte { binary.BigEndian.PutUint16(b[6:], 3); return b }), ErrHeader},
		{"pairsTruncated", good[:12], ErrHeader},
		{"outOfOrder", edit(func(b []byte) []byte { b[8], b[13] = 'b', 'a'; return b }), ErrHeader},
		{"duplicate", edit(func(b []byte) []byte { b[13] = 'a'; return b }), ErrHeader},
		{"zeroFreq", edit(func(b []byte) []byte { binary.BigEndian.PutUint32(b[9:], 0); return b }), ErrHeader},
		{"noPayload", good[:len(good)-1], ErrHeader},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, payload, err := Unmarshal(tc.b)
			if !errors.Is(err, tc.want) || h != nil || payload != nil {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
			if _, err := Decode(tc.b); !errors.Is(err, tc.want) {
				t.Errorf("Decode: expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestVersionIsHeaderError(t *testing.T) {
	if !errors.Is(ErrVersion, ErrHeader) {
		t.Error("ErrVersion should match ErrHeader")
	}
}

func TestDecodeCorruptPayload(t *testing.T) {
	b := mustEncode(t, []byte("aaaa"))
	b[len(b)-1] = 0xf0
	if _, err := Decode(b); !errors.Is(err, ErrCorrupt) {
		t.Errorf("expected ErrCorrupt, got %v", err)
	}
}

type countingBuilder struct{ calls int }

func (c *countingBuilder) Build(f *huffman.Frequencies) (*huffman.Tree, error) {
	c.calls++
	return huffman.NewTree(f)
}

func TestDecodeWith(t *testing.T) {
	b := mustEncode(t, []byte(scenarioA))
	var cb countingBuilder
	got, err := DecodeWith(b, &cb)
	if err != nil || string(got) != scenarioA || cb.calls != 1 {
		t.Errorf("DecodeWith = %q, %v after %d builds", got, err, cb.calls)
	}
}

func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		data := rapid.SliceOfN(rapid.Byte(), 1, 4096).Draw(t, "data")
		b, err := Encode(data)
		if err != nil {
			t.Fatal(err)
		}
		got, err := Decode(b)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, data) {
			t.Fatalf("round trip mismatch")
		}
	})
}

func FuzzDecode(f *testing.F) {
	for _, s := range []string{scenarioA, "aaaa", "abab", "\x00\xff"} {
		b, err := Encode([]byte(s))
		if err != nil {
			f.Fatal(err)
		}
		f.Add(b)
	}
	f.Fuzz(func(t *testing.T, b []byte) {
		got, err := Decode(b)
		if err != nil {
			return
		}
		again, err := Encode(got)
		if err != nil {
			t.Fatalf("decoded %d bytes that cannot be re-encoded: %v", len(got), err)
		}
		if back, err := Decode(again); err != nil || !bytes.Equal(back, got) {
			t.Fatalf("re-encoded container does not round trip: %v", err)
		}
	})
}
