package bwt

import (
	"bytes"
	"math/rand"
	"sort"
	"testing"
)

// refForward computes the transform with a naive suffix sort. It is the
// reference for the optimized implementation.
func refForward(data []byte) (out []byte, idx int) {
	n := len(data)
	sa := make([]int, n)
	for i := range sa {
		sa[i] = i
	}
	sort.Slice(sa, func(a, b int) bool {
		return bytes.Compare(data[sa[a]:], data[sa[b]:]) < 0
	})
	out = make([]byte, n)
	out[0] = data[n-1]
	for i, s := range sa {
		if s == 0 {
			idx = i + 1
			continue
		}
		if idx == 0 {
			out[i+1] = data[s-1]
		} else {
			out[i] = data[s-1]
		}
	}
	return out, idx
}

var bwtStrings = []string{
	"a",
	"ab",
	"ba",
	"aa",
	"banana",
	"abracadabra",
	"mississippi",
	"aaaaaaaaaaaaaaaa",
	"to be or not to be",
	"Die Nummer Eins der Welt sind wir!",
	"abababababababababababab",
}

func TestForwardKnown(t *testing.T) {
	data := []byte("banana")
	var tr Transformer
	idx := tr.Forward(data)
	if string(data) != "annbaa" || idx != 4 {
		t.Errorf("Forward(banana) got %q, %d; want %q, %d",
			data, idx, "annbaa", 4)
	}
}

func TestForwardRef(t *testing.T) {
	var tr Transformer
	for _, s := range bwtStrings {
		data := []byte(s)
		want, wantIdx := refForward(data)
		idx := tr.Forward(data)
		if !bytes.Equal(data, want) || idx != wantIdx {
			t.Errorf("Forward(%q) got %q, %d; want %q, %d",
				s, data, idx, want, wantIdx)
		}
	}
}

func TestForwardRefRandom(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	var tr Transformer
	for _, n := range []int{1, 2, 3, 4, 5, 6, 7, 8, 100, 1000} {
		for round := 0; round < 4; round++ {
			data := make([]byte, n)
			for i := range data {
				// small alphabet provokes long repeats
				data[i] = byte('a' + rnd.Intn(4))
			}
			want, wantIdx := refForward(data)
			idx := tr.Forward(data)
			if !bytes.Equal(data, want) || idx != wantIdx {
				t.Fatalf("Forward mismatch for n=%d round %d",
					n, round)
			}
		}
	}
}

func TestRoundTrip(t *testing.T) {
	var tr Transformer
	for _, s := range bwtStrings {
		data := []byte(s)
		idx := tr.Forward(data)
		if idx < 1 || idx > len(data) {
			t.Fatalf("Forward(%q) index %d out of range", s, idx)
		}
		n := tr.Inverse(data, idx)
		if n != len(data) {
			t.Fatalf("Inverse(%q) rebuilt %d bytes; want %d",
				s, n, len(data))
		}
		if string(data) != s {
			t.Errorf("round trip got %q; want %q", data, s)
		}
	}
}

func TestRoundTripRandom(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	var tr Transformer
	for _, n := range []int{1, 255, 4096, 1 << 16} {
		data := make([]byte, n)
		rnd.Read(data)
		orig := make([]byte, n)
		copy(orig, data)

		idx := tr.Forward(data)
		if idx < 1 || idx > n {
			t.Fatalf("index %d out of range [1, %d]", idx, n)
		}
		if k := tr.Inverse(data, idx); k != n {
			t.Fatalf("Inverse rebuilt %d bytes; want %d", k, n)
		}
		if !bytes.Equal(data, orig) {
			t.Errorf("round trip of %d random bytes failed", n)
		}
	}
}

func TestRoundTripRuns(t *testing.T) {
	var tr Transformer
	data := bytes.Repeat([]byte{0}, 4096)
	idx := tr.Forward(data)
	if k := tr.Inverse(data, idx); k != len(data) {
		t.Fatalf("Inverse rebuilt %d bytes; want %d", k, len(data))
	}
	for _, c := range data {
		if c != 0 {
			t.Fatal("round trip of zero run failed")
		}
	}
}

// TestTransformerReuse checks that scratch buffers carry over correctly
// between blocks of different sizes.
func TestTransformerReuse(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	var tr Transformer
	for _, n := range []int{1000, 10, 5000, 1, 4999} {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte('a' + rnd.Intn(3))
		}
		orig := make([]byte, n)
		copy(orig, data)
		idx := tr.Forward(data)
		if k := tr.Inverse(data, idx); k != n {
			t.Fatalf("n=%d: Inverse rebuilt %d bytes", n, k)
		}
		if !bytes.Equal(data, orig) {
			t.Fatalf("n=%d: round trip failed", n)
		}
	}
}

func TestEmptyBlock(t *testing.T) {
	var tr Transformer
	if idx := tr.Forward(nil); idx != 0 {
		t.Errorf("Forward(nil) = %d; want 0", idx)
	}
	if n := tr.Inverse(nil, 0); n != 0 {
		t.Errorf("Inverse(nil) = %d; want 0", n)
	}
}
