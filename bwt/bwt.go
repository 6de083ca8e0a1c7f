// Package bwt provides the forward and inverse Burrows-Wheeler
// transforms used by the BCM format. The forward transform follows the
// divbwt convention: suffixes are sorted, the row holding the whole
// string is dropped from the output and its position is returned as a
// 1-based primary index, while the last input byte leads the output.
// The inverse rebuilds the input from the transformed block and the
// primary index alone.
package bwt

// A Transformer computes forward and inverse transforms of byte blocks.
// The zero value is ready for use. Scratch buffers grow to the largest
// block seen and are reused across blocks, so a single Transformer
// should serve a whole session. It is not safe for concurrent use.
type Transformer struct {
	sa   []int32
	rank []int32
	next []int32
	buf  []byte
}

func (t *Transformer) grow(n int) {
	if cap(t.next) < n {
		t.next = make([]int32, n)
	}
	if cap(t.buf) < n {
		t.buf = make([]byte, n)
	}
}

// Forward rewrites data in place to its Burrows-Wheeler transform and
// returns the primary index in [1, len(data)]. For an empty block it
// returns 0.
func (t *Transformer) Forward(data []byte) int {
	n := len(data)
	if n == 0 {
		return 0
	}
	t.grow(n)
	if cap(t.sa) < n {
		t.sa = make([]int32, n)
		t.rank = make([]int32, n)
	}
	sa := t.sa[:n]
	suffixSort(data, sa, t.rank[:n], t.next[:n])

	src := t.buf[:n]
	copy(src, data)
	idx := 0
	data[0] = src[n-1]
	for i, s := range sa {
		if s == 0 {
			// The row of the unrotated string is dropped; rows
			// after it move up one slot.
			idx = i + 1
			continue
		}
		if idx == 0 {
			data[i+1] = src[s-1]
		} else {
			data[i] = src[s-1]
		}
	}
	return idx
}

// Inverse rewrites data in place from its Burrows-Wheeler transform
// using the primary index idx in [1, len(data)]. It returns the number
// of reconstructed bytes, which is len(data) for every well-formed
// block. A corrupt block may reconstruct fewer bytes; the walk below
// cannot revisit a position, so it always terminates.
func (t *Transformer) Inverse(data []byte, idx int) int {
	n := len(data)
	if n == 0 {
		return 0
	}
	t.grow(n)

	var cnt [257]int32
	for _, c := range data {
		cnt[int(c)+1]++
	}
	for i := 1; i < 256; i++ {
		cnt[i] += cnt[i-1]
	}

	next := t.next[:n]
	for i, c := range data {
		v := int32(i)
		if i >= idx {
			// Skip over the implicit slot of the dropped row.
			v++
		}
		next[cnt[c]] = v
		cnt[c]++
	}

	out := t.buf[:n]
	w := 0
	for p := idx; p != 0; {
		p = int(next[p-1])
		j := p
		if p >= idx {
			j--
		}
		out[w] = data[j]
		w++
	}
	copy(data, out[:w])
	return w
}
