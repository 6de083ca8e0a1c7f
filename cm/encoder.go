package cm

import "io"

// rangeEncoder implements the binary range encoder over a 32-bit
// [low, high] interval. Unlike the LZMA-style encoder there is no carry
// cache: a byte is emitted only once the top bytes of low and high
// agree, so it can never change afterwards.
type rangeEncoder struct {
	w    io.ByteWriter
	low  uint32
	high uint32
}

// newRangeEncoder creates a new range encoder.
func newRangeEncoder(w io.ByteWriter) *rangeEncoder {
	return &rangeEncoder{w: w, high: 0xffffffff}
}

// encodeBit encodes a single bit with probability p out of [0, 1<<18)
// for the bit to be set. The split point is computed with a 64-bit
// product; encoder and decoder must agree on it exactly.
func (e *rangeEncoder) encodeBit(p uint32, b bit) error {
	mid := e.low + uint32(uint64(e.high-e.low)*uint64(p)>>18)
	if b.test() {
		e.high = mid
	} else {
		e.low = mid + 1
	}
	// Emit leading bytes shared by low and high. The +1 on the zero
	// branch above keeps the interval from collapsing, so the loop
	// terminates.
	for e.low^e.high < 1<<24 {
		if err := e.w.WriteByte(byte(e.low >> 24)); err != nil {
			return err
		}
		e.low <<= 8
		e.high = e.high<<8 | 0xff
	}
	return nil
}

// flush writes the four remaining bytes of the low bound. After flush
// the encoder must not be used again.
func (e *rangeEncoder) flush() error {
	for i := 0; i < 4; i++ {
		if err := e.w.WriteByte(byte(e.low >> 24)); err != nil {
			return err
		}
		e.low <<= 8
	}
	return nil
}

// Encoder compresses a byte stream. It couples the context-mixing model
// with the range encoder; one Encoder instance covers a whole session
// because the model state crosses block boundaries.
type Encoder struct {
	re *rangeEncoder
	m  *model
}

// NewEncoder creates an encoder writing range-coded bytes to w. Writers
// that don't implement io.ByteWriter should be wrapped in a
// bufio.Writer; the encoder emits single bytes.
func NewEncoder(w io.ByteWriter) *Encoder {
	return &Encoder{re: newRangeEncoder(w), m: newModel()}
}

// Encode codes one byte, most significant bit first.
func (e *Encoder) Encode(c byte) error {
	f := e.m.begin()
	ctx := 1
	for ctx < 256 {
		b := bit(c >> 7)
		c <<= 1
		q, j := e.m.predict(f, ctx)
		if err := e.re.encodeBit(q, b); err != nil {
			return err
		}
		e.m.update(f, ctx, j, b)
		ctx = ctx<<1 | int(b&1)
	}
	e.m.end(ctx)
	return nil
}

// Flush terminates the coded stream with the four bytes of the low
// bound. The decoder reads as many bytes as the encoder writes, so it
// reads these four bytes too.
func (e *Encoder) Flush() error {
	return e.re.flush()
}
