package cm

import "io"

// rangeDecoder is the counterpart of rangeEncoder. The code register
// tracks the coded value inside [low, high].
type rangeDecoder struct {
	r    io.ByteReader
	low  uint32
	high uint32
	code uint32
}

// newRangeDecoder creates a new range decoder.
func newRangeDecoder(r io.ByteReader) *rangeDecoder {
	return &rangeDecoder{r: r, high: 0xffffffff}
}

// init seeds the code register with the first four bytes of the stream.
func (d *rangeDecoder) init() error {
	for i := 0; i < 4; i++ {
		c, err := d.r.ReadByte()
		if err != nil {
			return err
		}
		d.code = d.code<<8 | uint32(c)
	}
	return nil
}

// decodeBit decodes a single bit coded with probability p out of
// [0, 1<<18). The interval updates mirror encodeBit exactly.
func (d *rangeDecoder) decodeBit(p uint32) (b bit, err error) {
	mid := d.low + uint32(uint64(d.high-d.low)*uint64(p)>>18)
	if d.code <= mid {
		b = 1
		d.high = mid
	} else {
		d.low = mid + 1
	}
	for d.low^d.high < 1<<24 {
		c, err := d.r.ReadByte()
		if err != nil {
			return 0, err
		}
		d.code = d.code<<8 | uint32(c)
		d.low <<= 8
		d.high = d.high<<8 | 0xff
	}
	return b, nil
}

// Decoder decompresses a byte stream produced by Encoder. Like the
// encoder it spans a whole session; the model is never reset between
// blocks.
type Decoder struct {
	rd *rangeDecoder
	m  *model
}

// NewDecoder creates a decoder reading range-coded bytes from r.
// Readers that don't implement io.ByteReader should be wrapped in a
// bufio.Reader.
func NewDecoder(r io.ByteReader) *Decoder {
	return &Decoder{rd: newRangeDecoder(r), m: newModel()}
}

// Init reads the first four bytes of the coded stream. It must be
// called once before the first Decode.
func (d *Decoder) Init() error {
	return d.rd.init()
}

// Decode decodes one byte.
func (d *Decoder) Decode() (c byte, err error) {
	f := d.m.begin()
	ctx := 1
	for ctx < 256 {
		q, j := d.m.predict(f, ctx)
		b, err := d.rd.decodeBit(q)
		if err != nil {
			return 0, err
		}
		d.m.update(f, ctx, j, b)
		ctx = ctx<<1 | int(b&1)
	}
	return d.m.end(ctx), nil
}
