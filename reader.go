package bcm

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/dront78/bcm/bwt"
	"github.com/dront78/bcm/cm"
)

// ReaderConfig describes the parameters of a Reader.
type ReaderConfig struct {
	// MaxBlockSize limits the block size the reader accepts. The
	// stream states its own block size in the first block header;
	// since the reader allocates that much memory, a limit protects
	// against forged headers. The default accepts every size the
	// format can represent.
	MaxBlockSize int
}

// ApplyDefaults replaces zero values by default values.
func (c *ReaderConfig) ApplyDefaults() {
	if c.MaxBlockSize == 0 {
		c.MaxBlockSize = maxBlockSize
	}
}

// Verify checks the configuration for errors. Zero values are replaced
// by default values first.
func (c *ReaderConfig) Verify() error {
	if c == nil {
		return errors.New("bcm: reader configuration is nil")
	}
	c.ApplyDefaults()
	if !(1 <= c.MaxBlockSize && c.MaxBlockSize <= maxBlockSize) {
		return fmt.Errorf("bcm: MaxBlockSize out of range [1, %d]",
			maxBlockSize)
	}
	return nil
}

// Reader decompresses a BCM stream.
type Reader struct {
	dec          *cm.Decoder
	t            bwt.Transformer
	buf          []byte
	out          []byte
	bsize        int
	maxBlockSize int
	err          error
}

// NewReader creates a reader decompressing the BCM stream r with
// default parameters.
func NewReader(r io.Reader) (*Reader, error) {
	return NewReaderConfig(r, ReaderConfig{})
}

// NewReaderConfig creates a reader decompressing the BCM stream r. The
// stream header is read and verified immediately.
func NewReaderConfig(r io.Reader, cfg ReaderConfig) (*Reader, error) {
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	br := bufio.NewReader(r)
	p := make([]byte, headerLen)
	if _, err := io.ReadFull(br, p); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			err = errUnexpectedEOF
		}
		return nil, err
	}
	if !bytes.Equal(p, headerMagic) {
		return nil, ErrHeader
	}
	dec := cm.NewDecoder(br)
	if err := dec.Init(); err != nil {
		return nil, noEOF(err)
	}
	return &Reader{dec: dec, maxBlockSize: cfg.MaxBlockSize}, nil
}

// noEOF converts io.EOF to errUnexpectedEOF. Inside the coded stream a
// clean end of file is always premature.
func noEOF(err error) error {
	if err == io.EOF {
		return errUnexpectedEOF
	}
	return err
}

// Read decompresses data into p.
func (r *Reader) Read(p []byte) (n int, err error) {
	if r.err != nil {
		return 0, r.err
	}
	for n < len(p) {
		if len(r.out) == 0 {
			if err = r.nextBlock(); err != nil {
				r.err = err
				if n > 0 && err == io.EOF {
					return n, nil
				}
				return n, err
			}
		}
		k := copy(p[n:], r.out)
		r.out = r.out[k:]
		n += k
	}
	return n, nil
}

// nextBlock decodes one block header and payload and applies the
// inverse transform. It returns io.EOF for the terminating empty block.
// The terminator's four zero bytes pass through the shared model like
// any other bytes; the encoder's model saw them too.
func (r *Reader) nextBlock() error {
	n, err := r.decodeUint32()
	if err != nil {
		return noEOF(err)
	}
	if n == 0 {
		return io.EOF
	}
	if r.buf == nil {
		// The first block determines the block size of the stream.
		if n > uint32(r.maxBlockSize) {
			return ErrCorrupt
		}
		r.bsize = int(n)
		r.buf = make([]byte, r.bsize)
	}
	if n > uint32(r.bsize) {
		return ErrCorrupt
	}
	idx, err := r.decodeUint32()
	if err != nil {
		return noEOF(err)
	}
	if idx < 1 || idx > n {
		return ErrCorrupt
	}
	data := r.buf[:n]
	for i := range data {
		c, err := r.dec.Decode()
		if err != nil {
			return noEOF(err)
		}
		data[i] = c
	}
	k := r.t.Inverse(data, int(idx))
	r.out = data[:k]
	return nil
}

// decodeUint32 decodes a 32-bit value through the model, high byte
// first.
func (r *Reader) decodeUint32() (u uint32, err error) {
	for i := 0; i < 4; i++ {
		c, err := r.dec.Decode()
		if err != nil {
			return 0, err
		}
		u = u<<8 | uint32(c)
	}
	return u, nil
}
