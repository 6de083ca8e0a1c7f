package bcm

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/dront78/bcm/bwt"
	"github.com/dront78/bcm/cm"
)

// WriterConfig describes the parameters of a Writer.
type WriterConfig struct {
	// BlockSize defines the number of bytes transformed and coded as
	// one BWT block (default 20 MiB). Larger blocks compress better
	// and cost more memory; the choice doesn't affect the decoded
	// output, only its compressed size.
	BlockSize int
}

// ApplyDefaults replaces zero values by default values.
func (c *WriterConfig) ApplyDefaults() {
	if c.BlockSize == 0 {
		c.BlockSize = DefaultBlockSize
	}
}

// Verify checks the configuration for errors. Zero values are replaced
// by default values first.
func (c *WriterConfig) Verify() error {
	if c == nil {
		return errors.New("bcm: writer configuration is nil")
	}
	c.ApplyDefaults()
	if c.BlockSize < 1 {
		return errors.New("bcm: block size must be at least one byte")
	}
	if c.BlockSize > maxBlockSize {
		return fmt.Errorf("bcm: block size must not exceed %d bytes",
			maxBlockSize)
	}
	return nil
}

// Writer compresses a byte stream into the BCM format. It buffers one
// block at a time; Close must be called to write out the last block and
// the stream terminator.
type Writer struct {
	bw     *bufio.Writer
	enc    *cm.Encoder
	t      bwt.Transformer
	buf    []byte
	n      int
	err    error
	closed bool
}

// NewWriter creates a writer compressing data to w with default
// parameters.
func NewWriter(w io.Writer) (*Writer, error) {
	return NewWriterConfig(w, WriterConfig{})
}

// NewWriterConfig creates a writer compressing data to w. The stream
// header is written immediately. The writer buffers its output; the
// underlying writer sees data in larger chunks and only Close makes the
// stream complete.
func NewWriterConfig(w io.Writer, cfg WriterConfig) (*Writer, error) {
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(headerMagic); err != nil {
		return nil, err
	}
	return &Writer{
		bw:  bw,
		enc: cm.NewEncoder(bw),
		buf: make([]byte, cfg.BlockSize),
	}, nil
}

// Write compresses the data in p. Blocks are coded as soon as they are
// complete; the remainder stays buffered until the next Write or Close.
func (w *Writer) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	if w.closed {
		return 0, errWriterClosed
	}
	for len(p) > 0 {
		k := copy(w.buf[w.n:], p)
		w.n += k
		n += k
		p = p[k:]
		if w.n == len(w.buf) {
			if err = w.writeBlock(w.buf); err != nil {
				w.err = err
				return n, err
			}
			w.n = 0
		}
	}
	return n, nil
}

// writeBlock transforms data in place and codes the block header and
// payload.
func (w *Writer) writeBlock(data []byte) error {
	idx := w.t.Forward(data)
	if idx < 1 {
		return fmt.Errorf(
			"bcm: Burrows-Wheeler transform of %d-byte block failed",
			len(data))
	}
	if err := w.encodeUint32(uint32(len(data))); err != nil {
		return err
	}
	if err := w.encodeUint32(uint32(idx)); err != nil {
		return err
	}
	for _, c := range data {
		if err := w.enc.Encode(c); err != nil {
			return err
		}
	}
	return nil
}

// encodeUint32 codes a 32-bit value through the model, high byte first.
func (w *Writer) encodeUint32(u uint32) error {
	for s := 24; s >= 0; s -= 8 {
		if err := w.enc.Encode(byte(u >> s)); err != nil {
			return err
		}
	}
	return nil
}

// Close codes the buffered block, the terminating empty block and the
// range-coder tail, and flushes the output buffer. It doesn't close the
// underlying writer.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}
	if w.closed {
		return errWriterClosed
	}
	w.closed = true
	if w.n > 0 {
		if err := w.writeBlock(w.buf[:w.n]); err != nil {
			w.err = err
			return err
		}
		w.n = 0
	}
	if err := w.encodeUint32(0); err != nil {
		w.err = err
		return err
	}
	if err := w.enc.Flush(); err != nil {
		w.err = err
		return err
	}
	if err := w.bw.Flush(); err != nil {
		w.err = err
		return err
	}
	return nil
}
