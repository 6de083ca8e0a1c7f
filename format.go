package bcm

import "errors"

// headerMagic stores the magic bytes identifying a BCM stream.
var headerMagic = []byte{'B', 'C', 'M', '1'}

// headerLen provides the length of the stream header.
const headerLen = 4

// maxBlockSize is the largest block size the format can represent. The
// block length travels in a 32-bit field that must remain positive.
const maxBlockSize = 1<<31 - 1

// DefaultBlockSize is the block size used when the configuration
// doesn't provide one.
const DefaultBlockSize = 20 << 20

// ErrHeader indicates that the stream doesn't start with the BCM magic
// bytes.
var ErrHeader = errors.New("bcm: invalid header magic")

// ErrCorrupt indicates that a decoded block header is implausible: a
// block length outside [1, block size] or a primary index outside
// [1, block length].
var ErrCorrupt = errors.New("bcm: data is corrupt")

// errUnexpectedEOF indicates that the coded stream ended early.
var errUnexpectedEOF = errors.New("bcm: unexpected end of file")

// errWriterClosed indicates that the writer has already been closed.
var errWriterClosed = errors.New("bcm: writer is closed")
