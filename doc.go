// Package bcm supports the compression and decompression of BCM files.
//
// BCM is a block compressor: each block of input is permuted by the
// Burrows-Wheeler transform and coded by an adaptive binary range coder
// whose bit probabilities come from a context-mixing model. The model
// state spans the whole stream, so blocks cannot be decoded out of
// order.
package bcm
