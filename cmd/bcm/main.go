// Command bcm compresses and decompresses files in the BCM format.
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
)

const usageText = `BCM - A BWT-based file compressor

Usage: bcm [options] infile [outfile]

Options:
  -b#[k] Set block size to # MiB or KiB (default is 20 MiB)
  -d     Decompress
  -f     Force overwrite of output file
`

func usage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	flags := flag.NewFlagSet("bcm", flag.ContinueOnError)
	flags.Usage = usage
	blockSize := flags.StringP("block-size", "b", "20",
		"block size in MiB, or in KiB with a trailing k")
	decompress := flags.BoolP("decompress", "d", false, "decompress")
	force := flags.BoolP("force", "f", false,
		"force overwrite of output file")
	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "bcm:", err)
		usage()
		os.Exit(1)
	}
	if flags.NArg() < 1 || flags.NArg() > 2 {
		usage()
		os.Exit(1)
	}

	opts := &options{decompress: *decompress, force: *force}
	var err error
	if opts.blockSize, err = parseBlockSize(*blockSize); err != nil {
		fmt.Fprintln(os.Stderr, "bcm:", err)
		os.Exit(1)
	}
	if err = run(flags.Args(), opts); err != nil {
		fmt.Fprintln(os.Stderr, "bcm:", err)
		os.Exit(1)
	}
}
