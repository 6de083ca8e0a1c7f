package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dront78/bcm"
)

// options collects the command line settings.
type options struct {
	blockSize  int
	decompress bool
	force      bool
}

// bcmExt is the file name extension of compressed files.
const bcmExt = ".bcm"

// parseBlockSize converts a -b argument to bytes. A bare number selects
// MiB, a trailing k selects KiB.
func parseBlockSize(s string) (int, error) {
	shift := uint(20)
	if strings.HasSuffix(s, "k") {
		shift = 10
		s = s[:len(s)-1]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("block size %q is not a number", s)
	}
	if n < 1 || n > (1<<31-1)>>shift {
		return 0, errors.New("block size is out of range")
	}
	return n << shift, nil
}

// targetName derives the output file name from the input name when no
// explicit name is given on the command line.
func targetName(path string, opts *options) string {
	if !opts.decompress {
		return path + bcmExt
	}
	if strings.HasSuffix(path, bcmExt) && len(path) > len(bcmExt) {
		return path[:len(path)-len(bcmExt)]
	}
	return path + ".out"
}

// run executes the compression or decompression of a single file.
func run(args []string, opts *options) error {
	inName := args[0]
	var outName string
	if len(args) > 1 {
		outName = args[1]
	} else {
		outName = targetName(inName, opts)
	}
	if outName == inName {
		if opts.decompress {
			return fmt.Errorf("%s: cannot decompress onto itself",
				inName)
		}
		return fmt.Errorf("%s: cannot compress onto itself", inName)
	}

	in, err := os.Open(inName)
	if err != nil {
		return err
	}
	defer in.Close()

	if !opts.force {
		if _, err := os.Stat(outName); err == nil {
			return fmt.Errorf("%s already exists", outName)
		}
	}
	out, err := os.Create(outName)
	if err != nil {
		return err
	}

	if opts.decompress {
		err = decompressFile(in, out)
	} else {
		err = compressFile(in, out, opts.blockSize)
	}
	if err != nil {
		out.Close()
		return err
	}
	if err = out.Close(); err != nil {
		return err
	}

	// Report the file sizes on stderr.
	if fi, err := os.Stat(inName); err == nil {
		if fo, err := os.Stat(outName); err == nil {
			fmt.Fprintf(os.Stderr, "%s: %d -> %d\n",
				inName, fi.Size(), fo.Size())
		}
	}
	return nil
}

func compressFile(in io.Reader, out io.Writer, blockSize int) error {
	w, err := bcm.NewWriterConfig(out,
		bcm.WriterConfig{BlockSize: blockSize})
	if err != nil {
		return err
	}
	if _, err = io.Copy(w, in); err != nil {
		return err
	}
	return w.Close()
}

func decompressFile(in io.Reader, out io.Writer) error {
	r, err := bcm.NewReader(in)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(out)
	if _, err = io.Copy(bw, r); err != nil {
		return err
	}
	return bw.Flush()
}
