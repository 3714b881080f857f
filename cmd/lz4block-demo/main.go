// Command lz4block-demo round-trips a file through the lz4block codec
// without any framing: it is a thin exerciser for the core package, not a
// general-purpose compressor CLI.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/lz4block/lz4block"
)

func main() {
	var (
		decompress = flag.Bool("d", false, "decompress instead of compress")
		origSize   = flag.Int("size", 0, "original size in bytes, required with -d")
	)
	flag.Parse()

	if flag.NArg() != 2 {
		log.Fatalf("usage: lz4block-demo [-d] [-size n] <in> <out>")
	}
	in, out := flag.Arg(0), flag.Arg(1)

	src, err := os.ReadFile(in)
	if err != nil {
		log.Fatalf("read %s: %v", in, err)
	}

	if *decompress {
		if *origSize <= 0 {
			log.Fatalf("-size must be given and positive when decompressing")
		}
		dst := make([]byte, *origSize)
		n, err := lz4block.DecompressSafe(src, dst)
		if err != nil {
			log.Fatalf("decompress: %v", err)
		}
		if err := os.WriteFile(out, dst[:n], 0o644); err != nil {
			log.Fatalf("write %s: %v", out, err)
		}
		return
	}

	dst := make([]byte, lz4block.CompressBound(len(src)))
	n, err := lz4block.CompressBlock(src, dst)
	if err != nil {
		log.Fatalf("compress: %v", err)
	}
	if err := os.WriteFile(out, dst[:n], 0o644); err != nil {
		log.Fatalf("write %s: %v", out, err)
	}
	log.Printf("%s: %d -> %d bytes (original size for decode: %d)", in, len(src), n, len(src))
}
