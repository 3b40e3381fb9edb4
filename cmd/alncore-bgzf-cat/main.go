package main

// See doc.go for documentation
import (
	"flag"
	"os"
	"runtime"

	"github.com/covariant-bio/alncore/encoding/bgzf"
	"github.com/grailbio/base/grail"
)

var (
	workers        = flag.Int("workers", 0, "Decompressor worker pool size (default: NumCPU)")
	bufferCapacity = flag.Int("buffer-capacity", 4<<20, "Bytes of uncompressed data fetched per ReadMore call")
)

func main() {
	shutdown := grail.Init()
	defer shutdown()

	n := *workers
	if n <= 0 {
		n = runtime.NumCPU()
	}

	pr := bgzf.Open(os.Stdin, n)
	dest := bgzf.NewBuffer(*bufferCapacity)
	for {
		progressed, err := pr.ReadMore(dest)
		if err != nil {
			panic(err.Error())
		}
		if _, err := os.Stdout.Write(dest.Bytes()); err != nil {
			panic(err.Error())
		}
		if !progressed {
			break
		}
		dest.Reset()
	}
}
