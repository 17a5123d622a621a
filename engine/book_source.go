package engine

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/dsnet/compress/bzip2"
	"github.com/inhies/go-bytesize"
	"github.com/klauspost/compress/zstd"
)

// countingReader tracks how many bytes have passed through it.
type countingReader struct {
	reader    io.Reader
	bytesRead bytesize.ByteSize
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.bytesRead += bytesize.ByteSize(uint64(n))
	return n, err
}

// LoadOpeningBook reads an opening book file. Files ending in .zst or .bz2 are
// decompressed; anything else is read as plain CSV. The file and decoded sizes
// are logged.
func LoadOpeningBook(path string, logger *log.Logger) (*OpeningNode, error) {
	if logger == nil {
		logger = discardLogger()
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open opening book: %w", err)
	}
	defer file.Close()

	raw := &countingReader{reader: file}
	var decoded io.Reader = raw
	switch filepath.Ext(path) {
	case ".zst":
		zr, err := zstd.NewReader(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: zst: %v", ErrInvalidBook, err)
		}
		defer zr.Close()
		decoded = zr
	case ".bz2":
		br, err := bzip2.NewReader(raw, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: bz2: %v", ErrInvalidBook, err)
		}
		defer br.Close()
		decoded = br
	}

	out := &countingReader{reader: decoded}
	tree, err := ParseOpeningBook(out)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Printf("info string opening book %s: read %s, decoded %s\n",
		filepath.Base(path), raw.bytesRead, out.bytesRead)
	return tree, nil
}
