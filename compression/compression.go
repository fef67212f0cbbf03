package compression

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

var (
	ErrShortStream    = errors.New("stream ended before the expected size")
	ErrTrailingData   = errors.New("stream holds more data than expected")
	ErrNegativeLength = errors.New("negative expected size")
)

// Decompressor inflates the concatenated image data into a buffer of
// exactly expectedSize bytes.
type Decompressor interface {
	Decompress(compressed []byte, expectedSize int) ([]byte, error)
}

// Zlib handles the zlib format (RFC 1950 around RFC 1951 DEFLATE). The
// Adler-32 trailer is verified.
type Zlib struct{}

func (Zlib) Decompress(compressed []byte, expectedSize int) ([]byte, error) {
	return InflateData(compressed, expectedSize)
}

func InflateData(compressedData []byte, expectedSize int) ([]byte, error) {
	if expectedSize < 0 {
		return nil, ErrNegativeLength
	}
	reader := bytes.NewReader(compressedData)

	zlibReader, err := zlib.NewReader(reader)
	if err != nil {
		return nil, err
	}
	defer zlibReader.Close()

	decompressedData := make([]byte, expectedSize)
	n, err := io.ReadFull(zlibReader, decompressedData)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: got %d of %d bytes", ErrShortStream, n, expectedSize)
		}
		return nil, err
	}

	// Drain to EOF so the checksum gets checked, and make sure nothing is left.
	var probe [1]byte
	extra, err := io.ReadFull(zlibReader, probe[:])
	if extra > 0 {
		return nil, ErrTrailingData
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return decompressedData, nil
}
