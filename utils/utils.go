package utils

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

func BytesToLenght(data []byte) uint32 {
	return binary.BigEndian.Uint32(data)
}

// BytesToUint16 joins a big-endian 16-bit sample.
func BytesToUint16(data []byte) uint16 {
	return binary.BigEndian.Uint16(data)
}

// PPMFile is a binary (P6) pixmap being written row by row.
type PPMFile struct {
	file *os.File
	w    *bufio.Writer
}

// CreatePPM writes the P6 header. maxval 255 takes one byte per sample,
// 65535 takes two, big-endian.
func CreatePPM(name string, width, height, maxval int) (*PPMFile, error) {
	file, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	w := bufio.NewWriter(file)
	_, err = fmt.Fprintf(w, "P6\n%d %d\n%d\n", width, height, maxval)
	if err != nil {
		file.Close()
		return nil, err
	}

	return &PPMFile{file: file, w: w}, nil
}

func (p *PPMFile) Write(b []byte) (int, error) {
	return p.w.Write(b)
}

func (p *PPMFile) Close() error {
	if err := p.w.Flush(); err != nil {
		p.file.Close()
		return err
	}
	return p.file.Close()
}

var _ io.WriteCloser = (*PPMFile)(nil)
