package pngDecoder

import (
	"bytes"
	"encoding/binary"

	"pngdec/oops"
)

type ColorType byte

const (
	Grayscale      ColorType = 0
	Truecolor      ColorType = 2
	Indexed        ColorType = 3
	GrayscaleAlpha ColorType = 4
	TruecolorAlpha ColorType = 6
)

func (c ColorType) String() string {
	switch c {
	case Grayscale:
		return "grayscale"
	case Truecolor:
		return "truecolor"
	case Indexed:
		return "indexed"
	case GrayscaleAlpha:
		return "grayscale+alpha"
	case TruecolorAlpha:
		return "truecolor+alpha"
	}
	return "unknown"
}

// channels is the number of samples per pixel.
func (c ColorType) channels() int {
	switch c {
	case Grayscale, Indexed:
		return 1
	case GrayscaleAlpha:
		return 2
	case Truecolor:
		return 3
	case TruecolorAlpha:
		return 4
	}
	return 0
}

// Permitted bit depths per color type.
var allowedDepths = map[ColorType][]byte{
	Grayscale:      {1, 2, 4, 8, 16},
	Truecolor:      {8, 16},
	Indexed:        {1, 2, 4, 8},
	GrayscaleAlpha: {8, 16},
	TruecolorAlpha: {8, 16},
}

const ihdrLength = 13

type IHDR struct {
	Width              uint32
	Height             uint32
	Bit_depth          byte
	Color_type         byte
	Compression_method byte
	Filter_method      byte
	Interlace_method   byte
}

func ParseIHDR(data []byte) (*IHDR, error) {
	if len(data) != ihdrLength {
		return nil, oops.New(ErrInvalidHeader, "IHDR is %d bytes, want %d", len(data), ihdrLength)
	}
	var ihdr IHDR

	reader := bytes.NewReader(data)
	err := binary.Read(reader, binary.BigEndian, &ihdr)
	if err != nil {
		return nil, oops.New(ErrInvalidHeader, "reading IHDR fields: %v", err)
	}
	return &ihdr, nil
}

func (ihdr *IHDR) colorType() ColorType {
	return ColorType(ihdr.Color_type)
}

func (ihdr *IHDR) Interlaced() bool {
	return ihdr.Interlace_method == 1
}

// pixelBits is the size of one pixel in bits.
func (ihdr *IHDR) pixelBits() int {
	return ihdr.colorType().channels() * int(ihdr.Bit_depth)
}

// pixelBytes is the filter distance: bytes per complete pixel, at least 1.
func (ihdr *IHDR) pixelBytes() int {
	return (ihdr.pixelBits() + 7) / 8
}

func (ihdr *IHDR) validate() error {
	if ihdr.Width == 0 || ihdr.Height == 0 {
		return oops.New(ErrInvalidHeader, "image is %dx%d", ihdr.Width, ihdr.Height)
	}
	if ihdr.Compression_method != 0 {
		return oops.New(ErrInvalidHeader, "unsupported compression method %d", ihdr.Compression_method)
	}
	if ihdr.Filter_method != 0 {
		return oops.New(ErrInvalidHeader, "unsupported filter method %d", ihdr.Filter_method)
	}
	if ihdr.Interlace_method > 1 {
		return oops.New(ErrInvalidHeader, "unsupported interlace method %d", ihdr.Interlace_method)
	}
	depths, ok := allowedDepths[ihdr.colorType()]
	if !ok {
		return oops.New(ErrInvalidHeader, "unknown color type %d", ihdr.Color_type)
	}
	if bytes.IndexByte(depths, ihdr.Bit_depth) < 0 {
		return oops.New(ErrInvalidHeader, "bit depth %d not allowed for %s", ihdr.Bit_depth, ihdr.colorType())
	}
	return nil
}
