package pngDecoder

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrIO              = errors.New("error opening file")

	// ErrFormat covers framing problems: the signature, chunk boundaries
	// and scanline filter bytes.
	ErrFormat         = errors.New("bad PNG")
	ErrBadSignature   = fmt.Errorf("%w: bad signature", ErrFormat)
	ErrMalformedChunk = fmt.Errorf("%w: malformed chunk", ErrFormat)
	ErrBadFilter      = fmt.Errorf("%w: unknown filter type", ErrFormat)

	ErrMissingCriticalChunk = errors.New("missing critical chunk")
	ErrMissingHeader        = fmt.Errorf("%w IHDR", ErrMissingCriticalChunk)
	ErrMissingImageData     = fmt.Errorf("%w IDAT", ErrMissingCriticalChunk)
	ErrMissingEnd           = fmt.Errorf("%w IEND", ErrMissingCriticalChunk)
	ErrMissingPalette       = errors.New("missing critical PLTE chunk")

	ErrInvalidHeader  = errors.New("invalid IHDR")
	ErrInvalidPalette = errors.New("invalid PLTE")
	ErrIntegrity      = errors.New("CRC different from file CRC")
	ErrDecompression  = errors.New("zlib inflate error")

	ErrWrongAdapter = errors.New("raster bit depth does not match the requested RGBA format")
)

// resultStrings is ordered from most to least specific so wrapped kinds
// report their own text first.
var resultStrings = []struct {
	err error
	str string
}{
	{ErrInvalidArgument, "Invalid argument"},
	{ErrIO, "Error opening file"},
	{ErrBadSignature, "Bad PNG signature"},
	{ErrMalformedChunk, "Malformed chunk"},
	{ErrBadFilter, "Unknown scanline filter"},
	{ErrFormat, "Bad PNG"},
	{ErrIntegrity, "CRC different from file CRC"},
	{ErrMissingHeader, "Missing critical IHDR chunk"},
	{ErrMissingPalette, "Missing critical PLTE chunk"},
	{ErrMissingImageData, "Missing critical IDAT chunk"},
	{ErrMissingEnd, "Missing critical IEND chunk"},
	{ErrMissingCriticalChunk, "Missing critical chunk"},
	{ErrInvalidHeader, "Invalid IHDR"},
	{ErrInvalidPalette, "Invalid PLTE"},
	{ErrDecompression, "ZLib deflate error"},
	{ErrWrongAdapter, "Wrong RGBA adapter for bit depth"},
}

// StrError returns a short human readable description of a decode result.
func StrError(err error) string {
	if err == nil {
		return "Consistent PNG"
	}
	for _, r := range resultStrings {
		if errors.Is(err, r.err) {
			return r.str
		}
	}
	return err.Error()
}
