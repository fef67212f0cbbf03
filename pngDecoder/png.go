package pngDecoder

import (
	"fmt"
	"image"

	"pngdec/compression"
	"pngdec/config"
	"pngdec/logging"
	"pngdec/oops"
	"pngdec/utils"
)

// PNG is a decoded image together with the chunks it came from. It owns
// every buffer it references until Free is called.
type PNG struct {
	chunks []*Chunk
	ihdr   *IHDR
	plte   Palette
	trns   Transparency
	raster Raster

	release func()
}

type Options struct {
	// Reconstruct Adam7 passes concurrently.
	Parallel     bool
	Decompressor compression.Decompressor
}

type Option func(*Options)

func WithParallelPasses(parallel bool) Option {
	return func(o *Options) { o.Parallel = parallel }
}

func WithDecompressor(d compression.Decompressor) Option {
	return func(o *Options) { o.Decompressor = d }
}

func defaultOptions() Options {
	return Options{
		Parallel:     config.Config.ParallelPasses,
		Decompressor: compression.Zlib{},
	}
}

// maxDeflateRatio bounds how far DEFLATE can expand its input. A header
// asking for more than this is rejected before anything is allocated.
const maxDeflateRatio = 1032

// Decode parses a complete PNG held in memory. On failure no partial
// result is returned.
func Decode(data []byte, opts ...Option) (*PNG, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	pd, err := NewDecoder(data)
	if err != nil {
		return nil, err
	}
	return pd.Decode(o)
}

// OpenPNG reads and decodes the named file. The file stays mapped until
// Free.
func OpenPNG(name string, opts ...Option) (*PNG, error) {
	if name == "" {
		return nil, oops.New(ErrInvalidArgument, "empty file name")
	}
	data, release, err := utils.ReadFile(name)
	if err != nil {
		return nil, oops.New(fmt.Errorf("%w: %w", ErrIO, err), "reading %s", name)
	}
	png, err := Decode(data, opts...)
	if err != nil {
		release()
		return nil, err
	}
	png.release = release
	return png, nil
}

func (pd *PngDecoder) Decode(o Options) (*PNG, error) {
	if o.Decompressor == nil {
		o.Decompressor = compression.Zlib{}
	}

	chunks, err := pd.Chunks()
	if err != nil {
		return nil, err
	}
	ihdr, err := checkConsistency(chunks)
	if err != nil {
		return nil, err
	}
	plte, err := resolvePalette(chunks, ihdr)
	if err != nil {
		return nil, err
	}
	trns := resolveTransparency(chunks, ihdr, plte)

	logging.Debug().
		Uint32("width", ihdr.Width).
		Uint32("height", ihdr.Height).
		Uint8("bit_depth", ihdr.Bit_depth).
		Stringer("color_type", ihdr.colorType()).
		Bool("interlaced", ihdr.Interlaced()).
		Int("chunks", len(chunks)).
		Msg("header")

	layouts, decodedSize, err := layoutPasses(ihdr)
	if err != nil {
		return nil, err
	}
	decoded, err := inflateIDAT(chunks, decodedSize, o.Decompressor)
	if err != nil {
		return nil, err
	}

	assembler := newPixelAssembler(ihdr, plte, trns)
	err = newScanlineReconstructor(ihdr, layouts, assembler).reconstruct(decoded, o.Parallel)
	if err != nil {
		return nil, err
	}

	return &PNG{
		chunks: chunks,
		ihdr:   ihdr,
		plte:   plte,
		trns:   trns,
		raster: assembler.raster,
	}, nil
}

// checkConsistency enforces the chunk layout and decodes the header.
func checkConsistency(chunks []*Chunk) (*IHDR, error) {
	if len(chunks) == 0 || chunks[0].TypeString() != typeIHDR {
		return nil, oops.New(ErrMissingHeader, "first chunk must be IHDR")
	}
	if chunks[len(chunks)-1].TypeString() != typeIEND {
		return nil, oops.New(ErrMissingEnd, "last chunk is %q", chunks[len(chunks)-1].TypeString())
	}
	for i, c := range chunks {
		if !c.CRCValid() {
			return nil, oops.New(ErrIntegrity, "chunk %d (%s): stored %08x, computed %08x", i, c.TypeString(), c.CRC, c.ComputedCRC)
		}
	}
	if findChunk(chunks, typeIDAT) == nil {
		return nil, oops.New(ErrMissingImageData, "no IDAT chunk")
	}

	ihdr, err := ParseIHDR(chunks[0].Data)
	if err != nil {
		return nil, err
	}
	if err := ihdr.validate(); err != nil {
		return nil, err
	}
	return ihdr, nil
}

// concatenateIDAT joins every IDAT payload in file order.
func concatenateIDAT(chunks []*Chunk) []byte {
	size := 0
	for _, c := range chunks {
		if c.TypeString() == typeIDAT {
			size += len(c.Data)
		}
	}
	compressed := make([]byte, 0, size)
	for _, c := range chunks {
		if c.TypeString() == typeIDAT {
			compressed = append(compressed, c.Data...)
		}
	}
	return compressed
}

func inflateIDAT(chunks []*Chunk, decodedSize int, d compression.Decompressor) ([]byte, error) {
	compressed := concatenateIDAT(chunks)
	if decodedSize/maxDeflateRatio > len(compressed) {
		return nil, oops.New(ErrDecompression, "%d compressed bytes cannot hold %d decoded bytes", len(compressed), decodedSize)
	}
	decoded, err := d.Decompress(compressed, decodedSize)
	if err != nil {
		return nil, oops.New(fmt.Errorf("%w: %w", ErrDecompression, err), "inflating %d bytes of IDAT", len(compressed))
	}
	if len(decoded) != decodedSize {
		return nil, oops.New(ErrDecompression, "inflated %d bytes, want %d", len(decoded), decodedSize)
	}
	return decoded, nil
}

// Free drops every buffer the PNG holds and unmaps its input file, if any.
// It is safe to call more than once and on a nil *PNG.
func (png *PNG) Free() {
	if png == nil {
		return
	}
	png.raster = nil
	png.plte = nil
	png.trns = nil
	png.chunks = nil
	png.ihdr = nil
	if png.release != nil {
		png.release()
		png.release = nil
	}
}

func (png *PNG) RasterType() RasterType {
	if png == nil || png.raster == nil {
		return RasterInvalid
	}
	return png.raster.Type()
}

// Raster returns the typed pixels; switch on it or on RasterType to reach
// the concrete *PixelRaster.
func (png *PNG) Raster() Raster {
	if png == nil {
		return nil
	}
	return png.raster
}

func (png *PNG) Depth() uint8 {
	if png == nil || png.ihdr == nil {
		return 0
	}
	return png.ihdr.Bit_depth
}

func (png *PNG) Width() uint32 {
	if png == nil || png.ihdr == nil {
		return 0
	}
	return png.ihdr.Width
}

func (png *PNG) Height() uint32 {
	if png == nil || png.ihdr == nil {
		return 0
	}
	return png.ihdr.Height
}

func (png *PNG) Header() *IHDR {
	if png == nil || png.ihdr == nil {
		return nil
	}
	h := *png.ihdr
	return &h
}

// Chunks returns the chunk list. Chunk data may point into the mapped input
// file and must not be used after Free.
func (png *PNG) Chunks() []*Chunk {
	if png == nil {
		return nil
	}
	return png.chunks
}

func (png *PNG) Palette() Palette {
	if png == nil {
		return nil
	}
	return png.plte
}

func (png *PNG) Transparency() Transparency {
	if png == nil {
		return nil
	}
	return png.trns
}

// AsRGBA8 converts images of bit depth 8 or less to straight-alpha RGBA8.
func (png *PNG) AsRGBA8() (*PixelRaster[RGBA8], error) {
	if png == nil || png.raster == nil {
		return nil, oops.New(ErrInvalidArgument, "no raster")
	}
	out, ok := toRGBA8(png.raster)
	if !ok {
		return nil, oops.New(ErrWrongAdapter, "bit depth %d", png.Depth())
	}
	return out, nil
}

// AsRGBA16 converts 16-bit images to straight-alpha RGBA16.
func (png *PNG) AsRGBA16() (*PixelRaster[RGBA16], error) {
	if png == nil || png.raster == nil {
		return nil, oops.New(ErrInvalidArgument, "no raster")
	}
	out, ok := toRGBA16(png.raster)
	if !ok {
		return nil, oops.New(ErrWrongAdapter, "bit depth %d", png.Depth())
	}
	return out, nil
}

// Image returns the pixels as an *image.NRGBA or, for 16-bit images, an
// *image.NRGBA64.
func (png *PNG) Image() (image.Image, error) {
	if png == nil || png.raster == nil {
		return nil, oops.New(ErrInvalidArgument, "no raster")
	}
	if png.raster.Type().wide() {
		rgba, err := png.AsRGBA16()
		if err != nil {
			return nil, err
		}
		return rgba.NRGBA64(), nil
	}
	rgba, err := png.AsRGBA8()
	if err != nil {
		return nil, err
	}
	return rgba.NRGBA(), nil
}
