package pngDecoder

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"math/rand"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/require"
)

// testImage describes a PNG to synthesise. Samples are row-major, one entry
// per channel: samples[(y*width+x)*channels+c].
type testImage struct {
	width, height int
	colorType     ColorType
	depth         int
	interlaced    bool
	samples       []uint16
	palette       []byte // raw PLTE payload
	trns          []byte
	filter        func(row int) FilterMethod
}

func randomTestImage(rng *rand.Rand, width, height int, ct ColorType, depth int, interlaced bool) testImage {
	ti := testImage{
		width:      width,
		height:     height,
		colorType:  ct,
		depth:      depth,
		interlaced: interlaced,
		filter:     func(row int) FilterMethod { return FilterMethod(row % 5) },
	}
	maxSample := 1<<depth - 1
	if ct == Indexed {
		entries := 1 << depth
		if entries > 200 {
			entries = 200
		}
		maxSample = entries - 1
		ti.palette = make([]byte, entries*3)
		rng.Read(ti.palette)
	}
	n := width * height * ct.channels()
	ti.samples = make([]uint16, n)
	for i := range ti.samples {
		ti.samples[i] = uint16(rng.Intn(maxSample + 1))
	}
	return ti
}

func (ti testImage) pixelBits() int {
	return ti.colorType.channels() * ti.depth
}

func (ti testImage) pixelSamples(x, y int) []uint16 {
	ch := ti.colorType.channels()
	i := (y*ti.width + x) * ch
	return ti.samples[i : i+ch]
}

func packSamples(samples []uint16, depth int) []byte {
	switch depth {
	case 16:
		out := make([]byte, len(samples)*2)
		for i, s := range samples {
			binary.BigEndian.PutUint16(out[i*2:], s)
		}
		return out
	case 8:
		out := make([]byte, len(samples))
		for i, s := range samples {
			out[i] = byte(s)
		}
		return out
	}
	out := make([]byte, (len(samples)*depth+7)/8)
	for i, s := range samples {
		bit := i * depth
		out[bit/8] |= byte(s) << (8 - depth - bit%8)
	}
	return out
}

// filterRow is the encoder side of unfilterRow; cur and prev are raw rows.
func filterRow(ft FilterMethod, cur, prev []byte, bpp int) []byte {
	out := make([]byte, len(cur))
	for i := range cur {
		var left, upLeft int
		if i >= bpp {
			left = int(cur[i-bpp])
			upLeft = int(prev[i-bpp])
		}
		up := int(prev[i])
		switch ft {
		case NONE:
			out[i] = cur[i]
		case LEFT:
			out[i] = cur[i] - byte(left)
		case UP:
			out[i] = cur[i] - byte(up)
		case AVG:
			out[i] = cur[i] - byte((left+up)/2)
		case PAETH:
			out[i] = cur[i] - byte(paethPredictor(left, up, upLeft))
		}
	}
	return out
}

// scanlines builds the decompressed stream: filter byte plus filtered row,
// pass by pass.
func (ti testImage) scanlines() []byte {
	passes := []pass{fullPass}
	if ti.interlaced {
		passes = adam7Passes[:]
	}
	bpp := (ti.pixelBits() + 7) / 8

	var out []byte
	for _, p := range passes {
		cols, rows := p.dims(ti.width, ti.height)
		if cols == 0 || rows == 0 {
			continue
		}
		prev := make([]byte, rowBytes(cols, ti.pixelBits()))
		for row := 0; row < rows; row++ {
			var samples []uint16
			for col := 0; col < cols; col++ {
				x, y := p.toRaster(col, row)
				samples = append(samples, ti.pixelSamples(x, y)...)
			}
			raw := packSamples(samples, ti.depth)
			ft := NONE
			if ti.filter != nil {
				ft = ti.filter(row)
			}
			out = append(out, byte(ft))
			out = append(out, filterRow(ft, raw, prev, bpp)...)
			prev = raw
		}
	}
	return out
}

func deflate(t testing.TB, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func chunkBytes(typ string, data []byte) []byte {
	out := make([]byte, 8, 12+len(data))
	binary.BigEndian.PutUint32(out, uint32(len(data)))
	copy(out[4:], typ)
	out = append(out, data...)
	return binary.BigEndian.AppendUint32(out, crc32.ChecksumIEEE(out[4:]))
}

func ihdrBytes(width, height uint32, depth byte, ct ColorType, interlace byte) []byte {
	data := make([]byte, 13)
	binary.BigEndian.PutUint32(data[0:], width)
	binary.BigEndian.PutUint32(data[4:], height)
	data[8] = depth
	data[9] = byte(ct)
	data[12] = interlace
	return data
}

func assemblePNG(chunks ...[]byte) []byte {
	out := append([]byte{}, pngHeader...)
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}

// encode writes the image as a PNG with its IDAT split in two.
func (ti testImage) encode(t testing.TB) []byte {
	t.Helper()
	var interlace byte
	if ti.interlaced {
		interlace = 1
	}
	chunks := [][]byte{
		chunkBytes(typeIHDR, ihdrBytes(uint32(ti.width), uint32(ti.height), byte(ti.depth), ti.colorType, interlace)),
	}
	if ti.palette != nil {
		chunks = append(chunks, chunkBytes(typePLTE, ti.palette))
	}
	if ti.trns != nil {
		chunks = append(chunks, chunkBytes(typetRNS, ti.trns))
	}
	compressed := deflate(t, ti.scanlines())
	half := len(compressed) / 2
	chunks = append(chunks,
		chunkBytes(typeIDAT, compressed[:half]),
		chunkBytes(typeIDAT, compressed[half:]),
		chunkBytes(typeIEND, nil),
	)
	return assemblePNG(chunks...)
}
