package pngDecoder

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnfilterRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, bpp := range []int{1, 2, 3, 4, 6, 8} {
		for ft := NONE; ft <= PAETH; ft++ {
			prev := make([]byte, bpp*7)
			cur := make([]byte, bpp*7)
			rng.Read(prev)
			rng.Read(cur)

			filtered := filterRow(ft, cur, prev, bpp)
			require.NoError(t, unfilterRow(ft, filtered, prev, bpp))
			assert.Equal(t, cur, filtered, "filter %d bpp %d", ft, bpp)
		}
	}
}

func TestUnfilterFirstRow(t *testing.T) {
	// With nothing above, Up is a no-op and Paeth degrades to Left.
	zero := make([]byte, 4)

	up := []byte{1, 2, 3, 4}
	require.NoError(t, unfilterRow(UP, up, zero, 1))
	assert.Equal(t, []byte{1, 2, 3, 4}, up)

	paeth := []byte{1, 2, 3, 4}
	require.NoError(t, unfilterRow(PAETH, paeth, zero, 1))
	assert.Equal(t, []byte{1, 3, 6, 10}, paeth)

	avg := []byte{10, 10, 10, 10}
	require.NoError(t, unfilterRow(AVG, avg, zero, 2))
	assert.Equal(t, []byte{10, 10, 15, 15}, avg)
}

func TestUnfilterWraps(t *testing.T) {
	row := []byte{200, 100}
	require.NoError(t, unfilterRow(LEFT, row, make([]byte, 2), 1))
	assert.Equal(t, []byte{200, 44}, row)
}

func TestUnfilterBadType(t *testing.T) {
	row := []byte{1, 2, 3}
	err := unfilterRow(5, row, make([]byte, 3), 1)
	assert.ErrorIs(t, err, ErrBadFilter)
	assert.ErrorIs(t, err, ErrFormat)
}

// Grayscale 8-bit rows filtered with type 0 come back byte for byte.
func TestNoneFilterReproducesScanlines(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	ti := randomTestImage(rng, 13, 7, Grayscale, 8, false)
	ti.filter = nil

	stream := ti.scanlines()
	original := bytes.Clone(stream)
	layouts, size, err := layoutPasses(&IHDR{Width: 13, Height: 7, Bit_depth: 8})
	require.NoError(t, err)
	require.Equal(t, len(stream), size)

	asm := newPixelAssembler(&IHDR{Width: 13, Height: 7, Bit_depth: 8}, nil, nil)
	require.NoError(t, newScanlineReconstructor(&IHDR{Width: 13, Height: 7, Bit_depth: 8}, layouts, asm).reconstruct(stream, false))

	gray := asm.raster.(*PixelRaster[uint8])
	var refiltered []byte
	for y := 0; y < 7; y++ {
		refiltered = append(refiltered, byte(NONE))
		refiltered = append(refiltered, gray.Pix[y*13:(y+1)*13]...)
	}
	assert.Equal(t, original, refiltered)
}
