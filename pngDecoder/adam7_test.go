package pngDecoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdam7PassGeometry(t *testing.T) {
	// 11x9, pass 3 starts at (0,4) stepping (4,8)
	p := adam7Passes[2]
	cols, rows := p.dims(11, 9)
	assert.Equal(t, 3, cols)
	assert.Equal(t, 1, rows)

	x, y := p.toRaster(2, 0)
	assert.Equal(t, 8, x)
	assert.Equal(t, 4, y)
	assert.Equal(t, 52, y*11+x)
}

func TestAdam7CoversEveryPixelOnce(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {2, 3}, {7, 7}, {8, 8}, {11, 9}, {33, 17}} {
		w, h := size[0], size[1]
		seen := make([]int, w*h)
		for _, p := range adam7Passes {
			cols, rows := p.dims(w, h)
			for row := 0; row < rows; row++ {
				for col := 0; col < cols; col++ {
					x, y := p.toRaster(col, row)
					require.Less(t, x, w)
					require.Less(t, y, h)
					seen[y*w+x]++
				}
			}
		}
		for i, n := range seen {
			assert.Equal(t, 1, n, "%dx%d pixel %d", w, h, i)
		}
	}
}

func TestLayoutPasses(t *testing.T) {
	t.Run("non-interlaced", func(t *testing.T) {
		// 5 pixels of 4 bits = 20 bits -> 3 bytes, plus filter byte, 2 rows
		ihdr := &IHDR{Width: 5, Height: 2, Bit_depth: 4, Color_type: byte(Grayscale)}
		layouts, size, err := layoutPasses(ihdr)
		require.NoError(t, err)
		assert.Equal(t, 8, size)
		require.Len(t, layouts, 1)
		assert.Equal(t, 3, layouts[0].stride)
		assert.Equal(t, 0, layouts[0].number)
	})
	t.Run("interlaced 1x1 has only pass 1", func(t *testing.T) {
		ihdr := &IHDR{Width: 1, Height: 1, Bit_depth: 8, Color_type: byte(TruecolorAlpha), Interlace_method: 1}
		layouts, size, err := layoutPasses(ihdr)
		require.NoError(t, err)
		require.Len(t, layouts, 1)
		assert.Equal(t, 1, layouts[0].number)
		assert.Equal(t, 5, size)
	})
	t.Run("interlaced 11x9 rgb8", func(t *testing.T) {
		ihdr := &IHDR{Width: 11, Height: 9, Bit_depth: 8, Color_type: byte(Truecolor), Interlace_method: 1}
		layouts, size, err := layoutPasses(ihdr)
		require.NoError(t, err)
		require.Len(t, layouts, 7)

		want := 0
		offset := 0
		for i, l := range layouts {
			assert.Equal(t, i+1, l.number)
			assert.Equal(t, offset, l.offset)
			cols, rows := adam7Passes[i].dims(11, 9)
			want += rows * (1 + cols*3)
			offset += l.size()
		}
		assert.Equal(t, want, size)
	})
	t.Run("interlaced 1-bit sums padded passes", func(t *testing.T) {
		ihdr := &IHDR{Width: 3, Height: 3, Bit_depth: 1, Color_type: byte(Grayscale), Interlace_method: 1}
		layouts, size, err := layoutPasses(ihdr)
		require.NoError(t, err)
		// passes 1, 4, 5, 6, 7 are non-empty; every row fits in one byte
		nums := []int{}
		for _, l := range layouts {
			nums = append(nums, l.number)
			assert.Equal(t, 1, l.stride)
		}
		assert.Equal(t, []int{1, 4, 5, 6, 7}, nums)
		assert.Equal(t, 2*(1+1+1+1+1)+2, size)
	})
}
