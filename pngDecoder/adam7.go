package pngDecoder

import (
	"math"

	"pngdec/oops"
)

// pass describes a sub-image: its first pixel and the distance between
// pixels in the final raster.
type pass struct {
	x0, y0 int
	dx, dy int
}

var adam7Passes = [7]pass{
	{0, 0, 8, 8},
	{4, 0, 8, 8},
	{0, 4, 4, 8},
	{2, 0, 4, 4},
	{0, 2, 2, 4},
	{1, 0, 2, 2},
	{0, 1, 1, 2},
}

// A non-interlaced image is a single pass covering every pixel.
var fullPass = pass{0, 0, 1, 1}

// dims counts the columns and rows of the pass that land inside a
// width x height image.
func (p pass) dims(width, height int) (cols, rows int) {
	if p.x0 < width {
		cols = (width - p.x0 + p.dx - 1) / p.dx
	}
	if p.y0 < height {
		rows = (height - p.y0 + p.dy - 1) / p.dy
	}
	return cols, rows
}

func (p pass) toRaster(col, row int) (x, y int) {
	return p.x0 + col*p.dx, p.y0 + row*p.dy
}

// rowBytes is the packed width of cols pixels, without the filter byte.
func rowBytes(cols, pixelBits int) int {
	return (cols*pixelBits + 7) / 8
}

// passLayout places one non-empty pass inside the decompressed buffer.
type passLayout struct {
	pass
	number     int // 1..7, or 0 when not interlaced
	cols, rows int
	stride     int // bytes per row after the filter byte
	offset     int
}

func (l passLayout) size() int {
	return l.rows * (l.stride + 1)
}

// layoutPasses lists the non-empty passes of the image in stream order and
// the exact number of decompressed bytes they take.
func layoutPasses(ihdr *IHDR) ([]passLayout, int, error) {
	width, height := int(ihdr.Width), int(ihdr.Height)
	bits := ihdr.pixelBits()

	var layouts []passLayout
	add := func(p pass, number int, offset int) (int, error) {
		cols, rows := p.dims(width, height)
		if cols == 0 || rows == 0 {
			return offset, nil
		}
		l := passLayout{
			pass:   p,
			number: number,
			cols:   cols,
			rows:   rows,
			stride: rowBytes(cols, bits),
			offset: offset,
		}
		if l.stride+1 > (math.MaxInt-offset)/rows {
			return 0, oops.New(ErrInvalidHeader, "%dx%d image is too large", width, height)
		}
		layouts = append(layouts, l)
		return offset + l.size(), nil
	}

	var err error
	total := 0
	if !ihdr.Interlaced() {
		total, err = add(fullPass, 0, 0)
	} else {
		for i, p := range adam7Passes {
			if total, err = add(p, i+1, total); err != nil {
				break
			}
		}
	}
	if err != nil {
		return nil, 0, err
	}
	return layouts, total, nil
}
