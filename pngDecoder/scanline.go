package pngDecoder

import (
	"golang.org/x/sync/errgroup"

	"pngdec/logging"
	"pngdec/oops"
)

// pixelSink receives reconstructed rows. put copies the pixel at column col
// of scanline into raster index dst.
type pixelSink interface {
	put(dst int, scanline []byte, col int)
}

type scanlineReconstructor struct {
	width, height int
	bytesPerPixel int
	layouts       []passLayout
	sink          pixelSink
}

func newScanlineReconstructor(ihdr *IHDR, layouts []passLayout, sink pixelSink) *scanlineReconstructor {
	return &scanlineReconstructor{
		width:         int(ihdr.Width),
		height:        int(ihdr.Height),
		bytesPerPixel: ihdr.pixelBytes(),
		layouts:       layouts,
		sink:          sink,
	}
}

// reconstruct unfilters decoded in place and hands every pixel to the sink.
// Passes write disjoint raster positions, so with parallel set each one
// runs on its own goroutine.
func (r *scanlineReconstructor) reconstruct(decoded []byte, parallel bool) error {
	if !parallel || len(r.layouts) < 2 {
		for _, l := range r.layouts {
			if err := r.reconstructPass(decoded, l); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	for _, l := range r.layouts {
		g.Go(func() error {
			return r.reconstructPass(decoded, l)
		})
	}
	return g.Wait()
}

func (r *scanlineReconstructor) reconstructPass(decoded []byte, l passLayout) error {
	data := decoded[l.offset : l.offset+l.size()]
	logging.Trace().
		Int("pass", l.number).
		Int("cols", l.cols).
		Int("rows", l.rows).
		Int("offset", l.offset).
		Msg("reconstructing pass")

	// Row 0 of a pass has nothing above it.
	previousLine := make([]byte, l.stride)
	for row := 0; row < l.rows; row++ {
		line := data[row*(l.stride+1) : (row+1)*(l.stride+1)]
		scanline := line[1:]
		if err := unfilterRow(FilterMethod(line[0]), scanline, previousLine, r.bytesPerPixel); err != nil {
			return oops.New(err, "pass %d row %d", l.number, row)
		}

		for col := 0; col < l.cols; col++ {
			x, y := l.toRaster(col, row)
			if x >= r.width || y >= r.height {
				continue
			}
			r.sink.put(y*r.width+x, scanline, col)
		}
		previousLine = scanline
	}
	return nil
}
