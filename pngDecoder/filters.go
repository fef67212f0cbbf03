package pngDecoder

import (
	"pngdec/oops"
)

type FilterMethod byte

const (
	NONE FilterMethod = iota
	LEFT
	UP
	AVG
	PAETH
)

// unfilterRow reverses the filter on scanline in place. previousLine is the
// already reconstructed row above, all zeros for the first row of a pass.
// Both slices hold the row without its filter type byte.
func unfilterRow(filter FilterMethod, scanline, previousLine []byte, bytesPerPixel int) error {
	switch filter {
	case NONE:
	case LEFT:
		processLeftFilter(scanline, bytesPerPixel)
	case UP:
		processUpFilter(previousLine, scanline)
	case AVG:
		processAvgFilter(previousLine, scanline, bytesPerPixel)
	case PAETH:
		processPaethFilter(previousLine, scanline, bytesPerPixel)
	default:
		return oops.New(ErrBadFilter, "filter type %d", filter)
	}
	return nil
}

func processLeftFilter(scanline []byte, bytesPerPixel int) {
	for i := bytesPerPixel; i < len(scanline); i++ {
		scanline[i] += scanline[i-bytesPerPixel]
	}
}

func processUpFilter(previousLine []byte, scanline []byte) {
	for i, above := range previousLine[:len(scanline)] {
		scanline[i] += above
	}
}

func processAvgFilter(previousLine []byte, scanline []byte, bytesPerPixel int) {
	for i := range scanline {
		var left int
		if i >= bytesPerPixel {
			left = int(scanline[i-bytesPerPixel])
		}
		above := int(previousLine[i])
		scanline[i] += byte((left + above) / 2)
	}
}

func processPaethFilter(previousLine []byte, scanline []byte, bytesPerPixel int) {
	for i := range scanline {
		var left, upperLeft int
		if i >= bytesPerPixel {
			left = int(scanline[i-bytesPerPixel])
			upperLeft = int(previousLine[i-bytesPerPixel])
		}
		above := int(previousLine[i])
		scanline[i] += byte(paethPredictor(left, above, upperLeft))
	}
}
