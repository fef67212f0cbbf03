package pngDecoder

import (
	"pngdec/logging"
	"pngdec/oops"
)

// Palette holds the PLTE entries; the slice index is the palette index.
type Palette []RGB8

// Transparency holds one alpha byte per leading palette entry (indexed tRNS).
type Transparency []uint8

// resolvePalette reads PLTE for indexed images. Other color types may carry
// a suggested palette; it is left alone.
func resolvePalette(chunks []*Chunk, ihdr *IHDR) (Palette, error) {
	if ihdr.colorType() != Indexed {
		return nil, nil
	}
	// The last PLTE wins, as in a plain scan of the chunk list.
	raw := findChunk(chunks, typePLTE)
	if raw == nil {
		return nil, oops.New(ErrMissingPalette, "indexed image at bit depth %d", ihdr.Bit_depth)
	}
	if raw.Length%3 != 0 {
		return nil, oops.New(ErrInvalidPalette, "PLTE length %d is not a multiple of 3", raw.Length)
	}
	entries := int(raw.Length / 3)
	if entries == 0 {
		return nil, oops.New(ErrInvalidPalette, "empty PLTE")
	}
	if limit := 1 << ihdr.Bit_depth; entries > limit {
		return nil, oops.New(ErrInvalidPalette, "%d entries for bit depth %d, max %d", entries, ihdr.Bit_depth, limit)
	}

	plte := make(Palette, entries)
	for i := range plte {
		plte[i] = RGB8{R: raw.Data[i*3], G: raw.Data[i*3+1], B: raw.Data[i*3+2]}
	}
	return plte, nil
}

// resolveTransparency returns nil unless the image is indexed and carries
// tRNS. Alpha bytes past the end of the palette are dropped.
func resolveTransparency(chunks []*Chunk, ihdr *IHDR, plte Palette) Transparency {
	raw := findChunk(chunks, typetRNS)
	if raw == nil {
		return nil
	}
	switch ihdr.colorType() {
	case Indexed:
		if plte == nil {
			return nil
		}
		n := len(raw.Data)
		if n > len(plte) {
			logging.Debug().Int("entries", n).Int("palette", len(plte)).Msg("tRNS longer than PLTE, truncating")
			n = len(plte)
		}
		trns := make(Transparency, n)
		copy(trns, raw.Data)
		return trns
	default:
		logging.Debug().Stringer("color_type", ihdr.colorType()).Msg("ignoring non-indexed tRNS")
		return nil
	}
}
