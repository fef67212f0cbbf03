package main

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"pngdec/logging"
	"pngdec/oops"
	"pngdec/pngDecoder"
	"pngdec/utils"
)

func printInfo(out io.Writer, name string) error {
	img, err := pngDecoder.OpenPNG(name)
	if err != nil {
		return err
	}
	defer img.Free()

	h := img.Header()
	fmt.Fprintf(out, "%s: %dx%d, bit depth %d, color type %d, interlace %d, raster %s\n",
		name, h.Width, h.Height, h.Bit_depth, h.Color_type, h.Interlace_method, img.RasterType())
	if plte := img.Palette(); plte != nil {
		fmt.Fprintf(out, "palette: %d entries, %d with alpha\n", len(plte), len(img.Transparency()))
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tLENGTH\tCRC\tPROPERTIES")
	for _, c := range img.Chunks() {
		crc := "ok"
		if !c.CRCValid() {
			crc = fmt.Sprintf("bad (%08x != %08x)", c.CRC, c.ComputedCRC)
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", c.TypeString(), c.Length, crc, chunkProperties(c))
	}
	return w.Flush()
}

func chunkProperties(c *pngDecoder.Chunk) string {
	var props []string
	if c.Critical() {
		props = append(props, "critical")
	} else {
		props = append(props, "ancillary")
	}
	if c.Private() {
		props = append(props, "private")
	}
	if c.Reserved() {
		props = append(props, "reserved")
	}
	if c.SafeToCopy() {
		props = append(props, "safe-to-copy")
	}
	return strings.Join(props, ",")
}

func convert(in, out string) error {
	img, err := pngDecoder.OpenPNG(in)
	if err != nil {
		return err
	}
	defer img.Free()

	ext := strings.ToLower(filepath.Ext(out))
	logging.Info().
		Str("in", in).
		Str("out", out).
		Stringer("raster", img.RasterType()).
		Msg("converting")

	if ext == ".ppm" {
		return writePPM(img, out)
	}

	var encode func(io.Writer, image.Image) error
	switch ext {
	case ".png":
		encode = png.Encode
	case ".bmp":
		encode = bmp.Encode
	case ".tif", ".tiff":
		encode = func(w io.Writer, m image.Image) error {
			return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
		}
	default:
		return oops.New(pngDecoder.ErrInvalidArgument, "unknown output format %q", ext)
	}

	m, err := img.Image()
	if err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return oops.New(err, "creating %s", out)
	}
	if err := encode(f, m); err != nil {
		f.Close()
		return oops.New(err, "encoding %s", out)
	}
	return f.Close()
}

// writePPM drops alpha. 16-bit images keep their precision with maxval 65535.
func writePPM(img *pngDecoder.PNG, name string) error {
	width, height := int(img.Width()), int(img.Height())

	if img.Depth() == 16 {
		rgba, err := img.AsRGBA16()
		if err != nil {
			return err
		}
		ppm, err := utils.CreatePPM(name, width, height, 65535)
		if err != nil {
			return oops.New(err, "creating %s", name)
		}
		row := make([]byte, width*6)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				p := rgba.At(x, y)
				o := x * 6
				row[o+0], row[o+1] = uint8(p.R>>8), uint8(p.R)
				row[o+2], row[o+3] = uint8(p.G>>8), uint8(p.G)
				row[o+4], row[o+5] = uint8(p.B>>8), uint8(p.B)
			}
			if _, err := ppm.Write(row); err != nil {
				ppm.Close()
				return err
			}
		}
		return ppm.Close()
	}

	rgba, err := img.AsRGBA8()
	if err != nil {
		return err
	}
	ppm, err := utils.CreatePPM(name, width, height, 255)
	if err != nil {
		return oops.New(err, "creating %s", name)
	}
	row := make([]byte, width*3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := rgba.At(x, y)
			row[x*3], row[x*3+1], row[x*3+2] = p.R, p.G, p.B
		}
		if _, err := ppm.Write(row); err != nil {
			ppm.Close()
			return err
		}
	}
	return ppm.Close()
}
