package image_encoder

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Encode serializes img using the given format. Formats that cannot carry an
// alpha channel get the image flattened onto white first.
func Encode(img image.Image, format Format) ([]byte, error) {
	if !format.Valid() {
		format = DefaultFormat
	}
	if !format.SupportsAlpha() {
		img = Flatten(img, color.White)
	}

	switch format {
	case FormatJPEG:
		return encodeJPEG(img)
	case FormatWebP:
		return encodeWebP(img)
	}

	var buf bytes.Buffer
	var err error
	switch format {
	case FormatGIF:
		err = gif.Encode(&buf, toPaletted(img), nil)
	case FormatBMP:
		err = bmp.Encode(&buf, img)
	case FormatTIFF:
		err = tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		err = encodePNG(&buf, img)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

func encodePNG(buf *bytes.Buffer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(buf, img)
}

// Flatten composes img over an opaque background color.
func Flatten(img image.Image, bg color.Color) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}

// toPaletted quantizes to Plan9 with a reserved transparent entry so that
// transparent areas survive the GIF encoding.
func toPaletted(img image.Image) *image.Paletted {
	pal := make(color.Palette, 0, 256)
	pal = append(pal, color.Transparent)
	pal = append(pal, palette.Plan9[:255]...)

	b := img.Bounds()
	dst := image.NewPaletted(b, pal)
	draw.FloydSteinberg.Draw(dst, b, img, b.Min)
	return dst
}
