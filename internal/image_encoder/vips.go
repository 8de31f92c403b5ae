package image_encoder

import (
	"bytes"
	"fmt"
	"image"

	"github.com/cshum/vipsgen/vips"
)

// JPEG and WebP go through libvips. The canvas is handed over as a lossless
// PNG buffer, and the native image is closed on every path.

func encodeJPEG(img image.Image) ([]byte, error) {
	image, err := loadIntoVips(img)
	if err != nil {
		return nil, err
	}
	defer image.Close()

	jpegOpts := vips.DefaultJpegsaveBufferOptions()
	jpegOpts.Q = 90
	jpegOpts.Interlace = false

	data, err := image.JpegsaveBuffer(jpegOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return data, nil
}

func encodeWebP(img image.Image) ([]byte, error) {
	image, err := loadIntoVips(img)
	if err != nil {
		return nil, err
	}
	defer image.Close()

	webpOpts := vips.DefaultWebpsaveBufferOptions()
	webpOpts.Lossless = true

	data, err := image.WebpsaveBuffer(webpOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode webp: %w", err)
	}
	return data, nil
}

func loadIntoVips(img image.Image) (*vips.Image, error) {
	var buf bytes.Buffer
	if err := encodePNG(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode intermediate png: %w", err)
	}

	image, err := vips.NewPngloadBuffer(buf.Bytes(), vips.DefaultPngloadBufferOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to load image into vips: %w", err)
	}
	return image, nil
}
