package image_encoder

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"sync"
	"testing"

	"github.com/cshum/vipsgen/vips"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	draw.Draw(img, image.Rect(8, 8, 24, 24), image.NewUniform(color.RGBA{0xe7, 0x4c, 0x3c, 0xff}), image.Point{}, draw.Src)
	return img
}

func TestEncodePureGo(t *testing.T) {
	decoders := map[Format]func([]byte) (image.Image, error){
		FormatPNG:  func(b []byte) (image.Image, error) { return png.Decode(bytes.NewReader(b)) },
		FormatGIF:  func(b []byte) (image.Image, error) { return gif.Decode(bytes.NewReader(b)) },
		FormatBMP:  func(b []byte) (image.Image, error) { return bmp.Decode(bytes.NewReader(b)) },
		FormatTIFF: func(b []byte) (image.Image, error) { return tiff.Decode(bytes.NewReader(b)) },
	}

	for format, decode := range decoders {
		t.Run(format.String(), func(t *testing.T) {
			data, err := Encode(testImage(), format)
			require.NoError(t, err)

			img, err := decode(data)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 32, 32), img.Bounds())
		})
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	first, err := Encode(testImage(), FormatPNG)
	require.NoError(t, err)
	second, err := Encode(testImage(), FormatPNG)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEncodeInvalidFormatUsesDefault(t *testing.T) {
	data, err := Encode(testImage(), Format(99))
	require.NoError(t, err)

	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}

func TestEncodeGIFKeepsTransparency(t *testing.T) {
	data, err := Encode(testImage(), FormatGIF)
	require.NoError(t, err)

	img, err := gif.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	_, _, _, a := img.At(0, 0).RGBA()
	assert.Zero(t, a)
	_, _, _, a = img.At(16, 16).RGBA()
	assert.Equal(t, uint32(0xffff), a)
}

func TestFlatten(t *testing.T) {
	flat := Flatten(testImage(), color.White)

	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, flat.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{0xe7, 0x4c, 0x3c, 0xff}, flat.RGBAAt(16, 16))
}

var vipsOnce sync.Once

func startVips(t *testing.T) {
	if testing.Short() {
		t.Skip("libvips is required for this test: skipped due to the use of --short flag")
	}
	vipsOnce.Do(func() { vips.Startup(nil) })
}

func TestEncodeWithVips(t *testing.T) {
	startVips(t)

	for _, format := range []Format{FormatJPEG, FormatWebP} {
		t.Run(format.String(), func(t *testing.T) {
			data, err := Encode(testImage(), format)
			require.NoError(t, err)
			assert.NotEmpty(t, data)
		})
	}
}
