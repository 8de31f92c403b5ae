package image_encoder

import "strings"

// Format identifies one of the supported raster encodings.
type Format int

const (
	FormatPNG Format = iota
	FormatJPEG
	FormatGIF
	FormatBMP
	FormatTIFF
	FormatWebP
)

// DefaultFormat is used whenever a requested format cannot be resolved.
const DefaultFormat = FormatPNG

type formatInfo struct {
	name        string
	contentType string
	extension   string
}

var formats = map[Format]formatInfo{
	FormatPNG:  {name: "png", contentType: "image/png", extension: ".png"},
	FormatJPEG: {name: "jpeg", contentType: "image/jpeg", extension: ".jpg"},
	FormatGIF:  {name: "gif", contentType: "image/gif", extension: ".gif"},
	FormatBMP:  {name: "bmp", contentType: "image/bmp", extension: ".bmp"},
	FormatTIFF: {name: "tiff", contentType: "image/tiff", extension: ".tiff"},
	FormatWebP: {name: "webp", contentType: "image/webp", extension: ".webp"},
}

var aliases = map[string]Format{
	"png":  FormatPNG,
	"jpeg": FormatJPEG,
	"jpg":  FormatJPEG,
	"gif":  FormatGIF,
	"bmp":  FormatBMP,
	"tiff": FormatTIFF,
	"tif":  FormatTIFF,
	"webp": FormatWebP,
}

// ParseFormat resolves a format name. Names are case-insensitive and may be
// given as an extension (".jpg") or a MIME type ("image/webp").
func ParseFormat(s string) (Format, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, "image/")
	name = strings.TrimPrefix(name, ".")
	f, ok := aliases[name]
	return f, ok
}

// ParseFormatOr is ParseFormat with a fallback for unknown names.
func ParseFormatOr(s string, fallback Format) Format {
	if f, ok := ParseFormat(s); ok {
		return f
	}
	if fallback.Valid() {
		return fallback
	}
	return DefaultFormat
}

func (f Format) Valid() bool {
	_, ok := formats[f]
	return ok
}

// String returns the stable identifier of the format, used in cache keys.
func (f Format) String() string {
	if info, ok := formats[f]; ok {
		return info.name
	}
	return formats[DefaultFormat].name
}

func (f Format) ContentType() string {
	if info, ok := formats[f]; ok {
		return info.contentType
	}
	return formats[DefaultFormat].contentType
}

func (f Format) Extension() string {
	if info, ok := formats[f]; ok {
		return info.extension
	}
	return formats[DefaultFormat].extension
}

// SupportsAlpha reports whether the encoder keeps transparent pixels.
func (f Format) SupportsAlpha() bool {
	switch f {
	case FormatJPEG, FormatBMP:
		return false
	}
	return true
}
