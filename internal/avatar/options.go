package avatar

import (
	"fmt"
	"image/color"
	"strings"

	"letteravatar/internal/image_encoder"
)

// Shape is the geometric mask filled with the background color.
type Shape int

const (
	ShapeSquare Shape = iota
	ShapeCircle
)

// ParseShape maps a shape name to a Shape. Unknown names are squares.
func ParseShape(s string) Shape {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "circle", "round", "1":
		return ShapeCircle
	default:
		return ShapeSquare
	}
}

func (s Shape) String() string {
	if s == ShapeCircle {
		return "circle"
	}
	return "square"
}

// Options is the resolved parameter set that fully determines one image.
// Two equal Options always render to the same bytes.
type Options struct {
	Text       string
	Size       int
	Foreground color.NRGBA
	Background color.NRGBA
	Shape      Shape
	Format     image_encoder.Format
}

// Params are the raw request parameters. Size is expected to be range
// checked by the caller.
type Params struct {
	Name            string
	Size            int
	BackgroundColor string
	ForegroundColor string
	Format          string
	Shape           string

	// DefaultFormat replaces a missing or unknown Format.
	DefaultFormat image_encoder.Format
}

// Resolve normalizes raw parameters into Options. The initials are extracted
// before the palette lookup, so the default background depends on them and not
// on the full name.
func Resolve(p Params) Options {
	text := Initials(p.Name)
	return Options{
		Text:       text,
		Size:       p.Size,
		Foreground: ResolveColor(p.ForegroundColor, White),
		Background: ResolveColor(p.BackgroundColor, PaletteColor(text)),
		Shape:      ParseShape(p.Shape),
		Format:     image_encoder.ParseFormatOr(p.Format, p.DefaultFormat),
	}
}

// CacheKey derives the cache key from every field of o. Only the text is
// free-form and it comes first, so the fixed-width tail keeps keys unambiguous.
func (o Options) CacheKey() string {
	return fmt.Sprintf("avatar:%s:%s:%d:%d:%08x:%08x",
		o.Text,
		o.Format,
		o.Shape,
		o.Size,
		ARGB(o.Foreground),
		ARGB(o.Background),
	)
}

func (o Options) ContentType() string {
	return o.Format.ContentType()
}

// FontSize is the point size used for the initials.
func (o Options) FontSize() float64 {
	return float64(o.Size) * 0.4
}
