package avatar

import (
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

var (
	White       = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	Transparent = color.NRGBA{}
)

// extraColorNames covers CSS names missing from the SVG 1.1 table.
var extraColorNames = map[string]color.NRGBA{
	"transparent":   Transparent,
	"rebeccapurple": {0x66, 0x33, 0x99, 0xff},
}

type colorParser func(s string) (color.NRGBA, bool)

// colorParsers are tried in order; the first success wins.
var colorParsers = []colorParser{
	parseHashPrefixed,
	parseBareHex,
	parseDirect,
}

// ParseColor interprets s as "#hex", bare hex or a named color. Accepted hex
// lengths are 3 (RGB), 4 (ARGB), 6 (RRGGBB) and 8 (AARRGGBB).
func ParseColor(s string) (color.NRGBA, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.NRGBA{}, false
	}
	for _, parse := range colorParsers {
		if c, ok := parse(s); ok {
			return c, true
		}
	}
	return color.NRGBA{}, false
}

// ResolveColor returns the parsed color or fallback when s is not a color.
func ResolveColor(s string, fallback color.NRGBA) color.NRGBA {
	if c, ok := ParseColor(s); ok {
		return c
	}
	return fallback
}

func parseHashPrefixed(s string) (color.NRGBA, bool) {
	if !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, false
	}
	return parseHex(s[1:])
}

func parseBareHex(s string) (color.NRGBA, bool) {
	for i := 0; i < len(s); i++ {
		if _, ok := hexValue(s[i]); !ok {
			return color.NRGBA{}, false
		}
	}
	return parseHashPrefixed("#" + s)
}

func parseDirect(s string) (color.NRGBA, bool) {
	name := strings.ToLower(s)
	if c, ok := extraColorNames[name]; ok {
		return c, true
	}
	c, ok := colornames.Map[name]
	if !ok {
		return color.NRGBA{}, false
	}
	return color.NRGBA{c.R, c.G, c.B, c.A}, true
}

func parseHex(digits string) (color.NRGBA, bool) {
	values := make([]uint8, len(digits))
	for i := 0; i < len(digits); i++ {
		v, ok := hexValue(digits[i])
		if !ok {
			return color.NRGBA{}, false
		}
		values[i] = v
	}

	switch len(values) {
	case 3:
		return color.NRGBA{values[0] * 0x11, values[1] * 0x11, values[2] * 0x11, 0xff}, true
	case 4:
		return color.NRGBA{values[1] * 0x11, values[2] * 0x11, values[3] * 0x11, values[0] * 0x11}, true
	case 6:
		return color.NRGBA{
			values[0]<<4 | values[1],
			values[2]<<4 | values[3],
			values[4]<<4 | values[5],
			0xff,
		}, true
	case 8:
		return color.NRGBA{
			values[2]<<4 | values[3],
			values[4]<<4 | values[5],
			values[6]<<4 | values[7],
			values[0]<<4 | values[1],
		}, true
	default:
		return color.NRGBA{}, false
	}
}

func hexValue(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// ARGB packs c as 0xAARRGGBB.
func ARGB(c color.NRGBA) uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}
