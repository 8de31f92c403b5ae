package avatar

import "image/color"

// Palette holds the background colors picked when a request does not specify
// one. Order matters: it is part of the name to color mapping.
var Palette = []color.NRGBA{
	{0x1a, 0xbc, 0x9c, 0xff}, // turquoise
	{0x2e, 0xcc, 0x71, 0xff}, // emerald
	{0x34, 0x98, 0xdb, 0xff}, // peter river
	{0x9b, 0x59, 0xb6, 0xff}, // amethyst
	{0x34, 0x49, 0x5e, 0xff}, // wet asphalt
	{0x16, 0xa0, 0x85, 0xff}, // green sea
	{0x27, 0xae, 0x60, 0xff}, // nephritis
	{0x29, 0x80, 0xb9, 0xff}, // belize hole
	{0x8e, 0x44, 0xad, 0xff}, // wisteria
	{0x2c, 0x3e, 0x50, 0xff}, // midnight blue
	{0xf1, 0xc4, 0x0f, 0xff}, // sun flower
	{0xe6, 0x7e, 0x22, 0xff}, // carrot
	{0xe7, 0x4c, 0x3c, 0xff}, // alizarin
	{0x95, 0xa5, 0xa6, 0xff}, // concrete
	{0xf3, 0x9c, 0x12, 0xff}, // orange
	{0xd3, 0x54, 0x00, 0xff}, // pumpkin
	{0xc0, 0x39, 0x2b, 0xff}, // pomegranate
	{0xbd, 0xc3, 0xc7, 0xff}, // silver
	{0x7f, 0x8c, 0x8d, 0xff}, // asbestos
}

// PaletteIndex sums the code points of text modulo the palette size.
func PaletteIndex(text string) int {
	sum := 0
	for _, r := range text {
		sum += int(r)
	}
	return sum % len(Palette)
}

func PaletteColor(text string) color.NRGBA {
	return Palette[PaletteIndex(text)]
}
