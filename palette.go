package pie

import "image/color"

// DefaultPalette is the cyclic color sequence assigned to added wedges.
// A chart cycles through its palette by creation order, so the palette may
// be shorter than the slice count.
var DefaultPalette = []color.NRGBA{
	{R: 0xE5, G: 0x4D, B: 0x42, A: 0xFF}, // red
	{R: 0x2E, G: 0x86, B: 0xC1, A: 0xFF}, // blue
	{R: 0x58, G: 0xB0, B: 0x5C, A: 0xFF}, // green
	{R: 0xF2, G: 0xA6, B: 0x3C, A: 0xFF}, // orange
	{R: 0x8E, G: 0x5B, B: 0xB5, A: 0xFF}, // purple
	{R: 0x3C, G: 0xBF, B: 0xB4, A: 0xFF}, // teal
}
