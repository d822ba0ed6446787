package mathtex

// Colour names resolve through a named-colour table plus CSS-style
// #RRGGBB and #RRGGBBAA literals.

import (
	"image/color"
	"strconv"
	"strings"
)

var namedColors = map[string]color.RGBA{
	"black":   {0x00, 0x00, 0x00, 0xff},
	"white":   {0xff, 0xff, 0xff, 0xff},
	"red":     {0xff, 0x00, 0x00, 0xff},
	"green":   {0x00, 0x80, 0x00, 0xff},
	"blue":    {0x00, 0x00, 0xff, 0xff},
	"cyan":    {0x00, 0xff, 0xff, 0xff},
	"magenta": {0xff, 0x00, 0xff, 0xff},
	"yellow":  {0xff, 0xff, 0x00, 0xff},
	"orange":  {0xff, 0xa5, 0x00, 0xff},
	"purple":  {0x80, 0x00, 0x80, 0xff},
	"brown":   {0xa5, 0x2a, 0x2a, 0xff},
	"gray":    {0x80, 0x80, 0x80, 0xff},
	"grey":    {0x80, 0x80, 0x80, 0xff},
	"silver":  {0xc0, 0xc0, 0xc0, 0xff},
	"olive":   {0x80, 0x80, 0x00, 0xff},
	"teal":    {0x00, 0x80, 0x80, 0xff},
	"navy":    {0x00, 0x00, 0x80, 0xff},
	"maroon":  {0x80, 0x00, 0x00, 0xff},
	"lime":    {0x00, 0xff, 0x00, 0xff},
	"pink":    {0xff, 0xc0, 0xcb, 0xff},
	"violet":  {0xee, 0x82, 0xee, 0xff},
	"gold":    {0xff, 0xd7, 0x00, 0xff},
	"transparent": {0x00, 0x00, 0x00, 0x00},
}

// parseColor resolves a colour specification: a name from the table
// or a #RRGGBB / #RRGGBBAA literal.
func parseColor(spec string) (color.RGBA, bool) {
	if hex, ok := strings.CutPrefix(spec, "#"); ok {
		switch len(hex) {
		case 6:
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return color.RGBA{}, false
			}
			return color.RGBA{
				R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff,
			}, true
		case 8:
			v, err := strconv.ParseUint(hex, 16, 64)
			if err != nil {
				return color.RGBA{}, false
			}
			return color.RGBA{
				R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v),
			}, true
		}
		return color.RGBA{}, false
	}
	c, ok := namedColors[strings.ToLower(spec)]
	return c, ok
}
