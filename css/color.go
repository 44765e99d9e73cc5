package css

import (
	"strconv"
	"strings"
)

type rgb struct {
	r, g, b int
}

// Destination palette anchors. The destination model supports a small set of
// named text colors, arbitrary CSS colors are mapped to the nearest one.
var palette = []struct {
	name string
	rgb
}{
	{"gray", rgb{120, 119, 116}},
	{"brown", rgb{159, 107, 83}},
	{"orange", rgb{217, 115, 13}},
	{"yellow", rgb{203, 145, 47}},
	{"green", rgb{68, 131, 97}},
	{"blue", rgb{51, 126, 169}},
	{"purple", rgb{144, 101, 176}},
	{"pink", rgb{193, 76, 138}},
	{"red", rgb{212, 76, 71}},
}

// defaultText is the destination's default text color. Colors closer to it
// than to any palette entry normalize to "".
var defaultText = rgb{55, 53, 47}

var namedColors = map[string]rgb{
	"black":      {0, 0, 0},
	"white":      {255, 255, 255},
	"silver":     {192, 192, 192},
	"gray":       {128, 128, 128},
	"grey":       {128, 128, 128},
	"darkgray":   {169, 169, 169},
	"dimgray":    {105, 105, 105},
	"lightgray":  {211, 211, 211},
	"red":        {255, 0, 0},
	"darkred":    {139, 0, 0},
	"maroon":     {128, 0, 0},
	"crimson":    {220, 20, 60},
	"orange":     {255, 165, 0},
	"darkorange": {255, 140, 0},
	"gold":       {255, 215, 0},
	"yellow":     {255, 255, 0},
	"olive":      {128, 128, 0},
	"green":      {0, 128, 0},
	"darkgreen":  {0, 100, 0},
	"lime":       {0, 255, 0},
	"teal":       {0, 128, 128},
	"cyan":       {0, 255, 255},
	"aqua":       {0, 255, 255},
	"blue":       {0, 0, 255},
	"darkblue":   {0, 0, 139},
	"navy":       {0, 0, 128},
	"royalblue":  {65, 105, 225},
	"skyblue":    {135, 206, 235},
	"purple":     {128, 0, 128},
	"violet":     {238, 130, 238},
	"magenta":    {255, 0, 255},
	"fuchsia":    {255, 0, 255},
	"indigo":     {75, 0, 130},
	"pink":       {255, 192, 203},
	"hotpink":    {255, 105, 180},
	"brown":      {165, 42, 42},
	"chocolate":  {210, 105, 30},
	"sienna":     {160, 82, 45},
	"tan":        {210, 180, 140},
	"beige":      {245, 245, 220},
	"coral":      {255, 127, 80},
	"salmon":     {250, 128, 114},
	"khaki":      {240, 230, 140},
	"orchid":     {218, 112, 214},
	"plum":       {221, 160, 221},
	"turquoise":  {64, 224, 208},
}

// NormalizeColor maps a CSS color value (named, #hex or rgb function) to the
// nearest destination palette identifier. Values that cannot be parsed, or
// that sit closer to the default text color than to any palette entry,
// normalize to "".
func NormalizeColor(value string) string {
	c, ok := parseColor(value)
	if !ok {
		return ""
	}

	best := ""
	bestDist := distance(c, defaultText)
	for _, p := range palette {
		if d := distance(c, p.rgb); d < bestDist {
			best = p.name
			bestDist = d
		}
	}
	return best
}

func parseColor(value string) (rgb, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	switch {
	case value == "":
		return rgb{}, false
	case strings.HasPrefix(value, "#"):
		return parseHexColor(value[1:])
	case strings.HasPrefix(value, "rgb(") || strings.HasPrefix(value, "rgba("):
		return parseRGBFunc(value)
	}
	c, ok := namedColors[value]
	return c, ok
}

func parseHexColor(hex string) (rgb, bool) {
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return rgb{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return rgb{}, false
	}
	return rgb{int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)}, true
}

func parseRGBFunc(value string) (rgb, bool) {
	open := strings.IndexByte(value, '(')
	end := strings.LastIndexByte(value, ')')
	if open < 0 || end < open {
		return rgb{}, false
	}
	parts := strings.Split(value[open+1:end], ",")
	if len(parts) < 3 {
		return rgb{}, false
	}
	var c [3]int
	for i := range 3 {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 || n > 255 {
			return rgb{}, false
		}
		c[i] = n
	}
	return rgb{c[0], c[1], c[2]}, true
}

func distance(a, b rgb) int {
	dr, dg, db := a.r-b.r, a.g-b.g, a.b-b.b
	return dr*dr + dg*dg + db*db
}
