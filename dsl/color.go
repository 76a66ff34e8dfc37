package dsl

import (
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	formskema "github.com/reoring/formskema"
	js "github.com/reoring/formskema/jsonschema"
	"github.com/reoring/formskema/literal"
)

// ColorBuilder configures a color kind.
type ColorBuilder struct {
	base[*ColorBuilder]
	alpha bool
}

// Color accepts (r, g, b) component tuples of integers in 0..255 and color
// literals: #rgb, #rrggbb or an SVG color name. With Alpha it also accepts
// (r, g, b, a) tuples and #aarrggbb.
func Color() *ColorBuilder {
	b := &ColorBuilder{}
	b.self = b
	return b
}

func (b *ColorBuilder) Alpha() *ColorBuilder { b.alpha = true; return b }

func (b *ColorBuilder) Build() (formskema.ValueType, error) {
	m := b.meta
	if !b.hasDefault {
		m.DefaultValue = "#000000"
	}
	t := &ColorType{Meta: m, alpha: b.alpha}
	if err := formskema.CheckDefault(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (b *ColorBuilder) MustBuild() formskema.ValueType { return mustBuild(b.Build()) }

// ColorType is the built color kind.
type ColorType struct {
	formskema.Meta
	alpha bool
}

func (t *ColorType) Kind() formskema.Kind { return formskema.KindColor }
func (t *ColorType) Alpha() bool          { return t.alpha }

func (t *ColorType) Validate(v any) bool {
	_, ok := t.rgba(v)
	return ok
}

// rgba decodes any accepted form into its components.
func (t *ColorType) rgba(v any) ([4]uint8, bool) {
	if s, ok := v.(string); ok {
		return t.parseLiteral(s)
	}
	comps, ok := components(v)
	if !ok || (len(comps) != 3 && !(t.alpha && len(comps) == 4)) {
		return [4]uint8{}, false
	}
	out := [4]uint8{0, 0, 0, 255}
	for i, c := range comps {
		n, big, ok := asInt64(c)
		if !ok || big || n < 0 || n > 255 {
			return [4]uint8{}, false
		}
		out[i] = uint8(n)
	}
	return out, true
}

func components(v any) ([]any, bool) {
	switch x := v.(type) {
	case literal.Tuple:
		return x, true
	case []any:
		return x, true
	case []int:
		out := make([]any, len(x))
		for i, n := range x {
			out[i] = n
		}
		return out, true
	case []int64:
		out := make([]any, len(x))
		for i, n := range x {
			out[i] = n
		}
		return out, true
	case []uint8:
		out := make([]any, len(x))
		for i, n := range x {
			out[i] = n
		}
		return out, true
	}
	return nil, false
}

func (t *ColorType) parseLiteral(s string) ([4]uint8, bool) {
	if hex, ok := svgColors[strings.ToLower(s)]; ok {
		s = hex
	}
	if !strings.HasPrefix(s, "#") {
		return [4]uint8{}, false
	}
	switch len(s) {
	case 4, 7:
		c, err := colorful.Hex(s)
		if err != nil {
			return [4]uint8{}, false
		}
		r, g, b := c.RGB255()
		return [4]uint8{r, g, b, 255}, true
	case 9:
		if !t.alpha {
			return [4]uint8{}, false
		}
		a, err := strconv.ParseUint(s[1:3], 16, 8)
		if err != nil {
			return [4]uint8{}, false
		}
		c, err := colorful.Hex("#" + s[3:])
		if err != nil {
			return [4]uint8{}, false
		}
		r, g, b := c.RGB255()
		return [4]uint8{r, g, b, uint8(a)}, true
	}
	return [4]uint8{}, false
}

// Normalize stores colors as lower-case #rrggbb, or #aarrggbb when alpha is
// enabled and the color is not opaque.
func (t *ColorType) Normalize(v any) any {
	c, ok := t.rgba(v)
	if !ok {
		return v
	}
	hex := colorful.Color{R: float64(c[0]) / 255, G: float64(c[1]) / 255, B: float64(c[2]) / 255}.Hex()
	if t.alpha && c[3] != 255 {
		return fmt.Sprintf("#%02x%s", c[3], hex[1:])
	}
	return hex
}

func (t *ColorType) FormatText(v any) string {
	s, _ := t.Normalize(v).(string)
	return s
}

func (t *ColorType) ParseText(s string) (any, error) {
	s = strings.TrimSpace(s)
	if !t.Validate(s) {
		return nil, fmt.Errorf("%w: %q is not a color", formskema.ErrInvalidValue, s)
	}
	return s, nil
}

func (t *ColorType) JSONSchema() *js.Schema {
	n := 3
	if t.alpha {
		n = 4
	}
	return &js.Schema{
		Title: t.Label, Default: t.DefaultValue, ReadOnly: t.IsReadOnly, Hidden: t.IsHidden, Kind: string(t.Kind()),
		OneOf: []*js.Schema{
			{Type: "string", Format: "color"},
			{Type: "array", Items: &js.Schema{Type: "integer", Minimum: js.Float(0), Maximum: js.Float(255)}, MinItems: js.Int(3), MaxItems: js.Int(n)},
		},
	}
}

// svgColors maps the SVG 1.1 color keywords to #rrggbb.
var svgColors = map[string]string{
	"aliceblue": "#f0f8ff", "antiquewhite": "#faebd7", "aqua": "#00ffff", "aquamarine": "#7fffd4",
	"azure": "#f0ffff", "beige": "#f5f5dc", "bisque": "#ffe4c4", "black": "#000000",
	"blanchedalmond": "#ffebcd", "blue": "#0000ff", "blueviolet": "#8a2be2", "brown": "#a52a2a",
	"burlywood": "#deb887", "cadetblue": "#5f9ea0", "chartreuse": "#7fff00", "chocolate": "#d2691e",
	"coral": "#ff7f50", "cornflowerblue": "#6495ed", "cornsilk": "#fff8dc", "crimson": "#dc143c",
	"cyan": "#00ffff", "darkblue": "#00008b", "darkcyan": "#008b8b", "darkgoldenrod": "#b8860b",
	"darkgray": "#a9a9a9", "darkgreen": "#006400", "darkgrey": "#a9a9a9", "darkkhaki": "#bdb76b",
	"darkmagenta": "#8b008b", "darkolivegreen": "#556b2f", "darkorange": "#ff8c00", "darkorchid": "#9932cc",
	"darkred": "#8b0000", "darksalmon": "#e9967a", "darkseagreen": "#8fbc8f", "darkslateblue": "#483d8b",
	"darkslategray": "#2f4f4f", "darkslategrey": "#2f4f4f", "darkturquoise": "#00ced1", "darkviolet": "#9400d3",
	"deeppink": "#ff1493", "deepskyblue": "#00bfff", "dimgray": "#696969", "dimgrey": "#696969",
	"dodgerblue": "#1e90ff", "firebrick": "#b22222", "floralwhite": "#fffaf0", "forestgreen": "#228b22",
	"fuchsia": "#ff00ff", "gainsboro": "#dcdcdc", "ghostwhite": "#f8f8ff", "gold": "#ffd700",
	"goldenrod": "#daa520", "gray": "#808080", "grey": "#808080", "green": "#008000",
	"greenyellow": "#adff2f", "honeydew": "#f0fff0", "hotpink": "#ff69b4", "indianred": "#cd5c5c",
	"indigo": "#4b0082", "ivory": "#fffff0", "khaki": "#f0e68c", "lavender": "#e6e6fa",
	"lavenderblush": "#fff0f5", "lawngreen": "#7cfc00", "lemonchiffon": "#fffacd", "lightblue": "#add8e6",
	"lightcoral": "#f08080", "lightcyan": "#e0ffff", "lightgoldenrodyellow": "#fafad2", "lightgray": "#d3d3d3",
	"lightgreen": "#90ee90", "lightgrey": "#d3d3d3", "lightpink": "#ffb6c1", "lightsalmon": "#ffa07a",
	"lightseagreen": "#20b2aa", "lightskyblue": "#87cefa", "lightslategray": "#778899", "lightslategrey": "#778899",
	"lightsteelblue": "#b0c4de", "lightyellow": "#ffffe0", "lime": "#00ff00", "limegreen": "#32cd32",
	"linen": "#faf0e6", "magenta": "#ff00ff", "maroon": "#800000", "mediumaquamarine": "#66cdaa",
	"mediumblue": "#0000cd", "mediumorchid": "#ba55d3", "mediumpurple": "#9370db", "mediumseagreen": "#3cb371",
	"mediumslateblue": "#7b68ee", "mediumspringgreen": "#00fa9a", "mediumturquoise": "#48d1cc", "mediumvioletred": "#c71585",
	"midnightblue": "#191970", "mintcream": "#f5fffa", "mistyrose": "#ffe4e1", "moccasin": "#ffe4b5",
	"navajowhite": "#ffdead", "navy": "#000080", "oldlace": "#fdf5e6", "olive": "#808000",
	"olivedrab": "#6b8e23", "orange": "#ffa500", "orangered": "#ff4500", "orchid": "#da70d6",
	"palegoldenrod": "#eee8aa", "palegreen": "#98fb98", "paleturquoise": "#afeeee", "palevioletred": "#db7093",
	"papayawhip": "#ffefd5", "peachpuff": "#ffdab9", "peru": "#cd853f", "pink": "#ffc0cb",
	"plum": "#dda0dd", "powderblue": "#b0e0e6", "purple": "#800080", "red": "#ff0000",
	"rosybrown": "#bc8f8f", "royalblue": "#4169e1", "saddlebrown": "#8b4513", "salmon": "#fa8072",
	"sandybrown": "#f4a460", "seagreen": "#2e8b57", "seashell": "#fff5ee", "sienna": "#a0522d",
	"silver": "#c0c0c0", "skyblue": "#87ceeb", "slateblue": "#6a5acd", "slategray": "#708090",
	"slategrey": "#708090", "snow": "#fffafa", "springgreen": "#00ff7f", "steelblue": "#4682b4",
	"tan": "#d2b48c", "teal": "#008080", "thistle": "#d8bfd8", "tomato": "#ff6347",
	"turquoise": "#40e0d0", "violet": "#ee82ee", "wheat": "#f5deb3", "white": "#ffffff",
	"whitesmoke": "#f5f5f5", "yellow": "#ffff00", "yellowgreen": "#9acd32",
	"transparent": "#00000000",
}
