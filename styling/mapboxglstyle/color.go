package mapboxglstyle

import (
	"math"

	"github.com/jamesrr39/ownmap-gis/styling"
	"github.com/mazznoer/csscolorparser"
)

// ColorWithOpacity parses a CSS color and multiplies its alpha by opacity.
// Parsed colors are cached per color string for the lifetime of the root.
// The result is nil when the color can't be parsed or the resulting alpha is 0; nothing should be drawn then.
func (root *StyleRoot) ColorWithOpacity(colorString string, opacity float64) *styling.Color {
	color, ok := root.cachedColor[colorString]
	if !ok {
		parsed, err := csscolorparser.Parse(colorString)
		if err != nil {
			root.logger.Debug("couldn't parse color %q: %s", colorString, err)
			return nil
		}

		color = styling.Color{
			math.Round(parsed.R * 255),
			math.Round(parsed.G * 255),
			math.Round(parsed.B * 255),
			parsed.A,
		}
		root.cachedColor[colorString] = color
	}

	alpha := color[3] * opacity
	if alpha == 0 {
		return nil
	}

	color[3] = alpha
	return &color
}
