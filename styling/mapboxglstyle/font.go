package mapboxglstyle

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jamesrr39/ownmap-gis/styling"
)

const (
	defaultFontSizePx = 16
	defaultFontFamily = "sans-serif"
	defaultFontStyle  = "normal"
	defaultFontWeight = 400
)

var fontWeights = map[string]int{
	"thin":       100,
	"hairline":   100,
	"extralight": 200,
	"ultralight": 200,
	"light":      300,
	"normal":     400,
	"regular":    400,
	"book":       400,
	"medium":     500,
	"semibold":   600,
	"demibold":   600,
	"bold":       700,
	"extrabold":  800,
	"ultrabold":  800,
	"black":      900,
	"heavy":      900,
	"poster":     900,
}

var fontStyles = map[string]bool{
	"italic":  true,
	"oblique": true,
}

var fontSizeRegexp = regexp.MustCompile(`^(\d+(?:\.\d+)?|\.\d+)(px|pt|em)?(?:/\S+)?$`)

// ParseFont parses a CSS font shorthand, e.g. "italic bold 12px/30px Georgia, serif".
// Anything it can't make sense of is used as the family of a normal 400 16px font.
func ParseFont(s string) styling.Font {
	trimmed := strings.TrimSpace(s)
	font := styling.Font{
		Style:  defaultFontStyle,
		Weight: defaultFontWeight,
	}

	rest := trimmed
	for {
		rest = strings.TrimLeft(rest, " \t,")
		if rest == "" {
			break
		}

		token, remainder := nextFontToken(rest)
		lowerToken := strings.ToLower(token)

		if lowerToken == "normal" {
			rest = remainder
			continue
		}

		if fontStyles[lowerToken] {
			font.Style = lowerToken
			rest = remainder
			continue
		}

		if weight, ok := fontWeights[lowerToken]; ok {
			font.Weight = weight
			rest = remainder
			continue
		}

		if weight, err := strconv.Atoi(token); err == nil && weight >= 100 && weight <= 900 && weight%100 == 0 {
			font.Weight = weight
			rest = remainder
			continue
		}

		sizePx, ok := parseFontSize(lowerToken)
		if !ok {
			break
		}

		font.SizePx = sizePx
		font.Family = strings.TrimSpace(strings.TrimLeft(remainder, " \t,"))
		if font.Family == "" {
			font.Family = defaultFontFamily
		}
		return font
	}

	family := trimmed
	if family == "" {
		family = defaultFontFamily
	}

	return styling.Font{
		Style:  defaultFontStyle,
		Weight: defaultFontWeight,
		SizePx: defaultFontSizePx,
		Family: family,
	}
}

func nextFontToken(s string) (string, string) {
	i := strings.IndexAny(s, " \t,")
	if i == -1 {
		return s, ""
	}
	return s[:i], s[i:]
}

func parseFontSize(token string) (float64, bool) {
	matches := fontSizeRegexp.FindStringSubmatch(token)
	if matches == nil {
		return 0, false
	}

	size, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, false
	}

	switch matches[2] {
	case "pt":
		return size * 4 / 3, true
	case "em":
		return size * defaultFontSizePx, true
	default:
		return size, true
	}
}
