package mapboxglstyle

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jamesrr39/ownmap-gis/ownmap"
)

var templateKeyRegexp = regexp.MustCompile(`\{\s*([^{}\s]+)\s*\}`)

// substituteTemplate fills "{key}" placeholders from the properties. Unknown placeholders are kept as they are.
func substituteTemplate(template string, properties ownmap.PropertyMap) string {
	return templateKeyRegexp.ReplaceAllStringFunc(template, func(placeholder string) string {
		key := templateKeyRegexp.FindStringSubmatch(placeholder)[1]
		value, ok := properties[key]
		if !ok || value == nil {
			return placeholder
		}
		return fmt.Sprint(value)
	})
}

func transformText(text, transform string) string {
	switch transform {
	case textTransformUpper:
		return strings.ToUpper(text)
	case textTransformLower:
		return strings.ToLower(text)
	default:
		return text
	}
}
