package styling

import (
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-gis/ownmap"
)

const BUILTIN_STYLEID = "__ownmap_builtin"

// Style turns a feature at a map resolution into the ordered list of things to draw for it.
// Implementations must be safe for concurrent use.
type Style interface {
	GetFeatureStyles(feature ownmap.Feature, resolution float64) []ItemStyle
	GetBackground() *Color
	GetStyleID() string
}

type StyleSet struct {
	stylesMap      map[string]Style // map[Style ID]Style
	defaultStyleID string
}

func NewStyleSet(styles []Style, defaultStyleID string) (*StyleSet, errorsx.Error) {
	styleSet := &StyleSet{
		stylesMap:      make(map[string]Style),
		defaultStyleID: defaultStyleID,
	}

	defaultIDFound := false

	for _, style := range styles {
		styleID := style.GetStyleID()
		_, ok := styleSet.stylesMap[styleID]
		if ok {
			return nil, errorsx.Errorf("duplicate style ID found: %q", styleID)
		}

		styleSet.stylesMap[styleID] = style

		if defaultStyleID == styleID {
			defaultIDFound = true
		}
	}

	if !defaultIDFound {
		return nil, errorsx.Errorf("default ID %q not found in any supplied styles", defaultStyleID)
	}

	return styleSet, nil
}

func (s *StyleSet) GetStyleByID(id string) Style {
	return s.stylesMap[id]
}

func (s *StyleSet) GetDefaultStyle() Style {
	return s.stylesMap[s.defaultStyleID]
}

// GetStyleOrDefault returns the default style for an empty ID
func (s *StyleSet) GetStyleOrDefault(id string) (Style, errorsx.Error) {
	if id == "" {
		return s.GetDefaultStyle(), nil
	}

	style := s.GetStyleByID(id)
	if style == nil {
		return nil, errorsx.Errorf("couldn't get requested style %q (style not loaded)", id)
	}

	return style, nil
}

func (s *StyleSet) GetAllStyleIDs() []string {
	var styleIDs []string

	for id := range s.stylesMap {
		styleIDs = append(styleIDs, id)
	}

	return styleIDs
}
