package styling

import (
	"github.com/jamesrr39/ownmap-gis/ownmap"
)

// CustomBasicStyle is a hard-coded style for OSM-tagged features, used when no style documents are loaded.
type CustomBasicStyle struct{}

var basicBackground = Color{255, 255, 255, 1}

func (_ *CustomBasicStyle) GetBackground() *Color {
	c := basicBackground
	return &c
}

func (_ *CustomBasicStyle) GetStyleID() string {
	return BUILTIN_STYLEID
}

const (
	zindexForest      = 1
	zindexResidential = 2
	zindexRailway     = 3
	zindexHighway     = 4
	zindexPlace       = 5
)

func forestStyle() *FillStyle {
	return &FillStyle{
		Fill:   &Fill{Color: Color{172, 200, 160, 1}},
		ZIndex: zindexForest,
	}
}

func (s *CustomBasicStyle) GetFeatureStyles(feature ownmap.Feature, resolution float64) []ItemStyle {
	tags := feature.GetProperties().TagMap()
	if tags == nil {
		return nil
	}

	switch feature.GetGeometryType() {
	case ownmap.GeometryTypePoint:
		style := s.getPlaceStyle(tags)
		if style == nil {
			return nil
		}
		return []ItemStyle{style}
	case ownmap.GeometryTypeLineString, ownmap.GeometryTypePolygon:
		style := s.getWayStyle(tags)
		if style == nil {
			return nil
		}
		return []ItemStyle{style}
	default:
		return nil
	}
}

func (_ *CustomBasicStyle) getPlaceStyle(tags ownmap.TagMap) ItemStyle {
	_, isPlace := tags["place"]
	name := tags["name"]

	if !isPlace || name == "" {
		return nil
	}

	return &TextStyle{
		Text:         name,
		Font:         Font{Style: "normal", Weight: 400, SizePx: 16, Family: "sans-serif"},
		Fill:         &Fill{Color: Color{0, 0, 0, 1}},
		TextAlign:    "center",
		TextBaseline: "center",
		Placement:    "point",
		ZIndex:       zindexPlace,
	}
}

func (_ *CustomBasicStyle) getWayStyle(tags ownmap.TagMap) ItemStyle {
	if _, ok := tags["railway"]; ok {
		return &LineStyle{
			Stroke: &Stroke{Color: Color{190, 190, 190, 1}, Width: 3},
			ZIndex: zindexRailway,
		}
	}

	switch tags["natural"] {
	case "wood":
		return forestStyle()
	}

	switch tags["landuse"] {
	case "forest":
		return forestStyle()
	case "residential":
		return &FillStyle{
			Fill:   &Fill{Color: Color{223, 223, 223, 1}},
			ZIndex: zindexResidential,
		}
	}

	highwayType := tags["highway"]
	if highwayType == "" {
		// not shown
		return nil
	}

	stroke := &Stroke{Width: 1}
	switch highwayType {
	case "motorway":
		stroke.Color = Color{0xf3, 0x8d, 0x9e, 1}
	case "trunk":
		stroke.Color = Color{0xff, 0xae, 0x9b, 1}
	case "primary", "primary_link":
		stroke.Color = Color{0xff, 0xd4, 0xa5, 1}
	case "secondary":
		stroke.Color = Color{0xf6, 0xf9, 0xbf, 1}
	case "tertiary":
		stroke.Color = Color{0xf3, 0x8d, 0x9e, 1}
	case "unclassified", "residential", "service", "track":
		stroke.Color = Color{0xbc, 0xac, 0xa5, 1}
	case "footway", "path", "steps":
		stroke.Color = Color{0, 0xff, 0, 1}
		stroke.LineDash = []float64{1, 2, 3}
	case "bridleway", "cycleway":
		stroke.Color = Color{0, 0xff, 0, 1}
		stroke.LineDash = []float64{20, 5}
	default:
		return nil
	}

	return &LineStyle{
		Stroke: stroke,
		ZIndex: zindexHighway,
	}
}
