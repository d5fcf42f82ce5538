package styling

import (
	"testing"

	"github.com/jamesrr39/ownmap-gis/ownmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedStyle struct {
	id string
}

func (s *fixedStyle) GetFeatureStyles(feature ownmap.Feature, resolution float64) []ItemStyle {
	return nil
}

func (s *fixedStyle) GetBackground() *Color {
	return nil
}

func (s *fixedStyle) GetStyleID() string {
	return s.id
}

func TestNewStyleSet(t *testing.T) {
	styleSet, err := NewStyleSet([]Style{&CustomBasicStyle{}, &fixedStyle{"a"}}, "a")
	require.NoError(t, err)

	assert.Equal(t, "a", styleSet.GetDefaultStyle().GetStyleID())
	assert.ElementsMatch(t, []string{BUILTIN_STYLEID, "a"}, styleSet.GetAllStyleIDs())

	style, err := styleSet.GetStyleOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, "a", style.GetStyleID())

	style, err = styleSet.GetStyleOrDefault(BUILTIN_STYLEID)
	require.NoError(t, err)
	assert.Equal(t, BUILTIN_STYLEID, style.GetStyleID())

	_, err = styleSet.GetStyleOrDefault("missing")
	require.Error(t, err)
}

func TestNewStyleSet_errors(t *testing.T) {
	_, err := NewStyleSet([]Style{&fixedStyle{"a"}, &fixedStyle{"a"}}, "a")
	require.Error(t, err)

	_, err = NewStyleSet([]Style{&fixedStyle{"a"}}, "b")
	require.Error(t, err)
}

func TestColor(t *testing.T) {
	c := Color{255, 0, 0, 0.5}
	assert.Equal(t, "rgba(255,0,0,0.5)", c.String())

	r, g, b, a := c.RGBA()
	assert.Equal(t, uint32(0x7fff), r)
	assert.Equal(t, uint32(0), g)
	assert.Equal(t, uint32(0), b)
	assert.Equal(t, uint32(0x7fff), a)
}

func TestCustomBasicStyle_GetFeatureStyles(t *testing.T) {
	style := &CustomBasicStyle{}

	place := &ownmap.SimpleFeature{
		Properties:   ownmap.PropertyMap{"place": "city", "name": "Bergen"},
		GeometryType: ownmap.GeometryTypePoint,
	}
	styles := style.GetFeatureStyles(place, 10)
	require.Len(t, styles, 1)
	assert.Equal(t, "Bergen", styles[0].(*TextStyle).Text)
	assert.Equal(t, zindexPlace, styles[0].GetZIndex())

	footway := &ownmap.SimpleFeature{
		Properties:   ownmap.PropertyMap{"highway": "footway"},
		GeometryType: ownmap.GeometryTypeLineString,
	}
	styles = style.GetFeatureStyles(footway, 10)
	require.Len(t, styles, 1)
	assert.Equal(t, []float64{1, 2, 3}, styles[0].(*LineStyle).Stroke.LineDash)

	forest := &ownmap.SimpleFeature{
		Properties:   ownmap.PropertyMap{"landuse": "forest"},
		GeometryType: ownmap.GeometryTypePolygon,
	}
	styles = style.GetFeatureStyles(forest, 10)
	require.Len(t, styles, 1)
	assert.Equal(t, InstructionTypeFill, styles[0].GetType())

	unknownHighway := &ownmap.SimpleFeature{
		Properties:   ownmap.PropertyMap{"highway": "proposed"},
		GeometryType: ownmap.GeometryTypeLineString,
	}
	assert.Empty(t, style.GetFeatureStyles(unknownHighway, 10))
}

func TestNewDrawInstructions(t *testing.T) {
	instructions := NewDrawInstructions([]ItemStyle{
		&FillStyle{Fill: &Fill{Color: Color{1, 2, 3, 1}}, ZIndex: 1},
		&TextStyle{Text: "Bergen", ZIndex: 2},
	})

	require.Len(t, instructions, 2)
	assert.Equal(t, InstructionTypeFill, instructions[0].Type)
	assert.Equal(t, InstructionTypeText, instructions[1].Type)
	assert.Equal(t, 2, instructions[1].Style.GetZIndex())

	assert.Equal(t, []*DrawInstruction{}, NewDrawInstructions(nil))
}
