package mapboxglstyle

import (
	"github.com/jamesrr39/ownmap-gis/ownmap"
	"github.com/jamesrr39/ownmap-gis/styling"
)

func (root *StyleRoot) buildCircleStyle(cl *compiledLayer, zoom, zIndex int) *styling.CircleStyle {
	props := cl.properties

	style := &styling.CircleStyle{
		LayerID: cl.layer.ID,
		Radius:  root.resolveNumber(props, keyCircleRadius, zoom, defaultCircleRadius),
		ZIndex:  zIndex,
	}

	strokeColor := root.ColorWithOpacity(
		root.resolveString(props, keyCircleStrokeColor, zoom, defaultBlack),
		root.resolveNumber(props, keyCircleStrokeOpacity, zoom, defaultOpacity),
	)
	if strokeColor != nil {
		style.Stroke = &styling.Stroke{
			Color: *strokeColor,
			Width: root.resolveNumber(props, keyCircleStrokeWidth, zoom, defaultStrokeWidth),
		}
	}

	fillColor := root.ColorWithOpacity(
		root.resolveString(props, keyCircleColor, zoom, defaultBlack),
		root.resolveNumber(props, keyCircleOpacity, zoom, defaultOpacity),
	)
	if fillColor != nil {
		style.Fill = &styling.Fill{Color: *fillColor}
	}

	return style
}

func (root *StyleRoot) buildLineStyle(cl *compiledLayer, zoom, zIndex int) *styling.LineStyle {
	props := cl.properties

	style := &styling.LineStyle{
		LayerID: cl.layer.ID,
		ZIndex:  zIndex,
	}

	color := root.ColorWithOpacity(
		root.resolveString(props, keyLineColor, zoom, defaultWhite),
		root.resolveNumber(props, keyLineOpacity, zoom, defaultOpacity),
	)
	if color == nil {
		return style
	}

	width := root.resolveNumber(props, keyLineWidth, zoom, defaultStrokeWidth)

	var lineDash []float64
	for _, dash := range root.resolveNumbers(props, keyLineDashArray, zoom, 0) {
		lineDash = append(lineDash, dash*width)
	}

	style.Stroke = &styling.Stroke{
		Color:      *color,
		Width:      width,
		LineCap:    root.resolveString(props, keyLineCap, zoom, defaultLineCap),
		LineJoin:   root.resolveString(props, keyLineJoin, zoom, defaultLineJoin),
		MiterLimit: root.resolveNumber(props, keyLineMiterLimit, zoom, defaultMiterLimit),
		LineDash:   lineDash,
	}

	return style
}

func (root *StyleRoot) buildFillStyle(cl *compiledLayer, zoom, zIndex int) *styling.FillStyle {
	props := cl.properties

	style := &styling.FillStyle{
		LayerID: cl.layer.ID,
		ZIndex:  zIndex,
	}

	opacity := root.resolveNumber(props, keyFillOpacity, zoom, defaultOpacity)

	color := root.ColorWithOpacity(root.resolveString(props, keyFillColor, zoom, defaultWhite), opacity)
	if color != nil {
		style.Fill = &styling.Fill{Color: *color}
	}

	outlineColorString := root.resolveString(props, keyFillOutlineColor, zoom, "")
	if outlineColorString != "" {
		outlineColor := root.ColorWithOpacity(outlineColorString, opacity)
		if outlineColor != nil {
			style.Stroke = &styling.Stroke{Color: *outlineColor, Width: defaultStrokeWidth}
		}
	}

	return style
}

// buildTextStyle returns nil when the layer has no text-field
func (root *StyleRoot) buildTextStyle(cl *compiledLayer, properties ownmap.PropertyMap, zoom, zIndex int) *styling.TextStyle {
	props := cl.properties

	textField := root.resolveString(props, keyTextField, zoom, "")
	if textField == "" {
		return nil
	}

	text := transformText(
		substituteTemplate(textField, properties),
		root.resolveString(props, keyTextTransform, zoom, ""),
	)

	font := root.resolveFont(props)
	if size := root.resolve(props, keyTextSize, zoom, nil); size != nil {
		if sizePx, ok := size.(float64); ok {
			font.SizePx = sizePx
		}
	}

	style := &styling.TextStyle{
		LayerID:      cl.layer.ID,
		Text:         text,
		Font:         font,
		TextAlign:    root.resolveString(props, keyTextAlign, zoom, defaultTextAlign),
		TextBaseline: root.resolveString(props, keyTextBaseline, zoom, defaultTextBaseline),
		Placement:    root.resolveString(props, keySymbolPlacement, zoom, defaultPlacement),
		ZIndex:       zIndex,
	}

	fillColor := root.ColorWithOpacity(
		root.resolveString(props, keyTextColor, zoom, defaultBlack),
		root.resolveNumber(props, keyTextOpacity, zoom, defaultOpacity),
	)
	if fillColor != nil {
		style.Fill = &styling.Fill{Color: *fillColor}
	}

	haloColor := root.ColorWithOpacity(
		root.resolveString(props, keyTextHaloColor, zoom, defaultTransparent),
		root.resolveNumber(props, keyTextHaloOpacity, zoom, defaultOpacity),
	)
	if haloColor != nil {
		style.Halo = &styling.Stroke{
			Color: *haloColor,
			Width: root.resolveNumber(props, keyTextHaloWidth, zoom, defaultStrokeWidth),
		}
	}

	if offset := root.resolveNumbers(props, keyTextOffset, zoom, 0); len(offset) == 2 {
		style.OffsetX = offset[0]
		style.OffsetY = offset[1]
	}

	if padding := root.resolveNumbers(props, keyTextPadding, zoom, 4); len(padding) == 4 {
		copy(style.Padding[:], padding)
	}

	backgroundColorString := root.resolveString(props, keyTextBackgroundColor, zoom, "")
	if backgroundColorString != "" {
		backgroundColor := root.ColorWithOpacity(
			backgroundColorString,
			root.resolveNumber(props, keyTextBackgroundOpacity, zoom, defaultOpacity),
		)
		if backgroundColor != nil {
			style.BackgroundFill = &styling.Fill{Color: *backgroundColor}
		}
	}

	backgroundStrokeColorString := root.resolveString(props, keyTextBackgroundStrokeColor, zoom, "")
	if backgroundStrokeColorString != "" {
		backgroundStrokeColor := root.ColorWithOpacity(backgroundStrokeColorString, defaultOpacity)
		if backgroundStrokeColor != nil {
			style.BackgroundStroke = &styling.Stroke{
				Color: *backgroundStrokeColor,
				Width: root.resolveNumber(props, keyTextBackgroundStrokeWidth, zoom, defaultStrokeWidth),
			}
		}
	}

	return style
}

// resolveFont accepts a CSS shorthand string or a Mapbox font stack, of which the first font is used
func (root *StyleRoot) resolveFont(props Properties) styling.Font {
	switch font := root.resolveRaw(props, keyTextFont).(type) {
	case string:
		return ParseFont(font)
	case []interface{}:
		if len(font) != 0 {
			if first, ok := font[0].(string); ok {
				return ParseFont(first)
			}
		}
	}

	return ParseFont(defaultFont)
}

// buildIconStyle returns nil when the layer has no icon-image
func (root *StyleRoot) buildIconStyle(cl *compiledLayer, properties ownmap.PropertyMap, zoom, zIndex int) *styling.IconStyle {
	props := cl.properties

	image := root.resolveString(props, keyIconImage, zoom, "")
	if image == "" {
		return nil
	}

	return &styling.IconStyle{
		LayerID:  cl.layer.ID,
		Src:      substituteTemplate(image, properties),
		Scale:    root.resolveNumber(props, keyIconSize, zoom, defaultIconScale),
		Opacity:  root.resolveNumber(props, keyIconOpacity, zoom, defaultOpacity),
		Rotation: root.resolveNumber(props, keyIconRotate, zoom, 0),
		ZIndex:   zIndex,
	}
}
