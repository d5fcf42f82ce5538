package mapboxglstyle

// paint and layout property keys
const (
	keyVisibility = "visibility"

	keyBackgroundColor   = "background-color"
	keyBackgroundOpacity = "background-opacity"

	keyCircleRadius        = "circle-radius"
	keyCircleColor         = "circle-color"
	keyCircleOpacity       = "circle-opacity"
	keyCircleStrokeColor   = "circle-stroke-color"
	keyCircleStrokeOpacity = "circle-stroke-opacity"
	keyCircleStrokeWidth   = "circle-stroke-width"

	keyLineWidth      = "line-width"
	keyLineDashArray  = "line-dasharray"
	keyLineColor      = "line-color"
	keyLineOpacity    = "line-opacity"
	keyLineCap        = "line-cap"
	keyLineJoin       = "line-join"
	keyLineMiterLimit = "line-miter-limit"

	keyFillColor        = "fill-color"
	keyFillOpacity      = "fill-opacity"
	keyFillOutlineColor = "fill-outline-color"

	keyTextField                 = "text-field"
	keyTextTransform             = "text-transform"
	keyTextFont                  = "text-font"
	keyTextSize                  = "text-size"
	keyTextColor                 = "text-color"
	keyTextOpacity               = "text-opacity"
	keyTextHaloColor             = "text-halo-color"
	keyTextHaloOpacity           = "text-halo-opacity"
	keyTextHaloWidth             = "text-halo-width"
	keyTextOffset                = "text-offset"
	keyTextBackgroundColor       = "text-background-color"
	keyTextBackgroundOpacity     = "text-background-opacity"
	keyTextBackgroundStrokeColor = "text-background-stroke-color"
	keyTextBackgroundStrokeWidth = "text-background-stroke-width"
	keyTextAlign                 = "text-align"
	keyTextBaseline              = "text-baseline"
	keyTextPadding               = "text-padding"
	keySymbolPlacement           = "symbol-placement"

	keyIconImage   = "icon-image"
	keyIconSize    = "icon-size"
	keyIconOpacity = "icon-opacity"
	keyIconRotate  = "icon-rotate"
)

const (
	visibilityNone = "none"

	defaultFont         = "16px sans-serif"
	defaultBlack        = "#000000"
	defaultWhite        = "#FFFFFF"
	defaultTransparent  = "rgba(0,0,0,0)"
	defaultLineCap      = "butt"
	defaultLineJoin     = "miter"
	defaultTextAlign    = "center"
	defaultTextBaseline = "center"
	defaultPlacement    = "point"
	defaultCircleRadius = 5
	defaultMiterLimit   = 2
	defaultStrokeWidth  = 1
	defaultOpacity      = 1
	defaultIconScale    = 1
	textTransformUpper  = "uppercase"
	textTransformLower  = "lowercase"
)

// mergeLayoutAndPaint builds the single lookup map used by the paint builders
func mergeLayoutAndPaint(layout, paint Properties) Properties {
	merged := make(Properties, len(layout)+len(paint))
	for k, v := range layout {
		merged[k] = v
	}
	for k, v := range paint {
		merged[k] = v
	}
	return merged
}
