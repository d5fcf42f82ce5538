package mapboxglstyle

import (
	"math"
	"os"

	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-gis/ownmap"
	"github.com/jamesrr39/ownmap-gis/styling"
)

// BackgroundRenderer is the live map chrome a background layer paints. nil colors mean "no background".
// A StyleFunction calls it from the evaluating goroutine; MapboxGLStyle serialises the calls of its pooled functions.
type BackgroundRenderer interface {
	SetBackgroundColor(color *styling.Color)
}

type CompileOptions struct {
	View     ownmap.View
	Renderer BackgroundRenderer
	Logger   *logpkg.Logger
}

// compiledLayer is the immutable form of a layer. properties is a private copy of layout and paint,
// so constant memoisation never touches the caller's layer.
type compiledLayer struct {
	layer      *Layer
	properties Properties
	filter     FilterFunc
}

// StyleRoot is the evaluation context of one style function.
// Its caches are never evicted and it is not safe for concurrent use.
type StyleRoot struct {
	constants Constants
	layers    []*compiledLayer
	view      ownmap.View
	renderer  BackgroundRenderer
	logger    *logpkg.Logger

	cachedZoom       map[float64]int
	cachedColor      map[string]styling.Color
	cachedBackground *styling.Color
}

type StyleFunction struct {
	root *StyleRoot
}

func Compile(layers []*Layer, constants Constants, options *CompileOptions) *StyleFunction {
	if options == nil {
		options = &CompileOptions{}
	}

	view := options.View
	if view == nil {
		view = ownmap.DefaultView
	}

	logger := options.Logger
	if logger == nil {
		logger = logpkg.NewLogger(os.Stderr, logpkg.LogLevelWarn)
	}

	root := &StyleRoot{
		constants:   constants,
		view:        view,
		renderer:    options.Renderer,
		logger:      logger,
		cachedZoom:  make(map[float64]int),
		cachedColor: make(map[string]styling.Color),
	}

	for _, layer := range layers {
		if layer == nil {
			continue
		}

		cl := &compiledLayer{
			layer:      layer,
			properties: mergeLayoutAndPaint(layer.Layout, layer.Paint),
		}
		if layer.Filter != nil {
			cl.filter = CompileFilter(substituteFilterConstants(layer.Filter, constants))
		}

		root.layers = append(root.layers, cl)
	}

	return &StyleFunction{root}
}

// ApplyFeatureStyles styles a batch of features with one shared root
func ApplyFeatureStyles(features []ownmap.Feature, layers []*Layer, constants Constants, resolution float64, options *CompileOptions) [][]styling.ItemStyle {
	styleFunc := Compile(layers, constants, options)

	results := make([][]styling.ItemStyle, len(features))
	for i, feature := range features {
		results[i] = styleFunc.Evaluate(feature, resolution)
	}
	return results
}

func (sf *StyleFunction) ZoomForResolution(resolution float64) int {
	return sf.root.zoomForResolution(resolution)
}

func (sf *StyleFunction) ColorWithOpacity(colorString string, opacity float64) *styling.Color {
	return sf.root.ColorWithOpacity(colorString, opacity)
}

// Evaluate returns the draw instructions of every layer that applies to the feature, in layer order.
// Every layer takes a zIndex, starting at 1, whether or not it applies.
func (sf *StyleFunction) Evaluate(feature ownmap.Feature, resolution float64) []styling.ItemStyle {
	root := sf.root
	zoom := root.zoomForResolution(resolution)
	properties := feature.GetProperties()

	var styles []styling.ItemStyle
	zIndex := 0
	for _, cl := range root.layers {
		zIndex++

		if cl.layer.Type == LayerTypeBackground {
			root.applyBackground(cl, zoom)
			continue
		}

		if !root.isLayerApplicable(cl, feature, properties, zoom) {
			continue
		}

		styles = append(styles, root.buildStyles(cl, properties, zoom, zIndex)...)
	}

	return styles
}

func (root *StyleRoot) isLayerApplicable(cl *compiledLayer, feature ownmap.Feature, properties ownmap.PropertyMap, zoom int) bool {
	layer := cl.layer

	if root.resolveString(cl.properties, keyVisibility, zoom, "") == visibilityNone {
		return false
	}

	if layer.SourceLayer != "" {
		featureLayer, _ := properties[ownmap.LayerPropertyKey].(string)
		if featureLayer != layer.SourceLayer {
			return false
		}
	}

	if layer.MinZoom != nil && float64(zoom) < *layer.MinZoom {
		return false
	}

	if layer.MaxZoom != nil && float64(zoom) > *layer.MaxZoom {
		return false
	}

	if cl.filter != nil && !cl.filter(properties, feature) {
		return false
	}

	return true
}

func (root *StyleRoot) buildStyles(cl *compiledLayer, properties ownmap.PropertyMap, zoom, zIndex int) []styling.ItemStyle {
	var styles []styling.ItemStyle

	switch cl.layer.Type {
	case LayerTypeCircle:
		styles = append(styles, root.buildCircleStyle(cl, zoom, zIndex))
	case LayerTypeLine:
		styles = append(styles, root.buildLineStyle(cl, zoom, zIndex))
	case LayerTypeFill:
		styles = append(styles, root.buildFillStyle(cl, zoom, zIndex))
	case LayerTypeText:
		if textStyle := root.buildTextStyle(cl, properties, zoom, zIndex); textStyle != nil {
			styles = append(styles, textStyle)
		}
	case LayerTypeIcon:
		if iconStyle := root.buildIconStyle(cl, properties, zoom, zIndex); iconStyle != nil {
			styles = append(styles, iconStyle)
		}
	case LayerTypeSymbol:
		if iconStyle := root.buildIconStyle(cl, properties, zoom, zIndex); iconStyle != nil {
			styles = append(styles, iconStyle)
		}
		if textStyle := root.buildTextStyle(cl, properties, zoom, zIndex); textStyle != nil {
			styles = append(styles, textStyle)
		}
	default:
		root.logger.Debug("skipping layer %q with unsupported type %q", cl.layer.ID, cl.layer.Type)
	}

	return styles
}

func (root *StyleRoot) zoomForResolution(resolution float64) int {
	zoom, ok := root.cachedZoom[resolution]
	if ok {
		return zoom
	}

	zoom = int(math.Floor(root.view.ZoomForResolution(resolution)))
	if math.IsNaN(resolution) {
		// NaN keys are never found again
		return zoom
	}
	root.cachedZoom[resolution] = zoom
	return zoom
}

func (root *StyleRoot) backgroundColor(cl *compiledLayer, zoom int) *styling.Color {
	colorString := root.resolveString(cl.properties, keyBackgroundColor, zoom, defaultBlack)
	if root.resolveString(cl.properties, keyVisibility, zoom, "") == visibilityNone {
		colorString = defaultBlack
	}

	opacity := root.resolveNumber(cl.properties, keyBackgroundOpacity, zoom, defaultOpacity)
	return root.ColorWithOpacity(colorString, opacity)
}

func (root *StyleRoot) applyBackground(cl *compiledLayer, zoom int) {
	if root.renderer == nil {
		return
	}

	color := root.backgroundColor(cl, zoom)
	if colorsEqual(color, root.cachedBackground) {
		return
	}

	root.logger.Debug("background of layer %q changed to %v", cl.layer.ID, color)
	root.renderer.SetBackgroundColor(color)
	root.cachedBackground = color
}

func colorsEqual(a, b *styling.Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
