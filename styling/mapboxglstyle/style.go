package mapboxglstyle

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-gis/ownmap"
	"github.com/jamesrr39/ownmap-gis/styling"
)

// MapboxGLStyle is a style document. It is safe for concurrent use; each goroutine evaluates with its own StyleRoot.
type MapboxGLStyle struct {
	Version   int       `json:"version"`
	Name      string    `json:"name"`
	Sources   Sources   `json:"sources,omitempty"`
	Constants Constants `json:"constants,omitempty"`
	Layers    []*Layer  `json:"layers"`

	options *CompileOptions
	pool    *sync.Pool
}

func Parse(reader io.Reader) (*MapboxGLStyle, errorsx.Error) {
	return ParseWithOptions(reader, nil)
}

func ParseWithOptions(reader io.Reader, options *CompileOptions) (*MapboxGLStyle, errorsx.Error) {
	style := new(MapboxGLStyle)
	err := json.NewDecoder(reader).Decode(style)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	for i, layer := range style.Layers {
		if layer == nil {
			return nil, errorsx.Errorf("layer %d is empty", i)
		}
		err := layer.Validate()
		if err != nil {
			return nil, errorsx.Wrap(err, "layerID", layer.ID)
		}
	}

	style.init(options)
	return style, nil
}

// NewMapboxGLStyle builds a style from layers already in memory
func NewMapboxGLStyle(name string, layers []*Layer, constants Constants, options *CompileOptions) (*MapboxGLStyle, errorsx.Error) {
	for _, layer := range layers {
		err := layer.Validate()
		if err != nil {
			return nil, errorsx.Wrap(err, "layerID", layer.ID)
		}
	}

	style := &MapboxGLStyle{
		Version:   8,
		Name:      name,
		Constants: constants,
		Layers:    layers,
	}
	style.init(options)
	return style, nil
}

func (s *MapboxGLStyle) init(options *CompileOptions) {
	if options != nil && options.Renderer != nil {
		shared := *options
		shared.Renderer = &syncedBackgroundRenderer{renderer: options.Renderer}
		options = &shared
	}

	s.options = options
	s.pool = &sync.Pool{
		New: func() interface{} {
			return s.StyleFunction()
		},
	}
}

// StyleFunction compiles a new style function with its own root
func (s *MapboxGLStyle) StyleFunction() *StyleFunction {
	return Compile(s.Layers, s.Constants, s.options)
}

func (s *MapboxGLStyle) GetFeatureStyles(feature ownmap.Feature, resolution float64) []styling.ItemStyle {
	styleFunc := s.pool.Get().(*StyleFunction)
	defer s.pool.Put(styleFunc)

	return styleFunc.Evaluate(feature, resolution)
}

// GetBackground gives the background color at zoom 0, or nil if the style has no visible background
func (s *MapboxGLStyle) GetBackground() *styling.Color {
	styleFunc := s.pool.Get().(*StyleFunction)
	defer s.pool.Put(styleFunc)

	return styleFunc.Background(0)
}

func (s *MapboxGLStyle) GetStyleID() string {
	return s.Name
}

// Background gives the color of the first background layer at the zoom
func (sf *StyleFunction) Background(zoom int) *styling.Color {
	for _, cl := range sf.root.layers {
		if cl.layer.Type == LayerTypeBackground {
			return sf.root.backgroundColor(cl, zoom)
		}
	}
	return nil
}

// syncedBackgroundRenderer is shared by the pooled style functions of a style.
// It serialises calls to the renderer and only passes on changes of color.
type syncedBackgroundRenderer struct {
	mu       sync.Mutex
	renderer BackgroundRenderer
	current  *styling.Color
}

func (r *syncedBackgroundRenderer) SetBackgroundColor(color *styling.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if colorsEqual(color, r.current) {
		return
	}

	r.renderer.SetBackgroundColor(color)
	r.current = color
}
