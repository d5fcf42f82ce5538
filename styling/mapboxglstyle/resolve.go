package mapboxglstyle

import (
	"math"
	"sort"
	"strings"
)

const constantPrefix = "@"

// Constants maps "@name" references to literal values
type Constants map[string]interface{}

// resolve looks a paint/layout value up. Constant references are substituted and memoised into props,
// zoom functions are evaluated at zoom. Values that are not a string, finite number or boolean count as absent.
func (root *StyleRoot) resolve(props Properties, key string, zoom int, defaultValue interface{}) interface{} {
	value := root.resolveRaw(props, key)

	if stops, ok := newStopsFunction(value); ok {
		value = stops.evaluate(float64(zoom))
	}

	value = normaliseScalar(value)
	if value == nil {
		return defaultValue
	}
	return value
}

func (root *StyleRoot) resolveRaw(props Properties, key string) interface{} {
	value, ok := props[key]
	if !ok {
		return nil
	}

	reference, ok := value.(string)
	if !ok || !strings.HasPrefix(reference, constantPrefix) {
		return value
	}

	constant, ok := root.constants[reference]
	if !ok {
		return value
	}

	props[key] = constant
	return constant
}

func (root *StyleRoot) resolveString(props Properties, key string, zoom int, defaultValue string) string {
	s, ok := root.resolve(props, key, zoom, defaultValue).(string)
	if !ok {
		return defaultValue
	}
	return s
}

func (root *StyleRoot) resolveNumber(props Properties, key string, zoom int, defaultValue float64) float64 {
	f, ok := root.resolve(props, key, zoom, defaultValue).(float64)
	if !ok {
		return defaultValue
	}
	return f
}

// resolveNumbers reads a number array. A single number n is spread to every position when size > 0.
func (root *StyleRoot) resolveNumbers(props Properties, key string, zoom int, size int) []float64 {
	value := root.resolveRaw(props, key)
	if stops, ok := newStopsFunction(value); ok {
		value = stops.evaluate(float64(zoom))
	}

	if f, ok := toFloat64(value); ok && size > 0 && isFinite(f) {
		numbers := make([]float64, size)
		for i := range numbers {
			numbers[i] = f
		}
		return numbers
	}

	var items []interface{}
	switch v := value.(type) {
	case []interface{}:
		items = v
	case []float64:
		return append([]float64(nil), v...)
	default:
		return nil
	}

	numbers := make([]float64, 0, len(items))
	for _, item := range items {
		f, ok := toFloat64(item)
		if !ok || !isFinite(f) {
			return nil
		}
		numbers = append(numbers, f)
	}
	return numbers
}

func normaliseScalar(value interface{}) interface{} {
	switch v := value.(type) {
	case string, bool:
		return v
	default:
		f, ok := toFloat64(v)
		if !ok || !isFinite(f) {
			return nil
		}
		return f
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

type stop struct {
	Zoom  float64
	Value interface{}
}

// stopsFunction is a zoom function: {"base": 1.2, "stops": [[10, 1], [15, 4]]}
type stopsFunction struct {
	Base  float64
	Stops []stop
}

func newStopsFunction(value interface{}) (*stopsFunction, bool) {
	m, ok := value.(map[string]interface{})
	if !ok {
		return nil, false
	}

	rawStops, ok := m["stops"].([]interface{})
	if !ok || len(rawStops) == 0 {
		return nil, false
	}

	fn := &stopsFunction{Base: 1}
	if base, ok := toFloat64(m["base"]); ok && base > 0 {
		fn.Base = base
	}

	for _, rawStop := range rawStops {
		pair, ok := rawStop.([]interface{})
		if !ok || len(pair) != 2 {
			return nil, false
		}
		zoom, ok := toFloat64(pair[0])
		if !ok {
			return nil, false
		}
		fn.Stops = append(fn.Stops, stop{Zoom: zoom, Value: pair[1]})
	}

	sort.SliceStable(fn.Stops, func(i, j int) bool {
		return fn.Stops[i].Zoom < fn.Stops[j].Zoom
	})

	return fn, true
}

// evaluate interpolates between numeric stops and steps between any other values
func (fn *stopsFunction) evaluate(zoom float64) interface{} {
	first := fn.Stops[0]
	if zoom <= first.Zoom {
		return first.Value
	}

	last := fn.Stops[len(fn.Stops)-1]
	if zoom >= last.Zoom {
		return last.Value
	}

	for i := 1; i < len(fn.Stops); i++ {
		upper := fn.Stops[i]
		if zoom > upper.Zoom {
			continue
		}
		lower := fn.Stops[i-1]

		lowerValue, lowerIsNumber := toFloat64(lower.Value)
		upperValue, upperIsNumber := toFloat64(upper.Value)
		if !lowerIsNumber || !upperIsNumber {
			if zoom == upper.Zoom {
				return upper.Value
			}
			return lower.Value
		}

		t := interpolationFactor(fn.Base, zoom-lower.Zoom, upper.Zoom-lower.Zoom)
		return lowerValue + (upperValue-lowerValue)*t
	}

	return last.Value
}

func interpolationFactor(base, progress, difference float64) float64 {
	if difference == 0 {
		return 0
	}
	if base == 1 {
		return progress / difference
	}
	return (math.Pow(base, progress) - 1) / (math.Pow(base, difference) - 1)
}
