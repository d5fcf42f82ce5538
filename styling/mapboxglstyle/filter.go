package mapboxglstyle

import (
	"encoding/json"
	"strings"

	"github.com/jamesrr39/ownmap-gis/ownmap"
)

const (
	FilterOperatorEquals             = "=="
	FilterOperatorNotEqual           = "!="
	FilterOperatorLessThan           = "<"
	FilterOperatorGreaterThan        = ">"
	FilterOperatorLessThanOrEqual    = "<="
	FilterOperatorGreaterThanOrEqual = ">="
	FilterOperatorAny                = "any"
	FilterOperatorAll                = "all"
	FilterOperatorNone               = "none"
	FilterOperatorIn                 = "in"
	FilterOperatorNotIn              = "!in"
	FilterOperatorHas                = "has"
	FilterOperatorNotHas             = "!has"
)

const (
	FilterThingType = "$type"
	FilterThingID   = "$id"

	FilterThingClass    = "class"
	FilterThingSubclass = "subclass"
)

/*
	"filter": ["==", "$type", "Point"],

	"filter": ["all",["==","$type","Polygon"],["in","class","residential","suburb","neighbourhood"]]
*/

// Filter is a decoded JSON S-expression: [operator, args...]
type Filter interface{}

// FilterFeature is what a filter needs from a feature besides its properties
type FilterFeature interface {
	GetID() interface{}
	GetGeometryType() ownmap.GeometryType
}

type FilterFunc func(properties ownmap.PropertyMap, feature FilterFeature) bool

// CompileFilter returns nil for a nil filter
func CompileFilter(filter Filter) FilterFunc {
	if filter == nil {
		return nil
	}

	return func(properties ownmap.PropertyMap, feature FilterFeature) bool {
		return EvaluateFilter(filter, properties, feature)
	}
}

// EvaluateFilter never fails. Anything it doesn't understand passes.
func EvaluateFilter(filter Filter, properties ownmap.PropertyMap, feature FilterFeature) bool {
	if filter == nil {
		return true
	}

	base, ok := filter.([]interface{})
	if !ok || len(base) == 0 {
		return true
	}

	operator, ok := base[0].(string)
	if !ok {
		return true
	}

	if len(base) <= 1 {
		return operator != FilterOperatorAny
	}

	switch operator {
	case FilterOperatorEquals,
		FilterOperatorNotEqual,
		FilterOperatorLessThan,
		FilterOperatorGreaterThan,
		FilterOperatorLessThanOrEqual,
		FilterOperatorGreaterThanOrEqual:
		key, ok := base[1].(string)
		if !ok || len(base) < 3 {
			return true
		}
		value, found := lookupFilterValue(key, properties, feature)
		return compareFilterValues(operator, value, found, filterLiteral(key, base[2]))
	case FilterOperatorAny:
		for _, subFilter := range base[1:] {
			if EvaluateFilter(subFilter, properties, feature) {
				return true
			}
		}
		return false
	case FilterOperatorAll:
		for _, subFilter := range base[1:] {
			if !EvaluateFilter(subFilter, properties, feature) {
				return false
			}
		}
		return true
	case FilterOperatorNone:
		for _, subFilter := range base[1:] {
			if EvaluateFilter(subFilter, properties, feature) {
				return false
			}
		}
		return true
	case FilterOperatorIn, FilterOperatorNotIn:
		key, ok := base[1].(string)
		if !ok {
			return true
		}
		isIn := isInFilterValues(key, base[2:], properties, feature)
		if operator == FilterOperatorNotIn {
			return !isIn
		}
		return isIn
	case FilterOperatorHas, FilterOperatorNotHas:
		key, ok := base[1].(string)
		if !ok {
			return true
		}
		has := hasFilterKey(key, properties)
		if operator == FilterOperatorNotHas {
			return !has
		}
		return has
	default:
		return true
	}
}

func lookupFilterValue(key string, properties ownmap.PropertyMap, feature FilterFeature) (interface{}, bool) {
	switch key {
	case FilterThingType:
		if feature == nil {
			return float64(ownmap.GeometryTypeUnknown), true
		}
		return float64(feature.GetGeometryType()), true
	case FilterThingID:
		if feature != nil {
			if id := feature.GetID(); id != nil {
				return id, true
			}
		}
		value, ok := properties["id"]
		return value, ok
	default:
		value, ok := properties[key]
		return value, ok
	}
}

// filterLiteral converts geometry type names into their ordinal when the key is $type
func filterLiteral(key string, value interface{}) interface{} {
	if key != FilterThingType {
		return value
	}

	name, ok := value.(string)
	if !ok {
		return value
	}

	return float64(ownmap.GeometryTypeFromName(name))
}

func isInFilterValues(key string, values []interface{}, properties ownmap.PropertyMap, feature FilterFeature) bool {
	value, found := lookupFilterValue(key, properties, feature)
	if !found {
		return false
	}

	for _, candidate := range values {
		if compareFilterValues(FilterOperatorEquals, value, true, filterLiteral(key, candidate)) {
			return true
		}
	}
	return false
}

func hasFilterKey(key string, properties ownmap.PropertyMap) bool {
	if key == FilterThingID {
		key = "id"
	}
	_, ok := properties[key]
	return ok
}

func compareFilterValues(operator string, left interface{}, leftFound bool, right interface{}) bool {
	if !leftFound {
		return operator == FilterOperatorNotEqual
	}

	leftNumber, leftIsNumber := toFloat64(left)
	rightNumber, rightIsNumber := toFloat64(right)
	if leftIsNumber && rightIsNumber {
		return compareOrdered(operator, leftNumber, rightNumber)
	}

	leftString, leftIsString := left.(string)
	rightString, rightIsString := right.(string)
	if leftIsString && rightIsString {
		return compareOrdered(operator, strings.Compare(leftString, rightString), 0)
	}

	leftBool, leftIsBool := left.(bool)
	rightBool, rightIsBool := right.(bool)
	if leftIsBool && rightIsBool {
		switch operator {
		case FilterOperatorEquals:
			return leftBool == rightBool
		case FilterOperatorNotEqual:
			return leftBool != rightBool
		default:
			return false
		}
	}

	if left == nil && right == nil {
		switch operator {
		case FilterOperatorEquals, FilterOperatorLessThanOrEqual, FilterOperatorGreaterThanOrEqual:
			return true
		default:
			return false
		}
	}

	// mismatched types
	return operator == FilterOperatorNotEqual
}

func compareOrdered[T int | float64](operator string, left, right T) bool {
	switch operator {
	case FilterOperatorEquals:
		return left == right
	case FilterOperatorNotEqual:
		return left != right
	case FilterOperatorLessThan:
		return left < right
	case FilterOperatorGreaterThan:
		return left > right
	case FilterOperatorLessThanOrEqual:
		return left <= right
	case FilterOperatorGreaterThanOrEqual:
		return left >= right
	default:
		return false
	}
}

func toFloat64(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// substituteFilterConstants replaces "@name" literals with their constant value. The input is not modified.
func substituteFilterConstants(filter Filter, constants Constants) Filter {
	switch f := filter.(type) {
	case []interface{}:
		substituted := make([]interface{}, len(f))
		for i, item := range f {
			substituted[i] = substituteFilterConstants(item, constants)
		}
		return substituted
	case string:
		if strings.HasPrefix(f, constantPrefix) {
			if constant, ok := constants[f]; ok {
				return constant
			}
		}
		return f
	default:
		return f
	}
}
