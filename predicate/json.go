package predicate

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/jamesrr39/goutil/errorsx"
)

/*
{"and": [{"field": {"key": "pop", "type": "number"}, "operator": ">", "value": 1000}, {...}]}

{"field": {"key": "name", "type": "string"}, "operator": "ilike", "not": true, "value": "%berg%"}
*/
type predicateJSON struct {
	And      []json.RawMessage `json:"and"`
	Or       []json.RawMessage `json:"or"`
	Field    *Field            `json:"field"`
	Operator string            `json:"operator"`
	Not      bool              `json:"not"`
	Value    interface{}       `json:"value"`
}

// ParseJSON decodes one predicate tree
func ParseJSON(data []byte) (Predicate, errorsx.Error) {
	pj := new(predicateJSON)
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	err := decoder.Decode(pj)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	return pj.toPredicate()
}

// ParseJSONList decodes an array of predicate trees
func ParseJSONList(data []byte) ([]Predicate, errorsx.Error) {
	var raws []json.RawMessage
	err := json.Unmarshal(data, &raws)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	return ParseRawMessages(raws)
}

func ParseRawMessages(raws []json.RawMessage) ([]Predicate, errorsx.Error) {
	predicates := make([]Predicate, 0, len(raws))
	for i, raw := range raws {
		p, err := ParseJSON(raw)
		if err != nil {
			return nil, errorsx.Wrap(err, "index", i)
		}
		predicates = append(predicates, p)
	}
	return predicates, nil
}

func (pj *predicateJSON) toPredicate() (Predicate, errorsx.Error) {
	switch {
	case pj.And != nil:
		return composeJSON(pj.And, And)
	case pj.Or != nil:
		return composeJSON(pj.Or, Or)
	case pj.Field == nil:
		return nil, errorsx.Errorf("predicate needs one of 'and', 'or' or 'field'")
	}

	field := *pj.Field
	err := field.Validate()
	if err != nil {
		return nil, err
	}
	if field.Type == "" {
		field.Type = FieldTypeUnknown
	}
	operator := NewOperator("", pj.Not)
	value := pj.Value
	if !isScalarJSON(value) && pj.Operator != "in" {
		return nil, errorsx.Errorf("operator %q needs a string, number, boolean or null value but got %T", pj.Operator, value)
	}
	if field.Type == FieldTypeDate {
		value = parseTimeValue(value)
	}

	switch pj.Operator {
	case "equal", "=", "==":
		return Equal(field, operator, value), nil
	case "like":
		return Like(field, operator, value), nil
	case "ilike":
		return Ilike(field, operator, value), nil
	case "in":
		values, ok := value.([]interface{})
		if !ok {
			return nil, errorsx.Errorf("'in' needs an array value but got %T", value)
		}
		for i, element := range values {
			if !isScalarJSON(element) {
				return nil, errorsx.Errorf("'in' element %d is a %T, not a string, number, boolean or null", i, element)
			}
		}
		if field.Type == FieldTypeDate {
			for i := range values {
				values[i] = parseTimeValue(values[i])
			}
		}
		return In(field, operator, values), nil
	case "null":
		return Null(field, operator), nil
	case "gt", SymbolGreaterThan:
		return GreaterThan(field, operator, value), nil
	case "gte", SymbolGreaterOrEqualThan:
		return GreaterOrEqualThan(field, operator, value), nil
	case "lt", SymbolLowerThan:
		return LowerThan(field, operator, value), nil
	case "lte", SymbolLowerOrEqualThan:
		return LowerOrEqualThan(field, operator, value), nil
	default:
		return nil, errorsx.Errorf("unknown operator: %q", pj.Operator)
	}
}

func isScalarJSON(value interface{}) bool {
	switch value.(type) {
	case nil, string, bool, json.Number:
		return true
	default:
		return false
	}
}

func composeJSON(raws []json.RawMessage, composer func(left, right Predicate) *CompositePredicate) (Predicate, errorsx.Error) {
	if len(raws) < 2 {
		return nil, errorsx.Errorf("'and' and 'or' need at least 2 predicates, got %d", len(raws))
	}

	predicates, err := ParseRawMessages(raws)
	if err != nil {
		return nil, err
	}

	return Fold(predicates, composer), nil
}

func parseTimeValue(value interface{}) interface{} {
	s, ok := value.(string)
	if !ok {
		return value
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return value
	}
	return t
}
