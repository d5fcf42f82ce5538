package predicate

import (
	"github.com/jamesrr39/goutil/errorsx"
)

type OperatorType string

const (
	OperatorTypeEqual      OperatorType = "equal"
	OperatorTypeLike       OperatorType = "like"
	OperatorTypeIlike      OperatorType = "ilike"
	OperatorTypeIn         OperatorType = "in"
	OperatorTypeAnd        OperatorType = "and"
	OperatorTypeOr         OperatorType = "or"
	OperatorTypeNull       OperatorType = "null"
	OperatorTypeComparison OperatorType = "comparison"
)

const (
	SymbolLowerThan          = "<"
	SymbolLowerOrEqualThan   = "<="
	SymbolGreaterThan        = ">"
	SymbolGreaterOrEqualThan = ">="
)

var invertedSymbols = map[string]string{
	SymbolLowerThan:          SymbolGreaterOrEqualThan,
	SymbolLowerOrEqualThan:   SymbolGreaterThan,
	SymbolGreaterThan:        SymbolLowerOrEqualThan,
	SymbolGreaterOrEqualThan: SymbolLowerThan,
}

var ogcComparisonElements = map[string]string{
	SymbolLowerThan:          "PropertyIsLessThan",
	SymbolLowerOrEqualThan:   "PropertyIsLessThanOrEqualTo",
	SymbolGreaterThan:        "PropertyIsGreaterThan",
	SymbolGreaterOrEqualThan: "PropertyIsGreaterThanOrEqualTo",
}

// Operator is the middle of a predicate. Symbol is only used by comparison operators.
type Operator struct {
	Type   OperatorType `json:"type"`
	Not    bool         `json:"not,omitempty"`
	Symbol string       `json:"symbol,omitempty"`
}

func NewOperator(operatorType OperatorType, not bool) *Operator {
	return &Operator{Type: operatorType, Not: not}
}

func newComparisonOperator(symbol string, not bool) *Operator {
	return &Operator{Type: OperatorTypeComparison, Not: not, Symbol: symbol}
}

func isNegated(operator *Operator) bool {
	return operator != nil && operator.Not
}

// effectiveSymbol folds the Not flag into the comparison symbol
func (o *Operator) effectiveSymbol() string {
	if !o.Not {
		return o.Symbol
	}
	return invertedSymbols[o.Symbol]
}

// ToString renders the operator token. Under OGC it is the filter encoding element name.
func (o *Operator) ToString(dialect Dialect) (string, errorsx.Error) {
	if dialect == DialectOGC {
		return o.ogcElement()
	}

	switch o.Type {
	case OperatorTypeEqual:
		if !o.Not {
			return "=", nil
		}
		if dialect == DialectDefault {
			return "!=", nil
		}
		return "<>", nil
	case OperatorTypeLike:
		return o.withNot("LIKE"), nil
	case OperatorTypeIlike:
		if dialect == DialectSQL {
			return o.withNot("LIKE"), nil
		}
		return o.withNot("ILIKE"), nil
	case OperatorTypeIn:
		return o.withNot("IN"), nil
	case OperatorTypeNull:
		if o.Not {
			return "IS NOT NULL", nil
		}
		return "IS NULL", nil
	case OperatorTypeComparison:
		symbol := o.effectiveSymbol()
		if symbol == "" {
			return "", errorsx.Errorf("unknown comparison symbol: %q", o.Symbol)
		}
		return symbol, nil
	case OperatorTypeAnd:
		return "AND", nil
	case OperatorTypeOr:
		return "OR", nil
	default:
		return "", errorsx.Errorf("unknown operator type: %q", o.Type)
	}
}

func (o *Operator) withNot(token string) string {
	if o.Not {
		return "NOT " + token
	}
	return token
}

func (o *Operator) ogcElement() (string, errorsx.Error) {
	switch o.Type {
	case OperatorTypeEqual:
		if o.Not {
			return "PropertyIsNotEqualTo", nil
		}
		return "PropertyIsEqualTo", nil
	case OperatorTypeLike, OperatorTypeIlike:
		return "PropertyIsLike", nil
	case OperatorTypeNull:
		return "PropertyIsNull", nil
	case OperatorTypeComparison:
		element, ok := ogcComparisonElements[o.effectiveSymbol()]
		if !ok {
			return "", errorsx.Errorf("unknown comparison symbol: %q", o.Symbol)
		}
		return element, nil
	case OperatorTypeAnd, OperatorTypeOr, OperatorTypeIn:
		return "", unsupportedDialectError(o.Type, DialectOGC)
	default:
		return "", errorsx.Errorf("unknown operator type: %q", o.Type)
	}
}
