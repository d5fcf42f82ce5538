package predicate

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/jamesrr39/goutil/errorsx"
)

// Predicate is a node of a filter tree that can be pushed to a remote service
type Predicate interface {
	ToString(dialect Dialect) (string, errorsx.Error)
	// String renders the default dialect
	String() string
	// Hash is stable across processes, for use as a cache key
	Hash() uint64
}

var (
	_ Predicate = &FilterPredicate[int]{}
	_ Predicate = &CompositePredicate{}
)

// FilterPredicate is a "field operator value" leaf
type FilterPredicate[T any] struct {
	Field    Field
	Operator *Operator
	Value    T
}

func newFilterPredicate[T any](field Field, operatorType OperatorType, operator *Operator, value T) *FilterPredicate[T] {
	return &FilterPredicate[T]{
		Field:    field,
		Operator: NewOperator(operatorType, isNegated(operator)),
		Value:    value,
	}
}

func newComparisonPredicate[T any](field Field, symbol string, operator *Operator, value T) *FilterPredicate[T] {
	return &FilterPredicate[T]{
		Field:    field,
		Operator: newComparisonOperator(symbol, isNegated(operator)),
		Value:    value,
	}
}

// Equal and the other leaf constructors take the Not flag from the operator; a nil operator is not negated.
func Equal[T any](field Field, operator *Operator, value T) *FilterPredicate[T] {
	return newFilterPredicate(field, OperatorTypeEqual, operator, value)
}

func Like[T any](field Field, operator *Operator, value T) *FilterPredicate[T] {
	return newFilterPredicate(field, OperatorTypeLike, operator, value)
}

func Ilike[T any](field Field, operator *Operator, value T) *FilterPredicate[T] {
	return newFilterPredicate(field, OperatorTypeIlike, operator, value)
}

func In[T any](field Field, operator *Operator, values []T) *FilterPredicate[[]T] {
	return newFilterPredicate(field, OperatorTypeIn, operator, values)
}

func GreaterThan[T any](field Field, operator *Operator, value T) *FilterPredicate[T] {
	return newComparisonPredicate(field, SymbolGreaterThan, operator, value)
}

func GreaterOrEqualThan[T any](field Field, operator *Operator, value T) *FilterPredicate[T] {
	return newComparisonPredicate(field, SymbolGreaterOrEqualThan, operator, value)
}

func LowerThan[T any](field Field, operator *Operator, value T) *FilterPredicate[T] {
	return newComparisonPredicate(field, SymbolLowerThan, operator, value)
}

func LowerOrEqualThan[T any](field Field, operator *Operator, value T) *FilterPredicate[T] {
	return newComparisonPredicate(field, SymbolLowerOrEqualThan, operator, value)
}

func Null(field Field, operator *Operator) *FilterPredicate[interface{}] {
	return newFilterPredicate[interface{}](field, OperatorTypeNull, operator, nil)
}

func (p *FilterPredicate[T]) ToString(dialect Dialect) (string, errorsx.Error) {
	if dialect == DialectOGC {
		return p.toOGC()
	}

	err := p.Field.Validate()
	if err != nil {
		return "", err
	}

	operator, err := p.Operator.ToString(dialect)
	if err != nil {
		return "", err
	}

	field := p.Field.reference(dialect)
	value := interface{}(p.Value)

	switch p.Operator.Type {
	case OperatorTypeNull:
		return fmt.Sprintf("(%s %s)", field, operator), nil
	case OperatorTypeIn:
		var elements []string
		for _, element := range sliceValues(value) {
			elements = append(elements, formatListElement(element, dialect))
		}
		return fmt.Sprintf("(%s %s (%s))", field, operator, strings.Join(elements, ",")), nil
	case OperatorTypeLike:
		return fmt.Sprintf("(%s %s %s)", field, operator, quote(literal(value))), nil
	case OperatorTypeIlike:
		if dialect == DialectSQL {
			return fmt.Sprintf("(UPPER(%s) %s %s)", field, operator, upperCaseLiteral(value)), nil
		}
		return fmt.Sprintf("(%s %s %s)", field, operator, quote(literal(value))), nil
	default:
		return fmt.Sprintf("(%s %s %s)", field, operator, formatValue(p.Field, value, dialect)), nil
	}
}

// upperCaseLiteral only knows strings and numbers. Anything else is reported; booleans are used as they are.
func upperCaseLiteral(value interface{}) string {
	switch v := value.(type) {
	case string:
		return quote(strings.ToUpper(v))
	default:
		if isNumberOrBool(v) {
			if _, isBool := v.(bool); !isBool {
				return quote(literal(v))
			}
		}
		logger.Error("ilike is not supported for value %#v of type %T in the sql dialect", value, value)
		if _, isBool := v.(bool); isBool {
			return literal(value)
		}
		return quote(literal(value))
	}
}

func (p *FilterPredicate[T]) toOGC() (string, errorsx.Error) {
	element, err := p.Operator.ToString(DialectOGC)
	if err != nil {
		return "", err
	}

	propertyName := "<PropertyName>" + escapeXML(p.Field.Key) + "</PropertyName>"
	valueLiteral := "<Literal>" + escapeXML(literal(p.Value)) + "</Literal>"

	var s string
	switch p.Operator.Type {
	case OperatorTypeNull:
		s = "<" + element + ">" + propertyName + "</" + element + ">"
	case OperatorTypeLike:
		s = `<` + element + ` wildCard="%" singleChar="_" escapeChar="\">` + propertyName + valueLiteral + "</" + element + ">"
	case OperatorTypeIlike:
		s = `<` + element + ` wildCard="%" singleChar="_" escapeChar="\" matchCase="false">` + propertyName + valueLiteral + "</" + element + ">"
	default:
		// equality and comparisons carry negation in the element name
		return "<" + element + ">" + propertyName + valueLiteral + "</" + element + ">", nil
	}

	if p.Operator.Not {
		s = "<Not>" + s + "</Not>"
	}
	return s, nil
}

func (p *FilterPredicate[T]) String() string {
	return stringOf(p, func() string {
		return fmt.Sprintf("(%q %s %t %s %#v)", p.Field.Key, p.Operator.Type, p.Operator.Not, p.Operator.Symbol, p.Value)
	})
}

func (p *FilterPredicate[T]) Hash() uint64 {
	return hashOf(p)
}

// CompositePredicate joins two predicates with the dialect's AND or OR
type CompositePredicate struct {
	Operator *Operator
	Left     Predicate
	Right    Predicate
}

func And(left, right Predicate) *CompositePredicate {
	return &CompositePredicate{
		Operator: NewOperator(OperatorTypeAnd, false),
		Left:     left,
		Right:    right,
	}
}

func Or(left, right Predicate) *CompositePredicate {
	return &CompositePredicate{
		Operator: NewOperator(OperatorTypeOr, false),
		Left:     left,
		Right:    right,
	}
}

// ToString fails for the OGC dialect
func (p *CompositePredicate) ToString(dialect Dialect) (string, errorsx.Error) {
	operator, err := p.Operator.ToString(dialect)
	if err != nil {
		return "", err
	}

	left, err := p.Left.ToString(dialect)
	if err != nil {
		return "", err
	}

	right, err := p.Right.ToString(dialect)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("(%s %s %s)", left, operator, right), nil
}

func (p *CompositePredicate) String() string {
	return stringOf(p, func() string {
		return fmt.Sprintf("(%s %s %s)", p.Left.String(), p.Operator.Type, p.Right.String())
	})
}

func (p *CompositePredicate) Hash() uint64 {
	return hashOf(p)
}

// stringOf renders the default dialect. Predicates that can't be rendered use the fallback,
// so their hashes still differ.
func stringOf(p Predicate, fallback func() string) string {
	s, err := p.ToString(DialectDefault)
	if err != nil {
		logger.Error("couldn't render predicate: %s", err)
		return fallback()
	}
	return s
}

func hashOf(p Predicate) uint64 {
	return xxhash.Sum64String(p.String())
}

// Fold joins the predicates into a left-deep tree with the composer, e.g. And. It returns nil for no predicates.
func Fold(predicates []Predicate, composer func(left, right Predicate) *CompositePredicate) Predicate {
	if len(predicates) == 0 {
		return nil
	}

	folded := predicates[0]
	for _, p := range predicates[1:] {
		folded = composer(folded, p)
	}
	return folded
}
