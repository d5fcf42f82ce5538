package predicate

import (
	"regexp"

	"github.com/jamesrr39/goutil/errorsx"
)

type FieldType string

const (
	FieldTypeOid      FieldType = "oid"
	FieldTypeBoolean  FieldType = "boolean"
	FieldTypeNumber   FieldType = "number"
	FieldTypeString   FieldType = "string"
	FieldTypeDate     FieldType = "date"
	FieldTypeGeometry FieldType = "geometry"
	FieldTypeUnknown  FieldType = "unknown"
)

// Field is a column or attribute of a remote feature service
type Field struct {
	Key   string    `json:"key"`
	Type  FieldType `json:"type"`
	Alias string    `json:"alias,omitempty"`
}

// fieldKeyRegexp is a bare identifier, usable unquoted in every dialect
var fieldKeyRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func NewField(key string, fieldType FieldType) Field {
	return Field{Key: key, Type: fieldType}
}

// IsNumeric is true for fields whose values are written without quotes
func (f Field) IsNumeric() bool {
	switch f.Type {
	case FieldTypeOid, FieldTypeNumber, FieldTypeBoolean:
		return true
	default:
		return false
	}
}

// reference renders the field as it appears on the left of an expression
func (f Field) reference(dialect Dialect) string {
	if dialect == DialectCQL && !f.IsNumeric() {
		return "Concatenate(" + f.Key + ")"
	}
	return f.Key
}

// Validate rejects keys that are not plain identifiers. Keys are written into filters unquoted.
func (f Field) Validate() errorsx.Error {
	if !fieldKeyRegexp.MatchString(f.Key) {
		return errorsx.Errorf("invalid field key %q: expected letters, digits and underscores, not starting with a digit", f.Key)
	}
	return nil
}
