package predicate

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

const sqlTimestampFormat = "2006-01-02 15:04:05"

func isNumberOrBool(value interface{}) bool {
	switch value.(type) {
	case bool, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}

// literal is the bare text of a value
func literal(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func formatTime(t time.Time, dialect Dialect) string {
	switch dialect {
	case DialectSQL:
		return "timestamp " + quote(t.UTC().Format(sqlTimestampFormat))
	case DialectCQL:
		return t.UTC().Format(time.RFC3339)
	default:
		return quote(t.UTC().Format(time.RFC3339))
	}
}

// formatValue quotes everything except numbers and booleans compared against numeric fields
func formatValue(field Field, value interface{}, dialect Dialect) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case time.Time:
		return formatTime(v, dialect)
	}

	if field.IsNumeric() && isNumberOrBool(value) {
		return literal(value)
	}
	return quote(literal(value))
}

// formatListElement quotes by the element's own type
func formatListElement(value interface{}, dialect Dialect) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case time.Time:
		return formatTime(v, dialect)
	}

	if isNumberOrBool(value) {
		return literal(value)
	}
	return quote(literal(value))
}

// sliceValues turns any slice or array into its elements
func sliceValues(value interface{}) []interface{} {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		values := make([]interface{}, rv.Len())
		for i := range values {
			values[i] = rv.Index(i).Interface()
		}
		return values
	case reflect.Invalid:
		return nil
	default:
		return []interface{}{value}
	}
}

func escapeXML(s string) string {
	var sb strings.Builder
	// writes to a strings.Builder don't fail
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
