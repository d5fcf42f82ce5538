package predicate

import (
	"errors"
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
)

type Dialect string

const (
	DialectDefault Dialect = "default"
	DialectSQL     Dialect = "sql"
	DialectCQL     Dialect = "cql"
	DialectOGC     Dialect = "ogc"
)

var ErrUnsupportedDialect = errors.New("operator not supported in dialect")

var Dialects = []Dialect{DialectDefault, DialectSQL, DialectCQL, DialectOGC}

// ParseDialect is case insensitive. An empty string is the default dialect.
func ParseDialect(s string) (Dialect, errorsx.Error) {
	if s == "" {
		return DialectDefault, nil
	}

	for _, dialect := range Dialects {
		if strings.EqualFold(string(dialect), s) {
			return dialect, nil
		}
	}

	return "", errorsx.Errorf("unknown dialect: %q", s)
}

func unsupportedDialectError(operatorType OperatorType, dialect Dialect) errorsx.Error {
	return errorsx.Wrap(ErrUnsupportedDialect, "operator", string(operatorType), "dialect", string(dialect))
}
