package predicate

import (
	"os"

	"github.com/jamesrr39/goutil/logpkg"
)

var logger = logpkg.NewLogger(os.Stderr, logpkg.LogLevelWarn)

// SetLogger replaces the logger used to report values that can't be rendered
func SetLogger(l *logpkg.Logger) {
	logger = l
}
