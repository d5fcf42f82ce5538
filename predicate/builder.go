package predicate

import (
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
)

// FilterInclude is the pass-through filter, as in OGC filter encoding
const FilterInclude = "INCLUDE"

// the generic expression AND, which is not the dialect's own
const builderJoinToken = " && "

// FilterBuilder combines independent predicates into one filter string
type FilterBuilder struct {
	predicates []Predicate
	dialect    Dialect
}

func NewFilterBuilder(predicates []Predicate, dialect Dialect) *FilterBuilder {
	return &FilterBuilder{
		predicates: predicates,
		dialect:    dialect,
	}
}

func (fb *FilterBuilder) Add(p Predicate) *FilterBuilder {
	fb.predicates = append(fb.predicates, p)
	return fb
}

func (fb *FilterBuilder) Build() (string, errorsx.Error) {
	if len(fb.predicates) == 0 {
		return FilterInclude, nil
	}

	var rendered []string
	for i, p := range fb.predicates {
		s, err := p.ToString(fb.dialect)
		if err != nil {
			return "", errorsx.Wrap(err, "predicateIndex", i)
		}
		rendered = append(rendered, s)
	}

	return strings.Join(rendered, builderJoinToken), nil
}

// Hashes gives the hash of each predicate, in order
func (fb *FilterBuilder) Hashes() []uint64 {
	hashes := make([]uint64, len(fb.predicates))
	for i, p := range fb.predicates {
		hashes[i] = p.Hash()
	}
	return hashes
}
