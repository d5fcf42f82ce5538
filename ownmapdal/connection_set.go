package ownmapdal

import (
	"sort"
	"sync"

	"github.com/jamesrr39/goutil/errorsx"
)

// FeatureSourceSet is the registry of configured feature sources, keyed by name
type FeatureSourceSet struct {
	sources map[string]FeatureSource
	mu      *sync.RWMutex
}

func NewFeatureSourceSet(sources []FeatureSource) (*FeatureSourceSet, errorsx.Error) {
	set := &FeatureSourceSet{
		sources: make(map[string]FeatureSource),
		mu:      new(sync.RWMutex),
	}

	for _, source := range sources {
		err := set.AddSource(source)
		if err != nil {
			return nil, err
		}
	}

	return set, nil
}

func (fss *FeatureSourceSet) GetSource(name string) (FeatureSource, errorsx.Error) {
	fss.mu.RLock()
	defer fss.mu.RUnlock()

	source, ok := fss.sources[name]
	if !ok {
		return nil, errorsx.Wrap(ErrSourceNotFound, "name", name)
	}

	return source, nil
}

func (fss *FeatureSourceSet) AddSource(source FeatureSource) errorsx.Error {
	fss.mu.Lock()
	defer fss.mu.Unlock()

	name := source.Name()
	if _, ok := fss.sources[name]; ok {
		return errorsx.Errorf("duplicate feature source name: %q", name)
	}

	fss.sources[name] = source
	return nil
}

// Names are sorted alphabetically
func (fss *FeatureSourceSet) Names() []string {
	fss.mu.RLock()
	defer fss.mu.RUnlock()

	names := []string{}
	for name := range fss.sources {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Close closes every source, returning the first error encountered
func (fss *FeatureSourceSet) Close() errorsx.Error {
	fss.mu.Lock()
	defer fss.mu.Unlock()

	var firstErr errorsx.Error
	for name, source := range fss.sources {
		err := source.Close()
		if err != nil && firstErr == nil {
			firstErr = errorsx.Wrap(err, "name", name)
		}
	}

	return firstErr
}
