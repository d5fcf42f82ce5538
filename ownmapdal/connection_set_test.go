package ownmapdal

import (
	"context"
	"testing"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockFeatureSource struct {
	name     string
	closed   bool
	closeErr errorsx.Error
}

func (s *mockFeatureSource) Name() string {
	return s.name
}

func (s *mockFeatureSource) QueryFeatures(ctx context.Context, query *FeatureQuery) (*geojson.FeatureCollection, errorsx.Error) {
	return geojson.NewFeatureCollection(), nil
}

func (s *mockFeatureSource) Close() errorsx.Error {
	s.closed = true
	return s.closeErr
}

func TestFeatureSourceSet(t *testing.T) {
	roads := &mockFeatureSource{name: "roads"}
	buildings := &mockFeatureSource{name: "buildings"}

	set, err := NewFeatureSourceSet([]FeatureSource{roads})
	require.NoError(t, err)

	err = set.AddSource(buildings)
	require.NoError(t, err)

	assert.Equal(t, []string{"buildings", "roads"}, set.Names())

	source, err := set.GetSource("roads")
	require.NoError(t, err)
	assert.Equal(t, roads, source)

	_, err = set.GetSource("rivers")
	require.Error(t, err)
	assert.Equal(t, ErrSourceNotFound, errorsx.Cause(err))

	err = set.AddSource(&mockFeatureSource{name: "roads"})
	assert.Error(t, err)

	err = set.Close()
	require.NoError(t, err)
	assert.True(t, roads.closed)
	assert.True(t, buildings.closed)
}

func TestNewFeatureSourceSet_duplicate(t *testing.T) {
	_, err := NewFeatureSourceSet([]FeatureSource{
		&mockFeatureSource{name: "roads"},
		&mockFeatureSource{name: "roads"},
	})
	assert.Error(t, err)
}

func TestFeatureSourceSet_CloseError(t *testing.T) {
	set, err := NewFeatureSourceSet([]FeatureSource{
		&mockFeatureSource{name: "roads", closeErr: errorsx.Errorf("connection reset")},
	})
	require.NoError(t, err)

	err = set.Close()
	assert.Error(t, err)
}

func TestFeatureSourceSet_NamesEmpty(t *testing.T) {
	set, err := NewFeatureSourceSet(nil)
	require.NoError(t, err)

	assert.Equal(t, []string{}, set.Names())
}
