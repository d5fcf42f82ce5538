package webservices

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	tracing "github.com/jamesrr39/go-tracing"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-gis/ownmapdal"
	"github.com/jamesrr39/ownmap-gis/styling"
	"github.com/jamesrr39/ownmap-gis/styling/mapboxglstyle"
	"github.com/jamesrr39/semaphore"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/require"
)

const testStyleID = "test-style"

var testLogger = logpkg.NewLogger(os.Stderr, logpkg.LogLevelWarn)

type mockFeatureSource struct {
	name       string
	features   *geojson.FeatureCollection
	err        errorsx.Error
	lastQuery  *ownmapdal.FeatureQuery
	queryCount int
}

func (s *mockFeatureSource) Name() string {
	return s.name
}

func (s *mockFeatureSource) QueryFeatures(ctx context.Context, query *ownmapdal.FeatureQuery) (*geojson.FeatureCollection, errorsx.Error) {
	s.lastQuery = query
	s.queryCount++
	if s.err != nil {
		return nil, s.err
	}
	return s.features, nil
}

func (s *mockFeatureSource) Close() errorsx.Error {
	return nil
}

func newRoadsSource() *mockFeatureSource {
	collection := geojson.NewFeatureCollection()

	junction := geojson.NewFeature(orb.Point{0.5, 0.5})
	junction.ID = "j1"
	junction.Properties["class"] = "junction"
	collection.Append(junction)

	road := geojson.NewFeature(orb.LineString{{0, 0}, {1, 1}})
	road.ID = "r1"
	road.Properties["class"] = "primary"
	collection.Append(road)

	return &mockFeatureSource{name: "roads", features: collection}
}

func newTestStyleSet(t *testing.T) *styling.StyleSet {
	style, err := mapboxglstyle.NewMapboxGLStyle(testStyleID, []*mapboxglstyle.Layer{
		{
			ID:    "background",
			Type:  mapboxglstyle.LayerTypeBackground,
			Paint: mapboxglstyle.Properties{"background-color": "#ffffff"},
		}, {
			ID:     "junctions",
			Type:   mapboxglstyle.LayerTypeCircle,
			Filter: []interface{}{"==", "$type", "Point"},
			Paint: mapboxglstyle.Properties{
				"circle-radius": 3.0,
				"circle-color":  "#ff0000",
			},
		},
	}, nil, nil)
	require.NoError(t, err)

	styleSet, err := styling.NewStyleSet([]styling.Style{&styling.CustomBasicStyle{}, style}, styling.BUILTIN_STYLEID)
	require.NoError(t, err)

	return styleSet
}

func newTestRouter(t *testing.T, sources ...ownmapdal.FeatureSource) http.Handler {
	sourceSet, err := ownmapdal.NewFeatureSourceSet(sources)
	require.NoError(t, err)

	styleSet := newTestStyleSet(t)
	sema := semaphore.NewSemaphore(2)

	router := chi.NewRouter()
	router.Use(tracing.Middleware(tracing.NewTracer(&bytes.Buffer{})))
	router.Route("/api/", func(r chi.Router) {
		r.Mount("/info", NewInfoService(testLogger, sourceSet, styleSet))
		r.Mount("/styles/", NewStyleService(testLogger, styleSet, sema))
		r.Mount("/filters/", NewFilterService(testLogger))
		r.Mount("/sources/", NewSourceService(testLogger, sourceSet, styleSet, sema))
	})

	return router
}

func doRequest(handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	return w
}
