package webservices

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	tracing "github.com/jamesrr39/go-tracing"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-gis/ownmap"
	"github.com/jamesrr39/ownmap-gis/ownmapdal"
	"github.com/jamesrr39/ownmap-gis/predicate"
	"github.com/jamesrr39/ownmap-gis/styling"
	"github.com/jamesrr39/semaphore"
	"github.com/paulmach/orb"
)

const (
	DefaultQueryLimit = 1000
	MaxQueryLimit     = 10000
)

// SourceService queries the configured feature sources, with pushed-down predicates
type SourceService struct {
	logger    *logpkg.Logger
	sourceSet *ownmapdal.FeatureSourceSet
	styleSet  *styling.StyleSet
	sema      *semaphore.Semaphore
	chi.Router
}

func NewSourceService(logger *logpkg.Logger, sourceSet *ownmapdal.FeatureSourceSet, styleSet *styling.StyleSet, sema *semaphore.Semaphore) *SourceService {
	ws := &SourceService{logger, sourceSet, styleSet, sema, chi.NewRouter()}

	ws.Post("/{name}/query", ws.handleQuery)
	ws.Get("/{name}/tiles/{z}/{x}/{y}", ws.handleGetTile)

	return ws
}

type queryRequest struct {
	Predicates []json.RawMessage `json:"predicates"`
	// Bound is [minLon, minLat, maxLon, maxLat]
	Bound []float64 `json:"bound"`
	Limit int       `json:"limit"`
}

func (qr *queryRequest) toFeatureQuery() (*ownmapdal.FeatureQuery, errorsx.Error) {
	predicates, err := predicate.ParseRawMessages(qr.Predicates)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	query := &ownmapdal.FeatureQuery{
		Predicates: predicates,
		Limit:      clampLimit(qr.Limit),
	}

	switch len(qr.Bound) {
	case 0:
	case 4:
		bound := orb.Bound{
			Min: orb.Point{qr.Bound[0], qr.Bound[1]},
			Max: orb.Point{qr.Bound[2], qr.Bound[3]},
		}
		if bound.Min.Lon() > bound.Max.Lon() || bound.Min.Lat() > bound.Max.Lat() {
			return nil, errorsx.Errorf("bound minimum is greater than its maximum: %v", qr.Bound)
		}
		query.Bound = &bound
	default:
		return nil, errorsx.Errorf("expected 4 (or 0) bound values, but found %d", len(qr.Bound))
	}

	return query, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultQueryLimit
	}
	if limit > MaxQueryLimit {
		return MaxQueryLimit
	}
	return limit
}

func (ws *SourceService) getSource(w http.ResponseWriter, r *http.Request) (ownmapdal.FeatureSource, bool) {
	source, err := ws.sourceSet.GetSource(chi.URLParam(r, "name"))
	if err != nil {
		if errorsx.Cause(err) == ownmapdal.ErrSourceNotFound {
			errorsx.HTTPError(w, ws.logger, err, http.StatusNotFound)
			return nil, false
		}
		errorsx.HTTPError(w, ws.logger, err, http.StatusInternalServerError)
		return nil, false
	}

	return source, true
}

func (ws *SourceService) handleQuery(w http.ResponseWriter, r *http.Request) {
	source, ok := ws.getSource(w, r)
	if !ok {
		return
	}

	body := new(queryRequest)
	decodeErr := render.DecodeJSON(r.Body, body)
	if decodeErr != nil {
		errorsx.HTTPError(w, ws.logger, errorsx.Wrap(decodeErr), http.StatusBadRequest)
		return
	}

	query, err := body.toFeatureQuery()
	if err != nil {
		errorsx.HTTPError(w, ws.logger, err, http.StatusBadRequest)
		return
	}

	span := tracing.StartSpan(r.Context(), "query source "+source.Name())
	collection, err := source.QueryFeatures(r.Context(), query)
	span.End(r.Context())
	if err != nil {
		errorsx.HTTPError(w, ws.logger, err, http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, collection)
}

func (ws *SourceService) handleGetTile(w http.ResponseWriter, r *http.Request) {
	source, ok := ws.getSource(w, r)
	if !ok {
		return
	}

	tile, err := TileFromStrings(chi.URLParam(r, "x"), chi.URLParam(r, "y"), chi.URLParam(r, "z"))
	if err != nil {
		errorsx.HTTPError(w, ws.logger, err, http.StatusBadRequest)
		return
	}

	style, err := ws.styleSet.GetStyleOrDefault(r.URL.Query().Get("styleId"))
	if err != nil {
		errorsx.HTTPError(w, ws.logger, err, http.StatusNotFound)
		return
	}

	bound := tile.Bound()
	ws.logger.Debug("serving tile %d/%d/%d from %q. Bounds: %v", tile.Z, tile.X, tile.Y, source.Name(), bound)

	span := tracing.StartSpan(r.Context(), "query source "+source.Name())
	collection, err := source.QueryFeatures(r.Context(), &ownmapdal.FeatureQuery{
		Bound: &bound,
		Limit: MaxQueryLimit,
	})
	span.End(r.Context())
	if err != nil {
		errorsx.HTTPError(w, ws.logger, err, http.StatusInternalServerError)
		return
	}

	resolution := ownmap.DefaultView.ResolutionForTile(tile)

	render.JSON(w, r, styleFeatures(r.Context(), ws.sema, style, collection.Features, resolution, true))
}
