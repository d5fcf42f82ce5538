package webservices

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-gis/ownmap"
	"github.com/jamesrr39/ownmap-gis/predicate"
	"github.com/jamesrr39/ownmap-gis/styling/mapboxglstyle"
	"github.com/paulmach/orb/geojson"
)

// FilterService builds query filter strings from predicates and evaluates style filters against features
type FilterService struct {
	logger *logpkg.Logger
	chi.Router
}

func NewFilterService(logger *logpkg.Logger) *FilterService {
	ws := &FilterService{logger, chi.NewRouter()}

	ws.Post("/build", ws.handleBuild)
	ws.Post("/evaluate", ws.handleEvaluate)

	return ws
}

type buildFilterRequest struct {
	Dialect    string            `json:"dialect"`
	Predicates []json.RawMessage `json:"predicates"`
}

type buildFilterResponse struct {
	Filter string `json:"filter"`
	// Hashes are hex encoded, one per predicate
	Hashes []string `json:"hashes"`
}

func (ws *FilterService) handleBuild(w http.ResponseWriter, r *http.Request) {
	var err error

	body := new(buildFilterRequest)
	err = render.DecodeJSON(r.Body, body)
	if err != nil {
		errorsx.HTTPError(w, ws.logger, errorsx.Wrap(err), http.StatusBadRequest)
		return
	}

	dialect, err := predicate.ParseDialect(body.Dialect)
	if err != nil {
		errorsx.HTTPError(w, ws.logger, errorsx.Wrap(err), http.StatusBadRequest)
		return
	}

	predicates, err := predicate.ParseRawMessages(body.Predicates)
	if err != nil {
		errorsx.HTTPError(w, ws.logger, errorsx.Wrap(err), http.StatusBadRequest)
		return
	}

	builder := predicate.NewFilterBuilder(predicates, dialect)
	filter, err := builder.Build()
	if err != nil {
		errorsx.HTTPError(w, ws.logger, errorsx.Wrap(err), http.StatusBadRequest)
		return
	}

	hashes := []string{}
	for _, hash := range builder.Hashes() {
		hashes = append(hashes, strconv.FormatUint(hash, 16))
	}

	render.JSON(w, r, buildFilterResponse{filter, hashes})
}

type evaluateFilterRequest struct {
	Filter  mapboxglstyle.Filter `json:"filter"`
	Feature *geojson.Feature     `json:"feature"`
}

type evaluateFilterResponse struct {
	Matches bool `json:"matches"`
}

func (ws *FilterService) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	body := new(evaluateFilterRequest)
	err := render.DecodeJSON(r.Body, body)
	if err != nil {
		errorsx.HTTPError(w, ws.logger, errorsx.Wrap(err), http.StatusBadRequest)
		return
	}

	if body.Feature == nil {
		errorsx.HTTPError(w, ws.logger, errorsx.Errorf("no feature supplied"), http.StatusBadRequest)
		return
	}

	feature := ownmap.NewGeoJSONFeature(body.Feature)
	matches := mapboxglstyle.EvaluateFilter(body.Filter, feature.GetProperties(), feature)

	render.JSON(w, r, evaluateFilterResponse{matches})
}
