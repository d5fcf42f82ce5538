package webservices

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-gis/ownmap"
	"github.com/jamesrr39/ownmap-gis/styling"
	"github.com/jamesrr39/semaphore"
	"github.com/paulmach/orb/geojson"
)

// StyleService evaluates styles for features posted as a GeoJSON FeatureCollection
type StyleService struct {
	logger   *logpkg.Logger
	styleSet *styling.StyleSet
	sema     *semaphore.Semaphore
	chi.Router
}

func NewStyleService(logger *logpkg.Logger, styleSet *styling.StyleSet, sema *semaphore.Semaphore) *StyleService {
	ws := &StyleService{logger, styleSet, sema, chi.NewRouter()}

	ws.Post("/features", ws.handlePostFeatures)
	ws.Post("/{styleId}/features", ws.handlePostFeatures)

	return ws
}

func (ws *StyleService) handlePostFeatures(w http.ResponseWriter, r *http.Request) {
	styleID := chi.URLParam(r, "styleId")

	style, err := ws.styleSet.GetStyleOrDefault(styleID)
	if err != nil {
		errorsx.HTTPError(w, ws.logger, errorsx.Wrap(err), http.StatusNotFound)
		return
	}

	resolution, err := resolutionFromQuery(r.URL.Query(), ownmap.DefaultView)
	if err != nil {
		errorsx.HTTPError(w, ws.logger, errorsx.Wrap(err), http.StatusBadRequest)
		return
	}

	collection := new(geojson.FeatureCollection)
	decodeErr := render.DecodeJSON(r.Body, collection)
	if decodeErr != nil {
		errorsx.HTTPError(w, ws.logger, errorsx.Wrap(decodeErr), http.StatusBadRequest)
		return
	}

	ws.logger.Debug("styling %d features with style %q at resolution %v", len(collection.Features), style.GetStyleID(), resolution)

	render.JSON(w, r, styleFeatures(r.Context(), ws.sema, style, collection.Features, resolution, false))
}
