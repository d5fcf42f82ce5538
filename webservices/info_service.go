package webservices

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-gis/ownmapdal"
	"github.com/jamesrr39/ownmap-gis/styling"
)

func NewInfoService(logger *logpkg.Logger, sourceSet *ownmapdal.FeatureSourceSet, styleSet *styling.StyleSet) *InfoService {
	ws := &InfoService{logger, sourceSet, styleSet, chi.NewRouter()}
	ws.Get("/", ws.handleGet)

	return ws
}

type InfoService struct {
	logger    *logpkg.Logger
	sourceSet *ownmapdal.FeatureSourceSet
	styleSet  *styling.StyleSet
	chi.Router
}

type stylesType struct {
	DefaultStyleID string   `json:"defaultStyleId"`
	StyleIDs       []string `json:"styleIds"`
}

type infoType struct {
	Style   stylesType `json:"style"`
	Sources []string   `json:"sources"`
}

func (ws *InfoService) handleGet(w http.ResponseWriter, r *http.Request) {
	styleIDs := ws.styleSet.GetAllStyleIDs()

	// make deterministic
	sort.Strings(styleIDs)

	style := stylesType{
		ws.styleSet.GetDefaultStyle().GetStyleID(),
		styleIDs,
	}

	render.JSON(w, r, infoType{style, ws.sourceSet.Names()})
}
