package webservices

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoService(t *testing.T) {
	router := newTestRouter(t, newRoadsSource(), &mockFeatureSource{name: "buildings"})

	w := doRequest(router, http.MethodGet, "/api/info", "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.JSONEq(t, `{
		"style": {
			"defaultStyleId": "__ownmap_builtin",
			"styleIds": ["__ownmap_builtin", "test-style"]
		},
		"sources": ["buildings", "roads"]
	}`, w.Body.String())
}
