package nuremberg

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonneli/tonneli/internal/model"
)

func TestPlugin_UsesFixedPlace(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		paths = append(paths, req.URL.Path)
		switch req.URL.Path {
		case "/hausnummern/5/fraktionen":
			_ = json.NewEncoder(w).Encode([]map[string]any{{"id": 3, "name": "Papier"}})
		case "/hausnummern/5/termine":
			_ = json.NewEncoder(w).Encode([]map[string]any{{"datum": "2025-06-02", "bezirk": map[string]any{"fraktionId": 3}}})
		default:
			http.NotFound(w, req)
		}
	}))
	defer srv.Close()

	p := Plugin(srv.Client(), Options{BaseURL: srv.URL})
	assert.Equal(t, model.CityMeta{ID: model.Nuremberg, Name: "Nürnberg"}, p.Meta)

	got, err := p.Schedule.Schedule(context.Background(), "5", model.NextDays(model.MustDate(2025, 6, 1), 7))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.Paper, got[0].Fraction)
	assert.Equal(t, []string{"/hausnummern/5/fraktionen", "/hausnummern/5/termine"}, paths)
}
