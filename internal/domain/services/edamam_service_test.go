package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ak/pantry/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdamamSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/recipes/v2", r.URL.Path)
		assert.Equal(t, "public", r.URL.Query().Get("type"))
		assert.Equal(t, "pasta", r.URL.Query().Get("q"))
		assert.Equal(t, "app-id", r.URL.Query().Get("app_id"))
		assert.Equal(t, "app-key", r.URL.Query().Get("app_key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"hits": [
				{"recipe": {
					"label": "Tomato Pasta",
					"image": "pasta.jpg",
					"url": "https://example.com/pasta",
					"ingredients": [
						{"text": "200 g spaghetti", "quantity": 200, "measure": "gram", "food": "spaghetti"},
						{"text": "2 tomatoes", "quantity": 2, "measure": "<unit>", "food": "tomatoes"}
					]
				}}
			]
		}`))
	}))
	t.Cleanup(server.Close)

	svc := NewEdamamService(config.EdamamConfig{
		BaseURL: server.URL,
		AppID:   "app-id",
		AppKey:  "app-key",
		Timeout: 5 * time.Second,
	}, testLogger())

	recipes, err := svc.Search(context.Background(), "pasta", 10)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Tomato Pasta", recipes[0].Label)

	lines := recipes[0].RequiredLines()
	require.Len(t, lines, 2)
	assert.Equal(t, "spaghetti", lines[0].Name)
	assert.Equal(t, "gram", lines[0].Unit)
	// The placeholder measure becomes a blank unit.
	assert.Equal(t, "tomatoes", lines[1].Name)
	assert.Empty(t, lines[1].Unit)
}

func TestEdamamSearchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	svc := NewEdamamService(config.EdamamConfig{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	}, testLogger())

	_, err := svc.Search(context.Background(), "pasta", 10)
	assert.Error(t, err)
}
