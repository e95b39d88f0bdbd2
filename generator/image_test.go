package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortsbot/config"
)

func newImageGenerator(baseURL string) *ImageGenerator {
	return NewImageGenerator(config.ImageConfig{Token: "test-token", BaseURL: baseURL})
}

func TestImageGenerate(t *testing.T) {
	var gotInput imageInput
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req imageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotInput = req.Input

		json.NewEncoder(w).Encode(map[string]any{
			"output": []string{"https://cdn.example.com/generated.png", "https://cdn.example.com/second.png"},
		})
	}))
	defer srv.Close()

	g := newImageGenerator(srv.URL)
	url := g.Generate(context.Background(), "a volcano at dusk")

	// First output wins.
	assert.Equal(t, "https://cdn.example.com/generated.png", url)

	assert.Equal(t, "a volcano at dusk", gotInput.Prompt)
	assert.Equal(t, config.ImageNegativePrompt, gotInput.NegativePrompt)
	assert.Equal(t, 1024, gotInput.Width)
	assert.Equal(t, 576, gotInput.Height)
	assert.Equal(t, 1, gotInput.NumOutputs)
}

func TestImageGenerateFallbackOnBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := newImageGenerator(srv.URL)
	url := g.Generate(context.Background(), "a volcano at dusk")

	assert.NotEmpty(t, url)
	assert.True(t, strings.HasPrefix(url, config.PlaceholderImageBase))
	assert.Contains(t, url, "volcano")
}

func TestImageGenerateFallbackOnUnreachableBackend(t *testing.T) {
	g := newImageGenerator("http://127.0.0.1:1")
	url := g.Generate(context.Background(), "a volcano at dusk")

	assert.True(t, strings.HasPrefix(url, config.PlaceholderImageBase))
}

func TestImageGenerateFallbackOnEmptyOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"output": []string{}})
	}))
	defer srv.Close()

	g := newImageGenerator(srv.URL)
	url := g.Generate(context.Background(), "prompt")

	assert.True(t, strings.HasPrefix(url, config.PlaceholderImageBase))
}

func TestPlaceholderURLTruncatesPrompt(t *testing.T) {
	long := strings.Repeat("x", 200)
	url := placeholderURL(long)

	assert.Contains(t, url, strings.Repeat("x", 50))
	assert.NotContains(t, url, strings.Repeat("x", 51))
}
