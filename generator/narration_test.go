package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortsbot/config"
)

func newNarrationGenerator(baseURL string) *NarrationGenerator {
	return NewNarrationGenerator(config.SpeechConfig{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Model:   "tts-1",
		Voice:   "alloy",
	})
}

func TestNarrationGenerate(t *testing.T) {
	var gotReq speechRequest
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte("raw-mp3-bytes"))
	}))
	defer srv.Close()

	g := newNarrationGenerator(srv.URL)
	audio, err := g.Generate(context.Background(), "Volcanoes are windows into the planet's core.")
	require.NoError(t, err)

	assert.Equal(t, []byte("raw-mp3-bytes"), audio)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "tts-1", gotReq.Model)
	assert.Equal(t, "alloy", gotReq.Voice)
	assert.Equal(t, "Volcanoes are windows into the planet's core.", gotReq.Input)
}

func TestNarrationGenerateBackendErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := newNarrationGenerator(srv.URL)
	audio, err := g.Generate(context.Background(), "text")

	require.Error(t, err)
	assert.Nil(t, audio)
	assert.Contains(t, err.Error(), "429")
}

func TestNarrationGenerateUnreachableBackend(t *testing.T) {
	g := newNarrationGenerator("http://127.0.0.1:1")

	_, err := g.Generate(context.Background(), "text")
	require.Error(t, err)
}
