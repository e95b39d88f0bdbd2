package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortsbot/types"
)

func newScriptGenerator(baseURL string) *ScriptGenerator {
	return &ScriptGenerator{
		client: cohereclient.NewClient(
			cohereclient.WithToken("test-key"),
			cohereclient.WithBaseURL(baseURL),
		),
		model: "command-r-08-2024",
		niche: "interesting facts",
	}
}

// chatResponse builds the non-streaming chat payload with a single text
// content block.
func chatResponse(text string) map[string]any {
	return map[string]any{
		"id": "resp-1",
		"message": map[string]any{
			"role":    "assistant",
			"content": []map[string]any{{"type": "text", "text": text}},
		},
		"finish_reason": "COMPLETE",
	}
}

type chatRequestBody struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string          `json:"role"`
		Content json.RawMessage `json:"content"`
	} `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

func TestScriptGenerate(t *testing.T) {
	var gotBody chatRequestBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		script := "```json\n" + `{"title":"Why Volcanoes Erupt","description":"The science","script":"full narration","tags":["volcanoes"],"scenes":[{"text":"hook","imagePrompt":"magma chamber","duration":5}]}` + "\n```"
		json.NewEncoder(w).Encode(chatResponse(script))
	}))
	defer srv.Close()

	g := newScriptGenerator(srv.URL)
	script, err := g.Generate(context.Background(), "volcanoes")
	require.NoError(t, err)

	assert.Equal(t, "Why Volcanoes Erupt", script.Title)
	assert.Equal(t, []string{"volcanoes"}, script.Tags)
	require.Len(t, script.Scenes, 1)
	assert.Equal(t, "magma chamber", script.Scenes[0].ImagePrompt)

	assert.Equal(t, "command-r-08-2024", gotBody.Model)
	assert.Equal(t, "json_object", gotBody.ResponseFormat.Type)
	require.Len(t, gotBody.Messages, 2)
	assert.Equal(t, "system", gotBody.Messages[0].Role)
	assert.Equal(t, "user", gotBody.Messages[1].Role)
	assert.Contains(t, string(gotBody.Messages[1].Content), "volcanoes")
}

func TestScriptGenerateFallsBackToNiche(t *testing.T) {
	var gotBody chatRequestBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(chatResponse(`{"title":"t","scenes":[]}`))
	}))
	defer srv.Close()

	g := newScriptGenerator(srv.URL)
	_, err := g.Generate(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, gotBody.Messages, 2)
	assert.Contains(t, string(gotBody.Messages[1].Content), "interesting facts")
}

func TestScriptGenerateNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id":            "resp-1",
			"message":       map[string]any{"role": "assistant", "content": []map[string]any{}},
			"finish_reason": "COMPLETE",
		})
	}))
	defer srv.Close()

	g := newScriptGenerator(srv.URL)
	_, err := g.Generate(context.Background(), "volcanoes")
	require.ErrorIs(t, err, ErrNoContent)
}

func TestScriptGenerateEmptyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse(""))
	}))
	defer srv.Close()

	g := newScriptGenerator(srv.URL)
	_, err := g.Generate(context.Background(), "volcanoes")
	require.ErrorIs(t, err, ErrNoContent)
}

func TestScriptGenerateUnparseableResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse("Sure! Here is your script: title, scenes..."))
	}))
	defer srv.Close()

	g := newScriptGenerator(srv.URL)
	_, err := g.Generate(context.Background(), "volcanoes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse script JSON")
}

func TestScriptGenerateBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := newScriptGenerator(srv.URL)
	_, err := g.Generate(context.Background(), "volcanoes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cohere chat error")
}

func TestCleanJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"title":"t"}`, `{"title":"t"}`},
		{"json fence", "```json\n{\"title\":\"t\"}\n```", `{"title":"t"}`},
		{"bare fence", "```\n{\"title\":\"t\"}\n```", `{"title":"t"}`},
		{"surrounding whitespace", "  {\"title\":\"t\"}\n", `{"title":"t"}`},
		{"empty", "", ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := cleanJSON(c.in); got != c.want {
				t.Fatalf("cleanJSON(%q) = %q; want %q", c.in, got, c.want)
			}
		})
	}
}

func TestScriptShapeIsLenient(t *testing.T) {
	// Parseable JSON with missing fields is accepted as-is; gaps surface
	// downstream rather than failing generation.
	raw := `{"title":"Volcanoes","scenes":[{"text":"hook","duration":5}]}`

	var script types.VideoScript
	if err := json.Unmarshal([]byte(raw), &script); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if script.Title != "Volcanoes" {
		t.Fatalf("title = %q", script.Title)
	}
	if len(script.Scenes) != 1 {
		t.Fatalf("scenes = %d; want 1", len(script.Scenes))
	}
	if script.Scenes[0].ImagePrompt != "" {
		t.Fatalf("imagePrompt should be empty, got %q", script.Scenes[0].ImagePrompt)
	}
	if script.Description != "" || len(script.Tags) != 0 {
		t.Fatalf("unexpected defaults: %+v", script)
	}
}
