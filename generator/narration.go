package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"shortsbot/config"
)

// NarrationGenerator synthesizes scene narration via a text-to-speech
// backend. Unlike image generation there is no fallback: the caller gets
// the backend error.
type NarrationGenerator struct {
	apiKey     string
	baseURL    string
	model      string
	voice      string
	httpClient *http.Client
}

// NewNarrationGenerator builds a generator with the configured model and
// voice.
func NewNarrationGenerator(cfg config.SpeechConfig) *NarrationGenerator {
	return &NarrationGenerator{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		voice:      cfg.Voice,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

type speechRequest struct {
	Model string `json:"model"`
	Voice string `json:"voice"`
	Input string `json:"input"`
}

// Generate returns raw audio bytes for the given text.
func (g *NarrationGenerator) Generate(ctx context.Context, text string) ([]byte, error) {
	body, err := json.Marshal(speechRequest{
		Model: g.model,
		Voice: g.voice,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("narration: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("narration: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("narration: speech request: %w", err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("narration: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("narration: speech backend returned %d: %s", resp.StatusCode, string(audio))
	}

	return audio, nil
}
