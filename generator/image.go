package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"shortsbot/config"
)

// ImageGenerator requests scene images from an image-generation backend.
// The backend call is best-effort: any failure degrades to a deterministic
// placeholder URL, so callers never see an error.
type ImageGenerator struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// NewImageGenerator builds a generator against the configured prediction
// endpoint.
func NewImageGenerator(cfg config.ImageConfig) *ImageGenerator {
	return &ImageGenerator{
		token:      cfg.Token,
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

type imageRequest struct {
	Input imageInput `json:"input"`
}

type imageInput struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	NumOutputs     int    `json:"num_outputs"`
}

type imageResponse struct {
	Output []string `json:"output"`
	Error  *string  `json:"error"`
}

// Generate returns a URL for an image matching the prompt. On any backend
// error it falls back to a placeholder encoding the truncated prompt.
func (g *ImageGenerator) Generate(ctx context.Context, prompt string) string {
	imageURL, err := g.request(ctx, prompt)
	if err != nil {
		log.Printf("[image] backend error, falling back to placeholder: %v", err)
		return placeholderURL(prompt)
	}
	return imageURL
}

func (g *ImageGenerator) request(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(imageRequest{
		Input: imageInput{
			Prompt:         prompt,
			NegativePrompt: config.ImageNegativePrompt,
			Width:          config.ImageWidth,
			Height:         config.ImageHeight,
			NumOutputs:     1,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Token "+g.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "wait")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("image request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("image backend returned %d: %s", resp.StatusCode, string(respBytes))
	}

	var parsed imageResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return "", fmt.Errorf("parse image response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("image backend error: %s", *parsed.Error)
	}
	if len(parsed.Output) == 0 || parsed.Output[0] == "" {
		return "", fmt.Errorf("image backend returned no output")
	}

	return parsed.Output[0], nil
}

// placeholderURL builds a static frame URL from the first 50 bytes of the
// prompt.
func placeholderURL(prompt string) string {
	if len(prompt) > 50 {
		prompt = prompt[:50]
	}
	return fmt.Sprintf("%s?text=%s", config.PlaceholderImageBase, url.QueryEscape(prompt))
}
