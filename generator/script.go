package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"

	"shortsbot/config"
	"shortsbot/types"
)

const systemPrompt = `You are a viral video content creator. Create engaging video scripts that are 60-90 seconds long.
Return a JSON object with this structure:
{
  "title": "Catchy video title",
  "description": "SEO-optimized description",
  "script": "Full narration script",
  "tags": ["tag1", "tag2", "tag3"],
  "scenes": [
    {
      "text": "Narration for this scene",
      "imagePrompt": "Detailed prompt for AI image generation",
      "duration": 5
    }
  ]
}
The script should be engaging, informative, and perfect for short-form content.`

// ScriptGenerator produces video scripts via the Cohere chat API.
type ScriptGenerator struct {
	client *cohereclient.Client
	model  string
	niche  string
}

// NewScriptGenerator builds a generator for the configured model. When a
// request carries no topic, the configured niche drives topic selection.
func NewScriptGenerator(cfg config.CohereConfig, niche string) *ScriptGenerator {
	return &ScriptGenerator{
		client: cohereclient.NewClient(cohereclient.WithToken(cfg.APIKey)),
		model:  cfg.Model,
		niche:  niche,
	}
}

// Generate asks the model for a complete script. The response must be a
// JSON document matching types.VideoScript; anything that fails to parse is
// a generation error. Parseable JSON with missing fields is accepted as-is.
func (g *ScriptGenerator) Generate(ctx context.Context, topic string) (*types.VideoScript, error) {
	prompt := fmt.Sprintf("Create a detailed video script about %s. Choose a trending and engaging topic.", g.niche)
	if topic != "" {
		prompt = fmt.Sprintf("Create a detailed video script about: %s", topic)
	}

	log.Printf("[script] Generating script via Cohere (%s)...", g.model)

	resp, err := g.client.V2.Chat(
		ctx,
		&cohere.V2ChatRequest{
			Model: g.model,
			Messages: cohere.ChatMessages{
				{
					Role:   "system",
					System: &cohere.SystemMessageV2{Content: &cohere.SystemMessageV2Content{String: systemPrompt}},
				},
				{
					Role: "user",
					User: &cohere.UserMessageV2{Content: &cohere.UserMessageV2Content{String: prompt}},
				},
			},
			ResponseFormat: &cohere.ResponseFormatV2{
				Type:       "json_object",
				JsonObject: &cohere.JsonResponseFormatV2{},
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("cohere chat error: %w", err)
	}
	if resp == nil || resp.Message == nil || len(resp.Message.Content) == 0 {
		return nil, ErrNoContent
	}
	text := resp.Message.Content[0].Text
	if text == nil {
		return nil, ErrNoContent
	}

	content := cleanJSON(text.Text)
	if content == "" {
		return nil, ErrNoContent
	}

	var script types.VideoScript
	if err := json.Unmarshal([]byte(content), &script); err != nil {
		return nil, fmt.Errorf("parse script JSON: %w", err)
	}

	log.Printf("[script] Script ready: %q, %d scenes", script.Title, len(script.Scenes))
	return &script, nil
}

// cleanJSON strips markdown fences if the model wraps its response in
// ```json ... ```
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
