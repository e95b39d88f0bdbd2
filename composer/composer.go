package composer

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"shortsbot/types"
)

// Composer writes per-scene frame metadata and narration audio into a
// fresh working directory owned by one job. It does not encode video; the
// pipeline writes a placeholder artifact next to the composed files.
type Composer struct {
	baseDir string
}

// New creates a composer writing under baseDir.
func New(baseDir string) *Composer {
	return &Composer{baseDir: baseDir}
}

// frameMeta is the JSON stored per scene alongside the audio file.
type frameMeta struct {
	ImageURL string  `json:"imageUrl"`
	Text     string  `json:"text"`
	Duration float64 `json:"duration"`
}

// Compose writes one metadata file and one audio file per scene into a new
// timestamped directory. Inputs must be index-aligned with scenes; the
// returned path lists keep that alignment, and Duration is the exact sum
// of scene durations.
func (c *Composer) Compose(scenes []types.Scene, imageURLs []string, audio [][]byte) (*types.ComposedVideo, error) {
	if len(imageURLs) != len(scenes) || len(audio) != len(scenes) {
		return nil, fmt.Errorf("compose: got %d scenes, %d images, %d audio buffers", len(scenes), len(imageURLs), len(audio))
	}

	outputDir := filepath.Join(c.baseDir, fmt.Sprintf("%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8]))
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	composed := &types.ComposedVideo{
		ImagePaths: make([]string, 0, len(scenes)),
		AudioPaths: make([]string, 0, len(scenes)),
	}

	for i, scene := range scenes {
		meta, err := json.Marshal(frameMeta{
			ImageURL: imageURLs[i],
			Text:     scene.Text,
			Duration: scene.Duration,
		})
		if err != nil {
			return nil, fmt.Errorf("marshal frame %d: %w", i, err)
		}

		imagePath := filepath.Join(outputDir, fmt.Sprintf("frame_%d.txt", i))
		if err := os.WriteFile(imagePath, meta, 0644); err != nil {
			return nil, fmt.Errorf("write frame %d: %w", i, err)
		}
		composed.ImagePaths = append(composed.ImagePaths, imagePath)

		audioPath := filepath.Join(outputDir, fmt.Sprintf("audio_%d.mp3", i))
		if err := os.WriteFile(audioPath, audio[i], 0644); err != nil {
			return nil, fmt.Errorf("write audio %d: %w", i, err)
		}
		composed.AudioPaths = append(composed.AudioPaths, audioPath)

		composed.Duration += scene.Duration
	}

	return composed, nil
}

// Cleanup deletes a working directory recursively. Deletion errors are
// logged and swallowed; cleanup never signals the owning job.
func (c *Composer) Cleanup(dirPath string) {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return
	}
	if err := os.RemoveAll(dirPath); err != nil {
		log.Printf("[composer] error cleaning up temp files: %v", err)
	}
}
