package types

import "golang.org/x/oauth2"

// JobStatus tracks a video job through the pipeline.
type JobStatus string

const (
	StatusPending    JobStatus = "pending"
	StatusGenerating JobStatus = "generating"
	StatusUploading  JobStatus = "uploading"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Terminal reports whether a job can no longer change status.
func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// VideoJob is one generation-and-upload run. Jobs are created by the
// pipeline and never deleted; they accumulate newest-first in AppState.
type VideoJob struct {
	ID         string    `json:"id"`
	Topic      string    `json:"topic"`
	Status     JobStatus `json:"status"`
	YouTubeURL string    `json:"youtubeUrl,omitempty"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  string    `json:"createdAt"`
}

// AppState is the single document persisted on disk.
type AppState struct {
	Jobs          []VideoJob    `json:"jobs"`
	YouTubeTokens *oauth2.Token `json:"youtubeTokens,omitempty"`
	CronEnabled   bool          `json:"cronEnabled"`
}

// Scene is one narrated beat of a script. Immutable once generated.
type Scene struct {
	Text        string  `json:"text"`
	ImagePrompt string  `json:"imagePrompt"`
	Duration    float64 `json:"duration"`
}

// VideoScript is the language model's output for one job.
type VideoScript struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Script      string   `json:"script"`
	Tags        []string `json:"tags"`
	Scenes      []Scene  `json:"scenes"`
}

// ComposedVideo holds the per-scene artifact paths written by the composer,
// index-aligned with the script's scenes, plus the total duration.
type ComposedVideo struct {
	ImagePaths []string
	AudioPaths []string
	Duration   float64
}
