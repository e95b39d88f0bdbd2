package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"shortsbot/config"
	"shortsbot/storage"
	"shortsbot/types"
)

// ErrNotAuthenticated is returned synchronously when a run is requested
// before the YouTube OAuth flow has stored a credential. No job is created.
var ErrNotAuthenticated = errors.New("YouTube not authenticated")

// ScriptGenerator produces a full video script for an optional topic.
type ScriptGenerator interface {
	Generate(ctx context.Context, topic string) (*types.VideoScript, error)
}

// ImageGenerator returns an image URL for a scene prompt. Implementations
// must not fail; backend errors degrade to a placeholder URL.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) string
}

// NarrationGenerator returns raw audio bytes for scene text.
type NarrationGenerator interface {
	Generate(ctx context.Context, text string) ([]byte, error)
}

// Composer materializes scene artifacts into a working directory.
type Composer interface {
	Compose(scenes []types.Scene, imageURLs []string, audio [][]byte) (*types.ComposedVideo, error)
	Cleanup(dirPath string)
}

// Uploader publishes the video file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, videoPath, title, description string, tags []string, token *oauth2.Token) (string, error)
}

// Runner drives one job from creation to terminal status: script
// generation, per-scene asset fan-out, composition, upload, and delayed
// best-effort cleanup. Stages run strictly in sequence; only the asset
// fan-out within a stage is concurrent.
type Runner struct {
	store        *storage.Store
	script       ScriptGenerator
	images       ImageGenerator
	narration    NarrationGenerator
	composer     Composer
	uploader     Uploader
	cleanupDelay time.Duration
}

// NewRunner wires the pipeline stages together. cleanupDelay is the grace
// period before a finished job's working directory is deleted.
func NewRunner(
	store *storage.Store,
	script ScriptGenerator,
	images ImageGenerator,
	narration NarrationGenerator,
	composer Composer,
	uploader Uploader,
	cleanupDelay time.Duration,
) *Runner {
	return &Runner{
		store:        store,
		script:       script,
		images:       images,
		narration:    narration,
		composer:     composer,
		uploader:     uploader,
		cleanupDelay: cleanupDelay,
	}
}

// Start begins a manually requested job. The job id is returned as soon as
// the pending record is persisted; generation continues detached and all
// later failures land on the job record, never on this call.
func (r *Runner) Start(topic string) (string, error) {
	label := topic
	if label == "" {
		label = config.DefaultTopicLabel
	}
	return r.start(label, topic)
}

// StartScheduled begins a job triggered by the scheduler. The script
// generator picks a topic from the configured niche.
func (r *Runner) StartScheduled() (string, error) {
	return r.start(config.ScheduledTopicLabel, "")
}

func (r *Runner) start(label, topic string) (string, error) {
	if r.store.Tokens() == nil {
		return "", ErrNotAuthenticated
	}

	job, err := r.store.AddJob(label)
	if err != nil {
		return "", err
	}

	go r.run(job.ID, topic)
	return job.ID, nil
}

// run executes the detached portion of a job. Every failure is recorded as
// the job's terminal failed state; nothing propagates past this boundary.
func (r *Runner) run(jobID, topic string) {
	ctx := context.Background()
	var workDir string

	err := func() error {
		r.setStatus(jobID, types.StatusGenerating)

		log.Printf("[pipeline] job %s: generating script...", jobID)
		script, err := r.script.Generate(ctx, topic)
		if err != nil {
			return fmt.Errorf("generate script: %w", err)
		}
		r.update(jobID, func(j *types.VideoJob) { j.Topic = script.Title })

		if len(script.Scenes) == 0 {
			return fmt.Errorf("script has no scenes")
		}

		log.Printf("[pipeline] job %s: generating %d images...", jobID, len(script.Scenes))
		imageURLs := r.generateImages(ctx, script.Scenes)

		log.Printf("[pipeline] job %s: generating narration...", jobID)
		audio, err := r.generateNarration(ctx, script.Scenes)
		if err != nil {
			return err
		}

		log.Printf("[pipeline] job %s: composing video...", jobID)
		composed, err := r.composer.Compose(script.Scenes, imageURLs, audio)
		if err != nil {
			return fmt.Errorf("compose video: %w", err)
		}
		workDir = filepath.Dir(composed.ImagePaths[0])

		// Placeholder artifact standing in for a real encoding step.
		videoPath := filepath.Join(workDir, "video.mp4")
		if err := os.WriteFile(videoPath, []byte("Video placeholder - integrate FFmpeg for actual video creation"), 0644); err != nil {
			return fmt.Errorf("write video file: %w", err)
		}

		r.setStatus(jobID, types.StatusUploading)

		log.Printf("[pipeline] job %s: uploading to YouTube...", jobID)
		videoURL, err := r.uploader.Upload(ctx, videoPath, script.Title, script.Description, script.Tags, r.store.Tokens())
		if err != nil {
			return err
		}

		r.update(jobID, func(j *types.VideoJob) {
			j.Status = types.StatusCompleted
			j.YouTubeURL = videoURL
		})
		log.Printf("[pipeline] job %s: completed (%s)", jobID, videoURL)
		return nil
	}()

	if err != nil {
		log.Printf("[pipeline] job %s failed: %v", jobID, err)
		r.update(jobID, func(j *types.VideoJob) {
			j.Status = types.StatusFailed
			j.Error = err.Error()
		})
	}

	// Delete the working directory after a grace period for in-flight
	// readers. Fire-and-forget: cleanup failures never reach the job.
	if workDir != "" {
		dir := workDir
		time.AfterFunc(r.cleanupDelay, func() { r.composer.Cleanup(dir) })
	}
}

// generateImages fans out one request per scene and re-associates results
// by scene index. Image generation never fails.
func (r *Runner) generateImages(ctx context.Context, scenes []types.Scene) []string {
	imageURLs := make([]string, len(scenes))

	var wg sync.WaitGroup
	for i, scene := range scenes {
		wg.Add(1)
		go func(i int, prompt string) {
			defer wg.Done()
			imageURLs[i] = r.images.Generate(ctx, prompt)
		}(i, scene.ImagePrompt)
	}
	wg.Wait()

	return imageURLs
}

// generateNarration fans out one request per scene. Any scene failure
// fails the whole batch.
func (r *Runner) generateNarration(ctx context.Context, scenes []types.Scene) ([][]byte, error) {
	audio := make([][]byte, len(scenes))
	errs := make([]error, len(scenes))

	var wg sync.WaitGroup
	for i, scene := range scenes {
		wg.Add(1)
		go func(i int, text string) {
			defer wg.Done()
			audio[i], errs[i] = r.narration.Generate(ctx, text)
		}(i, scene.Text)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("scene %d: %w", i, err)
		}
	}
	return audio, nil
}

func (r *Runner) setStatus(jobID string, status types.JobStatus) {
	r.update(jobID, func(j *types.VideoJob) { j.Status = status })
}

func (r *Runner) update(jobID string, mutate func(*types.VideoJob)) {
	if err := r.store.UpdateJob(jobID, mutate); err != nil {
		log.Printf("[pipeline] job %s: state update error: %v", jobID, err)
	}
}
