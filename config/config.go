package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the shortsbot server.
type Config struct {
	Server  ServerConfig
	Video   VideoConfig
	Cohere  CohereConfig
	Speech  SpeechConfig
	Image   ImageConfig
	YouTube YouTubeConfig
}

type ServerConfig struct {
	Port int
}

type VideoConfig struct {
	Niche        string
	StatePath    string
	TmpDir       string
	CronSchedule string
	CleanupDelay time.Duration
}

type CohereConfig struct {
	APIKey string
	Model  string
}

type SpeechConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Voice   string
}

type ImageConfig struct {
	Token   string
	BaseURL string
}

type YouTubeConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// Load reads configuration from environment variables, falling back to
// defaults. Third-party credentials are not validated here: the pipeline
// rejects runs that need missing credentials at request time.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: envInt("PORT", 8080),
		},
		Video: VideoConfig{
			Niche:        envString("VIDEO_NICHE", "interesting facts and knowledge"),
			StatePath:    envString("STATE_PATH", "data/state.json"),
			TmpDir:       envString("TMP_DIR", "tmp/videos"),
			CronSchedule: envString("CRON_SCHEDULE", "0 9 * * *"), // 9 AM daily
			CleanupDelay: envDuration("CLEANUP_DELAY", 60*time.Second),
		},
		Cohere: CohereConfig{
			APIKey: os.Getenv("COHERE_API_KEY"),
			Model:  envString("COHERE_MODEL", "command-r-08-2024"),
		},
		Speech: SpeechConfig{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: envString("SPEECH_BASE_URL", "https://api.openai.com/v1/audio/speech"),
			Model:   envString("SPEECH_MODEL", "tts-1"),
			Voice:   envString("SPEECH_VOICE", "alloy"),
		},
		Image: ImageConfig{
			Token:   os.Getenv("REPLICATE_API_TOKEN"),
			BaseURL: envString("IMAGE_BASE_URL", "https://api.replicate.com/v1/models/stability-ai/sdxl/predictions"),
		},
		YouTube: YouTubeConfig{
			ClientID:     os.Getenv("YOUTUBE_CLIENT_ID"),
			ClientSecret: os.Getenv("YOUTUBE_CLIENT_SECRET"),
			RedirectURI:  os.Getenv("YOUTUBE_REDIRECT_URI"),
		},
	}
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
