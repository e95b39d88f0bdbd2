package config

// Image Generation Constants
const (
	// ImageWidth is the generated image width (16:9 aspect ratio)
	ImageWidth = 1024

	// ImageHeight is the generated image height (16:9 aspect ratio)
	ImageHeight = 576

	// ImageNegativePrompt filters common generation artifacts
	ImageNegativePrompt = "ugly, blurry, low quality, distorted"

	// PlaceholderImageBase serves a fallback frame when generation fails
	PlaceholderImageBase = "https://via.placeholder.com/1024x576/1a1a2e/ffffff"
)

// YouTube Constants
const (
	// YouTubeCategoryID for People & Blogs
	YouTubeCategoryID = "22"

	// YouTubePrivacyStatus sets video visibility
	YouTubePrivacyStatus = "public"
)

// Job Topic Placeholders
const (
	// DefaultTopicLabel names a manual job until the script title is known
	DefaultTopicLabel = "Auto-generated topic"

	// ScheduledTopicLabel names a job created by the scheduler
	ScheduledTopicLabel = "Scheduled daily video"
)
