package uploader

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"shortsbot/config"
)

// Uploader talks to the YouTube Data API using the OAuth2 credential
// persisted by the auth callback.
type Uploader struct {
	conf *oauth2.Config
}

// New builds an uploader from the configured OAuth client credentials.
func New(cfg config.YouTubeConfig) *Uploader {
	return &Uploader{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Endpoint:     google.Endpoint,
			Scopes:       []string{youtube.YoutubeUploadScope, youtube.YoutubeScope},
		},
	}
}

// AuthURL returns the consent URL that starts the authorization-code flow.
func (u *Uploader) AuthURL() string {
	return u.conf.AuthCodeURL("state",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// Exchange trades an authorization code for a token set.
func (u *Uploader) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	tok, err := u.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return tok, nil
}

// Upload streams the video file to YouTube with the given metadata and
// returns the public watch URL.
func (u *Uploader) Upload(ctx context.Context, videoPath, title, description string, tags []string, token *oauth2.Token) (string, error) {
	client := u.conf.Client(ctx, token)
	svc, err := youtube.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return "", fmt.Errorf("youtube service: %w", err)
	}

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       title,
			Description: description,
			Tags:        tags,
			CategoryId:  config.YouTubeCategoryID,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus:           config.YouTubePrivacyStatus,
			SelfDeclaredMadeForKids: false,
		},
	}

	f, err := os.Open(videoPath)
	if err != nil {
		return "", fmt.Errorf("open video file: %w", err)
	}
	defer f.Close()

	log.Printf("[upload] Uploading %q to YouTube...", title)

	call := svc.Videos.Insert([]string{"snippet", "status"}, video)
	call.Media(f)

	uploaded, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload to YouTube: %w", err)
	}

	videoURL := fmt.Sprintf("https://www.youtube.com/watch?v=%s", uploaded.Id)
	log.Printf("[upload] Uploaded: %s", videoURL)
	return videoURL, nil
}
