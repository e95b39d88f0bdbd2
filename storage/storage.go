package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"shortsbot/types"
)

// Store persists the application state as one JSON document on disk.
// Every mutation is a full load-modify-save cycle executed under the
// store's lock, so concurrent writers within the process cannot lose
// updates to each other.
type Store struct {
	mu   sync.Mutex
	path string
}

// New creates a store backed by the JSON document at path. A missing file
// is written out with empty defaults right away so the document always
// exists on disk.
func New(path string) *Store {
	s := &Store{path: path}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.save(&types.AppState{Jobs: []types.VideoJob{}}); err != nil {
			log.Printf("[storage] error initializing state: %v", err)
		}
	}
	return s
}

// AddJob creates a pending job with a time-derived id, prepends it to the
// job list, and persists the state. The returned job is a copy.
func (s *Store) AddJob(topic string) (types.VideoJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.load()
	job := types.VideoJob{
		ID:        strconv.FormatInt(time.Now().UnixMilli(), 10),
		Topic:     topic,
		Status:    types.StatusPending,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	state.Jobs = append([]types.VideoJob{job}, state.Jobs...)

	if err := s.save(state); err != nil {
		return types.VideoJob{}, err
	}
	return job, nil
}

// UpdateJob applies mutate to the job with the given id and persists the
// result. Unknown ids are ignored. Terminal statuses are final: a mutation
// that moves a completed or failed job to another status is discarded.
func (s *Store) UpdateJob(id string, mutate func(*types.VideoJob)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.load()
	for i := range state.Jobs {
		if state.Jobs[i].ID != id {
			continue
		}
		prev := state.Jobs[i].Status
		mutate(&state.Jobs[i])
		if prev.Terminal() && state.Jobs[i].Status != prev {
			state.Jobs[i].Status = prev
		}
		return s.save(state)
	}
	return nil
}

// Jobs returns the full job list, newest first.
func (s *Store) Jobs() []types.VideoJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().Jobs
}

// Tokens returns the stored YouTube credential, or nil when the channel is
// not authenticated.
func (s *Store) Tokens() *oauth2.Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().YouTubeTokens
}

// SetTokens persists the YouTube credential obtained from the OAuth
// callback.
func (s *Store) SetTokens(tok *oauth2.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.load()
	state.YouTubeTokens = tok
	return s.save(state)
}

// CronEnabled reports the automation toggle.
func (s *Store) CronEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().CronEnabled
}

// SetCronEnabled persists the automation toggle.
func (s *Store) SetCronEnabled(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.load()
	state.CronEnabled = enabled
	return s.save(state)
}

// load reads the state document. A missing or unreadable file yields empty
// defaults; the caller must hold s.mu.
func (s *Store) load() *types.AppState {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return &types.AppState{Jobs: []types.VideoJob{}}
	}

	var state types.AppState
	if err := json.Unmarshal(data, &state); err != nil {
		log.Printf("[storage] error loading state: %v", err)
		return &types.AppState{Jobs: []types.VideoJob{}}
	}
	if state.Jobs == nil {
		state.Jobs = []types.VideoJob{}
	}
	return &state
}

// save writes the full state document; the caller must hold s.mu.
func (s *Store) save(state *types.AppState) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}
