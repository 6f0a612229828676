package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/claimscope/claimscope/internal/model"
)

// FileStore wraps a MemoryStore with a write-through JSON snapshot so CLI
// runs see each other's data. Every mutation rewrites the snapshot; reads
// are served from memory.
type FileStore struct {
	*MemoryStore
	path string
}

type fileSnapshot struct {
	SavedAt  time.Time       `json:"saved_at"`
	Claims   []model.Claim   `json:"claims"`
	Creators []model.Creator `json:"creators"`
	Videos   []model.Video   `json:"videos"`
}

// OpenFileStore loads the snapshot at path, creating an empty store when
// the file does not exist yet.
func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		MemoryStore: NewMemoryStore(),
		path:        path,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}

	var snap fileSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode store %s: %w", path, err)
	}

	for _, c := range snap.Creators {
		s.MemoryStore.creators[c.ID] = c
	}
	for _, c := range snap.Claims {
		s.MemoryStore.claims[c.ID] = c
	}
	for _, v := range snap.Videos {
		s.MemoryStore.videos[v.ID] = v
	}

	return s, nil
}

// flush writes the current snapshot to disk.
func (s *FileStore) flush() error {
	claims, creators, videos := s.snapshot()

	data, err := json.MarshalIndent(fileSnapshot{
		SavedAt:  time.Now().UTC(),
		Claims:   claims,
		Creators: creators,
		Videos:   videos,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	// Write-then-rename keeps a crash from truncating the snapshot.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

// AddClaim persists a new claim and flushes the snapshot.
func (s *FileStore) AddClaim(claim model.Claim) error {
	if err := s.MemoryStore.AddClaim(claim); err != nil {
		return err
	}
	return s.flush()
}

// UpdateClaimStatus applies a result only while the claim is still pending.
func (s *FileStore) UpdateClaimStatus(id string, result model.VerificationResult, verifiedAt time.Time) (bool, error) {
	applied, err := s.MemoryStore.UpdateClaimStatus(id, result, verifiedAt)
	if err != nil || !applied {
		return applied, err
	}
	return true, s.flush()
}

// ForceUpdateClaimStatus applies a result unconditionally.
func (s *FileStore) ForceUpdateClaimStatus(id string, result model.VerificationResult, verifiedAt time.Time) error {
	if err := s.MemoryStore.ForceUpdateClaimStatus(id, result, verifiedAt); err != nil {
		return err
	}
	return s.flush()
}

// AddCreator registers a creator for tracking.
func (s *FileStore) AddCreator(creator model.Creator) error {
	if err := s.MemoryStore.AddCreator(creator); err != nil {
		return err
	}
	return s.flush()
}

// UpdateCreatorStats replaces a creator's cached stats projection.
func (s *FileStore) UpdateCreatorStats(id string, stats model.CreatorStats) error {
	if err := s.MemoryStore.UpdateCreatorStats(id, stats); err != nil {
		return err
	}
	return s.flush()
}

// AddVideo persists a video.
func (s *FileStore) AddVideo(video model.Video) error {
	if err := s.MemoryStore.AddVideo(video); err != nil {
		return err
	}
	return s.flush()
}
