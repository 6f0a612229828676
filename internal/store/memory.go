package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/claimscope/claimscope/internal/model"
)

// MemoryStore is a mutex-guarded in-memory Store.
type MemoryStore struct {
	mu       sync.RWMutex
	claims   map[string]model.Claim
	creators map[string]model.Creator
	videos   map[string]model.Video
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		claims:   make(map[string]model.Claim),
		creators: make(map[string]model.Creator),
		videos:   make(map[string]model.Video),
	}
}

// ClaimByID returns the claim with the given id.
func (s *MemoryStore) ClaimByID(id string) (model.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	claim, ok := s.claims[id]
	if !ok {
		return model.Claim{}, fmt.Errorf("claim %s: %w", id, ErrNotFound)
	}
	return claim, nil
}

// ClaimsByCreator returns all claims for a creator, newest first.
func (s *MemoryStore) ClaimsByCreator(creatorID string) ([]model.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var claims []model.Claim
	for _, c := range s.claims {
		if c.CreatorID == creatorID {
			claims = append(claims, c)
		}
	}
	sortClaims(claims)
	return claims, nil
}

// AllClaims returns every claim, newest first.
func (s *MemoryStore) AllClaims() ([]model.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	claims := make([]model.Claim, 0, len(s.claims))
	for _, c := range s.claims {
		claims = append(claims, c)
	}
	sortClaims(claims)
	return claims, nil
}

// PendingClaims returns every claim still awaiting verification.
func (s *MemoryStore) PendingClaims() ([]model.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var claims []model.Claim
	for _, c := range s.claims {
		if c.Status == model.StatusPending {
			claims = append(claims, c)
		}
	}
	sortClaims(claims)
	return claims, nil
}

// AddClaim persists a new claim.
func (s *MemoryStore) AddClaim(claim model.Claim) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.claims[claim.ID]; exists {
		return fmt.Errorf("claim %s already exists", claim.ID)
	}
	s.claims[claim.ID] = claim
	return nil
}

// UpdateClaimStatus applies a result only while the claim is still pending.
func (s *MemoryStore) UpdateClaimStatus(id string, result model.VerificationResult, verifiedAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	claim, ok := s.claims[id]
	if !ok {
		return false, fmt.Errorf("claim %s: %w", id, ErrNotFound)
	}
	if claim.Status != model.StatusPending {
		return false, nil
	}

	s.claims[id] = applyResult(claim, result, verifiedAt)
	return true, nil
}

// ForceUpdateClaimStatus applies a result unconditionally.
func (s *MemoryStore) ForceUpdateClaimStatus(id string, result model.VerificationResult, verifiedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	claim, ok := s.claims[id]
	if !ok {
		return fmt.Errorf("claim %s: %w", id, ErrNotFound)
	}
	s.claims[id] = applyResult(claim, result, verifiedAt)
	return nil
}

// CreatorByID returns the creator with the given id.
func (s *MemoryStore) CreatorByID(id string) (model.Creator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	creator, ok := s.creators[id]
	if !ok {
		return model.Creator{}, fmt.Errorf("creator %s: %w", id, ErrNotFound)
	}
	return creator, nil
}

// AllCreators returns every tracked creator, ordered by id for stable
// output.
func (s *MemoryStore) AllCreators() ([]model.Creator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	creators := make([]model.Creator, 0, len(s.creators))
	for _, c := range s.creators {
		creators = append(creators, c)
	}
	sort.Slice(creators, func(i, j int) bool { return creators[i].ID < creators[j].ID })
	return creators, nil
}

// AddCreator registers a creator for tracking.
func (s *MemoryStore) AddCreator(creator model.Creator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.creators[creator.ID]; exists {
		return fmt.Errorf("creator %s already exists", creator.ID)
	}
	s.creators[creator.ID] = creator
	return nil
}

// UpdateCreatorStats replaces a creator's cached stats projection.
func (s *MemoryStore) UpdateCreatorStats(id string, stats model.CreatorStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	creator, ok := s.creators[id]
	if !ok {
		return fmt.Errorf("creator %s: %w", id, ErrNotFound)
	}
	creator.Stats = stats
	s.creators[id] = creator
	return nil
}

// AddVideo persists a video, replacing any existing entry.
func (s *MemoryStore) AddVideo(video model.Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.videos[video.ID] = video
	return nil
}

// snapshot returns copies of all collections for serialization.
func (s *MemoryStore) snapshot() ([]model.Claim, []model.Creator, []model.Video) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	claims := make([]model.Claim, 0, len(s.claims))
	for _, c := range s.claims {
		claims = append(claims, c)
	}
	creators := make([]model.Creator, 0, len(s.creators))
	for _, c := range s.creators {
		creators = append(creators, c)
	}
	videos := make([]model.Video, 0, len(s.videos))
	for _, v := range s.videos {
		videos = append(videos, v)
	}
	sortClaims(claims)
	sort.Slice(creators, func(i, j int) bool { return creators[i].ID < creators[j].ID })
	sort.Slice(videos, func(i, j int) bool { return videos[i].ID < videos[j].ID })
	return claims, creators, videos
}

func applyResult(claim model.Claim, result model.VerificationResult, verifiedAt time.Time) model.Claim {
	claim.Status = result.Status
	claim.VerificationNotes = result.VerificationNotes
	claim.VerificationDate = &verifiedAt
	return claim
}

func sortClaims(claims []model.Claim) {
	sort.Slice(claims, func(i, j int) bool {
		if !claims[i].CreatedAt.Equal(claims[j].CreatedAt) {
			return claims[i].CreatedAt.After(claims[j].CreatedAt)
		}
		return claims[i].ID < claims[j].ID
	})
}
