// Package store holds claims, creators, and videos behind a repository
// interface so orchestration and scoring never depend on where the data
// lives. The in-memory implementation backs tests; the file store adds a
// JSON snapshot for CLI runs.
package store

import (
	"errors"
	"time"

	"github.com/claimscope/claimscope/internal/model"
)

// ErrNotFound is returned when a claim, creator, or video id is unknown.
var ErrNotFound = errors.New("not found")

// Store is the persistence contract the core requires. Orchestrators never
// mutate collections themselves; callers apply verification and extraction
// results through these methods.
type Store interface {
	// ClaimByID returns the claim with the given id.
	ClaimByID(id string) (model.Claim, error)

	// ClaimsByCreator returns all claims for a creator, newest first.
	ClaimsByCreator(creatorID string) ([]model.Claim, error)

	// AllClaims returns every claim, newest first.
	AllClaims() ([]model.Claim, error)

	// PendingClaims returns every claim still awaiting verification.
	PendingClaims() ([]model.Claim, error)

	// AddClaim persists a new claim.
	AddClaim(claim model.Claim) error

	// UpdateClaimStatus applies a verification result to a claim only if
	// the claim is still pending (compare-and-swap on status). It returns
	// false when the claim had already reached a terminal state, which
	// makes concurrent verification of the same claim harmless: the first
	// writer wins and later results are discarded.
	UpdateClaimStatus(id string, result model.VerificationResult, verifiedAt time.Time) (bool, error)

	// ForceUpdateClaimStatus applies a result unconditionally, re-opening
	// the double-verification race the CAS above closes. Administrative
	// use only.
	ForceUpdateClaimStatus(id string, result model.VerificationResult, verifiedAt time.Time) error

	// CreatorByID returns the creator with the given id.
	CreatorByID(id string) (model.Creator, error)

	// AllCreators returns every tracked creator.
	AllCreators() ([]model.Creator, error)

	// AddCreator registers a creator for tracking.
	AddCreator(creator model.Creator) error

	// UpdateCreatorStats replaces a creator's cached stats projection.
	UpdateCreatorStats(id string, stats model.CreatorStats) error

	// AddVideo persists a video, replacing any existing entry with the
	// same id.
	AddVideo(video model.Video) error
}
