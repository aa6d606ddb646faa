package generation

import (
	"context"

	"github.com/pkg/errors"

	"aaaas/sequence-api/pkg/api/model"
)

// ErrUnauthorized is returned by a backend that rejected our credentials or the caller
var ErrUnauthorized = errors.New("generation backend rejected the request as unauthorized")

// BackendRequest is the outbound shape sent to every backend
type BackendRequest struct {
	Duration        float64          `json:"duration"`
	Difficulty      model.Difficulty `json:"difficulty"`
	Style           model.Style      `json:"style"`
	Focus           model.Focus      `json:"focus"`
	AdditionalNotes string           `json:"additionalNotes,omitempty"`
	PeakPose        *model.PoseRef   `json:"peakPose,omitempty"`
	UserID          string           `json:"userId,omitempty"`
	StructureOnly   bool             `json:"structureOnly"`
}

// Backend produces sequences. Implementations must be safe for concurrent use.
type Backend interface {
	Generate(ctx context.Context, req BackendRequest) (*model.Sequence, error)
	GenerateStructure(ctx context.Context, req BackendRequest) ([]model.SequencePhase, error)
}

func newBackendRequest(params model.SequenceRequestParams, userID string, structureOnly bool) BackendRequest {
	req := BackendRequest{
		Duration:        params.Duration,
		Difficulty:      params.Difficulty,
		Style:           params.Style,
		Focus:           params.Focus,
		AdditionalNotes: params.AdditionalNotes,
		UserID:          userID,
		StructureOnly:   structureOnly,
	}
	if params.PeakPose != nil {
		peak := *params.PeakPose
		req.PeakPose = &peak
	}
	return req
}
