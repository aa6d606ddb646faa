// Package generation shapes validated parameters into backend calls and
// accepts only complete, internally consistent results.
package generation

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"aaaas/sequence-api/pkg/api/apierror"
	"aaaas/sequence-api/pkg/api/helpers"
	"aaaas/sequence-api/pkg/api/model"
	"aaaas/sequence-api/pkg/log"
)

// maxDurationOverrun bounds the total pose time against the requested minutes
const maxDurationOverrun = 2.0

// Orchestrator holds no per-request state
type Orchestrator struct {
	backend Backend
	now     func() time.Time
}

func NewOrchestrator(backend Backend) *Orchestrator {
	return &Orchestrator{backend: backend, now: time.Now}
}

// GenerateSequence asks the backend for a fully elaborated sequence
func (o *Orchestrator) GenerateSequence(ctx context.Context, params model.SequenceRequestParams, userID string) (*model.Sequence, error) {
	req := newBackendRequest(params, userID, false)

	seq, err := o.backend.Generate(ctx, req)
	if err != nil {
		return nil, mapBackendError(err, "generate sequence")
	}
	if err := checkSequence(seq, params); err != nil {
		return nil, apierror.GenerationFailure(err, "Generated sequence is inconsistent")
	}

	o.complete(seq, params, userID)
	log.Debugf("generated sequence %s with %d phases for user %q", seq.ID, len(seq.Phases), userID)
	return seq, nil
}

// GenerateSequenceStructure asks the backend for a phase skeleton. This is a
// separate backend call, the full result is never reduced.
func (o *Orchestrator) GenerateSequenceStructure(ctx context.Context, params model.SequenceRequestParams, userID string) ([]model.SequencePhase, error) {
	req := newBackendRequest(params, userID, true)

	phases, err := o.backend.GenerateStructure(ctx, req)
	if err != nil {
		return nil, mapBackendError(err, "generate sequence structure")
	}
	if err := checkStructure(phases); err != nil {
		return nil, apierror.GenerationFailure(err, "Generated structure is inconsistent")
	}

	structure := make([]model.SequencePhase, len(phases))
	for i, phase := range phases {
		phase.Poses = nil
		structure[i] = phase
	}
	helpers.SortPhases(structure)
	return structure, nil
}

func mapBackendError(err error, op string) error {
	if errors.Is(err, ErrUnauthorized) {
		return apierror.Wrap(err, apierror.KindAuthorization, "Unauthorized")
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apierror.GenerationFailure(err, fmt.Sprintf("Failed to %s: request was cancelled", op))
	}
	return apierror.GenerationFailure(err, fmt.Sprintf("Failed to %s", op))
}

func checkPhaseHeaders(phases []model.SequencePhase) error {
	if len(phases) == 0 {
		return errors.New("no phases")
	}
	for i, phase := range phases {
		if !phase.PhaseType.Valid() {
			return errors.Errorf("phase %d has unknown type %q", i, phase.PhaseType)
		}
		if phase.Name == "" {
			return errors.Errorf("phase %d has no name", i)
		}
	}
	return nil
}

func checkStructure(phases []model.SequencePhase) error {
	return checkPhaseHeaders(phases)
}

func checkSequence(seq *model.Sequence, params model.SequenceRequestParams) error {
	if seq == nil {
		return errors.New("backend returned no sequence")
	}
	if err := checkPhaseHeaders(seq.Phases); err != nil {
		return err
	}
	for _, phase := range seq.Phases {
		if len(phase.Poses) == 0 {
			return errors.Errorf("phase %q has no poses", phase.Name)
		}
		if dup, ok := helpers.DuplicatePosition(phase.Poses); ok {
			return errors.Errorf("phase %q repeats pose position %d", phase.Name, dup)
		}
		for _, pose := range phase.Poses {
			if pose.Pose.Name == "" {
				return errors.Errorf("phase %q has a pose without a name at position %d", phase.Name, pose.Position)
			}
			if pose.DurationSeconds <= 0 {
				return errors.Errorf("pose %q in phase %q has no duration", pose.Pose.Name, phase.Name)
			}
		}
	}
	// short practices still get a second per pose
	limit := max(int(math.Ceil(params.Duration*60*maxDurationOverrun)), poseCount(seq))
	if total := seq.TotalPoseSeconds(); total > limit {
		return errors.Errorf("poses last %ds, more than %ds allowed for %g minutes", total, limit, params.Duration)
	}
	return nil
}

func poseCount(seq *model.Sequence) int {
	n := 0
	for _, phase := range seq.Phases {
		n += len(phase.Poses)
	}
	return n
}

// complete fills what the backend may leave out and fixes ordering
func (o *Orchestrator) complete(seq *model.Sequence, params model.SequenceRequestParams, userID string) {
	if seq.ID == "" {
		seq.ID = uuid.New().String()
	}
	if seq.Name == "" {
		seq.Name = helpers.DefaultSequenceName(params)
	}
	seq.DurationMinutes = params.Duration
	seq.Difficulty = params.Difficulty
	seq.Style = params.Style
	seq.Focus = params.Focus
	seq.StructureOnly = false
	if userID != "" {
		seq.UserID = userID
	}

	now := o.now().UTC()
	if seq.CreatedAt.IsZero() {
		seq.CreatedAt = now
	}
	if seq.UpdatedAt.IsZero() {
		seq.UpdatedAt = seq.CreatedAt
	}

	helpers.SortPhases(seq.Phases)
	for i := range seq.Phases {
		helpers.SortPoses(seq.Phases[i].Poses)
	}
}
