package generation

import (
	"context"
	_ "embed"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"

	"aaaas/sequence-api/pkg/api/helpers"
	"aaaas/sequence-api/pkg/api/model"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogPose struct {
	model.Pose `yaml:",inline"`
	Sided      bool     `yaml:"sided"`
	Cues       []string `yaml:"cues"`
	BreathCue  string   `yaml:"breath_cue"`
}

type phaseTemplate struct {
	Type        model.PhaseType `yaml:"type"`
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Weight      int             `yaml:"weight"`
	Poses       []string        `yaml:"poses"`
}

// Catalog is the pose library and phase layout the template backend builds from
type Catalog struct {
	Poses      []catalogPose          `yaml:"poses"`
	Phases     []phaseTemplate        `yaml:"phases"`
	FocusPeaks map[model.Focus]string `yaml:"focus_peaks"`

	byID  map[string]catalogPose
	names []string
}

// LoadCatalog parses a YAML catalog and checks its references
func LoadCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(err, "parse pose catalog")
	}
	if len(c.Phases) == 0 {
		return nil, errors.New("pose catalog has no phases")
	}

	c.byID = make(map[string]catalogPose, len(c.Poses))
	for _, p := range c.Poses {
		c.byID[p.ID] = p
		c.names = append(c.names, strings.ToLower(p.Name+" "+p.SanskritName))
	}
	for _, ph := range c.Phases {
		if !ph.Type.Valid() {
			return nil, errors.Errorf("phase %q has unknown type %q", ph.Name, ph.Type)
		}
		for _, id := range ph.Poses {
			if _, ok := c.byID[id]; !ok {
				return nil, errors.Errorf("phase %q references unknown pose %q", ph.Name, id)
			}
		}
	}
	for focus, id := range c.FocusPeaks {
		if _, ok := c.byID[id]; !ok {
			return nil, errors.Errorf("focus %q references unknown peak pose %q", focus, id)
		}
	}
	return &c, nil
}

// MatchPose finds the catalog pose closest to ref, by id first and then by fuzzy name
func (c *Catalog) MatchPose(ref model.PoseRef) (catalogPose, bool) {
	if p, ok := c.byID[ref.ID]; ok {
		return p, true
	}
	for _, pattern := range []string{ref.Name, ref.SanskritName} {
		if pattern == "" {
			continue
		}
		matches := fuzzy.Find(strings.ToLower(pattern), c.names)
		if len(matches) > 0 {
			return c.Poses[matches[0].Index], true
		}
	}
	return catalogPose{}, false
}

// TemplateBackend builds sequences from a Catalog without calling out
type TemplateBackend struct {
	catalog *Catalog
	now     func() time.Time
}

// NewTemplateBackend uses the embedded catalog
func NewTemplateBackend() (*TemplateBackend, error) {
	c, err := LoadCatalog(defaultCatalog)
	if err != nil {
		return nil, err
	}
	return &TemplateBackend{catalog: c, now: time.Now}, nil
}

func (b *TemplateBackend) GenerateStructure(ctx context.Context, req BackendRequest) ([]model.SequencePhase, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	phases := make([]model.SequencePhase, 0, len(b.catalog.Phases))
	for i, tpl := range b.catalog.Phases {
		phases = append(phases, model.SequencePhase{
			ID:          uuid.New().String(),
			Name:        tpl.Name,
			PhaseType:   tpl.Type,
			Position:    i,
			Description: tpl.Description,
		})
	}
	return phases, nil
}

func (b *TemplateBackend) Generate(ctx context.Context, req BackendRequest) (*model.Sequence, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	weights := make([]int, len(b.catalog.Phases))
	for i, tpl := range b.catalog.Phases {
		weights[i] = tpl.Weight
	}
	totalSeconds := int(req.Duration * 60)
	phaseSeconds := helpers.AllocateSeconds(totalSeconds, weights)

	phases := make([]model.SequencePhase, 0, len(b.catalog.Phases))
	for i, tpl := range b.catalog.Phases {
		poses := b.phasePoses(tpl, req)
		// every hold lasts at least a second
		if len(poses) > phaseSeconds[i] {
			poses = poses[:max(phaseSeconds[i], 1)]
		}
		sequencePoses := make([]model.SequencePose, 0, len(poses))
		holds := helpers.AllocateSeconds(phaseSeconds[i], make([]int, len(poses)))
		for j, p := range poses {
			sp := model.SequencePose{
				ID:              uuid.New().String(),
				Position:        j,
				DurationSeconds: holds[j],
				Side:            model.SideNone,
				Cues:            p.Cues,
				BreathCue:       p.BreathCue,
				Pose:            p.Pose,
			}
			if p.Sided {
				sp.Side = model.SideBoth
			}
			if j > 0 {
				sp.Transition = "From " + poses[j-1].Name + " move into " + p.Name
			}
			if req.Difficulty == model.DifficultyBeginner && p.Difficulty != string(model.DifficultyBeginner) {
				sp.Modifications = []string{"Use blocks or a wall for support"}
			}
			sequencePoses = append(sequencePoses, sp)
		}
		phases = append(phases, model.SequencePhase{
			ID:          uuid.New().String(),
			Name:        tpl.Name,
			PhaseType:   tpl.Type,
			Position:    i,
			Description: tpl.Description,
			Poses:       sequencePoses,
		})
	}

	now := b.now().UTC()
	return &model.Sequence{
		ID:          uuid.New().String(),
		Description: req.AdditionalNotes,
		Phases:      phases,
		CreatedAt:   now,
		UpdatedAt:   now,
		UserID:      req.UserID,
		Tags:        []string{string(req.Style), string(req.Focus), string(req.Difficulty)},
	}, nil
}

func (b *TemplateBackend) phasePoses(tpl phaseTemplate, req BackendRequest) []catalogPose {
	if tpl.Type == model.PhasePeak {
		return []catalogPose{b.peakPose(req)}
	}

	poses := make([]catalogPose, 0, len(tpl.Poses))
	for _, id := range tpl.Poses {
		p := b.catalog.byID[id]
		if req.Difficulty == model.DifficultyBeginner && p.Difficulty == string(model.DifficultyAdvanced) {
			continue
		}
		poses = append(poses, p)
	}
	if len(poses) == 0 {
		for _, id := range tpl.Poses {
			poses = append(poses, b.catalog.byID[id])
		}
	}
	return poses
}

func (b *TemplateBackend) peakPose(req BackendRequest) catalogPose {
	if req.PeakPose != nil {
		if p, ok := b.catalog.MatchPose(*req.PeakPose); ok {
			return p
		}
		// not in the catalog, keep what the caller asked for
		return catalogPose{Pose: model.Pose{
			ID:           req.PeakPose.ID,
			Name:         req.PeakPose.Name,
			SanskritName: req.PeakPose.SanskritName,
		}}
	}
	if id, ok := b.catalog.FocusPeaks[req.Focus]; ok {
		return b.catalog.byID[id]
	}
	return b.catalog.Poses[0]
}
