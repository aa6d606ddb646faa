package model

import "time"

// Difficulty of a practice
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Style of a practice
type Style string

const (
	StyleVinyasa     Style = "vinyasa"
	StyleHatha       Style = "hatha"
	StyleYin         Style = "yin"
	StylePower       Style = "power"
	StyleRestorative Style = "restorative"
)

// Focus is the body area a practice concentrates on
type Focus string

const (
	FocusFullBody    Focus = "full body"
	FocusUpperBody   Focus = "upper body"
	FocusLowerBody   Focus = "lower body"
	FocusCore        Focus = "core"
	FocusBalance     Focus = "balance"
	FocusFlexibility Focus = "flexibility"
)

// PhaseType is the role a phase plays inside a sequence
type PhaseType string

const (
	PhaseCentering PhaseType = "centering"
	PhaseWarmUp    PhaseType = "warm_up"
	PhaseBuilding  PhaseType = "building"
	PhasePeak      PhaseType = "peak"
	PhaseCoolDown  PhaseType = "cool_down"
	PhaseClosing   PhaseType = "closing"
)

// Side a pose is held on
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
	SideBoth  Side = "both"
	SideNone  Side = "none"
)

var (
	Difficulties = []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}
	Styles       = []Style{StyleVinyasa, StyleHatha, StyleYin, StylePower, StyleRestorative}
	Focuses      = []Focus{FocusFullBody, FocusUpperBody, FocusLowerBody, FocusCore, FocusBalance, FocusFlexibility}
	PhaseTypes   = []PhaseType{PhaseCentering, PhaseWarmUp, PhaseBuilding, PhasePeak, PhaseCoolDown, PhaseClosing}
)

// Valid reports whether t is one of the known phase types
func (t PhaseType) Valid() bool {
	for _, known := range PhaseTypes {
		if t == known {
			return true
		}
	}
	return false
}

// PoseRef identifies a catalog pose, e.g. the peak pose a sequence builds toward
type PoseRef struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SanskritName string `json:"sanskrit_name,omitempty"`
}

// SequenceRequestParams is the validated payload of a generation request
type SequenceRequestParams struct {
	Duration        float64    `json:"duration"`
	Difficulty      Difficulty `json:"difficulty"`
	Style           Style      `json:"style"`
	Focus           Focus      `json:"focus"`
	AdditionalNotes string     `json:"additionalNotes,omitempty"`
	PeakPose        *PoseRef   `json:"peakPose,omitempty"`
}

// Pose is a catalog entity
type Pose struct {
	ID              string `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	SanskritName    string `json:"sanskrit_name,omitempty" yaml:"sanskrit_name"`
	Description     string `json:"description,omitempty" yaml:"description"`
	Difficulty      string `json:"difficulty,omitempty" yaml:"difficulty"`
	Category        string `json:"category,omitempty" yaml:"category"`
	DurationSeconds int    `json:"duration_seconds,omitempty" yaml:"duration_seconds"`
	ImageURL        string `json:"image_url,omitempty" yaml:"image_url"`
}

// SequencePose is a pose placed inside a phase
type SequencePose struct {
	ID              string   `json:"id,omitempty"`
	Position        int      `json:"position"`
	DurationSeconds int      `json:"duration_seconds"`
	Side            Side     `json:"side,omitempty"`
	Cues            []string `json:"cues,omitempty"`
	Transition      string   `json:"transition,omitempty"`
	BreathCue       string   `json:"breath_cue,omitempty"`
	Modifications   []string `json:"modifications,omitempty"`
	Pose            Pose     `json:"pose"`
}

// SequencePhase groups poses under a role
type SequencePhase struct {
	ID          string         `json:"id,omitempty"`
	Name        string         `json:"name"`
	PhaseType   PhaseType      `json:"phase_type"`
	Position    int            `json:"position"`
	Description string         `json:"description,omitempty"`
	Poses       []SequencePose `json:"poses,omitempty"`
}

// Sequence is the top level aggregate
type Sequence struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	DurationMinutes float64         `json:"duration_minutes"`
	Difficulty      Difficulty      `json:"difficulty"`
	Style           Style           `json:"style"`
	Focus           Focus           `json:"focus"`
	Phases          []SequencePhase `json:"phases"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	UserID          string          `json:"user_id,omitempty"`
	IsFavorite      bool            `json:"is_favorite"`
	Tags            []string        `json:"tags,omitempty"`
	StructureOnly   bool            `json:"structureOnly,omitempty"`
}

// TotalPoseSeconds sums the hold time of every pose in the sequence
func (s *Sequence) TotalPoseSeconds() int {
	total := 0
	for _, phase := range s.Phases {
		for _, pose := range phase.Poses {
			total += pose.DurationSeconds
		}
	}
	return total
}
