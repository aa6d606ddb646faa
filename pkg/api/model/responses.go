package model

// SequenceResponse is the body of the public generate endpoint
type SequenceResponse struct {
	Sequence *Sequence `json:"sequence"`
}

// StructureResponse is the body of the structure endpoint
type StructureResponse struct {
	Structure []SequencePhase `json:"structure"`
}

// SessionResponse is the body of the session endpoint
type SessionResponse struct {
	UserID string `json:"userId"`
}

// DurationBounds describes the accepted duration range of a schema
type DurationBounds struct {
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	MinExclusive bool    `json:"minExclusive"`
}

// FormOptions lists what a new sequence form may offer
type FormOptions struct {
	Duration     DurationBounds `json:"duration"`
	Difficulties []Difficulty   `json:"difficulties"`
	Styles       []Style        `json:"styles"`
	Focuses      []Focus        `json:"focuses"`
}
