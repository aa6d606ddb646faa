package validation

import (
	"fmt"

	"aaaas/sequence-api/pkg/api/model"
)

// FieldType is the JSON type a field must carry before its rules apply
type FieldType int

const (
	TypeNumber FieldType = iota
	TypeString
	TypeObject
)

func (t FieldType) String() string {
	switch t {
	case TypeNumber:
		return "a number"
	case TypeString:
		return "a string"
	case TypeObject:
		return "an object"
	default:
		return "a value"
	}
}

// FieldRule describes one field of a request body. Path uses dots for nesting;
// a nested rule is only checked when its parent object is present.
type FieldRule struct {
	Path     string
	Label    string
	Type     FieldType
	Required bool
	// Tag is a go-playground/validator tag applied once the type matches
	Tag string
}

// Schema is an ordered list of field rules. Field order is the order errors are reported in.
type Schema struct {
	Name     string
	Fields   []FieldRule
	Duration model.DurationBounds
}

const (
	tagDifficulty = "difficulty"
	tagStyle      = "style"
	tagFocus      = "focus"
)

func enumFields() []FieldRule {
	return []FieldRule{
		{Path: "difficulty", Label: "Difficulty", Type: TypeString, Required: true, Tag: tagDifficulty},
		{Path: "style", Label: "Style", Type: TypeString, Required: true, Tag: tagStyle},
		{Path: "focus", Label: "Focus", Type: TypeString, Required: true, Tag: tagFocus},
		{Path: "additionalNotes", Label: "Additional notes", Type: TypeString},
	}
}

func durationRule(bounds model.DurationBounds) FieldRule {
	lower := "gte"
	if bounds.MinExclusive {
		lower = "gt"
	}
	return FieldRule{
		Path:     "duration",
		Label:    "Duration",
		Type:     TypeNumber,
		Required: true,
		Tag:      fmt.Sprintf("%s=%g,lte=%g", lower, bounds.Min, bounds.Max),
	}
}

// StructuredSchema backs the public generate and the structure endpoints
var StructuredSchema = newStructuredSchema()

// SimpleSchema backs the simple generate endpoint. It has no peak pose.
var SimpleSchema = newSimpleSchema()

func newStructuredSchema() Schema {
	bounds := model.DurationBounds{Min: 5, Max: 90}
	fields := []FieldRule{durationRule(bounds)}
	fields = append(fields, enumFields()...)
	fields = append(fields,
		FieldRule{Path: "peakPose", Label: "Peak pose", Type: TypeObject},
		FieldRule{Path: "peakPose.id", Label: "Peak pose id", Type: TypeString, Required: true, Tag: "min=1"},
		FieldRule{Path: "peakPose.name", Label: "Peak pose name", Type: TypeString, Required: true, Tag: "min=1"},
		FieldRule{Path: "peakPose.sanskrit_name", Label: "Peak pose sanskrit name", Type: TypeString},
	)
	return Schema{Name: "structured", Fields: fields, Duration: bounds}
}

func newSimpleSchema() Schema {
	bounds := model.DurationBounds{Min: 0, Max: 90, MinExclusive: true}
	fields := []FieldRule{durationRule(bounds)}
	fields = append(fields, enumFields()...)
	return Schema{Name: "simple", Fields: fields, Duration: bounds}
}

// FormOptions lists the values a client form may offer for this schema
func (s Schema) FormOptions() model.FormOptions {
	return model.FormOptions{
		Duration:     s.Duration,
		Difficulties: model.Difficulties,
		Styles:       model.Styles,
		Focuses:      model.Focuses,
	}
}
