// Package validation checks decoded request bodies against a Schema and
// produces normalized parameters or an ordered list of field errors.
package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"aaaas/sequence-api/pkg/api/apierror"
	"aaaas/sequence-api/pkg/api/model"
)

// Validator is safe for concurrent use
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	mustRegister(v, tagDifficulty, enumValidator(model.Difficulties))
	mustRegister(v, tagStyle, enumValidator(model.Styles))
	mustRegister(v, tagFocus, enumValidator(model.Focuses))
	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("registering %s validation: %v", tag, err))
	}
}

func enumValidator[T ~string](values []T) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		for _, v := range values {
			if string(v) == s {
				return true
			}
		}
		return false
	}
}

func enumValues[T ~string](values []T) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, string(v))
	}
	return strings.Join(parts, ", ")
}

// Validate checks raw against schema. Every field is inspected before returning.
// The returned params are only meaningful when the error list is empty.
func (v *Validator) Validate(schema Schema, raw interface{}) (model.SequenceRequestParams, apierror.FieldErrors) {
	var errs apierror.FieldErrors

	body, ok := raw.(map[string]interface{})
	if !ok {
		errs = append(errs, apierror.FieldError{Path: "(root)", Message: "Request body must be a JSON object"})
		return model.SequenceRequestParams{}, errs
	}

	values := make(map[string]interface{}, len(schema.Fields))
	skipped := make(map[string]bool)

	for _, rule := range schema.Fields {
		if parent, nested := parentPath(rule.Path); nested && (skipped[parent] || values[parent] == nil) {
			skipped[rule.Path] = true
			continue
		}

		value, present := lookup(body, rule.Path)
		if !present || value == nil {
			if rule.Required {
				errs = append(errs, apierror.FieldError{Path: rule.Path, Message: fmt.Sprintf("%s is required", rule.Label)})
			}
			skipped[rule.Path] = true
			continue
		}

		if !hasType(value, rule.Type) {
			errs = append(errs, apierror.FieldError{Path: rule.Path, Message: fmt.Sprintf("%s must be %s", rule.Label, rule.Type)})
			skipped[rule.Path] = true
			continue
		}

		if rule.Tag != "" {
			if err := v.validate.Var(value, rule.Tag); err != nil {
				errs = append(errs, apierror.FieldError{Path: rule.Path, Message: messageFor(rule, err)})
				skipped[rule.Path] = true
				continue
			}
		}
		values[rule.Path] = value
	}

	if len(errs) > 0 {
		return model.SequenceRequestParams{}, errs
	}
	return buildParams(values), nil
}

// ValidateRequest is Validate with the failure wrapped as a VALIDATION error
func (v *Validator) ValidateRequest(schema Schema, raw interface{}) (model.SequenceRequestParams, error) {
	params, errs := v.Validate(schema, raw)
	if len(errs) > 0 {
		return params, apierror.Validation("Invalid sequence parameters", errs)
	}
	return params, nil
}

func parentPath(path string) (string, bool) {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return "", false
	}
	return path[:i], true
}

func lookup(body map[string]interface{}, path string) (interface{}, bool) {
	var current interface{} = body
	for _, key := range strings.Split(path, ".") {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func hasType(value interface{}, t FieldType) bool {
	switch t {
	case TypeNumber:
		_, ok := value.(float64)
		return ok
	case TypeString:
		_, ok := value.(string)
		return ok
	case TypeObject:
		_, ok := value.(map[string]interface{})
		return ok
	}
	return false
}

func messageFor(rule FieldRule, err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return fmt.Sprintf("%s is invalid", rule.Label)
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("%s must be at least %s minutes", rule.Label, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s minutes", rule.Label, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s minutes", rule.Label, fe.Param())
	case "min":
		return fmt.Sprintf("%s must not be empty", rule.Label)
	case tagDifficulty:
		return fmt.Sprintf("%s must be one of: %s", rule.Label, enumValues(model.Difficulties))
	case tagStyle:
		return fmt.Sprintf("%s must be one of: %s", rule.Label, enumValues(model.Styles))
	case tagFocus:
		return fmt.Sprintf("%s must be one of: %s", rule.Label, enumValues(model.Focuses))
	default:
		return fmt.Sprintf("%s is invalid", rule.Label)
	}
}

func buildParams(values map[string]interface{}) model.SequenceRequestParams {
	str := func(path string) string {
		s, _ := values[path].(string)
		return s
	}

	params := model.SequenceRequestParams{
		Difficulty:      model.Difficulty(str("difficulty")),
		Style:           model.Style(str("style")),
		Focus:           model.Focus(str("focus")),
		AdditionalNotes: str("additionalNotes"),
	}
	params.Duration, _ = values["duration"].(float64)

	if _, ok := values["peakPose"]; ok {
		params.PeakPose = &model.PoseRef{
			ID:           str("peakPose.id"),
			Name:         str("peakPose.name"),
			SanskritName: str("peakPose.sanskrit_name"),
		}
	}
	return params
}
