package dto

import "aaaas/sequence-api/pkg/api/apierror"

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string               `json:"error"`
	Message string               `json:"message,omitempty"`
	Details apierror.FieldErrors `json:"details,omitempty"`
}

// NewErrorResponse renders err. Validation errors carry their field details,
// generation failures carry the backend message.
func NewErrorResponse(err error) ErrorResponse {
	apiErr := apierror.From(err)
	out := ErrorResponse{Error: apiErr.Message, Details: apiErr.Details}
	switch apiErr.Kind {
	case apierror.KindGenerationFailure, apierror.KindUnknown:
		if apiErr.Cause != nil {
			out.Message = apiErr.CauseMessage()
		}
	}
	return out
}
