package handlers

import (
	"net/http"

	"aaaas/sequence-api/pkg/api/auth"
	"aaaas/sequence-api/pkg/api/generation"
	"aaaas/sequence-api/pkg/api/model"
	"aaaas/sequence-api/pkg/api/server"
	"aaaas/sequence-api/pkg/api/validation"
)

// HandlerGroup serves the sequence generation API
type HandlerGroup struct {
	Orchestrator *generation.Orchestrator
	Validator    *validation.Validator
}

func NewHandlerGroup(orchestrator *generation.Orchestrator, validator *validation.Validator) HandlerGroup {
	return HandlerGroup{Orchestrator: orchestrator, Validator: validator}
}

func (h HandlerGroup) GroupPath() string {
	return "api"
}

// The public and simple generate routes overlap but are separate contracts:
// the simple one has no peak pose, a looser duration floor and returns a bare sequence.
func (h HandlerGroup) HandlerManifests() []server.APIHandlerManifest {
	return []server.APIHandlerManifest{
		{
			Path:        "sequences/generate",
			HTTPMethod:  http.MethodPost,
			Auth:        auth.RouteOpen,
			HandlerFunc: h.generateSequence,
		},
		{
			Path:        "generate-sequence",
			HTTPMethod:  http.MethodPost,
			Auth:        auth.RouteOpen,
			HandlerFunc: h.generateSimpleSequence,
		},
		{
			Path:        "sequences/structure",
			HTTPMethod:  http.MethodPost,
			Auth:        auth.RouteAPI,
			HandlerFunc: h.generateStructure,
		},
		{
			Path:        "session",
			HTTPMethod:  http.MethodGet,
			Auth:        auth.RouteAPI,
			HandlerFunc: h.currentSession,
		},
	}
}

func (h *HandlerGroup) generateSequence(s *server.APIServer, c *server.APICtx) (code int, obj interface{}) {
	body, err := c.DecodeJSON()
	if err != nil {
		return c.Fail(err)
	}

	params, err := h.Validator.ValidateRequest(validation.StructuredSchema, body)
	if err != nil {
		return c.Fail(err)
	}

	// open route, but a signed-in caller still owns the result
	userID, _ := c.Session().CurrentUserID()

	sequence, err := h.Orchestrator.GenerateSequence(c.Request.Context(), params, userID)
	if err != nil {
		return c.Fail(err)
	}
	return http.StatusCreated, model.SequenceResponse{Sequence: sequence}
}

func (h *HandlerGroup) generateSimpleSequence(s *server.APIServer, c *server.APICtx) (code int, obj interface{}) {
	body, err := c.DecodeJSON()
	if err != nil {
		return c.Fail(err)
	}

	params, err := h.Validator.ValidateRequest(validation.SimpleSchema, body)
	if err != nil {
		return c.Fail(err)
	}

	sequence, err := h.Orchestrator.GenerateSequence(c.Request.Context(), params, "")
	if err != nil {
		return c.Fail(err)
	}
	return http.StatusCreated, sequence
}

func (h *HandlerGroup) generateStructure(s *server.APIServer, c *server.APICtx) (code int, obj interface{}) {
	body, err := c.DecodeJSON()
	if err != nil {
		return c.Fail(err)
	}

	session, err := s.RequireSession(c)
	if err != nil {
		return c.Fail(err)
	}

	params, err := h.Validator.ValidateRequest(validation.StructuredSchema, body)
	if err != nil {
		return c.Fail(err)
	}

	userID, _ := session.CurrentUserID()
	structure, err := h.Orchestrator.GenerateSequenceStructure(c.Request.Context(), params, userID)
	if err != nil {
		return c.Fail(err)
	}
	return http.StatusOK, model.StructureResponse{Structure: structure}
}

func (h *HandlerGroup) currentSession(s *server.APIServer, c *server.APICtx) (code int, obj interface{}) {
	session, err := s.RequireSession(c)
	if err != nil {
		return c.Fail(err)
	}
	return http.StatusOK, model.SessionResponse{UserID: session.UserID}
}
