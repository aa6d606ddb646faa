package handlers

import (
	"net/http"

	"aaaas/sequence-api/pkg/api/auth"
	"aaaas/sequence-api/pkg/api/server"
	"aaaas/sequence-api/pkg/api/validation"
)

// PageHandlerGroup backs page navigations. Unauthenticated visitors are
// redirected to login by the session middleware before these run.
type PageHandlerGroup struct{}

func (p PageHandlerGroup) GroupPath() string {
	return ""
}

func (p PageHandlerGroup) HandlerManifests() []server.APIHandlerManifest {
	return []server.APIHandlerManifest{
		{
			Path:        "sequences/new",
			HTTPMethod:  http.MethodGet,
			Auth:        auth.RoutePage,
			HandlerFunc: p.newSequenceForm,
		},
	}
}

// newSequenceForm hands the form its choices
func (p *PageHandlerGroup) newSequenceForm(s *server.APIServer, c *server.APICtx) (code int, obj interface{}) {
	return http.StatusOK, validation.StructuredSchema.FormOptions()
}
