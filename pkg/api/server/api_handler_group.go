package server

import (
	"github.com/gin-gonic/gin"

	"aaaas/sequence-api/pkg/api/auth"
)

// An APIHandlerGroup is a group of handlers that deal with the same resources and share the same group path.
// An example group path will be /api/sequences
type APIHandlerGroup interface {
	GroupPath() string
	HandlerManifests() []APIHandlerManifest
}

type APIHandlerManifest struct {
	Path        string
	HTTPMethod  string
	Auth        auth.RouteKind
	HandlerFunc APIHandlerFunc
}

type APICtx struct {
	*gin.Context
}

// APIHandlerFunc returns the status and either a body or an error
type APIHandlerFunc func(s *APIServer, c *APICtx) (code int, obj interface{})
