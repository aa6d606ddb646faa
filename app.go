package main

import (
	"aaaas/sequence-api/pkg/api/auth"
	"aaaas/sequence-api/pkg/api/config"
	"aaaas/sequence-api/pkg/api/generation"
	"aaaas/sequence-api/pkg/api/handlers"
	"aaaas/sequence-api/pkg/api/server"
	"aaaas/sequence-api/pkg/api/validation"
	"aaaas/sequence-api/pkg/log"
)

func loadConfig(configPath string, sections []string) (config.ServerConfig, error) {
	file, err := config.ReadConfigFile(configPath)
	if err != nil {
		return nil, err
	}
	cfg, err := config.MapSections(file, sections, config.NewServerConfigImpl())
	if err != nil {
		return nil, err
	}
	log.Debugf("APIServer Conf: %+v", cfg)
	return cfg, nil
}

// newBackend picks the AI service when one is configured, the built-in templates otherwise
func newBackend(cfg config.ServerConfig) (generation.Backend, error) {
	if url := cfg.GetGenerationUrl(); url != "" {
		log.Infof("using generation service at %s", url)
		return generation.NewHTTPBackend(url, cfg.GetGenerationApiKey(), cfg.GetGenerationTimeout()), nil
	}
	log.Info("no generation_url configured, using the template backend")
	backend, err := generation.NewTemplateBackend()
	if err != nil {
		return nil, err
	}
	return backend, nil
}

// buildServer wires every route. A nil provider means the configured identity service.
func buildServer(cfg config.ServerConfig, provider auth.SessionProvider, options ...config.Option) (*server.APIServer, error) {
	backend, err := newBackend(cfg)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		provider = auth.NewIdentityProvider(cfg.GetIdentityUrl(), cfg.GetIdentityApiKey())
	}
	gate := auth.NewGate(provider, cfg.GetSessionCookie(), cfg.GetLoginPath())

	apiServer := server.NewAPIServer(cfg, gate, config.NewMiddlewareConfig(options...))
	routes := []server.APIHandlerGroup{
		handlers.NewHandlerGroup(generation.NewOrchestrator(backend), validation.NewValidator()),
		handlers.PageHandlerGroup{},
	}
	apiServer.SetupRoutes(routes)
	return apiServer, nil
}
