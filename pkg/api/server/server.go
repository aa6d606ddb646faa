package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	healthcheck "github.com/RaMin0/gin-health-check"

	"aaaas/sequence-api/pkg/api/apierror"
	"aaaas/sequence-api/pkg/api/auth"
	"aaaas/sequence-api/pkg/api/config"
	"aaaas/sequence-api/pkg/api/dto"
	"aaaas/sequence-api/pkg/api/middleware"
	"aaaas/sequence-api/pkg/log"
)

type APIServer struct {
	Gate             *auth.Gate
	Router           *gin.Engine
	Server           *http.Server
	Config           config.ServerConfig
	middlewareConfig *config.MiddlewareConfig
}

func NewAPIServer(cfg config.ServerConfig, gate *auth.Gate, middlewareConfig *config.MiddlewareConfig) *APIServer {
	if middlewareConfig == nil {
		middlewareConfig = config.NewMiddlewareConfig()
	}

	app := gin.New()
	app.Use(gin.Recovery())
	app.Use(healthcheck.Default())

	if middlewareConfig.EnableCORS {
		if corsHandler := middleware.CORSMiddleware(cfg.GetAllowedOrigins()); corsHandler != nil {
			app.Use(corsHandler)
		}
	}

	if middlewareConfig.EnableLogger {
		app.Use(middleware.LoggerMiddleware())
	}

	// For Swagger support
	swaggerUrl := cfg.GetSwaggerUrl()
	if len(swaggerUrl) > 0 {
		url := ginSwagger.URL(swaggerUrl)
		app.GET(cfg.GetSwaggerHandlerUrl(), ginSwagger.WrapHandler(swaggerFiles.Handler, url))
		app.StaticFile(swaggerUrl, cfg.GetSwaggerPath())
		log.Info("registered swagger route")
	}

	return &APIServer{
		Gate:             gate,
		Router:           app,
		Config:           cfg,
		middlewareConfig: middlewareConfig,
	}
}

// Listen serves until ctx is cancelled
func (a *APIServer) Listen(ctx context.Context) error {
	a.Server = &http.Server{
		Addr:    a.Config.GetApiUri(),
		Handler: a.Router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", a.Server.Addr)
		err := a.Server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
		log.Info("Shutting down server...")
		return a.Close()
	}
}

func (a *APIServer) Close() error {
	if a.Server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Server.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "APIServer forced to shutdown")
	}
	return nil
}

func toGinHandler(s *APIServer, manifest APIHandlerManifest) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		code, obj := manifest.HandlerFunc(s, &APICtx{
			Context: ctx,
		})

		switch out := obj.(type) {
		case Redirect:
			ctx.Redirect(code, out.Location)
			return
		case error:
			apiErr := apierror.From(out)
			if code < 400 {
				code = apierror.StatusCode(apiErr.Kind)
			}
			if code >= http.StatusInternalServerError {
				log.Errorf("%s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, apiErr)
			} else {
				log.Debugf("%s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, apiErr)
			}
			ctx.JSON(code, dto.NewErrorResponse(apiErr))
			return
		}
		ctx.JSON(code, obj)
	}
}

func (a *APIServer) handlerChain(manifest APIHandlerManifest) []gin.HandlerFunc {
	kind := manifest.Auth
	if !a.middlewareConfig.EnableSession {
		kind = auth.RouteOpen
	}
	chain := []gin.HandlerFunc{}
	if a.Gate != nil && a.middlewareConfig.EnableSession {
		chain = append(chain, middleware.SessionMiddleware(a.Gate, kind))
	} else {
		chain = append(chain, middleware.OpenRoute())
	}
	return append(chain, toGinHandler(a, manifest))
}

func (a *APIServer) SetupRoutes(apiGroups []APIHandlerGroup) {
	for _, apiGroup := range apiGroups {

		grp := a.Router.Group(apiGroup.GroupPath())

		for _, manifest := range apiGroup.HandlerManifests() {
			grp.Handle(manifest.HTTPMethod, manifest.Path, a.handlerChain(manifest)...)
		}
	}
}

// ServeRaw is used for writing tests. It sends body untouched.
func (a *APIServer) ServeRaw(httpMtd, url string, body []byte, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(httpMtd, url, bytes.NewReader(body))
	req.Header.Add("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

// ServeRequest is used for writing tests. Non-2xx answers come back as an error holding the error body.
func (a *APIServer) ServeRequest(httpMtd, url string, bodyObj, respObj interface{}, cookies ...*http.Cookie) (code int, err error) {
	msg, err := json.Marshal(bodyObj)
	if err != nil {
		return 0, errors.Wrap(err, "encoding request body")
	}
	w := a.ServeRaw(httpMtd, url, msg, cookies...)
	rawResp, err := io.ReadAll(w.Result().Body)
	if err != nil {
		return 0, err
	}

	code = w.Code
	if code < 200 || code >= 300 {
		resp := dto.ErrorResponse{}
		if err := json.Unmarshal(rawResp, &resp); err != nil {
			return code, errors.WithMessagef(err, "%s", rawResp)
		}
		return code, errors.New(resp.Error)
	}

	if respObj == nil {
		return code, nil
	}
	if err := json.Unmarshal(rawResp, respObj); err != nil {
		return code, errors.Wrap(err, "converting resp data bytes into respObj")
	}
	return code, nil
}
