package config

import "time"

// ServerConfigImpl is mapped from the [server] section of conf/api.conf
type ServerConfigImpl struct {
	ApiUri            string        `ini:"api_uri"`
	SwaggerUrl        string        `ini:"swagger_url"`
	SwaggerHandlerUrl string        `ini:"swagger_handler_url"`
	SwaggerPath       string        `ini:"swagger_path"`
	LogLevel          string        `ini:"log_level"`
	LogFile           string        `ini:"log_file"`
	AllowedOrigins    []string      `ini:"allowed_origins" delim:","`
	SessionCookie     string        `ini:"session_cookie"`
	IdentityUrl       string        `ini:"identity_url"`
	IdentityApiKey    string        `ini:"identity_api_key"`
	LoginPath         string        `ini:"login_path"`
	GenerationUrl     string        `ini:"generation_url"`
	GenerationApiKey  string        `ini:"generation_api_key"`
	GenerationTimeout time.Duration `ini:"generation_timeout"`
}

// NewServerConfigImpl returns the defaults used when a key is absent
func NewServerConfigImpl() *ServerConfigImpl {
	return &ServerConfigImpl{
		ApiUri:            ":8080",
		SwaggerHandlerUrl: "/swagger/*any",
		LogLevel:          "info",
		SessionCookie:     "sb-access-token",
		LoginPath:         "/login",
		GenerationTimeout: 60 * time.Second,
	}
}

func (c *ServerConfigImpl) GetApiUri() string                   { return c.ApiUri }
func (c *ServerConfigImpl) GetSwaggerUrl() string               { return c.SwaggerUrl }
func (c *ServerConfigImpl) GetSwaggerHandlerUrl() string        { return c.SwaggerHandlerUrl }
func (c *ServerConfigImpl) GetSwaggerPath() string              { return c.SwaggerPath }
func (c *ServerConfigImpl) GetLogLevel() string                 { return c.LogLevel }
func (c *ServerConfigImpl) GetLogFile() string                  { return c.LogFile }
func (c *ServerConfigImpl) GetAllowedOrigins() []string         { return c.AllowedOrigins }
func (c *ServerConfigImpl) GetSessionCookie() string            { return c.SessionCookie }
func (c *ServerConfigImpl) GetIdentityUrl() string              { return c.IdentityUrl }
func (c *ServerConfigImpl) GetIdentityApiKey() string           { return c.IdentityApiKey }
func (c *ServerConfigImpl) GetLoginPath() string                { return c.LoginPath }
func (c *ServerConfigImpl) GetGenerationUrl() string            { return c.GenerationUrl }
func (c *ServerConfigImpl) GetGenerationApiKey() string         { return c.GenerationApiKey }
func (c *ServerConfigImpl) GetGenerationTimeout() time.Duration { return c.GenerationTimeout }
func (c *ServerConfigImpl) GetServerConfigImpl() ServerConfig   { return c }
