package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

type ServerConfig interface {
	GetApiUri() string
	GetSwaggerUrl() string
	GetSwaggerHandlerUrl() string
	GetSwaggerPath() string
	GetLogLevel() string
	GetLogFile() string
	GetAllowedOrigins() []string
	GetSessionCookie() string
	GetIdentityUrl() string
	GetIdentityApiKey() string
	GetLoginPath() string
	GetGenerationUrl() string
	GetGenerationApiKey() string
	GetGenerationTimeout() time.Duration
	GetServerConfigImpl() ServerConfig
}

// ReadConfigFile loads path, or the file named by CONFIG_PATH when set
func ReadConfigFile(path string) (*ini.File, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if len(configPath) == 0 {
		configPath = path
	}
	cfg, err := ini.Load(configPath)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", configPath)
	}
	return cfg, nil
}

// MapSections maps every named section onto serverConfig in order, later sections win
func MapSections(configFile *ini.File, sections []string, serverConfig ServerConfig) (ServerConfig, error) {
	for _, section := range sections {
		if err := configFile.Section(section).MapTo(serverConfig); err != nil {
			return nil, errors.Wrapf(err, "mapping section %s", section)
		}
	}
	return serverConfig, nil
}
