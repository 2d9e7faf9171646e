package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
	"stt-relay/internal/app/api/provider"
)

// Environments accepted in server configuration
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// ServerConfig is the relay's configuration file
type ServerConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port" validate:"min=1,max=65535"`
	Environment     string `yaml:"environment" validate:"oneof=development production"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec" validate:"gte=0"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec" validate:"gte=0"`
	IdleTimeoutSec  int    `yaml:"idle_timeout_sec" validate:"gte=0"`

	// MaxUploadMB caps the request body; 0 disables the cap
	MaxUploadMB int `yaml:"max_upload_mb" validate:"gte=0,lte=2048"`

	CORSOrigins []string `yaml:"cors_origins,omitempty"`

	Provider provider.ProviderConfig `yaml:"provider"`
}

// DefaultServerConfig relays to Deepgram on port 3000
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Host:            "",
		Port:            3000,
		Environment:     EnvDevelopment,
		ReadTimeoutSec:  30,
		WriteTimeoutSec: 150,
		IdleTimeoutSec:  120,
		MaxUploadMB:     25,
		CORSOrigins:     []string{"*"},
		Provider: provider.ProviderConfig{
			Type: "deepgram",
		},
	}
}

// LoadServerConfig reads the YAML file at path over the defaults. An empty
// path yields the defaults. Keys from the environment fill in a provider
// API key the file leaves empty.
func LoadServerConfig(path string, keys *APIKeys) (*ServerConfig, error) {
	config := DefaultServerConfig()

	if path != "" {
		path = os.ExpandEnv(path)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("config file not found: %s", path)
			}
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	config.Provider.Type = strings.ToLower(strings.TrimSpace(config.Provider.Type))
	config.Provider.ExpandEnvironment()
	if config.Provider.Auth.APIKey == "" {
		config.Provider.Auth.APIKey = keys.ForProvider(config.Provider.Type)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate checks struct constraints and that the provider type is registered
func (c *ServerConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			fields := make([]string, 0, len(validationErrs))
			for _, fe := range validationErrs {
				fields = append(fields, fmt.Sprintf("%s failed '%s'", fe.Namespace(), fe.Tag()))
			}
			return errors.New(strings.Join(fields, "; "))
		}
		return err
	}

	if _, err := provider.GetProviderCreator(c.Provider.Type); err != nil {
		return fmt.Errorf("%w (registered: %s)", err, strings.Join(provider.ListRegisteredProviders(), ", "))
	}
	return nil
}

// Address is the listen address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MaxUploadBytes converts the upload cap to bytes
func (c *ServerConfig) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// IsProduction reports whether the relay runs in production mode
func (c *ServerConfig) IsProduction() bool {
	return c.Environment == EnvProduction
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// ReadTimeout is the HTTP server read timeout
func (c *ServerConfig) ReadTimeout() time.Duration { return seconds(c.ReadTimeoutSec) }

// WriteTimeout is the HTTP server write timeout
func (c *ServerConfig) WriteTimeout() time.Duration { return seconds(c.WriteTimeoutSec) }

// IdleTimeout is the HTTP server keep-alive timeout
func (c *ServerConfig) IdleTimeout() time.Duration { return seconds(c.IdleTimeoutSec) }
