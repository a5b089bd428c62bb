package internal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/strata/pkg/logger"
)

// Settings holds file based application configuration.
// Zero values in a loaded file keep the defaults from DefaultSettings.
type Settings struct {
	Address               string              `yaml:"address"`
	BasePath              string              `yaml:"base_path"`
	MiddlewareOrder       Order               `yaml:"middleware_order"`
	RouteMiddlewareOrder  Order               `yaml:"route_middleware_order"`
	RouteBeforeMiddleware bool                `yaml:"route_before_middleware"`
	AddContentLength      bool                `yaml:"add_content_length"`
	ShutdownTimeout       time.Duration       `yaml:"shutdown_timeout"`
	LogLevel              string              `yaml:"log_level"`
	LogFormat             string              `yaml:"log_format"`
	Sentry                logger.SentryConfig `yaml:"sentry"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Address:              defaultAddress,
		MiddlewareOrder:      LIFO,
		RouteMiddlewareOrder: LIFO,
		AddContentLength:     true,
		ShutdownTimeout:      defaultShutdownTimeout,
	}
}

// LoadSettings reads YAML settings from path on top of DefaultSettings.
//
// Example file:
//
//	address: ":9000"
//	middleware_order: fifo
//	route_before_middleware: true
//	shutdown_timeout: 10s
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	return ParseSettings(data)
}

// ParseSettings decodes YAML settings on top of DefaultSettings.
// Unknown keys are rejected.
func ParseSettings(data []byte) (Settings, error) {
	s := DefaultSettings()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	return s, nil
}

// UnmarshalYAML decodes "lifo" or "fifo".
func (o *Order) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return o.UnmarshalText([]byte(s))
}

// MarshalYAML encodes the order as its name.
func (o Order) MarshalYAML() (any, error) {
	return o.String(), nil
}
