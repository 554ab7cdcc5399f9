package config

import (
	"context"

	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/observability"
	"github.com/kbukum/seqkit/validation"
)

// Environments accepted by Settings.Validate.
var Environments = []string{"development", "staging", "production"}

// Settings is the process-level configuration of an application embedding
// seqkit. Applications extend it by embedding:
//
//	type AppSettings struct {
//	    config.Settings `yaml:",inline" mapstructure:",squash"`
//	    Workers int     `yaml:"workers" mapstructure:"workers"`
//	}
type Settings struct {
	Name          string               `yaml:"name" mapstructure:"name" validate:"required"`
	Environment   string               `yaml:"environment" mapstructure:"environment"`
	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// GetSettings returns the base Settings. Promoted through embedding.
func (s *Settings) GetSettings() *Settings {
	return s
}

// ApplyDefaults fills empty fields. Call it before Validate.
func (s *Settings) ApplyDefaults() {
	if s.Environment == "" {
		s.Environment = "development"
	}
	s.Logging.ApplyDefaults()
	if s.Observability.Environment == "" {
		s.Observability.Environment = s.Environment
	}
	s.Observability.ApplyDefaults(s.Name)
}

// Validate checks struct tags and cross-field rules and reports every
// failing field in one errors.AppError.
func (s *Settings) Validate() error {
	v := validation.New().
		Merge("", validation.Validate(s)).
		OneOf("environment", s.Environment, Environments).
		RequiredIf(s.Observability.Tracing || s.Observability.Metrics,
			"observability.endpoint", s.Observability.Endpoint)

	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// Apply initializes the global logger and, when enabled, the OpenTelemetry
// providers. The returned ShutdownFunc is never nil.
func (s *Settings) Apply(ctx context.Context) (observability.ShutdownFunc, error) {
	logger.Init(&s.Logging)
	logger.Info("seqkit configured", logger.Fields(
		"name", s.Name,
		"environment", s.Environment,
		"tracing", s.Observability.Tracing,
		"metrics", s.Observability.Metrics,
	))
	return observability.Init(ctx, s.Observability)
}

// LoadSettings loads, defaults and validates Settings for the named application.
func LoadSettings(name string, opts ...LoaderOption) (*Settings, error) {
	s := &Settings{}
	if err := Load(name, s, opts...); err != nil {
		return nil, err
	}
	if s.Name == "" {
		s.Name = name
	}
	s.ApplyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
