package config

import (
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/saathi-app/saathi/pkg/service/triage"
	"github.com/saathi-app/saathi/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// AppConfig loads the optional TOML application configuration that tunes
// the companion persona and the keyword triage tables.
type AppConfig struct {
	configPath string
}

// AppFile is the TOML shape of the application configuration file.
type AppFile struct {
	Companion Companion `toml:"companion"`
	Triage    Triage    `toml:"triage"`
}

// Companion configures how the assistant presents itself.
type Companion struct {
	Persona string `toml:"persona"`
	Hotline string `toml:"hotline"`
}

// Triage extends the built-in keyword tables.
type Triage struct {
	ExtraStressKeywords []string `toml:"extra_stress_keywords"`
	ExtraCrisisKeywords []string `toml:"extra_crisis_keywords"`
}

// Validate checks if the AppFile is valid
func (a *AppFile) Validate() error {
	for _, kw := range a.Triage.ExtraStressKeywords {
		if strings.TrimSpace(kw) == "" {
			return goerr.New("extra stress keyword must not be blank")
		}
	}
	for _, kw := range a.Triage.ExtraCrisisKeywords {
		if strings.TrimSpace(kw) == "" {
			return goerr.New("extra crisis keyword must not be blank")
		}
	}
	return nil
}

// Flags returns CLI flags for application configuration
func (a *AppConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to application configuration TOML file",
			Sources:     cli.EnvVars("SAATHI_CONFIG"),
			Destination: &a.configPath,
		},
	}
}

// Configure loads the configuration file when one was given. A missing flag
// yields the built-in defaults.
func (a *AppConfig) Configure() (*AppFile, error) {
	if a.configPath == "" {
		return &AppFile{}, nil
	}
	return LoadAppConfiguration(a.configPath)
}

// LoadAppConfiguration loads the application configuration from a TOML file
func LoadAppConfiguration(path string) (*AppFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var file AppFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", path))
	}

	if err := file.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V("path", path))
	}

	return &file, nil
}

// UseCaseOptions converts the file into use case options.
func (f *AppFile) UseCaseOptions() []usecase.Option {
	var opts []usecase.Option

	if f.Companion.Persona != "" {
		opts = append(opts, usecase.WithPersona(f.Companion.Persona))
	}
	if f.Companion.Hotline != "" {
		opts = append(opts, usecase.WithHotline(f.Companion.Hotline))
	}

	if len(f.Triage.ExtraStressKeywords) > 0 || len(f.Triage.ExtraCrisisKeywords) > 0 {
		classifier := triage.New(
			triage.WithExtraStressKeywords(f.Triage.ExtraStressKeywords),
			triage.WithExtraCrisisKeywords(f.Triage.ExtraCrisisKeywords),
		)
		opts = append(opts, usecase.WithClassifier(classifier))
	}

	return opts
}
