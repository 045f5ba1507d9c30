package main

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/RamiMonso/rsi-csv/pkg/errors"
)

// AppConfig carries defaults that can be stored in a yaml file and overridden
// by CLI flags.
type AppConfig struct {
	Provider      string `yaml:"provider" validate:"omitempty,oneof=polygon binance"`
	PolygonApiKey string `yaml:"polygon_api_key"`
	Output        string `yaml:"output"`
	Format        string `yaml:"format" validate:"omitempty,oneof=csv parquet"`
	Period        int    `yaml:"period" validate:"omitempty,min=1"`
	Adjusted      *bool  `yaml:"adjusted"`
}

// DefaultAppConfig returns the configuration used when no config file is given.
func DefaultAppConfig() AppConfig {
	adjusted := true

	return AppConfig{
		Provider:      "polygon",
		PolygonApiKey: "",
		Output:        "data",
		Format:        "csv",
		Period:        14,
		Adjusted:      &adjusted,
	}
}

// LoadAppConfig reads a yaml config file and merges it over the defaults.
func LoadAppConfig(path string) (AppConfig, error) {
	config := DefaultAppConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
	}

	if err := yaml.Unmarshal(raw, &config); err != nil {
		return AppConfig{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config file %s", path)
	}

	if err := validator.New().Struct(config); err != nil {
		return AppConfig{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid config file %s", path)
	}

	return config, nil
}
