package commons

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"partstrack/internal/config"
)

// LoadConfig reads a yaml config file over the env-based defaults. Fields
// absent from the file keep whatever config.Load resolved.
func LoadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}
