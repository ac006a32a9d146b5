package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type ConnectionConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

type BrowseConfig struct {
	Depth   int  `yaml:"depth,omitempty"`
	NoColor bool `yaml:"no_color,omitempty"`
}

type LoadConfig struct {
	Table     string `yaml:"table,omitempty"`
	BatchSize int    `yaml:"batch_size,omitempty"`
}

type ProjectConfig struct {
	Connection ConnectionConfig `yaml:"connection"`
	Browse     BrowseConfig     `yaml:"browse"`
	Load       LoadConfig       `yaml:"load"`
}

const ConfigFileName = "jlb.yaml"

// Load reads jlb.yaml from dir. Missing files return ErrConfigNotFound
// so callers can fall back to defaults.
func Load(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
