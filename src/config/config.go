package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = ".git2container.yml"

// Config is the top-level git2container configuration.
type Config struct {
	OutputDir   string            `yaml:"output_dir" toml:"output_dir"`
	Credentials CredentialsConfig `yaml:"credentials" toml:"credentials"`
	Builder     BuilderConfig     `yaml:"builder" toml:"builder"`
	Log         LogConfig         `yaml:"log" toml:"log"`
}

// Load reads configuration from a YAML or TOML file.
// If path is empty, it tries the default file and returns defaults if
// that doesn't exist. An explicit path must exist.
// Files ending in .toml are decoded as TOML, everything else as YAML.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return defaults(), nil
		}
		return nil, err
	}

	cfg := defaults()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		OutputDir: ".",
		Builder:   DefaultBuilderConfig(),
		Log:       DefaultLogConfig(),
	}
}
