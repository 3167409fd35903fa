package config

import (
	"os"

	"github.com/AnishMulay/sandsplit/internal/bounded_copy"
	"github.com/AnishMulay/sandsplit/internal/digest_service"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type SplitConfig struct {
	// Size is the default chunk size, e.g. "100MB". Empty means the
	// size must be given on the command line.
	Size   string `yaml:"size"`
	Output string `yaml:"output"`
}

type JoinConfig struct {
	Output string `yaml:"output"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Location is "stderr" or a file path.
	Location string `yaml:"location"`
}

type Config struct {
	Split      SplitConfig `yaml:"split"`
	Join       JoinConfig  `yaml:"join"`
	Verify     bool        `yaml:"verify"`
	Digest     string      `yaml:"digest"`
	BufferSize int         `yaml:"buffer_size"`
	Log        LogConfig   `yaml:"log"`
}

func Default() *Config {
	return &Config{
		Digest:     digest_service.MD5,
		BufferSize: bounded_copy.DefaultBufferSize,
		Log: LogConfig{
			Level:    "warn",
			Location: "stderr",
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config file %s", path)
	}

	if cfg.Digest == "" {
		cfg.Digest = digest_service.MD5
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = bounded_copy.DefaultBufferSize
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	if cfg.Log.Location == "" {
		cfg.Log.Location = "stderr"
	}

	return cfg, nil
}

// Write stores cfg at path as YAML.
func Write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "write config file %s", path)
	}
	return nil
}
