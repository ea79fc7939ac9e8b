// Package config reads and writes the YAML files of the timeline: the
// configuration and event datasets.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/borgmon/resource-timeline/pkg/models"
)

var (
	// ErrEmptyPath is returned when no file path was given
	ErrEmptyPath = errors.New("config path is empty")
	// ErrNilConfig is returned when saving a nil configuration
	ErrNilConfig = errors.New("config is nil")
)

// Load reads configuration from path.
//
//   - If the file does not exist, a default config is written there and returned.
//   - Otherwise the YAML is unmarshalled over the defaults and normalized.
func Load(path string) (*models.Config, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := models.DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	cfg := models.DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Normalize()

	return cfg, nil
}

// Save writes cfg to path atomically with 0600 permissions
func Save(path string, cfg *models.Config) error {
	if path == "" {
		return ErrEmptyPath
	}
	if cfg == nil {
		return ErrNilConfig
	}
	cfg.Normalize()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}

// writeAtomic writes to a temp file in the target directory, then renames it
// over path
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".timeline-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
