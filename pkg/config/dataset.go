package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/borgmon/resource-timeline/pkg/models"
)

// ErrInvalidDataset is returned for datasets that cannot be shown
var ErrInvalidDataset = errors.New("invalid dataset")

// Dataset is what a host hands the timeline: resource rows and events
type Dataset struct {
	Resources []models.Resource      `yaml:"resources"`
	Events    []models.CalendarEvent `yaml:"events"`
}

// Validate checks that resource ids are unique and colors well formed.
// Event timestamps are not checked; malformed events stay visible.
func (d *Dataset) Validate() error {
	seen := make(map[int]bool, len(d.Resources))
	for _, r := range d.Resources {
		if seen[r.ID] {
			return fmt.Errorf("%w: duplicate resource id %d", ErrInvalidDataset, r.ID)
		}
		seen[r.ID] = true
		if !models.Color(r.Color).Valid() {
			return fmt.Errorf("%w: resource %d: %w", ErrInvalidDataset, r.ID, models.ErrInvalidColor)
		}
	}
	return nil
}

// LoadDataset reads and validates a YAML dataset
func LoadDataset(path string) (*Dataset, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// SaveDataset writes a dataset atomically
func SaveDataset(path string, ds *Dataset) error {
	if path == "" {
		return ErrEmptyPath
	}
	data, err := yaml.Marshal(ds)
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}
