// Package storage persists crawl results as JSON files. A JSON array of
// vehicles is the only on-disk format the pipeline produces.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dealscout/alcopa-crawler/internal/domain"
)

// EnsureJSONPath appends a .json extension when the path lacks one.
func EnsureJSONPath(path string) string {
	if strings.HasSuffix(path, ".json") {
		return path
	}
	return path + ".json"
}

// SaveVehicles writes the vehicles as a pretty-printed JSON array, creating
// parent directories as needed.
func SaveVehicles(path string, vehicles []domain.Vehicle) error {
	target := EnsureJSONPath(path)
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return fmt.Errorf("create output dir for %s: %w", target, err)
	}
	payload, err := json.MarshalIndent(vehicles, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal vehicles: %w", err)
	}
	if err := os.WriteFile(target, payload, 0o600); err != nil {
		return fmt.Errorf("write vehicles to %s: %w", target, err)
	}
	return nil
}

// LoadVehicles reads a JSON array of vehicles from disk.
func LoadVehicles(path string) ([]domain.Vehicle, error) {
	target := EnsureJSONPath(path)
	payload, err := os.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("read vehicles from %s: %w", target, err)
	}
	var vehicles []domain.Vehicle
	if err := json.Unmarshal(payload, &vehicles); err != nil {
		return nil, fmt.Errorf("unmarshal vehicles from %s: %w", target, err)
	}
	return vehicles, nil
}
