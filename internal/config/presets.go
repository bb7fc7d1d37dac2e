package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Preset is a bond YAML file in a preset directory.
type Preset struct {
	ID   string
	File string
	Bond BondConfig
}

// ListPresets reads every *.yaml file in dir, sorted by id. Files that fail
// to parse are skipped.
func ListPresets(dir string) ([]Preset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	presets := []Preset{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		bond, err := LoadBondFile(path)
		if err != nil {
			continue
		}
		// "10y_gilt.yaml" -> "10y_gilt"
		id := strings.TrimSuffix(entry.Name(), ".yaml")
		if bond.Name == "" {
			bond.Name = id
		}
		presets = append(presets, Preset{ID: id, File: path, Bond: bond})
	}
	sort.Slice(presets, func(i, j int) bool { return presets[i].ID < presets[j].ID })
	return presets, nil
}
