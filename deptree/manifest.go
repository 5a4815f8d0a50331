package deptree

import (
	"encoding/json"
	"fmt"
	"os"
)

// Manifest is the subset of a package.json the scanner cares about.
type Manifest struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Integrity       string            `json:"integrity"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func readManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return &m, nil
}
