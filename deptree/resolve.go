package deptree

import (
	"fmt"
	"os"
	"path/filepath"

	"npm-audit/config"
)

// ResolveFunc locates the manifest of package name as seen from fromDir,
// returning the absolute path to its package.json.
type ResolveFunc func(fromDir, name string) (string, error)

// ResolveManifest implements node's package resolution for manifests:
// look in fromDir/node_modules, then walk parent directories outward
// until the filesystem root.
func ResolveManifest(fromDir, name string) (string, error) {
	dir, err := filepath.Abs(fromDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", fromDir, err)
	}

	for {
		candidate := filepath.Join(dir, config.ModulesDir, name, config.ManifestFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("cannot resolve package %q from %s", name, fromDir)
		}
		dir = parent
	}
}
