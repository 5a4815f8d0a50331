package deptree

import (
	"path/filepath"
	"runtime"

	"npm-audit/config"

	"github.com/sirupsen/logrus"
)

// BuildAuditPayload assembles the audit request for the project at dir:
// its identity from package.json, the union of its declared production and
// development constraints, and the resolved tree from the best available
// source.
func BuildAuditPayload(dir string, log *logrus.Logger) (*AuditPayload, error) {
	manifest, err := readManifest(filepath.Join(dir, config.ManifestFile))
	if err != nil {
		return nil, err
	}

	tree, err := LoadTree(dir, log)
	if err != nil {
		return nil, err
	}

	requires := make(map[string]string, len(manifest.Dependencies)+len(manifest.DevDependencies))
	for name, constraint := range manifest.Dependencies {
		requires[name] = constraint
	}
	for name, constraint := range manifest.DevDependencies {
		if _, ok := requires[name]; !ok {
			requires[name] = constraint
		}
	}

	return &AuditPayload{
		Name:         manifest.Name,
		Version:      manifest.Version,
		Requires:     requires,
		Dependencies: tree,
		Install:      []string{},
		Remove:       []string{},
		Metadata: Metadata{
			NodeVersion: config.NodeVersion,
			NPMVersion:  config.NPMVersion,
			Platform:    runtime.GOOS,
		},
	}, nil
}
