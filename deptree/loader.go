package deptree

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"npm-audit/config"

	"github.com/sirupsen/logrus"
)

// LoadTree produces the project's dependency tree from the first usable
// source: npm-shrinkwrap.json, then package-lock.json, then a scan of the
// installed node_modules layout. There are no partial results; whichever
// source succeeds yields the complete tree.
func LoadTree(dir string, log *logrus.Logger) (map[string]*PackageRecord, error) {
	for _, name := range []string{config.ShrinkwrapFile, config.PackageLockFile} {
		tree, err := loadLockTree(filepath.Join(dir, name))
		if err != nil {
			log.WithError(err).Debugf("lock source %s unavailable, trying next", name)
			continue
		}
		log.Infof("dependency tree loaded from %s", name)
		return tree, nil
	}

	log.Infof("no lock file found, scanning %s", config.ModulesDir)
	scanner := &Scanner{Dir: dir}
	tree, err := scanner.Scan()
	if err != nil {
		return nil, fmt.Errorf("neither %s nor %s could be read, and scanning the installed tree failed: %w",
			config.ShrinkwrapFile, config.PackageLockFile, err)
	}
	return tree, nil
}

func loadLockTree(path string) (map[string]*PackageRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lock file %s: %w", path, err)
	}
	var lock lockFile
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, fmt.Errorf("failed to parse lock file %s: %w", path, err)
	}
	return FilterLockTree(lock.Dependencies), nil
}
