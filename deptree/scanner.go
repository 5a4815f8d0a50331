package deptree

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"npm-audit/config"
)

// Scanner rebuilds a dependency tree from the installed node_modules layout
// when no lock file is available. It resolves the project's declared
// dependencies through node's package resolution and classifies each
// discovered package as nested under its dependent or promoted to the
// shared top-level set.
type Scanner struct {
	Dir     string
	Resolve ResolveFunc

	root   string
	shared string
	cache  *PackageCache
	top    map[string]*PackageRecord
}

// Scan walks the project's production dependencies, then its development
// dependencies, and returns the top-level tree. Any unresolvable name or
// unreadable manifest fails the whole scan.
func (s *Scanner) Scan() (map[string]*PackageRecord, error) {
	root, err := filepath.Abs(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project dir %s: %w", s.Dir, err)
	}
	s.root = root
	s.shared = filepath.Join(root, config.ModulesDir)
	if s.Resolve == nil {
		s.Resolve = ResolveManifest
	}
	s.cache = NewPackageCache()
	s.top = make(map[string]*PackageRecord)

	manifest, err := readManifest(filepath.Join(root, config.ManifestFile))
	if err != nil {
		return nil, err
	}

	// Production packages must be resolved before development ones so that
	// a package reachable from both keeps its production marking.
	if _, err := s.resolveDeps(root, manifest.Dependencies, s.top, false); err != nil {
		return nil, err
	}
	if _, err := s.resolveDeps(root, manifest.DevDependencies, s.top, true); err != nil {
		return nil, err
	}
	return s.top, nil
}

// Cache exposes the scan's memoization store, mainly for tests asserting
// that shared packages resolve once.
func (s *Scanner) Cache() *PackageCache {
	return s.cache
}

// resolveDeps resolves every name in deps as seen from parentDir, placing
// locally nested children into local and returning the name to resolved
// version map. Names are processed in sorted order so first-resolution-wins
// outcomes are reproducible.
func (s *Scanner) resolveDeps(parentDir string, deps map[string]string, local map[string]*PackageRecord, dev bool) (map[string]string, error) {
	if len(deps) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)

	requires := make(map[string]string, len(deps))
	for _, name := range names {
		manifestPath, err := s.Resolve(parentDir, name)
		if err != nil {
			return nil, err
		}
		depDir := filepath.Dir(manifestPath)

		rec, err := s.cache.GetOrResolve(manifestPath, func() (*PackageRecord, error) {
			return s.resolvePackage(depDir, manifestPath, dev)
		})
		if err != nil {
			return nil, err
		}

		requires[name] = rec.Version
		s.classify(parentDir, depDir, name, rec, local)
	}
	return requires, nil
}

func (s *Scanner) resolvePackage(depDir, manifestPath string, dev bool) (*PackageRecord, error) {
	m, err := readManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	rec := &PackageRecord{
		Version:   m.Version,
		Dev:       dev,
		Integrity: m.Integrity,
	}

	local := make(map[string]*PackageRecord)
	requires, err := s.resolveDeps(depDir, m.Dependencies, local, dev)
	if err != nil {
		return nil, err
	}
	rec.Requires = requires
	if len(local) > 0 {
		rec.Dependencies = local
	}
	return rec, nil
}

// classify places a resolved package either under its dependent or into the
// shared top-level set:
//   - installed inside the dependent's own directory: nested under it;
//   - installed outside the project, or directly under the shared
//     node_modules root: promoted to top level, first writer wins;
//   - anywhere else inside the project: kept under the dependent.
func (s *Scanner) classify(parentDir, depDir, name string, rec *PackageRecord, local map[string]*PackageRecord) {
	sep := string(filepath.Separator)
	switch {
	case strings.HasPrefix(depDir, parentDir+sep):
		local[name] = rec
	case !strings.HasPrefix(depDir, s.root+sep) || filepath.Dir(depDir) == s.shared:
		if _, claimed := s.top[name]; !claimed {
			s.top[name] = rec
		}
	default:
		local[name] = rec
	}
}
