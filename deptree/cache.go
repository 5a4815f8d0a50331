package deptree

import "fmt"

// PackageCache memoizes resolved packages by manifest path so that a
// package shared by several dependents is resolved exactly once per scan.
// Scans are single-threaded, so there is no locking.
type PackageCache struct {
	records  map[string]*PackageRecord
	inFlight map[string]bool
}

func NewPackageCache() *PackageCache {
	return &PackageCache{
		records:  make(map[string]*PackageRecord),
		inFlight: make(map[string]bool),
	}
}

// GetOrResolve returns the record previously resolved for manifestPath, or
// invokes resolve and stores its result. A lookup of a path whose own
// resolution is still in progress means the installed layout contains a
// dependency cycle, which is an error rather than an incomplete record.
func (c *PackageCache) GetOrResolve(manifestPath string, resolve func() (*PackageRecord, error)) (*PackageRecord, error) {
	if rec, ok := c.records[manifestPath]; ok {
		return rec, nil
	}
	if c.inFlight[manifestPath] {
		return nil, fmt.Errorf("dependency cycle detected at %s", manifestPath)
	}

	c.inFlight[manifestPath] = true
	defer delete(c.inFlight, manifestPath)

	rec, err := resolve()
	if err != nil {
		return nil, err
	}
	c.records[manifestPath] = rec
	return rec, nil
}

// Len reports how many distinct manifest paths have been resolved.
func (c *PackageCache) Len() int {
	return len(c.records)
}
