package deptree

// FilterLockTree projects every node of a parsed lock tree down to the
// canonical PackageRecord fields, recursing through nested dependencies.
// It never fails: a node missing fields simply yields a record missing
// those fields. Applying it to its own (re-decoded) output is a no-op.
func FilterLockTree(nodes map[string]LockNode) map[string]*PackageRecord {
	if len(nodes) == 0 {
		return map[string]*PackageRecord{}
	}

	out := make(map[string]*PackageRecord, len(nodes))
	for name, node := range nodes {
		rec := &PackageRecord{
			Version:   node.Version,
			Dev:       node.Dev,
			Integrity: node.Integrity,
		}
		if len(node.Requires) > 0 {
			rec.Requires = make(map[string]string, len(node.Requires))
			for dep, version := range node.Requires {
				rec.Requires[dep] = version
			}
		}
		if len(node.Dependencies) > 0 {
			rec.Dependencies = FilterLockTree(node.Dependencies)
		}
		out[name] = rec
	}
	return out
}
