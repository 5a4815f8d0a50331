package deptree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

const rawLockJSON = `{
	"dependencies": {
		"left-pad": {
			"version": "1.3.0",
			"resolved": "https://registry.npmjs.org/left-pad/-/left-pad-1.3.0.tgz",
			"integrity": "sha512-XI5MPzVNApjAyhQzphX8BkmKsKUxD4LdyK24iZeQGinBN9yTQT3bFlCBy/aVx2HrNcqQGsdot8ghrjyrvMCoEA==",
			"extraneous": true,
			"optional": false
		},
		"mkdirp": {
			"version": "0.5.1",
			"dev": true,
			"requires": {
				"minimist": "0.0.8"
			},
			"dependencies": {
				"minimist": {
					"version": "0.0.8",
					"dev": true,
					"bundled": true
				}
			}
		}
	}
}`

func TestFilterLockTreeCanonicalFields(t *testing.T) {
	var lock lockFile
	assert.NoError(t, json.Unmarshal([]byte(rawLockJSON), &lock))

	tree := FilterLockTree(lock.Dependencies)
	assert.Len(t, tree, 2)

	leftPad := tree["left-pad"]
	assert.Equal(t, "1.3.0", leftPad.Version)
	assert.NotEmpty(t, leftPad.Integrity)
	assert.False(t, leftPad.Dev)
	assert.Nil(t, leftPad.Dependencies)

	mkdirp := tree["mkdirp"]
	assert.True(t, mkdirp.Dev)
	assert.Equal(t, map[string]string{"minimist": "0.0.8"}, mkdirp.Requires)
	assert.Len(t, mkdirp.Dependencies, 1)
	assert.True(t, mkdirp.Dependencies["minimist"].Dev)

	assertCanonicalFields(t, tree)
}

// assertCanonicalFields checks, at every depth, that serialized records
// carry no keys beyond the five the audit endpoint understands.
func assertCanonicalFields(t *testing.T, tree map[string]*PackageRecord) {
	t.Helper()

	allowed := map[string]bool{
		"version":      true,
		"dev":          true,
		"requires":     true,
		"integrity":    true,
		"dependencies": true,
	}

	for name, rec := range tree {
		data, err := json.Marshal(rec)
		assert.NoError(t, err)

		var fields map[string]json.RawMessage
		assert.NoError(t, json.Unmarshal(data, &fields))
		for key := range fields {
			assert.Truef(t, allowed[key], "record %s carries unexpected field %q", name, key)
		}

		if rec.Dependencies != nil {
			assert.NotEmpty(t, rec.Dependencies, "dependencies must be omitted rather than empty")
			assertCanonicalFields(t, rec.Dependencies)
		}
	}
}

func TestFilterLockTreeIdempotent(t *testing.T) {
	var lock lockFile
	assert.NoError(t, json.Unmarshal([]byte(rawLockJSON), &lock))

	once := FilterLockTree(lock.Dependencies)

	data, err := json.Marshal(once)
	assert.NoError(t, err)
	var reparsed map[string]LockNode
	assert.NoError(t, json.Unmarshal(data, &reparsed))

	twice := FilterLockTree(reparsed)
	assert.Equal(t, once, twice)
}

func TestFilterLockTreeMalformedNodes(t *testing.T) {
	tree := FilterLockTree(map[string]LockNode{
		"broken": {},
	})

	rec := tree["broken"]
	assert.Equal(t, "", rec.Version)
	assert.Nil(t, rec.Requires)
	assert.Nil(t, rec.Dependencies)
}

func TestFilterLockTreeEmpty(t *testing.T) {
	assert.Empty(t, FilterLockTree(nil))
	assert.Empty(t, FilterLockTree(map[string]LockNode{}))
}
