package deptree

// PackageRecord is one node of the resolved dependency tree, carrying only
// the fields the audit endpoint understands. Dependencies holds nested
// records and is omitted entirely when a package has no locally installed
// children.
type PackageRecord struct {
	Version      string                    `json:"version,omitempty"`
	Dev          bool                      `json:"dev,omitempty"`
	Requires     map[string]string         `json:"requires,omitempty"`
	Integrity    string                    `json:"integrity,omitempty"`
	Dependencies map[string]*PackageRecord `json:"dependencies,omitempty"`
}

// LockNode is a raw node as it appears in npm-shrinkwrap.json or
// package-lock.json. Lock files carry extra fields (resolved, bundled,
// optional, ...) that decoding silently drops.
type LockNode struct {
	Version      string              `json:"version"`
	Dev          bool                `json:"dev"`
	Requires     map[string]string   `json:"requires"`
	Integrity    string              `json:"integrity"`
	Dependencies map[string]LockNode `json:"dependencies"`
}

type lockFile struct {
	Dependencies map[string]LockNode `json:"dependencies"`
}

// Metadata describes the host submitting the audit.
type Metadata struct {
	NodeVersion string `json:"node_version"`
	NPMVersion  string `json:"npm_version"`
	Platform    string `json:"platform"`
}

// AuditPayload is the root object POSTed to the registry audit endpoint.
// Install and Remove are always present and empty: the service audits an
// existing tree, it never proposes mutations.
type AuditPayload struct {
	Name         string                    `json:"name"`
	Version      string                    `json:"version"`
	Requires     map[string]string         `json:"requires"`
	Dependencies map[string]*PackageRecord `json:"dependencies"`
	Install      []string                  `json:"install"`
	Remove       []string                  `json:"remove"`
	Metadata     Metadata                  `json:"metadata"`
}
