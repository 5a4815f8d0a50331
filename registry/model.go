package registry

type Finding struct {
	Version string   `json:"version"`
	Paths   []string `json:"paths"`
}

type Advisory struct {
	ID                 int       `json:"id"`
	Title              string    `json:"title"`
	ModuleName         string    `json:"module_name"`
	Severity           string    `json:"severity"`
	URL                string    `json:"url"`
	Overview           string    `json:"overview"`
	Recommendation     string    `json:"recommendation"`
	VulnerableVersions string    `json:"vulnerable_versions"`
	PatchedVersions    string    `json:"patched_versions"`
	Findings           []Finding `json:"findings"`
}

type Resolve struct {
	ID       int    `json:"id"`
	Path     string `json:"path"`
	Dev      bool   `json:"dev"`
	Optional bool   `json:"optional"`
	Bundled  bool   `json:"bundled"`
}

type Action struct {
	Action   string    `json:"action"`
	Module   string    `json:"module"`
	Target   string    `json:"target,omitempty"`
	Depth    int       `json:"depth,omitempty"`
	Resolves []Resolve `json:"resolves"`
}

type VulnerabilityCounts struct {
	Info     int `json:"info"`
	Low      int `json:"low"`
	Moderate int `json:"moderate"`
	High     int `json:"high"`
	Critical int `json:"critical"`
}

type AuditMetadata struct {
	Vulnerabilities      VulnerabilityCounts `json:"vulnerabilities"`
	Dependencies         int                 `json:"dependencies"`
	DevDependencies      int                 `json:"devDependencies"`
	OptionalDependencies int                 `json:"optionalDependencies"`
	TotalDependencies    int                 `json:"totalDependencies"`
}

// AuditResult is the registry's response to an audit submission.
type AuditResult struct {
	Actions    []Action            `json:"actions"`
	Advisories map[string]Advisory `json:"advisories"`
	Metadata   AuditMetadata       `json:"metadata"`
}
