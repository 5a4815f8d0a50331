package config

const (
	ShrinkwrapFile  = "npm-shrinkwrap.json"
	PackageLockFile = "package-lock.json"
	ManifestFile    = "package.json"
	ModulesDir      = "node_modules"

	BaseURL       = "https://registry.npmjs.org"
	AuditEndpoint = "/-/npm/v1/security/audits"

	ReportDetailed = "detailed"
	ReportSummary  = "summary"

	NodeVersion = "v18.0.0"
	NPMVersion  = "6.14.18"
)
