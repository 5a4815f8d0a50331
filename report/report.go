package report

import (
	"sort"

	"npm-audit/config"
	"npm-audit/registry"
)

type Summary struct {
	Info              int `json:"info"`
	Low               int `json:"low"`
	Moderate          int `json:"moderate"`
	High              int `json:"high"`
	Critical          int `json:"critical"`
	TotalVulnerable   int `json:"total_vulnerable"`
	TotalDependencies int `json:"total_dependencies"`
}

type AdvisoryView struct {
	ID             int      `json:"id"`
	Title          string   `json:"title"`
	Module         string   `json:"module"`
	Severity       string   `json:"severity"`
	URL            string   `json:"url"`
	Recommendation string   `json:"recommendation"`
	Paths          []string `json:"paths,omitempty"`
}

// Report is the rendered audit outcome. Advisories are included only in
// detailed mode, ordered by severity then module name.
type Report struct {
	Mode       string         `json:"mode"`
	Summary    Summary        `json:"summary"`
	Advisories []AdvisoryView `json:"advisories,omitempty"`
}

var severityRank = map[string]int{
	"critical": 0,
	"high":     1,
	"moderate": 2,
	"low":      3,
	"info":     4,
}

// Build renders an audit result at the requested verbosity. An unknown or
// empty mode falls back to detailed.
func Build(result *registry.AuditResult, mode string) *Report {
	if mode != config.ReportSummary {
		mode = config.ReportDetailed
	}

	counts := result.Metadata.Vulnerabilities
	rep := &Report{
		Mode: mode,
		Summary: Summary{
			Info:              counts.Info,
			Low:               counts.Low,
			Moderate:          counts.Moderate,
			High:              counts.High,
			Critical:          counts.Critical,
			TotalVulnerable:   counts.Info + counts.Low + counts.Moderate + counts.High + counts.Critical,
			TotalDependencies: result.Metadata.TotalDependencies,
		},
	}

	if mode == config.ReportSummary {
		return rep
	}

	for _, adv := range result.Advisories {
		view := AdvisoryView{
			ID:             adv.ID,
			Title:          adv.Title,
			Module:         adv.ModuleName,
			Severity:       adv.Severity,
			URL:            adv.URL,
			Recommendation: adv.Recommendation,
		}
		for _, f := range adv.Findings {
			view.Paths = append(view.Paths, f.Paths...)
		}
		rep.Advisories = append(rep.Advisories, view)
	}
	sort.Slice(rep.Advisories, func(i, j int) bool {
		a, b := rep.Advisories[i], rep.Advisories[j]
		if severityRank[a.Severity] != severityRank[b.Severity] {
			return severityRank[a.Severity] < severityRank[b.Severity]
		}
		if a.Module != b.Module {
			return a.Module < b.Module
		}
		return a.ID < b.ID
	})
	return rep
}
