package data

import (
	"context"
	"encoding/json"
	"fmt"

	"npm-audit/deptree"
	"npm-audit/registry"
	"npm-audit/report"
	"npm-audit/storage"

	"github.com/sirupsen/logrus"
)

type Storage interface {
	InsertAudit(ctx context.Context, rec storage.AuditRecord) (int64, error)
}

type Registry interface {
	SubmitAudit(ctx context.Context, payload *deptree.AuditPayload) (*registry.AuditResult, error)
}

type Auditor struct {
	Store    Storage
	Registry Registry
	Log      *logrus.Logger
}

// RunAudit builds the audit payload for the project at dir, submits it to
// the registry, persists the outcome and returns the rendered report.
func (a *Auditor) RunAudit(ctx context.Context, dir, mode string) (*report.Report, error) {
	a.Log.Infof("Auditing project at %s", dir)

	payload, err := deptree.BuildAuditPayload(dir, a.Log)
	if err != nil {
		a.Log.WithError(err).Error("failed to build audit payload")
		return nil, err
	}

	result, err := a.Registry.SubmitAudit(ctx, payload)
	if err != nil {
		a.Log.WithError(err).Error("failed to submit audit")
		return nil, err
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode audit result: %w", err)
	}

	counts := result.Metadata.Vulnerabilities
	id, err := a.Store.InsertAudit(ctx, storage.AuditRecord{
		Name:              payload.Name,
		Version:           payload.Version,
		TotalDependencies: result.Metadata.TotalDependencies,
		Info:              counts.Info,
		Low:               counts.Low,
		Moderate:          counts.Moderate,
		High:              counts.High,
		Critical:          counts.Critical,
		Result:            string(raw),
	})
	if err != nil {
		a.Log.WithError(err).Error("failed to store audit result")
		return nil, err
	}

	a.Log.Infof("Audit %d completed for %s@%s: %d dependencies, %d advisories",
		id, payload.Name, payload.Version, result.Metadata.TotalDependencies, len(result.Advisories))
	return report.Build(result, mode), nil
}
