package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"npm-audit/report"
	"npm-audit/storage"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type Storage interface {
	ListAuditsFiltered(ctx context.Context, name string, minCritical *int) ([]storage.AuditRecord, error)
	GetAudit(ctx context.Context, id int64) (storage.AuditRecord, error)
	DeleteAudit(ctx context.Context, id int64) error
}

type Auditor interface {
	RunAudit(ctx context.Context, dir, mode string) (*report.Report, error)
}

type Handler struct {
	Store   Storage
	Auditor Auditor
	Log     *logrus.Logger
}

type AuditRequest struct {
	Path   string `json:"path"`
	Report string `json:"report,omitempty"`
}

func (h *Handler) RunAudit(w http.ResponseWriter, r *http.Request) {
	var input AuditRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if input.Path == "" {
		http.Error(w, "path is required", http.StatusBadRequest)
		return
	}

	rep, err := h.Auditor.RunAudit(r.Context(), input.Path, input.Report)
	if err != nil {
		h.Log.WithField("path", input.Path).WithError(err).Error("running audit")
		http.Error(w, "audit failed", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rep); err != nil {
		h.Log.WithError(err).Error("encoding audit report response")
	}
}

func (h *Handler) ListAudits(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	minCriticalStr := r.URL.Query().Get("min_critical")

	var minCritical *int
	if minCriticalStr != "" {
		if n, err := strconv.Atoi(minCriticalStr); err == nil {
			minCritical = &n
		} else {
			http.Error(w, "invalid min_critical value", http.StatusBadRequest)
			return
		}
	}

	audits, err := h.Store.ListAuditsFiltered(r.Context(), name, minCritical)
	if err != nil {
		h.Log.WithError(err).Error("listing audits with filters")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(audits); err != nil {
		h.Log.WithError(err).Error("encoding audits list response")
	}
}

func (h *Handler) GetAudit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid audit id", http.StatusBadRequest)
		return
	}

	rec, err := h.Store.GetAudit(r.Context(), id)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			h.Log.WithField("id", id).WithError(err).Error("fetching audit")
		}
		http.Error(w, "audit not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rec); err != nil {
		h.Log.WithError(err).Error("encoding single audit response")
	}
}

func (h *Handler) DeleteAudit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid audit id", http.StatusBadRequest)
		return
	}

	if err := h.Store.DeleteAudit(r.Context(), id); err != nil {
		h.Log.WithError(err).Error("deleting audit")
		http.Error(w, "failed to delete audit", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
