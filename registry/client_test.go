package registry

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"npm-audit/config"
	"npm-audit/deptree"
)

func testPayload() *deptree.AuditPayload {
	return &deptree.AuditPayload{
		Name:     "proj",
		Version:  "1.0.0",
		Requires: map[string]string{"left-pad": "^1.0.0"},
		Dependencies: map[string]*deptree.PackageRecord{
			"left-pad": {Version: "1.3.0", Integrity: "sha1-abc"},
		},
		Install: []string{},
		Remove:  []string{},
	}
}

func TestSubmitAuditRequestShape(t *testing.T) {
	var (
		gotPath     string
		gotEncoding string
		gotType     string
		gotPayload  deptree.AuditPayload
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotEncoding = r.Header.Get("Content-Encoding")
		gotType = r.Header.Get("Content-Type")

		zr, err := gzip.NewReader(r.Body)
		if err != nil {
			t.Errorf("request body is not gzip: %v", err)
			return
		}
		defer zr.Close()
		if err := json.NewDecoder(zr).Decode(&gotPayload); err != nil {
			t.Errorf("failed to decode request payload: %v", err)
			return
		}

		_ = json.NewEncoder(w).Encode(AuditResult{})
	}))
	defer server.Close()

	client := &AuditClient{BaseURL: server.URL, HTTPClient: http.DefaultClient}

	_, err := client.SubmitAudit(context.Background(), testPayload())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != config.AuditEndpoint {
		t.Errorf("expected POST to %s, got %s", config.AuditEndpoint, gotPath)
	}
	if gotEncoding != "gzip" {
		t.Errorf("expected gzip Content-Encoding, got %q", gotEncoding)
	}
	if gotType != "application/json" {
		t.Errorf("expected application/json Content-Type, got %q", gotType)
	}
	if gotPayload.Name != "proj" || gotPayload.Dependencies["left-pad"].Version != "1.3.0" {
		t.Errorf("payload did not round-trip: %+v", gotPayload)
	}
}

func TestSubmitAuditResponses(t *testing.T) {
	tests := []struct {
		name           string
		statusCode     int
		body           any
		expectError    bool
		expectedResult *AuditResult
	}{
		{
			name:       "Valid response",
			statusCode: http.StatusOK,
			body: AuditResult{
				Advisories: map[string]Advisory{
					"118": {ID: 118, ModuleName: "left-pad", Severity: "high"},
				},
				Metadata: AuditMetadata{
					Vulnerabilities:   VulnerabilityCounts{High: 1},
					TotalDependencies: 1,
				},
			},
			expectError: false,
			expectedResult: &AuditResult{
				Advisories: map[string]Advisory{
					"118": {ID: 118, ModuleName: "left-pad", Severity: "high"},
				},
				Metadata: AuditMetadata{
					Vulnerabilities:   VulnerabilityCounts{High: 1},
					TotalDependencies: 1,
				},
			},
		},
		{
			name:           "Non-200 status",
			statusCode:     http.StatusServiceUnavailable,
			body:           nil,
			expectError:    true,
			expectedResult: nil,
		},
		{
			name:           "Invalid JSON",
			statusCode:     http.StatusOK,
			body:           "invalid-json",
			expectError:    true,
			expectedResult: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				if tt.body != nil {
					switch v := tt.body.(type) {
					case string:
						fmt.Fprint(w, v)
					default:
						_ = json.NewEncoder(w).Encode(v)
					}
				}
			}))
			defer server.Close()

			client := &AuditClient{BaseURL: server.URL, HTTPClient: http.DefaultClient}

			result, err := client.SubmitAudit(context.Background(), testPayload())

			if tt.expectError {
				if err == nil {
					t.Errorf("expected error, got nil")
				}
				if result != nil {
					t.Errorf("expected nil result, got %v", result)
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
					return
				}
				if !reflect.DeepEqual(result, tt.expectedResult) {
					t.Errorf("expected result %+v, got %+v", tt.expectedResult, result)
				}
			}
		})
	}
}
