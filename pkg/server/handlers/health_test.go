package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/promptpulse/promptpulse/pkg/providers"
)

func TestHealthHandler(t *testing.T) {
	registry := providers.NewRegistry(
		providers.NewCerebras(providers.Config{BaseURL: "http://x", DefaultModel: "m", Timeout: time.Second}),
		providers.NewMCP(providers.Config{BaseURL: "http://y", DefaultModel: "m", Timeout: time.Second}),
	)
	handler := NewHealthHandler(registry)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp struct {
		OK        bool     `json:"ok"`
		Status    string   `json:"status"`
		Providers []string `json:"providers"`
		Timestamp int64    `json:"timestamp"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.OK || resp.Status != "healthy" {
		t.Errorf("expected ok/healthy, got %v/%s", resp.OK, resp.Status)
	}
	if len(resp.Providers) != 2 || resp.Providers[0] != "cerebras" || resp.Providers[1] != "mcp" {
		t.Errorf("expected sorted provider names, got %v", resp.Providers)
	}
	if resp.Timestamp == 0 {
		t.Error("expected epoch-millisecond timestamp")
	}
}

func TestReadyHandler(t *testing.T) {
	tests := []struct {
		name       string
		usable     int
		wantStatus int
		wantOK     bool
	}{
		{"no usable providers", 0, http.StatusServiceUnavailable, false},
		{"one usable provider", 1, http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewReadyHandler(func() int { return tt.usable })

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))

			if rr.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, rr.Code)
			}
			var resp struct {
				OK bool `json:"ok"`
			}
			json.Unmarshal(rr.Body.Bytes(), &resp)
			if resp.OK != tt.wantOK {
				t.Errorf("expected ok=%v, got %v", tt.wantOK, resp.OK)
			}
		})
	}
}
