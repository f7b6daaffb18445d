package analytics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/alog/internal/constants"
	"github.com/julianstephens/alog/internal/insight"
)

func TestInsightCmd_DryRun(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&InsightCmd{DryRun: true}).Run(ctx); err != nil {
		t.Errorf("dry run failed: %v", err)
	}
}

func TestInsightCmd_NoAPIKey(t *testing.T) {
	gokeyring.MockInit()
	t.Setenv(constants.EnvAPIKey, "")
	t.Setenv(constants.EnvGeminiAPIKey, "")

	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&InsightCmd{}).Run(ctx); !errors.Is(err, insight.ErrNoAPIKey) {
		t.Errorf("error = %v, want ErrNoAPIKey", err)
	}
}

func TestInsightCmd_Report(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if !strings.Contains(r.URL.Path, "test-model") {
			t.Errorf("path = %s, want the configured model", r.URL.Path)
		}
		if got := r.Header.Get("x-goog-api-key"); got != "env-key" {
			t.Errorf("api key = %q", got)
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ALL SYSTEMS NOMINAL."}]}}]}`))
	}))
	defer srv.Close()

	t.Setenv(constants.EnvAPIKey, "env-key")
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &InsightCmd{Model: "test-model", BaseURL: srv.URL}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("insight failed: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("server called %d times, want 1", calls.Load())
	}
}

func TestInsightCmd_ServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	t.Setenv(constants.EnvAPIKey, "env-key")
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &InsightCmd{BaseURL: srv.URL}
	if err := cmd.Run(ctx); !errors.Is(err, insight.ErrCommunication) {
		t.Errorf("error = %v, want ErrCommunication", err)
	}
}
