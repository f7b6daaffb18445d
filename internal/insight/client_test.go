package insight

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/alog/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewGeminiClient("test-key", "test-model")
	c.BaseURL = srv.URL
	c.HTTPClient = srv.Client()
	return c
}

func TestGenerate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/v1beta/models/test-model:generateContent" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Errorf("api key header = %q", got)
		}

		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 1 || req.Contents[0].Parts[0].Text != "hello" {
			t.Errorf("unexpected request body: %+v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"STATUS: "},{"text":"NOMINAL."}]}}]}`))
	})

	got, err := c.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "STATUS: NOMINAL." {
		t.Errorf("Generate() = %q", got)
	}
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			want: ErrCommunication,
		},
		{
			name: "rejected key",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`))
			},
			want: ErrCommunication,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
			want: ErrCommunication,
		},
		{
			name: "no candidates",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"candidates":[]}`))
			},
			want: ErrEmptyResponse,
		},
		{
			name: "blank text",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  "}]}}]}`))
			},
			want: ErrEmptyResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)
			_, err := c.Generate(context.Background(), "prompt")
			if !errors.Is(err, tt.want) {
				t.Errorf("Generate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGenerate_NoAPIKey(t *testing.T) {
	c := NewGeminiClient("", "")
	if _, err := c.Generate(context.Background(), "prompt"); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestGenerate_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewGeminiClient("k", "")
	c.BaseURL = url
	if _, err := c.Generate(context.Background(), "prompt"); !errors.Is(err, ErrCommunication) {
		t.Errorf("expected ErrCommunication, got %v", err)
	}
}

type recordingGenerator struct {
	prompt string
}

func (g *recordingGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return "OK", nil
}

func TestReport(t *testing.T) {
	gen := &recordingGenerator{}
	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	log := models.Log{"2024-03-15": {"q1": models.AnswerYes}}

	out, err := Report(context.Background(), gen, digestFixture(), log, today)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if out != "OK" {
		t.Errorf("Report() = %q", out)
	}
	if !strings.HasSuffix(gen.prompt, "Date: 2024-03-15\n- Read: YES") {
		t.Errorf("prompt missing digest: %q", gen.prompt)
	}
}
