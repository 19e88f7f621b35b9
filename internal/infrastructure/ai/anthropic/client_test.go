package anthropic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tesso57/dietplan/internal/infrastructure/ai"
)

const messageBody = `{"id":"msg_1","type":"message","role":"assistant","model":"claude-test","content":[{"type":"text","text":"CLAUDE_TEXT"}],"stop_reason":"end_turn","stop_sequence":null,"usage":{"input_tokens":3,"output_tokens":2}}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClientWithHTTPClient(Config{
		APIKey:  "anthropic-key",
		BaseURL: server.URL,
		Model:   "claude-test",
		Timeout: 5 * time.Second,
	}, server.Client())
}

func TestClient_Generate(t *testing.T) {
	var gotKey, gotPath string
	var gotBody map[string]any
	calls := 0

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotKey = r.Header.Get("X-Api-Key")
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, messageBody)
	})

	got, err := client.Generate(context.Background(), "plan")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "CLAUDE_TEXT" {
		t.Fatalf("output = %q, want CLAUDE_TEXT", got)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if gotKey != "anthropic-key" {
		t.Fatalf("api key header = %q", gotKey)
	}
	if gotPath != "/v1/messages" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotBody["model"] != "claude-test" {
		t.Fatalf("model = %v", gotBody["model"])
	}
	if gotBody["max_tokens"] != float64(defaultMaxTokens) {
		t.Fatalf("max_tokens = %v", gotBody["max_tokens"])
	}
}

func TestClient_GenerateErrorsDoNotRetry(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind ai.Kind
	}{
		{name: "overloaded", status: http.StatusServiceUnavailable, body: `{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`, wantKind: ai.KindHTTP},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"type":"error","error":{"type":"authentication_error","message":"bad key"}}`, wantKind: ai.KindHTTP},
		{name: "malformed", status: http.StatusOK, body: `{"content": [`, wantKind: ai.KindMalformed},
		{name: "empty content", status: http.StatusOK, body: `{"id":"msg_1","type":"message","role":"assistant","content":[]}`, wantKind: ai.KindMalformed},
		{name: "blank text block", status: http.StatusOK, body: `{"id":"msg_1","type":"message","role":"assistant","content":[{"type":"text","text":""}]}`, wantKind: ai.KindMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				calls++
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			_, err := client.Generate(context.Background(), "x")
			if !ai.IsKind(err, tt.wantKind) {
				t.Fatalf("error = %v, want kind %s", err, tt.wantKind)
			}
			if calls != 1 {
				t.Fatalf("calls = %d, want exactly one attempt", calls)
			}
		})
	}
}

func TestNormalizeConfig(t *testing.T) {
	cfg := normalizeConfig(Config{BaseURL: "http://localhost:9999"})
	if cfg.BaseURL != "http://localhost:9999/" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Model != defaultModel || cfg.MaxTokens != defaultMaxTokens || cfg.Timeout != ai.DefaultTimeout {
		t.Fatalf("defaults not applied: %#v", cfg)
	}
}
