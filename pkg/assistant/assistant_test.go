package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mdraft/mdraft-cli/pkg/models"
)

func enabledSettings(url string) models.AISettings {
	return models.AISettings{
		APIURL:  url,
		APIKey:  "test-key",
		Model:   "test-model",
		Enabled: true,
	}
}

func completionServer(t *testing.T, content string) (*httptest.Server, *int) {
	t.Helper()
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++

		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected /chat/completions path, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Expected bearer auth header, got %q", got)
		}

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.Stream {
			t.Error("Stream must always be false")
		}
		if len(req.Messages) != 2 {
			t.Fatalf("Expected exactly 2 messages, got %d", len(req.Messages))
		}
		if req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("Expected system+user messages, got %s+%s", req.Messages[0].Role, req.Messages[1].Role)
		}

		json.NewEncoder(w).Encode(ChatResponse{
			Choices: []Choice{{Message: &ChatMessage{Role: "assistant", Content: content}}},
		})
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func TestAvailable(t *testing.T) {
	cases := []struct {
		name string
		cfg  models.AISettings
		want bool
	}{
		{"Configured", enabledSettings("http://api.local/v1"), true},
		{"Disabled", models.AISettings{APIURL: "http://api.local/v1", APIKey: "k"}, false},
		{"MissingURL", models.AISettings{APIKey: "k", Enabled: true}, false},
		{"MissingKey", models.AISettings{APIURL: "http://api.local/v1", Enabled: true}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := New(tc.cfg).Available(); got != tc.want {
				t.Errorf("Available() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestUnavailableFailsFastWithoutNetwork(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	cfg := enabledSettings(server.URL)
	cfg.Enabled = false
	client := New(cfg)
	ctx := context.Background()

	results := []Result{
		client.ContinueWriting(ctx, "text"),
		client.OptimizeContent(ctx, "text"),
		client.Translate(ctx, "text", "French"),
		client.Summarize(ctx, "text"),
		client.CustomPrompt(ctx, "shorten this", "text"),
		client.TestConnection(ctx),
	}

	for i, res := range results {
		if res.Success {
			t.Errorf("operation %d succeeded while disabled", i)
		}
		if !strings.Contains(res.Err, "not configured") {
			t.Errorf("operation %d: expected configuration error, got %q", i, res.Err)
		}
	}
	if calls != 0 {
		t.Errorf("disabled client made %d network calls, want 0", calls)
	}
}

func TestOptimizeContent(t *testing.T) {
	server, calls := completionServer(t, "polished text")
	client := New(enabledSettings(server.URL))

	res := client.OptimizeContent(context.Background(), "rough text")
	if !res.Success {
		t.Fatalf("Expected success, got error %q", res.Err)
	}
	if res.Content != "polished text" {
		t.Errorf("Expected content %q, got %q", "polished text", res.Content)
	}
	if *calls != 1 {
		t.Errorf("Expected exactly 1 call, got %d", *calls)
	}
}

func TestTranslatePromptNamesLanguage(t *testing.T) {
	var systemPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		json.NewDecoder(r.Body).Decode(&req)
		systemPrompt = req.Messages[0].Content
		json.NewEncoder(w).Encode(ChatResponse{
			Choices: []Choice{{Message: &ChatMessage{Content: "bonjour"}}},
		})
	}))
	defer server.Close()

	res := New(enabledSettings(server.URL)).Translate(context.Background(), "hello", "French")
	if !res.Success {
		t.Fatalf("Expected success, got %q", res.Err)
	}
	if !strings.Contains(systemPrompt, "French") {
		t.Errorf("Translate system prompt should name the target language, got %q", systemPrompt)
	}
}

func TestAPIErrorBodyExtracted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"boom"}}`))
	}))
	defer server.Close()

	res := New(enabledSettings(server.URL)).Summarize(context.Background(), "text")
	if res.Success {
		t.Fatal("Expected failure for 500 response")
	}
	if res.Err != "boom" {
		t.Errorf("Expected error %q, got %q", "boom", res.Err)
	}
}

func TestAPIErrorFallbackMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream has fallen over"))
	}))
	defer server.Close()

	res := New(enabledSettings(server.URL)).ContinueWriting(context.Background(), "text")
	if res.Success {
		t.Fatal("Expected failure for 502 response")
	}
	if res.Err != "request failed: 502" {
		t.Errorf("Expected generic status message, got %q", res.Err)
	}
}

func TestMissingContentIsMalformed(t *testing.T) {
	bodies := []string{
		`{}`,
		`{"choices":[]}`,
		`{"choices":[{"index":0}]}`,
		`{"choices":[{"message":{"role":"assistant"}}]}`,
	}

	for _, body := range bodies {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))

		res := New(enabledSettings(server.URL)).OptimizeContent(context.Background(), "text")
		server.Close()

		if res.Success {
			t.Errorf("body %s: expected failure", body)
		}
		if !strings.Contains(res.Err, "malformed") {
			t.Errorf("body %s: expected malformed-response error, got %q", body, res.Err)
		}
	}
}

func TestNetworkFailureNormalized(t *testing.T) {
	// Closed server: connection refused.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	res := New(enabledSettings(server.URL)).OptimizeContent(context.Background(), "text")
	if res.Success {
		t.Fatal("Expected failure when endpoint is unreachable")
	}
	if !strings.Contains(res.Err, "unreachable") {
		t.Errorf("Expected normalized network error, got %q", res.Err)
	}
}

func TestTestConnection(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				t.Errorf("Expected GET request, got %s", r.Method)
			}
			if r.URL.Path != "/models" {
				t.Errorf("Expected /models path, got %s", r.URL.Path)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
				t.Errorf("Expected bearer auth header, got %q", got)
			}
			w.Write([]byte(`{"data":[]}`))
		}))
		defer server.Close()

		res := New(enabledSettings(server.URL)).TestConnection(context.Background())
		if !res.Success {
			t.Errorf("Expected success, got %q", res.Err)
		}
	})

	t.Run("Unauthorized", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
		}))
		defer server.Close()

		res := New(enabledSettings(server.URL)).TestConnection(context.Background())
		if res.Success {
			t.Fatal("Expected failure for 401 response")
		}
		if res.Err != "invalid api key" {
			t.Errorf("Expected API error message, got %q", res.Err)
		}
	})
}

func TestSamplingPerIntent(t *testing.T) {
	var got ChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(ChatResponse{
			Choices: []Choice{{Message: &ChatMessage{Content: "ok"}}},
		})
	}))
	defer server.Close()

	client := New(enabledSettings(server.URL))
	ctx := context.Background()

	client.ContinueWriting(ctx, "text")
	if got.Temperature <= 0.5 {
		t.Errorf("continuation should run hot, got temperature %v", got.Temperature)
	}
	shortBudget := got.MaxTokens

	client.OptimizeContent(ctx, "text")
	if got.Temperature >= 0.5 {
		t.Errorf("optimization should run cool, got temperature %v", got.Temperature)
	}
	if got.MaxTokens <= shortBudget {
		t.Errorf("optimization budget (%d) should exceed continuation budget (%d)", got.MaxTokens, shortBudget)
	}
}

func TestTrailingSlashTrimmed(t *testing.T) {
	server, _ := completionServer(t, "ok")

	client := New(enabledSettings(server.URL + "/"))
	res := client.OptimizeContent(context.Background(), "text")
	if !res.Success {
		t.Errorf("Expected success with trailing-slash URL, got %q", res.Err)
	}
}
