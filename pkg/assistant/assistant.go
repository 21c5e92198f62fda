package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mdraft/mdraft-cli/pkg/models"
)

// Error messages surfaced to the UI. Every failure mode is normalized to
// one of these plus whatever the API itself reports.
const (
	errNotConfigured = "assistant is not configured: enable it and set an API URL and key in settings"
	errNetwork       = "assistant endpoint unreachable: check the API URL and your connection"
	errMalformed     = "assistant returned a malformed response: no message content"
)

// Result is the uniform outcome of every assistant operation. Exactly one
// of Content or Err is meaningful, selected by Success.
type Result struct {
	Success bool
	Content string
	Err     string
}

func failure(msg string) Result { return Result{Err: msg} }

func success(content string) Result { return Result{Success: true, Content: content} }

// sampling holds the fixed per-intent request parameters. Continuation
// favors creativity over length; transformations favor fidelity and get
// room for the full document.
type sampling struct {
	temperature float64
	maxTokens   int
}

var (
	continueSampling  = sampling{temperature: 0.8, maxTokens: 512}
	optimizeSampling  = sampling{temperature: 0.3, maxTokens: 2048}
	translateSampling = sampling{temperature: 0.2, maxTokens: 2048}
	summarizeSampling = sampling{temperature: 0.4, maxTokens: 1024}
	customSampling    = sampling{temperature: 0.7, maxTokens: 2048}
)

const (
	continuePrompt = "You are a writing assistant. Continue the user's markdown text naturally, " +
		"matching its tone, voice and formatting. Reply with the continuation only, without repeating the input."
	optimizePrompt = "You are an editor. Improve the clarity, grammar and flow of the user's markdown text " +
		"while preserving its meaning and all markdown formatting. Reply with the revised text only."
	summarizePrompt = "You are a writing assistant. Summarize the user's markdown text concisely, " +
		"keeping the essential points. Reply with the summary only."
)

// Client is the writing assistant adapter. It is stateless across calls
// apart from its configuration; construct one per configuration and
// replace it when settings change.
type Client struct {
	cfg        models.AISettings
	httpClient *http.Client
}

// New creates an assistant client for the given settings.
func New(cfg models.AISettings) *Client {
	cfg.APIURL = strings.TrimSuffix(strings.TrimSpace(cfg.APIURL), "/")
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Available reports whether the assistant can be used at all. Operations
// on an unavailable client fail fast without touching the network.
func (c *Client) Available() bool {
	return c.cfg.Enabled && c.cfg.APIURL != "" && c.cfg.APIKey != ""
}

// ContinueWriting asks for a natural continuation of text.
func (c *Client) ContinueWriting(ctx context.Context, text string) Result {
	return c.complete(ctx, continuePrompt, text, continueSampling)
}

// OptimizeContent asks for an edited version of text.
func (c *Client) OptimizeContent(ctx context.Context, text string) Result {
	return c.complete(ctx, optimizePrompt, text, optimizeSampling)
}

// Translate asks for text translated into the named language.
func (c *Client) Translate(ctx context.Context, text, language string) Result {
	prompt := fmt.Sprintf("You are a professional translator. Translate the user's markdown text into %s, "+
		"preserving all markdown formatting. Reply with the translation only.", language)
	return c.complete(ctx, prompt, text, translateSampling)
}

// Summarize asks for a concise summary of text.
func (c *Client) Summarize(ctx context.Context, text string) Result {
	return c.complete(ctx, summarizePrompt, text, summarizeSampling)
}

// CustomPrompt applies a user-supplied instruction to text.
func (c *Client) CustomPrompt(ctx context.Context, instruction, text string) Result {
	return c.complete(ctx, instruction, text, customSampling)
}

// TestConnection checks that the endpoint is reachable and the key is
// accepted. It fetches the model list and discards the body.
func (c *Client) TestConnection(ctx context.Context) Result {
	if !c.Available() {
		return failure(errNotConfigured)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.APIURL+"/models", nil)
	if err != nil {
		return failure(fmt.Sprintf("invalid API URL: %v", err))
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return failure(errNetwork)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return failure(apiError(resp))
	}
	return success("")
}

// complete performs the two-message exchange shared by every writing
// intent: a fixed system prompt and the literal input text.
func (c *Client) complete(ctx context.Context, systemPrompt, text string, s sampling) Result {
	if !c.Available() {
		return failure(errNotConfigured)
	}

	body, err := json.Marshal(ChatRequest{
		Model: c.cfg.Model,
		Messages: []ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: text},
		},
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
		Stream:      false,
	})
	if err != nil {
		return failure(fmt.Sprintf("failed to encode request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return failure(fmt.Sprintf("invalid API URL: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return failure(errNetwork)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return failure(apiError(resp))
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return failure(errMalformed)
	}
	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message == nil || chatResp.Choices[0].Message.Content == "" {
		return failure(errMalformed)
	}

	return success(chatResp.Choices[0].Message.Content)
}

// apiError extracts a human-readable message from a non-2xx response,
// preferring the API's own error body.
func apiError(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return errResp.Error.Message
	}
	return fmt.Sprintf("request failed: %d", resp.StatusCode)
}
