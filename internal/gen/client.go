package gen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	defaultBaseURL = "https://api.anthropic.com/v1/messages"
	apiVersion     = "2023-06-01"
	model          = "claude-haiku-4-5-20251001"
	maxTokens      = 1024
)

// GenerationError wraps any failure of a generation call: transport errors,
// non-2xx responses, unparseable replies, schema-nonconforming results. All
// are recoverable; the engine logs them and mutates nothing.
type GenerationError struct {
	Kind Kind
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %s: %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Client calls the chat-completion API. The credential arrives per call
// (the engine's credential store picks it); the client holds no key.
type Client struct {
	baseURL    string
	httpClient *http.Client

	// Rate limiting: max calls per minute.
	mu        sync.Mutex
	callCount int
	resetAt   time.Time
	maxPerMin int
}

// NewClient creates a gateway client with the production endpoint.
func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxPerMin: 20,
	}
}

// Enabled reports whether generation calls can be made. A nil client is
// a valid disabled gateway, so hosts can skip wiring it entirely.
func (c *Client) Enabled() bool { return c != nil }

// WithBaseURL points the client at a different endpoint, for tests.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = url
	return c
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type response struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// Generate produces a structured entity of the given kind from a free-text
// prompt. The result is decoded into the kind's payload type and checked
// for required fields; any failure comes back as a *GenerationError.
func (c *Client) Generate(ctx context.Context, kind Kind, prompt, credential string) (any, error) {
	result, err := resultFor(kind)
	if err != nil {
		return nil, &GenerationError{Kind: kind, Err: err}
	}
	schema, err := SchemaFor(kind)
	if err != nil {
		return nil, &GenerationError{Kind: kind, Err: err}
	}

	if err := c.throttle(); err != nil {
		return nil, &GenerationError{Kind: kind, Err: err}
	}

	system := fmt.Sprintf(
		"You generate content for a Vietnamese xianxia cultivation game. "+
			"Respond ONLY with a single JSON object conforming to this JSON schema:\n%s",
		schema)

	text, err := c.complete(ctx, system, prompt, credential)
	if err != nil {
		return nil, &GenerationError{Kind: kind, Err: err}
	}

	raw, err := extractJSON(text)
	if err != nil {
		return nil, &GenerationError{Kind: kind, Err: err}
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return nil, &GenerationError{Kind: kind, Err: fmt.Errorf("decode result: %w", err)}
	}
	if err := validate(kind, result); err != nil {
		return nil, &GenerationError{Kind: kind, Err: err}
	}
	return result, nil
}

func (c *Client) throttle() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if now.After(c.resetAt) {
		c.callCount = 0
		c.resetAt = now.Add(time.Minute)
	}
	if c.callCount >= c.maxPerMin {
		return fmt.Errorf("rate limit exceeded (%d calls/min)", c.maxPerMin)
	}
	c.callCount++
	return nil
}

func (c *Client) complete(ctx context.Context, system, prompt, credential string) (string, error) {
	body, err := json.Marshal(request{
		Model:     model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", credential)
	httpReq.Header.Set("anthropic-version", apiVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("API call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, string(respBody))
	}

	var apiResp response
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(apiResp.Content) == 0 {
		return "", fmt.Errorf("empty response")
	}

	slog.Debug("generation call",
		"input_tokens", apiResp.Usage.InputTokens,
		"output_tokens", apiResp.Usage.OutputTokens,
	)
	return apiResp.Content[0].Text, nil
}

// extractJSON finds the JSON object in a reply that may carry prose or
// markdown fences around it.
func extractJSON(text string) (json.RawMessage, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object found in response")
	}
	return json.RawMessage(text[start : end+1]), nil
}
