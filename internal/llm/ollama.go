package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Decoding options for every generation call. Low temperature keeps answers
// about a structured application process from drifting.
const (
	optTemperature = 0.2
	optTopP        = 0.7
	optTopK        = 10
	optNumPredict  = 100
)

type ollamaClient struct {
	httpClient *http.Client
	host       string
	model      string
	timeout    time.Duration
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	System  string         `json:"system,omitempty"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// NewOllama returns a Client against an Ollama server at host. timeout caps
// each generation call; it is also the http client's transport timeout so a
// stalled connection cannot outlive the deadline.
func NewOllama(host, model string, timeout time.Duration) Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ollamaClient{
		httpClient: &http.Client{Timeout: timeout},
		host:       strings.TrimSuffix(host, "/"),
		model:      model,
		timeout:    timeout,
	}
}

func (c *ollamaClient) Model() string {
	return c.model
}

func (c *ollamaClient) Generate(ctx context.Context, system, prompt string) (string, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload := generateRequest{
		Model:  c.model,
		Prompt: prompt,
		System: system,
		Stream: false,
		Options: map[string]any{
			"temperature": optTemperature,
			"top_p":       optTopP,
			"top_k":       optTopK,
			"num_predict": optNumPredict,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/generate", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classifyTransportError(err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generate returned status %d: %w", resp.StatusCode, ErrUnavailable)
	}

	var out generateResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("decode generate response: %w", ErrUnavailable)
	}
	return strings.TrimSpace(out.Response), nil
}

// Healthy probes the model listing endpoint. Any 200 means the server is up;
// model availability is not checked here.
func (c *ollamaClient) Healthy(ctx context.Context) bool {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

// classifyTransportError folds transport failures into the two sentinel
// errors callers branch on.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("generate: %w", ErrTimeout)
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("generate: %w", ErrTimeout)
	}
	return fmt.Errorf("generate: %v: %w", err, ErrUnavailable)
}
