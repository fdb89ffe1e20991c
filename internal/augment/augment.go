// Package augment optionally enriches a workflow's description with
// generated prose from a local LLM endpoint. It is off by default: the
// reasoning pipeline already produces complete, deterministic workflow
// descriptions without it, and no rule or score depends on its output.
// Adapted from the platform's bare net/http REST client pattern for
// talking to a local model server.
package augment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nexarch/core/internal/models"
)

// Client talks to a local completion endpoint (e.g. an Ollama-compatible
// server) to expand a workflow's description into fuller prose.
type Client struct {
	endpoint   string
	model      string
	httpClient *http.Client
}

// NewClient builds a Client. endpoint and model come from
// config.AugmentConfig; callers must check AugmentConfig.Enabled before
// constructing one.
func NewClient(endpoint, model string) *Client {
	return &Client{
		endpoint: endpoint,
		model:    model,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Describe asks the model for a short prose expansion of a workflow's
// mechanical description. On any failure it returns the original
// description unchanged: augmentation is best-effort and must never
// fail an otherwise-successful read.
func (c *Client) Describe(ctx context.Context, wf models.Workflow) string {
	prompt := fmt.Sprintf(
		"In two sentences, explain this remediation workflow to an engineer: %q. Proposed changes: %v",
		wf.Description, wf.ProposedChanges,
	)

	payload, err := json.Marshal(generateRequest{Model: c.model, Prompt: prompt, Stream: false})
	if err != nil {
		return wf.Description
	}

	url := c.endpoint + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return wf.Description
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return wf.Description
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return wf.Description
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return wf.Description
	}

	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil || out.Response == "" {
		return wf.Description
	}
	return out.Response
}
