package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTP submits runs to a remote tracking service over its REST api.
// All failures wrap UnavailableErr, the caller decides whether to degrade.
type HTTP struct {
	url    string
	client *http.Client
}

func NewHTTP(url string) *HTTP {
	return &HTTP{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type beginRequest struct {
	Experiment string `json:"experiment"`
	RunName    string `json:"run_name"`
}

type beginResponse struct {
	RunID string `json:"run_id"`
}

type endRequest struct {
	Status string `json:"status"`
}

func (h *HTTP) BeginRun(ctx context.Context, experiment, name string) (RunContext, error) {
	var resp beginResponse
	err := h.post(ctx, fmt.Sprintf("%s/api/runs", h.url), beginRequest{
		Experiment: experiment,
		RunName:    name,
	}, &resp)
	if err != nil {
		return RunContext{}, err
	}
	return RunContext{
		ID:         resp.RunID,
		Experiment: experiment,
	}, nil
}

func (h *HTTP) LogRun(ctx context.Context, rc RunContext, sub Submission) error {
	return h.post(ctx, fmt.Sprintf("%s/api/runs/%s/log", h.url, rc.ID), sub, nil)
}

func (h *HTTP) EndRun(ctx context.Context, rc RunContext, status string) error {
	return h.post(ctx, fmt.Sprintf("%s/api/runs/%s/end", h.url, rc.ID), endRequest{Status: status}, nil)
}

func (h *HTTP) post(ctx context.Context, url string, body interface{}, out interface{}) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("could not marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("could not reach tracker at '%s': %v: %w", h.url, err, UnavailableErr)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tracker returned %d for '%s': %w", resp.StatusCode, url, UnavailableErr)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("could not decode response from '%s': %v: %w", url, err, UnavailableErr)
		}
	}
	return nil
}
