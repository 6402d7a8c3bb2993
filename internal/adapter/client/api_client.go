package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Prakhar9001/Fake-news-detection-system/internal/domain/service"
	"github.com/Prakhar9001/Fake-news-detection-system/internal/usecase"
)

// APIError is an error envelope returned by a NewsGuard server
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s: %s", e.StatusCode, e.Code, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// APIClient is an HTTP client for a running NewsGuard API
type APIClient struct {
	baseURL    string
	requestID  string
	httpClient *http.Client
}

// NewAPIClient creates a client for the server at baseURL, e.g.
// http://localhost:8080
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithRequestID returns a copy that sends requestID with every call
func (c *APIClient) WithRequestID(requestID string) *APIClient {
	cp := *c
	cp.requestID = requestID
	return &cp
}

// Classify sends a single text for classification
func (c *APIClient) Classify(ctx context.Context, input *usecase.ClassifyInput) (*usecase.ClassifyOutput, error) {
	var out usecase.ClassifyOutput
	if err := c.do(ctx, http.MethodPost, "/api/v1/classify", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClassifyBatch sends multiple texts for classification
func (c *APIClient) ClassifyBatch(ctx context.Context, input *usecase.ClassifyBatchInput) (*usecase.ClassifyBatchOutput, error) {
	var out usecase.ClassifyBatchOutput
	if err := c.do(ctx, http.MethodPost, "/api/v1/classify/batch", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ModelInfo describes the model the server has loaded
func (c *APIClient) ModelInfo(ctx context.Context) (*service.ModelInfo, error) {
	var out service.ModelInfo
	if err := c.do(ctx, http.MethodGet, "/api/v1/model", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ready checks if the server has a model loaded
func (c *APIClient) Ready(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ready", http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server not ready: status %d", resp.StatusCode)
	}

	return nil
}

func (c *APIClient) do(ctx context.Context, method, path string, in, out any) error {
	body := io.Reader(http.NoBody)
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.requestID != "" {
		req.Header.Set("X-Request-ID", c.requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode != http.StatusOK {
			return &APIError{StatusCode: resp.StatusCode}
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !env.Success {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}
