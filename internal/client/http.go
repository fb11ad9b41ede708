package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/emoji-rain/emojirain/internal/prove"
)

// HTTPClient makes REST calls to the relay server.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a client targeting the given base URL
// (e.g. "http://127.0.0.1:3000").
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// ProveScore sends the session's reaction data to the proving service.
// Any non-2xx response is a hard failure for this submission.
func (c *HTTPClient) ProveScore(reactionTimes []int, perfects int) (*prove.Response, error) {
	body := prove.Request{ReactionTimes: reactionTimes, TotalPerfects: perfects}
	var out prove.Response
	if err := c.post("/prove-score", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health fetches /api/health.
func (c *HTTPClient) Health() (*HealthInfo, error) {
	var h HealthInfo
	if err := c.get("/api/health", &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// HealthInfo mirrors the relay's health payload.
type HealthInfo struct {
	UptimeSeconds int64   `json:"uptimeSeconds"`
	Players       int     `json:"players"`
	Connections   int     `json:"connections"`
	CPUPercent    float64 `json:"cpuPercent"`
	MemoryPercent float64 `json:"memoryPercent"`
}

func (c *HTTPClient) get(path string, out any) error {
	resp, err := c.client.Get(c.baseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s: %d %s", path, resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *HTTPClient) post(path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := c.client.Post(c.baseURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("POST %s: %d %s", path, resp.StatusCode, string(respBody))
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
