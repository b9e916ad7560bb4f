package detect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client calls an external inference service over HTTP. The service accepts
// raw image bytes and answers with the detected objects as JSON.
type Client struct {
	httpClient *http.Client
	endpoint   string
	userAgent  string
}

// NewClient returns a Client for the given inference endpoint. A zero
// timeout means no client-side bound; detector latency is governed by the
// service itself.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		userAgent:  "ecocity-traffic-prediction/1.0",
	}
}

// detectResponse is shaped for the inference service payload.
type detectResponse struct {
	Detections []Detection `json:"detections"`
	Error      string      `json:"error,omitempty"`
}

// Detect posts the image to the inference service and returns the detected
// objects.
func (c *Client) Detect(ctx context.Context, image []byte) ([]Detection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("failed to build detect request: %v", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("detect request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("detect request returned status %s", resp.Status)
	}

	var result detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode detect response: %v", err)
	}
	if result.Error != "" {
		return nil, fmt.Errorf("detector error: %s", result.Error)
	}
	return result.Detections, nil
}
