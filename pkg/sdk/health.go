package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	gen "github.com/kailas-cloud/pagehighlight/internal/transport/api"
)

// Health fetches the server health report. An unhealthy server (503) is a
// report, not an error.
func (c *Client) Health(ctx context.Context) (hs HealthStatus, err error) {
	start := time.Now()
	defer func() { c.obs.observe("health", start, err) }()

	status, data, err := c.send(ctx, http.MethodGet, "/health", "", nil)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("health: %w", err)
	}
	if status != http.StatusOK && status != http.StatusServiceUnavailable {
		return HealthStatus{}, fmt.Errorf("health: %w", apiError(status, data))
	}

	var resp gen.HealthResponse
	if err = json.Unmarshal(data, &resp); err != nil {
		return HealthStatus{}, fmt.Errorf("health: decode response: %w", err)
	}
	return HealthStatus{Status: resp.Status, Checks: resp.Checks, Version: resp.Version}, nil
}
