package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"kairo_backend/pkg/apperrors"
)

const defaultTimeout = 10 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}

// getJSON performs a GET and decodes the body into out. Non-2xx responses
// become external-service errors so callers can map them to 502.
func getJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return apperrors.InternalError(err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return apperrors.ErrExternalService(err, "integration", "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return apperrors.NewNotFoundError("integration", "Profile not found")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return apperrors.ErrExternalService(
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body)),
			"integration", "upstream returned an error")
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.ErrExternalService(err, "integration", "invalid response body")
	}
	return nil
}
