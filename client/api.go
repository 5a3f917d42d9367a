// Package client is the storefront client: it authenticates a user, fetches
// the catalog, keeps a local cart consistent with last-known stock, runs the
// registration validation pipeline and submits orders.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx response from the shop API. Code is the server's
// structured failure code; it is empty when the body was not parseable.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// API is the JSON request helper. A cookie jar carries the session, so login
// state rides implicitly on every call, like a browser.
type API struct {
	baseURL string
	httpc   *http.Client
	logger  *zap.Logger
}

// NewAPI creates an API client for the given base URL.
func NewAPI(baseURL string, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	jar, _ := cookiejar.New(nil)
	return &API{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Jar: jar, Timeout: defaultTimeout},
		logger:  logger,
	}
}

// Do sends a JSON request and decodes the JSON response into out (which may
// be nil). Non-2xx responses come back as *APIError; an unparseable failure
// body yields an APIError carrying only the status.
func (a *API) Do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var failure struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		if json.Unmarshal(data, &failure) == nil {
			apiErr.Code = failure.Code
			apiErr.Message = failure.Error
		}
		a.logger.Debug("api call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("code", apiErr.Code))
		return apiErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response from %s: %w", path, err)
		}
	}
	return nil
}
