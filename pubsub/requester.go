package pubsub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
)

// Requester performs a single JSON API request. It attaches any
// authentication carried by its transport, serializes body to JSON when
// non-nil, and decodes a 2xx response body into out when out is
// non-nil. Non-2xx responses surface as *APIError.
type Requester interface {
	Do(ctx context.Context, method, url string, body, out any) error
}

// jsonRequester is the default Requester, built on net/http. Credentials
// travel with the supplied *http.Client (e.g. an oauth2 client).
type jsonRequester struct {
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger
}

func (r *jsonRequester) Do(ctx context.Context, method, requestURL string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	r.logger.Debug().
		Str("method", method).
		Str("url", requestURL).
		Msg("Making Pub/Sub API request")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newAPIError(resp.StatusCode, respBody)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}
