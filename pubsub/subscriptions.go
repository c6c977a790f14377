package pubsub

import (
	"context"
	"fmt"
	"net/http"
)

// ListSubscriptions fetches a single page of subscriptions for a
// project. Same contract as ListTopics: resources plus an opaque
// next-page token, "" on the last page.
func (c *Client) ListSubscriptions(ctx context.Context, project string, opts ListOptions) ([]Resource, string, error) {
	requestURL := c.BuildAPIURL("/projects/"+project+"/subscriptions", listParams(opts))

	var resp listResponse
	if err := c.requester.Do(ctx, http.MethodGet, requestURL, nil, &resp); err != nil {
		return nil, "", fmt.Errorf("failed to list subscriptions: %w", err)
	}

	c.logger.Debug().
		Str("project", project).
		Int("count", len(resp.Subscriptions)).
		Bool("more", resp.NextPageToken != "").
		Msg("Listed subscriptions")

	if resp.Subscriptions == nil {
		resp.Subscriptions = []Resource{}
	}
	return resp.Subscriptions, resp.NextPageToken, nil
}
