package pubsub

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// listResponse is the envelope shared by the two list endpoints. Only
// the fields we consume are typed; the resources themselves stay
// schemaless.
type listResponse struct {
	Topics        []Resource `json:"topics"`
	Subscriptions []Resource `json:"subscriptions"`
	NextPageToken string     `json:"nextPageToken"`
}

func listParams(opts ListOptions) url.Values {
	params := url.Values{}
	if opts.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(opts.PageSize))
	}
	if opts.PageToken != "" {
		params.Set("pageToken", opts.PageToken)
	}
	return params
}

// ListTopics fetches a single page of topics for a project. It returns
// the topic resources (empty when the project has none) and the opaque
// next-page token, "" when this is the last page. The caller drives
// pagination by passing the token back via ListOptions.
func (c *Client) ListTopics(ctx context.Context, project string, opts ListOptions) ([]Resource, string, error) {
	requestURL := c.BuildAPIURL("/projects/"+project+"/topics", listParams(opts))

	var resp listResponse
	if err := c.requester.Do(ctx, http.MethodGet, requestURL, nil, &resp); err != nil {
		return nil, "", fmt.Errorf("failed to list topics: %w", err)
	}

	c.logger.Debug().
		Str("project", project).
		Int("count", len(resp.Topics)).
		Bool("more", resp.NextPageToken != "").
		Msg("Listed topics")

	if resp.Topics == nil {
		resp.Topics = []Resource{}
	}
	return resp.Topics, resp.NextPageToken, nil
}

// CreateTopic creates a topic via a PUT to its fully-qualified path
// (projects/<PROJECT>/topics/<NAME>). Idempotent per the REST API.
func (c *Client) CreateTopic(ctx context.Context, topicPath string) (Resource, error) {
	requestURL := c.BuildAPIURL("/"+topicPath, nil)

	var topic Resource
	if err := c.requester.Do(ctx, http.MethodPut, requestURL, nil, &topic); err != nil {
		return nil, fmt.Errorf("failed to create topic %s: %w", topicPath, err)
	}

	c.logger.Info().Str("topic", topicPath).Msg("Created topic")
	return topic, nil
}

// GetTopic retrieves a topic by its fully-qualified path.
func (c *Client) GetTopic(ctx context.Context, topicPath string) (Resource, error) {
	requestURL := c.BuildAPIURL("/"+topicPath, nil)

	var topic Resource
	if err := c.requester.Do(ctx, http.MethodGet, requestURL, nil, &topic); err != nil {
		return nil, fmt.Errorf("failed to get topic %s: %w", topicPath, err)
	}

	return topic, nil
}

// DeleteTopic deletes a topic by its fully-qualified path.
func (c *Client) DeleteTopic(ctx context.Context, topicPath string) error {
	requestURL := c.BuildAPIURL("/"+topicPath, nil)

	if err := c.requester.Do(ctx, http.MethodDelete, requestURL, nil, nil); err != nil {
		return fmt.Errorf("failed to delete topic %s: %w", topicPath, err)
	}

	c.logger.Info().Str("topic", topicPath).Msg("Deleted topic")
	return nil
}

// Publish posts messages to a topic. Messages must already be shaped
// for the REST API (base64 "data", optional "attributes"); no
// validation or encoding happens here beyond JSON serialization.
func (c *Client) Publish(ctx context.Context, topicPath string, messages []Message) (*PublishResponse, error) {
	requestURL := c.BuildAPIURL("/"+topicPath+":publish", nil)
	body := map[string][]Message{"messages": messages}

	var resp PublishResponse
	if err := c.requester.Do(ctx, http.MethodPost, requestURL, body, &resp); err != nil {
		return nil, fmt.Errorf("failed to publish to topic %s: %w", topicPath, err)
	}

	c.logger.Debug().
		Str("topic", topicPath).
		Int("messages", len(messages)).
		Int("message_ids", len(resp.MessageIDs)).
		Msg("Published messages")

	return &resp, nil
}
