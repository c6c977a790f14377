package pubsub

import (
	"context"
)

// API defines the interface for Pub/Sub operations, for callers that
// want to mock the client.
type API interface {
	// ListTopics fetches a single page of topics for a project
	ListTopics(ctx context.Context, project string, opts ListOptions) ([]Resource, string, error)

	// ListSubscriptions fetches a single page of subscriptions for a project
	ListSubscriptions(ctx context.Context, project string, opts ListOptions) ([]Resource, string, error)

	// CreateTopic creates a topic at its fully-qualified path
	CreateTopic(ctx context.Context, topicPath string) (Resource, error)

	// GetTopic retrieves a topic by its fully-qualified path
	GetTopic(ctx context.Context, topicPath string) (Resource, error)

	// DeleteTopic deletes a topic by its fully-qualified path
	DeleteTopic(ctx context.Context, topicPath string) error

	// Publish posts caller-shaped messages to a topic
	Publish(ctx context.Context, topicPath string, messages []Message) (*PublishResponse, error)
}

var _ API = (*Client)(nil)
