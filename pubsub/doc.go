// Package pubsub provides a thin client for the Google Cloud Pub/Sub
// JSON REST API.
//
// The client composes request URLs from a configurable API base and
// version, delegates HTTP transport and JSON coding to a Requester, and
// maps a small set of REST endpoints (list topics, list subscriptions,
// create/get/delete/publish on a topic) onto method calls.
//
// Resources are returned as decoded JSON objects without a schema, so
// fields added by the server pass through unchanged. Pagination is
// caller-driven: list calls fetch a single page and hand back the
// server's opaque next-page token.
//
// Create a client and list topics:
//
//	logger := zerolog.New(os.Stderr)
//	client := pubsub.NewClient(logger)
//	topics, token, err := client.ListTopics(ctx, "my-project", pubsub.ListOptions{})
//
// Point the client at a local emulator by injecting the emulator host
// (typically read once from the PUBSUB_EMULATOR_HOST environment
// variable by the calling application):
//
//	client := pubsub.NewClient(logger, pubsub.WithEmulatorHost("localhost:8085"))
package pubsub
