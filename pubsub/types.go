package pubsub

// Resource is a decoded Pub/Sub resource object (topic, subscription).
// It is passed through from the API without a schema so that fields
// added by the server survive intact.
type Resource map[string]any

// Name returns the fully-qualified resource name, or "" if absent.
func (r Resource) Name() string {
	name, _ := r["name"].(string)
	return name
}

// Message is a Pub/Sub message as the REST API expects it. The caller
// shapes it (base64 "data", "attributes", ...); the client only
// serializes it.
type Message map[string]any

// ListOptions controls a single page of a list call. Zero values are
// omitted from the request.
type ListOptions struct {
	PageSize  int
	PageToken string
}

// PublishResponse holds the server-assigned IDs of published messages.
type PublishResponse struct {
	MessageIDs []string `json:"messageIds"`
}

// TopicPath returns the fully-qualified topic path for a project.
func TopicPath(project, topic string) string {
	return "projects/" + project + "/topics/" + topic
}

// SubscriptionPath returns the fully-qualified subscription path for a
// project.
func SubscriptionPath(project, sub string) string {
	return "projects/" + project + "/subscriptions/" + sub
}
