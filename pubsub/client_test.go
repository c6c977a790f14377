package pubsub

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBaseURL(t *testing.T) {
	tests := []struct {
		name         string
		explicit     string
		emulatorHost string
		want         string
	}{
		{
			name: "default public endpoint",
			want: "https://pubsub.googleapis.com",
		},
		{
			name:         "emulator host",
			emulatorHost: "localhost:8085",
			want:         "http://localhost:8085",
		},
		{
			name:         "explicit overrides emulator",
			explicit:     "https://example.com",
			emulatorHost: "localhost:8085",
			want:         "https://example.com",
		},
		{
			name:     "explicit overrides default",
			explicit: "https://example.com",
			want:     "https://example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveBaseURL(tt.explicit, tt.emulatorHost))
		})
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		version string
		path    string
		query   url.Values
		want    string
	}{
		{
			name:    "no query",
			base:    "https://pubsub.googleapis.com",
			version: "v1",
			path:    "/projects/p/topics",
			want:    "https://pubsub.googleapis.com/v1/projects/p/topics",
		},
		{
			name:    "empty query omitted",
			base:    "https://pubsub.googleapis.com",
			version: "v1",
			path:    "/projects/p/topics",
			query:   url.Values{},
			want:    "https://pubsub.googleapis.com/v1/projects/p/topics",
		},
		{
			name:    "query encoded",
			base:    "https://pubsub.googleapis.com",
			version: "v1",
			path:    "/projects/p/topics",
			query:   url.Values{"pageSize": {"10"}, "pageToken": {"a b/c"}},
			want:    "https://pubsub.googleapis.com/v1/projects/p/topics?pageSize=10&pageToken=a+b%2Fc",
		},
		{
			name:    "trailing slash trimmed from base",
			base:    "http://localhost:8085/",
			version: "v1",
			path:    "/projects/p/topics/t",
			want:    "http://localhost:8085/v1/projects/p/topics/t",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildURL(tt.base, tt.version, tt.path, tt.query))
		})
	}
}

func TestNewClientDefaults(t *testing.T) {
	logger := zerolog.Nop()

	client := NewClient(logger)
	assert.Equal(t, DefaultBaseURL, client.BaseURL())
	assert.Equal(t, DefaultAPIVersion, client.APIVersion())

	client = NewClient(logger, WithEmulatorHost("localhost:8085"))
	assert.Equal(t, "http://localhost:8085", client.BaseURL())

	client = NewClient(logger,
		WithBaseURL("https://example.com/"),
		WithEmulatorHost("localhost:8085"),
		WithAPIVersion("v1beta2"),
	)
	assert.Equal(t, "https://example.com", client.BaseURL())
	assert.Equal(t, "v1beta2", client.APIVersion())
}

func TestBuildAPIURL(t *testing.T) {
	client := NewClient(zerolog.Nop(), WithBaseURL("http://localhost:8085"))

	got := client.BuildAPIURL("/projects/p/topics", url.Values{"pageSize": {"5"}})
	assert.Equal(t, "http://localhost:8085/v1/projects/p/topics?pageSize=5", got)
}

// newTestClient wires a client against an httptest server handler.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(zerolog.Nop(), WithBaseURL(server.URL))
}

func TestListTopics(t *testing.T) {
	ctx := context.Background()

	t.Run("empty response", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/v1/projects/p/topics", r.URL.Path)
			assert.Empty(t, r.URL.RawQuery)
			w.Write([]byte(`{}`))
		})

		topics, token, err := client.ListTopics(ctx, "p", ListOptions{})
		require.NoError(t, err)
		assert.Empty(t, topics)
		assert.NotNil(t, topics)
		assert.Equal(t, "", token)
	})

	t.Run("topics and token passed through", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "10", r.URL.Query().Get("pageSize"))
			assert.Equal(t, "tok", r.URL.Query().Get("pageToken"))
			w.Write([]byte(`{"topics":[{"name":"projects/p/topics/t1","labels":{"env":"dev"}},{"name":"projects/p/topics/t2"}],"nextPageToken":"abc"}`))
		})

		topics, token, err := client.ListTopics(ctx, "p", ListOptions{PageSize: 10, PageToken: "tok"})
		require.NoError(t, err)
		require.Len(t, topics, 2)
		assert.Equal(t, "projects/p/topics/t1", topics[0].Name())
		// Unknown fields survive the round trip.
		assert.Equal(t, map[string]any{"env": "dev"}, topics[0]["labels"])
		assert.Equal(t, "abc", token)
	})
}

func TestListSubscriptions(t *testing.T) {
	ctx := context.Background()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/projects/p/subscriptions", r.URL.Path)
		w.Write([]byte(`{"subscriptions":[{"name":"projects/p/subscriptions/s1"}]}`))
	})

	subs, token, err := client.ListSubscriptions(ctx, "p", ListOptions{})
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "projects/p/subscriptions/s1", subs[0].Name())
	assert.Equal(t, "", token)
}

func TestCreateTopic(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/v1/projects/p/topics/t", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Empty(t, body)

		w.Write([]byte(`{"name":"projects/p/topics/t"}`))
	})

	topic, err := client.CreateTopic(context.Background(), "projects/p/topics/t")
	require.NoError(t, err)
	assert.Equal(t, "projects/p/topics/t", topic.Name())
}

func TestGetTopic(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/projects/p/topics/t", r.URL.Path)
		w.Write([]byte(`{"name":"projects/p/topics/t"}`))
	})

	topic, err := client.GetTopic(context.Background(), "projects/p/topics/t")
	require.NoError(t, err)
	assert.Equal(t, "projects/p/topics/t", topic.Name())
}

func TestDeleteTopic(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v1/projects/p/topics/t", r.URL.Path)
		w.Write([]byte(`{}`))
	})

	err := client.DeleteTopic(context.Background(), "projects/p/topics/t")
	require.NoError(t, err)
}

func TestPublish(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/projects/p/topics/t:publish", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string][]map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body["messages"], 1)
		assert.Equal(t, "aGVsbG8=", body["messages"][0]["data"])

		w.Write([]byte(`{"messageIds":["123"]}`))
	})

	resp, err := client.Publish(context.Background(), "projects/p/topics/t", []Message{
		{"data": "aGVsbG8="},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"123"}, resp.MessageIDs)
}

func TestAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"code":404,"message":"Resource not found","status":"NOT_FOUND"}}`))
	})

	_, err := client.GetTopic(context.Background(), "projects/p/topics/missing")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "NOT_FOUND", apiErr.Status)
	assert.Equal(t, "Resource not found", apiErr.Message)
	assert.True(t, apiErr.IsNotFound())
	assert.False(t, apiErr.IsUnauthorized())
	assert.Contains(t, apiErr.Error(), "status 404")
}

func TestAPIErrorPlainBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("upstream unavailable"))
	})

	err := client.DeleteTopic(context.Background(), "projects/p/topics/t")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "Service Unavailable", apiErr.Message)
	assert.Equal(t, "upstream unavailable", apiErr.Body)
}

func TestRequestHeaders(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "pubsubctl", r.Header.Get("User-Agent"))
		w.Write([]byte(`{}`))
	})

	_, err := client.GetTopic(context.Background(), "projects/p/topics/t")
	require.NoError(t, err)
}

func TestContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{}`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, _, err := client.ListTopics(ctx, "p", ListOptions{})
	require.Error(t, err)
}

func TestPathHelpers(t *testing.T) {
	assert.Equal(t, "projects/p/topics/t", TopicPath("p", "t"))
	assert.Equal(t, "projects/p/subscriptions/s", SubscriptionPath("p", "s"))
}

// fakeRequester captures the call the client makes.
type fakeRequester struct {
	method string
	url    string
	body   any
}

func (f *fakeRequester) Do(ctx context.Context, method, url string, body, out any) error {
	f.method = method
	f.url = url
	f.body = body
	return nil
}

func TestWithRequester(t *testing.T) {
	fake := &fakeRequester{}
	client := NewClient(zerolog.Nop(), WithRequester(fake))

	err := client.DeleteTopic(context.Background(), "projects/p/topics/t")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, fake.method)
	assert.Equal(t, "https://pubsub.googleapis.com/v1/projects/p/topics/t", fake.url)
	assert.Nil(t, fake.body)
}
