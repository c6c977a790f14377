package pubsub

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the public Pub/Sub service endpoint.
	DefaultBaseURL = "https://pubsub.googleapis.com"

	// DefaultAPIVersion is the API version used in request URLs.
	DefaultAPIVersion = "v1"

	// EmulatorHostEnv names the environment variable that designates a
	// local Pub/Sub emulator in host:port form (no scheme). The library
	// never reads it itself; the calling application reads it once and
	// injects the value via WithEmulatorHost.
	EmulatorHostEnv = "PUBSUB_EMULATOR_HOST"
)

// OAuth scopes required for authenticating as a Pub/Sub consumer.
const (
	ScopePubSub        = "https://www.googleapis.com/auth/pubsub"
	ScopeCloudPlatform = "https://www.googleapis.com/auth/cloud-platform"
)

// Client is a connection to Google Cloud Pub/Sub via the JSON REST API.
// Configuration is fixed at construction; every call is independent and
// stateless apart from caller-managed page tokens.
type Client struct {
	baseURL    string
	apiVersion string
	requester  Requester
	logger     zerolog.Logger
}

// NewClient creates a new Pub/Sub client. With no options it targets
// the public endpoint with an unauthenticated HTTP client; supply an
// oauth2-backed client via WithHTTPClient for production use.
func NewClient(logger zerolog.Logger, opts ...Option) *Client {
	options := defaultClientOptions()
	for _, opt := range opts {
		opt(&options)
	}

	requester := options.requester
	if requester == nil {
		httpClient := options.httpClient
		if httpClient == nil {
			httpClient = &http.Client{Timeout: options.timeout}
		}
		requester = &jsonRequester{
			httpClient: httpClient,
			userAgent:  options.userAgent,
			logger:     logger,
		}
	}

	return &Client{
		baseURL:    strings.TrimRight(ResolveBaseURL(options.baseURL, options.emulatorHost), "/"),
		apiVersion: options.apiVersion,
		requester:  requester,
		logger:     logger,
	}
}

// ResolveBaseURL determines the API base URL. An explicit URL wins over
// an emulator host, which wins over the public default. An emulator
// host (host:port) becomes http://<host>.
func ResolveBaseURL(explicit, emulatorHost string) string {
	if explicit != "" {
		return explicit
	}
	if emulatorHost != "" {
		return "http://" + emulatorHost
	}
	return DefaultBaseURL
}

// BuildURL assembles an API URL from its components. path must begin
// with "/". An empty query is omitted entirely.
func BuildURL(base, version, path string, query url.Values) string {
	requestURL := strings.TrimRight(base, "/") + "/" + version + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}
	return requestURL
}

// BuildAPIURL assembles an API URL using the client's stored base URL
// and version. Typically you shouldn't need to call this directly.
func (c *Client) BuildAPIURL(path string, query url.Values) string {
	return BuildURL(c.baseURL, c.apiVersion, path, query)
}

// BaseURL returns the resolved API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIVersion returns the API version used in request URLs.
func (c *Client) APIVersion() string {
	return c.apiVersion
}
