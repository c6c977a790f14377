package pubsub

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL      string
	emulatorHost string
	apiVersion   string
	httpClient   *http.Client
	requester    Requester
	timeout      time.Duration
	userAgent    string
}

func defaultClientOptions() clientOptions {
	return clientOptions{
		apiVersion: DefaultAPIVersion,
		timeout:    30 * time.Second,
		userAgent:  "pubsubctl",
	}
}

// WithBaseURL sets an explicit API base URL. It overrides both the
// emulator host and the public default.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithEmulatorHost targets a local emulator at host:port. Ignored when
// an explicit base URL is set.
func WithEmulatorHost(host string) Option {
	return func(o *clientOptions) {
		o.emulatorHost = host
	}
}

// WithAPIVersion overrides the API version used in request URLs.
func WithAPIVersion(version string) Option {
	return func(o *clientOptions) {
		if version != "" {
			o.apiVersion = version
		}
	}
}

// WithHTTPClient supplies the HTTP client used for requests. Pass an
// oauth2-backed client to attach credentials.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}

// WithRequester replaces the request primitive entirely. Takes
// precedence over WithHTTPClient.
func WithRequester(requester Requester) Option {
	return func(o *clientOptions) {
		o.requester = requester
	}
}

// WithTimeout sets the default HTTP client timeout. Ignored when a
// custom HTTP client or Requester is supplied.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}
