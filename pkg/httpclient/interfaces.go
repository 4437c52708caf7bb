package httpclient

import (
	"context"
	"net/http"
)

// Request describes a single outbound call.
type Request struct {
	Method  string
	URL     string
	Query   map[string]string
	Headers map[string]string
	// Body is JSON encoded when non-nil.
	Body any
}

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	Header() http.Header
	// URL is the URL the request was sent to, query included.
	URL() string
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Do(ctx context.Context, req *Request) (Response, error)
}
