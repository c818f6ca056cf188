package httpclient

import (
	"context"
	"io"
)

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Do(ctx context.Context, req *Request) (Response, error)
}

// BasicAuth holds HTTP Basic credentials.
type BasicAuth struct {
	Username string
	Password string
}

// FilePart is a file attached to a multipart request.
type FilePart struct {
	Param       string
	FileName    string
	ContentType string
	Reader      io.Reader
}

// Request describes a single HTTP call. URL may already carry a query string.
// Body is sent as JSON; Form and File switch the request to multipart/form-data.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Auth    *BasicAuth
	Body    any
	Form    map[string]string
	File    *FilePart
}

// Multipart reports whether the request is sent as multipart/form-data.
func (r *Request) Multipart() bool {
	return r.File != nil || len(r.Form) > 0
}
