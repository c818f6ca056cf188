package httpclient

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Options tunes the underlying transport.
type Options struct {
	Timeout time.Duration
	// InsecureSkipVerify disables TLS certificate validation. Insecure.
	InsecureSkipVerify bool
	// Logger receives resty's own messages, such as the plaintext basic-auth
	// warning. Nil discards them.
	Logger Logger
}

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a new RestyClient with the specified options.
func NewRestyClient(opts Options) *RestyClient {
	return &RestyClient{client: newRestyBaseClient(opts)}
}

// newRestyBaseClient creates a new resty.Client with the specified options.
func newRestyBaseClient(opts Options) *resty.Client {
	c := resty.New().SetLogger(restyLogger{log: opts.Logger})
	if opts.Timeout > 0 {
		c.SetTimeout(opts.Timeout)
	}
	if opts.InsecureSkipVerify {
		c.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec // opt-in, see Options
	}
	return c
}

// Do performs a single HTTP request. Non-2xx statuses are not errors; only
// transport failures are returned as err.
func (r *RestyClient) Do(ctx context.Context, req *Request) (Response, error) {
	if req == nil {
		return nil, errors.New("request is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	rr := r.client.R().SetContext(ctx)
	if len(req.Headers) > 0 {
		rr.SetHeaders(req.Headers)
	}
	if req.Auth != nil {
		rr.SetBasicAuth(req.Auth.Username, req.Auth.Password)
	}

	switch {
	case req.Multipart():
		if len(req.Form) > 0 {
			rr.SetMultipartFormData(req.Form)
		}
		if f := req.File; f != nil {
			rr.SetMultipartField(f.Param, f.FileName, f.ContentType, f.Reader)
		}
	case req.Body != nil:
		if rr.Header.Get("Content-Type") == "" {
			rr.SetHeader("Content-Type", "application/json")
		}
		rr.SetBody(req.Body)
	}

	resp, err := rr.Execute(method, req.URL)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte    { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int { return r.resp.StatusCode() }
