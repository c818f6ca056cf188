// Package catalog wraps the data catalog REST API: resource definitions,
// lineage file uploads, load jobs and object counts. Each call is a single
// request/response with HTTP Basic authentication; nothing is cached between calls.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/samvad-hq/catalog-client/pkg/httpclient"
)

const (
	resourcesPath   = "/access/1/catalog/resources/"
	loadJobsPath    = "/access/2/catalog/resources/jobs/loads"
	dataObjectsPath = "/access/2/catalog/data/objects"

	defaultTimeout = 120 * time.Second
)

var (
	jsonHeaders     = map[string]string{"Accept": "application/json"}
	jsonBodyHeaders = map[string]string{"Accept": "application/json", "Content-Type": "application/json"}
	uploadHeaders   = map[string]string{"Accept": "*/*"}
)

// Credentials is the basic-auth pair attached to every call.
type Credentials struct {
	Username string
	Password string
}

// Options configures a Client.
type Options struct {
	// Timeout bounds each request. Zero means 120s.
	Timeout time.Duration
	// VerifyTLS enables certificate validation. The zero value leaves it off,
	// matching how catalog installs are usually reached; that default is insecure.
	VerifyTLS bool
	// HTTPClient overrides the transport; Timeout and VerifyTLS are ignored when set.
	HTTPClient httpclient.Client
	Logger     Logger
}

// Client issues catalog API calls against one catalog base URL.
type Client struct {
	baseURL string
	creds   Credentials
	http    httpclient.Client
	log     Logger
}

// New builds a client for the catalog at baseURL. The URL should stop at the
// port: no /ldmadmin, /ldmcatalog or /v2 segment, since the API version is
// chosen per call.
func New(baseURL string, creds Credentials, opts Options) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("catalog url is empty")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse catalog url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("catalog url %q must include scheme and host", baseURL)
	}

	log := ensureLogger(opts.Logger)
	transport := opts.HTTPClient
	if transport == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		transport = httpclient.NewRestyClient(httpclient.Options{
			Timeout:            timeout,
			InsecureSkipVerify: !opts.VerifyTLS,
			Logger:             log,
		})
	}

	return &Client{
		baseURL: baseURL,
		creds:   creds,
		http:    transport,
		log:     log,
	}, nil
}

// BaseURL returns the catalog URL calls are made against.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) auth() *httpclient.BasicAuth {
	return &httpclient.BasicAuth{Username: c.creds.Username, Password: c.creds.Password}
}

func (c *Client) resourceURL(name string) string {
	return c.baseURL + resourcesPath + url.PathEscape(name)
}

// send performs the request and logs around it. Only transport failures are
// returned as errors. Log lines of one call share a request_id.
func (c *Client) send(ctx context.Context, op string, req *httpclient.Request) (httpclient.Response, error) {
	req.Auth = c.auth()
	requestID := uuid.NewString()
	c.log.DebugObj("catalog request", "catalog_request", map[string]any{
		"request_id": requestID,
		"operation":  op,
		"method":     req.Method,
		"url":        req.URL,
		"user":       c.creds.Username,
	})

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		c.log.ErrorObj("catalog request failed", "catalog_error", map[string]any{
			"request_id": requestID,
			"operation":  op,
			"url":        req.URL,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	fields := map[string]any{
		"request_id": requestID,
		"operation":  op,
		"status":     resp.StatusCode(),
	}
	if resp.StatusCode() == http.StatusOK {
		c.log.InfoObj("catalog response", "catalog_response", fields)
	} else {
		c.log.WarnObj("catalog response not ok", "catalog_response", fields)
	}
	return resp, nil
}

// getDocument is the shared GET contract: 200 decodes the body, any other
// status discards it.
func (c *Client) getDocument(ctx context.Context, op, rawURL string) (Result[Document], error) {
	resp, err := c.send(ctx, op, &httpclient.Request{
		Method:  http.MethodGet,
		URL:     rawURL,
		Headers: jsonHeaders,
	})
	if err != nil {
		return Result[Document]{Operation: op}, err
	}
	return documentResult(op, resp)
}

func documentResult(op string, resp httpclient.Response) (Result[Document], error) {
	res := Result[Document]{Operation: op, StatusCode: resp.StatusCode()}
	if !res.OK() {
		return res, nil
	}
	doc, err := parseDocument(resp.Body())
	if err != nil {
		return res, &DecodeError{Operation: op, Err: err}
	}
	res.Value = doc
	return res, nil
}

// sendStatus performs a call whose response body is never read.
func (c *Client) sendStatus(ctx context.Context, op string, req *httpclient.Request) (int, error) {
	resp, err := c.send(ctx, op, req)
	if err != nil {
		return 0, err
	}
	return resp.StatusCode(), nil
}
