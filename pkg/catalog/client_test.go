package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvad-hq/catalog-client/pkg/httpclient"
)

// fakeResponse counts body reads so tests can prove a body was never decoded.
type fakeResponse struct {
	status    int
	body      []byte
	bodyReads *int
}

func (f fakeResponse) Body() []byte {
	if f.bodyReads != nil {
		*f.bodyReads++
	}
	return f.body
}
func (f fakeResponse) StatusCode() int { return f.status }

// fakeTransport records requests and replays one canned response.
type fakeTransport struct {
	mu        sync.Mutex
	requests  []*httpclient.Request
	status    int
	body      []byte
	err       error
	bodyReads int
}

func (f *fakeTransport) Do(_ context.Context, req *httpclient.Request) (httpclient.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return fakeResponse{status: f.status, body: f.body, bodyReads: &f.bodyReads}, nil
}

func (f *fakeTransport) last(t *testing.T) *httpclient.Request {
	t.Helper()
	require.NotEmpty(t, f.requests, "no request recorded")
	return f.requests[len(f.requests)-1]
}

func newFakeClient(t *testing.T, transport *fakeTransport) *Client {
	t.Helper()
	c, err := New("https://h:9008/", Credentials{Username: "admin", Password: "secret"}, Options{HTTPClient: transport})
	require.NoError(t, err)
	return c
}

type documentCall struct {
	name    string
	method  string
	url     string
	call    func(context.Context, *Client) (Result[Document], error)
	hasBody bool
}

func documentCalls() []documentCall {
	return []documentCall{
		{
			name:   "list resources",
			method: http.MethodGet,
			url:    "https://h:9008/access/1/catalog/resources/",
			call:   func(ctx context.Context, c *Client) (Result[Document], error) { return c.ListResources(ctx) },
		},
		{
			name:   "get resource",
			method: http.MethodGet,
			url:    "https://h:9008/access/1/catalog/resources/R1",
			call: func(ctx context.Context, c *Client) (Result[Document], error) {
				return c.GetResource(ctx, "R1", false)
			},
		},
		{
			name:    "execute resource load",
			method:  http.MethodPost,
			url:     "https://h:9008/access/2/catalog/resources/jobs/loads",
			hasBody: true,
			call: func(ctx context.Context, c *Client) (Result[Document], error) {
				return c.ExecuteResourceLoad(ctx, "R1")
			},
		},
		{
			name:   "resource object count",
			method: http.MethodGet,
			url:    "https://h:9008/access/2/catalog/data/objects?q=core.resourceName:R1",
			call: func(ctx context.Context, c *Client) (Result[Document], error) {
				return c.GetResourceObjectCount(ctx, "R1")
			},
		},
		{
			name:   "catalog object count",
			method: http.MethodGet,
			url:    "https://h:9008/access/2/catalog/data/objects",
			call: func(ctx context.Context, c *Client) (Result[Document], error) {
				return c.GetCatalogObjectCount(ctx)
			},
		},
		{
			name:   "catalog resource count",
			method: http.MethodGet,
			url:    "https://h:9008/access/2/catalog/data/objects?q=core.allclassTypes:core.Resource",
			call: func(ctx context.Context, c *Client) (Result[Document], error) {
				return c.GetCatalogResourceCount(ctx)
			},
		},
		{
			name:   "generic get",
			method: http.MethodGet,
			url:    "https://other:1/anything",
			call: func(ctx context.Context, c *Client) (Result[Document], error) {
				return c.GenericGet(ctx, "https://other:1/anything")
			},
		},
	}
}

func TestDocumentCallsReturnBodyOn200(t *testing.T) {
	for _, tc := range documentCalls() {
		t.Run(tc.name, func(t *testing.T) {
			transport := &fakeTransport{status: http.StatusOK, body: []byte(`{"metadata":{"totalCount":42},"items":[]}`)}
			c := newFakeClient(t, transport)

			res, err := tc.call(context.Background(), c)
			require.NoError(t, err)
			assert.True(t, res.OK())
			assert.NoError(t, res.Err())
			assert.Equal(t, http.StatusOK, res.StatusCode)
			assert.JSONEq(t, `{"metadata":{"totalCount":42},"items":[]}`, string(res.Value))

			req := transport.last(t)
			assert.Equal(t, tc.method, req.Method)
			assert.Equal(t, tc.url, req.URL)
			assert.Equal(t, "application/json", req.Headers["Accept"])
			if tc.hasBody {
				assert.Equal(t, "application/json", req.Headers["Content-Type"])
			}
		})
	}
}

func TestDocumentCallsDiscardBodyOnNon200(t *testing.T) {
	for _, status := range []int{http.StatusCreated, http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound, http.StatusInternalServerError} {
		for _, tc := range documentCalls() {
			t.Run(tc.name, func(t *testing.T) {
				transport := &fakeTransport{status: status, body: []byte(`{"error":"boom"}`)}
				c := newFakeClient(t, transport)

				res, err := tc.call(context.Background(), c)
				require.NoError(t, err)
				assert.False(t, res.OK())
				assert.Equal(t, status, res.StatusCode)
				assert.Nil(t, res.Value)
				assert.Zero(t, transport.bodyReads, "body must not be read on non-200")

				var statusErr *StatusError
				require.ErrorAs(t, res.Err(), &statusErr)
				assert.Equal(t, status, statusErr.StatusCode)
			})
		}
	}
}

func TestDocumentCallsMalformedJSONOn200(t *testing.T) {
	transport := &fakeTransport{status: http.StatusOK, body: []byte(`{not json`)}
	c := newFakeClient(t, transport)

	res, err := c.ListResources(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedBody))

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "list resources", decodeErr.Operation)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Nil(t, res.Value)
}

func TestTransportErrorsPropagate(t *testing.T) {
	boom := errors.New("connection refused")
	transport := &fakeTransport{err: boom}
	c := newFakeClient(t, transport)

	_, err := c.GetCatalogObjectCount(context.Background())
	require.ErrorIs(t, err, boom)

	status, err := c.UpdateResource(context.Background(), "R1", map[string]any{})
	require.ErrorIs(t, err, boom)
	assert.Zero(t, status)
}

func TestWriteCallsReturnStatusOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lineage.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n"), 0o644))

	calls := map[string]func(context.Context, *Client) (int, error){
		"update": func(ctx context.Context, c *Client) (int, error) {
			return c.UpdateResource(ctx, "R1", map[string]any{"a": 1})
		},
		"create": func(ctx context.Context, c *Client) (int, error) {
			return c.CreateResource(ctx, "R1", map[string]any{"a": 1})
		},
		"upload": func(ctx context.Context, c *Client) (int, error) {
			return c.UploadResourceFile(ctx, "R1", "lineage.csv", path, "LineageScanner")
		},
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			for _, status := range []int{http.StatusOK, http.StatusConflict} {
				transport := &fakeTransport{status: status, body: []byte(`{not json even on 200`)}
				c := newFakeClient(t, transport)

				got, err := call(context.Background(), c)
				require.NoError(t, err)
				assert.Equal(t, status, got)
				assert.Zero(t, transport.bodyReads, "write calls must not read the body")
			}
		})
	}
}

func TestUpdateAndCreateRequests(t *testing.T) {
	transport := &fakeTransport{status: http.StatusOK}
	c := newFakeClient(t, transport)
	body := map[string]any{"resourceIdentifier": map[string]any{"resourceName": "R1"}}

	_, err := c.UpdateResource(context.Background(), "R1", body)
	require.NoError(t, err)
	req := transport.last(t)
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "https://h:9008/access/1/catalog/resources/R1", req.URL)
	assert.Equal(t, body, req.Body)
	assert.Equal(t, "application/json", req.Headers["Content-Type"])

	_, err = c.CreateResource(context.Background(), "R1", body)
	require.NoError(t, err)
	req = transport.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "https://h:9008/access/1/catalog/resources/", req.URL)
	assert.Equal(t, body, req.Body)
}

func TestExecuteResourceLoadBody(t *testing.T) {
	transport := &fakeTransport{status: http.StatusOK, body: []byte(`{"jobId":"j1"}`)}
	c := newFakeClient(t, transport)

	res, err := c.ExecuteResourceLoad(context.Background(), "R1")
	require.NoError(t, err)
	assert.Equal(t, "j1", res.Value.Get("jobId").String())

	raw, err := json.Marshal(transport.last(t).Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"resourceName":"R1"}`, string(raw))
}

func TestGetResourceSensitiveOptions(t *testing.T) {
	transport := &fakeTransport{status: http.StatusOK, body: []byte(`{}`)}
	c := newFakeClient(t, transport)

	_, err := c.GetResource(context.Background(), "R1", true)
	require.NoError(t, err)
	assert.Equal(t, "https://h:9008/access/1/catalog/resources/R1?sensitiveOptions=true", transport.last(t).URL)

	_, err = c.GetResource(context.Background(), "R1", false)
	require.NoError(t, err)
	assert.Equal(t, "https://h:9008/access/1/catalog/resources/R1", transport.last(t).URL)
}

func TestBasicAuthAttachedToEveryCall(t *testing.T) {
	transport := &fakeTransport{status: http.StatusOK, body: []byte(`{}`)}
	c := newFakeClient(t, transport)
	ctx := context.Background()

	for _, tc := range documentCalls() {
		_, err := tc.call(ctx, c)
		require.NoError(t, err)
	}
	_, _ = c.UpdateResource(ctx, "R1", map[string]any{})
	_, _ = c.CreateResource(ctx, "R1", map[string]any{})

	require.Len(t, transport.requests, len(documentCalls())+2)
	for _, req := range transport.requests {
		require.NotNil(t, req.Auth)
		assert.Equal(t, httpclient.BasicAuth{Username: "admin", Password: "secret"}, *req.Auth)
	}
}

func TestEmptyResourceNameRejected(t *testing.T) {
	transport := &fakeTransport{status: http.StatusOK}
	c := newFakeClient(t, transport)

	_, err := c.GetResource(context.Background(), " ", false)
	assert.Error(t, err)
	_, err = c.UpdateResource(context.Background(), "", nil)
	assert.Error(t, err)
	_, err = c.ExecuteResourceLoad(context.Background(), "")
	assert.Error(t, err)
	assert.Empty(t, transport.requests)
}

func TestNewValidatesURL(t *testing.T) {
	_, err := New("", Credentials{}, Options{})
	assert.Error(t, err)
	_, err = New("h:9008", Credentials{}, Options{})
	assert.Error(t, err)

	c, err := New("https://h:9008//", Credentials{}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "https://h:9008", c.BaseURL())
}

func TestClientAgainstServer(t *testing.T) {
	var (
		mu    sync.Mutex
		seen  []string
		users []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, _ := r.BasicAuth()
		mu.Lock()
		seen = append(seen, r.Method+" "+r.URL.Path+" q="+r.URL.Query().Get("q"))
		users = append(users, user+":"+pass)
		mu.Unlock()

		switch {
		case r.URL.Path == "/access/2/catalog/data/objects":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"metadata":{"totalCount":7},"items":[]}`))
		case r.URL.Path == "/access/1/catalog/resources/missing":
			http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
		case r.URL.Path == "/access/1/catalog/resources/R1" && r.Method == http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			if !json.Valid(body) {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusTeapot)
		}
	}))
	defer srv.Close()

	c, err := New(srv.URL, Credentials{Username: "admin", Password: "secret"}, Options{VerifyTLS: true})
	require.NoError(t, err)
	ctx := context.Background()

	res, err := c.GetResourceObjectCount(ctx, "R1")
	require.NoError(t, err)
	total, ok := res.Value.TotalCount()
	require.True(t, ok)
	assert.EqualValues(t, 7, total)

	missing, err := c.GetResource(ctx, "missing", false)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
	assert.Nil(t, missing.Value)

	status, err := c.UpdateResource(ctx, "R1", json.RawMessage(`{"resourceIdentifier":{"resourceName":"R1"}}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)

	assert.Equal(t, []string{
		"GET /access/2/catalog/data/objects q=core.resourceName:R1",
		"GET /access/1/catalog/resources/missing q=",
		"PUT /access/1/catalog/resources/R1 q=",
	}, seen)
	for _, u := range users {
		assert.Equal(t, "admin:secret", u)
	}
}

type logEntry struct {
	level, msg string
	fields     map[string]any
}

type recordingLogger struct {
	entries []logEntry
}

func (r *recordingLogger) add(level, msg string, obj interface{}) {
	fields, _ := obj.(map[string]any)
	r.entries = append(r.entries, logEntry{level: level, msg: msg, fields: fields})
}

func (r *recordingLogger) DebugObj(msg, _ string, obj interface{}) { r.add("debug", msg, obj) }
func (r *recordingLogger) InfoObj(msg, _ string, obj interface{})  { r.add("info", msg, obj) }
func (r *recordingLogger) WarnObj(msg, _ string, obj interface{})  { r.add("warn", msg, obj) }
func (r *recordingLogger) ErrorObj(msg, _ string, obj interface{}) { r.add("error", msg, obj) }

func TestSendLogsShareRequestID(t *testing.T) {
	rec := &recordingLogger{}
	transport := &fakeTransport{status: http.StatusNotFound}
	c, err := New("https://h:9008", Credentials{Username: "admin"}, Options{HTTPClient: transport, Logger: rec})
	require.NoError(t, err)

	_, err = c.GetResource(context.Background(), "R1", false)
	require.NoError(t, err)
	_, err = c.GetResource(context.Background(), "R2", false)
	require.NoError(t, err)

	require.Len(t, rec.entries, 4)
	assert.Equal(t, "debug", rec.entries[0].level)
	assert.Equal(t, "warn", rec.entries[1].level)
	assert.Equal(t, http.StatusNotFound, rec.entries[1].fields["status"])

	first := rec.entries[0].fields["request_id"]
	assert.NotEmpty(t, first)
	assert.Equal(t, first, rec.entries[1].fields["request_id"])
	assert.NotEqual(t, first, rec.entries[2].fields["request_id"])
}

func TestRequestTimeoutIsTransportError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		select {
		case <-release:
		case <-time.After(2 * time.Second):
		}
		_, _ = w.Write([]byte(`{"metadata":{"totalCount":1}}`))
	}))
	defer srv.Close()
	defer close(release)

	c, err := New(srv.URL, Credentials{Username: "admin", Password: "secret"}, Options{Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	res, err := c.GetCatalogObjectCount(context.Background())
	require.Error(t, err)
	assert.Zero(t, res.StatusCode)
	assert.Nil(t, res.Value)
}

func TestPlaintextAuthWarningGoesToLogger(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	rec := &recordingLogger{}
	c, err := New(srv.URL, Credentials{Username: "admin", Password: "secret"}, Options{Logger: rec})
	require.NoError(t, err)

	_, err = c.ListResources(context.Background())
	require.NoError(t, err)

	var warnings []string
	for _, e := range rec.entries {
		if e.level == "warn" {
			warnings = append(warnings, e.msg)
		}
	}
	assert.Contains(t, warnings, "http client warning")
}
