package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// ErrMalformedBody is matched by errors.Is when a 200 response carried invalid JSON.
var ErrMalformedBody = errors.New("malformed json body")

// Result is the outcome of a catalog call that returns a body. Value is only
// populated when StatusCode is 200; every other status leaves it empty.
type Result[T any] struct {
	Operation  string
	StatusCode int
	Value      T
}

// OK reports whether the catalog answered 200.
func (r Result[T]) OK() bool { return r.StatusCode == http.StatusOK }

// Err returns a *StatusError for non-200 results and nil otherwise.
func (r Result[T]) Err() error {
	return ExpectOK(r.Operation, r.StatusCode)
}

// ExpectOK turns a status code into a *StatusError unless it is 200.
func ExpectOK(op string, statusCode int) error {
	if statusCode == http.StatusOK {
		return nil
	}
	return &StatusError{Operation: op, StatusCode: statusCode}
}

// StatusError is the typed failure of a call the catalog answered with a non-200 status.
type StatusError struct {
	Operation  string
	StatusCode int
}

func (e *StatusError) Error() string {
	if e.Operation == "" {
		return fmt.Sprintf("catalog responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("%s: catalog responded with status %d", e.Operation, e.StatusCode)
}

// DecodeError reports a 200 response whose body could not be parsed.
type DecodeError struct {
	Operation string
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode response: %v", e.Operation, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrMalformedBody) match every DecodeError.
func (e *DecodeError) Is(target error) bool { return target == ErrMalformedBody }

// Document is the raw JSON body of a successful catalog response.
type Document []byte

func parseDocument(body []byte) (Document, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrMalformedBody
	}
	doc := make(Document, len(body))
	copy(doc, body)
	return doc, nil
}

// Get looks up a gjson path in the document.
func (d Document) Get(path string) gjson.Result {
	return gjson.GetBytes(d, path)
}

// Decode unmarshals the document into v.
func (d Document) Decode(v any) error {
	return json.Unmarshal(d, v)
}

// MarshalJSON emits the document unchanged.
func (d Document) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}

// TotalCount reads metadata.totalCount from a data/objects response.
func (d Document) TotalCount() (int64, bool) {
	res := d.Get("metadata.totalCount")
	if !res.Exists() {
		return 0, false
	}
	return res.Int(), true
}

// ResourceSummary is the name/type pair of a catalog resource.
type ResourceSummary struct {
	Name        string `json:"resourceName"`
	Type        string `json:"resourceTypeName"`
	Description string `json:"description,omitempty"`
}

// ResourceSummaries lists the resources of a resource list response. Entries
// without a name are skipped.
func (d Document) ResourceSummaries() []ResourceSummary {
	list := gjson.ParseBytes(d)
	if !list.IsArray() {
		return nil
	}
	out := make([]ResourceSummary, 0, len(list.Array()))
	list.ForEach(func(_, item gjson.Result) bool {
		name := item.Get("resourceName").String()
		if name == "" {
			name = item.Get("resourceIdentifier.resourceName").String()
		}
		if name == "" {
			return true
		}
		typ := item.Get("resourceTypeName").String()
		if typ == "" {
			typ = item.Get("resourceIdentifier.resourceTypeName").String()
		}
		out = append(out, ResourceSummary{
			Name:        name,
			Type:        typ,
			Description: item.Get("description").String(),
		})
		return true
	})
	return out
}
