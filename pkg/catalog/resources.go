package catalog

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/samvad-hq/catalog-client/pkg/httpclient"
)

// ListResources fetches every resource definition in the catalog.
func (c *Client) ListResources(ctx context.Context) (Result[Document], error) {
	return c.getDocument(ctx, "list resources", c.baseURL+resourcesPath)
}

// GetResource fetches the definition of one resource. includeSensitive asks
// the catalog to return sensitive connection options as well.
func (c *Client) GetResource(ctx context.Context, name string, includeSensitive bool) (Result[Document], error) {
	if strings.TrimSpace(name) == "" {
		return Result[Document]{Operation: "get resource"}, errors.New("get resource: resource name is empty")
	}
	u := c.resourceURL(name)
	if includeSensitive {
		u += "?sensitiveOptions=true"
	}
	return c.getDocument(ctx, "get resource", u)
}

// UpdateResource replaces the definition of an existing resource. Only the
// status code is returned; 200 means success.
func (c *Client) UpdateResource(ctx context.Context, name string, body any) (int, error) {
	if strings.TrimSpace(name) == "" {
		return 0, errors.New("update resource: resource name is empty")
	}
	return c.sendStatus(ctx, "update resource", &httpclient.Request{
		Method:  http.MethodPut,
		URL:     c.resourceURL(name),
		Headers: jsonBodyHeaders,
		Body:    body,
	})
}

// CreateResource creates a resource from its definition. The name is only
// used for logging; the catalog reads it from the body.
func (c *Client) CreateResource(ctx context.Context, name string, body any) (int, error) {
	c.log.InfoObj("creating resource", "resource", name)
	return c.sendStatus(ctx, "create resource", &httpclient.Request{
		Method:  http.MethodPost,
		URL:     c.baseURL + resourcesPath,
		Headers: jsonBodyHeaders,
		Body:    body,
	})
}

type loadRequest struct {
	ResourceName string `json:"resourceName"`
}

// ExecuteResourceLoad starts a scan of the resource and returns the job
// description on 200.
func (c *Client) ExecuteResourceLoad(ctx context.Context, name string) (Result[Document], error) {
	const op = "execute resource load"
	if strings.TrimSpace(name) == "" {
		return Result[Document]{Operation: op}, errors.New(op + ": resource name is empty")
	}
	resp, err := c.send(ctx, op, &httpclient.Request{
		Method:  http.MethodPost,
		URL:     c.baseURL + loadJobsPath,
		Headers: jsonBodyHeaders,
		Body:    loadRequest{ResourceName: name},
	})
	if err != nil {
		return Result[Document]{Operation: op}, err
	}
	return documentResult(op, resp)
}
