package catalog

import (
	"context"
	"net/url"
)

// GenericGet issues a bare authenticated GET against an absolute URL.
func (c *Client) GenericGet(ctx context.Context, rawURL string) (Result[Document], error) {
	return c.getDocument(ctx, "get", rawURL)
}

// GetResourceObjectCount queries the objects that belong to a resource.
func (c *Client) GetResourceObjectCount(ctx context.Context, name string) (Result[Document], error) {
	c.log.DebugObj("getting object count for resource", "resource", name)
	return c.GenericGet(ctx, c.baseURL+dataObjectsPath+"?q=core.resourceName:"+url.QueryEscape(name))
}

// GetCatalogObjectCount queries all objects in the catalog.
func (c *Client) GetCatalogObjectCount(ctx context.Context) (Result[Document], error) {
	return c.GenericGet(ctx, c.baseURL+dataObjectsPath)
}

// GetCatalogResourceCount queries the objects of class core.Resource.
func (c *Client) GetCatalogResourceCount(ctx context.Context) (Result[Document], error) {
	return c.GenericGet(ctx, c.baseURL+dataObjectsPath+"?q=core.allclassTypes:core.Resource")
}
