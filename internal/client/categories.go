package client

import (
	"context"
	"fmt"

	internalhttp "github.com/netdepviet/blogadmin/internal/http"
	"github.com/netdepviet/blogadmin/pkg/blogapi"
)

// CategoriesClient implements blogapi.CategoriesClient. Category responses
// are sent without an envelope.
type CategoriesClient struct {
	httpClient *internalhttp.Client
}

// List returns all categories.
func (c *CategoriesClient) List(ctx context.Context, params *blogapi.QueryParams) ([]blogapi.Category, error) {
	resp, err := c.httpClient.Get(ctx, blogapi.CategoryEndpoints.List.URI, nil, params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	categories, err := decodeBare[[]blogapi.Category](resp, "category list")
	if err != nil {
		return nil, err
	}

	return *categories, nil
}

// Get returns one category.
func (c *CategoriesClient) Get(ctx context.Context, id string) (*blogapi.Category, error) {
	resp, err := c.httpClient.Get(ctx, blogapi.CategoryEndpoints.GetByID.URI, map[string]string{"id": id}, nil)
	if err != nil {
		return nil, fmt.Errorf("getting category: %w", err)
	}

	return decodeBare[blogapi.Category](resp, "category")
}

// Create creates a category. The payload is validated before it is sent.
func (c *CategoriesClient) Create(ctx context.Context, request *blogapi.CategoryCreateRequest) (*blogapi.Category, error) {
	err := request.Validate()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, blogapi.CategoryEndpoints.Create.URI, nil, request)
	if err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}

	return decodeBare[blogapi.Category](resp, "category")
}

// Update updates a category. The name is immutable; the payload carries only
// the mutable fields.
func (c *CategoriesClient) Update(ctx context.Context, id string, request *blogapi.CategoryUpdateRequest) (*blogapi.Category, error) {
	err := request.Validate()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Patch(ctx, blogapi.CategoryEndpoints.Update.URI, map[string]string{"id": id}, request)
	if err != nil {
		return nil, fmt.Errorf("updating category: %w", err)
	}

	return decodeBare[blogapi.Category](resp, "category")
}

// Delete deletes a category.
func (c *CategoriesClient) Delete(ctx context.Context, id string) error {
	_, err := c.httpClient.Delete(ctx, blogapi.CategoryEndpoints.Delete.URI, map[string]string{"id": id})
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	return nil
}

// SetPublished toggles only the published flag of a category.
func (c *CategoriesClient) SetPublished(ctx context.Context, id string, published bool) (*blogapi.Category, error) {
	payload := &blogapi.PublishRequest{Published: published}

	resp, err := c.httpClient.Patch(ctx, blogapi.CategoryEndpoints.Published.URI, map[string]string{"id": id}, payload)
	if err != nil {
		return nil, fmt.Errorf("publishing category: %w", err)
	}

	return decodeBare[blogapi.Category](resp, "category")
}
