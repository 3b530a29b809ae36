package client

import (
	"context"
	"fmt"

	internalhttp "github.com/netdepviet/blogadmin/internal/http"
	"github.com/netdepviet/blogadmin/pkg/blogapi"
)

// PostsClient implements blogapi.PostsClient.
type PostsClient struct {
	httpClient *internalhttp.Client
}

// List returns the enveloped post list.
func (c *PostsClient) List(ctx context.Context, params *blogapi.QueryParams) (*blogapi.PostList, error) {
	resp, err := c.httpClient.Get(ctx, blogapi.PostEndpoints.List.URI, nil, params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	return decodeEnveloped[[]blogapi.Post](resp, "post list")
}

// ListByCategory returns the posts of one category. The server sends this
// list without an envelope.
func (c *PostsClient) ListByCategory(ctx context.Context, categoryID string, params *blogapi.QueryParams) ([]blogapi.Post, error) {
	pathParams := map[string]string{"categoryId": categoryID}

	resp, err := c.httpClient.Get(ctx, blogapi.PostEndpoints.ListByCategory.URI, pathParams, params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing posts by category: %w", err)
	}

	posts, err := decodeBare[[]blogapi.Post](resp, "post list")
	if err != nil {
		return nil, err
	}

	return *posts, nil
}

// Get returns one enveloped post.
func (c *PostsClient) Get(ctx context.Context, id string) (*blogapi.PostDetail, error) {
	resp, err := c.httpClient.Get(ctx, blogapi.PostEndpoints.GetByID.URI, map[string]string{"id": id}, nil)
	if err != nil {
		return nil, fmt.Errorf("getting post: %w", err)
	}

	return decodeEnveloped[blogapi.Post](resp, "post")
}

// Create creates a post. The payload is validated before it is sent.
func (c *PostsClient) Create(ctx context.Context, request *blogapi.PostCreateRequest) (*blogapi.Post, error) {
	err := request.Validate()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, blogapi.PostEndpoints.Create.URI, nil, request)
	if err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	return decodeBare[blogapi.Post](resp, "post")
}

// Update updates a post. The payload is validated before it is sent.
func (c *PostsClient) Update(ctx context.Context, id string, request *blogapi.PostUpdateRequest) (*blogapi.Post, error) {
	err := request.Validate()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Patch(ctx, blogapi.PostEndpoints.Update.URI, map[string]string{"id": id}, request)
	if err != nil {
		return nil, fmt.Errorf("updating post: %w", err)
	}

	return decodeBare[blogapi.Post](resp, "post")
}

// Delete deletes a post.
func (c *PostsClient) Delete(ctx context.Context, id string) error {
	_, err := c.httpClient.Delete(ctx, blogapi.PostEndpoints.Delete.URI, map[string]string{"id": id})
	if err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}

	return nil
}

// SetPublished toggles only the published flag of a post.
func (c *PostsClient) SetPublished(ctx context.Context, id string, published bool) (*blogapi.Post, error) {
	payload := &blogapi.PublishRequest{Published: published}

	resp, err := c.httpClient.Patch(ctx, blogapi.PostEndpoints.Published.URI, map[string]string{"id": id}, payload)
	if err != nil {
		return nil, fmt.Errorf("publishing post: %w", err)
	}

	return decodeBare[blogapi.Post](resp, "post")
}
