// Package client implements the per-resource API clients on top of the
// shared HTTP pipeline.
package client

import (
	"encoding/json"
	"fmt"

	internalhttp "github.com/netdepviet/blogadmin/internal/http"
	"github.com/netdepviet/blogadmin/pkg/blogapi"
)

// Client provides access to the blog admin API. It implements
// blogapi.Client.
type Client struct {
	httpClient *internalhttp.Client

	posts      *PostsClient
	categories *CategoriesClient
	images     *ImagesClient
}

// New creates an API client over the given pipeline.
func New(httpClient *internalhttp.Client) *Client {
	return &Client{
		httpClient: httpClient,
		posts:      &PostsClient{httpClient: httpClient},
		categories: &CategoriesClient{httpClient: httpClient},
		images:     &ImagesClient{httpClient: httpClient},
	}
}

// Posts returns the posts client.
func (c *Client) Posts() blogapi.PostsClient {
	return c.posts
}

// Categories returns the categories client.
func (c *Client) Categories() blogapi.CategoriesClient {
	return c.categories
}

// Images returns the images client.
func (c *Client) Images() blogapi.ImagesClient {
	return c.images
}

// decodeBare parses a response the server sends without an envelope.
func decodeBare[T any](resp *internalhttp.Response, what string) (*T, error) {
	var result T

	err := json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", what, err)
	}

	return &result, nil
}

// decodeEnveloped parses a response the server wraps in the standard
// envelope.
func decodeEnveloped[T any](resp *internalhttp.Response, what string) (*blogapi.Envelope[T], error) {
	var envelope blogapi.Envelope[T]

	err := json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", what, err)
	}

	return &envelope, nil
}
