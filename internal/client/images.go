package client

import (
	"context"
	"fmt"
	"net/http"

	internalhttp "github.com/netdepviet/blogadmin/internal/http"
	"github.com/netdepviet/blogadmin/pkg/blogapi"
)

// ImagesClient implements blogapi.ImagesClient.
type ImagesClient struct {
	httpClient *internalhttp.Client
}

// List returns the image library.
func (c *ImagesClient) List(ctx context.Context) ([]blogapi.Image, error) {
	resp, err := c.httpClient.Get(ctx, blogapi.ImageEndpoints.List.URI, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}

	images, err := decodeBare[[]blogapi.Image](resp, "image list")
	if err != nil {
		return nil, err
	}

	return *images, nil
}

// Upload sends files to the image library as one multipart request. Progress
// is reported as a 0-100 percentage while the body streams out.
func (c *ImagesClient) Upload(ctx context.Context, files []blogapi.UploadFile, progress blogapi.ProgressFunc) ([]blogapi.FileMeta, error) {
	req := &internalhttp.Request{
		Method: http.MethodPost,
		Path:   blogapi.ImageEndpoints.Upload.URI,
	}

	resp, err := c.httpClient.Upload(ctx, req, files, progress)
	if err != nil {
		return nil, fmt.Errorf("uploading files: %w", err)
	}

	metas, err := decodeBare[[]blogapi.FileMeta](resp, "upload")
	if err != nil {
		return nil, err
	}

	return *metas, nil
}
