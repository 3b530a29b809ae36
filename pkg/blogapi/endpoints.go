package blogapi

import (
	"fmt"
	"net/http"
	"strings"
)

// Endpoint binds an HTTP method to a URI template. Templates may contain
// named placeholders (e.g. "posts/:id") that Expand substitutes.
type Endpoint struct {
	Method string
	URI    string
}

// Key returns the operation identity used for cache keying. Two endpoints
// with the same method and template are the same operation.
func (e Endpoint) Key() string {
	return e.Method + ":" + e.URI
}

// Expand substitutes every named placeholder in the URI template with the
// caller-supplied value. A placeholder without a value is an error rather
// than a request with a literal ":id" in the path.
func (e Endpoint) Expand(params map[string]string) (string, error) {
	if !strings.Contains(e.URI, ":") {
		return e.URI, nil
	}

	segments := strings.Split(e.URI, "/")
	for i, segment := range segments {
		if !strings.HasPrefix(segment, ":") {
			continue
		}

		name := segment[1:]

		value, ok := params[name]
		if !ok || value == "" {
			return "", fmt.Errorf("%w: %s in %s", ErrMissingPathParam, name, e.URI)
		}

		segments[i] = value
	}

	return strings.Join(segments, "/"), nil
}

// CategoryEndpoints lists the category operations of the remote service.
var CategoryEndpoints = struct {
	List      Endpoint
	GetByID   Endpoint
	Create    Endpoint
	Update    Endpoint
	Delete    Endpoint
	Published Endpoint
}{
	List:      Endpoint{http.MethodGet, "categories"},
	GetByID:   Endpoint{http.MethodGet, "categories/:id"},
	Create:    Endpoint{http.MethodPost, "categories"},
	Update:    Endpoint{http.MethodPatch, "categories/:id"},
	Delete:    Endpoint{http.MethodDelete, "categories/:id"},
	Published: Endpoint{http.MethodPatch, "categories/:id"},
}

// PostEndpoints lists the post operations of the remote service.
var PostEndpoints = struct {
	List           Endpoint
	ListByCategory Endpoint
	GetByID        Endpoint
	Create         Endpoint
	Update         Endpoint
	Delete         Endpoint
	Published      Endpoint
}{
	List:           Endpoint{http.MethodGet, "posts"},
	ListByCategory: Endpoint{http.MethodGet, "posts/list-by-category/:categoryId"},
	GetByID:        Endpoint{http.MethodGet, "posts/:id"},
	Create:         Endpoint{http.MethodPost, "posts"},
	Update:         Endpoint{http.MethodPatch, "posts/:id"},
	Delete:         Endpoint{http.MethodDelete, "posts/:id"},
	Published:      Endpoint{http.MethodPatch, "posts/:id"},
}

// ImageEndpoints lists the image library operations. Uploads and the image
// list live under the posts resource on the server.
var ImageEndpoints = struct {
	Upload Endpoint
	List   Endpoint
}{
	Upload: Endpoint{http.MethodPost, "posts/upload"},
	List:   Endpoint{http.MethodGet, "posts/images"},
}
