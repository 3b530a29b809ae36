// Package blogapi defines the types, endpoint tables, error taxonomy and
// caching/search primitives of the blog admin API client.
//
// The package is organized around three layers. Endpoint tables
// (PostEndpoints, CategoryEndpoints, ImageEndpoints) name every operation of
// the remote service and drive both request routing and cache keying. The
// Client interface exposes the raw resource operations. Store layers read
// caching, request coalescing and mutation-driven invalidation on top of a
// Client, mirroring how the admin UI consumes the API.
//
// Failures normalize into exactly two shapes: APIError for single-message
// failures and ValidationError for per-field validation failures. See
// ParseErrorBody.
package blogapi
