// Package blogclient is the public entry point for creating blog admin API
// clients.
//
// Basic usage:
//
//	c, err := blogclient.New(&blogapi.Config{
//		APIEndpoint: "https://api.example.com",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	posts, err := c.Posts().List(ctx, nil)
//
// NewStore wraps the same client in a caching store that mirrors how the
// admin UI consumes the API: reads are cached and coalesced, mutations
// invalidate exactly the reads they made stale.
package blogclient
