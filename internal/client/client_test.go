package client_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/netdepviet/blogadmin/internal/client"
	internalhttp "github.com/netdepviet/blogadmin/internal/http"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *client.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return client.New(internalhttp.NewClient(server.URL))
}
