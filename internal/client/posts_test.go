package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netdepviet/blogadmin/pkg/blogapi"
)

func TestPostsList(t *testing.T) {
	t.Parallel()

	api := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/posts", request.URL.Path)
		assert.Equal(t, "2", request.URL.Query().Get("page"))

		_, _ = writer.Write([]byte(`{
			"message": "OK",
			"statusCode": 200,
			"data": [
				{"id": "p-1", "title": "First", "slug": "first"},
				{"id": "p-2", "title": "Second", "slug": "second"}
			]
		}`))
	})

	list, err := api.Posts().List(context.Background(), blogapi.NewQueryParams().WithPage(2))
	require.NoError(t, err)
	require.Len(t, list.Data, 2)
	assert.Equal(t, "First", list.Data[0].Title)
	assert.Equal(t, 200, list.StatusCode)
}

func TestPostsListByCategory(t *testing.T) {
	t.Parallel()

	api := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/posts/list-by-category/c-1", request.URL.Path)

		_, _ = writer.Write([]byte(`[{"id": "p-1", "title": "First", "categoryId": "c-1"}]`))
	})

	posts, err := api.Posts().ListByCategory(context.Background(), "c-1", nil)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "c-1", posts[0].CategoryID)
}

func TestPostsGet(t *testing.T) {
	t.Parallel()

	api := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/posts/p-1", request.URL.Path)

		_, _ = writer.Write([]byte(`{
			"message": "OK",
			"statusCode": 200,
			"data": {"id": "p-1", "title": "First", "content": "body"}
		}`))
	})

	detail, err := api.Posts().Get(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, "p-1", detail.Data.ID)
	assert.Equal(t, "body", detail.Data.Content)
}

func TestPostsCreate(t *testing.T) {
	t.Parallel()
	t.Run("sends the validated payload", func(t *testing.T) {
		t.Parallel()

		api := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPost, request.Method)
			assert.Equal(t, "/posts", request.URL.Path)

			var payload map[string]interface{}

			require.NoError(t, json.NewDecoder(request.Body).Decode(&payload))
			assert.Equal(t, "A Post", payload["title"])
			assert.Equal(t, "a-post", payload["slug"])

			writer.WriteHeader(http.StatusCreated)
			_, _ = writer.Write([]byte(`{"id": "p-9", "title": "A Post", "slug": "a-post"}`))
		})

		request := &blogapi.PostCreateRequest{
			Title:       "A Post",
			Slug:        "a-post",
			Content:     "body",
			Description: "summary",
			CategoryID:  "c-1",
		}

		post, err := api.Posts().Create(context.Background(), request)
		require.NoError(t, err)
		assert.Equal(t, "p-9", post.ID)
	})

	t.Run("invalid payload never reaches the server", func(t *testing.T) {
		t.Parallel()

		var called bool

		api := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			called = true
		})

		_, err := api.Posts().Create(context.Background(), &blogapi.PostCreateRequest{})
		require.Error(t, err)
		assert.True(t, blogapi.IsValidation(err))
		assert.False(t, called)
	})
}

func TestPostsUpdate(t *testing.T) {
	t.Parallel()

	api := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPatch, request.Method)
		assert.Equal(t, "/posts/p-1", request.URL.Path)

		_, _ = writer.Write([]byte(`{"id": "p-1", "title": "Renamed"}`))
	})

	request := &blogapi.PostUpdateRequest{
		Title:       "Renamed",
		Slug:        "first",
		Content:     "body",
		Description: "summary",
	}

	post, err := api.Posts().Update(context.Background(), "p-1", request)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", post.Title)
}

func TestPostsDelete(t *testing.T) {
	t.Parallel()

	api := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodDelete, request.Method)
		assert.Equal(t, "/posts/p-1", request.URL.Path)

		writer.WriteHeader(http.StatusOK)
	})

	require.NoError(t, api.Posts().Delete(context.Background(), "p-1"))
}

func TestPostsSetPublished(t *testing.T) {
	t.Parallel()

	api := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPatch, request.Method)
		assert.Equal(t, "/posts/p-1", request.URL.Path)

		var payload map[string]interface{}

		require.NoError(t, json.NewDecoder(request.Body).Decode(&payload))
		assert.Equal(t, map[string]interface{}{"published": true}, payload)

		_, _ = writer.Write([]byte(`{"id": "p-1", "published": true}`))
	})

	post, err := api.Posts().SetPublished(context.Background(), "p-1", true)
	require.NoError(t, err)
	assert.True(t, post.Published)
}

func TestPostsServerError(t *testing.T) {
	t.Parallel()

	api := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
		_, _ = writer.Write([]byte(`{"message":"Post not found","statusCode":404}`))
	})

	_, err := api.Posts().Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, blogapi.IsNotFound(err))
}
