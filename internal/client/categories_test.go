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

func TestCategoriesList(t *testing.T) {
	t.Parallel()

	api := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/categories", request.URL.Path)
		assert.Equal(t, "name", request.URL.Query().Get("orderBy"))

		_, _ = writer.Write([]byte(`[
			{"id": "c-1", "name": "News", "slug": "news", "published": true},
			{"id": "c-2", "name": "Guides", "slug": "guides"}
		]`))
	})

	categories, err := api.Categories().List(context.Background(), blogapi.NewQueryParams().WithOrderBy("name"))
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "News", categories[0].Name)
	assert.True(t, categories[0].Published)
}

func TestCategoriesGet(t *testing.T) {
	t.Parallel()

	api := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/categories/c-1", request.URL.Path)

		_, _ = writer.Write([]byte(`{"id": "c-1", "name": "News", "slug": "news"}`))
	})

	category, err := api.Categories().Get(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, "news", category.Slug)
}

func TestCategoriesCreate(t *testing.T) {
	t.Parallel()
	t.Run("sends the validated payload", func(t *testing.T) {
		t.Parallel()

		api := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPost, request.Method)

			var payload map[string]interface{}

			require.NoError(t, json.NewDecoder(request.Body).Decode(&payload))
			assert.Equal(t, "News", payload["name"])

			writer.WriteHeader(http.StatusCreated)
			_, _ = writer.Write([]byte(`{"id": "c-9", "name": "News", "slug": "news"}`))
		})

		category, err := api.Categories().Create(context.Background(), &blogapi.CategoryCreateRequest{Name: "News", Slug: "news"})
		require.NoError(t, err)
		assert.Equal(t, "c-9", category.ID)
	})

	t.Run("invalid payload never reaches the server", func(t *testing.T) {
		t.Parallel()

		var called bool

		api := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			called = true
		})

		_, err := api.Categories().Create(context.Background(), &blogapi.CategoryCreateRequest{})
		require.Error(t, err)
		assert.True(t, blogapi.IsValidation(err))
		assert.False(t, called)
	})
}

func TestCategoriesUpdate(t *testing.T) {
	t.Parallel()

	api := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPatch, request.Method)
		assert.Equal(t, "/categories/c-1", request.URL.Path)

		_, _ = writer.Write([]byte(`{"id": "c-1", "name": "News", "slug": "breaking-news"}`))
	})

	category, err := api.Categories().Update(context.Background(), "c-1", &blogapi.CategoryUpdateRequest{Slug: "breaking-news"})
	require.NoError(t, err)
	assert.Equal(t, "breaking-news", category.Slug)
}

func TestCategoriesDelete(t *testing.T) {
	t.Parallel()

	api := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodDelete, request.Method)
		assert.Equal(t, "/categories/c-1", request.URL.Path)

		writer.WriteHeader(http.StatusOK)
	})

	require.NoError(t, api.Categories().Delete(context.Background(), "c-1"))
}

func TestCategoriesSetPublished(t *testing.T) {
	t.Parallel()

	api := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPatch, request.Method)

		var payload map[string]interface{}

		require.NoError(t, json.NewDecoder(request.Body).Decode(&payload))
		assert.Equal(t, map[string]interface{}{"published": false}, payload)

		_, _ = writer.Write([]byte(`{"id": "c-1", "published": false}`))
	})

	category, err := api.Categories().SetPublished(context.Background(), "c-1", false)
	require.NoError(t, err)
	assert.False(t, category.Published)
}
