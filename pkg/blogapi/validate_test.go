package blogapi_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netdepviet/blogadmin/pkg/blogapi"
)

func validPostCreate() *blogapi.PostCreateRequest {
	return &blogapi.PostCreateRequest{
		Title:       "A Post",
		Slug:        "a-post",
		Content:     "body",
		Description: "summary",
		CategoryID:  "cat-1",
	}
}

func TestPostCreateRequestValidate(t *testing.T) {
	t.Parallel()
	t.Run("valid payload passes", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, validPostCreate().Validate())
	})

	t.Run("missing fields reported by json name", func(t *testing.T) {
		t.Parallel()

		request := &blogapi.PostCreateRequest{}

		err := request.Validate()
		require.Error(t, err)

		validationErr := &blogapi.ValidationError{}
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, 422, validationErr.Status)

		fields := validationErr.FieldMap()
		assert.Contains(t, fields, "title")
		assert.Contains(t, fields, "categoryId")
		assert.Contains(t, fields["title"], "title is required")
	})

	t.Run("overlong title rejected", func(t *testing.T) {
		t.Parallel()

		request := validPostCreate()
		request.Title = strings.Repeat("x", 201)

		err := request.Validate()
		require.Error(t, err)
		assert.True(t, blogapi.IsValidation(err))
	})

	t.Run("invalid thumbnail url rejected", func(t *testing.T) {
		t.Parallel()

		request := validPostCreate()
		request.Thumbnail = "not a url"

		err := request.Validate()
		require.Error(t, err)

		validationErr := &blogapi.ValidationError{}
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.FieldMap(), "thumbnail")
	})

	t.Run("empty thumbnail allowed", func(t *testing.T) {
		t.Parallel()

		request := validPostCreate()
		request.Thumbnail = ""

		require.NoError(t, request.Validate())
	})
}

func TestCategoryRequestValidate(t *testing.T) {
	t.Parallel()
	t.Run("create requires name and slug", func(t *testing.T) {
		t.Parallel()

		err := (&blogapi.CategoryCreateRequest{}).Validate()
		require.Error(t, err)

		validationErr := &blogapi.ValidationError{}
		require.ErrorAs(t, err, &validationErr)

		fields := validationErr.FieldMap()
		assert.Contains(t, fields, "name")
		assert.Contains(t, fields, "slug")
	})

	t.Run("update requires only slug", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, (&blogapi.CategoryUpdateRequest{Slug: "news"}).Validate())

		err := (&blogapi.CategoryUpdateRequest{}).Validate()
		require.Error(t, err)
	})
}
