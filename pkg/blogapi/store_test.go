package blogapi_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netdepviet/blogadmin/pkg/blogapi"
)

// fakeAPI implements blogapi.Client with canned data and call counters.
type fakeAPI struct {
	posts      fakePosts
	categories fakeCategories
	images     fakeImages
}

func (f *fakeAPI) Posts() blogapi.PostsClient           { return &f.posts }
func (f *fakeAPI) Categories() blogapi.CategoriesClient { return &f.categories }
func (f *fakeAPI) Images() blogapi.ImagesClient         { return &f.images }

type fakePosts struct {
	mu        sync.Mutex
	listCalls int
	getCalls  int
	gate      chan struct{}
}

func (f *fakePosts) List(ctx context.Context, params *blogapi.QueryParams) (*blogapi.PostList, error) {
	if f.gate != nil {
		<-f.gate
	}

	f.mu.Lock()
	f.listCalls++
	f.mu.Unlock()

	return &blogapi.PostList{
		StatusCode: 200,
		Data: []blogapi.Post{
			{Resource: blogapi.Resource{ID: "p-1"}, Title: "First"},
			{Resource: blogapi.Resource{ID: "p-2"}, Title: "Second"},
		},
	}, nil
}

func (f *fakePosts) ListByCategory(ctx context.Context, categoryID string, params *blogapi.QueryParams) ([]blogapi.Post, error) {
	return []blogapi.Post{{Resource: blogapi.Resource{ID: "p-1"}, CategoryID: categoryID}}, nil
}

func (f *fakePosts) Get(ctx context.Context, id string) (*blogapi.PostDetail, error) {
	f.mu.Lock()
	f.getCalls++
	f.mu.Unlock()

	return &blogapi.PostDetail{
		StatusCode: 200,
		Data:       blogapi.Post{Resource: blogapi.Resource{ID: id}, Title: "First"},
	}, nil
}

func (f *fakePosts) Create(ctx context.Context, request *blogapi.PostCreateRequest) (*blogapi.Post, error) {
	return &blogapi.Post{Resource: blogapi.Resource{ID: "p-new"}, Title: request.Title}, nil
}

func (f *fakePosts) Update(ctx context.Context, id string, request *blogapi.PostUpdateRequest) (*blogapi.Post, error) {
	return &blogapi.Post{Resource: blogapi.Resource{ID: id}, Title: request.Title}, nil
}

func (f *fakePosts) Delete(ctx context.Context, id string) error {
	return nil
}

func (f *fakePosts) SetPublished(ctx context.Context, id string, published bool) (*blogapi.Post, error) {
	return &blogapi.Post{Resource: blogapi.Resource{ID: id}, Published: published}, nil
}

type fakeCategories struct {
	mu        sync.Mutex
	listCalls int
}

func (f *fakeCategories) List(ctx context.Context, params *blogapi.QueryParams) ([]blogapi.Category, error) {
	f.mu.Lock()
	f.listCalls++
	f.mu.Unlock()

	return []blogapi.Category{{Resource: blogapi.Resource{ID: "c-1"}, Name: "News"}}, nil
}

func (f *fakeCategories) Get(ctx context.Context, id string) (*blogapi.Category, error) {
	return &blogapi.Category{Resource: blogapi.Resource{ID: id}, Name: "News"}, nil
}

func (f *fakeCategories) Create(ctx context.Context, request *blogapi.CategoryCreateRequest) (*blogapi.Category, error) {
	return &blogapi.Category{Resource: blogapi.Resource{ID: "c-new"}, Name: request.Name}, nil
}

func (f *fakeCategories) Update(ctx context.Context, id string, request *blogapi.CategoryUpdateRequest) (*blogapi.Category, error) {
	return &blogapi.Category{Resource: blogapi.Resource{ID: id}, Slug: request.Slug}, nil
}

func (f *fakeCategories) Delete(ctx context.Context, id string) error {
	return nil
}

func (f *fakeCategories) SetPublished(ctx context.Context, id string, published bool) (*blogapi.Category, error) {
	return &blogapi.Category{Resource: blogapi.Resource{ID: id}, Published: published}, nil
}

type fakeImages struct {
	mu        sync.Mutex
	listCalls int
}

func (f *fakeImages) List(ctx context.Context) ([]blogapi.Image, error) {
	f.mu.Lock()
	f.listCalls++
	f.mu.Unlock()

	return []blogapi.Image{{Resource: blogapi.Resource{ID: "i-1"}, Filename: "a.png"}}, nil
}

func (f *fakeImages) Upload(ctx context.Context, files []blogapi.UploadFile, progress blogapi.ProgressFunc) ([]blogapi.FileMeta, error) {
	metas := make([]blogapi.FileMeta, 0, len(files))
	for _, file := range files {
		metas = append(metas, blogapi.FileMeta{Filename: file.Name, URL: "https://cdn/" + file.Name})
	}

	return metas, nil
}

func newTestStore(api *fakeAPI, opts ...blogapi.StoreOption) *blogapi.Store {
	manager := blogapi.NewCacheManager(blogapi.NewMemoryCache(100), nil)

	return blogapi.NewStore(api, manager, opts...)
}

func TestStoreReads(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("list posts is cached", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{}
		store := newTestStore(api)

		first, err := store.ListPosts(ctx, nil)
		require.NoError(t, err)
		require.Len(t, first, 2)

		second, err := store.ListPosts(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, api.posts.listCalls)
	})

	t.Run("different params fetch separately", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{}
		store := newTestStore(api)

		_, err := store.ListPosts(ctx, nil)
		require.NoError(t, err)

		_, err = store.ListPosts(ctx, blogapi.NewQueryParams().WithPage(2))
		require.NoError(t, err)

		assert.Equal(t, 2, api.posts.listCalls)
	})

	t.Run("concurrent reads coalesce into one call", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{}
		api.posts.gate = make(chan struct{})
		store := newTestStore(api)

		var group sync.WaitGroup

		for i := 0; i < 5; i++ {
			group.Add(1)

			go func() {
				defer group.Done()

				_, err := store.ListPosts(ctx, nil)
				assert.NoError(t, err)
			}()
		}

		time.Sleep(50 * time.Millisecond)
		close(api.posts.gate)
		group.Wait()

		assert.LessOrEqual(t, api.posts.listCalls, 2)
	})

	t.Run("get post with empty id fails without network", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{}
		store := newTestStore(api)

		_, err := store.GetPost(ctx, "")
		assert.ErrorIs(t, err, blogapi.ErrIDRequired)
		assert.Zero(t, api.posts.getCalls)
	})

	t.Run("list by category requires category id", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{}
		store := newTestStore(api)

		_, err := store.ListPostsByCategory(ctx, "", nil)
		assert.ErrorIs(t, err, blogapi.ErrIDRequired)

		posts, err := store.ListPostsByCategory(ctx, "c-1", nil)
		require.NoError(t, err)
		assert.Equal(t, "c-1", posts[0].CategoryID)
	})
}

func TestStorePostMutations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("create notifies and navigates without invalidating", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{}
		notifier := &blogapi.RecordingNotifier{}

		var navigated []string

		store := newTestStore(api,
			blogapi.WithStoreNotifier(notifier),
			blogapi.WithNavigator(func(path string) { navigated = append(navigated, path) }),
		)

		_, err := store.ListPosts(ctx, nil)
		require.NoError(t, err)

		_, err = store.CreatePost(ctx, &blogapi.PostCreateRequest{Title: "New"})
		require.NoError(t, err)

		assert.Equal(t, []string{"/blogs"}, navigated)
		assert.Equal(t, []string{"Bài viết đã được tạo thành công."}, notifier.Successes)

		_, err = store.ListPosts(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, api.posts.listCalls)
	})

	t.Run("delete invalidates the list", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{}
		notifier := &blogapi.RecordingNotifier{}
		store := newTestStore(api, blogapi.WithStoreNotifier(notifier))

		_, err := store.ListPosts(ctx, nil)
		require.NoError(t, err)

		require.NoError(t, store.DeletePost(ctx, "p-1"))
		assert.Equal(t, []string{"Blog deleted successfully."}, notifier.Successes)

		_, err = store.ListPosts(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, api.posts.listCalls)
	})

	t.Run("delete leaves sibling operations cached", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{}
		store := newTestStore(api)

		_, err := store.ListPosts(ctx, nil)
		require.NoError(t, err)

		_, err = store.GetPost(ctx, "p-1")
		require.NoError(t, err)

		_, err = store.ListImages(ctx)
		require.NoError(t, err)

		require.NoError(t, store.DeletePost(ctx, "p-1"))

		_, err = store.ListPosts(ctx, nil)
		require.NoError(t, err)

		_, err = store.GetPost(ctx, "p-1")
		require.NoError(t, err)

		_, err = store.ListImages(ctx)
		require.NoError(t, err)

		assert.Equal(t, 2, api.posts.listCalls)
		assert.Equal(t, 1, api.posts.getCalls)
		assert.Equal(t, 1, api.images.listCalls)
	})

	t.Run("update invalidates detail reads and navigates", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{}
		notifier := &blogapi.RecordingNotifier{}

		var navigated []string

		store := newTestStore(api,
			blogapi.WithStoreNotifier(notifier),
			blogapi.WithNavigator(func(path string) { navigated = append(navigated, path) }),
		)

		_, err := store.GetPost(ctx, "p-1")
		require.NoError(t, err)

		_, err = store.UpdatePost(ctx, "p-1", &blogapi.PostUpdateRequest{Title: "Edited"})
		require.NoError(t, err)

		assert.Equal(t, []string{"Bài viết đã được cập nhật thành công."}, notifier.Successes)
		assert.Equal(t, []string{"/blogs"}, navigated)

		_, err = store.GetPost(ctx, "p-1")
		require.NoError(t, err)
		assert.Equal(t, 2, api.posts.getCalls)
	})

	t.Run("publish wording follows direction", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{}
		notifier := &blogapi.RecordingNotifier{}
		store := newTestStore(api, blogapi.WithStoreNotifier(notifier))

		_, err := store.SetPostPublished(ctx, "p-1", true)
		require.NoError(t, err)

		_, err = store.SetPostPublished(ctx, "p-1", false)
		require.NoError(t, err)

		assert.Equal(t, []string{
			"Bài viết đã được xuất bản thành công.",
			"Bài viết đã được chuyển về thành bản nháp.",
		}, notifier.Successes)
	})

	t.Run("mutations require ids", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(&fakeAPI{})

		assert.ErrorIs(t, store.DeletePost(ctx, ""), blogapi.ErrIDRequired)

		_, err := store.UpdatePost(ctx, "", &blogapi.PostUpdateRequest{})
		assert.ErrorIs(t, err, blogapi.ErrIDRequired)

		_, err = store.SetPostPublished(ctx, "", true)
		assert.ErrorIs(t, err, blogapi.ErrIDRequired)
	})
}

func TestStoreCategoryMutations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("create update delete leave the list cached", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{}
		notifier := &blogapi.RecordingNotifier{}
		store := newTestStore(api, blogapi.WithStoreNotifier(notifier))

		_, err := store.ListCategories(ctx, nil)
		require.NoError(t, err)

		_, err = store.CreateCategory(ctx, &blogapi.CategoryCreateRequest{Name: "News", Slug: "news"})
		require.NoError(t, err)

		_, err = store.UpdateCategory(ctx, "c-1", &blogapi.CategoryUpdateRequest{Slug: "breaking"})
		require.NoError(t, err)

		require.NoError(t, store.DeleteCategory(ctx, "c-1"))

		_, err = store.ListCategories(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, api.categories.listCalls)

		assert.Equal(t, []string{
			"Danh mục đã được tạo thành công.",
			"Danh mục đã được cập nhật thành công.",
			"Category deleted successfully.",
		}, notifier.Successes)
	})

	t.Run("publish invalidates the list", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{}
		notifier := &blogapi.RecordingNotifier{}
		store := newTestStore(api, blogapi.WithStoreNotifier(notifier))

		_, err := store.ListCategories(ctx, nil)
		require.NoError(t, err)

		_, err = store.SetCategoryPublished(ctx, "c-1", true)
		require.NoError(t, err)
		assert.Equal(t, []string{"Danh mục đã được xuất bản thành công."}, notifier.Successes)

		_, err = store.ListCategories(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, api.categories.listCalls)
	})
}

func TestStoreImages(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("upload invalidates the image list", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{}
		notifier := &blogapi.RecordingNotifier{}
		store := newTestStore(api, blogapi.WithStoreNotifier(notifier))

		_, err := store.ListImages(ctx)
		require.NoError(t, err)

		metas, err := store.UploadImages(ctx, []blogapi.UploadFile{{Name: "b.png", Content: []byte{1}}}, nil)
		require.NoError(t, err)
		require.Len(t, metas, 1)
		assert.Equal(t, []string{"File uploaded successfully."}, notifier.Successes)

		_, err = store.ListImages(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, api.images.listCalls)
	})

	t.Run("upload without files fails", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(&fakeAPI{})

		_, err := store.UploadImages(ctx, nil, nil)
		assert.ErrorIs(t, err, blogapi.ErrNoFilesProvided)
	})
}
