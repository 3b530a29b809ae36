package blogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/netdepviet/blogadmin/internal/constants"
)

// Notification messages mirror what the admin UI shows its (Vietnamese
// speaking) operators, verbatim.
const (
	msgPostCreated       = "Bài viết đã được tạo thành công."
	msgPostUpdated       = "Bài viết đã được cập nhật thành công."
	msgPostDeleted       = "Blog deleted successfully."
	msgPostPublished     = "Bài viết đã được xuất bản thành công."
	msgPostDrafted       = "Bài viết đã được chuyển về thành bản nháp."
	msgCategoryCreated   = "Danh mục đã được tạo thành công."
	msgCategoryUpdated   = "Danh mục đã được cập nhật thành công."
	msgCategoryDeleted   = "Category deleted successfully."
	msgCategoryPublished = "Danh mục đã được xuất bản thành công."
	msgCategoryDrafted   = "Danh mục đã được chuyển về thành bản nháp."
	msgFilesUploaded     = "File uploaded successfully."
)

// PostListPath is where the admin UI returns after creating or updating a
// post.
const PostListPath = "/blogs"

// NavigateFunc is invoked after mutations that move the operator to another
// view.
type NavigateFunc func(path string)

// Store layers read caching, request coalescing and mutation-driven
// invalidation over a Client. Reads of the same operation and params share
// one in-flight request; mutations invalidate exactly the operations whose
// cached results they made stale.
type Store struct {
	client   Client
	cache    *CacheManager
	group    singleflight.Group
	notifier Notifier
	navigate NavigateFunc
	ttl      time.Duration
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStoreNotifier sets the notifier receiving mutation success messages.
func WithStoreNotifier(notifier Notifier) StoreOption {
	return func(s *Store) {
		if notifier != nil {
			s.notifier = notifier
		}
	}
}

// WithNavigator sets the callback invoked when a mutation moves the operator
// to another view.
func WithNavigator(navigate NavigateFunc) StoreOption {
	return func(s *Store) {
		s.navigate = navigate
	}
}

// WithTTL sets how long cached reads stay fresh.
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewStore creates a store over the given client and cache manager. A nil
// cache manager gets a default memory-backed one.
func NewStore(client Client, cache *CacheManager, opts ...StoreOption) *Store {
	store := &Store{
		client:   client,
		cache:    cache,
		notifier: NopNotifier{},
		ttl:      constants.DefaultCacheTTL,
	}

	if store.cache == nil {
		store.cache = NewCacheManager(nil, nil)
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// cacheKeyFor derives the cache key of one (operation, params) pair. The "|"
// terminates the operation segment, so prefix invalidation of one operation
// cannot reach another operation whose template merely extends this one
// (GET:posts vs GET:posts/images).
func cacheKeyFor(endpoint Endpoint, params *QueryParams) string {
	key := endpoint.Key() + "|"

	if params != nil {
		key += params.CacheKeyPart()
	}

	return key
}

// idKeyFor derives the cache key of a by-id read.
func idKeyFor(endpoint Endpoint, id string) string {
	return endpoint.Key() + "|id=" + id
}

// cachedRead serves out from cache when possible, otherwise coalesces
// concurrent fetches of the same key into one network call and caches the
// result.
func (s *Store) cachedRead(ctx context.Context, key string, out interface{}, fetch func() (interface{}, error)) error {
	if data, err := s.cache.Get(ctx, key); err == nil {
		return json.Unmarshal(data, out)
	}

	raw, err, _ := s.group.Do(key, func() (interface{}, error) {
		result, err := fetch()
		if err != nil {
			return nil, err
		}

		data, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("encoding cached result: %w", err)
		}

		_ = s.cache.Set(ctx, key, data, s.ttl)

		return data, nil
	})
	if err != nil {
		return err
	}

	data, ok := raw.([]byte)
	if !ok {
		return fmt.Errorf("%w: %s", ErrCacheKeyNotFound, key)
	}

	return json.Unmarshal(data, out)
}

// ListPosts returns the post list, cached per params.
func (s *Store) ListPosts(ctx context.Context, params *QueryParams) ([]Post, error) {
	var posts []Post

	err := s.cachedRead(ctx, cacheKeyFor(PostEndpoints.List, params), &posts, func() (interface{}, error) {
		list, err := s.client.Posts().List(ctx, params)
		if err != nil {
			return nil, err
		}

		return list.Data, nil
	})
	if err != nil {
		return nil, err
	}

	return posts, nil
}

// ListPostsByCategory returns the posts of one category, cached per category
// and params.
func (s *Store) ListPostsByCategory(ctx context.Context, categoryID string, params *QueryParams) ([]Post, error) {
	if categoryID == "" {
		return nil, fmt.Errorf("%w: categoryId", ErrIDRequired)
	}

	key := idKeyFor(PostEndpoints.ListByCategory, categoryID)
	if params != nil {
		if part := params.CacheKeyPart(); part != "" {
			key += "&" + part
		}
	}

	var posts []Post

	err := s.cachedRead(ctx, key, &posts, func() (interface{}, error) {
		result, err := s.client.Posts().ListByCategory(ctx, categoryID, params)
		if err != nil {
			return nil, err
		}

		return result, nil
	})
	if err != nil {
		return nil, err
	}

	return posts, nil
}

// GetPost returns one post by id, cached. An empty id fails without touching
// the network.
func (s *Store) GetPost(ctx context.Context, id string) (*Post, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: post id", ErrIDRequired)
	}

	var post Post

	err := s.cachedRead(ctx, idKeyFor(PostEndpoints.GetByID, id), &post, func() (interface{}, error) {
		detail, err := s.client.Posts().Get(ctx, id)
		if err != nil {
			return nil, err
		}

		return detail.Data, nil
	})
	if err != nil {
		return nil, err
	}

	return &post, nil
}

// CreatePost creates a post, then moves the operator back to the post list.
// Nothing cached becomes stale: the list is refetched after navigation.
func (s *Store) CreatePost(ctx context.Context, request *PostCreateRequest) (*Post, error) {
	post, err := s.client.Posts().Create(ctx, request)
	if err != nil {
		return nil, err
	}

	s.notifier.Success(msgPostCreated)
	s.navigateTo(PostListPath)

	return post, nil
}

// UpdatePost updates a post, invalidates cached detail reads and moves the
// operator back to the post list.
func (s *Store) UpdatePost(ctx context.Context, id string, request *PostUpdateRequest) (*Post, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: post id", ErrIDRequired)
	}

	post, err := s.client.Posts().Update(ctx, id, request)
	if err != nil {
		return nil, err
	}

	s.notifier.Success(msgPostUpdated)
	s.navigateTo(PostListPath)

	_ = s.cache.InvalidateOperation(ctx, PostEndpoints.GetByID)

	return post, nil
}

// DeletePost deletes a post and invalidates cached list reads.
func (s *Store) DeletePost(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: post id", ErrIDRequired)
	}

	err := s.client.Posts().Delete(ctx, id)
	if err != nil {
		return err
	}

	s.notifier.Success(msgPostDeleted)

	_ = s.cache.InvalidateOperation(ctx, PostEndpoints.List)

	return nil
}

// SetPostPublished publishes or drafts a post and invalidates cached list
// reads. The notification wording depends on the direction of the toggle.
func (s *Store) SetPostPublished(ctx context.Context, id string, published bool) (*Post, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: post id", ErrIDRequired)
	}

	post, err := s.client.Posts().SetPublished(ctx, id, published)
	if err != nil {
		return nil, err
	}

	if published {
		s.notifier.Success(msgPostPublished)
	} else {
		s.notifier.Success(msgPostDrafted)
	}

	_ = s.cache.InvalidateOperation(ctx, PostEndpoints.List)

	return post, nil
}

// ListCategories returns the category list, cached per params.
func (s *Store) ListCategories(ctx context.Context, params *QueryParams) ([]Category, error) {
	var categories []Category

	err := s.cachedRead(ctx, cacheKeyFor(CategoryEndpoints.List, params), &categories, func() (interface{}, error) {
		result, err := s.client.Categories().List(ctx, params)
		if err != nil {
			return nil, err
		}

		return result, nil
	})
	if err != nil {
		return nil, err
	}

	return categories, nil
}

// GetCategory returns one category by id, cached. An empty id fails without
// touching the network.
func (s *Store) GetCategory(ctx context.Context, id string) (*Category, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: category id", ErrIDRequired)
	}

	var category Category

	err := s.cachedRead(ctx, idKeyFor(CategoryEndpoints.GetByID, id), &category, func() (interface{}, error) {
		result, err := s.client.Categories().Get(ctx, id)
		if err != nil {
			return nil, err
		}

		return result, nil
	})
	if err != nil {
		return nil, err
	}

	return &category, nil
}

// CreateCategory creates a category. The category list is left cached; it
// only refreshes when published state changes or the TTL lapses.
func (s *Store) CreateCategory(ctx context.Context, request *CategoryCreateRequest) (*Category, error) {
	category, err := s.client.Categories().Create(ctx, request)
	if err != nil {
		return nil, err
	}

	s.notifier.Success(msgCategoryCreated)

	return category, nil
}

// UpdateCategory updates a category.
func (s *Store) UpdateCategory(ctx context.Context, id string, request *CategoryUpdateRequest) (*Category, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: category id", ErrIDRequired)
	}

	category, err := s.client.Categories().Update(ctx, id, request)
	if err != nil {
		return nil, err
	}

	s.notifier.Success(msgCategoryUpdated)

	return category, nil
}

// DeleteCategory deletes a category.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: category id", ErrIDRequired)
	}

	err := s.client.Categories().Delete(ctx, id)
	if err != nil {
		return err
	}

	s.notifier.Success(msgCategoryDeleted)

	return nil
}

// SetCategoryPublished publishes or drafts a category and invalidates cached
// list reads.
func (s *Store) SetCategoryPublished(ctx context.Context, id string, published bool) (*Category, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: category id", ErrIDRequired)
	}

	category, err := s.client.Categories().SetPublished(ctx, id, published)
	if err != nil {
		return nil, err
	}

	if published {
		s.notifier.Success(msgCategoryPublished)
	} else {
		s.notifier.Success(msgCategoryDrafted)
	}

	_ = s.cache.InvalidateOperation(ctx, CategoryEndpoints.List)

	return category, nil
}

// ListImages returns the image library, cached.
func (s *Store) ListImages(ctx context.Context) ([]Image, error) {
	var images []Image

	err := s.cachedRead(ctx, cacheKeyFor(ImageEndpoints.List, nil), &images, func() (interface{}, error) {
		result, err := s.client.Images().List(ctx)
		if err != nil {
			return nil, err
		}

		return result, nil
	})
	if err != nil {
		return nil, err
	}

	return images, nil
}

// UploadImages uploads files to the image library and invalidates the cached
// image list so the new files appear on the next read.
func (s *Store) UploadImages(ctx context.Context, files []UploadFile, progress ProgressFunc) ([]FileMeta, error) {
	if len(files) == 0 {
		return nil, ErrNoFilesProvided
	}

	metas, err := s.client.Images().Upload(ctx, files, progress)
	if err != nil {
		return nil, err
	}

	s.notifier.Success(msgFilesUploaded)

	_ = s.cache.InvalidateOperation(ctx, ImageEndpoints.List)

	return metas, nil
}

// CacheStats returns a snapshot of cache activity.
func (s *Store) CacheStats() CacheStats {
	return s.cache.GetStats()
}

func (s *Store) navigateTo(path string) {
	if s.navigate != nil {
		s.navigate(path)
	}
}
