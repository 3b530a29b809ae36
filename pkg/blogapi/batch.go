package blogapi

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/netdepviet/blogadmin/internal/constants"
)

// BatchResult records the outcome of one item in a batch operation.
type BatchResult struct {
	ID  string
	Err error
}

// BatchExecutor runs the same mutation over many ids with bounded
// concurrency. Failures are collected per id instead of aborting the batch:
// deleting forty posts should not stop at the one that is already gone.
type BatchExecutor struct {
	store       *Store
	concurrency int
}

// NewBatchExecutor creates an executor over the store. Non-positive
// concurrency falls back to the default.
func NewBatchExecutor(store *Store, concurrency int) *BatchExecutor {
	if concurrency <= 0 {
		concurrency = constants.DefaultBatchConcurrency
	}

	return &BatchExecutor{store: store, concurrency: concurrency}
}

// run applies op to every id and returns results in input order.
func (b *BatchExecutor) run(ctx context.Context, ids []string, op func(context.Context, string) error) []BatchResult {
	results := make([]BatchResult, len(ids))

	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(b.concurrency)

	for i, id := range ids {
		i, id := i, id
		group.Go(func() error {
			err := op(groupCtx, id)

			mu.Lock()
			results[i] = BatchResult{ID: id, Err: err}
			mu.Unlock()

			return nil
		})
	}

	_ = group.Wait()

	return results
}

// DeletePosts deletes many posts.
func (b *BatchExecutor) DeletePosts(ctx context.Context, ids []string) []BatchResult {
	return b.run(ctx, ids, b.store.DeletePost)
}

// SetPostsPublished publishes or drafts many posts.
func (b *BatchExecutor) SetPostsPublished(ctx context.Context, ids []string, published bool) []BatchResult {
	return b.run(ctx, ids, func(ctx context.Context, id string) error {
		_, err := b.store.SetPostPublished(ctx, id, published)

		return err
	})
}

// DeleteCategories deletes many categories.
func (b *BatchExecutor) DeleteCategories(ctx context.Context, ids []string) []BatchResult {
	return b.run(ctx, ids, b.store.DeleteCategory)
}

// SetCategoriesPublished publishes or drafts many categories.
func (b *BatchExecutor) SetCategoriesPublished(ctx context.Context, ids []string, published bool) []BatchResult {
	return b.run(ctx, ids, func(ctx context.Context, id string) error {
		_, err := b.store.SetCategoryPublished(ctx, id, published)

		return err
	})
}

// Failed returns only the results that carry an error.
func Failed(results []BatchResult) []BatchResult {
	failed := make([]BatchResult, 0, len(results))

	for _, result := range results {
		if result.Err != nil {
			failed = append(failed, result)
		}
	}

	return failed
}
