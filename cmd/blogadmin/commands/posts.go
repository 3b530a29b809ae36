package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/netdepviet/blogadmin/internal/constants"
	"github.com/netdepviet/blogadmin/pkg/blogapi"
)

// NewPostsCommand creates the posts command group.
func NewPostsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "posts",
		Aliases: []string{"post", "blogs"},
		Short:   "Manage blog posts",
		Long:    "List, create, update, publish and delete blog posts",
	}

	cmd.AddCommand(newPostsListCommand())
	cmd.AddCommand(newPostsGetCommand())
	cmd.AddCommand(newPostsCreateCommand())
	cmd.AddCommand(newPostsUpdateCommand())
	cmd.AddCommand(newPostsDeleteCommand())
	cmd.AddCommand(newPostsPublishCommand(true))
	cmd.AddCommand(newPostsPublishCommand(false))
	cmd.AddCommand(newPostsSearchCommand())

	return cmd
}

func newPostsListCommand() *cobra.Command {
	var (
		categoryID string
		page       int
		perPage    int
		orderBy    string
		search     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts",
		Long:  "List posts, optionally narrowed to one category",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := CreateStoreWithAPI(cmd.Flag("api").Value.String())
			if err != nil {
				return err
			}

			params := blogapi.NewQueryParams()
			if page > 0 {
				params.WithPage(page)
			}

			if perPage > 0 {
				params.WithPerPage(perPage)
			}

			if orderBy != "" {
				params.WithOrderBy(orderBy)
			}

			if search != "" {
				params.WithSearch(search)
			}

			ctx := context.Background()

			var posts []blogapi.Post
			if categoryID != "" {
				posts, err = store.ListPostsByCategory(ctx, categoryID, params)
			} else {
				posts, err = store.ListPosts(ctx, params)
			}

			if err != nil {
				return fmt.Errorf("failed to list posts: %w", err)
			}

			return outputPosts(posts)
		},
	}

	cmd.Flags().StringVar(&categoryID, "category", "", "only posts of this category id")
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "results per page")
	cmd.Flags().StringVar(&orderBy, "order-by", "", "ordering field (prefix with - for descending)")
	cmd.Flags().StringVar(&search, "search", "", "server-side search term")

	return cmd
}

func newPostsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get POST_ID",
		Short: "Show one post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := CreateStoreWithAPI(cmd.Flag("api").Value.String())
			if err != nil {
				return err
			}

			post, err := store.GetPost(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get post: %w", err)
			}

			handled, err := renderStructured(post)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")
			_ = table.Append("ID", post.ID)
			_ = table.Append("Title", post.Title)
			_ = table.Append("Slug", post.Slug)
			_ = table.Append("Description", post.Description)
			_ = table.Append("Category", valueOr(post.Category.Name, post.CategoryID))
			_ = table.Append("State", publishedLabel(post.Published))
			_ = table.Append("Created", post.CreatedAt.Format(constants.TimeDisplayFormat))
			_ = table.Append("Updated", post.UpdatedAt.Format(constants.TimeDisplayFormat))

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func newPostsCreateCommand() *cobra.Command {
	var (
		title       string
		content     string
		contentFile string
		description string
		thumbnail   string
		categoryID  string
		publish     bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		Long:  "Create a post. The slug is derived from the title and is immutable afterwards.",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := requireLogin()
			if err != nil {
				return err
			}

			if contentFile != "" {
				data, err := os.ReadFile(contentFile)
				if err != nil {
					return fmt.Errorf("reading content file: %w", err)
				}

				content = string(data)
			}

			store, err := CreateStoreWithAPI(cmd.Flag("api").Value.String())
			if err != nil {
				return err
			}

			request := &blogapi.PostCreateRequest{
				Title:       title,
				Slug:        blogapi.Slugify(title),
				Content:     content,
				Description: description,
				Thumbnail:   thumbnail,
				CategoryID:  categoryID,
				Published:   publish,
			}

			post, err := store.CreatePost(context.Background(), request)
			if err != nil {
				return fmt.Errorf("failed to create post: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Created post '%s' (%s)\n", post.Title, post.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "post title (required)")
	cmd.Flags().StringVar(&content, "content", "", "post content")
	cmd.Flags().StringVar(&contentFile, "content-file", "", "read post content from a file")
	cmd.Flags().StringVarP(&description, "description", "d", "", "post description (required)")
	cmd.Flags().StringVar(&thumbnail, "thumbnail", "", "thumbnail URL")
	cmd.Flags().StringVar(&categoryID, "category", "", "category id (required)")
	cmd.Flags().BoolVar(&publish, "publish", false, "publish immediately instead of drafting")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func newPostsUpdateCommand() *cobra.Command {
	var (
		title       string
		content     string
		contentFile string
		description string
		thumbnail   string
		publish     bool
	)

	cmd := &cobra.Command{
		Use:   "update POST_ID",
		Short: "Update a post",
		Long:  "Update a post. The category reference cannot be changed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := requireLogin()
			if err != nil {
				return err
			}

			store, err := CreateStoreWithAPI(cmd.Flag("api").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			current, err := store.GetPost(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get post: %w", err)
			}

			if contentFile != "" {
				data, err := os.ReadFile(contentFile)
				if err != nil {
					return fmt.Errorf("reading content file: %w", err)
				}

				content = string(data)
			}

			request := &blogapi.PostUpdateRequest{
				Title:       valueOr(title, current.Title),
				Slug:        current.Slug,
				Content:     valueOr(content, current.Content),
				Description: valueOr(description, current.Description),
				Thumbnail:   valueOr(thumbnail, current.Thumbnail),
				Published:   current.Published,
			}

			if cmd.Flags().Changed("publish") {
				request.Published = publish
			}

			post, err := store.UpdatePost(ctx, args[0], request)
			if err != nil {
				return fmt.Errorf("failed to update post: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Updated post '%s'\n", post.Title)

			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVar(&content, "content", "", "new content")
	cmd.Flags().StringVar(&contentFile, "content-file", "", "read new content from a file")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVar(&thumbnail, "thumbnail", "", "new thumbnail URL")
	cmd.Flags().BoolVar(&publish, "publish", false, "published state")

	return cmd
}

func newPostsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete POST_ID...",
		Short: "Delete posts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := requireLogin()
			if err != nil {
				return err
			}

			if !force {
				_, _ = fmt.Fprintf(os.Stdout, "Really delete %d post(s)? (y/N): ", len(args))

				var response string

				_, _ = fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					_, _ = os.Stdout.WriteString("Cancelled\n")

					return nil
				}
			}

			store, err := CreateStoreWithAPI(cmd.Flag("api").Value.String())
			if err != nil {
				return err
			}

			executor := blogapi.NewBatchExecutor(store, constants.DefaultBatchConcurrency)
			results := executor.DeletePosts(context.Background(), args)

			return reportBatchResults("delete", results)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}

func newPostsPublishCommand(publish bool) *cobra.Command {
	use, short := "publish POST_ID...", "Publish posts"
	if !publish {
		use, short = "unpublish POST_ID...", "Move posts back to draft"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := requireLogin()
			if err != nil {
				return err
			}

			store, err := CreateStoreWithAPI(cmd.Flag("api").Value.String())
			if err != nil {
				return err
			}

			executor := blogapi.NewBatchExecutor(store, constants.DefaultBatchConcurrency)
			results := executor.SetPostsPublished(context.Background(), args, publish)

			return reportBatchResults("publish", results)
		},
	}
}

func newPostsSearchCommand() *cobra.Command {
	var keys []string

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Fuzzy-search posts by title",
		Long:  "Search the post list client-side with approximate matching, best matches first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := CreateStoreWithAPI(cmd.Flag("api").Value.String())
			if err != nil {
				return err
			}

			posts, err := store.ListPosts(context.Background(), nil)
			if err != nil {
				return fmt.Errorf("failed to list posts: %w", err)
			}

			matches := blogapi.FuzzyFilter(args[0], posts, keys...)

			return outputPosts(matches)
		},
	}

	cmd.Flags().StringSliceVar(&keys, "keys", []string{"title"}, "fields to match against")

	return cmd
}

func outputPosts(posts []blogapi.Post) error {
	handled, err := renderStructured(posts)
	if handled {
		return err
	}

	if len(posts) == 0 {
		_, _ = os.Stdout.WriteString("No posts found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Title", "Category", "State", "Updated")

	for _, post := range posts {
		_ = table.Append(
			post.ID,
			post.Title,
			valueOr(post.Category.Name, post.CategoryID),
			publishedLabel(post.Published),
			post.UpdatedAt.Format(constants.TimeDisplayFormat),
		)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func reportBatchResults(action string, results []blogapi.BatchResult) error {
	failed := blogapi.Failed(results)

	for _, result := range failed {
		_, _ = fmt.Fprintf(os.Stderr, "%s %s failed: %v\n", action, result.ID, result.Err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "%d succeeded, %d failed\n", len(results)-len(failed), len(failed))

	if len(failed) > 0 {
		return fmt.Errorf("%s failed for %d item(s)", action, len(failed))
	}

	return nil
}
