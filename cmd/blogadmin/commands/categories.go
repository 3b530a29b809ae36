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

// NewCategoriesCommand creates the categories command group.
func NewCategoriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cats"},
		Short:   "Manage blog categories",
		Long:    "List, create, update, publish and delete blog categories",
	}

	cmd.AddCommand(newCategoriesListCommand())
	cmd.AddCommand(newCategoriesGetCommand())
	cmd.AddCommand(newCategoriesCreateCommand())
	cmd.AddCommand(newCategoriesUpdateCommand())
	cmd.AddCommand(newCategoriesDeleteCommand())
	cmd.AddCommand(newCategoriesPublishCommand(true))
	cmd.AddCommand(newCategoriesPublishCommand(false))
	cmd.AddCommand(newCategoriesSearchCommand())

	return cmd
}

func newCategoriesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := CreateStoreWithAPI(cmd.Flag("api").Value.String())
			if err != nil {
				return err
			}

			categories, err := store.ListCategories(context.Background(), nil)
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}

			return outputCategories(categories)
		},
	}
}

func newCategoriesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get CATEGORY_ID",
		Short: "Show one category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := CreateStoreWithAPI(cmd.Flag("api").Value.String())
			if err != nil {
				return err
			}

			category, err := store.GetCategory(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get category: %w", err)
			}

			handled, err := renderStructured(category)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")
			_ = table.Append("ID", category.ID)
			_ = table.Append("Name", category.Name)
			_ = table.Append("Slug", category.Slug)
			_ = table.Append("State", publishedLabel(category.Published))
			_ = table.Append("Created", category.CreatedAt.Format(constants.TimeDisplayFormat))
			_ = table.Append("Updated", category.UpdatedAt.Format(constants.TimeDisplayFormat))

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func newCategoriesCreateCommand() *cobra.Command {
	var (
		name    string
		publish bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		Long:  "Create a category. The slug is derived from the name; the name is immutable afterwards.",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := requireLogin()
			if err != nil {
				return err
			}

			store, err := CreateStoreWithAPI(cmd.Flag("api").Value.String())
			if err != nil {
				return err
			}

			request := &blogapi.CategoryCreateRequest{
				Name:      name,
				Slug:      blogapi.Slugify(name),
				Published: publish,
			}

			category, err := store.CreateCategory(context.Background(), request)
			if err != nil {
				return fmt.Errorf("failed to create category: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Created category '%s' (%s)\n", category.Name, category.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "category name (required)")
	cmd.Flags().BoolVar(&publish, "publish", false, "publish immediately instead of drafting")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newCategoriesUpdateCommand() *cobra.Command {
	var (
		slug    string
		publish bool
	)

	cmd := &cobra.Command{
		Use:   "update CATEGORY_ID",
		Short: "Update a category",
		Long:  "Update a category's mutable fields. The name cannot be changed.",
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

			current, err := store.GetCategory(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get category: %w", err)
			}

			request := &blogapi.CategoryUpdateRequest{
				Slug:      valueOr(slug, current.Slug),
				Published: current.Published,
			}

			if cmd.Flags().Changed("publish") {
				request.Published = publish
			}

			category, err := store.UpdateCategory(ctx, args[0], request)
			if err != nil {
				return fmt.Errorf("failed to update category: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Updated category '%s'\n", category.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&slug, "slug", "", "new slug")
	cmd.Flags().BoolVar(&publish, "publish", false, "published state")

	return cmd
}

func newCategoriesDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete CATEGORY_ID...",
		Short: "Delete categories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := requireLogin()
			if err != nil {
				return err
			}

			if !force {
				_, _ = fmt.Fprintf(os.Stdout, "Really delete %d categor(ies)? (y/N): ", len(args))

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
			results := executor.DeleteCategories(context.Background(), args)

			return reportBatchResults("delete", results)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}

func newCategoriesPublishCommand(publish bool) *cobra.Command {
	use, short := "publish CATEGORY_ID...", "Publish categories"
	if !publish {
		use, short = "unpublish CATEGORY_ID...", "Move categories back to draft"
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
			results := executor.SetCategoriesPublished(context.Background(), args, publish)

			return reportBatchResults("publish", results)
		},
	}
}

func newCategoriesSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Fuzzy-search categories by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := CreateStoreWithAPI(cmd.Flag("api").Value.String())
			if err != nil {
				return err
			}

			categories, err := store.ListCategories(context.Background(), nil)
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}

			matches := blogapi.FuzzyFilter(args[0], categories)

			return outputCategories(matches)
		},
	}
}

func outputCategories(categories []blogapi.Category) error {
	handled, err := renderStructured(categories)
	if handled {
		return err
	}

	if len(categories) == 0 {
		_, _ = os.Stdout.WriteString("No categories found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Slug", "State", "Updated")

	for _, category := range categories {
		_ = table.Append(
			category.ID,
			category.Name,
			category.Slug,
			publishedLabel(category.Published),
			category.UpdatedAt.Format(constants.TimeDisplayFormat),
		)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
