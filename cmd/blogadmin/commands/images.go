package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/netdepviet/blogadmin/internal/constants"
	"github.com/netdepviet/blogadmin/pkg/blogapi"
)

// NewImagesCommand creates the images command group.
func NewImagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "images",
		Aliases: []string{"image"},
		Short:   "Manage the image library",
		Long:    "List and upload images used by blog posts",
	}

	cmd.AddCommand(newImagesListCommand())
	cmd.AddCommand(newImagesUploadCommand())
	cmd.AddCommand(newImagesSearchCommand())

	return cmd
}

func newImagesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List images",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := CreateStoreWithAPI(cmd.Flag("api").Value.String())
			if err != nil {
				return err
			}

			images, err := store.ListImages(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list images: %w", err)
			}

			return outputImages(images)
		},
	}
}

func newImagesUploadCommand() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "upload FILE...",
		Short: "Upload images",
		Long:  "Upload one or more files to the image library in a single request",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := requireLogin()
			if err != nil {
				return err
			}

			files := make([]blogapi.UploadFile, 0, len(args))

			for _, path := range args {
				content, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("reading %s: %w", path, err)
				}

				files = append(files, blogapi.UploadFile{
					Name:    filepath.Base(path),
					Content: content,
				})
			}

			store, err := CreateStoreWithAPI(cmd.Flag("api").Value.String())
			if err != nil {
				return err
			}

			var progress blogapi.ProgressFunc
			if !quiet {
				progress = func(percent int) {
					_, _ = fmt.Fprintf(os.Stderr, "\ruploading... %d%%", percent)
					if percent == constants.PercentageMultiplier {
						_, _ = fmt.Fprintln(os.Stderr)
					}
				}
			}

			metas, err := store.UploadImages(context.Background(), files, progress)
			if err != nil {
				return fmt.Errorf("failed to upload: %w", err)
			}

			handled, err := renderStructured(metas)
			if handled {
				return err
			}

			for _, meta := range metas {
				_, _ = fmt.Fprintf(os.Stdout, "%s -> %s\n", meta.Filename, meta.URL)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the progress indicator")

	return cmd
}

func newImagesSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Fuzzy-search images by filename",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := CreateStoreWithAPI(cmd.Flag("api").Value.String())
			if err != nil {
				return err
			}

			images, err := store.ListImages(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list images: %w", err)
			}

			matches := blogapi.FuzzyFilter(args[0], images, "filename")

			return outputImages(matches)
		},
	}
}

func outputImages(images []blogapi.Image) error {
	handled, err := renderStructured(images)
	if handled {
		return err
	}

	if len(images) == 0 {
		_, _ = os.Stdout.WriteString("No images found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Filename", "URL", "Created")

	for _, image := range images {
		_ = table.Append(
			image.ID,
			image.Filename,
			image.URL,
			image.CreatedAt.Format(constants.TimeDisplayFormat),
		)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
