package cmd

import (
	"context"
	"fmt"

	"github.com/CristiGvl/picoMaint/internal/core"
	"github.com/CristiGvl/picoMaint/internal/folder"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	foldersDepth   int
	foldersMinSize string
	foldersJSON    bool
)

var foldersCmd = &cobra.Command{
	Use:   "folders [path]",
	Short: "Find large folders",
	Long: `Without a path, measure the usual space hogs under your home directory.
With a path, measure each of its immediate subdirectories.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		minSize, err := parseMinSize(foldersMinSize)
		if err != nil {
			return err
		}

		depth := cfg.Folders.Depth
		if cmd.Flags().Changed("depth") {
			if foldersDepth < 0 {
				return fmt.Errorf("--depth must not be negative")
			}
			depth = foldersDepth
		}
		reporter := folder.NewReporter(cfg.Folders.Home, depth)

		title := "Measuring home folders"
		task := reporter.LargeFolders
		if len(args) == 1 {
			path := args[0]
			title = "Measuring " + path
			task = func(ctx context.Context) ([]folder.FolderInfo, error) {
				return reporter.Analyze(ctx, path, depth)
			}
		}

		folders, err := withProgress(cmd, title, task)
		if err != nil {
			return err
		}
		folders = filterMinSize(folders, minSize)

		out := cmd.OutOrStdout()
		if foldersJSON {
			return writeJSON(out, folders)
		}
		if len(folders) == 0 {
			fmt.Fprintln(out, dimStyle.Render("No folders found."))
			return nil
		}

		t := newTable("FOLDER", "SIZE", "FILES", "DIRS")
		for _, f := range folders {
			t.Row(
				f.Path,
				core.FormatSize(f.Size),
				humanize.Comma(int64(f.FileCount)),
				humanize.Comma(int64(f.DirCount)),
			)
		}
		renderTable(out, t)
		return nil
	},
}

// parseMinSize accepts sizes like "500MB" or "1.5GiB". Empty means no limit.
func parseMinSize(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid --min-size %q: %w", s, err)
	}
	return n, nil
}

func filterMinSize(folders []folder.FolderInfo, min uint64) []folder.FolderInfo {
	if min == 0 {
		return folders
	}
	kept := folders[:0]
	for _, f := range folders {
		if f.Size >= min {
			kept = append(kept, f)
		}
	}
	return kept
}

func init() {
	foldersCmd.Flags().IntVar(&foldersDepth, "depth", folder.DefaultDepth, "Directory levels to descend (default from config)")
	foldersCmd.Flags().StringVar(&foldersMinSize, "min-size", "", "Hide folders smaller than this, e.g. 100MB")
	foldersCmd.Flags().BoolVar(&foldersJSON, "json", false, "Print JSON instead of a table")
}
