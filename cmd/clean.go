package cmd

import (
	"fmt"
	"io"

	"github.com/CristiGvl/picoMaint/internal/cleanup"
	"github.com/CristiGvl/picoMaint/internal/core"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	cleanAll        bool
	cleanCategories []string
	cleanDryRun     bool
	cleanSuggest    bool
	cleanJSON       bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Find and reclaim disk space",
	Long: `Without flags, size every cleanup category and report what can be reclaimed.
With --all or --category, perform the cleanup. Package, journal and temp
cleanups run through the configured elevation launcher (pkexec by default).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if cleanSuggest {
			if cleanJSON {
				return writeJSON(out, cleanup.Suggestions())
			}
			for _, s := range cleanup.Suggestions() {
				fmt.Fprintln(out, "  • "+s)
			}
			return nil
		}

		cats, err := parseCategories(cleanCategories)
		if err != nil {
			return err
		}

		if cleanAll || len(cats) == 0 {
			scanner := cleanup.NewScanner(cleanup.NewPaths(cfg.Cleanup))
			items, err := withProgress(cmd, "Scanning cleanup targets", scanner.Scan)
			if err != nil {
				return err
			}

			if !cleanAll {
				if cleanJSON {
					return writeJSON(out, items)
				}
				printItems(out, items)
				return nil
			}

			for _, it := range items {
				cats = appendUnique(cats, it.Category)
			}
		}

		if len(cats) == 0 {
			fmt.Fprintln(out, okStyle.Render("Nothing to clean."))
			return nil
		}

		executor := cleanup.NewExecutorFromConfig(cfg.Cleanup).WithDryRun(cleanDryRun)
		results := executor.ExecuteAll(cmd.Context(), cats)

		if cleanJSON {
			if err := writeJSON(out, struct {
				DryRun  bool             `json:"dry_run"`
				Results []cleanup.Result `json:"results"`
			}{executor.DryRun(), results}); err != nil {
				return err
			}
		} else {
			printResults(out, results, executor.DryRun())
		}

		failed := 0
		for _, r := range results {
			if !r.OK() {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d cleanups failed", failed, len(results))
		}
		return nil
	},
}

func parseCategories(keys []string) ([]cleanup.Category, error) {
	var cats []cleanup.Category
	for _, k := range keys {
		c, err := cleanup.ParseCategory(k)
		if err != nil {
			return nil, err
		}
		cats = appendUnique(cats, c)
	}
	return cats, nil
}

func appendUnique(cats []cleanup.Category, c cleanup.Category) []cleanup.Category {
	for _, existing := range cats {
		if existing == c {
			return cats
		}
	}
	return append(cats, c)
}

func printItems(w io.Writer, items []cleanup.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, okStyle.Render("Nothing to clean."))
		return
	}

	var total uint64
	t := newTable("KEY", "CATEGORY", "SIZE", "FILES")
	for _, it := range items {
		t.Row(it.Category.Key(), it.Category.Name(), core.FormatSizeDetailed(it.Size), humanize.Comma(int64(it.Count)))
		total += it.Size
	}
	renderTable(w, t)

	fmt.Fprintf(w, "Reclaimable: %s\n", core.FormatSizeDetailed(total))
	fmt.Fprintln(w, dimStyle.Render("Run with --all, or --category <key>, to clean. Add --dry-run to preview."))
}

func printResults(w io.Writer, results []cleanup.Result, dryRun bool) {
	t := newTable("CATEGORY", "ACTION", "STATUS")
	for _, r := range results {
		status := okStyle.Render("done")
		if dryRun {
			status = dimStyle.Render("planned")
		}
		if !r.OK() {
			status = errStyle.Render(r.Error)
		}
		t.Row(r.Category.Name(), r.Action, status)
	}
	renderTable(w, t)
}

func init() {
	keys := make([]string, 0, len(cleanup.All()))
	for _, c := range cleanup.All() {
		keys = append(keys, c.Key())
	}

	cleanCmd.Flags().BoolVar(&cleanAll, "all", false, "Clean every category the scan finds")
	cleanCmd.Flags().StringSliceVar(&cleanCategories, "category", nil, fmt.Sprintf("Category to clean, repeatable %v", keys))
	cleanCmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "Preview the cleanup plan without deleting")
	cleanCmd.Flags().BoolVar(&cleanSuggest, "suggest", false, "Print manual cleanup suggestions")
	cleanCmd.Flags().BoolVar(&cleanJSON, "json", false, "Print JSON instead of a table")
}
