package cleanup

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/CristiGvl/picoMaint/internal/folder"
)

// Item is the reclaimable size found for one category.
type Item struct {
	Category Category `json:"category"`
	Size     uint64   `json:"size_bytes"`
	Count    int      `json:"file_count"`
	// Paths lists the locations that existed and were measured.
	Paths []string `json:"paths"`
}

// Scanner sizes the cleanup catalogue.
type Scanner struct {
	targets []Target
}

// NewScanner creates a Scanner over the standard catalogue.
func NewScanner(p Paths) *Scanner {
	return &Scanner{targets: Catalogue(p)}
}

// Scan measures every target and returns the non-empty ones in catalogue
// order. A target is reported only if one of its paths exists and something
// was found there; targets with RequireFiles also need at least one file.
// The only error is a done context.
func (s *Scanner) Scan(ctx context.Context) ([]Item, error) {
	items := []Item{}

	for _, t := range s.targets {
		if item, ok := scanTarget(ctx, t); ok {
			items = append(items, item)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanTarget(ctx context.Context, t Target) (Item, bool) {
	item := Item{Category: t.Category, Paths: []string{}}

	for _, path := range t.Paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		totals := measure(ctx, path, t.SkipHidden)
		item.Size += totals.Size
		item.Count += totals.Files
		item.Paths = append(item.Paths, path)
	}

	switch {
	case len(item.Paths) == 0:
		return Item{}, false
	case t.RequireFiles && item.Count == 0:
		return Item{}, false
	case item.Size == 0 && item.Count == 0:
		return Item{}, false
	}
	return item, true
}

func measure(ctx context.Context, path string, skipHidden bool) folder.Totals {
	if !skipHidden {
		return folder.Aggregate(ctx, path, folder.Unbounded)
	}

	var totals folder.Totals
	entries, _ := os.ReadDir(path)
	for _, e := range entries {
		if ctx.Err() != nil || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}

		switch {
		case info.Mode().IsRegular():
			totals.Size += uint64(info.Size())
			totals.Files++
		case info.IsDir():
			sub := folder.Aggregate(ctx, filepath.Join(path, e.Name()), folder.Unbounded)
			totals.Size += sub.Size
			totals.Files += sub.Files
			totals.Dirs += sub.Dirs + 1
		}
	}
	return totals
}
