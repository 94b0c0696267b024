// Package folder measures directory trees and reports the largest folders
// under a user's home directory.
package folder

import (
	"context"
	"os"
	"path/filepath"
)

// Unbounded disables the depth limit of Aggregate.
const Unbounded = -1

// Totals is the aggregate of a directory tree.
type Totals struct {
	Size  uint64 `json:"size_bytes"`
	Files int    `json:"file_count"`
	Dirs  int    `json:"dir_count"`
}

// Empty reports whether the tree held no files and no subdirectories.
func (t Totals) Empty() bool {
	return t.Size == 0 && t.Files == 0 && t.Dirs == 0
}

func (t *Totals) add(o Totals) {
	t.Size += o.Size
	t.Files += o.Files
	t.Dirs += o.Dirs
}

// Aggregate sums regular-file sizes and counts files and directories below
// root. Subdirectories are descended while their depth stays within
// maxDepth, so maxDepth 0 covers only the files directly inside root;
// directories are counted at every level that gets listed.
//
// Entries are examined without following symlinks: a link is neither a file
// nor a directory here, which keeps cyclic trees finite. Unreadable entries
// are skipped. The context is checked between entries; once it is done the
// partial totals collected so far are returned.
func Aggregate(ctx context.Context, root string, maxDepth int) Totals {
	return aggregate(ctx, root, 0, maxDepth)
}

func aggregate(ctx context.Context, dir string, depth, maxDepth int) Totals {
	var t Totals

	// ReadDir hands back whatever it managed to read alongside the error.
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if ctx.Err() != nil {
			return t
		}

		info, err := e.Info()
		if err != nil {
			continue
		}

		switch {
		case info.Mode().IsRegular():
			t.Size += uint64(info.Size())
			t.Files++
		case info.IsDir():
			t.Dirs++
			if maxDepth < 0 || depth < maxDepth {
				t.add(aggregate(ctx, filepath.Join(dir, e.Name()), depth+1, maxDepth))
			}
		}
	}

	return t
}
