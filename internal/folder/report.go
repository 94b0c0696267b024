package folder

import (
	"context"
	"os"
	"path/filepath"
	"sort"
)

// DefaultDepth bounds the large-folder report.
const DefaultDepth = 3

// FolderInfo is the measured size of one directory.
type FolderInfo struct {
	Path      string `json:"path"`
	Size      uint64 `json:"size_bytes"`
	FileCount int    `json:"file_count"`
	DirCount  int    `json:"dir_count"`
}

// commonFolders are checked, in this order, relative to the home directory.
var commonFolders = []string{
	".cache",
	filepath.Join(".local", "share"),
	"Downloads",
	"Documents",
	"Pictures",
	"Videos",
	"Music",
	".config",
}

// Reporter produces folder size reports.
type Reporter struct {
	Home  string
	Depth int
}

// NewReporter creates a Reporter anchored at home. A negative depth falls
// back to DefaultDepth.
func NewReporter(home string, depth int) *Reporter {
	if depth < 0 {
		depth = DefaultDepth
	}
	return &Reporter{Home: home, Depth: depth}
}

// Candidates returns the absolute paths the large-folder report looks at.
func (r *Reporter) Candidates() []string {
	if r.Home == "" {
		return nil
	}
	paths := make([]string, 0, len(commonFolders))
	for _, rel := range commonFolders {
		paths = append(paths, filepath.Join(r.Home, rel))
	}
	return paths
}

// LargeFolders measures the well-known home folders that exist and returns
// them largest first. Ties keep no guaranteed order.
func (r *Reporter) LargeFolders(ctx context.Context) ([]FolderInfo, error) {
	folders := []FolderInfo{}

	for _, path := range r.Candidates() {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			continue
		}
		folders = append(folders, measure(ctx, path, r.Depth))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sortBySize(folders)
	return folders, nil
}

// Analyze measures each immediate subdirectory of path down to depth and
// returns them largest first. A path that is not a directory yields an
// empty result.
func (r *Reporter) Analyze(ctx context.Context, path string, depth int) ([]FolderInfo, error) {
	folders := []FolderInfo{}

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return folders, nil
	}

	entries, _ := os.ReadDir(path)
	for _, e := range entries {
		if ctx.Err() != nil {
			break
		}
		// e.IsDir uses the entry type, so symlinked directories are left out.
		if !e.IsDir() {
			continue
		}
		folders = append(folders, measure(ctx, filepath.Join(path, e.Name()), depth))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sortBySize(folders)
	return folders, nil
}

func measure(ctx context.Context, path string, depth int) FolderInfo {
	t := Aggregate(ctx, path, depth)
	return FolderInfo{
		Path:      path,
		Size:      t.Size,
		FileCount: t.Files,
		DirCount:  t.Dirs,
	}
}

func sortBySize(folders []FolderInfo) {
	sort.SliceStable(folders, func(i, j int) bool {
		return folders[i].Size > folders[j].Size
	})
}
