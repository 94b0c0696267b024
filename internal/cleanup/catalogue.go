package cleanup

import (
	"path/filepath"

	"github.com/CristiGvl/picoMaint/internal/config"
)

// Paths anchors the catalogue. Home-relative locations are derived from Home;
// an empty Home leaves them unset.
type Paths struct {
	Home         string
	PackageCache string
	Journal      string
	Temp         string
}

// NewPaths takes the catalogue anchors from configuration.
func NewPaths(cfg config.Cleanup) Paths {
	return Paths{
		Home:         cfg.Home,
		PackageCache: cfg.PackageCache,
		Journal:      cfg.Journal,
		Temp:         cfg.Temp,
	}
}

func (p Paths) home(elem ...string) string {
	if p.Home == "" {
		return ""
	}
	return filepath.Join(append([]string{p.Home}, elem...)...)
}

// Thumbnails is the freedesktop thumbnail cache.
func (p Paths) Thumbnails() string { return p.home(".cache", "thumbnails") }

// TrashFiles holds trashed file contents.
func (p Paths) TrashFiles() string { return p.home(".local", "share", "Trash", "files") }

// TrashInfo holds the .trashinfo metadata for TrashFiles.
func (p Paths) TrashInfo() string { return p.home(".local", "share", "Trash", "info") }

// FirefoxCache is Firefox's disk cache root.
func (p Paths) FirefoxCache() string { return p.home(".cache", "mozilla", "firefox") }

// ChromeCache is Chrome's disk cache root.
func (p Paths) ChromeCache() string { return p.home(".cache", "google-chrome") }

// Target is one catalogue entry: a category and the paths that size it.
type Target struct {
	Category Category
	Paths    []string
	// RequireFiles drops the category from a scan when no files were found.
	RequireFiles bool
	// SkipHidden leaves out top-level dot entries, which cleanup keeps.
	SkipHidden bool
}

// Catalogue returns the scannable targets in report order. Old kernels are
// sized by the package manager, not by a directory, and are not listed.
func Catalogue(p Paths) []Target {
	return []Target{
		{Category: PackageCache, Paths: []string{p.PackageCache}},
		{Category: Thumbnails, Paths: []string{p.Thumbnails()}},
		{Category: Trash, Paths: []string{p.TrashFiles()}},
		{Category: Logs, Paths: []string{p.Journal}},
		{Category: BrowserCache, Paths: []string{p.FirefoxCache(), p.ChromeCache()}},
		{Category: TempFiles, Paths: []string{p.Temp}, RequireFiles: true, SkipHidden: true},
	}
}

// Suggestions are manual cleanup hints for things the executor does not cover
// or that a user may prefer to run by hand.
func Suggestions() []string {
	return []string{
		"Clear package cache: sudo apt-get clean",
		"Remove old kernels: sudo apt-get autoremove",
		"Clear thumbnail cache: rm -rf ~/.cache/thumbnails/*",
		"Empty trash: rm -rf ~/.local/share/Trash/*",
		"Clear browser cache in ~/.cache/mozilla or ~/.cache/google-chrome",
		"Remove unused Flatpak runtimes: flatpak uninstall --unused",
	}
}
