// Package cleanup sizes reclaimable disk usage by category and performs the
// reclaim action for a chosen category.
package cleanup

import (
	"errors"
	"fmt"
)

// ErrUnknownCategory is returned for category keys or values outside the catalogue.
var ErrUnknownCategory = errors.New("unknown cleanup category")

// Category is one closed class of reclaimable disk usage.
type Category int

const (
	PackageCache Category = iota
	Thumbnails
	Trash
	Logs
	OldKernels
	BrowserCache
	TempFiles
)

var categoryInfo = [...]struct {
	key         string
	name        string
	description string
}{
	PackageCache: {"package_cache", "Package Cache", "APT package cache and downloaded .deb files"},
	Thumbnails:   {"thumbnails", "Thumbnail Cache", "Cached thumbnail images"},
	Trash:        {"trash", "Trash", "Files in trash bin"},
	Logs:         {"logs", "Old System Logs", "Rotated and old system log files"},
	OldKernels:   {"old_kernels", "Old Kernels", "Old kernel versions (keeps current and one previous)"},
	BrowserCache: {"browser_cache", "Browser Cache", "Firefox and Chrome cache files"},
	TempFiles:    {"temp_files", "Temporary Files", "Temporary files in /tmp"},
}

// All returns every category in display order.
func All() []Category {
	return []Category{PackageCache, Thumbnails, Trash, Logs, OldKernels, BrowserCache, TempFiles}
}

func (c Category) valid() bool {
	return c >= 0 && int(c) < len(categoryInfo)
}

// Key is the stable identifier used in JSON and on the command line.
func (c Category) Key() string {
	if !c.valid() {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryInfo[c].key
}

// Name is the human-readable title.
func (c Category) Name() string {
	if !c.valid() {
		return c.Key()
	}
	return categoryInfo[c].name
}

// Description explains what the category covers.
func (c Category) Description() string {
	if !c.valid() {
		return ""
	}
	return categoryInfo[c].description
}

func (c Category) String() string {
	return c.Name()
}

// MarshalText encodes the category as its key.
func (c Category) MarshalText() ([]byte, error) {
	if !c.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	return []byte(c.Key()), nil
}

// UnmarshalText decodes a category key.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory looks a category up by key.
func ParseCategory(key string) (Category, error) {
	for _, c := range All() {
		if categoryInfo[c].key == key {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, key)
}
