// Package config holds picoMaint's runtime settings. Values start from
// built-in defaults and are optionally overridden by a JSON file under the
// XDG config home.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName is used for the config directory name.
const AppName = "picomaint"

// Server configures the HTTP API.
type Server struct {
	Bind string `json:"bind"`
	Port string `json:"port"`
	// AllowOrigins lists browser origins, besides the server's own, that may
	// call the API. Empty allows none.
	AllowOrigins []string `json:"allow_origins,omitempty"`
}

// Disk configures mount enumeration.
type Disk struct {
	// MountTable is the mounts(5) file to parse. Empty means /proc/self/mounts.
	MountTable string `json:"mount_table,omitempty"`
}

// Sensors configures temperature collection.
type Sensors struct {
	SysfsRoot string `json:"sysfs_root"`
}

// Folders configures the large-folder report.
type Folders struct {
	Home  string `json:"home"`
	Depth int    `json:"depth"`
}

// Cleanup configures the cleanup catalogue and its reclaim actions.
type Cleanup struct {
	Home         string `json:"home"`
	PackageCache string `json:"package_cache"`
	Journal      string `json:"journal"`
	Temp         string `json:"temp"`
	// Elevate is the launcher used for privileged commands. Empty runs them directly.
	Elevate    string `json:"elevate"`
	VacuumTime string `json:"vacuum_time"`
}

// Config is the full application configuration.
type Config struct {
	Server  Server  `json:"server"`
	Disk    Disk    `json:"disk"`
	Sensors Sensors `json:"sensors"`
	Folders Folders `json:"folders"`
	Cleanup Cleanup `json:"cleanup"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	home := homeDir()
	return &Config{
		Server: Server{
			Bind: "127.0.0.1",
			Port: "8080",
		},
		Sensors: Sensors{
			SysfsRoot: "/sys",
		},
		Folders: Folders{
			Home:  home,
			Depth: 3,
		},
		Cleanup: Cleanup{
			Home:         home,
			PackageCache: "/var/cache/apt/archives",
			Journal:      "/var/log/journal",
			Temp:         "/tmp",
			Elevate:      "pkexec",
			VacuumTime:   "7d",
		},
	}
}

// DefaultPath returns the config file location under the XDG config home.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.json")
}

// Load reads the config file at path on top of the defaults. An empty path
// means DefaultPath. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that would make the engine misbehave.
func (c *Config) Validate() error {
	if c.Folders.Depth < 0 {
		return fmt.Errorf("folders.depth must be >= 0, got %d", c.Folders.Depth)
	}
	if c.Sensors.SysfsRoot == "" {
		return errors.New("sensors.sysfs_root must not be empty")
	}
	if c.Cleanup.VacuumTime == "" {
		return errors.New("cleanup.vacuum_time must not be empty")
	}
	return nil
}

// homeDir prefers $HOME, as the maintenance panel always did, and falls back
// to the XDG-resolved home.
func homeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	return xdg.Home
}
