package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CristiGvl/picoMaint/internal/cleanup"
	"github.com/CristiGvl/picoMaint/internal/disk"
	"github.com/CristiGvl/picoMaint/internal/folder"
	"github.com/CristiGvl/picoMaint/internal/sysinfo"
	"github.com/CristiGvl/picoMaint/internal/temps"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

// scan runs fn once for concurrent callers asking for the same key.
func scan[T any](s *Server, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	v, err, _ := s.scans.Do(key, func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
		defer cancel()
		return fn(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Mount endpoint
func (s *Server) getMounts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	mounts, err := s.deps.Disk.GetMounts(ctx)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(mountViews(mounts))
}

// Temperature endpoint
func (s *Server) getTemps(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	sensors, err := s.deps.Temps.GetSensors(ctx)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(sensorViews(sensors))
}

// System endpoint
func (s *Server) getSystem(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	info, err := s.deps.System.GetInfo(ctx)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(newSystemView(info))
}

// Overview endpoint collects mounts, sensors and the host summary concurrently
func (s *Server) getOverview(c *fiber.Ctx) error {
	g, ctx := errgroup.WithContext(context.Background())
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var (
		mounts  []disk.MountPoint
		sensors []temps.Sensor
		info    *sysinfo.Info
	)
	g.Go(func() (err error) {
		mounts, err = s.deps.Disk.GetMounts(ctx)
		return err
	})
	g.Go(func() (err error) {
		sensors, err = s.deps.Temps.GetSensors(ctx)
		return err
	})
	g.Go(func() (err error) {
		info, err = s.deps.System.GetInfo(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"mounts":  mountViews(mounts),
		"sensors": sensorViews(sensors),
		"system":  newSystemView(info),
	})
}

// Large folder report endpoint
func (s *Server) getFolders(c *fiber.Ctx) error {
	folders, err := scan(s, "folders", s.deps.Folders.LargeFolders)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(folderViews(folders))
}

// Folder breakdown endpoint
func (s *Server) analyzeFolder(c *fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return c.Status(400).JSON(fiber.Map{"error": "path is required"})
	}
	depth := c.QueryInt("depth", s.deps.Folders.Depth)
	if depth < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "depth must not be negative"})
	}

	key := fmt.Sprintf("analyze:%d:%s", depth, path)
	folders, err := scan(s, key, func(ctx context.Context) ([]folder.FolderInfo, error) {
		return s.deps.Folders.Analyze(ctx, path, depth)
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(folderViews(folders))
}

// Cleanup scan endpoint
func (s *Server) getCleanup(c *fiber.Ctx) error {
	items, err := scan(s, "cleanup", s.deps.Scanner.Scan)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(newCleanupReport(items))
}

func (s *Server) getSuggestions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"suggestions": cleanup.Suggestions()})
}

type cleanupRequest struct {
	Categories []cleanup.Category `json:"categories"`
	DryRun     bool               `json:"dry_run"`
}

// Cleanup execution endpoint. Per-category failures are reported in the
// results, not as the response status.
func (s *Server) runCleanup(c *fiber.Ctx) error {
	var req cleanupRequest
	if err := c.BodyParser(&req); err != nil {
		if errors.Is(err, cleanup.ErrUnknownCategory) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(req.Categories) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "categories is required"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	executor := s.deps.Executor
	if req.DryRun {
		executor = executor.WithDryRun(true)
	}
	results := executor.ExecuteAll(ctx, req.Categories)

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}

	return c.JSON(fiber.Map{
		"dry_run":   executor.DryRun(),
		"results":   results,
		"failed":    failed,
		"timestamp": time.Now().Unix(),
	})
}
