package api

import (
	"net/url"
	"strings"
	"time"

	"github.com/CristiGvl/picoMaint/internal/cleanup"
	"github.com/CristiGvl/picoMaint/internal/config"
	"github.com/CristiGvl/picoMaint/internal/disk"
	"github.com/CristiGvl/picoMaint/internal/folder"
	"github.com/CristiGvl/picoMaint/internal/platform"
	"github.com/CristiGvl/picoMaint/internal/sysinfo"
	"github.com/CristiGvl/picoMaint/internal/temps"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"golang.org/x/sync/singleflight"
)

const (
	requestTimeout = 10 * time.Second
	// Directory walks over a large home can take minutes.
	scanTimeout = 5 * time.Minute
)

// Deps are the engine components the server exposes.
type Deps struct {
	Disk     disk.Reader
	Temps    temps.Reader
	System   sysinfo.Reader
	Folders  *folder.Reporter
	Scanner  *cleanup.Scanner
	Executor *cleanup.Executor
	Version  string
	// AllowOrigins are extra browser origins allowed to call the API.
	AllowOrigins []string
	// AccessLog enables per-request logging.
	AccessLog bool
}

// Server represents the API server
type Server struct {
	app   *fiber.App
	deps  Deps
	scans singleflight.Group
}

// NewServer creates a new API server from configuration
func NewServer(cfg *config.Config, version string) (*Server, error) {
	// Validate platform support
	if err := platform.ValidateSupport(); err != nil {
		return nil, err
	}

	return New(Deps{
		Disk:         disk.NewReader(cfg.Disk.MountTable),
		Temps:        temps.NewReader(cfg.Sensors.SysfsRoot),
		System:       sysinfo.NewReader(),
		Folders:      folder.NewReporter(cfg.Folders.Home, cfg.Folders.Depth),
		Scanner:      cleanup.NewScanner(cleanup.NewPaths(cfg.Cleanup)),
		Executor:     cleanup.NewExecutorFromConfig(cfg.Cleanup),
		Version:      version,
		AllowOrigins: cfg.Server.AllowOrigins,
		AccessLog:    true,
	}), nil
}

// New creates a server over already constructed components
func New(deps Deps) *Server {
	app := fiber.New(fiber.Config{
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          scanTimeout + 30*time.Second,
		IdleTimeout:           120 * time.Second,
		ServerHeader:          config.AppName,
		AppName:               config.AppName + " " + deps.Version,
		DisableStartupMessage: true,
	})

	// Middleware
	if deps.AccessLog {
		app.Use(logger.New())
	}
	app.Use(compress.New())
	if len(deps.AllowOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins: strings.Join(deps.AllowOrigins, ","),
			AllowMethods: "GET,POST,OPTIONS",
			AllowHeaders: "Origin,Content-Type,Accept",
			MaxAge:       86400, // 24 hours
		}))
	}

	server := &Server{
		app:  app,
		deps: deps,
	}
	app.Use(server.sameOriginWrites)

	server.setupRoutes()
	return server
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.app.Group("/api")

	api.Get("/mounts", s.getMounts)
	api.Get("/temps", s.getTemps)
	api.Get("/system", s.getSystem)
	api.Get("/overview", s.getOverview)

	// Folder reports
	api.Get("/folders", s.getFolders)
	api.Get("/folders/analyze", s.analyzeFolder)

	// Cleanup
	api.Get("/cleanup", s.getCleanup)
	api.Get("/cleanup/suggestions", s.getSuggestions)
	api.Post("/cleanup", s.runCleanup)

	// Health check
	api.Get("/health", s.healthCheck)
}

// sameOriginWrites refuses state-changing browser requests from origins other
// than the server itself and AllowOrigins. Requests without an Origin header
// (curl, scripts) are not browser cross-origin requests and pass.
func (s *Server) sameOriginWrites(c *fiber.Ctx) error {
	switch c.Method() {
	case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
		return c.Next()
	}

	origin := c.Get(fiber.HeaderOrigin)
	if origin == "" || s.originAllowed(origin, string(c.Request().Host())) {
		return c.Next()
	}
	return c.Status(403).JSON(fiber.Map{"error": "cross-origin request refused"})
}

func (s *Server) originAllowed(origin, host string) bool {
	for _, allowed := range s.deps.AllowOrigins {
		if strings.EqualFold(origin, allowed) {
			return true
		}
	}
	u, err := url.Parse(origin)
	return err == nil && u.Host != "" && strings.EqualFold(u.Host, host)
}

// Start starts the API server
func (s *Server) Start(address string) error {
	return s.app.Listen(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// Health check endpoint
func (s *Server) healthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"platform":  platform.GetOS(),
		"version":   s.deps.Version,
		"timestamp": time.Now().Unix(),
	})
}
