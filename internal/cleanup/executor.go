package cleanup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/CristiGvl/picoMaint/internal/config"
)

// ErrProtectedPath is returned instead of clearing the filesystem root, the
// home directory, or an unset path.
var ErrProtectedPath = errors.New("refusing to clear protected path")

// DefaultVacuumTime is the journal retention used when none is configured.
const DefaultVacuumTime = "7d"

// ActionKind says how a category is reclaimed.
type ActionKind int

const (
	// ClearDirs empties directories in-process and recreates them.
	ClearDirs ActionKind = iota
	// Privileged runs an external command, usually through an elevation launcher.
	Privileged
)

func (k ActionKind) String() string {
	switch k {
	case ClearDirs:
		return "clear"
	case Privileged:
		return "command"
	default:
		return "unknown"
	}
}

// Action is the planned reclaim step for one category.
type Action struct {
	Kind    ActionKind `json:"-"`
	Dirs    []string   `json:"dirs,omitempty"`
	Command []string   `json:"command,omitempty"`
}

func (a Action) String() string {
	if a.Kind == ClearDirs {
		return "clear " + strings.Join(a.Dirs, ", ")
	}
	return strings.Join(a.Command, " ")
}

// Runner runs an external command to completion.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run executes name with args. A non-zero exit is reported with the command's
// combined output.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// CategoryError ties an execution failure to its category.
type CategoryError struct {
	Category Category
	Err      error
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("clean %s: %v", e.Category.Key(), e.Err)
}

func (e *CategoryError) Unwrap() error {
	return e.Err
}

// Result is the outcome of one category in ExecuteAll.
type Result struct {
	Category Category `json:"category"`
	Action   string   `json:"action,omitempty"`
	Err      error    `json:"-"`
	Error    string   `json:"error,omitempty"`
}

// OK reports whether the category was reclaimed (or would be, in dry-run).
func (r Result) OK() bool {
	return r.Err == nil
}

// ExecutorConfig configures an Executor.
type ExecutorConfig struct {
	Paths Paths
	// Elevate prefixes privileged commands, e.g. "pkexec". Empty runs them directly.
	Elevate string
	// VacuumTime is passed to journalctl --vacuum-time.
	VacuumTime string
	// DryRun plans and logs actions without performing them.
	DryRun bool
}

// Executor performs reclaim actions.
type Executor struct {
	cfg    ExecutorConfig
	runner Runner
}

// NewExecutor creates an Executor. A nil runner uses ExecRunner.
func NewExecutor(cfg ExecutorConfig, runner Runner) *Executor {
	if runner == nil {
		runner = ExecRunner{}
	}
	if cfg.VacuumTime == "" {
		cfg.VacuumTime = DefaultVacuumTime
	}
	return &Executor{cfg: cfg, runner: runner}
}

// NewExecutorFromConfig builds an Executor running real commands.
func NewExecutorFromConfig(cfg config.Cleanup) *Executor {
	return NewExecutor(ExecutorConfig{
		Paths:      NewPaths(cfg),
		Elevate:    cfg.Elevate,
		VacuumTime: cfg.VacuumTime,
	}, ExecRunner{})
}

// DryRun reports whether actions are only planned.
func (e *Executor) DryRun() bool {
	return e.cfg.DryRun
}

// WithDryRun returns a copy of e with dry-run set to dry.
func (e *Executor) WithDryRun(dry bool) *Executor {
	c := *e
	c.cfg.DryRun = dry
	return &c
}

// Plan returns the action Execute would take for cat.
func (e *Executor) Plan(cat Category) (Action, error) {
	p := e.cfg.Paths

	switch cat {
	case PackageCache:
		return e.privileged("apt-get", "clean"), nil
	case Thumbnails:
		return Action{Kind: ClearDirs, Dirs: []string{p.Thumbnails()}}, nil
	case Trash:
		return Action{Kind: ClearDirs, Dirs: []string{p.TrashFiles(), p.TrashInfo()}}, nil
	case Logs:
		return e.privileged("journalctl", "--vacuum-time="+e.cfg.VacuumTime), nil
	case OldKernels:
		return e.privileged("apt-get", "autoremove", "--purge", "-y"), nil
	case BrowserCache:
		return Action{Kind: ClearDirs, Dirs: []string{p.FirefoxCache(), p.ChromeCache()}}, nil
	case TempFiles:
		if e.protected(p.Temp) {
			return Action{}, fmt.Errorf("%w: %q", ErrProtectedPath, p.Temp)
		}
		// Hidden entries such as .X11-unix and .ICE-unix belong to running sessions.
		return e.privileged("find", p.Temp, "-mindepth", "1", "-maxdepth", "1",
			"!", "-name", ".*", "-exec", "rm", "-rf", "{}", "+"), nil
	default:
		return Action{}, fmt.Errorf("%w: %d", ErrUnknownCategory, int(cat))
	}
}

func (e *Executor) privileged(args ...string) Action {
	cmd := args
	if e.cfg.Elevate != "" {
		cmd = append([]string{e.cfg.Elevate}, args...)
	}
	return Action{Kind: Privileged, Command: cmd}
}

// Execute reclaims cat. Errors are *CategoryError.
func (e *Executor) Execute(ctx context.Context, cat Category) error {
	action, err := e.Plan(cat)
	if err != nil {
		return &CategoryError{Category: cat, Err: err}
	}
	if err := e.execute(ctx, action); err != nil {
		return &CategoryError{Category: cat, Err: err}
	}
	return nil
}

func (e *Executor) execute(ctx context.Context, action Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	slog.Info("Cleaning", "action", action.String(), "dry_run", e.cfg.DryRun)
	if e.cfg.DryRun {
		return nil
	}

	switch action.Kind {
	case ClearDirs:
		var errs []error
		for _, dir := range action.Dirs {
			if err := e.clearDir(dir); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	case Privileged:
		return e.runner.Run(ctx, action.Command[0], action.Command[1:]...)
	default:
		return fmt.Errorf("unsupported action kind %v", action.Kind)
	}
}

// ExecuteAll executes each category independently. A failure in one does not
// stop the others.
func (e *Executor) ExecuteAll(ctx context.Context, cats []Category) []Result {
	results := make([]Result, 0, len(cats))

	for _, cat := range cats {
		r := Result{Category: cat}
		action, err := e.Plan(cat)
		if err == nil {
			r.Action = action.String()
			err = e.execute(ctx, action)
		}
		if err != nil {
			r.Err = &CategoryError{Category: cat, Err: err}
			r.Error = r.Err.Error()
			slog.Warn("Cleanup failed", "category", cat.Key(), "err", err)
		}
		results = append(results, r)
	}

	return results
}

func (e *Executor) protected(dir string) bool {
	if dir == "" {
		return true
	}
	clean := filepath.Clean(dir)
	if clean == string(filepath.Separator) {
		return true
	}
	home := e.cfg.Paths.Home
	if home == "" {
		return false
	}
	if clean == filepath.Clean(home) {
		return true
	}
	resolved, err := filepath.EvalSymlinks(home)
	return err == nil && clean == resolved
}

// clearDir removes everything under dir and recreates it with its previous
// permissions. A missing dir is already clear. When dir is a symlink the link
// is kept and the directory it points to is emptied instead.
func (e *Executor) clearDir(dir string) error {
	if e.protected(dir) {
		return fmt.Errorf("%w: %q", ErrProtectedPath, dir)
	}

	info, err := os.Lstat(dir)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("Nothing to clear", "path", dir)
		return nil
	}
	if err != nil {
		return err
	}

	if info.Mode()&os.ModeSymlink != 0 {
		return e.clearLinkTarget(dir)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	perm := info.Mode().Perm()
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to clear %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, perm); err != nil {
		return fmt.Errorf("failed to recreate %s: %w", dir, err)
	}
	return os.Chmod(dir, perm)
}

func (e *Executor) clearLinkTarget(link string) error {
	target, err := filepath.EvalSymlinks(link)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("Dangling symlink, nothing to clear", "path", link)
		return nil
	}
	if err != nil {
		return err
	}
	if e.protected(target) {
		return fmt.Errorf("%w: %q (via %s)", ErrProtectedPath, target, link)
	}

	info, err := os.Stat(target)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s does not point to a directory", link)
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		return fmt.Errorf("failed to clear %s: %w", link, err)
	}
	var errs []error
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(target, entry.Name())); err != nil {
			errs = append(errs, fmt.Errorf("failed to clear %s: %w", link, err))
		}
	}
	return errors.Join(errs...)
}
