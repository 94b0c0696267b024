package cleanup

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(strings.Repeat("x", size)), 0644); err != nil {
		t.Fatal(err)
	}
}

func mkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatal(err)
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range All() {
		got, err := ParseCategory(c.Key())
		if err != nil {
			t.Fatalf("ParseCategory(%q): %v", c.Key(), err)
		}
		if got != c {
			t.Errorf("ParseCategory(%q) = %v, want %v", c.Key(), got, c)
		}
	}

	if _, err := ParseCategory("flatpak"); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestCategoryJSON(t *testing.T) {
	data, err := json.Marshal(Item{Category: BrowserCache, Size: 1, Count: 1, Paths: []string{"/x"}})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"category":"browser_cache"`) {
		t.Errorf("unexpected encoding %s", data)
	}

	var req struct {
		Categories []Category `json:"categories"`
	}
	if err := json.Unmarshal([]byte(`{"categories":["trash","logs"]}`), &req); err != nil {
		t.Fatal(err)
	}
	if len(req.Categories) != 2 || req.Categories[0] != Trash || req.Categories[1] != Logs {
		t.Errorf("unexpected decode %v", req.Categories)
	}

	if err := json.Unmarshal([]byte(`{"categories":["nope"]}`), &req); err == nil {
		t.Error("expected error for unknown category key")
	}
}

func TestCatalogueOmitsOldKernels(t *testing.T) {
	for _, target := range Catalogue(Paths{Home: "/home/u"}) {
		if target.Category == OldKernels {
			t.Fatal("old kernels must not be scannable")
		}
	}
}

func TestScanSizesCategories(t *testing.T) {
	home := t.TempDir()
	p := Paths{Home: home}

	writeFile(t, filepath.Join(p.Thumbnails(), "normal", "a.png"), 100)
	writeFile(t, filepath.Join(p.Thumbnails(), "normal", "b.png"), 100)
	writeFile(t, filepath.Join(p.Thumbnails(), "large", "c.png"), 100)

	items, err := NewScanner(p).Scan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %+v", items)
	}
	got := items[0]
	if got.Category != Thumbnails || got.Size != 300 || got.Count != 3 {
		t.Errorf("unexpected item %+v", got)
	}
	if len(got.Paths) != 1 || got.Paths[0] != p.Thumbnails() {
		t.Errorf("unexpected paths %v", got.Paths)
	}
}

func TestScanOmitsMissingAndEmpty(t *testing.T) {
	home := t.TempDir()
	tmp := filepath.Join(t.TempDir(), "tmp")
	p := Paths{
		Home:         home,
		PackageCache: filepath.Join(home, "missing"),
		Temp:         tmp,
	}

	// Empty trash and a temp dir holding only directories.
	mkdir(t, p.TrashFiles())
	mkdir(t, filepath.Join(tmp, "systemd-private", "inner"))

	items, err := NewScanner(p).Scan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Errorf("expected no items, got %+v", items)
	}
}

func TestScanMergesBrowserCaches(t *testing.T) {
	home := t.TempDir()
	p := Paths{Home: home}

	writeFile(t, filepath.Join(p.FirefoxCache(), "profile", "cache2", "x"), 50)
	writeFile(t, filepath.Join(p.FirefoxCache(), "profile", "cache2", "y"), 50)
	writeFile(t, filepath.Join(p.ChromeCache(), "Default", "z"), 25)

	items, err := NewScanner(p).Scan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 merged item, got %+v", items)
	}
	if items[0].Category != BrowserCache || items[0].Size != 125 || items[0].Count != 3 {
		t.Errorf("unexpected item %+v", items[0])
	}
	if len(items[0].Paths) != 2 {
		t.Errorf("expected both browser paths, got %v", items[0].Paths)
	}
}

func TestScanOrder(t *testing.T) {
	root := t.TempDir()
	p := Paths{
		Home:         filepath.Join(root, "home"),
		PackageCache: filepath.Join(root, "apt"),
		Journal:      filepath.Join(root, "journal"),
		Temp:         filepath.Join(root, "tmp"),
	}

	writeFile(t, filepath.Join(p.Temp, "t"), 1)
	writeFile(t, filepath.Join(p.ChromeCache(), "c"), 1)
	writeFile(t, filepath.Join(p.Journal, "system.journal"), 1)
	writeFile(t, filepath.Join(p.TrashFiles(), "old.txt"), 1)
	writeFile(t, filepath.Join(p.Thumbnails(), "a.png"), 1)
	writeFile(t, filepath.Join(p.PackageCache, "pkg.deb"), 1)

	items, err := NewScanner(p).Scan(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	want := []Category{PackageCache, Thumbnails, Trash, Logs, BrowserCache, TempFiles}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %+v", len(want), items)
	}
	for i, c := range want {
		if items[i].Category != c {
			t.Errorf("item %d: got %v, want %v", i, items[i].Category, c)
		}
	}
}

func TestScanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewScanner(Paths{Home: t.TempDir()}).Scan(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

type call struct {
	name string
	args []string
}

type fakeRunner struct {
	calls []call
	fail  map[string]error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	f.calls = append(f.calls, call{name: name, args: args})
	key := strings.Join(append([]string{name}, args...), " ")
	return f.fail[key]
}

func TestPlanPrivilegedCommands(t *testing.T) {
	e := NewExecutor(ExecutorConfig{
		Paths:   Paths{Home: "/home/u", Temp: "/tmp"},
		Elevate: "pkexec",
	}, &fakeRunner{})

	tests := []struct {
		cat  Category
		want string
	}{
		{PackageCache, "pkexec apt-get clean"},
		{Logs, "pkexec journalctl --vacuum-time=7d"},
		{OldKernels, "pkexec apt-get autoremove --purge -y"},
		{TempFiles, "pkexec find /tmp -mindepth 1 -maxdepth 1 ! -name .* -exec rm -rf {} +"},
		{Thumbnails, "clear /home/u/.cache/thumbnails"},
	}

	for _, tt := range tests {
		action, err := e.Plan(tt.cat)
		if err != nil {
			t.Fatalf("Plan(%v): %v", tt.cat, err)
		}
		if got := action.String(); got != tt.want {
			t.Errorf("Plan(%v) = %q, want %q", tt.cat, got, tt.want)
		}
	}
}

func TestPlanWithoutElevation(t *testing.T) {
	e := NewExecutor(ExecutorConfig{VacuumTime: "2weeks"}, &fakeRunner{})

	action, err := e.Plan(Logs)
	if err != nil {
		t.Fatal(err)
	}
	if got := action.String(); got != "journalctl --vacuum-time=2weeks" {
		t.Errorf("unexpected command %q", got)
	}
}

func TestPlanUnknownCategory(t *testing.T) {
	e := NewExecutor(ExecutorConfig{}, &fakeRunner{})

	if _, err := e.Plan(Category(42)); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestExecuteRunsCommand(t *testing.T) {
	runner := &fakeRunner{}
	e := NewExecutor(ExecutorConfig{Elevate: "sudo"}, runner)

	if err := e.Execute(context.Background(), PackageCache); err != nil {
		t.Fatal(err)
	}
	if len(runner.calls) != 1 {
		t.Fatalf("expected one command, got %+v", runner.calls)
	}
	c := runner.calls[0]
	if c.name != "sudo" || strings.Join(c.args, " ") != "apt-get clean" {
		t.Errorf("unexpected call %+v", c)
	}
}

func TestExecuteClearsAndRecreates(t *testing.T) {
	p := Paths{Home: t.TempDir()}
	writeFile(t, filepath.Join(p.Thumbnails(), "normal", "a.png"), 10)
	if err := os.Chmod(p.Thumbnails(), 0700); err != nil {
		t.Fatal(err)
	}

	e := NewExecutor(ExecutorConfig{Paths: p}, &fakeRunner{})
	if err := e.Execute(context.Background(), Thumbnails); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(p.Thumbnails())
	if err != nil {
		t.Fatalf("directory should be recreated: %v", err)
	}
	if info.Mode().Perm() != 0700 {
		t.Errorf("expected mode 0700, got %v", info.Mode().Perm())
	}
	entries, err := os.ReadDir(p.Thumbnails())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty directory, got %d entries", len(entries))
	}
}

func TestExecuteTrashClearsInfo(t *testing.T) {
	p := Paths{Home: t.TempDir()}
	writeFile(t, filepath.Join(p.TrashFiles(), "old.txt"), 10)
	writeFile(t, filepath.Join(p.TrashInfo(), "old.txt.trashinfo"), 10)

	e := NewExecutor(ExecutorConfig{Paths: p}, &fakeRunner{})
	if err := e.Execute(context.Background(), Trash); err != nil {
		t.Fatal(err)
	}

	for _, dir := range []string{p.TrashFiles(), p.TrashInfo()} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 0 {
			t.Errorf("%s: expected empty, got %d entries", dir, len(entries))
		}
	}
}

func TestExecuteMissingDirIsNoop(t *testing.T) {
	p := Paths{Home: t.TempDir()}
	e := NewExecutor(ExecutorConfig{Paths: p}, &fakeRunner{})

	if err := e.Execute(context.Background(), BrowserCache); err != nil {
		t.Errorf("expected nil for absent caches, got %v", err)
	}
	if _, err := os.Stat(p.FirefoxCache()); !os.IsNotExist(err) {
		t.Error("absent directory should not be created")
	}
}

func TestExecuteProtectedPaths(t *testing.T) {
	e := NewExecutor(ExecutorConfig{Paths: Paths{Temp: "/"}}, &fakeRunner{})

	for _, cat := range []Category{Thumbnails, TempFiles} {
		err := e.Execute(context.Background(), cat)
		if !errors.Is(err, ErrProtectedPath) {
			t.Errorf("%v: expected ErrProtectedPath, got %v", cat, err)
		}
		var catErr *CategoryError
		if !errors.As(err, &catErr) || catErr.Category != cat {
			t.Errorf("%v: expected CategoryError, got %v", cat, err)
		}
	}
}

func TestExecuteDryRun(t *testing.T) {
	p := Paths{Home: t.TempDir()}
	file := filepath.Join(p.Thumbnails(), "a.png")
	writeFile(t, file, 10)

	runner := &fakeRunner{}
	e := NewExecutor(ExecutorConfig{Paths: p, DryRun: true}, runner)

	results := e.ExecuteAll(context.Background(), []Category{Thumbnails, PackageCache})
	for _, r := range results {
		if !r.OK() {
			t.Errorf("%v: unexpected error %v", r.Category, r.Err)
		}
		if r.Action == "" {
			t.Errorf("%v: expected planned action", r.Category)
		}
	}
	if len(runner.calls) != 0 {
		t.Errorf("dry run should not run commands, got %+v", runner.calls)
	}
	if _, err := os.Stat(file); err != nil {
		t.Errorf("dry run should not remove files: %v", err)
	}
}

func TestExecuteAllIndependent(t *testing.T) {
	p := Paths{Home: t.TempDir()}
	writeFile(t, filepath.Join(p.Thumbnails(), "a.png"), 10)
	writeFile(t, filepath.Join(p.TrashFiles(), "b"), 10)

	runner := &fakeRunner{fail: map[string]error{
		"apt-get clean": errors.New("exit status 100"),
	}}
	e := NewExecutor(ExecutorConfig{Paths: p}, runner)

	results := e.ExecuteAll(context.Background(), []Category{Thumbnails, PackageCache, Trash})
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !results[0].OK() || !results[2].OK() {
		t.Errorf("unrelated categories should succeed: %+v", results)
	}
	if results[1].OK() || !strings.Contains(results[1].Error, "exit status 100") {
		t.Errorf("expected package cache failure, got %+v", results[1])
	}

	entries, _ := os.ReadDir(p.TrashFiles())
	if len(entries) != 0 {
		t.Error("trash should be cleared after an earlier failure")
	}
}

func TestWithDryRunCopies(t *testing.T) {
	e := NewExecutor(ExecutorConfig{}, &fakeRunner{})
	dry := e.WithDryRun(true)

	if e.DryRun() || !dry.DryRun() {
		t.Errorf("WithDryRun should not modify the original: %v %v", e.DryRun(), dry.DryRun())
	}
}

func TestScanTempIgnoresHiddenEntries(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "tmp")
	writeFile(t, filepath.Join(tmp, ".X11-unix", "X0"), 0)
	writeFile(t, filepath.Join(tmp, ".lock"), 5)

	items, err := NewScanner(Paths{Temp: tmp}).Scan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Fatalf("hidden session entries alone should not be reported, got %+v", items)
	}

	writeFile(t, filepath.Join(tmp, "junk.txt"), 10)
	writeFile(t, filepath.Join(tmp, "build", "out.o"), 20)

	items, err = NewScanner(Paths{Temp: tmp}).Scan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Size != 30 || items[0].Count != 2 {
		t.Errorf("unexpected temp item %+v", items)
	}
}

func TestExecuteTempFilesKeepsHiddenEntries(t *testing.T) {
	for _, bin := range []string{"find", "rm"} {
		if _, err := exec.LookPath(bin); err != nil {
			t.Skipf("%s not available: %v", bin, err)
		}
	}

	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, ".X11-unix", "X0"), 0)
	writeFile(t, filepath.Join(tmp, ".ICE-unix", "1234"), 0)
	writeFile(t, filepath.Join(tmp, "junk.txt"), 10)
	writeFile(t, filepath.Join(tmp, "build", ".hidden-inside"), 10)

	e := NewExecutor(ExecutorConfig{Paths: Paths{Temp: tmp}}, ExecRunner{})
	if err := e.Execute(context.Background(), TempFiles); err != nil {
		t.Fatal(err)
	}

	for _, kept := range []string{".X11-unix/X0", ".ICE-unix/1234"} {
		if _, err := os.Stat(filepath.Join(tmp, kept)); err != nil {
			t.Errorf("%s should be kept: %v", kept, err)
		}
	}
	for _, removed := range []string{"junk.txt", "build"} {
		if _, err := os.Stat(filepath.Join(tmp, removed)); !os.IsNotExist(err) {
			t.Errorf("%s should be removed, stat err = %v", removed, err)
		}
	}
	if _, err := os.Stat(tmp); err != nil {
		t.Errorf("temp directory itself should remain: %v", err)
	}
}

func TestExecuteClearsSymlinkedCacheTarget(t *testing.T) {
	p := Paths{Home: t.TempDir()}
	target := filepath.Join(t.TempDir(), "chrome-cache")
	writeFile(t, filepath.Join(target, "Default", "Cache", "data_0"), 10)
	mkdir(t, filepath.Dir(p.ChromeCache()))
	if err := os.Symlink(target, p.ChromeCache()); err != nil {
		t.Fatal(err)
	}

	e := NewExecutor(ExecutorConfig{Paths: p}, &fakeRunner{})
	if err := e.Execute(context.Background(), BrowserCache); err != nil {
		t.Fatal(err)
	}

	info, err := os.Lstat(p.ChromeCache())
	if err != nil {
		t.Fatalf("symlink should be kept: %v", err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Error("cache path should still be a symlink")
	}
	entries, err := os.ReadDir(target)
	if err != nil {
		t.Fatalf("link target should still exist: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("link target should be emptied, got %d entries", len(entries))
	}
}

func TestExecuteRefusesSymlinkToHome(t *testing.T) {
	home := t.TempDir()
	p := Paths{Home: home}
	keep := filepath.Join(home, "Documents", "thesis.txt")
	writeFile(t, keep, 10)
	mkdir(t, filepath.Dir(p.Thumbnails()))
	if err := os.Symlink(home, p.Thumbnails()); err != nil {
		t.Fatal(err)
	}

	e := NewExecutor(ExecutorConfig{Paths: p}, &fakeRunner{})
	if err := e.Execute(context.Background(), Thumbnails); !errors.Is(err, ErrProtectedPath) {
		t.Errorf("expected ErrProtectedPath, got %v", err)
	}
	if _, err := os.Stat(keep); err != nil {
		t.Errorf("home contents must survive: %v", err)
	}
}
