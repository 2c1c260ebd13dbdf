package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest/observer"

	"github.com/backmassage/renamer/internal/config"
	"github.com/backmassage/renamer/internal/logging"
	"github.com/backmassage/renamer/internal/naming"
	"github.com/backmassage/renamer/internal/sequence"
)

const dir = "target"

// --- ListFiles tests ---

func TestListFiles_SkipsDirectories(t *testing.T) {
	fsys := newFS(t, "a.txt", "b.txt")
	require.NoError(t, fsys.MkdirAll(fsys.Join(dir, "sub"), 0o755))
	touch(t, fsys, fsys.Join(dir, "sub", "nested.txt"))

	files, err := ListFiles(fsys, dir, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.txt", "b.txt"}, entryNames(files))
	for _, f := range files {
		assert.Equal(t, fsys.Join(dir, f.Name), f.Path)
	}
}

func TestListFiles_EmptyDir(t *testing.T) {
	fsys := newFS(t)
	files, err := ListFiles(fsys, dir, "")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestListFiles_NotFound(t *testing.T) {
	fsys := memfs.New()
	_, err := ListFiles(fsys, "missing", "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestListFiles_NotADirectory(t *testing.T) {
	fsys := newFS(t, "a.txt")
	_, err := ListFiles(fsys, fsys.Join(dir, "a.txt"), "")
	assert.ErrorIs(t, err, ErrNotADirectory)
}

func TestListFiles_Glob(t *testing.T) {
	fsys := newFS(t, "a.jpg", "b.png", "c.txt", "d.JPG")
	files, err := ListFiles(fsys, dir, "*.{jpg,png}")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.jpg", "b.png"}, entryNames(files))
}

func TestListFiles_KeepsReadDirOrder(t *testing.T) {
	fsys := newFS(t, "c.txt", "a.txt", "b.txt")
	infos, err := fsys.ReadDir(dir)
	require.NoError(t, err)
	var want []string
	for _, fi := range infos {
		want = append(want, fi.Name())
	}

	files, err := ListFiles(fsys, dir, "")
	require.NoError(t, err)
	assert.Equal(t, want, entryNames(files))
}

func TestListFiles_OSSymlinks(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "real.txt"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "subdir"), 0o755))
	if err := os.Symlink(filepath.Join(root, "real.txt"), filepath.Join(root, "link-to-file")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(root, "subdir"), filepath.Join(root, "link-to-dir")))
	require.NoError(t, os.Symlink(filepath.Join(root, "nowhere"), filepath.Join(root, "dangling")))

	files, err := ListFiles(NewHostFS(), root, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"real.txt", "link-to-file"}, entryNames(files))
}

// --- Run tests ---

func TestRun_ReplaceEndToEnd(t *testing.T) {
	fsys := newFS(t, "a.txt", "b.txt")
	cfg := baseConfig()
	cfg.ReplaceSet, cfg.Pattern, cfg.Replacement = true, "a", "x"

	log, logs := observedLogger()
	stats, err := Run(context.Background(), &cfg, fsys, log)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"x.txt", "b.txt"}, dirNames(t, fsys))
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Renamed)
	assert.Equal(t, 1, stats.Unchanged)
	assert.Equal(t, []Rename{{Old: "a.txt", New: "x.txt"}}, stats.Changed())

	assert.Equal(t, 1, logs.FilterMessage("a.txt Renamed to -> x.txt").Len())
	assert.Equal(t, 1, logs.FilterMessage("b.txt Renamed to -> b.txt").Len())
}

func TestRun_DeleteCaptureAware(t *testing.T) {
	fsys := newFS(t, "IMG_001 copy.jpg", "IMG_002 copy.jpg")
	cfg := baseConfig()
	cfg.Delete, cfg.Pattern = true, ` copy`

	_, err := Run(context.Background(), &cfg, fsys, quietLogger())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"IMG_001.jpg", "IMG_002.jpg"}, dirNames(t, fsys))
}

func TestRun_InjectAtTail(t *testing.T) {
	fsys := newFS(t, "a.txt")
	cfg := baseConfig()
	cfg.InjectSet, cfg.InjectText, cfg.Tail = true, ".bak", true

	_, err := Run(context.Background(), &cfg, fsys, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt.bak"}, dirNames(t, fsys))
}

func TestRun_InjectSequenceFollowsListingOrder(t *testing.T) {
	fsys := newFS(t, "one.txt", "two.txt", "three.txt")
	listed, err := ListFiles(fsys, dir, "")
	require.NoError(t, err)

	cfg := baseConfig()
	cfg.InjectSequence, cfg.Head = true, true
	cfg.Start, cfg.Step, cfg.Stop = 1, 1, 10

	stats, err := Run(context.Background(), &cfg, fsys, quietLogger())
	require.NoError(t, err)

	want := []string{"1" + listed[0].Name, "2" + listed[1].Name, "3" + listed[2].Name}
	assert.ElementsMatch(t, want, dirNames(t, fsys))
	for i, r := range stats.Renames {
		assert.Equal(t, listed[i].Name, r.Old)
		assert.Equal(t, want[i], r.New)
	}
}

func TestRun_ReplaceWithSequence(t *testing.T) {
	fsys := newFS(t, "ep1.txt", "ep2.txt")
	listed, err := ListFiles(fsys, dir, "")
	require.NoError(t, err)

	cfg := baseConfig()
	cfg.ReplaceWithSequence, cfg.Pattern = true, `\d+`
	cfg.Start, cfg.Step, cfg.Stop = 10, 5, 100

	stats, err := Run(context.Background(), &cfg, fsys, quietLogger())
	require.NoError(t, err)
	require.Len(t, stats.Renames, 2)
	assert.Equal(t, Rename{Old: listed[0].Name, New: "ep10.txt"}, stats.Renames[0])
	assert.Equal(t, Rename{Old: listed[1].Name, New: "ep15.txt"}, stats.Renames[1])
}

func TestRun_DryRunMatchesRealRun(t *testing.T) {
	names := []string{"alpha.txt", "beta.txt", "gamma.txt"}
	newCfg := func(dry bool) config.Config {
		cfg := baseConfig()
		cfg.InjectSequence, cfg.PositionSet, cfg.Position = true, true, 2
		cfg.Start, cfg.Step, cfg.Stop = 5, 2, 20
		cfg.DryRun = dry
		return cfg
	}

	dryFS := &recordingFS{Filesystem: newFS(t, names...)}
	dryCfg := newCfg(true)
	log, logs := observedLogger()
	dryStats, err := Run(context.Background(), &dryCfg, dryFS, log)
	require.NoError(t, err)
	assert.Empty(t, dryFS.renamed, "dry run must not rename")
	assert.ElementsMatch(t, names, dirNames(t, dryFS))
	assert.Equal(t, 3, logs.FilterLevelExact(logging.SuccessLevel).Len())

	realFS := newFS(t, names...)
	realCfg := newCfg(false)
	realStats, err := Run(context.Background(), &realCfg, realFS, quietLogger())
	require.NoError(t, err)

	assert.Equal(t, realStats.Renames, dryStats.Renames)
	var want []string
	for _, r := range realStats.Renames {
		want = append(want, r.New)
	}
	assert.ElementsMatch(t, want, dirNames(t, realFS))
}

func TestRun_InsufficientSequenceAbortsBeforeRename(t *testing.T) {
	names := []string{"1.txt", "2.txt", "3.txt", "4.txt", "5.txt"}
	fsys := &recordingFS{Filesystem: newFS(t, names...)}
	cfg := baseConfig()
	cfg.InjectSequence, cfg.Head = true, true
	cfg.Start, cfg.Step, cfg.Stop = 0, 1, 3

	stats, err := Run(context.Background(), &cfg, fsys, quietLogger())
	assert.ErrorIs(t, err, sequence.ErrInsufficient)
	assert.Empty(t, fsys.renamed)
	assert.Empty(t, stats.Renames)
	assert.ElementsMatch(t, names, dirNames(t, fsys))
}

func TestRun_InvalidRangeAbortsBeforeRename(t *testing.T) {
	fsys := &recordingFS{Filesystem: newFS(t, "a.txt")}
	cfg := baseConfig()
	cfg.InjectSequence, cfg.Head = true, true
	cfg.Start, cfg.Step, cfg.Stop = -1, 1, 5

	_, err := Run(context.Background(), &cfg, fsys, quietLogger())
	assert.ErrorIs(t, err, sequence.ErrInvalidRange)
	assert.Empty(t, fsys.renamed)
}

func TestRun_PatternErrorBeforeListing(t *testing.T) {
	cfg := baseConfig()
	cfg.Dir = "does-not-exist"
	cfg.Delete, cfg.Pattern = true, "(["

	_, err := Run(context.Background(), &cfg, memfs.New(), quietLogger())
	assert.ErrorIs(t, err, naming.ErrPattern)
}

func TestRun_MissingDirectory(t *testing.T) {
	cfg := baseConfig()
	cfg.Dir = "does-not-exist"
	cfg.Delete, cfg.Pattern = true, "x"

	_, err := Run(context.Background(), &cfg, memfs.New(), quietLogger())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_RenameFailureStopsBatch(t *testing.T) {
	fsys := &recordingFS{Filesystem: newFS(t, "a.txt", "b.txt", "c.txt"), failOn: "b.txt"}
	cfg := baseConfig()
	cfg.InjectSet, cfg.InjectText, cfg.Head = true, "new_", true

	stats, err := Run(context.Background(), &cfg, fsys, quietLogger())
	require.Error(t, err)

	var rerr *RenameError
	require.True(t, errors.As(err, &rerr))
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Equal(t, "b.txt", rerr.Old)
	assert.Equal(t, "new_b.txt", rerr.New)
	assert.Equal(t, 1, stats.Failed)

	// Listing order decides which files were already done; only those
	// listed before b.txt are renamed, and nothing after it is touched.
	got := dirNames(t, fsys)
	assert.Contains(t, got, "b.txt")
	assert.Equal(t, stats.Renamed, len(fsys.renamed)-1)
}

func TestRun_InvalidResultingName(t *testing.T) {
	fsys := &recordingFS{Filesystem: newFS(t, "a.txt")}
	cfg := baseConfig()
	cfg.Delete, cfg.Pattern = true, ".*"

	_, err := Run(context.Background(), &cfg, fsys, quietLogger())
	assert.ErrorIs(t, err, ErrInvalidName)
	assert.Empty(t, fsys.renamed)

	var rerr *RenameError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "a.txt", rerr.Old)
	assert.Equal(t, "", rerr.New)
}

func TestRun_SeparatorInReplacementRejected(t *testing.T) {
	fsys := &recordingFS{Filesystem: newFS(t, "a.txt")}
	cfg := baseConfig()
	cfg.ReplaceSet, cfg.Pattern, cfg.Replacement = true, "a", "../a"

	_, err := Run(context.Background(), &cfg, fsys, quietLogger())
	assert.ErrorIs(t, err, ErrInvalidName)
	assert.Empty(t, fsys.renamed)
}

func TestRun_NoModeIsNoop(t *testing.T) {
	fsys := &recordingFS{Filesystem: memfs.New()}
	cfg := baseConfig()
	cfg.Dir = "does-not-exist"

	log, logs := observedLogger()
	stats, err := Run(context.Background(), &cfg, fsys, log)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Equal(t, 1, logs.FilterMessageSnippet("No rename mode selected").Len())
}

func TestRun_ConflictingModesRejected(t *testing.T) {
	fsys := &recordingFS{Filesystem: newFS(t, "a.txt")}
	cfg := baseConfig()
	cfg.ReplaceSet, cfg.Delete, cfg.Pattern = true, true, "a"

	log, logs := observedLogger()
	stats, err := Run(context.Background(), &cfg, fsys, log)
	assert.ErrorIs(t, err, config.ErrConfiguration)
	assert.Zero(t, stats.Total)
	assert.Empty(t, fsys.renamed)
	assert.Equal(t, []string{"a.txt"}, dirNames(t, fsys))
	assert.Zero(t, logs.FilterMessageSnippet("No rename mode selected").Len())
}

func TestRun_DryRunReportsUnchangedNames(t *testing.T) {
	fsys := newFS(t, "keep.txt")
	cfg := baseConfig()
	cfg.ReplaceSet, cfg.Pattern, cfg.Replacement = true, "zzz", "y"
	cfg.DryRun = true

	log, logs := observedLogger()
	stats, err := Run(context.Background(), &cfg, fsys, log)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Unchanged)
	assert.Equal(t, 1, logs.FilterMessage("[DRY] keep.txt Would be renamed to -> keep.txt").Len())
}

func TestRun_EmptyPatternMatchesEverywhere(t *testing.T) {
	fsys := newFS(t, "ab")
	cfg := baseConfig()
	cfg.ReplaceSet, cfg.PatternSet, cfg.Replacement = true, true, "-"

	_, err := Run(context.Background(), &cfg, fsys, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"-a-b-"}, dirNames(t, fsys))
}

func TestHostFS_RelativeDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "photos"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "photos", "img.jpg"), nil, 0o644))
	t.Chdir(root)

	cfg := baseConfig()
	cfg.Dir = "photos"
	cfg.InjectSet, cfg.InjectText, cfg.Head = true, "2024_", true

	_, err := Run(context.Background(), &cfg, NewHostFS(), quietLogger())
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "photos", "2024_img.jpg"))
	assert.NoError(t, err)
}

func TestRun_CancelledContext(t *testing.T) {
	fsys := &recordingFS{Filesystem: newFS(t, "a.txt", "b.txt")}
	cfg := baseConfig()
	cfg.InjectSet, cfg.InjectText, cfg.Head = true, "x", true

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, &cfg, fsys, quietLogger())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fsys.renamed)
}

func TestRun_OSFilesystem(t *testing.T) {
	root := t.TempDir()
	for _, n := range []string{"draft-report.md", "draft-notes.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, n), []byte(n), 0o644))
	}
	cfg := baseConfig()
	cfg.Dir = root
	cfg.ReplaceSet, cfg.Pattern, cfg.Replacement = true, `^draft-(\w+)`, "final-$1"

	_, err := Run(context.Background(), &cfg, NewHostFS(), quietLogger())
	require.NoError(t, err)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	var got []string
	for _, e := range entries {
		got = append(got, e.Name())
	}
	assert.ElementsMatch(t, []string{"final-report.md", "final-notes.md"}, got)

	b, err := os.ReadFile(filepath.Join(root, "final-report.md"))
	require.NoError(t, err)
	assert.Equal(t, "draft-report.md", string(b))
}

// --- BuildRule tests ---

func TestBuildRule(t *testing.T) {
	cfg := baseConfig()
	cfg.InjectSequence, cfg.Tail = true, true
	cfg.Start, cfg.Step, cfg.Stop = 2, 3, 9
	rule, err := BuildRule(&cfg)
	require.NoError(t, err)
	assert.Equal(t, naming.OpInjectSequence, rule.Op)
	assert.Equal(t, naming.Append, rule.Position)
	assert.Equal(t, sequence.Range{Start: 2, Step: 3, Stop: 9}, rule.Range)

	cfg = baseConfig()
	cfg.ReplaceSet, cfg.Pattern, cfg.Replacement = true, `(\d)`, "<$1>"
	rule, err = BuildRule(&cfg)
	require.NoError(t, err)
	assert.Equal(t, naming.OpReplace, rule.Op)
	assert.Equal(t, "f<1>.txt", rule.Apply("f1.txt", 0))

	cfg = baseConfig()
	rule, err = BuildRule(&cfg)
	require.NoError(t, err)
	assert.Equal(t, naming.Op(0), rule.Op)
}

// --- Helpers ---

// recordingFS records Rename calls and can fail one by base name.
type recordingFS struct {
	billy.Filesystem
	failOn  string
	renamed []string
}

func (r *recordingFS) Rename(from, to string) error {
	r.renamed = append(r.renamed, from)
	if r.failOn != "" && filepath.Base(from) == r.failOn {
		return &os.LinkError{Op: "rename", Old: from, New: to, Err: os.ErrPermission}
	}
	return r.Filesystem.Rename(from, to)
}

func baseConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Dir = dir
	cfg.ColorMode = config.ColorNever
	return cfg
}

func newFS(t *testing.T, names ...string) billy.Filesystem {
	t.Helper()
	fsys := memfs.New()
	require.NoError(t, fsys.MkdirAll(dir, 0o755))
	for _, n := range names {
		touch(t, fsys, fsys.Join(dir, n))
	}
	return fsys
}

func touch(t *testing.T, fsys billy.Filesystem, path string) {
	t.Helper()
	if err := util.WriteFile(fsys, path, []byte(filepath.Base(path)), 0o644); err != nil {
		t.Fatalf("touch %s: %v", path, err)
	}
}

func dirNames(t *testing.T, fsys billy.Filesystem) []string {
	t.Helper()
	infos, err := fsys.ReadDir(dir)
	require.NoError(t, err)
	var out []string
	for _, fi := range infos {
		if !fi.IsDir() {
			out = append(out, fi.Name())
		}
	}
	sort.Strings(out)
	return out
}

func entryNames(files []Entry) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Name
	}
	return out
}

func observedLogger() (*logging.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(logging.SuccessLevel)
	return logging.New(core), logs
}

func quietLogger() *logging.Logger {
	l, _ := observedLogger()
	return l
}
