package fetch

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lynx-community/create-lynx-app/internal/gitutil"
)

// fakeStrategy writes files into the clone directory and then returns err.
type fakeStrategy struct {
	name  string
	files map[string]string
	err   error

	calls   int
	gotDir  string
	gotSrc  Source
	gotPath []string
	// dirExistedOnEntry records whether dir was present when Clone started.
	dirExistedOnEntry bool
}

func (s *fakeStrategy) Name() string { return s.name }

func (s *fakeStrategy) Clone(_ context.Context, src Source, paths []string, dir string) error {
	s.calls++
	s.gotDir, s.gotSrc, s.gotPath = dir, src, paths
	_, statErr := os.Stat(dir)
	s.dirExistedOnEntry = statErr == nil

	for rel, content := range s.files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			return err
		}
	}
	return s.err
}

func newTestFetcher(t *testing.T, strategies ...Strategy) (*Fetcher, string) {
	t.Helper()
	tempRoot := t.TempDir()
	return New(WithStrategies(strategies...), WithTempRoot(tempRoot)), tempRoot
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary clone directory was not removed")
}

func TestFetchFolders_FirstStrategySucceeds(t *testing.T) {
	sparse := &fakeStrategy{name: "sparse", files: map[string]string{
		"packages/templates/react/package.json":     `{"name":"helloworld"}`,
		"packages/templates/react/src/App.tsx":      "export const App = () => null",
		"packages/templates/react-tailwind/x.css":   "@tailwind base;",
		"packages/templates/vue/should-not-copy.js": "",
	}}
	shallow := &fakeStrategy{name: "shallow"}
	f, tempRoot := newTestFetcher(t, sparse, shallow)
	target := t.TempDir()

	src := Source{URL: "https://example.com/repo", Branch: "main"}
	res, err := f.FetchFolders(context.Background(), src, []Entry{
		{RepoPath: "packages/templates/react"},
	}, target)
	require.NoError(t, err)

	assert.Equal(t, "sparse", res.Strategy)
	assert.Equal(t, []Entry{{RepoPath: "packages/templates/react"}}, res.Copied)
	assert.Empty(t, res.Missing)
	assert.Equal(t, 0, shallow.calls)
	assert.Equal(t, src, sparse.gotSrc)
	assert.Equal(t, []string{"packages/templates/react"}, sparse.gotPath)

	data, err := os.ReadFile(filepath.Join(target, "package.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"name":"helloworld"}`, string(data))
	assert.FileExists(t, filepath.Join(target, "src", "App.tsx"))
	assert.NoFileExists(t, filepath.Join(target, "should-not-copy.js"))

	assertEmptyDir(t, tempRoot)
}

func TestFetchFolders_FallbackStartsFromCleanDirectory(t *testing.T) {
	sparse := &fakeStrategy{
		name:  "sparse",
		files: map[string]string{"partial/leftover.txt": "half-cloned"},
		err:   errors.New("network down"),
	}
	shallow := &fakeStrategy{name: "shallow", files: map[string]string{
		"templates/base/README.md": "# HelloWorld",
	}}
	f, tempRoot := newTestFetcher(t, sparse, shallow)
	target := t.TempDir()

	res, err := f.FetchFolder(context.Background(), "https://example.com/repo", "main", "templates/base", target)
	require.NoError(t, err)

	assert.Equal(t, "shallow", res.Strategy)
	assert.Equal(t, 1, sparse.calls)
	assert.Equal(t, 1, shallow.calls)
	assert.True(t, sparse.dirExistedOnEntry)
	assert.False(t, shallow.dirExistedOnEntry, "failed attempt's directory must be removed before fallback")
	assert.Equal(t, sparse.gotDir, shallow.gotDir)

	assert.FileExists(t, filepath.Join(target, "README.md"))
	assert.NoFileExists(t, filepath.Join(target, "leftover.txt"))
	assertEmptyDir(t, tempRoot)
}

func TestFetchFolders_AllStrategiesFail(t *testing.T) {
	sparseErr := errors.New("sparse boom")
	shallowErr := errors.New("shallow boom")
	f, tempRoot := newTestFetcher(t,
		&fakeStrategy{name: "sparse", err: sparseErr},
		&fakeStrategy{name: "shallow", err: shallowErr},
	)
	target := t.TempDir()

	res, err := f.FetchFolders(context.Background(), Source{URL: "https://example.com/repo"}, []Entry{{RepoPath: "a"}}, target)
	require.Error(t, err)
	assert.Nil(t, res)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "https://example.com/repo", fetchErr.Repo)
	assert.ErrorIs(t, err, sparseErr)
	assert.ErrorIs(t, err, shallowErr)
	assert.Contains(t, err.Error(), "failed to fetch templates from https://example.com/repo")

	assertEmptyDir(t, target)
	assertEmptyDir(t, tempRoot)
}

func TestFetchFolders_MissingFolderIsWarning(t *testing.T) {
	f, _ := newTestFetcher(t, &fakeStrategy{name: "sparse", files: map[string]string{
		"base/index.ts": "base",
	}})
	target := t.TempDir()

	res, err := f.FetchFolders(context.Background(), Source{URL: "u"}, []Entry{
		{RepoPath: "base"},
		{RepoPath: "overlay"},
	}, target)
	require.NoError(t, err)

	assert.Equal(t, []string{"overlay"}, res.Missing)
	assert.Equal(t, []Entry{{RepoPath: "base"}}, res.Copied)
	assert.FileExists(t, filepath.Join(target, "index.ts"))
}

func TestFetchFolders_DestPathAndOverwrite(t *testing.T) {
	f, _ := newTestFetcher(t, &fakeStrategy{name: "sparse", files: map[string]string{
		"base/package.json":    "base",
		"overlay/package.json": "overlay",
		"overlay/tw.config.js": "tw",
		"android/build.gradle": "gradle",
	}})
	target := t.TempDir()

	res, err := f.FetchFolders(context.Background(), Source{URL: "u"}, []Entry{
		{RepoPath: "base"},
		{RepoPath: "overlay"},
		{RepoPath: "android", DestPath: "native/android"},
	}, target)
	require.NoError(t, err)
	assert.Len(t, res.Copied, 3)

	data, err := os.ReadFile(filepath.Join(target, "package.json"))
	require.NoError(t, err)
	assert.Equal(t, "overlay", string(data), "later entries overwrite earlier files")
	assert.FileExists(t, filepath.Join(target, "tw.config.js"))
	assert.FileExists(t, filepath.Join(target, "native", "android", "build.gradle"))
}

func TestFetchFolders_InvalidEntries(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
	}{
		{"empty", Entry{}},
		{"absolute", Entry{RepoPath: "/etc"}},
		{"escape", Entry{RepoPath: "../secret"}},
		{"nested escape", Entry{RepoPath: "a/../../b"}},
		{"flag", Entry{RepoPath: "--upload-pack=evil"}},
		{"dot", Entry{RepoPath: "."}},
		{"bad destination", Entry{RepoPath: "a", DestPath: "../out"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &fakeStrategy{name: "sparse"}
			f, tempRoot := newTestFetcher(t, s)

			_, err := f.FetchFolders(context.Background(), Source{URL: "u"}, []Entry{tt.entry}, t.TempDir())
			assert.ErrorIs(t, err, ErrInvalidEntry)
			assert.Equal(t, 0, s.calls)
			assertEmptyDir(t, tempRoot)
		})
	}
}

func TestFetchFolders_NoStrategies(t *testing.T) {
	f, _ := newTestFetcher(t)
	_, err := f.FetchFolders(context.Background(), Source{URL: "u"}, []Entry{{RepoPath: "a"}}, t.TempDir())
	assert.ErrorIs(t, err, ErrNoStrategies)
}

func TestFetchFolders_CancelledContextStopsFallback(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sparse := &fakeStrategy{name: "sparse", err: errors.New("interrupted")}
	shallow := &fakeStrategy{name: "shallow"}
	f, _ := newTestFetcher(t, &cancellingStrategy{fakeStrategy: sparse, cancel: cancel}, shallow)

	_, err := f.FetchFolders(ctx, Source{URL: "u"}, []Entry{{RepoPath: "a"}}, t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, shallow.calls)
}

type cancellingStrategy struct {
	*fakeStrategy
	cancel context.CancelFunc
}

func (s *cancellingStrategy) Clone(ctx context.Context, src Source, paths []string, dir string) error {
	s.cancel()
	return s.fakeStrategy.Clone(ctx, src, paths, dir)
}

func TestDefaultStrategies(t *testing.T) {
	names := make([]string, 0, 2)
	for _, s := range DefaultStrategies() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"sparse", "shallow"}, names)
}

// makeUpstream creates a local repository with two template folders.
func makeUpstream(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"packages/templates/react/package.json":          `{"name":"helloworld"}`,
		"packages/templates/react-tailwind/tailwind.css": "@tailwind base;",
		"packages/other/big.txt":                         "unrelated",
	}
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}

	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
		)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
	}
	run("init", "-q", "-b", "main")
	run("config", "uploadpack.allowFilter", "true")
	run("add", ".")
	run("commit", "-q", "-m", "templates")
	return dir
}

func TestSparseStrategy_LocalRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
	v, err := gitutil.Version(context.Background())
	require.NoError(t, err)
	// `init -b` needs 2.28.
	if !gitutil.SupportsSparseClone(v) || (v.Major() == 2 && v.Minor() < 28) {
		t.Skipf("git %s too old for this test", v)
	}

	upstream := makeUpstream(t)
	f, tempRoot := newTestFetcher(t, SparseStrategy{})
	target := t.TempDir()

	res, err := f.FetchFolders(context.Background(), Source{URL: "file://" + filepath.ToSlash(upstream), Branch: "main"}, []Entry{
		{RepoPath: "packages/templates/react"},
		{RepoPath: "packages/templates/react-tailwind"},
		{RepoPath: "packages/templates/missing"},
	}, target)
	require.NoError(t, err)

	assert.Equal(t, "sparse", res.Strategy)
	assert.Equal(t, []string{"packages/templates/missing"}, res.Missing)
	assert.FileExists(t, filepath.Join(target, "package.json"))
	assert.FileExists(t, filepath.Join(target, "tailwind.css"))
	assert.NoFileExists(t, filepath.Join(target, "big.txt"))
	assertEmptyDir(t, tempRoot)
}
