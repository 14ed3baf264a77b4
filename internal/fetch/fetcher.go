// Package fetch copies template folders out of a remote git repository.
//
// A fetch clones into a private temporary directory, copies the requested
// folders into the target and always removes the temporary clone before
// returning. Cloning tries each configured Strategy in order; by default a
// sparse clone with the system git, then a shallow full clone.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/lynx-community/create-lynx-app/internal/fsutil"
)

// Source identifies the remote repository. An empty Branch selects the
// remote's default branch.
type Source struct {
	URL    string
	Branch string
}

// Entry maps a folder of the repository onto a subdirectory of the target.
// An empty DestPath copies the folder's contents into the target root.
type Entry struct {
	RepoPath string
	DestPath string
}

// Result summarizes a completed fetch.
type Result struct {
	Strategy string   // name of the strategy that produced the clone
	Copied   []Entry  // entries copied into the target
	Missing  []string // repo paths absent from the clone
}

// Fetcher retrieves template folders from remote repositories.
type Fetcher struct {
	strategies []Strategy
	tempRoot   string
	timeout    time.Duration
	logger     *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithStrategies replaces the clone strategies, tried in the given order.
func WithStrategies(strategies ...Strategy) Option {
	return func(f *Fetcher) { f.strategies = strategies }
}

// WithTempRoot sets the directory temporary clones are created in.
// The default is os.TempDir().
func WithTempRoot(dir string) Option {
	return func(f *Fetcher) { f.tempRoot = dir }
}

// WithTimeout bounds every fetch. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.timeout = d }
}

// WithLogger sets the logger used for warnings about missing folders and
// failed clone attempts.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) { f.logger = logger }
}

// New creates a Fetcher using DefaultStrategies unless overridden.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		strategies: DefaultStrategies(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchFolder copies a single folder of src at branch into target.
func (f *Fetcher) FetchFolder(ctx context.Context, repoURL, branch, folder, target string) (*Result, error) {
	return f.FetchFolders(ctx, Source{URL: repoURL, Branch: branch}, []Entry{{RepoPath: folder}}, target)
}

// FetchFolders clones src once and copies every entry's folder into
// target/DestPath, creating directories as needed and overwriting existing
// files. Folders missing from the repository are logged, listed in
// Result.Missing and skipped. When every clone strategy fails the error is a
// *FetchError. The temporary clone is removed on every path.
func (f *Fetcher) FetchFolders(ctx context.Context, src Source, entries []Entry, target string) (*Result, error) {
	if err := validateEntries(entries); err != nil {
		return nil, err
	}
	if len(f.strategies) == 0 {
		return nil, &FetchError{Repo: src.URL, Err: ErrNoStrategies}
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	tmp, err := os.MkdirTemp(f.tempRoot, fmt.Sprintf("lynx-template-%d-*", time.Now().UnixNano()))
	if err != nil {
		return nil, &FetchError{Repo: src.URL, Err: fmt.Errorf("create temporary clone directory: %w", err)}
	}
	defer func() {
		// Removal errors must not mask the fetch outcome.
		_ = os.RemoveAll(tmp)
	}()

	strategy, err := f.clone(ctx, src, repoPaths(entries), tmp)
	if err != nil {
		return nil, &FetchError{Repo: src.URL, Err: err}
	}

	result := &Result{Strategy: strategy}
	for _, e := range entries {
		from := filepath.Join(tmp, filepath.FromSlash(e.RepoPath))
		if info, err := os.Stat(from); err != nil || !info.IsDir() {
			f.logger.Warn("template folder not found in repo", "repo", src.URL, "path", e.RepoPath)
			result.Missing = append(result.Missing, e.RepoPath)
			continue
		}

		dest := filepath.Join(target, filepath.FromSlash(e.DestPath))
		if err := os.MkdirAll(dest, fsutil.DirPerm); err != nil {
			return result, fmt.Errorf("create %s: %w", dest, err)
		}
		if err := fsutil.CopyDir(from, dest); err != nil {
			return result, fmt.Errorf("copy %s into %s: %w", e.RepoPath, dest, err)
		}
		result.Copied = append(result.Copied, e)
	}

	f.logger.Debug("templates fetched",
		"repo", src.URL,
		"strategy", strategy,
		"copied", len(result.Copied),
		"missing", len(result.Missing),
	)
	return result, nil
}

// clone runs the strategies in order until one succeeds. The directory left
// by a failed attempt is removed before the next attempt starts.
func (f *Fetcher) clone(ctx context.Context, src Source, paths []string, dir string) (string, error) {
	var causes []error
	for i, s := range f.strategies {
		if i > 0 {
			if err := os.RemoveAll(dir); err != nil {
				causes = append(causes, fmt.Errorf("reset clone directory: %w", err))
				break
			}
		}

		f.logger.Debug("cloning templates", "repo", src.URL, "strategy", s.Name())
		err := s.Clone(ctx, src, paths, dir)
		if err == nil {
			return s.Name(), nil
		}

		causes = append(causes, fmt.Errorf("%s clone: %w", s.Name(), err))
		f.logger.Warn("clone attempt failed", "repo", src.URL, "strategy", s.Name(), "error", err)

		if ctxErr := ctx.Err(); ctxErr != nil {
			causes = append(causes, ctxErr)
			break
		}
	}
	return "", errors.Join(causes...)
}

func repoPaths(entries []Entry) []string {
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.RepoPath
	}
	return paths
}

func validateEntries(entries []Entry) error {
	for _, e := range entries {
		if !isCleanRelative(e.RepoPath) {
			return fmt.Errorf("%w: repo path %q", ErrInvalidEntry, e.RepoPath)
		}
		if e.DestPath != "" && !isCleanRelative(e.DestPath) {
			return fmt.Errorf("%w: destination %q", ErrInvalidEntry, e.DestPath)
		}
	}
	return nil
}

// isCleanRelative accepts slash-separated paths that stay inside their root.
func isCleanRelative(p string) bool {
	if p == "" || strings.HasPrefix(p, "-") || strings.HasPrefix(p, "/") || filepath.IsAbs(p) {
		return false
	}
	clean := path.Clean(p)
	return clean != "." && clean != ".." && !strings.HasPrefix(clean, "../")
}
