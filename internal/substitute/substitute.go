package substitute

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lynx-community/create-lynx-app/internal/fsutil"
	"github.com/lynx-community/create-lynx-app/internal/pool"
)

// FileStatus is the result of processing a single file.
type FileStatus string

// File statuses.
const (
	FileUpdated   FileStatus = "updated"
	FileUnchanged FileStatus = "unchanged"
	FileSkipped   FileStatus = "skipped" // binary file, never read
	FileFailed    FileStatus = "failed"
)

// FileOutcome records what happened to one file.
type FileOutcome struct {
	Path    string
	Status  FileStatus
	Matched []string // names of the rules that matched
	Err     error
}

// Options tunes ReplacePlaceholders. The zero value uses DefaultRules, a
// default sized worker pool and a discarding logger.
type Options struct {
	Rules   []Rule
	Workers int
	Logger  *slog.Logger
}

// ReplacePlaceholders rewrites placeholder identifiers in every text file
// below root. Files are processed concurrently and independently; a file
// that cannot be read or written yields a FileFailed outcome and does not
// stop the others. The returned error is non-nil only when ctx ends early.
func ReplacePlaceholders(ctx context.Context, root, projectName string, opts Options) ([]FileOutcome, error) {
	rules := opts.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ids := NewIdentifiers(projectName)
	files := fsutil.ListFiles(root)

	p := pool.NewWorkerPool(opts.Workers)
	defer p.Shutdown()

	outcomes, err := pool.Map(ctx, p, files, func(path string) FileOutcome {
		return rewriteFile(path, rules, ids)
	})
	if err != nil {
		return outcomes, fmt.Errorf("replace placeholders: %w", err)
	}

	for _, o := range outcomes {
		if o.Status == FileFailed {
			logger.Warn("placeholder replacement failed", "path", o.Path, "error", o.Err)
		}
	}
	logger.Debug("placeholders replaced",
		"files", len(files),
		"updated", CountFiles(outcomes, FileUpdated),
		"failed", CountFiles(outcomes, FileFailed),
	)
	return outcomes, nil
}

func rewriteFile(path string, rules []Rule, ids Identifiers) FileOutcome {
	if !fsutil.IsTextFile(path) {
		return FileOutcome{Path: path, Status: FileSkipped}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return FileOutcome{Path: path, Status: FileFailed, Err: fmt.Errorf("read: %w", err)}
	}

	rewritten, matched := apply(content, rules, ids)
	if len(matched) == 0 {
		return FileOutcome{Path: path, Status: FileUnchanged}
	}

	// Mode is only used on create; existing permissions are kept.
	if err := os.WriteFile(path, rewritten, fsutil.FilePerm); err != nil {
		return FileOutcome{Path: path, Status: FileFailed, Matched: matched, Err: fmt.Errorf("write: %w", err)}
	}
	return FileOutcome{Path: path, Status: FileUpdated, Matched: matched}
}

// CountFiles returns how many outcomes have the given status.
func CountFiles(outcomes []FileOutcome, status FileStatus) int {
	n := 0
	for _, o := range outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}
