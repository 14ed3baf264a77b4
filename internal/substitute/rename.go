package substitute

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lynx-community/create-lynx-app/internal/fsutil"
)

// RenameStatus is the result of a single rename attempt.
type RenameStatus string

// Rename statuses.
const (
	Renamed       RenameStatus = "renamed"
	RenameSkipped RenameStatus = "skipped" // destination already exists
	RenameFailed  RenameStatus = "failed"
)

// RenameOutcome records one attempted move.
type RenameOutcome struct {
	From   string
	To     string
	Status RenameStatus
	Err    error
}

// javaSourceRoots are the Android source roots holding com/helloworld.
var javaSourceRoots = []string{
	"android/app/src/main/java",
	"android/app/src/test/java",
	"android/app/src/androidTest/java",
}

// RenameEntries moves placeholder-named paths below root to their
// project-specific names. The placeholder package directory under each
// Android source root is relocated first; then every file or directory whose
// base name contains DisplayPlaceholder is renamed, deepest paths first so
// that renaming a directory never invalidates a pending child path.
//
// A rename whose destination already exists is skipped, so nothing is ever
// overwritten. The pass is not transactional: a failure leaves the tree with
// a mix of old and new names.
func RenameEntries(root, projectName string, logger *slog.Logger) []RenameOutcome {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ids := NewIdentifiers(projectName)

	var outcomes []RenameOutcome
	for _, srcRoot := range javaSourceRoots {
		comDir := filepath.Join(root, filepath.FromSlash(srcRoot), "com")
		from := filepath.Join(comDir, PackagePlaceholder)
		to := filepath.Join(comDir, ids.Package)
		if from == to || !fsutil.Exists(from) {
			continue
		}
		outcomes = append(outcomes, move(from, to))
	}

	entries := fsutil.ListEntries(root)
	sort.SliceStable(entries, func(i, j int) bool {
		return depth(entries[i]) > depth(entries[j])
	})

	for _, from := range entries {
		base := filepath.Base(from)
		if !strings.Contains(base, DisplayPlaceholder) {
			continue
		}
		to := filepath.Join(filepath.Dir(from), strings.ReplaceAll(base, DisplayPlaceholder, ids.Display))
		if to == from || !fsutil.Exists(from) {
			continue
		}
		outcomes = append(outcomes, move(from, to))
	}

	for _, o := range outcomes {
		switch o.Status {
		case RenameFailed:
			logger.Warn("rename failed", "from", o.From, "to", o.To, "error", o.Err)
		case RenameSkipped:
			logger.Debug("rename skipped, destination exists", "from", o.From, "to", o.To)
		}
	}
	return outcomes
}

func move(from, to string) RenameOutcome {
	if fsutil.Exists(to) {
		return RenameOutcome{From: from, To: to, Status: RenameSkipped}
	}
	if err := os.Rename(from, to); err != nil {
		return RenameOutcome{From: from, To: to, Status: RenameFailed, Err: err}
	}
	return RenameOutcome{From: from, To: to, Status: Renamed}
}

func depth(path string) int {
	return strings.Count(path, string(filepath.Separator))
}

// CountRenames returns how many outcomes have the given status.
func CountRenames(outcomes []RenameOutcome, status RenameStatus) int {
	n := 0
	for _, o := range outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}
