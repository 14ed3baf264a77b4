// Package gitutil wraps the git operations needed while scaffolding: running
// the system git binary, checking its version and initializing repositories.
package gitutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Sentinel errors for the gitutil package.
var (
	// ErrSystemGitNotFound indicates no git executable on PATH.
	ErrSystemGitNotFound = errors.New("git executable not found")

	// ErrUnknownVersion indicates `git version` printed something unparsable.
	ErrUnknownVersion = errors.New("unrecognized git version output")
)

// MinSparseCloneVersion is the first git release with `clone --sparse`
// and `sparse-checkout set`.
const MinSparseCloneVersion = "2.25.0"

var versionPattern = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

// Exec runs git with args in dir and returns trimmed stdout.
// Prompts are disabled and output is forced to the C locale so failures
// surface as errors instead of hanging on credentials.
func Exec(ctx context.Context, dir string, args ...string) (string, error) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return "", fmt.Errorf("system git lookup: %w", ErrSystemGitNotFound)
	}

	cmd := exec.CommandContext(ctx, gitPath, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_TERMINAL_PROMPT=0",
		"LC_ALL=C",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		if len(args) > 0 {
			return "", fmt.Errorf("git %s: %s: %w", args[0], stderrStr, err)
		}
		return "", fmt.Errorf("git: %s: %w", stderrStr, err)
	}

	return strings.TrimRight(stdout.String(), "\n\r"), nil
}

// Version returns the version of the system git binary.
func Version(ctx context.Context) (*semver.Version, error) {
	out, err := Exec(ctx, "", "version")
	if err != nil {
		return nil, err
	}
	return ParseVersion(out)
}

// ParseVersion extracts a semantic version from `git version` output such as
// "git version 2.39.3 (Apple Git-146)" or "git version 2.42.0.windows.2".
func ParseVersion(output string) (*semver.Version, error) {
	m := versionPattern.FindStringSubmatch(output)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVersion, output)
	}
	patch := m[3]
	if patch == "" {
		patch = "0"
	}
	v, err := semver.NewVersion(m[1] + "." + m[2] + "." + patch)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnknownVersion, output, err)
	}
	return v, nil
}

// SupportsSparseClone reports whether v can run a blob-filtered sparse clone.
func SupportsSparseClone(v *semver.Version) bool {
	return v != nil && !v.LessThan(semver.MustParse(MinSparseCloneVersion))
}
