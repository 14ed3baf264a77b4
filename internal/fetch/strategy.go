package fetch

import (
	"context"
	"fmt"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/lynx-community/create-lynx-app/internal/gitutil"
)

// Strategy clones src into dir. dir is either missing or an empty directory.
// paths lists the repository folders the caller needs; a strategy may fetch
// more than that but must fetch at least those that exist upstream.
type Strategy interface {
	Name() string
	Clone(ctx context.Context, src Source, paths []string, dir string) error
}

// SparseStrategy runs a shallow, blob-filtered, sparse clone with the system
// git binary and narrows the checkout to the requested paths.
type SparseStrategy struct{}

// Name implements Strategy.
func (SparseStrategy) Name() string { return "sparse" }

// Clone implements Strategy.
func (SparseStrategy) Clone(ctx context.Context, src Source, paths []string, dir string) error {
	v, err := gitutil.Version(ctx)
	if err != nil {
		return err
	}
	if !gitutil.SupportsSparseClone(v) {
		return fmt.Errorf("%w: have %s, need %s", ErrSparseUnsupported, v, gitutil.MinSparseCloneVersion)
	}

	args := []string{"clone", "--depth", "1", "--filter=blob:none", "--sparse"}
	if src.Branch != "" {
		args = append(args, "--branch", src.Branch)
	}
	args = append(args, "--", src.URL, dir)
	if _, err := gitutil.Exec(ctx, "", args...); err != nil {
		return err
	}

	if len(paths) == 0 {
		return nil
	}
	if _, err := gitutil.Exec(ctx, dir, append([]string{"sparse-checkout", "set"}, paths...)...); err != nil {
		return err
	}
	return nil
}

// ShallowStrategy clones the whole repository at depth 1 with go-git, so it
// also works on hosts without a git binary.
type ShallowStrategy struct{}

// Name implements Strategy.
func (ShallowStrategy) Name() string { return "shallow" }

// Clone implements Strategy.
func (ShallowStrategy) Clone(ctx context.Context, src Source, _ []string, dir string) error {
	opts := &git.CloneOptions{
		URL:          src.URL,
		Depth:        1,
		SingleBranch: true,
		Tags:         git.NoTags,
	}
	if src.Branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(src.Branch)
	}
	if _, err := git.PlainCloneContext(ctx, dir, false, opts); err != nil {
		return fmt.Errorf("shallow clone %s: %w", src.URL, err)
	}
	return nil
}

// DefaultStrategies returns the sparse strategy followed by the shallow fallback.
func DefaultStrategies() []Strategy {
	return []Strategy{SparseStrategy{}, ShallowStrategy{}}
}
