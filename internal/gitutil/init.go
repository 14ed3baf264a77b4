package gitutil

import (
	"fmt"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// DefaultBranch is the initial branch of repositories created by Init.
const DefaultBranch = "main"

// Init creates an empty git repository in dir with DefaultBranch checked out.
// It does not need a git binary. An existing repository is left untouched
// and reported as git.ErrRepositoryAlreadyExists.
func Init(dir string) error {
	_, err := git.PlainInitWithOptions(dir, &git.PlainInitOptions{
		InitOptions: git.InitOptions{
			DefaultBranch: plumbing.NewBranchReferenceName(DefaultBranch),
		},
		Bare: false,
	})
	if err != nil {
		return fmt.Errorf("init repository in %s: %w", dir, err)
	}
	return nil
}
