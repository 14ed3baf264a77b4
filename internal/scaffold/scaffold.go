// Package scaffold builds a new Lynx project on disk.
//
// A run copies the bundled platform templates, fetches the React template
// (and optionally the Tailwind overlay) from the template repository,
// replaces placeholder identifiers, renames placeholder paths and can
// initialize a git repository. Stages run once, in order; the first failing
// stage ends the run with a *StageError.
package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"

	"github.com/lynx-community/create-lynx-app/internal/fetch"
	"github.com/lynx-community/create-lynx-app/internal/fsutil"
	"github.com/lynx-community/create-lynx-app/internal/gitutil"
	"github.com/lynx-community/create-lynx-app/internal/substitute"
	"github.com/lynx-community/create-lynx-app/internal/templates"
)

// Fetcher copies folders of a remote repository into a local directory.
type Fetcher interface {
	FetchFolders(ctx context.Context, src fetch.Source, entries []fetch.Entry, target string) (*fetch.Result, error)
}

// Options wires a Scaffolder.
type Options struct {
	Manifest *templates.Manifest // required
	Bundle   fs.FS               // required; platform folders named by Manifest
	Fetcher  Fetcher             // required
	Source   fetch.Source        // template repository

	Rules    []substitute.Rule // nil means substitute.DefaultRules
	Workers  int               // substitution workers; 0 picks a default
	Reporter Reporter
	Logger   *slog.Logger

	// InitRepository creates the git repository. Defaults to gitutil.Init.
	InitRepository func(dir string) error
}

// Result summarizes a successful run.
type Result struct {
	Path           string
	Stages         []Stage // stages reached, in order
	Fetches        []*fetch.Result
	Substitutions  []substitute.FileOutcome
	Renames        []substitute.RenameOutcome
	Warnings       []string
	GitInitialized bool
}

// Scaffolder creates projects from a ProjectConfig.
type Scaffolder struct {
	opts Options
}

// New validates opts and returns a Scaffolder.
func New(opts Options) (*Scaffolder, error) {
	switch {
	case opts.Manifest == nil:
		return nil, errors.New("scaffold: manifest is required")
	case opts.Bundle == nil:
		return nil, errors.New("scaffold: template bundle is required")
	case opts.Fetcher == nil:
		return nil, errors.New("scaffold: fetcher is required")
	}
	if opts.Reporter == nil {
		opts.Reporter = nopReporter{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.InitRepository == nil {
		opts.InitRepository = gitutil.Init
	}
	return &Scaffolder{opts: opts}, nil
}

// run carries the state of one Scaffold call.
type run struct {
	*Scaffolder
	cfg     ProjectConfig
	target  string
	created bool
	result  *Result
}

// Scaffold creates cfg.TargetPath() and fills it. If the run created the
// target directory and a later stage fails, the directory is removed again;
// a directory that existed beforehand is never removed.
func (s *Scaffolder) Scaffold(ctx context.Context, cfg ProjectConfig) (*Result, error) {
	r := &run{
		Scaffolder: s,
		cfg:        cfg,
		target:     cfg.TargetPath(),
		result:     &Result{Path: cfg.TargetPath()},
	}
	r.reached(StageInit)

	s.opts.Logger.Info("scaffolding project",
		"name", cfg.Name,
		"target", r.target,
		"platforms", cfg.Platforms,
		"tailwind", cfg.UseTailwind,
		"git", cfg.UseGit,
	)

	err := r.execute(ctx)
	if err != nil {
		if r.created {
			if rmErr := os.RemoveAll(r.target); rmErr != nil {
				s.opts.Logger.Warn("could not remove partial project", "path", r.target, "error", rmErr)
			} else {
				s.opts.Logger.Info("removed partial project", "path", r.target)
			}
		}
		return nil, err
	}
	return r.result, nil
}

func (r *run) execute(ctx context.Context) error {
	steps := []struct {
		stage Stage
		skip  bool
		do    func(context.Context) error
	}{
		{StageDirectoryCreated, false, r.createDirectory},
		{StagePlatformTemplatesCopied, false, r.copyPlatformTemplates},
		{StageRemoteTemplatesFetched, false, r.fetchBaseTemplate},
		{StageTailwindOverlayFetched, !r.cfg.UseTailwind, r.fetchTailwindOverlay},
		{StageSubstituted, false, r.replacePlaceholders},
		{StageRenamed, false, r.renameEntries},
		{StageVersionControlInitialized, !r.cfg.UseGit, r.initRepository},
	}

	for _, step := range steps {
		if step.skip {
			continue
		}
		if err := ctx.Err(); err != nil {
			return &StageError{Stage: step.stage, Err: err}
		}
		r.opts.Reporter.Starting(step.stage)
		if err := step.do(ctx); err != nil {
			return &StageError{Stage: step.stage, Err: err}
		}
		r.reached(step.stage)
	}

	r.opts.Reporter.Starting(StageDone)
	r.reached(StageDone)
	return nil
}

func (r *run) reached(stage Stage) {
	r.result.Stages = append(r.result.Stages, stage)
	r.opts.Logger.Debug("stage reached", "stage", stage)
	r.opts.Reporter.Reached(stage)
}

func (r *run) warn(msg string, args ...any) {
	r.result.Warnings = append(r.result.Warnings, fmt.Sprintf(msg, args...))
}

func (r *run) createDirectory(context.Context) error {
	info, err := os.Stat(r.target)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("%w: %s", ErrTargetNotDirectory, r.target)
	case err == nil:
		r.warn("directory %s already exists, files will be merged into it", r.target)
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("stat %s: %w", r.target, err)
	}

	if err := os.MkdirAll(r.target, fsutil.DirPerm); err != nil {
		return fmt.Errorf("create %s: %w", r.target, err)
	}
	r.created = true
	return nil
}

func (r *run) copyPlatformTemplates(context.Context) error {
	for _, p := range r.cfg.Platforms {
		tmpl, ok := r.opts.Manifest.Platform(string(p))
		if !ok {
			return fmt.Errorf("%w: platform %s", ErrMissingTemplate, p)
		}
		if _, err := fs.Stat(r.opts.Bundle, tmpl.Bundle); err != nil {
			r.warn("no bundled %s template, skipping", tmpl.Label)
			r.opts.Logger.Warn("bundled platform template missing", "platform", p, "bundle", tmpl.Bundle)
			continue
		}
		dest := filepath.Join(r.target, filepath.FromSlash(tmpl.Destination))
		if err := fsutil.CopyFS(r.opts.Bundle, tmpl.Bundle, dest); err != nil {
			return fmt.Errorf("copy %s template: %w", tmpl.Label, err)
		}
	}
	return nil
}

func (r *run) fetchBaseTemplate(ctx context.Context) error {
	return r.fetchFolder(ctx, r.opts.Manifest.Remote.Base)
}

func (r *run) fetchTailwindOverlay(ctx context.Context) error {
	path, ok := r.opts.Manifest.Overlay("tailwind")
	if !ok {
		return fmt.Errorf("%w: tailwind overlay", ErrMissingTemplate)
	}
	return r.fetchFolder(ctx, path)
}

func (r *run) fetchFolder(ctx context.Context, repoPath string) error {
	res, err := r.opts.Fetcher.FetchFolders(ctx, r.opts.Source, []fetch.Entry{{RepoPath: repoPath}}, r.target)
	if err != nil {
		return err
	}
	r.result.Fetches = append(r.result.Fetches, res)
	for _, missing := range res.Missing {
		r.warn("template folder %s not found in %s", missing, r.opts.Source.URL)
	}
	return nil
}

func (r *run) replacePlaceholders(ctx context.Context) error {
	outcomes, err := substitute.ReplacePlaceholders(ctx, r.target, r.cfg.Name, substitute.Options{
		Rules:   r.opts.Rules,
		Workers: r.opts.Workers,
		Logger:  r.opts.Logger,
	})
	if err != nil {
		return err
	}
	r.result.Substitutions = outcomes
	for _, o := range outcomes {
		if o.Status == substitute.FileFailed {
			r.warn("could not update %s: %v", r.rel(o.Path), o.Err)
		}
	}
	return nil
}

func (r *run) renameEntries(context.Context) error {
	outcomes := substitute.RenameEntries(r.target, r.cfg.Name, r.opts.Logger)
	r.result.Renames = outcomes
	for _, o := range outcomes {
		switch o.Status {
		case substitute.RenameFailed:
			r.warn("could not rename %s: %v", r.rel(o.From), o.Err)
		case substitute.RenameSkipped:
			r.warn("kept %s because %s already exists", r.rel(o.From), r.rel(o.To))
		}
	}
	return nil
}

func (r *run) initRepository(context.Context) error {
	err := r.opts.InitRepository(r.target)
	if errors.Is(err, git.ErrRepositoryAlreadyExists) {
		r.warn("%s is already a git repository", r.target)
		return nil
	}
	if err != nil {
		return err
	}
	r.result.GitInitialized = true
	return nil
}

func (r *run) rel(path string) string {
	if rel, err := filepath.Rel(r.target, path); err == nil {
		return rel
	}
	return path
}
