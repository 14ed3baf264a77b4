package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lynx-community/create-lynx-app/internal/cli/wizard"
	"github.com/lynx-community/create-lynx-app/internal/naming"
	"github.com/lynx-community/create-lynx-app/internal/scaffold"
	"github.com/lynx-community/create-lynx-app/internal/ui"
	"github.com/lynx-community/create-lynx-app/pkg/version"
)

// errCancelled marks runs stopped by the user after scaffolding started.
var errCancelled = errors.New("cancelled")

// runWizard asks for missing settings. Tests replace it.
var runWizard = wizard.Run

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-lynx-app [project-name]",
		Short: "Create a new Lynx application",
		Long: `Create a new Lynx application.

Missing settings are asked for interactively. Without a terminal, or with
--non-interactive, the project name is required and the defaults are both
platforms, no Tailwind CSS and no git repository.

Examples:
  create-lynx-app                       Ask for everything
  create-lynx-app my-app -p android -t  Android only, with Tailwind CSS
  create-lynx-app my-app -d ~/src -g    Create ~/src/my-app and run git init`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCreate,
	}
	cmd.SetVersionTemplate(fmt.Sprintf("create-lynx-app %s\n", version.GetFullVersion()))

	flags := cmd.Flags()
	flags.StringSliceP("platforms", "p", nil, "Platforms to include (ios, android)")
	flags.BoolP("tailwind", "t", false, "Use Tailwind CSS")
	flags.BoolP("git", "g", false, "Initialize a git repository")
	flags.StringP("directory", "d", "", "Parent directory of the project (default: current directory)")
	flags.Bool("non-interactive", false, "Never prompt; use flags and defaults")
	flags.Bool("verbose", false, "Log progress details to stderr")
	flags.String("config", "", "Config file (default: $XDG_CONFIG_HOME/create-lynx-app/config.yaml)")
	return cmd
}

// Execute runs the command until it finishes or SIGINT/SIGTERM arrives.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		t := ui.NewTheme(ui.ThemeConfig{NoColor: true})
		if deps != nil {
			t = deps.Theme
		}
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", t.Error.Render("✗ Error creating project:"), err)
	}
	return err
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// changedBool returns the flag value if it was set on the command line.
func changedBool(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v := getBoolFlag(cmd, name)
	return &v
}

func runCreate(cmd *cobra.Command, args []string) error {
	if deps == nil {
		if err := InitDependencies(DependencyOptions{
			ConfigFile: getStringFlag(cmd, "config"),
			Verbose:    getBoolFlag(cmd, "verbose"),
			LogOutput:  cmd.ErrOrStderr(),
		}); err != nil {
			return err
		}
	}
	out := cmd.OutOrStdout()
	t := deps.Theme

	_, _ = fmt.Fprintf(out, "%s\n\n", renderTitle(t))

	cfg, err := gatherConfig(cmd, args)
	if errors.Is(err, wizard.ErrCancelled) {
		_, _ = fmt.Fprintln(out, t.Warn.Render("Operation cancelled."))
		return nil
	}
	if err != nil {
		return err
	}

	res, err := scaffoldProject(cmd.Context(), cmd, cfg)
	if errors.Is(err, errCancelled) {
		_, _ = fmt.Fprintln(out, t.Warn.Render("Operation cancelled."))
		return nil
	}
	if err != nil {
		return err
	}

	printWarnings(out, t, res.Warnings)
	_, _ = fmt.Fprintf(out, "\n%s\n", renderSummary(t, cfg, res))

	pm := DetectPackageManager(deps.Settings.UserAgent, deps.Settings.ExecPath)
	_, _ = fmt.Fprintf(out, "\n%s\n", t.Accent.Render("Happy hacking!"))
	_, _ = fmt.Fprint(out, renderMarkdown(t, nextStepsMarkdown(cdPath(cfg), pm)))
	return nil
}

// gatherConfig merges flags, the positional name and, when a terminal is
// attached, wizard answers into a validated ProjectConfig.
func gatherConfig(cmd *cobra.Command, args []string) (scaffold.ProjectConfig, error) {
	preset := wizard.Preset{
		Tailwind: changedBool(cmd, "tailwind"),
		Git:      changedBool(cmd, "git"),
	}
	if len(args) > 0 {
		preset.Name = args[0]
	}
	if cmd.Flags().Changed("platforms") {
		platforms, err := cmd.Flags().GetStringSlice("platforms")
		if err != nil {
			return scaffold.ProjectConfig{}, err
		}
		parsed, err := scaffold.ParsePlatforms(platforms)
		if err != nil {
			return scaffold.ProjectConfig{}, err
		}
		for _, p := range parsed {
			preset.Platforms = append(preset.Platforms, string(p))
		}
	}

	interactive := !getBoolFlag(cmd, "non-interactive") && !deps.Headless.IsHeadless()

	var answers *wizard.Answers
	if interactive {
		if preset.Name != "" {
			if err := naming.ValidateProjectName(preset.Name); err != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %v\n", deps.Theme.Warn.Render("!"), err)
				preset.Name = ""
			}
		}
		a, err := runWizard(preset)
		if err != nil {
			return scaffold.ProjectConfig{}, err
		}
		answers = a
	} else {
		answers = defaultAnswers(preset)
	}

	platforms, err := scaffold.ParsePlatforms(answers.Platforms)
	if err != nil {
		return scaffold.ProjectConfig{}, err
	}
	return scaffold.NewProjectConfig(
		answers.Name,
		platforms,
		getStringFlag(cmd, "directory"),
		answers.Tailwind,
		answers.Git,
	)
}

// defaultAnswers fills what the user did not give without prompting.
func defaultAnswers(preset wizard.Preset) *wizard.Answers {
	a := &wizard.Answers{
		Name:      preset.Name,
		Platforms: preset.Platforms,
	}
	if len(a.Platforms) == 0 {
		a.Platforms = []string{wizard.PlatformIOS, wizard.PlatformAndroid}
	}
	if preset.Tailwind != nil {
		a.Tailwind = *preset.Tailwind
	}
	if preset.Git != nil {
		a.Git = *preset.Git
	}
	return a
}

func scaffoldProject(ctx context.Context, cmd *cobra.Command, cfg scaffold.ProjectConfig) (*scaffold.Result, error) {
	t := deps.Theme
	spinner := ui.NewSpinner(t, deps.Headless, cmd.OutOrStdout(), "Creating project in "+cfg.TargetPath())

	s, err := scaffold.New(scaffold.Options{
		Manifest:       deps.Manifest,
		Bundle:         deps.Bundle,
		Fetcher:        deps.Fetcher,
		Source:         deps.source(),
		Reporter:       spinnerReporter{spinner: spinner},
		Logger:         deps.Logger,
		InitRepository: deps.InitRepository,
	})
	if err != nil {
		spinner.Stop("")
		return nil, err
	}

	res, err := s.Scaffold(ctx, cfg)
	if err != nil {
		spinner.Stop("")
		if errors.Is(err, context.Canceled) {
			return nil, errCancelled
		}
		return nil, err
	}
	spinner.Stop(t.Success.Render(symSuccess + " Project created successfully!"))
	return res, nil
}

// cdPath is the directory to cd into, relative to the working directory
// when possible.
func cdPath(cfg scaffold.ProjectConfig) string {
	wd, err := os.Getwd()
	if err != nil {
		return cfg.TargetPath()
	}
	rel, err := filepath.Rel(wd, cfg.TargetPath())
	if err != nil {
		return cfg.TargetPath()
	}
	return rel
}
