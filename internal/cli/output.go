package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/lynx-community/create-lynx-app/internal/scaffold"
	"github.com/lynx-community/create-lynx-app/internal/substitute"
	"github.com/lynx-community/create-lynx-app/internal/ui"
)

const symSuccess = "✓"

func renderTitle(t *ui.Theme) string {
	return t.Title.Render("Create ") + ui.Banner(t, "Lynx") + t.Title.Render(" App")
}

func printWarnings(w io.Writer, t *ui.Theme, warnings []string) {
	for _, warning := range warnings {
		_, _ = fmt.Fprintf(w, "%s %s\n", t.Warn.Render("!"), warning)
	}
}

// renderSummary builds the success card shown after a run.
func renderSummary(t *ui.Theme, cfg scaffold.ProjectConfig, res *scaffold.Result) string {
	labels := make([]string, 0, len(cfg.Platforms))
	for _, p := range cfg.Platforms {
		switch p {
		case scaffold.PlatformIOS:
			labels = append(labels, "iOS")
		case scaffold.PlatformAndroid:
			labels = append(labels, "Android")
		}
	}

	yesNo := func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	}

	lines := []string{
		t.Success.Render(symSuccess + " Created " + cfg.Name),
		"",
		t.Muted.Render("Path      ") + res.Path,
		t.Muted.Render("Platforms ") + strings.Join(labels, ", "),
		t.Muted.Render("Tailwind  ") + yesNo(cfg.UseTailwind),
		t.Muted.Render("Git       ") + yesNo(res.GitInitialized),
		t.Muted.Render("Files     ") + fmt.Sprintf("%d updated, %d renamed",
			substitute.CountFiles(res.Substitutions, substitute.FileUpdated),
			substitute.CountRenames(res.Renames, substitute.Renamed)),
	}
	return t.Card.Render(strings.Join(lines, "\n"))
}

// nextStepsMarkdown lists the commands to run after scaffolding.
func nextStepsMarkdown(dir string, pm PackageManager) string {
	var b strings.Builder
	b.WriteString("## Next steps\n\n")
	b.WriteString("```sh\n")
	fmt.Fprintf(&b, "cd %s\n", dir)
	fmt.Fprintf(&b, "%s\n", pm.InstallCommand())
	fmt.Fprintf(&b, "%s\n", pm.DevCommand())
	b.WriteString("```\n")
	return b.String()
}

// renderMarkdown renders md for the terminal. Without color, or if the
// renderer fails, md is returned as is.
func renderMarkdown(t *ui.Theme, md string) string {
	if t.NoColor {
		return md
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
