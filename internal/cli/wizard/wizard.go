// Package wizard asks for the project settings that were not given on the
// command line.
package wizard

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/lynx-community/create-lynx-app/internal/naming"
)

// ErrCancelled is returned when the user aborts the wizard.
var ErrCancelled = errors.New("operation cancelled")

// Platform option values.
const (
	PlatformIOS     = "ios"
	PlatformAndroid = "android"
)

// NamePlaceholder is shown in the empty name prompt.
const NamePlaceholder = "my-lynx-app"

// Preset holds answers already known from flags. Nil pointers and empty
// values are asked for.
type Preset struct {
	Name      string
	Platforms []string
	Tailwind  *bool
	Git       *bool
}

// Answers is the complete set of wizard answers.
type Answers struct {
	Name      string
	Platforms []string
	Tailwind  bool
	Git       bool
}

// runForm runs a single form. Tests replace it.
var runForm = func(f *huh.Form) error { return f.Run() }

// Run asks for every setting missing from preset and returns the merged
// answers. Each question runs as its own form so an abort is reported
// immediately as ErrCancelled.
func Run(preset Preset) (*Answers, error) {
	answers := &Answers{
		Name:      preset.Name,
		Platforms: preset.Platforms,
	}
	if preset.Tailwind != nil {
		answers.Tailwind = *preset.Tailwind
	}
	if preset.Git != nil {
		answers.Git = *preset.Git
	}

	theme := newLynxTheme()
	for _, field := range questions(preset, answers) {
		form := huh.NewForm(huh.NewGroup(field)).
			WithTheme(theme).
			WithShowHelp(false)
		if err := runForm(form); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil, ErrCancelled
			}
			return nil, fmt.Errorf("wizard error: %w", err)
		}
	}
	return answers, nil
}

// questions builds one field per missing answer, bound to answers.
func questions(preset Preset, answers *Answers) []huh.Field {
	var fields []huh.Field

	if preset.Name == "" {
		fields = append(fields, huh.NewInput().
			Key("name").
			Title("What is your app named?").
			Placeholder(NamePlaceholder).
			Validate(naming.ValidateProjectName).
			Value(&answers.Name))
	}

	if len(preset.Platforms) == 0 {
		answers.Platforms = []string{PlatformIOS, PlatformAndroid}
		fields = append(fields, huh.NewMultiSelect[string]().
			Key("platforms").
			Title("What platforms do you want to start with?").
			Options(
				huh.NewOption("iOS", PlatformIOS).Selected(true),
				huh.NewOption("Android", PlatformAndroid).Selected(true),
			).
			Validate(requireOne).
			Value(&answers.Platforms))
	}

	if preset.Tailwind == nil {
		fields = append(fields, huh.NewConfirm().
			Key("tailwind").
			Title("Do you want to use Tailwind CSS?").
			Affirmative("Yes").
			Negative("No").
			Value(&answers.Tailwind))
	}

	if preset.Git == nil {
		fields = append(fields, huh.NewConfirm().
			Key("git").
			Title("Initialize a git repository?").
			Affirmative("Yes").
			Negative("No").
			Value(&answers.Git))
	}

	return fields
}

func requireOne(selected []string) error {
	if len(selected) == 0 {
		return errors.New("select at least one platform")
	}
	return nil
}

func newLynxTheme() *huh.Theme {
	t := huh.ThemeBase()

	primary := lipgloss.AdaptiveColor{Light: "#D6336C", Dark: "#FF6B9D"}
	secondary := lipgloss.AdaptiveColor{Light: "#1C7ED6", Dark: "#45B7D1"}
	muted := lipgloss.AdaptiveColor{Light: "#868E96", Dark: "#8A8F98"}
	red := lipgloss.AdaptiveColor{Light: "#C92A2A", Dark: "#E74C3C"}

	t.Focused.Title = t.Focused.Title.Foreground(primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(secondary)
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(secondary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(secondary)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(secondary)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(secondary)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(muted)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Background(primary)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(red)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(red)

	t.Blurred = t.Focused
	t.Blurred.Title = t.Blurred.Title.Foreground(muted).Bold(false)
	return t
}
