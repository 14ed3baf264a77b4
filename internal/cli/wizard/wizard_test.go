package wizard

import (
	"errors"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

// stubForms replaces runForm for the duration of the test.
func stubForms(t *testing.T, fn func(*huh.Form) error) *int {
	t.Helper()
	orig := runForm
	t.Cleanup(func() { runForm = orig })

	calls := 0
	runForm = func(f *huh.Form) error {
		calls++
		return fn(f)
	}
	return &calls
}

func fieldKeys(fields []huh.Field) []string {
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.GetKey()
	}
	return keys
}

func TestQuestions_AllMissing(t *testing.T) {
	answers := &Answers{}
	fields := questions(Preset{}, answers)

	assert.Equal(t, []string{"name", "platforms", "tailwind", "git"}, fieldKeys(fields))
	assert.Equal(t, []string{PlatformIOS, PlatformAndroid}, answers.Platforms, "both platforms preselected")
}

func TestQuestions_PresetSkipsQuestions(t *testing.T) {
	preset := Preset{
		Name:      "my-app",
		Platforms: []string{PlatformAndroid},
		Tailwind:  boolPtr(true),
	}
	fields := questions(preset, &Answers{})
	assert.Equal(t, []string{"git"}, fieldKeys(fields))

	preset.Git = boolPtr(false)
	assert.Empty(t, questions(preset, &Answers{}))
}

func TestRun_FullyPresetAsksNothing(t *testing.T) {
	calls := stubForms(t, func(*huh.Form) error { return nil })

	answers, err := Run(Preset{
		Name:      "my-app",
		Platforms: []string{PlatformIOS},
		Tailwind:  boolPtr(true),
		Git:       boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, *calls)
	assert.Equal(t, &Answers{Name: "my-app", Platforms: []string{PlatformIOS}, Tailwind: true, Git: true}, answers)
}

func TestRun_DefaultsWhenFormsAccepted(t *testing.T) {
	calls := stubForms(t, func(*huh.Form) error { return nil })

	answers, err := Run(Preset{Name: "demo"})
	require.NoError(t, err)
	assert.Equal(t, 3, *calls)
	assert.Equal(t, "demo", answers.Name)
	assert.Equal(t, []string{PlatformIOS, PlatformAndroid}, answers.Platforms)
	assert.False(t, answers.Tailwind)
	assert.False(t, answers.Git)
}

func TestRun_AbortIsCancellation(t *testing.T) {
	calls := stubForms(t, func(*huh.Form) error { return huh.ErrUserAborted })

	_, err := Run(Preset{})
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, 1, *calls, "no further questions after an abort")
}

func TestRun_FormError(t *testing.T) {
	boom := errors.New("no tty")
	stubForms(t, func(*huh.Form) error { return boom })

	_, err := Run(Preset{})
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrCancelled)
}

func TestRequireOne(t *testing.T) {
	assert.Error(t, requireOne(nil))
	assert.NoError(t, requireOne([]string{PlatformIOS}))
}

func TestNewLynxTheme(t *testing.T) {
	assert.NotNil(t, newLynxTheme())
}
