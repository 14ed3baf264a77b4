package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lynx-community/create-lynx-app/internal/naming"
)

func TestParsePlatforms(t *testing.T) {
	got, err := ParsePlatforms([]string{"Android", "ios", "android", " "})
	require.NoError(t, err)
	assert.Equal(t, []Platform{PlatformAndroid, PlatformIOS}, got)

	_, err = ParsePlatforms([]string{"windows"})
	assert.ErrorIs(t, err, ErrUnknownPlatform)

	got, err = ParsePlatforms(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNewProjectConfig(t *testing.T) {
	dir := t.TempDir()
	cfg, err := NewProjectConfig("my-app", []Platform{PlatformIOS, PlatformIOS}, dir, true, false)
	require.NoError(t, err)

	assert.Equal(t, "my-app", cfg.Name)
	assert.Equal(t, []Platform{PlatformIOS}, cfg.Platforms)
	assert.True(t, cfg.Has(PlatformIOS))
	assert.False(t, cfg.Has(PlatformAndroid))
	assert.True(t, cfg.UseTailwind)
	assert.Equal(t, filepath.Join(dir, "my-app"), cfg.TargetPath())
}

func TestNewProjectConfig_DirectoryDefaultsToWorkingDirectory(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	cfg, err := NewProjectConfig("app", AllPlatforms(), "", false, false)
	require.NoError(t, err)
	assert.Equal(t, wd, cfg.Directory)

	cfg, err = NewProjectConfig("app", AllPlatforms(), "relative/dir", false, false)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(cfg.Directory))
	assert.Equal(t, filepath.Join(wd, "relative", "dir"), cfg.Directory)
}

func TestNewProjectConfig_Invalid(t *testing.T) {
	_, err := NewProjectConfig("", AllPlatforms(), "", false, false)
	assert.ErrorIs(t, err, naming.ErrNameRequired)

	_, err = NewProjectConfig("bad name!", AllPlatforms(), "", false, false)
	assert.ErrorIs(t, err, naming.ErrNameInvalid)

	_, err = NewProjectConfig("ok", nil, "", false, false)
	assert.ErrorIs(t, err, ErrNoPlatforms)

	_, err = NewProjectConfig("ok", []Platform{"web"}, "", false, false)
	assert.ErrorIs(t, err, ErrUnknownPlatform)
}
