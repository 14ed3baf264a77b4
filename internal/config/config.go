package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings are the resolved, read-only settings of one run.
type Settings struct {
	// RepoURL is the repository the React templates are fetched from.
	RepoURL string
	// Branch is checked out when fetching; empty means the remote default.
	Branch string
	// FetchTimeout bounds template fetching. Zero disables the limit.
	FetchTimeout time.Duration

	// UserAgent and ExecPath carry npm_config_user_agent and npm_execpath,
	// used to guess the package manager the user runs.
	UserAgent string
	ExecPath  string

	// File is the config file that was read, or empty if none was.
	File string
}

// DefaultFilePath returns $XDG_CONFIG_HOME/create-lynx-app/config.yaml
// (or the platform equivalent).
func DefaultFilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appDirName, fileName+"."+fileType)
}

// Load resolves settings from defaults, the config file and the
// environment, in increasing precedence. An empty path selects
// DefaultFilePath; a missing default file is not an error, while a missing
// explicit path is.
func Load(path string) (*Settings, error) {
	v := viper.New()
	v.SetDefault(KeyRepoURL, DefaultRepoURL)
	v.SetDefault(KeyBranch, DefaultBranch)
	v.SetDefault(KeyFetchTimeout, DefaultFetchTimeout)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// Package manager hints are not prefixed.
	_ = v.BindEnv(keyUserAgent, "npm_config_user_agent")
	_ = v.BindEnv(keyExecPath, "npm_execpath")

	explicit := path != ""
	if !explicit {
		path = DefaultFilePath()
	}

	var file string
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType(fileType)
		switch err := v.ReadInConfig(); {
		case err == nil:
			file = path
		case !explicit && isNotFound(err):
			// No config file is the common case.
		default:
			return nil, fmt.Errorf("%w %s: %w", ErrReadConfig, path, err)
		}
	}

	timeout, err := parseDuration(v.GetString(KeyFetchTimeout))
	if err != nil {
		return nil, &ValidationError{Key: KeyFetchTimeout, Message: "want a duration such as 30s", Value: v.GetString(KeyFetchTimeout)}
	}

	s := &Settings{
		RepoURL:      strings.TrimSpace(v.GetString(KeyRepoURL)),
		Branch:       strings.TrimSpace(v.GetString(KeyBranch)),
		FetchTimeout: timeout,
		UserAgent:    v.GetString(keyUserAgent),
		ExecPath:     v.GetString(keyExecPath),
		File:         file,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate reports the first invalid setting.
func (s *Settings) Validate() error {
	if s.RepoURL == "" {
		return &ValidationError{Key: KeyRepoURL, Message: "must not be empty", Value: s.RepoURL}
	}
	if strings.HasPrefix(s.RepoURL, "-") {
		return &ValidationError{Key: KeyRepoURL, Message: "must not start with '-'", Value: s.RepoURL}
	}
	if strings.HasPrefix(s.Branch, "-") {
		return &ValidationError{Key: KeyBranch, Message: "must not start with '-'", Value: s.Branch}
	}
	if s.FetchTimeout < 0 {
		return &ValidationError{Key: KeyFetchTimeout, Message: "must not be negative", Value: s.FetchTimeout}
	}
	return nil
}

func parseDuration(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "0" {
		return 0, nil
	}
	return time.ParseDuration(raw)
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}
