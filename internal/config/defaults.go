package config

import "time"

// Default values.
const (
	DefaultRepoURL      = "https://github.com/lynx-community/cli"
	DefaultBranch       = "main"
	DefaultFetchTimeout = time.Duration(0)
)

// EnvPrefix prefixes every environment variable read by Load, e.g.
// CREATE_LYNX_APP_REPO_URL.
const EnvPrefix = "CREATE_LYNX_APP"

// Keys understood in the config file.
const (
	KeyRepoURL      = "repo_url"
	KeyBranch       = "branch"
	KeyFetchTimeout = "fetch_timeout"

	// Set by package managers when they launch the CLI.
	keyUserAgent = "user_agent"
	keyExecPath  = "exec_path"
)

const (
	appDirName = "create-lynx-app"
	fileName   = "config"
	fileType   = "yaml"
)
