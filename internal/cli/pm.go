package cli

import "strings"

// PackageManager is the JavaScript package manager used in next steps.
type PackageManager string

// Known package managers.
const (
	NPM  PackageManager = "npm"
	Yarn PackageManager = "yarn"
	PNPM PackageManager = "pnpm"
	Bun  PackageManager = "bun"
)

// DetectPackageManager guesses the package manager that launched the CLI
// from npm_config_user_agent and npm_execpath. The user agent wins; npm is
// the fallback.
func DetectPackageManager(userAgent, execPath string) PackageManager {
	for _, pm := range []PackageManager{Yarn, PNPM, Bun} {
		if strings.HasPrefix(userAgent, string(pm)) {
			return pm
		}
	}
	for _, pm := range []PackageManager{Yarn, PNPM, Bun} {
		if strings.Contains(execPath, string(pm)) {
			return pm
		}
	}
	return NPM
}

// InstallCommand returns the command installing dependencies.
func (pm PackageManager) InstallCommand() string {
	if pm == Yarn {
		return "yarn"
	}
	return string(pm) + " install"
}

// DevCommand returns the command starting the dev server.
func (pm PackageManager) DevCommand() string {
	if pm == NPM {
		return "npm run dev"
	}
	return string(pm) + " dev"
}
