// Package substitute personalizes a freshly copied template tree: it rewrites
// placeholder identifiers inside text files and renames placeholder-named
// files and directories.
package substitute

import (
	"regexp"

	"github.com/lynx-community/create-lynx-app/internal/naming"
)

// Placeholder tokens baked into the bundled and remote templates.
const (
	DisplayPlaceholder = "HelloWorld"
	PackagePlaceholder = "helloworld"
)

// Identifiers are the project-specific values placeholders are replaced with.
type Identifiers struct {
	Display string // e.g. "MyLynxApp"
	Package string // e.g. "mylynxapp"
}

// NewIdentifiers derives both identifiers from a project name.
func NewIdentifiers(projectName string) Identifiers {
	return Identifiers{
		Display: naming.ToDisplayIdentifier(projectName),
		Package: naming.ToPackageIdentifier(projectName),
	}
}

// Rule replaces every match of Pattern with the value Replacement computes.
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement func(Identifiers) string
}

// DefaultRules returns the placeholder rules in application order.
// Each rule sees the output of the rules before it.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:        "display",
			Pattern:     regexp.MustCompile(`HelloWorld`),
			Replacement: func(ids Identifiers) string { return ids.Display },
		},
		{
			Name:        "package",
			Pattern:     regexp.MustCompile(`helloworld`),
			Replacement: func(ids Identifiers) string { return ids.Package },
		},
		{
			Name:        "namespace",
			Pattern:     regexp.MustCompile(`com\.helloworld`),
			Replacement: func(ids Identifiers) string { return "com." + ids.Package },
		},
		{
			Name:        "theme",
			Pattern:     regexp.MustCompile(`Theme\.HelloWorld`),
			Replacement: func(ids Identifiers) string { return "Theme." + ids.Display },
		},
	}
}

// apply runs rules over content and returns the rewritten content together
// with the names of the rules that matched.
func apply(content []byte, rules []Rule, ids Identifiers) ([]byte, []string) {
	var matched []string
	for _, rule := range rules {
		if !rule.Pattern.Match(content) {
			continue
		}
		content = rule.Pattern.ReplaceAllLiteral(content, []byte(rule.Replacement(ids)))
		matched = append(matched, rule.Name)
	}
	return content, matched
}
