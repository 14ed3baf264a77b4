// Package naming derives the identifiers that replace template placeholders
// from a user supplied project name.
package naming

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Sentinel errors returned by ValidateProjectName.
var (
	// ErrNameRequired indicates a blank project name.
	ErrNameRequired = errors.New("app name is required")

	// ErrNameInvalid indicates a name with characters outside [A-Za-z0-9_-].
	ErrNameInvalid = errors.New("app name should only contain letters, numbers, hyphens, and underscores")
)

// packagePrefix is prepended when a package identifier would not start with a letter.
const packagePrefix = "app"

var projectNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateProjectName reports whether name can be used as a project directory
// and as the source of the generated identifiers.
func ValidateProjectName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	if !projectNamePattern.MatchString(name) {
		return ErrNameInvalid
	}
	return nil
}

// ToDisplayIdentifier converts name into a PascalCase identifier such as
// "MyLynxApp". Characters other than ASCII letters and digits separate tokens
// and are dropped; each token that starts with a letter gets it upper-cased.
func ToDisplayIdentifier(name string) string {
	tokens := strings.FieldsFunc(name, func(r rune) bool {
		return !isASCIIAlnum(r)
	})

	// Caser instances are stateful, so one per call.
	caser := cases.Title(language.Und, cases.NoLower)

	var b strings.Builder
	for _, token := range tokens {
		if isASCIILetter(rune(token[0])) {
			token = caser.String(token)
		}
		b.WriteString(token)
	}
	return b.String()
}

// ToPackageIdentifier converts name into a lowercase identifier usable as a
// Java/Kotlin package segment. The result always matches ^[a-z][a-z0-9]*$.
//
// When the alphanumeric form does not start with a letter, its leading digits
// are dropped and "app" is prefixed, so "123-Cool App!" becomes "appcoolapp"
// and "123" becomes "app".
func ToPackageIdentifier(name string) string {
	lower := strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(lower))
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}

	id := b.String()
	if id != "" && isASCIILetter(rune(id[0])) {
		return id
	}
	return packagePrefix + strings.TrimLeft(id, "0123456789")
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isASCIIAlnum(r rune) bool {
	return isASCIILetter(r) || (r >= '0' && r <= '9')
}
