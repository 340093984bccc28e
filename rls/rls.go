// Package rls resolves {name} placeholders inside row-level-security filters.
//
// Substitution is plain token replacement. Each supplied value is escaped for
// a DAX string literal by doubling embedded double quotes, so a value can be
// placed between the quotes that surround a token in the filter.
package rls

import (
	"regexp"
	"strings"

	"github.com/LerianStudio/lib-dax-copilot-go/constant"
	"github.com/LerianStudio/lib-dax-copilot-go/model"
	"github.com/LerianStudio/lib-dax-copilot-go/pkg"
)

var tokenPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Placeholders returns the distinct token names in filter, in order of first appearance.
func Placeholders(filter string) []string {
	names := []string{}
	seen := map[string]bool{}

	for _, m := range tokenPattern.FindAllStringSubmatch(filter, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}

	return names
}

// Substitute replaces every token in filter with its value.
// A token with no value yields a pkg.ValidationError and no partial result.
func Substitute(filter string, values map[string]string) (string, error) {
	for _, name := range Placeholders(filter) {
		if _, ok := values[name]; !ok {
			return "", pkg.ValidateBusinessError(constant.ErrUnresolvedToken, "RLSRule", name)
		}
	}

	return tokenPattern.ReplaceAllStringFunc(filter, func(token string) string {
		name := token[1 : len(token)-1]

		return EscapeDAXString(values[name])
	}), nil
}

// Resolve looks up the named rule in doc and substitutes its placeholders.
func Resolve(doc model.Document, name string, values map[string]string) (string, error) {
	rule, ok := doc.Rule(name)
	if !ok {
		return "", pkg.ValidateBusinessError(constant.ErrUnknownRule, "RLSRule", name)
	}

	return Substitute(rule.Filter, values)
}

// EscapeDAXString escapes value for use inside a double-quoted DAX string.
func EscapeDAXString(value string) string {
	return strings.ReplaceAll(value, `"`, `""`)
}
