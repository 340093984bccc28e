package pkg

import (
	"strings"

	"github.com/LerianStudio/lib-dax-copilot-go/constant"
)

// ParseSubstitutions splits a comma-separated list of key=value pairs into a map.
// Entries without "=" or with an empty key are skipped.
func ParseSubstitutions(pairs string) map[string]string {
	values := map[string]string{}
	if strings.TrimSpace(pairs) == "" {
		return values
	}

	for _, pair := range strings.Split(pairs, ",") {
		key, value, found := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)

		if !found || key == "" {
			continue
		}

		values[key] = strings.TrimSpace(value)
	}

	return values
}

// IsTemplatePlaceholder reports whether value is still an unedited template value.
func IsTemplatePlaceholder(value string) bool {
	v := strings.TrimSpace(value)
	if strings.HasPrefix(v, constant.TemplatePlaceholderPrefix) {
		return true
	}

	return v == constant.TemplateAzureOpenAIEndpoint
}
