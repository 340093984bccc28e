package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSubstitutions(t *testing.T) {
	tests := []struct {
		input    string
		expected map[string]string
	}{
		{input: "", expected: map[string]string{}},
		{input: "region=Pacific", expected: map[string]string{"region": "Pacific"}},
		{input: " region = Pacific , country=Canada", expected: map[string]string{"region": "Pacific", "country": "Canada"}},
		{input: "region=, =Canada, broken", expected: map[string]string{"region": ""}},
		{input: "expr=a=b", expected: map[string]string{"expr": "a=b"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseSubstitutions(tt.input), tt.input)
	}
}

func TestIsTemplatePlaceholder(t *testing.T) {
	assert.True(t, IsTemplatePlaceholder("your-azure-tenant-id"))
	assert.True(t, IsTemplatePlaceholder(" your-semantic-model-name "))
	assert.True(t, IsTemplatePlaceholder("https://your-resource-name.openai.azure.com/"))

	assert.False(t, IsTemplatePlaceholder("https://contoso.openai.azure.com/"))
	assert.False(t, IsTemplatePlaceholder("AdventureWorks"))
	assert.False(t, IsTemplatePlaceholder(""))
}
