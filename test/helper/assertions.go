package helper

import (
	"testing"

	"github.com/LerianStudio/lib-dax-copilot-go/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertRule checks that doc holds the named rule with the given filter and description
func AssertRule(t *testing.T, doc model.Document, name, filter, description string) {
	t.Helper()

	rule, ok := doc.Rule(name)
	require.True(t, ok, "rule %s not found", name)
	assert.Equal(t, filter, rule.Filter, "filter mismatch for rule %s", name)
	assert.Equal(t, description, rule.Description, "description mismatch for rule %s", name)
}

// AssertSameMapping checks that two documents hold identical key to value mappings
func AssertSameMapping(t *testing.T, expected, actual model.Document) {
	t.Helper()
	assert.Equal(t, expected.Flatten(), actual.Flatten(), "document mappings differ")
	assert.Equal(t, expected.Fingerprint(), actual.Fingerprint(), "fingerprint mismatch")
}
