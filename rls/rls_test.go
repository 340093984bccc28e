package rls_test

import (
	"errors"
	"testing"

	copilot "github.com/LerianStudio/lib-dax-copilot-go"
	"github.com/LerianStudio/lib-dax-copilot-go/constant"
	"github.com/LerianStudio/lib-dax-copilot-go/pkg"
	"github.com/LerianStudio/lib-dax-copilot-go/rls"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		filter   string
		expected []string
	}{
		{filter: `DimSalesTerritory[Sales Territory Country] = "Canada"`, expected: []string{}},
		{filter: `DimSalesTerritory[Sales Territory Region] = "{region}"`, expected: []string{"region"}},
		{filter: `T[a] = "{x}" && T[b] = "{y}" || T[c] = "{x}"`, expected: []string{"x", "y"}},
		{filter: `T[Country] IN {"Canada", "France"}`, expected: []string{}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, rls.Placeholders(tt.filter), tt.filter)
	}
}

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name     string
		filter   string
		values   map[string]string
		expected string
	}{
		{
			name:     "single token",
			filter:   `DimSalesTerritory[Sales Territory Region] = "{region}"`,
			values:   map[string]string{"region": "Pacific"},
			expected: `DimSalesTerritory[Sales Territory Region] = "Pacific"`,
		},
		{
			name:     "repeated token and unused value",
			filter:   `T[a] = "{x}" || T[b] = "{x}"`,
			values:   map[string]string{"x": "1", "y": "2"},
			expected: `T[a] = "1" || T[b] = "1"`,
		},
		{
			name:     "quotes are doubled",
			filter:   `T[Name] = "{name}"`,
			values:   map[string]string{"name": `Bob "B" Smith`},
			expected: `T[Name] = "Bob ""B"" Smith"`,
		},
		{
			name:     "no tokens",
			filter:   `DimSalesTerritory[Sales Territory Country] = "Canada"`,
			values:   nil,
			expected: `DimSalesTerritory[Sales Territory Country] = "Canada"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rls.Substitute(tt.filter, tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSubstituteMissingValue(t *testing.T) {
	_, err := rls.Substitute(`T[a] = "{region}"`, map[string]string{"country": "Canada"})
	require.Error(t, err)

	var verr pkg.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, constant.ErrUnresolvedToken.Error(), verr.Code)
	assert.Contains(t, verr.Message, "{region}")
}

func TestResolve(t *testing.T) {
	doc := copilot.Template()

	filter, err := rls.Resolve(doc, "regional_manager", map[string]string{"region": "Northwest"})
	require.NoError(t, err)
	assert.Equal(t, `DimSalesTerritory[Sales Territory Region] = "Northwest"`, filter)

	rule, _ := doc.Rule("regional_manager")
	assert.Equal(t, `DimSalesTerritory[Sales Territory Region] = "{region}"`, rule.Filter, "the document is never modified")

	_, err = rls.Resolve(doc, "finance_only", nil)

	var notFound pkg.EntityNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, constant.ErrUnknownRule.Error(), notFound.Code)
}
