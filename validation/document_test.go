package validation_test

import (
	"errors"
	"testing"

	"github.com/LerianStudio/lib-commons/commons/log"
	copilot "github.com/LerianStudio/lib-dax-copilot-go"
	"github.com/LerianStudio/lib-dax-copilot-go/constant"
	"github.com/LerianStudio/lib-dax-copilot-go/model"
	"github.com/LerianStudio/lib-dax-copilot-go/pkg"
	"github.com/LerianStudio/lib-dax-copilot-go/test/helper/testlogger"
	"github.com/LerianStudio/lib-dax-copilot-go/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func filledDocument() *model.Document {
	return &model.Document{
		OpenAI: model.EndpointCredentials{
			APIKey:     "key-123",
			Endpoint:   "https://contoso.openai.azure.com/",
			Deployment: "gpt-4o",
			APIVersion: "2024-02-01",
		},
		ServicePrincipal: model.ServicePrincipal{
			ClientID:     "11111111-2222-3333-4444-555555555555",
			ClientSecret: "s3cr3t",
			TenantID:     "66666666-7777-8888-9999-000000000000",
		},
		Target: model.TargetResource{
			Workspace:     "Sales",
			SemanticModel: "AdventureWorks",
		},
		RLSRules: model.RuleSet{
			"canada_only": {
				Filter:      `DimSalesTerritory[Sales Territory Country] = "Canada"`,
				Description: "Restrict data to Canada only",
			},
		},
		Metadata: "Semantic model metadata:",
	}
}

func fieldsOf(t *testing.T, err error) pkg.FieldValidations {
	t.Helper()

	var verr pkg.ValidationKnownFieldsError
	require.True(t, errors.As(err, &verr), "expected ValidationKnownFieldsError, got %v", err)
	assert.Equal(t, constant.ErrInvalidDocument.Error(), verr.Code)

	return verr.Fields
}

func TestValidateFilledDocument(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := log.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any()).Times(1)

	assert.NoError(t, validation.Validate(filledDocument(), mockLogger))
}

func TestValidateTemplate(t *testing.T) {
	doc := copilot.Template()
	logger := testlogger.New()

	err := validation.Validate(&doc, logger)
	require.Error(t, err)

	fields := fieldsOf(t, err)
	for _, path := range []string{
		"openai.apikey",
		"openai.endpoint",
		"openai.deployment",
		"serviceprincipal.clientid",
		"serviceprincipal.clientsecret",
		"serviceprincipal.tenantid",
		"target.workspace",
		"target.semanticmodel",
	} {
		assert.Equal(t, "template placeholder was not replaced", fields[path], path)
	}

	assert.NotContains(t, fields, "openai.apiversion")
	assert.Equal(t, len(fields), logger.Count("WARN"))
}

func TestValidateFindings(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(doc *model.Document)
		expected pkg.FieldValidations
	}{
		{
			name:     "missing api key",
			mutate:   func(doc *model.Document) { doc.OpenAI.APIKey = "" },
			expected: pkg.FieldValidations{"openai.apikey": "is required"},
		},
		{
			name:     "endpoint is not a url",
			mutate:   func(doc *model.Document) { doc.OpenAI.Endpoint = "contoso" },
			expected: pkg.FieldValidations{"openai.endpoint": "must be a valid URL"},
		},
		{
			name:     "missing tenant",
			mutate:   func(doc *model.Document) { doc.ServicePrincipal.TenantID = "" },
			expected: pkg.FieldValidations{"serviceprincipal.tenantid": "is required"},
		},
		{
			name: "rule without filter",
			mutate: func(doc *model.Document) {
				doc.RLSRules["empty"] = model.AccessRule{Description: "nothing to filter"}
			},
			expected: pkg.FieldValidations{"rlsrules[empty].filter": "is required"},
		},
		{
			name: "rule without description",
			mutate: func(doc *model.Document) {
				doc.RLSRules["undocumented"] = model.AccessRule{Filter: "1 = 1"}
			},
			expected: pkg.FieldValidations{"rlsrules[undocumented].description": "is required"},
		},
		{
			name: "dotted rule name",
			mutate: func(doc *model.Document) {
				doc.RLSRules["emea.only"] = model.AccessRule{Filter: "1 = 1", Description: "all"}
			},
			expected: pkg.FieldValidations{"rlsrules[emea.only]": "rule name must not contain '.'"},
		},
		{
			name: "blank rule name",
			mutate: func(doc *model.Document) {
				doc.RLSRules[" "] = model.AccessRule{Filter: "1 = 1", Description: "all"}
			},
			expected: pkg.FieldValidations{"rlsrules[]": "rule name must not be empty"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := filledDocument()
			tt.mutate(doc)

			err := validation.Validate(doc, testlogger.New())
			require.Error(t, err)
			assert.Equal(t, tt.expected, fieldsOf(t, err))
		})
	}
}

func TestValidateOptionalParts(t *testing.T) {
	doc := filledDocument()
	doc.RLSRules = nil
	doc.Metadata = ""

	assert.NoError(t, validation.Validate(doc, testlogger.New()))
}

func TestValidateNilDocument(t *testing.T) {
	err := validation.Validate(nil, testlogger.New())

	var verr pkg.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, constant.ErrInvalidDocument.Error(), verr.Code)
}
