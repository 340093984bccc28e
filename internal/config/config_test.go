package config

import (
	"context"
	"fmt"
	"testing"

	"github.com/LerianStudio/lib-dax-copilot-go/model"
	"github.com/LerianStudio/lib-dax-copilot-go/test/helper"
	"github.com/LerianStudio/lib-dax-copilot-go/test/helper/testlogger"
	"github.com/LerianStudio/lib-dax-copilot-go/test/mocks"
	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParserFor(t *testing.T) {
	assert.IsType(t, kjson.Parser(), parserFor("settings.JSON"))
	assert.IsType(t, yaml.Parser(), parserFor("config.yaml"))
	assert.IsType(t, yaml.Parser(), parserFor(""))
}

func TestReadEnv(t *testing.T) {
	helper.ClearConfigEnv(t)
	t.Setenv("TENANT_ID", "tenant-1")
	t.Setenv("POWERBI_WORKSPACE", "Finance")
	t.Setenv("RLS_RULES", `{"canada_only":{"filter":"F","description":"D"}}`)

	values, err := readEnv()
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"serviceprincipal.tenantid": "tenant-1",
		"target.workspace":          "Finance",
		"rlsrules": map[string]any{
			"canada_only": map[string]any{"filter": "F", "description": "D"},
		},
	}, values)
}

func TestLayerPrecedence(t *testing.T) {
	helper.ClearConfigEnv(t)

	path := helper.WriteConfigFile(t, "config.json", `{
		"openai": {"apikey": "file-key", "apiversion": "2023-05-15"},
		"serviceprincipal": {"clientid": "file-client", "clientsecret": "file-secret"}
	}`)

	sm := mocks.NewSecretsManager(map[string]string{
		"creds": `{"clientSecret":"secret-secret","apiKey":"secret-key"}`,
	})

	t.Setenv("AZURE_OPENAI_API_KEY", "env-key")

	logger := testlogger.New()
	loader := New(Options{Path: path, SecretID: "creds", Secrets: sm}, logger)

	doc, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "env-key", doc.OpenAI.APIKey, "environment wins over secret and file")
	assert.Equal(t, "secret-secret", doc.ServicePrincipal.ClientSecret, "secret wins over file")
	assert.Equal(t, "file-client", doc.ServicePrincipal.ClientID)
	assert.Equal(t, "2023-05-15", doc.OpenAI.APIVersion, "file wins over defaults")
	assert.True(t, logger.Contains("INFO", "Configuration loaded", doc.Fingerprint()))
}

func TestEmptySecretValueKeepsFileValue(t *testing.T) {
	helper.ClearConfigEnv(t)

	path := helper.WriteConfigFile(t, "config.yaml", "serviceprincipal:\n  clientsecret: file-secret\n  clientid: file-client\n")
	sm := mocks.NewSecretsManager(map[string]string{
		"creds": `{"clientSecret":"","clientId":"secret-client"}`,
	})

	doc, err := New(Options{Path: path, SecretID: "creds", Secrets: sm, SkipEnv: true}, testlogger.New()).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "file-secret", doc.ServicePrincipal.ClientSecret)
	assert.Equal(t, "secret-client", doc.ServicePrincipal.ClientID)
}

func TestOptionalSecretKeepsCallerCancellation(t *testing.T) {
	helper.ClearConfigEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sm := mocks.NewSecretsManager(nil)
	sm.Err = fmt.Errorf("operation error Secrets Manager: GetSecretValue, %w", context.Canceled)

	logger := testlogger.New()

	_, err := New(Options{SecretID: "creds", Secrets: sm, SecretsOptional: true, SkipEnv: true}, logger).Load(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, logger.Count("WARN"))
	assert.Equal(t, 1, logger.Count("ERROR"))
}

func TestSecretIgnoredWithoutClient(t *testing.T) {
	helper.ClearConfigEnv(t)

	doc, err := New(Options{SecretID: "creds", SkipEnv: true}, testlogger.New()).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.EndpointCredentials{APIVersion: "2024-02-01"}, doc.OpenAI)
}

func TestMarshalOmitsEmptyRules(t *testing.T) {
	b, err := Marshal(model.Document{Metadata: "m"}, "config.yaml")
	require.NoError(t, err)

	out := string(b)
	assert.NotContains(t, out, "rlsrules")
	assert.Contains(t, out, "metadata: m")
}

func TestMarshalQuotesLeadingWhitespace(t *testing.T) {
	doc := model.Document{Metadata: "\nSemantic model metadata:\n- Table: DimDate\n"}

	b, err := Marshal(doc, "config.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(b), `metadata: "\nSemantic model metadata:\n- Table: DimDate\n"`)

	b, err = Marshal(model.Document{Metadata: "Semantic model metadata:\n- Table: DimDate\n"}, "config.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(b), "metadata: |")
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("DAX_COPILOT_CONFIG_FILE", "")
	assert.Equal(t, "config.yaml", DefaultPath())

	t.Setenv("DAX_COPILOT_CONFIG_FILE", "/etc/dax/config.yaml")
	assert.Equal(t, "/etc/dax/config.yaml", DefaultPath())
}
