package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/LerianStudio/lib-commons/commons"
	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/LerianStudio/lib-dax-copilot-go/constant"
	libErr "github.com/LerianStudio/lib-dax-copilot-go/error"
	"github.com/LerianStudio/lib-dax-copilot-go/internal/secret"
	"github.com/LerianStudio/lib-dax-copilot-go/model"
	"github.com/LerianStudio/lib-dax-copilot-go/pkg"
	"github.com/knadh/koanf"
	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	yamlv3 "gopkg.in/yaml.v3"
)

// Options selects the sources a Loader reads, in precedence order:
// defaults, file, secret, environment.
type Options struct {
	// Path of a YAML (or .json) configuration file. Empty skips the file layer.
	Path string

	// SecretID names an AWS Secrets Manager secret. Requires Secrets.
	SecretID string
	Secrets  secret.ValueGetter

	// SecretsOptional downgrades secret connectivity failures to a warning.
	SecretsOptional bool

	// SkipEnv ignores environment variables.
	SkipEnv bool
}

// envDocument mirrors the flat external names for lib-commons env mapping.
type envDocument struct {
	AzureOpenAIAPIKey     string `env:"AZURE_OPENAI_API_KEY"`
	AzureOpenAIEndpoint   string `env:"AZURE_OPENAI_ENDPOINT"`
	AzureOpenAIDeployment string `env:"AZURE_OPENAI_DEPLOYMENT"`
	APIVersion            string `env:"API_VERSION"`
	ClientID              string `env:"CLIENT_ID"`
	ClientSecret          string `env:"CLIENT_SECRET"`
	TenantID              string `env:"TENANT_ID"`
	PowerBIWorkspace      string `env:"POWERBI_WORKSPACE"`
	SemanticModel         string `env:"SEMANTIC_MODEL"`
	RLSRules              string `env:"RLS_RULES"`
	Metadata              string `env:"SEMANTIC_MODEL_METADATA"`
}

// Loader builds a model.Document from layered sources.
type Loader struct {
	opts   Options
	logger log.Logger
}

// New creates a Loader.
func New(opts Options, logger log.Logger) *Loader {
	return &Loader{
		opts:   opts,
		logger: logger,
	}
}

// DefaultPath returns the configuration file named by DAX_COPILOT_CONFIG_FILE, or config.yaml.
func DefaultPath() string {
	return commons.GetenvOrDefault(constant.EnvConfigFile, constant.DefaultConfigFile)
}

// Load reads every configured layer and decodes the merged result.
// No validation and no placeholder substitution happen here.
func (l *Loader) Load(ctx context.Context) (*model.Document, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		constant.GroupOpenAI + "." + constant.KeyAPIVersion: constant.DefaultAPIVersion,
	}, "."), nil); err != nil {
		return nil, pkg.ValidateInternalError(err, "ConfigurationDefaults")
	}

	if l.opts.Path != "" {
		if err := k.Load(file.Provider(l.opts.Path), parserFor(l.opts.Path)); err != nil {
			l.logger.Errorf("Failed to read configuration file %s: %v", l.opts.Path, err)

			return nil, pkg.ValidateInternalError(err, "ConfigurationFile")
		}

		l.logger.Debugf("Loaded configuration file %s", l.opts.Path)
	}

	if l.opts.SecretID != "" && l.opts.Secrets != nil {
		if err := l.loadSecret(ctx, k); err != nil {
			return nil, err
		}
	}

	if !l.opts.SkipEnv {
		values, err := readEnv()
		if err != nil {
			l.logger.Errorf("Failed to read environment variables: %v", err)

			return nil, err
		}

		if err := k.Load(confmap.Provider(values, "."), nil); err != nil {
			return nil, pkg.ValidateInternalError(err, "ConfigurationEnvironment")
		}

		l.logger.Debugf("Applied %d values from environment", len(values))
	}

	var doc model.Document
	if err := k.Unmarshal("", &doc); err != nil {
		return nil, pkg.ValidateInternalError(err, "ConfigurationDocument")
	}

	l.logger.Infof("Configuration loaded [fingerprint: %s | rules: %d]", doc.Fingerprint(), len(doc.RLSRules))

	return &doc, nil
}

func (l *Loader) loadSecret(ctx context.Context, k *koanf.Koanf) error {
	p := secret.NewProvider(ctx, l.opts.Secrets, l.opts.SecretID, l.logger)

	err := k.Load(p, nil)
	if err == nil {
		return nil
	}

	if l.opts.SecretsOptional && ctx.Err() == nil && libErr.IsConnectionError(err) {
		l.logger.Warnf("Secret %s unreachable, continuing without it - error: %s", l.opts.SecretID, err.Error())

		return nil
	}

	l.logger.Errorf("Failed to load secret %s: %v", l.opts.SecretID, err)

	return err
}

// readEnv returns the non-empty environment values keyed by document path.
func readEnv() (map[string]any, error) {
	env := &envDocument{}
	if err := commons.SetConfigFromEnvVars(env); err != nil {
		return nil, pkg.ValidateInternalError(err, "ConfigurationEnvironment")
	}

	values := map[string]any{}

	set := func(name, value string) {
		if value != "" {
			values[constant.KeyPathByEnv[name]] = value
		}
	}

	set(constant.EnvAzureOpenAIAPIKey, env.AzureOpenAIAPIKey)
	set(constant.EnvAzureOpenAIEndpoint, env.AzureOpenAIEndpoint)
	set(constant.EnvAzureOpenAIDeployment, env.AzureOpenAIDeployment)
	set(constant.EnvAPIVersion, env.APIVersion)
	set(constant.EnvClientID, env.ClientID)
	set(constant.EnvClientSecret, env.ClientSecret)
	set(constant.EnvTenantID, env.TenantID)
	set(constant.EnvPowerBIWorkspace, env.PowerBIWorkspace)
	set(constant.EnvSemanticModel, env.SemanticModel)
	set(constant.EnvSemanticModelMetadata, env.Metadata)

	if strings.TrimSpace(env.RLSRules) != "" {
		var rules model.RuleSet
		if err := json.Unmarshal([]byte(env.RLSRules), &rules); err != nil {
			return nil, pkg.ValidationError{
				EntityType: "Environment",
				Code:       constant.ErrInvalidDocument.Error(),
				Title:      "Invalid RLS_RULES",
				Message:    "RLS_RULES must be a JSON object of {\"filter\", \"description\"} records",
				Err:        err,
			}
		}

		values[constant.GroupRLSRules] = rulesToMap(rules, plainString)
	}

	return values, nil
}

// Marshal encodes doc with the parser matching path's extension (YAML by default).
func Marshal(doc model.Document, path string) ([]byte, error) {
	p := parserFor(path)

	str := plainString
	if _, ok := p.(*yaml.YAML); ok {
		str = yamlString
	}

	b, err := p.Marshal(toMap(doc, str))
	if err != nil {
		return nil, pkg.ValidateInternalError(err, "ConfigurationDocument")
	}

	return b, nil
}

// WriteFile persists doc to path. Existing files are kept unless overwrite is set.
func WriteFile(path string, doc model.Document, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return pkg.ValidateBusinessError(constant.ErrConfigFileExists, "ConfigurationFile", path)
		}
	}

	b, err := Marshal(doc, path)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, b, 0o600); err != nil {
		return pkg.ValidateInternalError(err, "ConfigurationFile")
	}

	return nil
}

func parserFor(path string) koanf.Parser {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return kjson.Parser()
	}

	return yaml.Parser()
}

func plainString(v string) any {
	return v
}

// yamlString double-quotes values whose first character is whitespace.
// A block scalar would drop leading newlines when read back.
func yamlString(v string) any {
	if v == "" || strings.TrimLeft(v[:1], " \t\r\n") != "" {
		return v
	}

	return &yamlv3.Node{
		Kind:  yamlv3.ScalarNode,
		Tag:   "!!str",
		Style: yamlv3.DoubleQuotedStyle,
		Value: v,
	}
}

func toMap(doc model.Document, str func(string) any) map[string]any {
	m := map[string]any{
		constant.GroupOpenAI: map[string]any{
			constant.KeyAPIKey:     str(doc.OpenAI.APIKey),
			constant.KeyEndpoint:   str(doc.OpenAI.Endpoint),
			constant.KeyDeployment: str(doc.OpenAI.Deployment),
			constant.KeyAPIVersion: str(doc.OpenAI.APIVersion),
		},
		constant.GroupServicePrincipal: map[string]any{
			constant.KeyClientID:     str(doc.ServicePrincipal.ClientID),
			constant.KeyClientSecret: str(doc.ServicePrincipal.ClientSecret),
			constant.KeyTenantID:     str(doc.ServicePrincipal.TenantID),
		},
		constant.GroupTarget: map[string]any{
			constant.KeyWorkspace:     str(doc.Target.Workspace),
			constant.KeySemanticModel: str(doc.Target.SemanticModel),
		},
		constant.GroupMetadata: str(doc.Metadata),
	}

	if len(doc.RLSRules) > 0 {
		m[constant.GroupRLSRules] = rulesToMap(doc.RLSRules, str)
	}

	return m
}

func rulesToMap(rules model.RuleSet, str func(string) any) map[string]any {
	m := make(map[string]any, len(rules))
	for name, rule := range rules {
		m[name] = map[string]any{
			constant.KeyFilter:      str(rule.Filter),
			constant.KeyDescription: str(rule.Description),
		}
	}

	return m
}
