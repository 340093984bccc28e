package copilot

import (
	"context"
	"io"

	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/LerianStudio/lib-commons/commons/zap"
	"github.com/LerianStudio/lib-dax-copilot-go/constant"
	libErr "github.com/LerianStudio/lib-dax-copilot-go/error"
	"github.com/LerianStudio/lib-dax-copilot-go/internal/config"
	"github.com/LerianStudio/lib-dax-copilot-go/internal/secret"
	"github.com/LerianStudio/lib-dax-copilot-go/model"
	"github.com/LerianStudio/lib-dax-copilot-go/pkg"
)

// SecretValueGetter is the Secrets Manager call used to read a credentials secret.
type SecretValueGetter = secret.ValueGetter

var newSecretsClient = func(ctx context.Context, region string) (SecretValueGetter, error) {
	return secret.NewClient(ctx, region)
}

// Options controls how Load assembles the document.
type Options struct {
	// Path of the configuration file. Empty means no file layer.
	Path string

	// SecretID of an AWS Secrets Manager secret holding credentials, read
	// through Secrets. When Secrets is nil a client is created for SecretRegion.
	SecretID        string
	SecretRegion    string
	Secrets         SecretValueGetter
	SecretsOptional bool

	// SkipEnv ignores environment variables.
	SkipEnv bool

	// Logger defaults to the lib-commons zap logger.
	Logger *log.Logger
}

// Template returns the configuration template with placeholder values.
// Operators copy it (see cmd/daxconfig init) and replace every "your-..." value.
func Template() model.Document {
	return model.Document{
		OpenAI: model.EndpointCredentials{
			APIKey:     constant.TemplateAzureOpenAIAPIKey,
			Endpoint:   constant.TemplateAzureOpenAIEndpoint,
			Deployment: constant.TemplateAzureOpenAIDeployment,
			APIVersion: constant.DefaultAPIVersion,
		},
		ServicePrincipal: model.ServicePrincipal{
			ClientID:     constant.TemplateClientID,
			ClientSecret: constant.TemplateClientSecret,
			TenantID:     constant.TemplateTenantID,
		},
		Target: model.TargetResource{
			Workspace:     constant.TemplatePowerBIWorkspace,
			SemanticModel: constant.TemplateSemanticModel,
		},
		RLSRules: model.RuleSet{
			constant.RuleCanadaOnly: {
				Filter:      constant.RuleCanadaOnlyFilter,
				Description: constant.RuleCanadaOnlyDescription,
			},
			constant.RuleRegionalManager: {
				Filter:      constant.RuleRegionalManagerFilter,
				Description: constant.RuleRegionalManagerDetails,
			},
		},
		Metadata: constant.TemplateSemanticModelMetadata,
	}
}

// LoadFromEnv builds the document from environment variables only.
func LoadFromEnv() (model.Document, error) {
	doc, err := Load(context.Background(), Options{})
	if err != nil {
		return model.Document{}, err
	}

	return *doc, nil
}

// Load assembles the document from defaults, the file, the secret and the
// environment, later sources overriding earlier ones.
func Load(ctx context.Context, opts Options) (*model.Document, error) {
	l := resolveLogger(opts.Logger)

	getter, err := secretsClient(ctx, opts, l)
	if err != nil {
		return nil, err
	}

	loader := config.New(config.Options{
		Path:            opts.Path,
		SecretID:        opts.SecretID,
		Secrets:         getter,
		SecretsOptional: opts.SecretsOptional,
		SkipEnv:         opts.SkipEnv,
	}, l)

	return loader.Load(ctx)
}

// LoadFile is Load for a single file plus environment overrides.
func LoadFile(ctx context.Context, path string, logger *log.Logger) (*model.Document, error) {
	return Load(ctx, Options{Path: path, Logger: logger})
}

// Save writes doc to w as YAML.
func Save(w io.Writer, doc model.Document) error {
	b, err := config.Marshal(doc, "")
	if err != nil {
		return err
	}

	_, err = w.Write(b)

	return err
}

// WriteFile persists doc to path, as JSON when path ends in .json and YAML otherwise.
func WriteFile(path string, doc model.Document, overwrite bool) error {
	return config.WriteFile(path, doc, overwrite)
}

// DefaultPath returns the configuration file named by DAX_COPILOT_CONFIG_FILE, or config.yaml.
func DefaultPath() string {
	return config.DefaultPath()
}

// secretsClient returns opts.Secrets, or a new client when only a secret ID is set.
// With SecretsOptional a client that cannot reach AWS yields a nil getter.
func secretsClient(ctx context.Context, opts Options, l log.Logger) (SecretValueGetter, error) {
	if opts.Secrets != nil || opts.SecretID == "" {
		return opts.Secrets, nil
	}

	client, err := newSecretsClient(ctx, opts.SecretRegion)
	if err == nil {
		return client, nil
	}

	if opts.SecretsOptional && ctx.Err() == nil && libErr.IsConnectionError(err) {
		l.Warnf("Secrets client unavailable, continuing without secret %s - error: %s", opts.SecretID, err.Error())

		return nil, nil
	}

	l.Errorf("Failed to create secrets client: %s", err.Error())

	return nil, pkg.ValidateInternalError(err, "SecretsClient")
}

func resolveLogger(logger *log.Logger) log.Logger {
	if logger != nil {
		return *logger
	}

	return zap.InitializeLogger()
}
