// Package secret loads configuration values from an AWS Secrets Manager secret.
package secret

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/LerianStudio/lib-dax-copilot-go/constant"
	"github.com/LerianStudio/lib-dax-copilot-go/pkg"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/knadh/koanf/maps"
	"github.com/pkg/errors"
)

// ValueGetter is the subset of the Secrets Manager client used by the provider.
type ValueGetter interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// NewClient builds a Secrets Manager client from the default AWS credential chain.
func NewClient(ctx context.Context, region string) (*secretsmanager.Client, error) {
	opts := []func(*config.LoadOptions) error{}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "load aws config failed")
	}

	return secretsmanager.NewFromConfig(awsCfg), nil
}

// Provider implements the koanf Provider interface over a single JSON secret.
type Provider struct {
	ctx      context.Context
	client   ValueGetter
	secretID string
	logger   log.Logger
}

// NewProvider returns a provider reading secretID through client.
func NewProvider(ctx context.Context, client ValueGetter, secretID string, logger log.Logger) *Provider {
	return &Provider{
		ctx:      ctx,
		client:   client,
		secretID: secretID,
		logger:   logger,
	}
}

// ReadBytes returns the raw secret string.
func (p *Provider) ReadBytes() ([]byte, error) {
	out, err := p.client.GetSecretValue(p.ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(p.secretID),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "get secret %s", p.secretID)
	}

	return []byte(aws.ToString(out.SecretString)), nil
}

// Read decodes the secret and maps its keys onto document paths.
// Keys may be flat external names (CLIENT_SECRET) or Power BI application
// secret keys (clientSecret). Unknown keys are ignored.
func (p *Provider) Read() (map[string]any, error) {
	raw, err := p.ReadBytes()
	if err != nil {
		return nil, err
	}

	var values map[string]any

	d := json.NewDecoder(strings.NewReader(string(raw)))
	d.UseNumber()

	if err := d.Decode(&values); err != nil {
		p.logger.Errorf("Secret %s is not a JSON object", p.secretID)

		return nil, pkg.ValidateBusinessError(constant.ErrInvalidSecretPayload, "Secret", p.secretID)
	}

	out := map[string]any{}

	for key, value := range values {
		name := key
		if alias, ok := constant.SecretKeyAliases[key]; ok {
			name = alias
		}

		path, ok := constant.KeyPathByEnv[name]
		if !ok {
			p.logger.Debugf("Ignoring key %s of secret %s", key, p.secretID)
			continue
		}

		s, ok := value.(string)
		if !ok {
			p.logger.Errorf("Key %s of secret %s is not a string", key, p.secretID)

			return nil, pkg.ValidateBusinessError(constant.ErrInvalidSecretPayload, "Secret", p.secretID)
		}

		// empty values do not override other layers, as with the environment
		if s == "" {
			p.logger.Debugf("Skipping empty key %s of secret %s", key, p.secretID)
			continue
		}

		out[path] = s
	}

	p.logger.Debugf("Loaded %d values from secret %s", len(out), p.secretID)

	return maps.Unflatten(out, "."), nil
}
