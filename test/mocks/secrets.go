package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsManager is an in-memory stand-in for the Secrets Manager client
type SecretsManager struct {
	mu      sync.Mutex
	Secrets map[string]string
	Err     error
	Calls   []string
}

// NewSecretsManager creates a fake holding the given secret strings by ID
func NewSecretsManager(secrets map[string]string) *SecretsManager {
	return &SecretsManager{Secrets: secrets}
}

// GetSecretValue returns the stored secret string or the configured error
func (m *SecretsManager) GetSecretValue(_ context.Context, params *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := aws.ToString(params.SecretId)
	m.Calls = append(m.Calls, id)

	if m.Err != nil {
		return nil, m.Err
	}

	value, ok := m.Secrets[id]
	if !ok {
		return nil, errors.New("ResourceNotFoundException: secret " + id + " not found")
	}

	return &secretsmanager.GetSecretValueOutput{
		Name:         aws.String(id),
		SecretString: aws.String(value),
	}, nil
}
