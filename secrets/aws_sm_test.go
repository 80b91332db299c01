package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecretsManager struct {
	secrets map[string]*string
	lastID  string
}

func (f *fakeSecretsManager) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.lastID = aws.ToString(in.SecretId)
	value, ok := f.secrets[f.lastID]
	if !ok {
		return nil, errors.New("ResourceNotFoundException")
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: value}, nil
}

func TestAWSSecretsManagerProvider_GetSecret(t *testing.T) {
	fake := &fakeSecretsManager{secrets: map[string]*string{
		"openclass/prod": aws.String(`{"admin_email":"sam@classowl.com","admin_pw":"pw","api_key":"key"}`),
		"openclass/bad":  aws.String(`not json`),
		"openclass/bin":  nil,
	}}
	p := NewAWSProviderWithClient(fake)

	t.Run("decodes JSON map", func(t *testing.T) {
		values, err := p.GetSecret(context.Background(), "openclass/prod")
		require.NoError(t, err)
		assert.Equal(t, "openclass/prod", fake.lastID)
		assert.Equal(t, "sam@classowl.com", values["admin_email"])
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := p.GetSecret(context.Background(), "openclass/bad")
		assert.ErrorContains(t, err, "invalid secret format")
	})

	t.Run("binary secret", func(t *testing.T) {
		_, err := p.GetSecret(context.Background(), "openclass/bin")
		assert.ErrorContains(t, err, "no string value")
	})

	t.Run("not found", func(t *testing.T) {
		_, err := p.GetSecret(context.Background(), "openclass/missing")
		assert.ErrorContains(t, err, "failed to fetch secret [openclass/missing]")
	})
}
