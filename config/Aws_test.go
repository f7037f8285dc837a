package config

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockSsmClient struct {
	parameters map[string]string
	requested  []string
}

func (m *MockSsmClient) GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	name := aws.ToString(params.Name)
	m.requested = append(m.requested, name)
	if !aws.ToBool(params.WithDecryption) {
		return nil, errors.New("expected decryption")
	}
	value, ok := m.parameters[name]
	if !ok {
		return nil, errors.New("ParameterNotFound")
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: aws.String(value)}}, nil
}

func TestResolveSsmCredentials(t *testing.T) {
	client := &MockSsmClient{parameters: map[string]string{
		"/cloudauditor/access_key_id":     "AKIAEXAMPLE",
		"/cloudauditor/secret_access_key": "secret",
	}}

	accessKeyID, secretAccessKey, err := resolveSsmCredentials(context.Background(), client, "/cloudauditor/")

	require.NoError(t, err)
	assert.Equal(t, "AKIAEXAMPLE", accessKeyID)
	assert.Equal(t, "secret", secretAccessKey)
	assert.Equal(t, []string{"/cloudauditor/access_key_id", "/cloudauditor/secret_access_key"}, client.requested)
}

func TestResolveSsmCredentials_MissingParameter(t *testing.T) {
	client := &MockSsmClient{parameters: map[string]string{
		"/cloudauditor/access_key_id": "AKIAEXAMPLE",
	}}

	_, _, err := resolveSsmCredentials(context.Background(), client, "/cloudauditor/")

	assert.ErrorContains(t, err, "failed to retrieve parameter '/cloudauditor/secret_access_key'")
}

type EmptySsmClient struct{}

func (EmptySsmClient) GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	return &ssm.GetParameterOutput{}, nil
}

func TestResolveSsmCredentials_EmptyParameter(t *testing.T) {
	_, _, err := resolveSsmCredentials(context.Background(), EmptySsmClient{}, "/p/")

	assert.EqualError(t, err, "parameter '/p/access_key_id' has no value")
}

func TestLoadAwsConfig_StaticCredentials(t *testing.T) {
	cfg := Default()
	cfg.Region = "eu-west-2"
	cfg.AccessKeyID = "AKIAEXAMPLE"
	cfg.SecretAccessKey = "secret"

	awsCfg, err := LoadAwsConfig(context.Background(), cfg)

	require.NoError(t, err)
	assert.Equal(t, "eu-west-2", awsCfg.Region)
	creds, err := awsCfg.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKIAEXAMPLE", creds.AccessKeyID)
	assert.Equal(t, "secret", creds.SecretAccessKey)
}
