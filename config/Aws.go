package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	log "github.com/sirupsen/logrus"
)

const (
	accessKeyIDParameter     = "access_key_id"
	secretAccessKeyParameter = "secret_access_key"
)

// SsmGetParameterAPI is the subset of the SSM client used for credential lookup.
type SsmGetParameterAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// LoadAwsConfig loads the AWS SDK configuration for the storage backend.
// Static keys from the config win; otherwise keys are read from SSM Parameter
// Store when a prefix is set; otherwise the default credential chain applies.
func LoadAwsConfig(ctx context.Context, cfg Config) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}

	if cfg.HasStaticCredentials() {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	if cfg.HasStaticCredentials() || cfg.SsmParameterPrefix == "" {
		return awsCfg, nil
	}

	log.Infof("Resolving storage credentials from SSM prefix '%s'", cfg.SsmParameterPrefix)
	accessKeyID, secretAccessKey, err := resolveSsmCredentials(ctx, ssm.NewFromConfig(awsCfg), cfg.SsmParameterPrefix)
	if err != nil {
		return aws.Config{}, err
	}
	awsCfg.Credentials = aws.NewCredentialsCache(
		credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""))

	return awsCfg, nil
}

func resolveSsmCredentials(ctx context.Context, client SsmGetParameterAPI, prefix string) (string, string, error) {
	accessKeyID, err := getParameter(ctx, client, prefix+accessKeyIDParameter)
	if err != nil {
		return "", "", err
	}

	secretAccessKey, err := getParameter(ctx, client, prefix+secretAccessKeyParameter)
	if err != nil {
		return "", "", err
	}

	return accessKeyID, secretAccessKey, nil
}

func getParameter(ctx context.Context, client SsmGetParameterAPI, name string) (string, error) {
	result, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to retrieve parameter '%s': %w", name, err)
	}

	if result.Parameter == nil || result.Parameter.Value == nil {
		return "", fmt.Errorf("parameter '%s' has no value", name)
	}

	return *result.Parameter.Value, nil
}
