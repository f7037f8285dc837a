package repositories

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/reaandrew/cloudauditor/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRepository(t *testing.T) {
	cfg := config.Default()

	cfg.Provider = config.ProviderFile
	cfg.FilePath = "fixtures.yaml"
	repository, err := CreateRepository(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &FileBasedFindingRepository{}, repository)

	cfg.Provider = config.ProviderSqlite
	cfg.SqlitePath = filepath.Join(t.TempDir(), "findings.db")
	repository, err = CreateRepository(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &SqliteFindingRepository{}, repository)
	assert.NoError(t, repository.Close())

	cfg.Provider = config.ProviderDynamoDB
	cfg.Region = "eu-west-2"
	cfg.AccessKeyID = "AKIAEXAMPLE"
	cfg.SecretAccessKey = "secret"
	repository, err = CreateRepository(context.Background(), cfg)
	require.NoError(t, err)
	require.IsType(t, &DynamoFindingRepository{}, repository)
	assert.Equal(t, "ComplianceFindings", repository.(*DynamoFindingRepository).TableName)

	cfg.Provider = "cassandra"
	_, err = CreateRepository(context.Background(), cfg)
	assert.EqualError(t, err, "unknown provider: cassandra")
}
