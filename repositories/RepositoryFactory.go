package repositories

import (
	"context"
	"fmt"

	"github.com/reaandrew/cloudauditor/config"
	"github.com/reaandrew/cloudauditor/core"
	log "github.com/sirupsen/logrus"
)

// CreateRepository builds the findings repository selected by cfg.Provider.
func CreateRepository(ctx context.Context, cfg config.Config) (core.FindingRepository, error) {
	switch cfg.Provider {
	case config.ProviderDynamoDB:
		awsCfg, err := config.LoadAwsConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		log.Infof("Using DynamoDB table '%s' in region '%s'", FindingsTableName, awsCfg.Region)
		return NewDynamoFindingRepository(awsCfg, cfg.DynamoDBEndpoint), nil
	case config.ProviderSqlite:
		log.Infof("Using SQLite database '%s'", cfg.SqlitePath)
		return NewSqliteFindingRepository(cfg.SqlitePath)
	case config.ProviderFile:
		log.Infof("Using findings file '%s'", cfg.FilePath)
		return NewFileBasedFindingRepository(cfg.FilePath), nil
	}

	return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
}
