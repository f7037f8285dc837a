package repositories

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/reaandrew/cloudauditor/core"
	log "github.com/sirupsen/logrus"
)

// FindingsTableName is the DynamoDB table holding compliance findings.
const FindingsTableName = "ComplianceFindings"

// DynamoScanAPI is the subset of the DynamoDB client used for reading findings.
type DynamoScanAPI interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoFindingRepository implements core.FindingRepository with a table scan.
type DynamoFindingRepository struct {
	Client    DynamoScanAPI
	TableName string
}

// NewDynamoFindingRepository builds a repository for the findings table.
// endpoint overrides the service endpoint, e.g. for DynamoDB Local; leave empty for AWS.
func NewDynamoFindingRepository(cfg aws.Config, endpoint string) core.FindingRepository {
	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return &DynamoFindingRepository{
		Client:    client,
		TableName: FindingsTableName,
	}
}

// ScanAll issues one Scan and returns the items of that response.
// Continuation via LastEvaluatedKey is not followed.
func (r *DynamoFindingRepository) ScanAll(ctx context.Context) ([]core.Finding, error) {
	output, err := r.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.TableName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan table '%s': %w", r.TableName, err)
	}

	if output.LastEvaluatedKey != nil {
		log.Warnf("Scan of '%s' returned a partial result of %d items", r.TableName, len(output.Items))
	}

	var items []map[string]interface{}
	err = attributevalue.UnmarshalListOfMapsWithOptions(output.Items, &items, func(o *attributevalue.DecoderOptions) {
		o.UseNumber = true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal items from '%s': %w", r.TableName, err)
	}

	findings := make([]core.Finding, 0, len(items))
	for _, item := range items {
		findings = append(findings, toFinding(item))
	}
	return findings, nil
}

func (r *DynamoFindingRepository) Close() error {
	return nil
}
