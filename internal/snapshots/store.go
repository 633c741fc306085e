package snapshots

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/internal-tools/org-activity-reports/internal/config"
	"github.com/internal-tools/org-activity-reports/internal/models"
)

// Store implements the SnapshotStore interface using DynamoDB.
type Store struct {
	client    *dynamodb.Client
	tableName string
	ttlDays   int
}

// NewStore creates a new DynamoDB-backed SnapshotStore.
func NewStore(ctx context.Context, cfg config.SnapshotsConfig) (*Store, error) {
	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(cfg.Region))

	if cfg.Endpoint != "" {
		// Local development: use static credentials and custom endpoint.
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("local", "local", ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	var clientOpts []func(*dynamodb.Options)
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	client := dynamodb.NewFromConfig(awsCfg, clientOpts...)

	ttlDays := cfg.TTLDays
	if ttlDays <= 0 {
		ttlDays = 180
	}

	return &Store{
		client:    client,
		tableName: cfg.TableName,
		ttlDays:   ttlDays,
	}, nil
}

// TTLDays returns the retention period applied to new snapshots.
func (s *Store) TTLDays() int {
	return s.ttlDays
}

// SaveSnapshot stores a generated report snapshot.
func (s *Store) SaveSnapshot(ctx context.Context, snapshot models.ReportSnapshot) error {
	item, err := attributevalue.MarshalMap(snapshot)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	return nil
}

// GetSnapshot retrieves a snapshot by scope key and sort key.
func (s *Store) GetSnapshot(ctx context.Context, groupsKey string, sk string) (*models.ReportSnapshot, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"pk": &types.AttributeValueMemberS{Value: "SCOPE#" + groupsKey},
			"sk": &types.AttributeValueMemberS{Value: sk},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("getting snapshot: %w", err)
	}

	if result.Item == nil {
		return nil, nil
	}

	var snapshot models.ReportSnapshot
	if err := attributevalue.UnmarshalMap(result.Item, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshaling snapshot: %w", err)
	}

	return &snapshot, nil
}

// ListSnapshots returns the most recent snapshots for a scope, newest first.
func (s *Store) ListSnapshots(ctx context.Context, groupsKey string, limit int) ([]models.ReportSnapshot, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("pk = :pk AND begins_with(sk, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: "SCOPE#" + groupsKey},
			":prefix": &types.AttributeValueMemberS{Value: "REPORT#"},
		},
		ScanIndexForward: aws.Bool(false),
	}
	if limit > 0 {
		input.Limit = aws.Int32(int32(limit))
	}

	result, err := s.client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}

	var items []models.ReportSnapshot
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &items); err != nil {
		return nil, fmt.Errorf("unmarshaling snapshots: %w", err)
	}

	return items, nil
}
