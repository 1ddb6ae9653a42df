package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrItemNotFound is returned when a keyed lookup finds nothing.
var ErrItemNotFound = errors.New("item not found")

// DynamoAPI is the subset of DynamoDB the engine uses: keyed reads, whole-item
// replacement, and table scans. Every mutation is expressed as "compute new
// state, then put", so this is the entire persistence contract. Tests
// substitute an in-memory implementation.
type DynamoAPI interface {
	GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error)
	PutItem(ctx context.Context, tableName string, item interface{}) error
	ScanItems(ctx context.Context, tableName string, limit int32) ([]map[string]types.AttributeValue, error)
}

// DynamoService implements DynamoAPI over a real DynamoDB client.
type DynamoService struct {
	Client *dynamodb.Client
}

// InitializeDynamoDBClient initializes the DynamoDB client
func InitializeDynamoDBClient(region string) *dynamodb.Client {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(region))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	return dynamodb.NewFromConfig(cfg)
}

// GetItem retrieves an item from DynamoDB
func (ds *DynamoService) GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	output, err := ds.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &tableName,
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get item from table '%s': %w", tableName, err)
	}

	if output.Item == nil {
		return nil, ErrItemNotFound
	}

	return output.Item, nil
}

// PutItem marshals and writes an item, replacing any existing item under the
// same key.
func (ds *DynamoService) PutItem(ctx context.Context, tableName string, item interface{}) error {
	marshaledItem, err := attributevalue.MarshalMap(item)
	if err != nil {
		log.Printf("Failed to marshal item for table '%s': %v\n", tableName, err)
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	_, err = ds.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &tableName,
		Item:      marshaledItem,
	})
	if err != nil {
		log.Printf("Failed to insert item into table '%s': %v\n", tableName, err)
		return fmt.Errorf("failed to put item in table '%s': %w", tableName, err)
	}
	return nil
}

// stringKey builds a single-attribute string key.
func stringKey(name, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{name: &types.AttributeValueMemberS{Value: value}}
}

// unmarshalItem decodes a DynamoDB item into a model struct.
func unmarshalItem(item map[string]types.AttributeValue, out interface{}) error {
	return attributevalue.UnmarshalMap(item, out)
}

// ScanItems scans a table, up to limit items (0 means no limit).
func (ds *DynamoService) ScanItems(ctx context.Context, tableName string, limit int32) ([]map[string]types.AttributeValue, error) {
	input := &dynamodb.ScanInput{TableName: &tableName}
	if limit > 0 {
		input.Limit = &limit
	}
	output, err := ds.Client.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to scan table '%s': %w", tableName, err)
	}
	return output.Items, nil
}
