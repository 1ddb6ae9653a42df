package services

import (
	"context"
	"fmt"

	"resonate_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeTableKeys mirrors the key schema of each table so the fake can replace
// items on put.
var fakeTableKeys = map[string][]string{
	models.ProfilesTable:    {"userId"},
	models.SwipeStatesTable: {"userId"},
	models.SwipesTable:      {"receiverId", "senderId"},
	models.MatchesTable:     {"matchId"},
	models.LocationsTable:   {"userId"},
}

// fakeDynamo is an in-memory DynamoAPI for service tests.
type fakeDynamo struct {
	tables map[string][]map[string]types.AttributeValue
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{tables: make(map[string][]map[string]types.AttributeValue)}
}

func attrStringEqual(a, b types.AttributeValue) bool {
	as, ok := a.(*types.AttributeValueMemberS)
	if !ok {
		return false
	}
	bs, ok := b.(*types.AttributeValueMemberS)
	return ok && as.Value == bs.Value
}

func (f *fakeDynamo) GetItem(_ context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	for _, item := range f.tables[tableName] {
		found := true
		for k, v := range key {
			if !attrStringEqual(item[k], v) {
				found = false
				break
			}
		}
		if found {
			return item, nil
		}
	}
	return nil, ErrItemNotFound
}

func (f *fakeDynamo) PutItem(_ context.Context, tableName string, item interface{}) error {
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	keys, ok := fakeTableKeys[tableName]
	if !ok {
		return fmt.Errorf("unknown table %q", tableName)
	}

	items := f.tables[tableName]
	for i, existing := range items {
		same := true
		for _, k := range keys {
			if !attrStringEqual(existing[k], marshaled[k]) {
				same = false
				break
			}
		}
		if same {
			items[i] = marshaled
			return nil
		}
	}
	f.tables[tableName] = append(items, marshaled)
	return nil
}

func (f *fakeDynamo) ScanItems(_ context.Context, tableName string, limit int32) ([]map[string]types.AttributeValue, error) {
	items := f.tables[tableName]
	if limit > 0 && int(limit) < len(items) {
		return items[:limit], nil
	}
	return items, nil
}
