/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/configstore/configtable"
	"github.com/suparena/configstore/errors"
	"github.com/suparena/configstore/values"
)

// ConfigTable implements configtable.Table by using AWS DynamoDB as the
// underlying data store.
type ConfigTable struct {
	client *sdk.Client
	table  configtable.TableDefinition
}

var _ configtable.Table = (*ConfigTable)(nil)

// ClientConfig carries the AWS session settings for the DynamoDB client.
type ClientConfig struct {
	Region          string
	Profile         string
	AccessKeyID     string
	SecretAccessKey string
	EndpointURL     string
}

// NewClient initializes a DynamoDB client using the given settings. Setting
// an endpoint URL points the client at DynamoDB Local or another emulator;
// static credentials are only installed when an access key is provided.
func NewClient(ctx context.Context, cc ClientConfig) (*sdk.Client, error) {
	var opts []func(*config.LoadOptions) error
	if cc.Region != "" {
		opts = append(opts, config.WithRegion(cc.Region))
	}
	if cc.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cc.Profile))
	}
	if cc.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cc.AccessKeyID, cc.SecretAccessKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	if cc.EndpointURL != "" {
		return sdk.NewFromConfig(cfg, func(o *sdk.Options) {
			o.BaseEndpoint = aws.String(cc.EndpointURL)
		}), nil
	}
	return sdk.NewFromConfig(cfg), nil
}

// New constructs a ConfigTable over the given client and table definition.
func New(client *sdk.Client, table configtable.TableDefinition) *ConfigTable {
	return &ConfigTable{client: client, table: table}
}

// Definition returns the table definition this store was built with.
func (t *ConfigTable) Definition() configtable.TableDefinition {
	return t.table
}

// Get retrieves a single row with a consistent read.
// It returns nil if no item is stored under (namespace, itemName).
func (t *ConfigTable) Get(ctx context.Context, namespace, itemName string, fields []string) (values.Row, error) {
	proj, names := projection(fields)

	out, err := t.client.GetItem(ctx, &sdk.GetItemInput{
		TableName:                aws.String(t.table.Name),
		Key:                      itemKey(namespace, itemName),
		ProjectionExpression:     aws.String(proj),
		ExpressionAttributeNames: names,
		ConsistentRead:           aws.Bool(true),
	})
	if err != nil {
		return nil, errors.NewTransportError("GetItem", t.table.Name, err)
	}
	if out.Item == nil {
		// Not found: return nil, nil
		return nil, nil
	}

	return unmarshalRow(out.Item)
}

// Put upserts a row under (namespace, itemName). The key attributes are
// written alongside the row attributes, all string-typed.
func (t *ConfigTable) Put(ctx context.Context, namespace, itemName string, row values.Row) error {
	av, err := attributevalue.MarshalMap(row)
	if err != nil {
		return fmt.Errorf("failed to marshal row: %w", err)
	}
	av[configtable.AttrNamespace] = &types.AttributeValueMemberS{Value: namespace}
	av[configtable.AttrItemName] = &types.AttributeValueMemberS{Value: itemName}

	_, err = t.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: aws.String(t.table.Name),
		Item:      av,
	})
	if err != nil {
		return errors.NewTransportError("PutItem", t.table.Name, err)
	}
	return nil
}

// Delete removes a row. Deleting an item that does not exist succeeds.
func (t *ConfigTable) Delete(ctx context.Context, namespace, itemName string) error {
	_, err := t.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: aws.String(t.table.Name),
		Key:       itemKey(namespace, itemName),
	})
	if err != nil {
		return errors.NewTransportError("DeleteItem", t.table.Name, err)
	}
	return nil
}

// Scan returns every row of a namespace via a partition key query with
// consistent reads, following pagination until the namespace is exhausted.
func (t *ConfigTable) Scan(ctx context.Context, namespace string, fields []string) ([]values.Row, error) {
	proj, names := projection(fields)
	names["#ns"] = configtable.AttrNamespace

	input := &sdk.QueryInput{
		TableName:              aws.String(t.table.Name),
		KeyConditionExpression: aws.String("#ns = :namespace"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":namespace": &types.AttributeValueMemberS{Value: namespace},
		},
		ExpressionAttributeNames: names,
		ProjectionExpression:     aws.String(proj),
		ConsistentRead:           aws.Bool(true),
	}

	var rows []values.Row
	paginator := sdk.NewQueryPaginator(t.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.NewTransportError("Query", t.table.Name, err)
		}
		for _, item := range page.Items {
			row, err := unmarshalRow(item)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// itemKey builds the composite DynamoDB key for one config item.
func itemKey(namespace, itemName string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		configtable.AttrNamespace: &types.AttributeValueMemberS{Value: namespace},
		configtable.AttrItemName:  &types.AttributeValueMemberS{Value: itemName},
	}
}

// projection builds a projection expression over the item name plus the
// given value fields, aliasing every attribute name to stay clear of
// DynamoDB reserved words.
func projection(fields []string) (string, map[string]string) {
	names := map[string]string{
		"#item": configtable.AttrItemName,
	}
	terms := []string{"#item"}
	for i, f := range fields {
		alias := fmt.Sprintf("#f%d", i)
		names[alias] = f
		terms = append(terms, alias)
	}
	return strings.Join(terms, ", "), names
}

func unmarshalRow(item map[string]types.AttributeValue) (values.Row, error) {
	var row values.Row
	if err := attributevalue.UnmarshalMap(item, &row); err != nil {
		return nil, fmt.Errorf("failed to unmarshal row: %w", err)
	}
	return row, nil
}
