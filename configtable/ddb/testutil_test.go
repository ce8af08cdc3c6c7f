/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/suparena/configstore/configtable"
)

const (
	testEndpointURL = "http://localhost:8000"
	testRegion      = "us-east-1"
	testAccessKeyID = "dummy"
	testSecretKey   = "dummy"
)

func getTestEndpointURL() string {
	if endpoint := os.Getenv("DYNAMODB_TEST_ENDPOINT"); endpoint != "" {
		return endpoint
	}
	return testEndpointURL
}

// setupTestTable creates a uniquely named config table on DynamoDB Local and
// returns a store bound to it plus a cleanup function. Tests are skipped
// when no local endpoint is reachable.
func setupTestTable(t *testing.T) (*ConfigTable, func()) {
	t.Helper()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, proceeding with environment variables")
	}

	client, err := NewClient(context.Background(), ClientConfig{
		Region:          testRegion,
		AccessKeyID:     testAccessKeyID,
		SecretAccessKey: testSecretKey,
		EndpointURL:     getTestEndpointURL(),
	})
	if err != nil {
		t.Fatalf("Failed to create DynamoDB client: %v", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.ListTables(pingCtx, &sdk.ListTablesInput{Limit: aws.Int32(1)}); err != nil {
		t.Skipf("DynamoDB Local not reachable at %s: %v", getTestEndpointURL(), err)
	}

	def := configtable.DefaultTableDefinition()
	def.Name = fmt.Sprintf("config_test_%s", uuid.NewString()[:8])

	if err := createTestTable(client, def); err != nil {
		t.Fatalf("Failed to create test table: %v", err)
	}

	cleanup := func() {
		if err := dropTestTable(client, def.Name); err != nil {
			log.Printf("Failed to drop test table %s: %v", def.Name, err)
		}
	}
	return New(client, def), cleanup
}

func createTestTable(client *sdk.Client, def configtable.TableDefinition) error {
	_, err := client.CreateTable(context.Background(), &sdk.CreateTableInput{
		TableName: aws.String(def.Name),
		AttributeDefinitions: []types.AttributeDefinition{
			{
				AttributeName: aws.String(configtable.AttrNamespace),
				AttributeType: types.ScalarAttributeTypeS,
			},
			{
				AttributeName: aws.String(configtable.AttrItemName),
				AttributeType: types.ScalarAttributeTypeS,
			},
		},
		KeySchema: []types.KeySchemaElement{
			{
				AttributeName: aws.String(configtable.AttrNamespace),
				KeyType:       types.KeyTypeHash,
			},
			{
				AttributeName: aws.String(configtable.AttrItemName),
				KeyType:       types.KeyTypeRange,
			},
		},
		ProvisionedThroughput: &types.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(def.ReadCapacity),
			WriteCapacityUnits: aws.Int64(def.WriteCapacity),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	waiter := sdk.NewTableExistsWaiter(client)
	if err := waiter.Wait(context.Background(), &sdk.DescribeTableInput{
		TableName: aws.String(def.Name),
	}, 30*time.Second); err != nil {
		return fmt.Errorf("failed to wait for table to be active: %w", err)
	}
	return nil
}

func dropTestTable(client *sdk.Client, name string) error {
	_, err := client.DeleteTable(context.Background(), &sdk.DeleteTableInput{
		TableName: aws.String(name),
	})
	if err != nil {
		var apiErr smithy.APIError
		if stderrors.As(err, &apiErr) && apiErr.ErrorCode() == "ResourceNotFoundException" {
			return nil
		}
		return err
	}
	return nil
}
