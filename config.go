/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package configstore

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/suparena/configstore/configtable"
	"github.com/suparena/configstore/configtable/ddb"
	"github.com/suparena/configstore/envelope"
	"github.com/suparena/configstore/envelope/kms"
)

// Settings configures a loader end to end: the config table, the separator,
// and the AWS wiring for DynamoDB and (optionally) KMS envelope encryption.
type Settings struct {
	Table     configtable.TableDefinition `yaml:"table"`
	Separator string                      `yaml:"separator"`

	Region          string `yaml:"region"`
	Profile         string `yaml:"profile"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	EndpointURL     string `yaml:"endpoint_url"`

	// KMSKeyID selects the master key for envelope encryption. Leaving it
	// empty opens a plaintext loader.
	KMSKeyID          string            `yaml:"kms_key_id"`
	KMSEndpointURL    string            `yaml:"kms_endpoint_url"`
	EncryptionContext map[string]string `yaml:"encryption_context"`
}

// DefaultSettings returns settings with the conventional table definition
// and separator.
func DefaultSettings() *Settings {
	return &Settings{
		Table:     configtable.DefaultTableDefinition(),
		Separator: DefaultSeparator,
	}
}

// LoadSettings reads a YAML settings file. Fields absent from the file keep
// their defaults.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	s := DefaultSettings()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}
	return s, nil
}

// Open wires a Loader from settings: a DynamoDB-backed config table, and
// when a KMS key is configured, envelope encryption under that key.
func Open(ctx context.Context, s *Settings) (*Loader, error) {
	client, err := ddb.NewClient(ctx, ddb.ClientConfig{
		Region:          s.Region,
		Profile:         s.Profile,
		AccessKeyID:     s.AccessKeyID,
		SecretAccessKey: s.SecretAccessKey,
		EndpointURL:     s.EndpointURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	table := ddb.New(client, s.Table)

	opts := []Option{WithSeparator(s.Separator)}
	if s.KMSKeyID == "" {
		return New(table, opts...), nil
	}

	kmsClient, err := kms.NewKMSClient(ctx, kms.ClientConfig{
		Region:          s.Region,
		Profile:         s.Profile,
		AccessKeyID:     s.AccessKeyID,
		SecretAccessKey: s.SecretAccessKey,
		EndpointURL:     s.KMSEndpointURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create KMS client: %w", err)
	}

	var cryptOpts []envelope.Option
	if len(s.EncryptionContext) > 0 {
		cryptOpts = append(cryptOpts, envelope.WithEncryptionContext(s.EncryptionContext))
	}
	crypter := envelope.New(kms.New(kmsClient), s.KMSKeyID, cryptOpts...)

	return NewEncrypted(table, crypter, opts...), nil
}
