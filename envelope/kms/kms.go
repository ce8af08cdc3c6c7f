/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package kms adapts AWS KMS to the envelope.KeyService interface.
package kms

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sdk "github.com/aws/aws-sdk-go-v2/service/kms"

	"github.com/suparena/configstore/envelope"
)

// Client is the part of the KMS API the key service uses.
type Client interface {
	GenerateDataKey(ctx context.Context, params *sdk.GenerateDataKeyInput, optFns ...func(*sdk.Options)) (*sdk.GenerateDataKeyOutput, error)
	Decrypt(ctx context.Context, params *sdk.DecryptInput, optFns ...func(*sdk.Options)) (*sdk.DecryptOutput, error)
}

var _ Client = (*sdk.Client)(nil)

// KeyService implements envelope.KeyService on AWS KMS. Data keys are
// generated and unwrapped by the service; the master key never leaves KMS.
type KeyService struct {
	client Client
}

var _ envelope.KeyService = (*KeyService)(nil)

// New returns a KeyService backed by the given KMS client.
func New(client Client) *KeyService {
	return &KeyService{client: client}
}

// GenerateDataKey implements envelope.KeyService.
func (s *KeyService) GenerateDataKey(ctx context.Context, keyID string, encryptionContext map[string]string, numBytes int32) ([]byte, []byte, error) {
	out, err := s.client.GenerateDataKey(ctx, &sdk.GenerateDataKeyInput{
		KeyId:             aws.String(keyID),
		EncryptionContext: encryptionContext,
		NumberOfBytes:     aws.Int32(numBytes),
	})
	if err != nil {
		return nil, nil, err
	}
	return out.Plaintext, out.CiphertextBlob, nil
}

// Decrypt implements envelope.KeyService.
func (s *KeyService) Decrypt(ctx context.Context, wrappedKey []byte, encryptionContext map[string]string) ([]byte, error) {
	out, err := s.client.Decrypt(ctx, &sdk.DecryptInput{
		CiphertextBlob:    wrappedKey,
		EncryptionContext: encryptionContext,
	})
	if err != nil {
		return nil, err
	}
	return out.Plaintext, nil
}

// ClientConfig carries the AWS session settings for the KMS client.
type ClientConfig struct {
	Region          string
	Profile         string
	AccessKeyID     string
	SecretAccessKey string
	EndpointURL     string
}

// NewKMSClient initializes a KMS client using the given settings. Setting an
// endpoint URL points the client at a local emulator; static credentials are
// only installed when an access key is provided.
func NewKMSClient(ctx context.Context, cc ClientConfig) (*sdk.Client, error) {
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
