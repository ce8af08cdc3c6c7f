/*
Package configstore treats a DynamoDB table as a namespaced, hierarchical,
optionally encrypted configuration source.

Configuration lives in a single table keyed by namespace (partition key) and
flattened item name (sort key). Item names split on a separator into nested
sections, so the items "foo" and "bar.baz" of one namespace load as:

	{"foo": "bar", "bar": {"baz": "foo"}}

Key Features:
  - Hierarchical assembly of flat key-value rows into nested config maps
  - Envelope encryption at rest (AES-256-CTR + HMAC-SHA256, data keys
    wrapped by AWS KMS) with constant-time verification before decryption
  - Consistent reads and projected attributes on every table round trip
  - Semantic error types for better error handling
  - An in-memory table and key service for testing without AWS

Basic Usage:

	// Plaintext configuration
	client, _ := ddb.NewClient(ctx, ddb.ClientConfig{Region: "us-east-1"})
	table := ddb.New(client, configtable.DefaultTableDefinition())
	loader := configstore.New(table)

	_ = loader.Put(ctx, "service", "db.host", values.Plaintext{Plaintext: "db.internal"})
	cfg, _ := loader.Load(ctx, "service")

	// Encrypted configuration
	kmsClient, _ := kms.NewKMSClient(ctx, kms.ClientConfig{Region: "us-east-1"})
	crypter := envelope.New(kms.New(kmsClient), "alias/app-config")
	secure := configstore.NewEncrypted(table, crypter)

	enc, _ := secure.Encrypt(ctx, "hunter2")
	_ = secure.Put(ctx, "service", "db.password", enc)
	password, _ := secure.Get(ctx, "service", "db.password") // decrypted

Or wire everything from a YAML settings file:

	settings, _ := configstore.LoadSettings("configstore.yaml")
	loader, _ := configstore.Open(ctx, settings)

For more information, see the documentation at https://github.com/suparena/configstore
*/
package configstore
