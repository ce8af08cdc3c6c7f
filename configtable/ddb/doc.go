/*
Package ddb provides a DynamoDB implementation of the configtable.Table
interface.

The ConfigTable supports:
  - Two-attribute key schema (namespace partition key, item name sort key)
  - Consistent reads for both single-item gets and namespace scans
  - Caller-driven projections so only the active value type's attributes
    travel over the wire
  - Transparent pagination of namespace scans
  - DynamoDB Local endpoints for development and testing

Construction:

	client, err := ddb.NewClient(ctx, ddb.ClientConfig{
	    Region:      "us-east-1",
	    EndpointURL: "http://localhost:8000", // omit for real AWS
	})
	if err != nil {
	    return err
	}
	table := ddb.New(client, configtable.DefaultTableDefinition())

Transport failures are wrapped in errors.TransportError; an absent item is
reported as (nil, nil), never as an error.

For usage examples, see the integration tests and documentation.
*/
package ddb
