/*
Package configtable defines the storage interface for namespaced config rows.

A config table holds flattened configuration items under a two-attribute key:
the namespace is the partition key and the item name is the sort key. The
Table interface exposes the four operations the loader needs: a consistent
single-item Get, an upserting Put, an idempotent Delete, and a namespace
Scan. Projections are driven by the caller, so a table round trip only moves
the attributes the active value type declares.

Two implementations ship with the library:

  - ddb: AWS DynamoDB (see the ddb subpackage)
  - mock: an in-memory table for tests (see the mock subpackage)

TableDefinition names the table and carries the provisioned throughput used
by tooling that creates tables; the library itself never creates tables.
*/
package configtable
