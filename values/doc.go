/*
Package values defines the stored representation of configuration values.

Every config item is persisted as a flat Row of string attributes. Two value
variants exist, each described by a Type:

  - Plaintext: a single "plaintext" attribute holding the value as-is.
  - Encrypted: the envelope triple "wrapped_key", "ciphertext" and
    "integrity_tag" produced by the envelope package.

A loader is bound to exactly one Type when it is constructed; that Type drives
which attributes are projected from the table and how rows are decoded:

	val, err := values.TypeEncrypted.FromRow(row)
	if err != nil {
	    // row is missing declared attributes
	}
	enc := val.(values.Encrypted)

FromRow ignores attributes a variant does not declare, so key attributes
returned by table scans ride along harmlessly. The empty string is a legal
attribute value; only an absent attribute makes a row malformed.
*/
package values
