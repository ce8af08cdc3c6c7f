/*
Package envelope implements envelope encryption for configuration values.

Every value is encrypted under its own data key, and the data key is wrapped
by a key service (AWS KMS in production, see the kms subpackage) under a
master key that never leaves the service:

	Encrypt
	  1. Request a fresh 64 byte data key from the key service.
	  2. Split it: bytes 0..31 key AES-256-CTR, bytes 32..63 key HMAC-SHA256.
	  3. Encrypt the plaintext with AES-CTR, counter block all zeros.
	  4. Tag the ciphertext with hex(HMAC-SHA256(ciphertext)).
	  5. Store base64(wrapped key), base64(ciphertext), tag.

	Decrypt
	  1. Decode the stored triple; corrupt base64/hex is an integrity failure.
	  2. Unwrap the data key via the key service.
	  3. Recompute the HMAC and compare its hex text against the stored tag
	     in constant time BEFORE decrypting.
	  4. Only then run AES-CTR to recover the plaintext.

Security invariant: the fixed all-zero CTR counter is sound only because step
1 generates a unique data key per encryption. No data key ever encrypts two
messages, so counter blocks never repeat under the same key. Reusing a data
key here would be catastrophic; KeyService implementations must never cache
or replay generated keys.

An optional encryption context binds additional authenticated data to the
wrapped key:

	c := envelope.New(keys, "alias/app-config",
	    envelope.WithEncryptionContext(map[string]string{"app": "scoreboard"}))
	enc, err := c.Encrypt(ctx, "hunter2")

A value written with a context can only be opened by a Crypter presenting the
identical context; the key service rejects the unwrap otherwise.
*/
package envelope
