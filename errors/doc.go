/*
Package errors provides semantic error types for the configstore library.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound     = errors.New("config item not found")
	    ErrMalformedRow = errors.New("malformed config row")
	    ErrTypeMismatch = errors.New("value type mismatch")
	    ErrIntegrity    = errors.New("integrity check failed")
	    ErrKeyService   = errors.New("key service request failed")
	    ErrTransport    = errors.New("table request failed")
	)

Usage:

	// Check error type
	cfg, err := loader.Load(ctx, "service")
	if err != nil {
	    if errors.IsIntegrity(err) {
	        // Stored ciphertext was tampered with or corrupted
	        return nil, fmt.Errorf("refusing to use namespace %q: %w", "service", err)
	    }
	    return nil, err
	}

	// Create typed errors
	err := errors.NewMalformedRowError("service", "db.password", []string{"ciphertext"})
	err := errors.NewTypeMismatchError("encrypted", "plaintext")
	err := errors.NewTransportError("Query", "config", cause)

KeyServiceError and TransportError wrap their underlying cause and expose it
through Unwrap(), so errors.Is and errors.As reach the original AWS error.

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
