// Package confstore provides a local, file-backed JSON configuration store.
package confstore

import (
	"errors"

	"github.com/aigotowork/confstore/internal/dotpath"
	"github.com/aigotowork/confstore/internal/transform"
)

// Common errors returned by confstore operations. Errors raised inside the
// internal packages are re-exported here so callers can match them with
// errors.Is without importing internals.
var (
	// ErrStoreNotFound is returned when an operation targets a store whose
	// backing file does not exist.
	ErrStoreNotFound = errors.New("store not found")

	// ErrPathNotFound is returned by GetInto when the path holds no value.
	ErrPathNotFound = errors.New("path not found")

	// ErrBadPathElement is returned when a set or delete traversal reaches
	// a scalar value where a container was required.
	ErrBadPathElement = dotpath.ErrBadPathElement

	// ErrInvalidPath is returned for an empty path or a path containing an
	// empty segment.
	ErrInvalidPath = dotpath.ErrInvalidPath

	// ErrInvalidKeyLength is returned when an encryption key exceeds 32 bytes.
	ErrInvalidKeyLength = transform.ErrInvalidKeyLength

	// ErrEncryption is returned when sealing the document fails.
	ErrEncryption = transform.ErrEncryption

	// ErrDecryption is returned when the document cannot be decrypted,
	// including authentication failures on tampered data.
	ErrDecryption = transform.ErrDecryption

	// ErrInvalidEncoding is returned when stored data is not valid UTF-8.
	ErrInvalidEncoding = transform.ErrInvalidEncoding

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("invalid store configuration")

	// ErrConfigDir is returned when the platform configuration directory
	// cannot be resolved and no explicit root was configured.
	ErrConfigDir = errors.New("config directory not found")
)
