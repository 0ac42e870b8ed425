/*
Package confstore provides a local, file-backed JSON document store used as
an application's configuration persistence layer.

Values are addressed with dot-separated paths ("a.b.c") and can be any
JSON-serializable Go value. The whole document lives in a single file
derived from the store configuration:

	{root}/{project}-{suffix}/{file-name}.{extension}

Quick Start:

	// Open or create a store
	store := confstore.MustOpen("my-app", confstore.WithRoot("/tmp/cfg"))

	// Store data at a dot path
	store.Set("server.port", 8080)

	// Retrieve it
	port, ok, err := store.Get("server.port")

	// Remove it
	removed, ok, err := store.Delete("server")

The backing file can optionally be protected with authenticated encryption
or stored compressed:

	store, err := confstore.Open("my-app",
		confstore.WithEncryptionKey("secret"),
	)

Encryption takes precedence: while a key is configured, compression is
neither applied nor expected. The on-disk bytes carry no header, so a
store must be opened with the same key presence and compression flag it
was written with.

Every operation performs a full read-modify-write of the backing file; the
store keeps no cache and is not safe for concurrent use.
*/
package confstore

// Store is a dot-path addressed JSON document store backed by a single file.
//
// Example:
//
//	store := confstore.MustOpen("my-app")
//	store.Set("a.b", 42)
type Store interface {
	// ========== Document Operations ==========

	// Get returns a deep copy of the value at path. The boolean reports
	// whether a value was present; a missing path is not an error.
	// Returns ErrStoreNotFound if the backing file does not exist.
	Get(path string) (any, bool, error)

	// GetInto decodes the value at path into target.
	// Returns ErrPathNotFound if the path holds no value.
	GetInto(path string, target any) error

	// Has reports whether a value is present at path.
	Has(path string) (bool, error)

	// Set writes value at path, creating the store and any missing
	// intermediate objects. Returns ErrBadPathElement if traversal reaches
	// a scalar where a container was required.
	Set(path string, value any) error

	// Delete removes the value at path and returns it. Removing a missing
	// path is not an error; the boolean reports whether anything was there.
	// Returns ErrStoreNotFound if the backing file does not exist.
	Delete(path string) (any, bool, error)

	// Init writes the empty document, creating the file and its directory
	// if necessary.
	Init() error

	// Clear resets the document to the empty object, independent of prior
	// contents.
	Clear() error

	// Destroy removes the storage subdirectory and everything in it.
	// This is a destructive operation and cannot be undone.
	Destroy() error

	// ========== Predicates and Metadata ==========

	// Exists reports whether the backing file exists.
	Exists() bool

	// DirExists reports whether the storage subdirectory exists.
	DirExists() bool

	// DirPath returns the storage subdirectory path.
	DirPath() string

	// FilePath returns the document file path.
	FilePath() string

	// Stats returns statistics about the store.
	Stats() (StoreStats, error)

	// ========== Configuration ==========

	// Config returns a copy of the current configuration.
	Config() Config

	// SetProject changes the project name. The storage location is
	// recomputed on the next operation.
	SetProject(name string)

	// SetFileName changes the document file base name.
	SetFileName(name string)

	// SetExtension changes the document file extension.
	SetExtension(ext string)

	// SetSuffix changes the storage subdirectory suffix.
	SetSuffix(suffix string)

	// SetRoot changes the store root directory.
	SetRoot(root string)

	// SetPrettyPrint toggles indented serialization.
	SetPrettyPrint(enabled bool)

	// SetCompression toggles DEFLATE compression. Ignored while an
	// encryption key is configured.
	SetCompression(enabled bool)

	// SetEncryptionKey configures authenticated encryption. The key must
	// be at most 32 bytes and is zero-padded to exactly 32; a longer key
	// fails with ErrInvalidKeyLength and leaves any previous key in place.
	SetEncryptionKey(key string) error

	// ClearEncryptionKey disables encryption.
	ClearEncryptionKey()
}

// StoreStats describes the on-disk state of a store.
type StoreStats struct {
	// Path to the document file
	Path string `json:"path"`

	// Size of the document file in bytes
	Size int64 `json:"size"`

	// Whether the document is encrypted on disk
	Encrypted bool `json:"encrypted"`

	// Whether the document is compressed on disk
	Compressed bool `json:"compressed"`
}

// Open opens a store for the given project. The backing file is not
// created until the first Set or Init. Without a WithRoot option the
// platform configuration directory is used; if it cannot be resolved,
// Open fails with ErrConfigDir.
//
// Example:
//
//	store, err := confstore.Open("my-app")
//	if err != nil {
//		log.Fatal(err)
//	}
func Open(project string, opts ...StoreOption) (Store, error) {
	return openStore(project, opts...)
}

// MustOpen is like Open but panics on error.
// Useful for initialization code where errors are unrecoverable.
func MustOpen(project string, opts ...StoreOption) Store {
	store, err := Open(project, opts...)
	if err != nil {
		panic(err)
	}
	return store
}
