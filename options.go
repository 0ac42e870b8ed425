package confstore

// StoreOption is a function that configures a Store at open time.
type StoreOption func(*storeOptions)

// storeOptions holds configuration options collected by Open.
type storeOptions struct {
	root          string
	fileName      string
	extension     string
	suffix        string
	pretty        bool
	compress      bool
	encryptionKey string
	hasKey        bool
	atomicWrites  bool
	logger        Logger
}

// WithRoot overrides the store root directory. Without it the platform
// configuration directory is used.
//
// Example:
//
//	store, err := confstore.Open("my-app", confstore.WithRoot("/tmp/cfg"))
func WithRoot(root string) StoreOption {
	return func(o *storeOptions) {
		o.root = root
	}
}

// WithFileName overrides the document file base name (default "config").
func WithFileName(name string) StoreOption {
	return func(o *storeOptions) {
		o.fileName = name
	}
}

// WithExtension overrides the document file extension (default "json").
func WithExtension(ext string) StoreOption {
	return func(o *storeOptions) {
		o.extension = ext
	}
}

// WithSuffix overrides the storage subdirectory suffix (default "rs").
func WithSuffix(suffix string) StoreOption {
	return func(o *storeOptions) {
		o.suffix = suffix
	}
}

// WithPrettyPrint serializes the document with indentation on write.
func WithPrettyPrint() StoreOption {
	return func(o *storeOptions) {
		o.pretty = true
	}
}

// WithCompression stores the document as a DEFLATE stream. Ignored while
// an encryption key is configured.
func WithCompression() StoreOption {
	return func(o *storeOptions) {
		o.compress = true
	}
}

// WithEncryptionKey protects the document with authenticated encryption.
// The key must be at most 32 bytes and is zero-padded to exactly 32.
//
// Example:
//
//	store, err := confstore.Open("my-app", confstore.WithEncryptionKey("secret"))
func WithEncryptionKey(key string) StoreOption {
	return func(o *storeOptions) {
		o.encryptionKey = key
		o.hasKey = true
	}
}

// WithAtomicWrites switches document writes to a temp-file-and-rename
// scheme so a crash mid-write cannot leave a truncated file. The default
// is a direct overwrite of the target file.
func WithAtomicWrites() StoreOption {
	return func(o *storeOptions) {
		o.atomicWrites = true
	}
}

// WithLogger sets a custom logger for the store.
func WithLogger(logger Logger) StoreOption {
	return func(o *storeOptions) {
		o.logger = logger
	}
}
