package confstore

// Default configuration values.
const (
	// DefaultFileName is the document file base name.
	DefaultFileName = "config"

	// DefaultExtension is the document file extension.
	DefaultExtension = "json"

	// DefaultSuffix is appended to the project name to form the storage
	// subdirectory ("{project}-{suffix}").
	DefaultSuffix = "rs"
)

// Config holds the on-disk layout and transform settings for a store.
// Every operation recomputes the storage location from the current
// configuration; nothing is cached.
type Config struct {
	// Root is the base directory under which the storage subdirectory lives.
	Root string `json:"root"`

	// Project is the application identifier used to name the storage
	// subdirectory.
	Project string `json:"project"`

	// Suffix is appended to the project name.
	Suffix string `json:"suffix"`

	// FileName is the document file base name.
	FileName string `json:"file_name"`

	// Extension is the document file extension.
	Extension string `json:"extension"`

	// PrettyPrint serializes the document with indentation when set.
	// This affects only on-disk bytes, never parse behavior.
	PrettyPrint bool `json:"pretty_print"`

	// Compress stores the document as a raw DEFLATE stream. Ignored while
	// an encryption key is configured.
	Compress bool `json:"compress"`

	// key is the fixed-width AEAD secret; nil when encryption is off.
	key []byte
}

// defaultConfig returns the configuration for a new store. Root is filled
// in by Open.
func defaultConfig(project string) Config {
	return Config{
		Project:   project,
		Suffix:    DefaultSuffix,
		FileName:  DefaultFileName,
		Extension: DefaultExtension,
	}
}

// Validate checks that the configuration can produce a usable file path.
func (c *Config) Validate() error {
	if c.Root == "" {
		return ErrInvalidConfig
	}
	if c.Project == "" {
		return ErrInvalidConfig
	}
	if c.Suffix == "" {
		return ErrInvalidConfig
	}
	if c.FileName == "" {
		return ErrInvalidConfig
	}
	if c.Extension == "" {
		return ErrInvalidConfig
	}
	return nil
}

// Encrypted reports whether an encryption key is configured.
func (c *Config) Encrypted() bool {
	return len(c.key) > 0
}
