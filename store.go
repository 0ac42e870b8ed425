package confstore

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/aigotowork/confstore/internal/dotpath"
	"github.com/aigotowork/confstore/internal/fsutil"
	"github.com/aigotowork/confstore/internal/transform"
)

// store implements the Store interface.
type store struct {
	config       Config
	atomicWrites bool
	logger       Logger
}

// openStore builds a store from the project name and options.
func openStore(project string, opts ...StoreOption) (Store, error) {
	options := &storeOptions{
		logger: NewDefaultLogger(),
	}

	for _, opt := range opts {
		opt(options)
	}

	config := defaultConfig(project)

	if options.root != "" {
		config.Root = options.root
	} else {
		// Platform config directory, resolved once at construction.
		root, err := os.UserConfigDir()
		if err != nil {
			return nil, ErrConfigDir
		}
		config.Root = root
	}
	if options.fileName != "" {
		config.FileName = options.fileName
	}
	if options.extension != "" {
		config.Extension = options.extension
	}
	if options.suffix != "" {
		config.Suffix = options.suffix
	}
	config.PrettyPrint = options.pretty
	config.Compress = options.compress

	if err := config.Validate(); err != nil {
		return nil, err
	}

	s := &store{
		config:       config,
		atomicWrites: options.atomicWrites,
		logger:       options.logger,
	}

	if options.hasKey {
		if err := s.SetEncryptionKey(options.encryptionKey); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// ========== Document Operations ==========

// Get returns a deep copy of the value at path.
func (s *store) Get(path string) (any, bool, error) {
	segments, err := dotpath.Parse(path)
	if err != nil {
		return nil, false, err
	}
	if !s.Exists() {
		return nil, false, ErrStoreNotFound
	}

	tree, err := s.load()
	if err != nil {
		return nil, false, err
	}

	value, ok := dotpath.Get(tree, segments)
	return value, ok, nil
}

// GetInto decodes the value at path into target via the JSON codec.
func (s *store) GetInto(path string, target any) error {
	value, ok, err := s.Get(path)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPathNotFound
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("serialize value: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode value at %q: %w", path, err)
	}
	return nil
}

// Has reports whether a value is present at path.
func (s *store) Has(path string) (bool, error) {
	_, ok, err := s.Get(path)
	return ok, err
}

// Set writes value at path, creating the store if it does not exist yet.
func (s *store) Set(path string, value any) error {
	segments, err := dotpath.Parse(path)
	if err != nil {
		return err
	}

	// Normalize the value to a JSON tree first so serialization failures
	// surface before any file is touched.
	node, err := toJSONValue(value)
	if err != nil {
		return err
	}

	if !s.Exists() {
		if err := s.Init(); err != nil {
			return err
		}
	}

	tree, err := s.load()
	if err != nil {
		return err
	}

	updated, err := dotpath.Set(tree, segments, node)
	if err != nil {
		return err
	}

	if err := s.save(updated); err != nil {
		return err
	}

	s.logger.Debug("value set", Field{"path", path})
	return nil
}

// Delete removes the value at path and returns it.
func (s *store) Delete(path string) (any, bool, error) {
	segments, err := dotpath.Parse(path)
	if err != nil {
		return nil, false, err
	}
	if !s.Exists() {
		return nil, false, ErrStoreNotFound
	}

	tree, err := s.load()
	if err != nil {
		return nil, false, err
	}

	updated, removed, present, err := dotpath.Delete(tree, segments)
	if err != nil {
		return nil, false, err
	}

	if err := s.save(updated); err != nil {
		return nil, false, err
	}

	s.logger.Debug("value deleted", Field{"path", path}, Field{"present", present})
	return removed, present, nil
}

// Init writes the empty document, creating the directory if necessary.
func (s *store) Init() error {
	if !s.DirExists() {
		if err := fsutil.EnsureDir(s.DirPath(), 0755); err != nil {
			return fmt.Errorf("create store directory: %w", err)
		}
	}
	if err := s.save(map[string]any{}); err != nil {
		return err
	}
	s.logger.Debug("store initialized", Field{"path", s.FilePath()})
	return nil
}

// Clear resets the document to the empty object.
func (s *store) Clear() error {
	return s.Init()
}

// Destroy removes the storage subdirectory and everything in it.
func (s *store) Destroy() error {
	dir := s.DirPath()
	if err := fsutil.RemoveAll(dir); err != nil {
		return fmt.Errorf("destroy store: %w", err)
	}
	s.logger.Info("store destroyed", Field{"path", dir})
	return nil
}

// ========== Predicates and Metadata ==========

// Exists reports whether the backing file exists.
func (s *store) Exists() bool {
	return fsutil.FileExists(s.FilePath())
}

// DirExists reports whether the storage subdirectory exists.
func (s *store) DirExists() bool {
	return fsutil.DirExists(s.DirPath())
}

// DirPath returns the storage subdirectory: {root}/{project}-{suffix}.
func (s *store) DirPath() string {
	return filepath.Join(s.config.Root, s.config.Project+"-"+s.config.Suffix)
}

// FilePath returns the document file: {dir}/{file-name}.{extension}.
func (s *store) FilePath() string {
	return filepath.Join(s.DirPath(), s.config.FileName+"."+s.config.Extension)
}

// Stats returns statistics about the store.
func (s *store) Stats() (StoreStats, error) {
	if !s.Exists() {
		return StoreStats{}, ErrStoreNotFound
	}
	return StoreStats{
		Path:       s.FilePath(),
		Size:       fsutil.FileSize(s.FilePath()),
		Encrypted:  s.config.Encrypted(),
		Compressed: s.config.Compress && !s.config.Encrypted(),
	}, nil
}

// ========== Configuration ==========

// Config returns a copy of the current configuration.
func (s *store) Config() Config {
	return s.config
}

func (s *store) SetProject(name string) {
	s.config.Project = name
}

func (s *store) SetFileName(name string) {
	s.config.FileName = name
}

func (s *store) SetExtension(ext string) {
	s.config.Extension = ext
}

func (s *store) SetSuffix(suffix string) {
	s.config.Suffix = suffix
}

func (s *store) SetRoot(root string) {
	s.config.Root = root
}

func (s *store) SetPrettyPrint(enabled bool) {
	s.config.PrettyPrint = enabled
}

func (s *store) SetCompression(enabled bool) {
	s.config.Compress = enabled
}

// SetEncryptionKey pads the key to 32 bytes and enables encryption.
// A key longer than 32 bytes leaves the previous key unchanged.
func (s *store) SetEncryptionKey(key string) error {
	padded, err := transform.PadKey(key)
	if err != nil {
		return err
	}
	s.config.key = padded
	return nil
}

// ClearEncryptionKey disables encryption.
func (s *store) ClearEncryptionKey() {
	s.config.key = nil
}

// ========== Load/Save Pipeline ==========

// pipeline builds the transform pipeline from the current configuration.
func (s *store) pipeline() transform.Pipeline {
	return transform.New(s.config.key, s.config.Compress)
}

// load reads the backing file, unwraps it and parses the JSON tree.
func (s *store) load() (any, error) {
	raw, err := fsutil.ReadFile(s.FilePath())
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}

	plain, err := s.pipeline().Unwrap(raw)
	if err != nil {
		return nil, err
	}

	var tree any
	if err := json.Unmarshal(plain, &tree); err != nil {
		return nil, fmt.Errorf("parse store document: %w", err)
	}
	return tree, nil
}

// save serializes the tree, wraps it and writes the backing file.
func (s *store) save(tree any) error {
	var (
		data []byte
		err  error
	)
	if s.config.PrettyPrint {
		data, err = json.MarshalIndent(tree, "", "  ")
	} else {
		data, err = json.Marshal(tree)
	}
	if err != nil {
		return fmt.Errorf("serialize store document: %w", err)
	}

	wrapped, err := s.pipeline().Wrap(data)
	if err != nil {
		return err
	}

	if s.atomicWrites {
		if err := fsutil.AtomicWriteFile(s.FilePath(), wrapped, 0644); err != nil {
			return fmt.Errorf("write store file: %w", err)
		}
		return nil
	}
	if err := fsutil.WriteFile(s.FilePath(), wrapped, 0644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	return nil
}

// toJSONValue normalizes an arbitrary Go value into a generic JSON tree.
func toJSONValue(value any) (any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("serialize value: %w", err)
	}
	var node any
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("serialize value: %w", err)
	}
	return node, nil
}
