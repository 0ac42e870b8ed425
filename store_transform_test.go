package confstore_test

import (
	"os"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aigotowork/confstore"
)

func TestEncryptedStoreRoundTrip(t *testing.T) {
	store := newStore(t, confstore.WithEncryptionKey("test_key"))

	require.NoError(t, store.Set("a", "test1"))

	value, ok, err := store.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "test1", value)

	// The on-disk bytes are not the JSON document.
	data, err := os.ReadFile(store.FilePath())
	require.NoError(t, err)
	assert.False(t, json.Valid(data))
	assert.NotContains(t, string(data), "test1")
}

func TestEncryptedStoreWrongKey(t *testing.T) {
	root := t.TempDir()
	store, err := confstore.Open("crypto-app",
		confstore.WithRoot(root),
		confstore.WithEncryptionKey("right_key"),
		confstore.WithLogger(confstore.NewNopLogger()),
	)
	require.NoError(t, err)
	require.NoError(t, store.Set("a", 1))

	other, err := confstore.Open("crypto-app",
		confstore.WithRoot(root),
		confstore.WithEncryptionKey("wrong_key"),
		confstore.WithLogger(confstore.NewNopLogger()),
	)
	require.NoError(t, err)

	_, _, err = other.Get("a")
	assert.ErrorIs(t, err, confstore.ErrDecryption)
}

func TestEncryptedStoreTamperedFile(t *testing.T) {
	store := newStore(t, confstore.WithEncryptionKey("test_key"))
	require.NoError(t, store.Set("a", 1))

	data, err := os.ReadFile(store.FilePath())
	require.NoError(t, err)
	data[len(data)-1] ^= 0x01
	require.NoError(t, os.WriteFile(store.FilePath(), data, 0644))

	_, _, err = store.Get("a")
	assert.ErrorIs(t, err, confstore.ErrDecryption)
}

func TestCompressedStoreRoundTrip(t *testing.T) {
	store := newStore(t, confstore.WithCompression())

	require.NoError(t, store.Set("a.b", "test1"))

	value, ok, err := store.Get("a.b")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "test1", value)

	data, err := os.ReadFile(store.FilePath())
	require.NoError(t, err)
	assert.False(t, json.Valid(data))
}

func TestCompressedStoreReadRequiresFlag(t *testing.T) {
	root := t.TempDir()
	store, err := confstore.Open("compress-app",
		confstore.WithRoot(root),
		confstore.WithCompression(),
		confstore.WithLogger(confstore.NewNopLogger()),
	)
	require.NoError(t, err)
	require.NoError(t, store.Set("a", 1))

	// A reader configured without the flag cannot interpret the bytes.
	plain, err := confstore.Open("compress-app",
		confstore.WithRoot(root),
		confstore.WithLogger(confstore.NewNopLogger()),
	)
	require.NoError(t, err)

	_, _, err = plain.Get("a")
	assert.Error(t, err)
}

func TestEncryptionPrecedence(t *testing.T) {
	root := t.TempDir()

	// Both transforms configured: only encryption is applied.
	both, err := confstore.Open("prec-app",
		confstore.WithRoot(root),
		confstore.WithEncryptionKey("test_key"),
		confstore.WithCompression(),
		confstore.WithLogger(confstore.NewNopLogger()),
	)
	require.NoError(t, err)
	require.NoError(t, both.Set("a.b", 42))

	stats, err := both.Stats()
	require.NoError(t, err)
	assert.True(t, stats.Encrypted)
	assert.False(t, stats.Compressed)

	// A reader with the key but the opposite compression flag succeeds.
	encryptedOnly, err := confstore.Open("prec-app",
		confstore.WithRoot(root),
		confstore.WithEncryptionKey("test_key"),
		confstore.WithLogger(confstore.NewNopLogger()),
	)
	require.NoError(t, err)

	value, ok, err := encryptedOnly.Get("a.b")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, float64(42), value)
}

func TestSetEncryptionKeyPadding(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.SetEncryptionKey("test_key"))
	require.NoError(t, store.Set("a", "secret value"))

	// A too-long key is rejected and the previous key stays configured.
	err := store.SetEncryptionKey("test_key_this_key_will_be_too_long")
	assert.ErrorIs(t, err, confstore.ErrInvalidKeyLength)

	value, ok, err := store.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "secret value", value)
}

func TestClearEncryptionKey(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SetEncryptionKey("test_key"))
	require.NoError(t, store.Set("a", 1))

	store.ClearEncryptionKey()

	// Without the key the encrypted bytes are unreadable.
	_, _, err := store.Get("a")
	require.Error(t, err)

	// Re-initializing writes plaintext again.
	require.NoError(t, store.Init())
	data, err := os.ReadFile(store.FilePath())
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestEncryptedInitWritesEncryptedEmptyDocument(t *testing.T) {
	store := newStore(t, confstore.WithEncryptionKey("test_key"))
	require.NoError(t, store.Init())

	data, err := os.ReadFile(store.FilePath())
	require.NoError(t, err)
	assert.NotEqual(t, "{}", string(data))

	_, ok, err := store.Get("anything")
	require.NoError(t, err)
	assert.False(t, ok)
}
