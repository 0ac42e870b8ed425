package transform

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadKey(t *testing.T) {
	key, err := PadKey("test_key")
	require.NoError(t, err)
	assert.Len(t, key, KeySize)

	expected := append([]byte("test_key"), make([]byte, KeySize-len("test_key"))...)
	assert.Equal(t, expected, key)
}

func TestPadKeyExactWidth(t *testing.T) {
	raw := "0123456789abcdef0123456789abcdef" // 32 bytes
	key, err := PadKey(raw)
	require.NoError(t, err)
	assert.Equal(t, []byte(raw), key)
}

func TestPadKeyTooLong(t *testing.T) {
	_, err := PadKey("test_key_this_key_will_be_too_long")
	assert.ErrorIs(t, err, ErrInvalidKeyLength)
}

func TestPlainRoundTrip(t *testing.T) {
	p := New(nil, false)
	doc := []byte(`{"a":{"b":42}}`)

	wrapped, err := p.Wrap(doc)
	require.NoError(t, err)
	assert.Equal(t, doc, wrapped)

	unwrapped, err := p.Unwrap(wrapped)
	require.NoError(t, err)
	assert.Equal(t, doc, unwrapped)
}

func TestPlainRejectsInvalidUTF8(t *testing.T) {
	p := New(nil, false)

	_, err := p.Unwrap([]byte{0xff, 0xfe, 0xfd})
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestCompressedRoundTrip(t *testing.T) {
	p := New(nil, true)
	doc := bytes.Repeat([]byte(`{"key":"value"}`), 64)

	wrapped, err := p.Wrap(doc)
	require.NoError(t, err)
	assert.NotEqual(t, doc, wrapped)
	assert.Less(t, len(wrapped), len(doc))

	unwrapped, err := p.Unwrap(wrapped)
	require.NoError(t, err)
	assert.Equal(t, doc, unwrapped)
}

func TestCompressedRejectsGarbage(t *testing.T) {
	p := New(nil, true)

	_, err := p.Unwrap([]byte("this is not a deflate stream"))
	assert.Error(t, err)
}

func TestEncryptedRoundTrip(t *testing.T) {
	key, err := PadKey("secret")
	require.NoError(t, err)

	p := New(key, false)
	doc := []byte(`{"a":{"b":42}}`)

	wrapped, err := p.Wrap(doc)
	require.NoError(t, err)
	require.Greater(t, len(wrapped), NonceSize+16) // nonce + tag overhead
	assert.NotContains(t, string(wrapped), `"b":42`)

	unwrapped, err := p.Unwrap(wrapped)
	require.NoError(t, err)
	assert.Equal(t, doc, unwrapped)
}

func TestEncryptedNonceIsFresh(t *testing.T) {
	key, err := PadKey("secret")
	require.NoError(t, err)

	p := New(key, false)
	doc := []byte(`{}`)

	first, err := p.Wrap(doc)
	require.NoError(t, err)
	second, err := p.Wrap(doc)
	require.NoError(t, err)

	assert.NotEqual(t, first[:NonceSize], second[:NonceSize])
	assert.NotEqual(t, first, second)
}

func TestTamperedCiphertextFailsClosed(t *testing.T) {
	key, err := PadKey("secret")
	require.NoError(t, err)

	p := New(key, false)
	wrapped, err := p.Wrap([]byte(`{"a":1}`))
	require.NoError(t, err)

	for _, idx := range []int{0, NonceSize, len(wrapped) - 1} {
		tampered := append([]byte(nil), wrapped...)
		tampered[idx] ^= 0x01

		_, err := p.Unwrap(tampered)
		assert.ErrorIs(t, err, ErrDecryption, "tampered byte %d", idx)
	}
}

func TestTruncatedCiphertextFails(t *testing.T) {
	key, err := PadKey("secret")
	require.NoError(t, err)

	p := New(key, false)
	_, err = p.Unwrap([]byte("short"))
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestWrongKeyFails(t *testing.T) {
	key, err := PadKey("secret")
	require.NoError(t, err)
	other, err := PadKey("different")
	require.NoError(t, err)

	wrapped, err := New(key, false).Wrap([]byte(`{}`))
	require.NoError(t, err)

	_, err = New(other, false).Unwrap(wrapped)
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestEncryptionPrecedesCompression(t *testing.T) {
	key, err := PadKey("secret")
	require.NoError(t, err)
	doc := []byte(`{"a":{"b":42}}`)

	// With both configured, the output must be decryptable by a pipeline
	// that never heard of compression.
	both := New(key, true)
	wrapped, err := both.Wrap(doc)
	require.NoError(t, err)

	unwrapped, err := New(key, false).Unwrap(wrapped)
	require.NoError(t, err)
	assert.Equal(t, doc, unwrapped)

	// And symmetrically on read.
	encryptedOnly, err := New(key, false).Wrap(doc)
	require.NoError(t, err)

	unwrapped, err = both.Unwrap(encryptedOnly)
	require.NoError(t, err)
	assert.Equal(t, doc, unwrapped)
}
