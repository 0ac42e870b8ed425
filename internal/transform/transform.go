// Package transform converts a serialized document into the exact bytes
// persisted on disk and inverts that conversion on read. Two reversible
// transforms are available: authenticated encryption (AES-256-GCM) and
// DEFLATE compression. Encryption takes strict precedence: while a key is
// configured, compression is neither applied nor expected.
package transform

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/klauspost/compress/flate"
)

const (
	// KeySize is the fixed width of the AEAD secret in bytes.
	KeySize = 32

	// NonceSize is the width of the random nonce prepended to ciphertext.
	NonceSize = 12
)

// Errors returned by the transform pipeline.
var (
	// ErrInvalidKeyLength is returned when an encryption key exceeds KeySize.
	ErrInvalidKeyLength = errors.New("invalid encryption key length")

	// ErrEncryption is returned when sealing a document fails.
	ErrEncryption = errors.New("encryption error")

	// ErrDecryption is returned when opening a document fails, including
	// authentication-tag mismatch after tampering.
	ErrDecryption = errors.New("decryption error")

	// ErrInvalidEncoding is returned when recovered bytes are not valid UTF-8.
	ErrInvalidEncoding = errors.New("stored data is not valid UTF-8")
)

type mode int

const (
	modePlain mode = iota
	modeCompressed
	modeEncrypted
)

// Pipeline wraps and unwraps document bytes according to the store
// configuration it was built from. The zero value is the plain pipeline.
type Pipeline struct {
	mode mode
	key  []byte
}

// New builds a pipeline. A non-empty key selects encryption regardless of
// the compress flag; otherwise the flag selects compression.
func New(key []byte, compress bool) Pipeline {
	switch {
	case len(key) > 0:
		return Pipeline{mode: modeEncrypted, key: key}
	case compress:
		return Pipeline{mode: modeCompressed}
	default:
		return Pipeline{mode: modePlain}
	}
}

// PadKey converts an arbitrary key string into the fixed-width secret.
// Keys longer than KeySize are rejected with ErrInvalidKeyLength; shorter
// keys are right-padded with zero bytes. This is deliberate zero-padding,
// not a KDF.
func PadKey(key string) ([]byte, error) {
	if len(key) > KeySize {
		return nil, ErrInvalidKeyLength
	}
	padded := make([]byte, KeySize)
	copy(padded, key)
	return padded, nil
}

// Wrap converts a serialized document into its on-disk representation.
func (p Pipeline) Wrap(plaintext []byte) ([]byte, error) {
	switch p.mode {
	case modeEncrypted:
		return p.encrypt(plaintext)
	case modeCompressed:
		return compress(plaintext)
	default:
		return plaintext, nil
	}
}

// Unwrap inverts Wrap. For the encrypted and plain modes the recovered
// bytes must be valid UTF-8.
func (p Pipeline) Unwrap(data []byte) ([]byte, error) {
	switch p.mode {
	case modeEncrypted:
		plain, err := p.decrypt(data)
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(plain) {
			return nil, ErrInvalidEncoding
		}
		return plain, nil
	case modeCompressed:
		return decompress(data)
	default:
		if !utf8.Valid(data) {
			return nil, ErrInvalidEncoding
		}
		return data, nil
	}
}

// encrypt seals plaintext under a fresh random nonce and returns
// nonce || ciphertext+tag.
func (p Pipeline) encrypt(plaintext []byte) ([]byte, error) {
	aead, err := p.aead()
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryption, err)
	}
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// decrypt splits data into nonce and ciphertext+tag and opens it.
func (p Pipeline) decrypt(data []byte) ([]byte, error) {
	aead, err := p.aead()
	if err != nil {
		return nil, err
	}
	if len(data) < NonceSize {
		return nil, ErrDecryption
	}
	nonce, ciphertext := data[:NonceSize], data[NonceSize:]
	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryption
	}
	return plain, nil
}

func (p Pipeline) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(p.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryption, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryption, err)
	}
	return aead, nil
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, fmt.Errorf("create compressor: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("compress document: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("flush compressor: %w", err)
	}
	return buf.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decompress document: %w", err)
	}
	return out, nil
}
