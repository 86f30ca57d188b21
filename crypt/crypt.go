// Package crypt implements the symmetric cipher scheme FRITZ!OS applies to
// individual secret values: AES-256-CBC over a blob carrying its own IV,
// with a small structural envelope around the plaintext. The blob and
// envelope layouts are firmware contracts.
package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"

	"github.com/samber/oops"

	"github.com/go-fritz/go-decoder/internal"
)

// KeySize is the cipher key length in bytes (AES-256).
const KeySize = 32

// Blob layout: iv (16 bytes) || ciphertext (n * 16 bytes, n >= 1).
// Plaintext layout: random (4 bytes) || value length (4 bytes, big endian)
// || value || zero padding to the block boundary. String values carry a
// trailing NUL inside the counted length.
const envelopeSize = 8

// Decrypt decrypts a secret blob and unwraps the value it carries.
// It fails with code MALFORMED_INPUT when the key or blob geometry is
// wrong, and with code BAD_PADDING when decryption yields a plaintext
// whose envelope does not check out (the wrong-key signal).
func Decrypt(blob, key []byte) ([]byte, error) {
	if !internal.ValidateKeySize(key, KeySize) {
		return nil, oops.
			Code("MALFORMED_INPUT").
			In("crypt").
			With("key_length", len(key)).
			Errorf("cipher key must be %d bytes, got %d", KeySize, len(key))
	}
	if len(blob) < 2*aes.BlockSize || (len(blob)-aes.BlockSize)%aes.BlockSize != 0 {
		return nil, oops.
			Code("MALFORMED_INPUT").
			In("crypt").
			With("blob_length", len(blob)).
			Errorf("secret blob must be an IV plus whole cipher blocks, got %d bytes", len(blob))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, oops.
			Code("MALFORMED_INPUT").
			In("crypt").
			Wrapf(err, "failed to initialize cipher")
	}

	iv := blob[:aes.BlockSize]
	plain := make([]byte, len(blob)-aes.BlockSize)
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, blob[aes.BlockSize:])

	return unwrap(plain)
}

// unwrap validates the plaintext envelope and extracts the value bytes.
// A failed check means the blob was encrypted under a different key or is
// corrupt; callers treat it like a padding error.
func unwrap(plain []byte) ([]byte, error) {
	size := binary.BigEndian.Uint32(plain[4:envelopeSize])
	if int64(size) > int64(len(plain)-envelopeSize) {
		return nil, oops.
			Code("BAD_PADDING").
			In("crypt").
			With("declared_size", size).
			With("available", len(plain)-envelopeSize).
			Errorf("plaintext envelope declares %d value bytes but only %d are present", size, len(plain)-envelopeSize)
	}
	value := plain[envelopeSize : envelopeSize+int(size)]
	// String values are stored NUL-terminated; the terminator is not part
	// of the recovered value.
	if size > 0 && value[size-1] == 0 {
		value = value[:size-1]
	}
	return value, nil
}

// Seal is the inverse of Decrypt: it wraps value in the plaintext
// envelope, pads to the block boundary and encrypts under a random IV.
// The IV is prepended so the result decrypts standalone.
func Seal(value, key []byte) ([]byte, error) {
	if !internal.ValidateKeySize(key, KeySize) {
		return nil, oops.
			Code("MALFORMED_INPUT").
			In("crypt").
			With("key_length", len(key)).
			Errorf("cipher key must be %d bytes, got %d", KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, oops.
			Code("MALFORMED_INPUT").
			In("crypt").
			Wrapf(err, "failed to initialize cipher")
	}

	// The counted length includes the NUL terminator appended below.
	counted := len(value) + 1
	plainSize := envelopeSize + counted
	if tail := plainSize % aes.BlockSize; tail != 0 {
		plainSize += aes.BlockSize - tail
	}

	plain := make([]byte, plainSize)
	random, err := internal.RandomBytes(4)
	if err != nil {
		return nil, oops.
			Code("MALFORMED_INPUT").
			In("crypt").
			Wrapf(err, "failed to generate envelope prefix")
	}
	copy(plain, random)
	binary.BigEndian.PutUint32(plain[4:envelopeSize], uint32(counted))
	copy(plain[envelopeSize:], value)

	iv, err := internal.RandomBytes(aes.BlockSize)
	if err != nil {
		return nil, oops.
			Code("MALFORMED_INPUT").
			In("crypt").
			Wrapf(err, "failed to generate IV")
	}

	blob := make([]byte, aes.BlockSize+plainSize)
	copy(blob, iv)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(blob[aes.BlockSize:], plain)
	internal.SecureZero(plain)
	return blob, nil
}
