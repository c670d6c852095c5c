package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	t.Parallel()

	secrets := []string{
		"SCZANGBA5YHTNYVVV4C3U252E2B6P6F5T3U6MM63WBSBZATAQI3EBTQ4",
		"short",
		"",
	}
	for _, secret := range secrets {
		blob, err := Encrypt([]byte(secret), []byte("password123"))
		require.NoError(t, err)

		plaintext, err := Decrypt(blob, []byte("password123"))
		require.NoError(t, err)
		assert.Equal(t, secret, string(plaintext))
	}
}

func TestDecryptWrongPassword(t *testing.T) {
	t.Parallel()

	blob, err := Encrypt([]byte("super secret"), []byte("password123"))
	require.NoError(t, err)

	plaintext, err := Decrypt(blob, []byte("wrongpass"))
	assert.Nil(t, plaintext)
	assert.ErrorIs(t, err, ErrDecryptFailed)
}

func TestDecryptCorruptBlob(t *testing.T) {
	t.Parallel()

	t.Run("not base64", func(t *testing.T) {
		t.Parallel()

		_, err := Decrypt("not-a-blob!!!", []byte("password123"))
		assert.ErrorIs(t, err, ErrDecryptFailed)
	})
	t.Run("tampered ciphertext", func(t *testing.T) {
		t.Parallel()

		blob, err := Encrypt([]byte("super secret"), []byte("password123"))
		require.NoError(t, err)

		// Flip one character; GCM must refuse to open it.
		tampered := []byte(blob)
		if tampered[10] == 'A' {
			tampered[10] = 'B'
		} else {
			tampered[10] = 'A'
		}
		_, err = Decrypt(string(tampered), []byte("password123"))
		assert.ErrorIs(t, err, ErrDecryptFailed)
	})
}

func TestEncryptEmptyPassword(t *testing.T) {
	t.Parallel()

	_, err := Encrypt([]byte("data"), nil)
	assert.Error(t, err)
}

func TestEncryptUniqueBlobs(t *testing.T) {
	t.Parallel()

	// Fresh salt and nonce per call: same input must not produce the
	// same ciphertext twice.
	first, err := Encrypt([]byte("data"), []byte("password123"))
	require.NoError(t, err)
	second, err := Encrypt([]byte("data"), []byte("password123"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
