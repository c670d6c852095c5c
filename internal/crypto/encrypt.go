package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

const (
	// scrypt parameters for the local wallet secret box.
	//
	// N=2^15 (~32MB RAM, tens of ms) is the interactive-use parameter:
	// unlock is typed by a user per session, and the ciphertext never
	// leaves the local machine. Raise N if the wallet file is expected
	// to be synced to untrusted storage.
	scryptN      = 1 << 15
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltLen      = 32
	nonceLen     = 12
)

// secretBox is the serialized form of an encrypted secret.
// All fields are base64-encoded.
type secretBox struct {
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// Encrypt seals plaintext with a key derived from password and returns an
// opaque blob suitable for at-rest storage. AES-256-GCM authenticates the
// ciphertext, so tampering or a wrong password is detected on Decrypt.
// password must be []byte for security (caller should zero it after use)
func Encrypt(plaintext, password []byte) (string, error) {
	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}

	// Generate salt and nonce
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Derive key from password
	key, err := scrypt.Key(password, salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	// Create AES cipher
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	// Create GCM
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to create GCM: %w", err)
	}

	// Encrypt
	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	box := secretBox{
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(ciphertext),
	}

	blob, err := json.Marshal(box)
	if err != nil {
		return "", fmt.Errorf("failed to marshal secret box: %w", err)
	}

	return base64.StdEncoding.EncodeToString(blob), nil
}
