package wallet

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"spw/internal/model"
)

// Record is the persisted wallet state. EncryptedSecret is present iff the
// wallet is not read-only; the secret never crosses this boundary unencrypted.
type Record struct {
	WalletType      model.WalletType `json:"wallet_type"`
	PublicKey       string           `json:"public_identifier"`
	EncryptedSecret string           `json:"encrypted_secret,omitempty"`
	WalletName      string           `json:"wallet_name"`
	QR              string           `json:"QR,omitempty"`
	CreatedAt       string           `json:"createdAt,omitempty"`
}

// Store persists a single wallet record.
type Store interface {
	Load() (*Record, error) // ErrNoWallet when nothing is stored
	Save(record *Record) error
	Delete() error
}

// FileStore keeps the wallet record in a single .spw JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store. The file must have the .spw extension.
func NewFileStore(path string) (*FileStore, error) {
	if filepath.Ext(path) != ".spw" {
		return nil, fmt.Errorf("wallet file must have .spw extension")
	}
	return &FileStore{path: path}, nil
}

// Load reads the wallet record from disk.
func (s *FileStore) Load() (*Record, error) {
	fileInfo, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoWallet
		}
		return nil, fmt.Errorf("failed to stat wallet file: %w", err)
	}
	if fileInfo.Size() == 0 {
		return nil, ErrNoWallet
	}

	fileData, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read wallet file: %w", err)
	}

	// Skip UTF-8 BOM if present
	if len(fileData) >= 3 && fileData[0] == 0xEF && fileData[1] == 0xBB && fileData[2] == 0xBF {
		fileData = fileData[3:]
	}

	var record Record
	if err := json.Unmarshal(fileData, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet file: %w", err)
	}
	return &record, nil
}

// Save writes the wallet record to disk with owner-only permissions.
func (s *FileStore) Save(record *Record) error {
	fileData, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal wallet record: %w", err)
	}

	// Add UTF-8 BOM for proper display in Windows
	utf8BOM := []byte{0xEF, 0xBB, 0xBF}
	fileDataWithBOM := append(utf8BOM, fileData...)

	if err := os.WriteFile(s.path, fileDataWithBOM, 0600); err != nil {
		return fmt.Errorf("failed to write wallet file: %w", err)
	}
	return nil
}

// Delete removes the wallet record. Removing an absent file is not an error.
func (s *FileStore) Delete() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete wallet file: %w", err)
	}
	return nil
}
