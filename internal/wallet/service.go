// Package wallet owns the custody lifecycle of a single wallet: creation,
// import, read-only connection, encrypted persistence, lock/unlock and
// transaction signing. Key material lives only in memory while unlocked.
package wallet

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"cosmossdk.io/log"
	"github.com/skip2/go-qrcode"
	"github.com/stellar/go/keypair"
	"github.com/stellar/go/txnbuild"

	"spw/internal/crypto"
	"spw/internal/keys"
	"spw/internal/model"
)

const minPasswordLen = 8

// Ledger is the read-side network surface the wallet needs: account
// snapshots and testnet funding. Satisfied by client.HorizonClient.
type Ledger interface {
	Account(ctx context.Context, address string) (*model.Balance, error)
	AccountExists(ctx context.Context, address string) (bool, error)
	Fund(ctx context.Context, address string) error
}

// Service is the wallet custody service. One instance per logical session.
//
// The keypair is the only mutable shared state: sign reads it, lock/unlock/
// disconnect write it, and the mutex keeps a lock issued between two steps
// of an in-flight sign from tearing the keypair out from under it.
type Service struct {
	store             Store
	ledger            Ledger
	networkPassphrase string
	logger            log.Logger

	mu         sync.Mutex
	kp         *keypair.Full
	publicKey  string
	walletType model.WalletType
	walletName string
}

// NewService creates a wallet custody service over the given store and ledger.
func NewService(store Store, ledger Ledger, networkPassphrase string, logger log.Logger) *Service {
	return &Service{
		store:             store,
		ledger:            ledger,
		networkPassphrase: networkPassphrase,
		logger:            logger,
	}
}

// Create generates a new keypair, persists it encrypted and leaves the
// wallet unlocked. The secret seed is returned exactly once for backup and
// is never retrievable again through this service.
func (s *Service) Create(name, password string) (*model.CreateWalletResponse, error) {
	if len(password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}
	if name == "" {
		name = "My Wallet"
	}

	kp, err := keys.Generate()
	if err != nil {
		return nil, err
	}

	qr, err := addressQR(kp.Address())
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	secret := []byte(kp.Seed())
	defer clear(secret)
	encrypted, err := crypto.Encrypt(secret, []byte(password))
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt secret: %w", err)
	}

	record := &Record{
		WalletType:      model.WalletTypeCreated,
		PublicKey:       kp.Address(),
		EncryptedSecret: encrypted,
		WalletName:      name,
		QR:              qr,
		CreatedAt:       time.Now().Format(time.RFC3339),
	}
	if err := s.store.Save(record); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.kp = kp
	s.publicKey = kp.Address()
	s.walletType = model.WalletTypeCreated
	s.walletName = name
	s.mu.Unlock()

	s.logger.Info("wallet created", "publicKey", kp.Address())

	return &model.CreateWalletResponse{
		PublicKey: kp.Address(),
		Secret:    kp.Seed(),
		QR:        qr,
	}, nil
}

// Import stores an existing secret seed encrypted and leaves the wallet
// unlocked. The account not existing on-ledger yet is reported, not fatal:
// an unfunded address is a valid future wallet.
func (s *Service) Import(ctx context.Context, secret, password, name string) (*model.ConnectResponse, error) {
	if len(password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}
	if name == "" {
		name = "Imported Wallet"
	}

	kp, err := keys.FromSecret(secret)
	if err != nil {
		return nil, err
	}

	funded := s.verifyFunded(ctx, kp.Address())

	qr, err := addressQR(kp.Address())
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	encrypted, err := crypto.Encrypt([]byte(secret), []byte(password))
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt secret: %w", err)
	}

	record := &Record{
		WalletType:      model.WalletTypeImported,
		PublicKey:       kp.Address(),
		EncryptedSecret: encrypted,
		WalletName:      name,
		QR:              qr,
		CreatedAt:       time.Now().Format(time.RFC3339),
	}
	if err := s.store.Save(record); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.kp = kp
	s.publicKey = kp.Address()
	s.walletType = model.WalletTypeImported
	s.walletName = name
	s.mu.Unlock()

	s.logger.Info("wallet imported", "publicKey", kp.Address(), "funded", funded)

	return &model.ConnectResponse{PublicKey: kp.Address(), Funded: funded}, nil
}

// ConnectReadOnly stores a signing-incapable wallet known only by its
// public identifier. No lock concept applies to read-only wallets.
func (s *Service) ConnectReadOnly(ctx context.Context, publicKey, name string) (*model.ConnectResponse, error) {
	if !keys.IsValidPublicKey(publicKey) {
		return nil, ErrInvalidPublicKey
	}
	if name == "" {
		name = "Read-Only Wallet"
	}

	funded := s.verifyFunded(ctx, publicKey)

	qr, err := addressQR(publicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	record := &Record{
		WalletType: model.WalletTypeReadOnly,
		PublicKey:  publicKey,
		WalletName: name,
		QR:         qr,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}
	if err := s.store.Save(record); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.kp = nil
	s.publicKey = publicKey
	s.walletType = model.WalletTypeReadOnly
	s.walletName = name
	s.mu.Unlock()

	s.logger.Info("read-only wallet connected", "publicKey", publicKey, "funded", funded)

	return &model.ConnectResponse{PublicKey: publicKey, ReadOnly: true, Funded: funded}, nil
}

// verifyFunded best-effort checks the address on-ledger. Absence or a
// network failure is reportable, never fatal.
func (s *Service) verifyFunded(ctx context.Context, address string) bool {
	exists, err := s.ledger.AccountExists(ctx, address)
	if err != nil {
		s.logger.Warn("could not verify account on ledger", "publicKey", address, "err", err)
		return false
	}
	if !exists {
		s.logger.Warn("account not found on ledger (unfunded)", "publicKey", address)
	}
	return exists
}

// LoadStored resumes a persisted wallet in the locked state. Called at
// startup; read-only wallets come back immediately usable.
func (s *Service) LoadStored() (*model.WalletInfo, error) {
	record, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.kp = nil
	s.publicKey = record.PublicKey
	s.walletType = record.WalletType
	s.walletName = record.WalletName
	s.mu.Unlock()

	info := s.Info()
	return &info, nil
}

// Unlock decrypts the stored secret and restores signing capability.
// Fails with ErrWrongPassword unless the decrypted secret re-derives the
// stored public identifier.
func (s *Service) Unlock(password string) error {
	record, err := s.store.Load()
	if err != nil {
		return err
	}

	if record.WalletType == model.WalletTypeReadOnly {
		// Nothing to unlock; refresh the session from the record.
		s.mu.Lock()
		s.kp = nil
		s.publicKey = record.PublicKey
		s.walletType = record.WalletType
		s.walletName = record.WalletName
		s.mu.Unlock()
		return nil
	}

	if record.EncryptedSecret == "" {
		return ErrWrongPassword
	}

	plaintext, err := crypto.Decrypt(record.EncryptedSecret, []byte(password))
	if err != nil {
		return ErrWrongPassword
	}
	defer clear(plaintext)

	kp, err := keys.FromSecret(string(plaintext))
	if err != nil {
		return ErrWrongPassword
	}
	if kp.Address() != record.PublicKey {
		return ErrWrongPassword
	}

	s.mu.Lock()
	s.kp = kp
	s.publicKey = record.PublicKey
	s.walletType = record.WalletType
	s.walletName = record.WalletName
	s.mu.Unlock()

	s.logger.Info("wallet unlocked", "publicKey", record.PublicKey)
	return nil
}

// Lock discards the keypair from memory. Idempotent; locking an already
// locked wallet is a no-op. Read-only wallets have no lock concept.
func (s *Service) Lock() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.walletType == model.WalletTypeReadOnly {
		return ErrReadOnlyWallet
	}
	s.kp = nil
	return nil
}

// Disconnect erases the wallet record and the in-memory session.
func (s *Service) Disconnect() error {
	if err := s.store.Delete(); err != nil {
		return err
	}

	s.mu.Lock()
	s.kp = nil
	s.publicKey = ""
	s.walletType = ""
	s.walletName = ""
	s.mu.Unlock()

	s.logger.Info("wallet disconnected")
	return nil
}

// SignTransaction signs a prepared transaction with the session keypair.
// The keypair reference is captured under the mutex so a concurrent lock
// cannot tear it away mid-sign.
func (s *Service) SignTransaction(tx *txnbuild.Transaction) (*txnbuild.Transaction, error) {
	s.mu.Lock()
	kp := s.kp
	walletType := s.walletType
	publicKey := s.publicKey
	s.mu.Unlock()

	if publicKey == "" {
		return nil, ErrNoWallet
	}
	if walletType == model.WalletTypeReadOnly {
		return nil, ErrReadOnlyWallet
	}
	if kp == nil {
		return nil, ErrWalletLocked
	}

	signed, err := tx.Sign(s.networkPassphrase, kp)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	return signed, nil
}

// Info returns the current session state.
func (s *Service) Info() model.WalletInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	readOnly := s.walletType == model.WalletTypeReadOnly
	return model.WalletInfo{
		PublicKey:  s.publicKey,
		WalletType: s.walletType,
		WalletName: s.walletName,
		IsLocked:   s.kp == nil && !readOnly,
		IsReadOnly: readOnly,
	}
}

// PublicKey returns the connected wallet's public identifier, or "" when
// disconnected.
func (s *Service) PublicKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.publicKey
}

// Rename updates the wallet display name.
func (s *Service) Rename(name string) error {
	record, err := s.store.Load()
	if err != nil {
		return err
	}
	record.WalletName = name
	if err := s.store.Save(record); err != nil {
		return err
	}

	s.mu.Lock()
	s.walletName = name
	s.mu.Unlock()
	return nil
}

// Balance fetches the on-demand balance snapshot. Works while locked:
// reading balances needs no key material. address defaults to the
// connected wallet.
func (s *Service) Balance(ctx context.Context, address string) (*model.Balance, error) {
	if address == "" {
		address = s.PublicKey()
	}
	if address == "" {
		return nil, ErrNoWallet
	}
	return s.ledger.Account(ctx, address)
}

// Fund asks friendbot to fund the given address (testnet convenience).
// address defaults to the connected wallet.
func (s *Service) Fund(ctx context.Context, address string) error {
	if address == "" {
		address = s.PublicKey()
	}
	if address == "" {
		return ErrNoWallet
	}
	return s.ledger.Fund(ctx, address)
}

// addressQR renders the address as a base64 PNG QR code.
func addressQR(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", err
	}
	png, err := qr.PNG(256)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
