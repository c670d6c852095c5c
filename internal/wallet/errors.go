package wallet

import "errors"

var (
	// ErrNoWallet is returned when no wallet record exists yet.
	ErrNoWallet = errors.New("no wallet found, create or import a wallet first")

	// ErrPasswordTooShort is returned when a wallet password is under the minimum length.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")

	// ErrInvalidPublicKey is returned when a public identifier fails format validation.
	ErrInvalidPublicKey = errors.New("invalid public key format")

	// ErrWrongPassword is returned when unlock fails. Deliberately covers both
	// a wrong password and corrupt stored data so the API is not a password oracle.
	ErrWrongPassword = errors.New("failed to unlock wallet: wrong password")

	// ErrWalletLocked is returned when signing is requested while locked.
	ErrWalletLocked = errors.New("wallet is locked")

	// ErrReadOnlyWallet is returned when a read-only wallet is asked to sign or lock.
	ErrReadOnlyWallet = errors.New("wallet is read-only and cannot sign")
)
