// One-off: generate a wallet file offline. Prompts for a password, writes
// the encrypted .spw file and prints the address plus the one-time secret.
// Usage: WALLET_FILE_PATH=wallet.spw go run ./cmd/keygen
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cosmossdk.io/log"
	"golang.org/x/term"

	"spw/internal/model"
	"spw/internal/wallet"
)

// offlineLedger satisfies wallet.Ledger without any network access.
type offlineLedger struct{}

func (offlineLedger) Account(context.Context, string) (*model.Balance, error) {
	return nil, errors.New("keygen is offline")
}

func (offlineLedger) AccountExists(context.Context, string) (bool, error) {
	return false, nil
}

func (offlineLedger) Fund(context.Context, string) error {
	return errors.New("keygen is offline")
}

func main() {
	filePath := os.Getenv("WALLET_FILE_PATH")
	if filePath == "" {
		fmt.Fprintln(os.Stderr, "WALLET_FILE_PATH not set")
		os.Exit(1)
	}

	store, err := wallet.NewFileStore(filePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if _, err := store.Load(); err == nil {
		fmt.Fprintln(os.Stderr, "wallet file already exists, refusing to overwrite")
		os.Exit(1)
	} else if !errors.Is(err, wallet.ErrNoWallet) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	password, err := promptPassword()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer clear(password)

	// No ledger access here: keygen works fully offline.
	service := wallet.NewService(store, offlineLedger{}, "", log.NewNopLogger())
	resp, err := service.Create("My Wallet", string(password))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println("Address:", resp.PublicKey)
	fmt.Println("Secret: ", resp.Secret)
	fmt.Println()
	fmt.Println("Write the secret down now. It is not retrievable again.")
}

func promptPassword() ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run interactively to enter password")
	}
	fmt.Fprint(os.Stderr, "Enter wallet password: ")
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("password cannot be empty")
	}
	return raw, nil
}
