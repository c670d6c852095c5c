package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"spw/internal/campaign"
	"spw/internal/client"
	"spw/internal/contract"
	"spw/internal/keys"
	"spw/internal/model"
	"spw/internal/wallet"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps a core error to an HTTP status plus a stable machine
// code. The error taxonomy must survive this boundary so callers can tell
// retryable from terminal from indeterminate.
func writeError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: code})
}

func classify(err error) (int, string) {
	switch {
	// Input errors - caller's fault, never retried
	case errors.Is(err, wallet.ErrPasswordTooShort):
		return http.StatusBadRequest, "PASSWORD_TOO_SHORT"
	case errors.Is(err, keys.ErrInvalidSecret):
		return http.StatusBadRequest, "INVALID_SECRET"
	case errors.Is(err, wallet.ErrInvalidPublicKey):
		return http.StatusBadRequest, "INVALID_PUBLIC_KEY"
	case errors.Is(err, campaign.ErrInvalidAmount):
		return http.StatusBadRequest, "INVALID_AMOUNT"

	// Custody errors - state violation, never retried
	case errors.Is(err, wallet.ErrWrongPassword):
		return http.StatusUnauthorized, "WRONG_PASSWORD"
	case errors.Is(err, wallet.ErrWalletLocked):
		return http.StatusForbidden, "WALLET_LOCKED"
	case errors.Is(err, wallet.ErrReadOnlyWallet):
		return http.StatusForbidden, "READ_ONLY"
	case errors.Is(err, wallet.ErrNoWallet):
		return http.StatusNotFound, "NO_WALLET"

	case errors.Is(err, client.ErrAccountNotFound):
		return http.StatusNotFound, "ACCOUNT_NOT_FOUND"
	}

	var accountErr *contract.AccountLoadError
	if errors.As(err, &accountErr) {
		if errors.Is(accountErr.Err, client.ErrAccountNotFound) {
			return http.StatusNotFound, "ACCOUNT_NOT_FOUND"
		}
		return http.StatusBadGateway, "ACCOUNT_LOAD_FAILED"
	}

	// Logical contract rejection - surfaced as-is, never retried
	var simErr *contract.SimulationError
	if errors.As(err, &simErr) {
		return http.StatusUnprocessableEntity, "SIMULATION_FAILED"
	}

	var subErr *contract.SubmissionError
	if errors.As(err, &subErr) {
		return http.StatusBadGateway, "SUBMISSION_FAILED"
	}

	var failedErr *contract.TransactionFailedError
	if errors.As(err, &failedErr) {
		return http.StatusBadGateway, "TX_FAILED"
	}

	// Indeterminate: distinct from failure, the transaction may yet land.
	var timeoutErr *contract.PollTimeoutError
	if errors.As(err, &timeoutErr) {
		return http.StatusGatewayTimeout, "POLL_TIMEOUT"
	}

	// Transient network fault - eligible for caller-driven retry
	if contract.IsTransient(err) {
		return http.StatusBadGateway, "NETWORK_ERROR"
	}

	return http.StatusInternalServerError, "INTERNAL"
}
