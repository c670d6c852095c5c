package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"spw/internal/campaign"
	"spw/internal/client"
	"spw/internal/contract"
	"spw/internal/keys"
	"spw/internal/wallet"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"password too short", wallet.ErrPasswordTooShort, http.StatusBadRequest, "PASSWORD_TOO_SHORT"},
		{"invalid secret", keys.ErrInvalidSecret, http.StatusBadRequest, "INVALID_SECRET"},
		{"invalid public key", wallet.ErrInvalidPublicKey, http.StatusBadRequest, "INVALID_PUBLIC_KEY"},
		{"invalid amount", campaign.ErrInvalidAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
		{"wrong password", wallet.ErrWrongPassword, http.StatusUnauthorized, "WRONG_PASSWORD"},
		{"wallet locked", wallet.ErrWalletLocked, http.StatusForbidden, "WALLET_LOCKED"},
		{"read only", wallet.ErrReadOnlyWallet, http.StatusForbidden, "READ_ONLY"},
		{"no wallet", wallet.ErrNoWallet, http.StatusNotFound, "NO_WALLET"},
		{"account not found", client.ErrAccountNotFound, http.StatusNotFound, "ACCOUNT_NOT_FOUND"},
		{
			"unfunded caller",
			&contract.AccountLoadError{Address: "GABC", Err: client.ErrAccountNotFound},
			http.StatusNotFound, "ACCOUNT_NOT_FOUND",
		},
		{
			"account load transport fault",
			&contract.AccountLoadError{Address: "GABC", Err: errors.New("boom")},
			http.StatusBadGateway, "ACCOUNT_LOAD_FAILED",
		},
		{
			"simulation failure",
			&contract.SimulationError{Function: "pledge", Reason: "rejected"},
			http.StatusUnprocessableEntity, "SIMULATION_FAILED",
		},
		{
			"submission rejected",
			&contract.SubmissionError{Status: "ERROR", Reason: "rejected"},
			http.StatusBadGateway, "SUBMISSION_FAILED",
		},
		{
			"transaction failed",
			&contract.TransactionFailedError{Hash: "deadbeef", Status: "FAILED"},
			http.StatusBadGateway, "TX_FAILED",
		},
		{
			// Indeterminate outcome must not look like a failure.
			"poll timeout",
			&contract.PollTimeoutError{Hash: "deadbeef"},
			http.StatusGatewayTimeout, "POLL_TIMEOUT",
		},
		{
			"transient network fault",
			&client.RequestError{Method: "sendTransaction", Err: errors.New("connection refused")},
			http.StatusBadGateway, "NETWORK_ERROR",
		},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			status, code := classify(tt.err)
			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedCode, code)
		})
	}
}
