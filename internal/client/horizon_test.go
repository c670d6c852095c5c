package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddress = "GDMT3KZ3Q4S5YKPBCI7BGJB5H3ST7GF2IFRJVU34WEIE5UX5NZTW5FTF"

func TestHorizonAccount(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/"+testAddress, r.URL.Path)
		w.Write([]byte(`{
			"account_id": "` + testAddress + `",
			"sequence": "123456789",
			"balances": [
				{"balance": "100.5000000", "asset_type": "native"},
				{"balance": "42.0000000", "asset_type": "credit_alphanum4", "asset_code": "USDC", "asset_issuer": "GISSUER"}
			]
		}`))
	}))
	defer server.Close()

	horizon := NewHorizonClient(server.URL, server.URL)
	balance, err := horizon.Account(context.Background(), testAddress)
	require.NoError(t, err)

	assert.Equal(t, testAddress, balance.PublicKey)
	assert.Equal(t, "123456789", balance.Sequence)
	assert.Equal(t, "100.5000000", balance.Native)
	require.Len(t, balance.Assets, 2)
	assert.Equal(t, "XLM", balance.Assets[0].AssetCode)
	assert.Equal(t, "USDC", balance.Assets[1].AssetCode)
}

func TestHorizonAccountNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	horizon := NewHorizonClient(server.URL, server.URL)

	_, err := horizon.Account(context.Background(), testAddress)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	exists, err := horizon.AccountExists(context.Background(), testAddress)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestHorizonAccountServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	horizon := NewHorizonClient(server.URL, server.URL)

	_, err := horizon.Account(context.Background(), testAddress)
	var reqErr *RequestError
	assert.ErrorAs(t, err, &reqErr)
}

func TestFund(t *testing.T) {
	t.Parallel()

	t.Run("funds new account", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, testAddress, r.URL.Query().Get("addr"))
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		horizon := NewHorizonClient(server.URL, server.URL)
		assert.NoError(t, horizon.Fund(context.Background(), testAddress))
	})

	t.Run("already funded is success", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		horizon := NewHorizonClient(server.URL, server.URL)
		assert.NoError(t, horizon.Fund(context.Background(), testAddress))
	})

	t.Run("friendbot down", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		horizon := NewHorizonClient(server.URL, server.URL)
		var reqErr *RequestError
		assert.ErrorAs(t, horizon.Fund(context.Background(), testAddress), &reqErr)
	})
}
