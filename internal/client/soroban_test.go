package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stellar/go/xdr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rpcServer fakes a JSON-RPC endpoint answering each method with a canned
// result payload.
func rpcServer(t *testing.T, results map[string]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			JSONRPC string `json:"jsonrpc"`
			Method  string `json:"method"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2.0", req.JSONRPC)

		result, ok := results[req.Method]
		if !ok {
			w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"method not found"}}`))
			return
		}
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":` + result + `}`))
	}))
}

func TestGetHealth(t *testing.T) {
	t.Parallel()

	server := rpcServer(t, map[string]string{"getHealth": `{"status":"healthy"}`})
	defer server.Close()

	soroban := NewSorobanClient(server.URL)
	assert.NoError(t, soroban.GetHealth(context.Background()))
}

func TestGetHealthUnhealthy(t *testing.T) {
	t.Parallel()

	server := rpcServer(t, map[string]string{"getHealth": `{"status":"syncing"}`})
	defer server.Close()

	soroban := NewSorobanClient(server.URL)
	var reqErr *RequestError
	assert.ErrorAs(t, soroban.GetHealth(context.Background()), &reqErr)
}

func TestRPCErrorSurfaced(t *testing.T) {
	t.Parallel()

	server := rpcServer(t, nil)
	defer server.Close()

	soroban := NewSorobanClient(server.URL)
	err := soroban.GetHealth(context.Background())

	var rpcErr *RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, -32601, rpcErr.Code)
}

func TestLoadAccount(t *testing.T) {
	t.Parallel()

	accountID, err := xdr.AddressToAccountId(testAddress)
	require.NoError(t, err)
	entry := xdr.LedgerEntryData{
		Type: xdr.LedgerEntryTypeAccount,
		Account: &xdr.AccountEntry{
			AccountId: accountID,
			SeqNum:    xdr.SequenceNumber(77),
		},
	}
	entryB64, err := xdr.MarshalBase64(entry)
	require.NoError(t, err)

	server := rpcServer(t, map[string]string{
		"getLedgerEntries": `{"entries":[{"xdr":"` + entryB64 + `"}]}`,
	})
	defer server.Close()

	soroban := NewSorobanClient(server.URL)
	account, err := soroban.LoadAccount(context.Background(), testAddress)
	require.NoError(t, err)
	assert.Equal(t, testAddress, account.AccountID)
	assert.Equal(t, int64(77), account.Sequence)
}

func TestLoadAccountUnfunded(t *testing.T) {
	t.Parallel()

	server := rpcServer(t, map[string]string{"getLedgerEntries": `{"entries":[]}`})
	defer server.Close()

	soroban := NewSorobanClient(server.URL)
	_, err := soroban.LoadAccount(context.Background(), testAddress)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestLoadAccountInvalidAddress(t *testing.T) {
	t.Parallel()

	soroban := NewSorobanClient("http://unused.invalid")
	_, err := soroban.LoadAccount(context.Background(), "not-an-address")
	assert.Error(t, err)
}

func TestSimulate(t *testing.T) {
	t.Parallel()

	server := rpcServer(t, map[string]string{
		"simulateTransaction": `{
			"transactionData": "somedata",
			"minResourceFee": "58181",
			"results": [{"auth": ["authentry"], "xdr": "returnvalue"}],
			"latestLedger": 12345
		}`,
	})
	defer server.Close()

	soroban := NewSorobanClient(server.URL)
	sim, err := soroban.Simulate(context.Background(), "envelope")
	require.NoError(t, err)

	assert.Empty(t, sim.Error)
	assert.Equal(t, "somedata", sim.TransactionData)
	assert.Equal(t, int64(58181), sim.MinResourceFee)
	assert.Equal(t, []string{"authentry"}, sim.Auth)
	assert.Equal(t, "returnvalue", sim.Result)
	assert.Equal(t, uint32(12345), sim.LatestLedger)
}

func TestSimulateHostError(t *testing.T) {
	t.Parallel()

	server := rpcServer(t, map[string]string{
		"simulateTransaction": `{"error": "HostError: Error(Contract, #3)"}`,
	})
	defer server.Close()

	soroban := NewSorobanClient(server.URL)
	sim, err := soroban.Simulate(context.Background(), "envelope")
	require.NoError(t, err)
	assert.Equal(t, "HostError: Error(Contract, #3)", sim.Error)
}

func TestSend(t *testing.T) {
	t.Parallel()

	server := rpcServer(t, map[string]string{
		"sendTransaction": `{"status": "PENDING", "hash": "deadbeef"}`,
	})
	defer server.Close()

	soroban := NewSorobanClient(server.URL)
	sent, err := soroban.Send(context.Background(), "signedenvelope")
	require.NoError(t, err)
	assert.Equal(t, SendStatusPending, sent.Status)
	assert.Equal(t, "deadbeef", sent.Hash)
}

func TestGetTransaction(t *testing.T) {
	t.Parallel()

	server := rpcServer(t, map[string]string{
		"getTransaction": `{"status": "SUCCESS", "resultMetaXdr": "meta", "ledger": 99}`,
	})
	defer server.Close()

	soroban := NewSorobanClient(server.URL)
	status, err := soroban.GetTransaction(context.Background(), "deadbeef")
	require.NoError(t, err)
	assert.Equal(t, TxStatusSuccess, status.Status)
	assert.Equal(t, "meta", status.ResultMetaXdr)
	assert.Equal(t, uint32(99), status.Ledger)
}

func TestTransportFaultIsRequestError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	soroban := NewSorobanClient(server.URL)
	err := soroban.GetHealth(context.Background())

	var reqErr *RequestError
	assert.ErrorAs(t, err, &reqErr)
}
