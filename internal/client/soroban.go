package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/stellar/go/txnbuild"
	"github.com/stellar/go/xdr"
)

// Submission statuses reported by sendTransaction.
const (
	SendStatusPending       = "PENDING"
	SendStatusDuplicate     = "DUPLICATE"
	SendStatusTryAgainLater = "TRY_AGAIN_LATER"
	SendStatusError         = "ERROR"
)

// Transaction statuses reported by getTransaction. NOT_FOUND is an expected
// transient state while the transaction is still making it into a ledger.
const (
	TxStatusNotFound = "NOT_FOUND"
	TxStatusSuccess  = "SUCCESS"
	TxStatusFailed   = "FAILED"
)

// ErrAccountNotFound is returned when the requested account has no ledger entry.
var ErrAccountNotFound = errors.New("account not found on ledger")

// RequestError is a transport-level RPC failure (connection refused,
// timeout, unexpected HTTP status). These are the retryable kind.
type RequestError struct {
	Method string
	Err    error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("rpc %s failed: %v", e.Method, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// RPCError is an error object returned by the JSON-RPC endpoint itself.
type RPCError struct {
	Method  string
	Code    int
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc %s error %d: %s", e.Method, e.Code, e.Message)
}

// SorobanClient is a thin JSON-RPC 2.0 binding to a Soroban RPC endpoint.
// It keeps no state between calls beyond the request id counter.
type SorobanClient struct {
	endpoint string
	client   *http.Client
	nextID   atomic.Int64
}

// NewSorobanClient creates a Soroban RPC client for the given endpoint.
func NewSorobanClient(endpoint string) *SorobanClient {
	return &SorobanClient{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// call performs one JSON-RPC request and decodes the result into out.
func (c *SorobanClient) call(ctx context.Context, method string, params, out any) error {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return &RequestError{Method: method, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &RequestError{Method: method, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return &RequestError{Method: method, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if rpcResp.Error != nil {
		return &RPCError{Method: method, Code: rpcResp.Error.Code, Message: rpcResp.Error.Message}
	}

	if out != nil {
		if err := json.Unmarshal(rpcResp.Result, out); err != nil {
			return &RequestError{Method: method, Err: fmt.Errorf("failed to decode result: %w", err)}
		}
	}
	return nil
}

// GetHealth checks that the RPC node is up and synced.
func (c *SorobanClient) GetHealth(ctx context.Context) error {
	var result struct {
		Status string `json:"status"`
	}
	if err := c.call(ctx, "getHealth", nil, &result); err != nil {
		return err
	}
	if result.Status != "healthy" {
		return &RequestError{Method: "getHealth", Err: fmt.Errorf("node status %q", result.Status)}
	}
	return nil
}

// LoadAccount fetches the account ledger entry and returns a sequence-bearing
// source account for transaction building. Returns ErrAccountNotFound for
// unfunded addresses.
func (c *SorobanClient) LoadAccount(ctx context.Context, address string) (*txnbuild.SimpleAccount, error) {
	accountID, err := xdr.AddressToAccountId(address)
	if err != nil {
		return nil, fmt.Errorf("invalid account address: %w", err)
	}

	key := xdr.LedgerKey{
		Type:    xdr.LedgerEntryTypeAccount,
		Account: &xdr.LedgerKeyAccount{AccountId: accountID},
	}
	keyB64, err := xdr.MarshalBase64(key)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ledger key: %w", err)
	}

	params := struct {
		Keys []string `json:"keys"`
	}{Keys: []string{keyB64}}

	var result struct {
		Entries []struct {
			XDR string `json:"xdr"`
		} `json:"entries"`
	}
	if err := c.call(ctx, "getLedgerEntries", params, &result); err != nil {
		return nil, err
	}
	if len(result.Entries) == 0 {
		return nil, ErrAccountNotFound
	}

	var entry xdr.LedgerEntryData
	if err := xdr.SafeUnmarshalBase64(result.Entries[0].XDR, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode account entry: %w", err)
	}
	if entry.Account == nil {
		return nil, fmt.Errorf("ledger entry is not an account")
	}

	return &txnbuild.SimpleAccount{
		AccountID: address,
		Sequence:  int64(entry.Account.SeqNum),
	}, nil
}

// SimulateResult is the dry-run outcome of a transaction. When Error is
// non-empty the host rejected the invocation and the other fields are
// meaningless.
type SimulateResult struct {
	Error           string
	TransactionData string   // base64 SorobanTransactionData with resource fees
	MinResourceFee  int64    // stroops
	Auth            []string // base64 SorobanAuthorizationEntry per op
	Result          string   // base64 ScVal return value, empty if none
	LatestLedger    uint32
}

// Simulate performs a dry-run of the base64 transaction envelope to obtain
// resource fee estimates and, for read calls, the return value.
func (c *SorobanClient) Simulate(ctx context.Context, txB64 string) (*SimulateResult, error) {
	params := struct {
		Transaction string `json:"transaction"`
	}{Transaction: txB64}

	var result struct {
		Error           string `json:"error"`
		TransactionData string `json:"transactionData"`
		MinResourceFee  string `json:"minResourceFee"`
		Results         []struct {
			Auth []string `json:"auth"`
			XDR  string   `json:"xdr"`
		} `json:"results"`
		LatestLedger uint32 `json:"latestLedger"`
	}
	if err := c.call(ctx, "simulateTransaction", params, &result); err != nil {
		return nil, err
	}

	sim := &SimulateResult{
		Error:           result.Error,
		TransactionData: result.TransactionData,
		LatestLedger:    result.LatestLedger,
	}
	if result.MinResourceFee != "" {
		fee, err := strconv.ParseInt(result.MinResourceFee, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse minResourceFee %q: %w", result.MinResourceFee, err)
		}
		sim.MinResourceFee = fee
	}
	if len(result.Results) > 0 {
		sim.Auth = result.Results[0].Auth
		sim.Result = result.Results[0].XDR
	}
	return sim, nil
}

// SendResult is the immediate outcome of submitting a signed transaction.
type SendResult struct {
	Status         string
	Hash           string
	ErrorResultXdr string
}

// Send submits a signed base64 transaction envelope to the network.
func (c *SorobanClient) Send(ctx context.Context, signedB64 string) (*SendResult, error) {
	params := struct {
		Transaction string `json:"transaction"`
	}{Transaction: signedB64}

	var result struct {
		Status         string `json:"status"`
		Hash           string `json:"hash"`
		ErrorResultXdr string `json:"errorResultXdr"`
	}
	if err := c.call(ctx, "sendTransaction", params, &result); err != nil {
		return nil, err
	}
	return &SendResult{
		Status:         result.Status,
		Hash:           result.Hash,
		ErrorResultXdr: result.ErrorResultXdr,
	}, nil
}

// TransactionStatus is one poll of a submitted transaction. One shot, the
// caller loops.
type TransactionStatus struct {
	Status        string
	ResultMetaXdr string
	Ledger        uint32
}

// GetTransaction fetches the current status of a submitted transaction by hash.
func (c *SorobanClient) GetTransaction(ctx context.Context, hash string) (*TransactionStatus, error) {
	params := struct {
		Hash string `json:"hash"`
	}{Hash: hash}

	var result struct {
		Status        string `json:"status"`
		ResultMetaXdr string `json:"resultMetaXdr"`
		Ledger        uint32 `json:"ledger"`
	}
	if err := c.call(ctx, "getTransaction", params, &result); err != nil {
		return nil, err
	}
	return &TransactionStatus{
		Status:        result.Status,
		ResultMetaXdr: result.ResultMetaXdr,
		Ledger:        result.Ledger,
	}, nil
}
