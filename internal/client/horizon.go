package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"spw/internal/model"
)

// HorizonClient reads account snapshots from a Horizon server and funds
// testnet accounts through friendbot.
type HorizonClient struct {
	horizonURL   string
	friendbotURL string
	client       *http.Client
}

// NewHorizonClient creates a new Horizon client
func NewHorizonClient(horizonURL, friendbotURL string) *HorizonClient {
	return &HorizonClient{
		horizonURL:   horizonURL,
		friendbotURL: friendbotURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// horizonAccount is the subset of the Horizon account resource we consume.
type horizonAccount struct {
	AccountID string `json:"account_id"`
	Sequence  string `json:"sequence"`
	Balances  []struct {
		Balance     string `json:"balance"`
		AssetType   string `json:"asset_type"`
		AssetCode   string `json:"asset_code"`
		AssetIssuer string `json:"asset_issuer"`
	} `json:"balances"`
}

// Account fetches the balances snapshot for an address. Returns
// ErrAccountNotFound for unfunded addresses.
func (c *HorizonClient) Account(ctx context.Context, address string) (*model.Balance, error) {
	reqURL := fmt.Sprintf("%s/accounts/%s", c.horizonURL, url.PathEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build account request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &RequestError{Method: "horizon.account", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrAccountNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &RequestError{Method: "horizon.account", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var account horizonAccount
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return nil, fmt.Errorf("failed to decode account: %w", err)
	}

	balance := &model.Balance{
		PublicKey: account.AccountID,
		Sequence:  account.Sequence,
		Assets:    make([]model.AssetBalance, 0, len(account.Balances)),
	}
	for _, b := range account.Balances {
		code := b.AssetCode
		if b.AssetType == "native" {
			code = "XLM"
			balance.Native = b.Balance
		}
		balance.Assets = append(balance.Assets, model.AssetBalance{
			AssetType: b.AssetType,
			AssetCode: code,
			Issuer:    b.AssetIssuer,
			Balance:   b.Balance,
		})
	}
	return balance, nil
}

// AccountExists reports whether the address resolves to a funded account.
func (c *HorizonClient) AccountExists(ctx context.Context, address string) (bool, error) {
	_, err := c.Account(ctx, address)
	if err == ErrAccountNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Fund asks friendbot to fund a testnet account.
func (c *HorizonClient) Fund(ctx context.Context, address string) error {
	reqURL := fmt.Sprintf("%s?addr=%s", c.friendbotURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build friendbot request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &RequestError{Method: "friendbot", Err: err}
	}
	defer resp.Body.Close()

	// Friendbot returns 400 for already-funded accounts; treat as success
	// since the goal (a funded account) is met.
	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusBadRequest {
		return nil
	}
	return &RequestError{Method: "friendbot", Err: fmt.Errorf("status %d", resp.StatusCode)}
}
