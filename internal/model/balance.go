package model

// AssetBalance is one balance line of an account snapshot.
type AssetBalance struct {
	AssetType string `json:"asset_type"`
	AssetCode string `json:"asset_code"`
	Issuer    string `json:"asset_issuer,omitempty"`
	Balance   string `json:"balance"`
}

// Balance represents response for GET /wallet/balance. Read-only snapshot,
// refreshed on demand; the core never caches it.
type Balance struct {
	PublicKey string         `json:"publicKey"`
	Native    string         `json:"native"` // XLM, human units
	Assets    []AssetBalance `json:"balances"`
	Sequence  string         `json:"sequence"`
}
