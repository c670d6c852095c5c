package model

// WalletType identifies how the wallet was set up.
type WalletType string

const (
	WalletTypeCreated  WalletType = "created"
	WalletTypeImported WalletType = "imported"
	WalletTypeReadOnly WalletType = "readonly"
)

// CreateWalletRequest represents request for POST /wallet/create
type CreateWalletRequest struct {
	Name     string `json:"name"`
	Password string `json:"password" binding:"required"`
}

// CreateWalletResponse represents response for POST /wallet/create.
// Secret is returned exactly once for user backup and is never
// retrievable again through this API.
type CreateWalletResponse struct {
	PublicKey string `json:"publicKey"`
	Secret    string `json:"secret"`
	QR        string `json:"qr"` // base64 PNG of the public key
}

// ImportWalletRequest represents request for POST /wallet/import
type ImportWalletRequest struct {
	Secret   string `json:"secret" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

// ConnectReadOnlyRequest represents request for POST /wallet/connect-readonly
type ConnectReadOnlyRequest struct {
	PublicKey string `json:"publicKey" binding:"required"`
	Name      string `json:"name"`
}

// ConnectResponse represents response for import/connect operations
type ConnectResponse struct {
	PublicKey string `json:"publicKey"`
	ReadOnly  bool   `json:"readonly,omitempty"`
	Funded    bool   `json:"funded"`
}

// UnlockRequest represents request for POST /wallet/unlock
type UnlockRequest struct {
	Password string `json:"password" binding:"required"`
}

// WalletInfo represents response for GET /wallet/info
type WalletInfo struct {
	PublicKey  string     `json:"publicKey"`
	WalletType WalletType `json:"walletType"`
	WalletName string     `json:"walletName"`
	IsLocked   bool       `json:"isLocked"`
	IsReadOnly bool       `json:"isReadOnly"`
}
