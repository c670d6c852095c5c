package handler

import (
	"encoding/json"
	"net/http"

	"spw/internal/model"
	"spw/internal/wallet"
)

// WalletHandler exposes the wallet custody service over HTTP.
type WalletHandler struct {
	wallet *wallet.Service
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(service *wallet.Service) *WalletHandler {
	return &WalletHandler{wallet: service}
}

// Create handles POST /wallet/create
// @Summary      Create new wallet
// @Description  Generates a keypair, stores the secret encrypted and returns it once for backup
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreateWalletRequest  true  "Wallet name and password"
// @Success      200      {object}  model.CreateWalletResponse
// @Router       /wallet/create [post]
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.CreateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.wallet.Create(req.Name, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Import handles POST /wallet/import
// @Summary      Import wallet from secret seed
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ImportWalletRequest  true  "Secret seed, password and name"
// @Success      200      {object}  model.ConnectResponse
// @Router       /wallet/import [post]
func (h *WalletHandler) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ImportWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.wallet.Import(r.Context(), req.Secret, req.Password, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ConnectReadOnly handles POST /wallet/connect-readonly
// @Summary      Connect a read-only wallet by public key
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ConnectReadOnlyRequest  true  "Public key and name"
// @Success      200      {object}  model.ConnectResponse
// @Router       /wallet/connect-readonly [post]
func (h *WalletHandler) ConnectReadOnly(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ConnectReadOnlyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.wallet.ConnectReadOnly(r.Context(), req.PublicKey, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Unlock handles POST /wallet/unlock
// @Summary      Unlock the wallet with its password
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.UnlockRequest  true  "Wallet password"
// @Success      200      {object}  model.WalletInfo
// @Router       /wallet/unlock [post]
func (h *WalletHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.UnlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.wallet.Unlock(req.Password); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.wallet.Info())
}

// Lock handles POST /wallet/lock
// @Summary      Lock the wallet, discarding key material from memory
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.WalletInfo
// @Router       /wallet/lock [post]
func (h *WalletHandler) Lock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	if err := h.wallet.Lock(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.wallet.Info())
}

// Disconnect handles POST /wallet/disconnect
// @Summary      Disconnect the wallet and erase its stored record
// @Tags         wallet
// @Produce      json
// @Success      200
// @Router       /wallet/disconnect [post]
func (h *WalletHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	if err := h.wallet.Disconnect(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Info handles GET /wallet/info
// @Summary      Get current wallet session state
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.WalletInfo
// @Router       /wallet/info [get]
func (h *WalletHandler) Info(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.wallet.Info())
}

// Balance handles GET /wallet/balance
// @Summary      Get account balances
// @Description  Works while locked; reading balances needs no key material
// @Tags         wallet
// @Produce      json
// @Param        publicKey  query     string  false  "Address to query, defaults to the connected wallet"
// @Success      200        {object}  model.Balance
// @Router       /wallet/balance [get]
func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	balance, err := h.wallet.Balance(r.Context(), r.URL.Query().Get("publicKey"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balance)
}

// Fund handles POST /wallet/fund
// @Summary      Fund a testnet account via friendbot
// @Tags         wallet
// @Produce      json
// @Param        publicKey  query  string  false  "Address to fund, defaults to the connected wallet"
// @Success      200
// @Router       /wallet/fund [post]
func (h *WalletHandler) Fund(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	if err := h.wallet.Fund(r.Context(), r.URL.Query().Get("publicKey")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
