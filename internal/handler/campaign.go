package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"spw/internal/campaign"
	"spw/internal/model"
	"spw/internal/wallet"
)

// CampaignHandler exposes the campaign facade over HTTP. The caller
// identity for every operation is the connected wallet.
type CampaignHandler struct {
	campaigns *campaign.Service
	wallet    *wallet.Service
}

// NewCampaignHandler creates a new CampaignHandler
func NewCampaignHandler(campaigns *campaign.Service, walletService *wallet.Service) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns, wallet: walletService}
}

// caller resolves the connected wallet's public key.
func (h *CampaignHandler) caller(w http.ResponseWriter) (string, bool) {
	publicKey := h.wallet.PublicKey()
	if publicKey == "" {
		writeError(w, wallet.ErrNoWallet)
		return "", false
	}
	return publicKey, true
}

// Create handles POST /campaign/create
// @Summary      Create a crowdfunding campaign
// @Tags         campaign
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreateCampaignRequest  true  "Goal, deadline offset and optional perk"
// @Success      200      {object}  model.CreateCampaignResponse
// @Router       /campaign/create [post]
func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	creator, ok := h.caller(w)
	if !ok {
		return
	}

	campaignID, err := h.campaigns.CreateCampaign(r.Context(), creator, req.Goal, req.DeadlineHours, req.Perk)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.CreateCampaignResponse{CampaignID: campaignID})
}

// Pledge handles POST /campaign/pledge
// @Summary      Pledge to a campaign
// @Tags         campaign
// @Accept       json
// @Produce      json
// @Param        request  body      model.PledgeRequest  true  "Campaign id, amount and optional asset"
// @Success      200      {object}  model.ActionResponse
// @Router       /campaign/pledge [post]
func (h *CampaignHandler) Pledge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.PledgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	backer, ok := h.caller(w)
	if !ok {
		return
	}

	if err := h.campaigns.Pledge(r.Context(), backer, req.CampaignID, req.Amount, req.AssetID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.ActionResponse{Success: true})
}

// Claim handles POST /campaign/claim
// @Summary      Claim funds from a successful campaign
// @Tags         campaign
// @Accept       json
// @Produce      json
// @Param        request  body      model.CampaignActionRequest  true  "Campaign id and optional asset"
// @Success      200      {object}  model.ActionResponse
// @Router       /campaign/claim [post]
func (h *CampaignHandler) Claim(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.CampaignActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	creator, ok := h.caller(w)
	if !ok {
		return
	}

	if err := h.campaigns.ClaimFunds(r.Context(), creator, req.CampaignID, req.AssetID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.ActionResponse{Success: true})
}

// Refund handles POST /campaign/refund
// @Summary      Withdraw a refund from a failed campaign
// @Tags         campaign
// @Accept       json
// @Produce      json
// @Param        request  body      model.CampaignActionRequest  true  "Campaign id and optional asset"
// @Success      200      {object}  model.ActionResponse
// @Router       /campaign/refund [post]
func (h *CampaignHandler) Refund(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.CampaignActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	backer, ok := h.caller(w)
	if !ok {
		return
	}

	if err := h.campaigns.WithdrawRefund(r.Context(), backer, req.CampaignID, req.AssetID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.ActionResponse{Success: true})
}

// Get handles GET /campaign
// @Summary      Get one campaign by id
// @Tags         campaign
// @Produce      json
// @Param        id   query     int  true  "Campaign id"
// @Success      200  {object}  model.CampaignView
// @Router       /campaign [get]
func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.ParseUint(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "invalid campaign id"})
		return
	}

	caller, ok := h.caller(w)
	if !ok {
		return
	}

	view, err := h.campaigns.GetCampaign(r.Context(), caller, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if view == nil {
		writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: "campaign not found", Code: "CAMPAIGN_NOT_FOUND"})
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// List handles GET /campaign/list
// @Summary      List campaigns by scanning sequential ids
// @Description  O(N) dry-run scan, intended for low campaign counts
// @Tags         campaign
// @Produce      json
// @Success      200  {object}  model.CampaignListResponse
// @Router       /campaign/list [get]
func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	caller, ok := h.caller(w)
	if !ok {
		return
	}

	campaigns, err := h.campaigns.DiscoverCampaigns(r.Context(), caller, 0)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.CampaignListResponse{Campaigns: campaigns})
}
