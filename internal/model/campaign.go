package model

// CampaignState mirrors the contract-side state enum.
type CampaignState uint32

const (
	CampaignStateActive     CampaignState = 0
	CampaignStateSuccessful CampaignState = 1
	CampaignStateFailed     CampaignState = 2
)

// String returns the display name of the state.
func (s CampaignState) String() string {
	switch s {
	case CampaignStateActive:
		return "Active"
	case CampaignStateSuccessful:
		return "Successful"
	case CampaignStateFailed:
		return "Failed"
	}
	return "Unknown"
}

// PerkRequest is the optional perk configuration of a new campaign.
// Threshold is the minimum total pledge (human units) that earns the perk,
// AssetAddress the reward token contract, Amount the raw token amount.
type PerkRequest struct {
	Threshold    string `json:"threshold"`
	AssetAddress string `json:"assetAddress"`
	Amount       int64  `json:"amount"`
}

// CreateCampaignRequest represents request for POST /campaign/create
type CreateCampaignRequest struct {
	Goal          string       `json:"goal" binding:"required"` // human units, e.g. "500"
	DeadlineHours int64        `json:"deadlineHours" binding:"required"`
	Perk          *PerkRequest `json:"perk,omitempty"`
}

// CreateCampaignResponse represents response for POST /campaign/create
type CreateCampaignResponse struct {
	CampaignID uint64 `json:"campaignId"`
}

// PledgeRequest represents request for POST /campaign/pledge
type PledgeRequest struct {
	CampaignID uint64 `json:"campaignId"`
	Amount     string `json:"amount" binding:"required"` // human units
	AssetID    string `json:"assetId,omitempty"`         // defaults to the native asset contract
}

// CampaignActionRequest represents request for claim/refund operations
type CampaignActionRequest struct {
	CampaignID uint64 `json:"campaignId"`
	AssetID    string `json:"assetId,omitempty"`
}

// ActionResponse represents response for submit-style campaign operations
type ActionResponse struct {
	Success bool `json:"success"`
}

// CampaignView is the decoded campaign state with amounts converted back
// to human units.
type CampaignView struct {
	ID       uint64 `json:"id"`
	Creator  string `json:"creator"`
	Goal     string `json:"goal"`
	Pledged  string `json:"pledged"`
	Deadline int64  `json:"deadline"` // unix seconds
	State    string `json:"state"`
	Backers  int    `json:"backers"`
}

// CampaignListResponse represents response for GET /campaign/list
type CampaignListResponse struct {
	Campaigns []CampaignView `json:"campaigns"`
}
