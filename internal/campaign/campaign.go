// Package campaign maps crowdfunding domain operations onto contract
// invocations, converting between human amounts and ledger minor units.
package campaign

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cosmossdk.io/log"
	"github.com/stellar/go/xdr"

	"spw/internal/common"
	"spw/internal/contract"
	"spw/internal/model"
)

// ErrInvalidAmount is returned for zero or unparseable pledge/goal amounts.
var ErrInvalidAmount = errors.New("amount must be greater than zero")

// campaignNotFound is the contract's CampaignNotFound error (#3) as it
// appears in simulation diagnostics.
const campaignNotFound = "Error(Contract, #3)"

// defaultPerkAmount is one perk token with 6 decimals, used when a perk
// threshold is configured without an explicit token amount.
const defaultPerkAmount = int64(1000000)

// Invoker drives contract functions through their transaction lifecycle.
// Satisfied by contract.Orchestrator.
type Invoker interface {
	Execute(ctx context.Context, caller, functionName string, args []xdr.ScVal) (xdr.ScVal, error)
	Query(ctx context.Context, caller, functionName string, args []xdr.ScVal) (xdr.ScVal, error)
}

// Service is the contract call facade for the crowdfunding contract.
type Service struct {
	invoker     Invoker
	decimals    int
	nativeAsset string
	logger      log.Logger
}

// NewService creates a campaign facade. minorUnitScale is the minor units
// per whole token (10^7 on Stellar); nativeAsset is the asset contract
// used when a request names none.
func NewService(invoker Invoker, minorUnitScale int64, nativeAsset string, logger log.Logger) (*Service, error) {
	decimals, err := common.DecimalsForScale(minorUnitScale)
	if err != nil {
		return nil, fmt.Errorf("invalid minor unit scale %d: %w", minorUnitScale, err)
	}
	return &Service{
		invoker:     invoker,
		decimals:    decimals,
		nativeAsset: nativeAsset,
		logger:      logger,
	}, nil
}

// CreateCampaign creates a campaign with the goal in human units and the
// deadline as an offset in hours from now. Returns the new campaign id.
func (s *Service) CreateCampaign(ctx context.Context, creator, goal string, deadlineHours int64, perk *model.PerkRequest) (uint64, error) {
	goalMinor, err := common.ParseMinor(goal, s.decimals)
	if err != nil || goalMinor == 0 {
		return 0, ErrInvalidAmount
	}
	if deadlineHours <= 0 {
		return 0, fmt.Errorf("deadline must be in the future")
	}
	deadline := time.Now().Unix() + deadlineHours*3600

	creatorVal, err := contract.AddressToScVal(creator)
	if err != nil {
		return 0, err
	}

	args := []xdr.ScVal{
		creatorVal,
		contract.U128ToScVal(goalMinor),
		contract.U64ToScVal(uint64(deadline)),
	}

	perkArgs, err := s.perkArgs(perk)
	if err != nil {
		return 0, err
	}
	args = append(args, perkArgs...)

	result, err := s.invoker.Execute(ctx, creator, "create_campaign", args)
	if err != nil {
		return 0, err
	}

	campaignID, err := contract.ScValToU64(result)
	if err != nil {
		return 0, fmt.Errorf("unexpected create_campaign return value: %w", err)
	}

	s.logger.Info("campaign created", "id", campaignID, "creator", creator, "goal", goal)
	return campaignID, nil
}

// perkArgs marshals the optional perk as the contract's fixed trailing
// triple: threshold, Option<Address>, amount. An absent perk is the
// explicit zero / None / zero encoding.
func (s *Service) perkArgs(perk *model.PerkRequest) ([]xdr.ScVal, error) {
	none, err := contract.OptionAddressToScVal("")
	if err != nil {
		return nil, err
	}

	if perk == nil || perk.Threshold == "" {
		return []xdr.ScVal{contract.U128ToScVal(0), none, contract.I128ToScVal(0)}, nil
	}

	thresholdMinor, err := common.ParseMinor(perk.Threshold, s.decimals)
	if err != nil {
		return nil, fmt.Errorf("invalid perk threshold: %w", err)
	}
	if thresholdMinor == 0 {
		return []xdr.ScVal{contract.U128ToScVal(0), none, contract.I128ToScVal(0)}, nil
	}

	asset, err := contract.OptionAddressToScVal(perk.AssetAddress)
	if err != nil {
		return nil, err
	}

	amount := perk.Amount
	if amount <= 0 {
		amount = defaultPerkAmount
	}
	return []xdr.ScVal{contract.U128ToScVal(thresholdMinor), asset, contract.I128ToScVal(amount)}, nil
}

// Pledge pledges amount (human units) to a campaign.
func (s *Service) Pledge(ctx context.Context, backer string, campaignID uint64, amount, assetID string) error {
	amountMinor, err := common.ParseMinor(amount, s.decimals)
	if err != nil || amountMinor == 0 {
		return ErrInvalidAmount
	}
	if assetID == "" {
		assetID = s.nativeAsset
	}

	backerVal, err := contract.AddressToScVal(backer)
	if err != nil {
		return err
	}
	assetVal, err := contract.AddressToScVal(assetID)
	if err != nil {
		return err
	}

	args := []xdr.ScVal{
		backerVal,
		contract.U64ToScVal(campaignID),
		contract.U128ToScVal(amountMinor),
		assetVal,
	}

	if _, err := s.invoker.Execute(ctx, backer, "pledge", args); err != nil {
		return err
	}

	s.logger.Info("pledged", "campaign", campaignID, "backer", backer, "amount", amount)
	return nil
}

// ClaimFunds transfers the escrowed funds of a successful campaign to its
// creator.
func (s *Service) ClaimFunds(ctx context.Context, creator string, campaignID uint64, assetID string) error {
	return s.campaignAction(ctx, "claim_funds", creator, campaignID, assetID)
}

// WithdrawRefund returns a backer's pledge from a failed campaign.
func (s *Service) WithdrawRefund(ctx context.Context, backer string, campaignID uint64, assetID string) error {
	return s.campaignAction(ctx, "withdraw_refund", backer, campaignID, assetID)
}

// campaignAction runs the shared (actor, campaignId, assetId) call shape.
func (s *Service) campaignAction(ctx context.Context, functionName, actor string, campaignID uint64, assetID string) error {
	if assetID == "" {
		assetID = s.nativeAsset
	}

	actorVal, err := contract.AddressToScVal(actor)
	if err != nil {
		return err
	}
	assetVal, err := contract.AddressToScVal(assetID)
	if err != nil {
		return err
	}

	args := []xdr.ScVal{actorVal, contract.U64ToScVal(campaignID), assetVal}
	if _, err := s.invoker.Execute(ctx, actor, functionName, args); err != nil {
		return err
	}

	s.logger.Info("campaign action confirmed", "function", functionName, "campaign", campaignID)
	return nil
}

// GetCampaign reads a campaign without submitting anything: get_campaign
// mutates no state, so a dry run already carries the answer. Returns
// (nil, nil) when the contract reports the campaign does not exist -
// callers use that to detect the end of a sequential id scan.
func (s *Service) GetCampaign(ctx context.Context, caller string, campaignID uint64) (*model.CampaignView, error) {
	result, err := s.invoker.Query(ctx, caller, "get_campaign", []xdr.ScVal{contract.U64ToScVal(campaignID)})
	if err != nil {
		var simErr *contract.SimulationError
		if errors.As(err, &simErr) && strings.Contains(simErr.Reason, campaignNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if result.Type == xdr.ScValTypeScvVoid {
		return nil, nil
	}

	campaign, err := contract.DecodeCampaign(result)
	if err != nil {
		return nil, fmt.Errorf("failed to decode campaign %d: %w", campaignID, err)
	}

	return &model.CampaignView{
		ID:       campaignID,
		Creator:  campaign.Creator,
		Goal:     common.FormatMinor(campaign.Goal, s.decimals),
		Pledged:  common.FormatMinor(campaign.Pledged, s.decimals),
		Deadline: int64(campaign.Deadline),
		State:    model.CampaignState(campaign.State).String(),
		Backers:  campaign.Backers,
	}, nil
}

// DiscoverCampaigns scans sequential campaign ids from zero, stopping
// after maxMisses consecutive not-founds. This costs O(N) dry-run calls
// and is only appropriate for low campaign counts; an indexer should take
// over well before that matters.
func (s *Service) DiscoverCampaigns(ctx context.Context, caller string, maxMisses int) ([]model.CampaignView, error) {
	if maxMisses <= 0 {
		maxMisses = 3
	}

	campaigns := make([]model.CampaignView, 0, 8)
	misses := 0
	for id := uint64(0); misses < maxMisses; id++ {
		view, err := s.GetCampaign(ctx, caller, id)
		if err != nil {
			return nil, err
		}
		if view == nil {
			misses++
			continue
		}
		misses = 0
		campaigns = append(campaigns, *view)
	}
	return campaigns, nil
}
