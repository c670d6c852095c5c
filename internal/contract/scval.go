package contract

import (
	"fmt"

	"github.com/stellar/go/strkey"
	"github.com/stellar/go/xdr"
)

// Type converters between Go values and Soroban ScVal host values.

// AddressToScVal converts a "G..." account or "C..." contract address to
// an address ScVal.
func AddressToScVal(address string) (xdr.ScVal, error) {
	scAddr, err := scAddress(address)
	if err != nil {
		return xdr.ScVal{}, err
	}
	return xdr.ScVal{Type: xdr.ScValTypeScvAddress, Address: &scAddr}, nil
}

func scAddress(address string) (xdr.ScAddress, error) {
	if strkey.IsValidEd25519PublicKey(address) {
		accountID, err := xdr.AddressToAccountId(address)
		if err != nil {
			return xdr.ScAddress{}, fmt.Errorf("invalid account address %q: %w", address, err)
		}
		return xdr.ScAddress{
			Type:      xdr.ScAddressTypeScAddressTypeAccount,
			AccountId: &accountID,
		}, nil
	}

	raw, err := strkey.Decode(strkey.VersionByteContract, address)
	if err != nil {
		return xdr.ScAddress{}, fmt.Errorf("invalid address %q: %w", address, err)
	}
	var contractID xdr.Hash
	copy(contractID[:], raw)
	return xdr.ScAddress{
		Type:       xdr.ScAddressTypeScAddressTypeContract,
		ContractId: &contractID,
	}, nil
}

// U64ToScVal converts a number to a u64 ScVal.
func U64ToScVal(v uint64) xdr.ScVal {
	u := xdr.Uint64(v)
	return xdr.ScVal{Type: xdr.ScValTypeScvU64, U64: &u}
}

// U128ToScVal converts a number to a u128 ScVal.
func U128ToScVal(v uint64) xdr.ScVal {
	parts := xdr.UInt128Parts{Hi: 0, Lo: xdr.Uint64(v)}
	return xdr.ScVal{Type: xdr.ScValTypeScvU128, U128: &parts}
}

// I128ToScVal converts a non-negative number to an i128 ScVal.
func I128ToScVal(v int64) xdr.ScVal {
	parts := xdr.Int128Parts{Hi: 0, Lo: xdr.Uint64(v)}
	return xdr.ScVal{Type: xdr.ScValTypeScvI128, I128: &parts}
}

// OptionAddressToScVal encodes Option<Address>: an empty string is None
// (void), anything else is the inner address value.
func OptionAddressToScVal(address string) (xdr.ScVal, error) {
	if address == "" {
		return xdr.ScVal{Type: xdr.ScValTypeScvVoid}, nil
	}
	return AddressToScVal(address)
}

// ScValToU64 extracts a u64 (accepting u32 widening) from a return value.
func ScValToU64(v xdr.ScVal) (uint64, error) {
	switch v.Type {
	case xdr.ScValTypeScvU64:
		return uint64(*v.U64), nil
	case xdr.ScValTypeScvU32:
		return uint64(*v.U32), nil
	}
	return 0, fmt.Errorf("expected u64 ScVal, got %s", v.Type)
}

// scValToAmount extracts a u128 amount that must fit in uint64 (amounts on
// this contract are stroop counts, far below 2^64).
func scValToAmount(v xdr.ScVal) (uint64, error) {
	if v.Type != xdr.ScValTypeScvU128 || v.U128 == nil {
		return 0, fmt.Errorf("expected u128 ScVal, got %s", v.Type)
	}
	if v.U128.Hi != 0 {
		return 0, fmt.Errorf("u128 amount overflows uint64")
	}
	return uint64(v.U128.Lo), nil
}

func scValToAddress(v xdr.ScVal) (string, error) {
	if v.Type != xdr.ScValTypeScvAddress || v.Address == nil {
		return "", fmt.Errorf("expected address ScVal, got %s", v.Type)
	}
	switch v.Address.Type {
	case xdr.ScAddressTypeScAddressTypeAccount:
		return v.Address.AccountId.Address(), nil
	case xdr.ScAddressTypeScAddressTypeContract:
		return strkey.Encode(strkey.VersionByteContract, v.Address.ContractId[:])
	}
	return "", fmt.Errorf("unsupported ScAddress type %d", v.Address.Type)
}

// Campaign is the decoded on-chain campaign record, amounts still in
// minor units.
type Campaign struct {
	Creator  string
	Goal     uint64
	Pledged  uint64
	Deadline uint64
	State    uint32
	Backers  int
}

// DecodeCampaign decodes the symbol-keyed map the contract returns for
// get_campaign.
func DecodeCampaign(v xdr.ScVal) (*Campaign, error) {
	if v.Type != xdr.ScValTypeScvMap || v.Map == nil || *v.Map == nil {
		return nil, fmt.Errorf("expected map ScVal, got %s", v.Type)
	}

	campaign := &Campaign{}
	for _, entry := range **v.Map {
		if entry.Key.Type != xdr.ScValTypeScvSymbol || entry.Key.Sym == nil {
			continue
		}
		var err error
		switch string(*entry.Key.Sym) {
		case "creator":
			campaign.Creator, err = scValToAddress(entry.Val)
		case "goal":
			campaign.Goal, err = scValToAmount(entry.Val)
		case "pledged":
			campaign.Pledged, err = scValToAmount(entry.Val)
		case "deadline":
			campaign.Deadline, err = ScValToU64(entry.Val)
		case "state":
			var state uint64
			state, err = scValToState(entry.Val)
			campaign.State = uint32(state)
		case "backers":
			if entry.Val.Type == xdr.ScValTypeScvMap && entry.Val.Map != nil && *entry.Val.Map != nil {
				campaign.Backers = len(**entry.Val.Map)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode campaign field %s: %w", string(*entry.Key.Sym), err)
		}
	}
	return campaign, nil
}

// scValToState decodes the contract's C-like state enum (encoded as u32).
func scValToState(v xdr.ScVal) (uint64, error) {
	if v.Type == xdr.ScValTypeScvU32 && v.U32 != nil {
		return uint64(*v.U32), nil
	}
	return ScValToU64(v)
}
