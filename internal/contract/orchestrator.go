// Package contract drives invocations of the crowdfunding contract through
// their full lifecycle: build, simulate, prepare, sign, submit and poll.
package contract

import (
	"context"
	"fmt"
	"time"

	"cosmossdk.io/log"
	"github.com/stellar/go/txnbuild"
	"github.com/stellar/go/xdr"

	"spw/internal/client"
)

// LedgerGateway is the network surface the orchestrator drives. Satisfied
// by client.SorobanClient; tests substitute a fake.
type LedgerGateway interface {
	LoadAccount(ctx context.Context, address string) (*txnbuild.SimpleAccount, error)
	Simulate(ctx context.Context, txB64 string) (*client.SimulateResult, error)
	Send(ctx context.Context, signedB64 string) (*client.SendResult, error)
	GetTransaction(ctx context.Context, hash string) (*client.TransactionStatus, error)
}

// Signer produces a signed transaction. Satisfied by wallet.Service.
type Signer interface {
	SignTransaction(tx *txnbuild.Transaction) (*txnbuild.Transaction, error)
}

// Options tunes one orchestrator instance.
type Options struct {
	ContractAddress string
	BaseFee         int64         // inclusion fee per operation, stroops
	TxValidity      time.Duration // transaction time bounds
	PollInterval    time.Duration // delay between status polls
	PollTimeout     time.Duration // overall wait for a terminal status
}

// Orchestrator executes contract functions against the ledger. One attempt
// progresses strictly forward: Built, Simulated, Prepared, Signed,
// Submitted, then Pending until terminal. Nothing from a failed attempt is
// ever reused.
type Orchestrator struct {
	ledger LedgerGateway
	signer Signer
	opts   Options
	logger log.Logger
}

// NewOrchestrator creates an orchestrator for the configured contract.
func NewOrchestrator(ledger LedgerGateway, signer Signer, opts Options, logger log.Logger) *Orchestrator {
	if opts.BaseFee == 0 {
		opts.BaseFee = txnbuild.MinBaseFee
	}
	if opts.TxValidity == 0 {
		opts.TxValidity = 180 * time.Second
	}
	if opts.PollInterval == 0 {
		opts.PollInterval = 100 * time.Millisecond
	}
	if opts.PollTimeout == 0 {
		opts.PollTimeout = opts.TxValidity
	}
	return &Orchestrator{ledger: ledger, signer: signer, opts: opts, logger: logger}
}

// Execute runs functionName on the contract as caller and returns the
// decoded return value (void ScVal when the function returns nothing).
//
// A submission rejected for a stale sequence number is retried exactly
// once from account reload: a concurrent transaction from the same caller
// may have advanced the sequence between load and submit. Every other
// failure is surfaced immediately.
func (o *Orchestrator) Execute(ctx context.Context, caller, functionName string, args []xdr.ScVal) (xdr.ScVal, error) {
	result, err := o.attempt(ctx, caller, functionName, args)
	if isStaleSequence(err) {
		o.logger.Info("stale sequence number, retrying once", "function", functionName, "caller", caller)
		return o.attempt(ctx, caller, functionName, args)
	}
	return result, err
}

// Query runs functionName as a read-only dry run: build and simulate only,
// no fees paid, no signature, no network mutation.
func (o *Orchestrator) Query(ctx context.Context, caller, functionName string, args []xdr.ScVal) (xdr.ScVal, error) {
	account, err := o.ledger.LoadAccount(ctx, caller)
	if err != nil {
		return xdr.ScVal{}, &AccountLoadError{Address: caller, Err: err}
	}

	sim, err := o.simulate(ctx, account.Sequence, caller, functionName, args)
	if err != nil {
		return xdr.ScVal{}, err
	}

	if sim.Result == "" {
		return xdr.ScVal{Type: xdr.ScValTypeScvVoid}, nil
	}
	var result xdr.ScVal
	if err := xdr.SafeUnmarshalBase64(sim.Result, &result); err != nil {
		return xdr.ScVal{}, fmt.Errorf("failed to decode simulation result: %w", err)
	}
	return result, nil
}

// attempt drives one full transaction lifecycle.
func (o *Orchestrator) attempt(ctx context.Context, caller, functionName string, args []xdr.ScVal) (xdr.ScVal, error) {
	// Load: current sequence number for the caller.
	account, err := o.ledger.LoadAccount(ctx, caller)
	if err != nil {
		return xdr.ScVal{}, &AccountLoadError{Address: caller, Err: err}
	}

	// Build + simulate: dry-run for resource fees and auth.
	o.logger.Info("simulating", "function", functionName)
	sim, err := o.simulate(ctx, account.Sequence, caller, functionName, args)
	if err != nil {
		return xdr.ScVal{}, err
	}

	// Prepare: merge simulated resource fees into a fresh envelope. This
	// must happen before signing, since the signature commits to the fee.
	prepared, err := o.buildTx(account.Sequence, caller, functionName, args, sim)
	if err != nil {
		return xdr.ScVal{}, fmt.Errorf("failed to prepare transaction: %w", err)
	}

	// Sign: no network mutation has happened yet, aborting here is safe.
	o.logger.Info("signing", "function", functionName)
	signed, err := o.signer.SignTransaction(prepared)
	if err != nil {
		return xdr.ScVal{}, err
	}

	signedB64, err := signed.Base64()
	if err != nil {
		return xdr.ScVal{}, fmt.Errorf("failed to encode signed transaction: %w", err)
	}

	// Submit.
	o.logger.Info("submitting", "function", functionName)
	sent, err := o.ledger.Send(ctx, signedB64)
	if err != nil {
		return xdr.ScVal{}, err
	}

	switch sent.Status {
	case client.SendStatusPending, client.SendStatusDuplicate:
		// Fall through to polling. DUPLICATE means this envelope was
		// already submitted; its fate is whatever the first copy's is.
	case client.SendStatusTryAgainLater:
		return xdr.ScVal{}, &SubmissionError{Status: sent.Status, Reason: "network asked to try again later"}
	default:
		return xdr.ScVal{}, submissionError(sent)
	}

	// Poll until terminal.
	return o.poll(ctx, functionName, sent.Hash)
}

// simulate builds an unsigned envelope and dry-runs it.
func (o *Orchestrator) simulate(ctx context.Context, sequence int64, caller, functionName string, args []xdr.ScVal) (*client.SimulateResult, error) {
	tx, err := o.buildTx(sequence, caller, functionName, args, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction: %w", err)
	}
	txB64, err := tx.Base64()
	if err != nil {
		return nil, fmt.Errorf("failed to encode transaction: %w", err)
	}

	sim, err := o.ledger.Simulate(ctx, txB64)
	if err != nil {
		return nil, err
	}
	if sim.Error != "" {
		return nil, &SimulationError{Function: functionName, Reason: sim.Error}
	}
	return sim, nil
}

// buildTx assembles an envelope with one contract invocation. When sim is
// non-nil the simulated soroban resources, auth entries and resource fee
// are merged in (the prepare step).
func (o *Orchestrator) buildTx(sequence int64, caller, functionName string, args []xdr.ScVal, sim *client.SimulateResult) (*txnbuild.Transaction, error) {
	contractAddress, err := scAddress(o.opts.ContractAddress)
	if err != nil {
		return nil, err
	}

	invoke := &txnbuild.InvokeHostFunction{
		HostFunction: xdr.HostFunction{
			Type: xdr.HostFunctionTypeHostFunctionTypeInvokeContract,
			InvokeContract: &xdr.InvokeContractArgs{
				ContractAddress: contractAddress,
				FunctionName:    xdr.ScSymbol(functionName),
				Args:            args,
			},
		},
		SourceAccount: caller,
	}

	fee := o.opts.BaseFee
	if sim != nil {
		var sorobanData xdr.SorobanTransactionData
		if err := xdr.SafeUnmarshalBase64(sim.TransactionData, &sorobanData); err != nil {
			return nil, fmt.Errorf("failed to decode soroban transaction data: %w", err)
		}
		invoke.Ext = xdr.TransactionExt{V: 1, SorobanData: &sorobanData}

		for _, authB64 := range sim.Auth {
			var entry xdr.SorobanAuthorizationEntry
			if err := xdr.SafeUnmarshalBase64(authB64, &entry); err != nil {
				return nil, fmt.Errorf("failed to decode auth entry: %w", err)
			}
			invoke.Auth = append(invoke.Auth, entry)
		}

		fee += sim.MinResourceFee
	}

	// Each build gets its own account copy so the sequence increment never
	// leaks between the simulate and prepare envelopes.
	source := txnbuild.SimpleAccount{AccountID: caller, Sequence: sequence}

	return txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount:        &source,
		IncrementSequenceNum: true,
		Operations:           []txnbuild.Operation{invoke},
		BaseFee:              fee,
		Preconditions: txnbuild.Preconditions{
			TimeBounds: txnbuild.NewTimeout(int64(o.opts.TxValidity.Seconds())),
		},
	})
}

// poll queries transaction status at a fixed interval until a terminal
// status or the poll timeout. NOT_FOUND is an expected transient state
// while the transaction makes it into a ledger.
func (o *Orchestrator) poll(ctx context.Context, functionName, hash string) (xdr.ScVal, error) {
	o.logger.Info("waiting for confirmation", "function", functionName, "hash", hash)
	deadline := time.Now().Add(o.opts.PollTimeout)

	for {
		status, err := o.ledger.GetTransaction(ctx, hash)
		if err != nil {
			return xdr.ScVal{}, err
		}

		switch status.Status {
		case client.TxStatusSuccess:
			o.logger.Info("transaction confirmed", "function", functionName, "hash", hash)
			return extractReturnValue(status.ResultMetaXdr)
		case client.TxStatusFailed:
			return xdr.ScVal{}, &TransactionFailedError{Hash: hash, Status: status.Status}
		}

		if time.Now().After(deadline) {
			// Outcome unknown: the transaction may still land. This must
			// never be reported as a failure.
			return xdr.ScVal{}, &PollTimeoutError{Hash: hash, Timeout: o.opts.PollTimeout}
		}

		select {
		case <-ctx.Done():
			return xdr.ScVal{}, ctx.Err()
		case <-time.After(o.opts.PollInterval):
		}
	}
}

// extractReturnValue pulls the host function return value out of the
// transaction meta. Void when the function returns nothing.
func extractReturnValue(metaB64 string) (xdr.ScVal, error) {
	void := xdr.ScVal{Type: xdr.ScValTypeScvVoid}
	if metaB64 == "" {
		return void, nil
	}

	var meta xdr.TransactionMeta
	if err := xdr.SafeUnmarshalBase64(metaB64, &meta); err != nil {
		return xdr.ScVal{}, fmt.Errorf("failed to decode transaction meta: %w", err)
	}
	if meta.V == 3 && meta.V3 != nil && meta.V3.SorobanMeta != nil {
		return meta.V3.SorobanMeta.ReturnValue, nil
	}
	return void, nil
}

// submissionError decodes the error result of a rejected submission.
func submissionError(sent *client.SendResult) *SubmissionError {
	subErr := &SubmissionError{Status: sent.Status, Reason: "transaction rejected by network"}
	if sent.ErrorResultXdr == "" {
		return subErr
	}

	var result xdr.TransactionResult
	if err := xdr.SafeUnmarshalBase64(sent.ErrorResultXdr, &result); err != nil {
		return subErr
	}
	subErr.Code = result.Result.Code.String()
	if result.Result.Code == xdr.TransactionResultCodeTxBadSeq {
		subErr.Reason = "stale sequence number"
	}
	return subErr
}

// isStaleSequence reports whether err is a txBadSeq submission rejection,
// the one race the orchestrator absorbs itself.
func isStaleSequence(err error) bool {
	if err == nil {
		return false
	}
	subErr, ok := err.(*SubmissionError)
	return ok && subErr.Code == xdr.TransactionResultCodeTxBadSeq.String()
}
