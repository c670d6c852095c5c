package contract

import (
	"fmt"
	"time"
)

// AccountLoadError means the caller's account snapshot could not be
// loaded (usually an unfunded address). Never retried automatically.
type AccountLoadError struct {
	Address string
	Err     error
}

func (e *AccountLoadError) Error() string {
	return fmt.Sprintf("failed to load account %s: %v", e.Address, e.Err)
}

func (e *AccountLoadError) Unwrap() error { return e.Err }

// SimulationError means the dry-run reported a logical contract rejection
// (precondition not met, campaign not found, ...). Not transient, never
// retried: the same call would fail the same way.
type SimulationError struct {
	Function string
	Reason   string
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("simulation of %s failed: %s", e.Function, e.Reason)
}

// SubmissionError means the network rejected the signed transaction
// outright. Code carries the decoded transaction result code when
// available (e.g. "txBadSeq").
type SubmissionError struct {
	Status string
	Code   string
	Reason string
}

func (e *SubmissionError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("submission rejected (%s): %s", e.Code, e.Reason)
	}
	return fmt.Sprintf("submission rejected (%s): %s", e.Status, e.Reason)
}

// TransactionFailedError means the transaction reached a terminal failure
// status on-ledger.
type TransactionFailedError struct {
	Hash   string
	Status string
}

func (e *TransactionFailedError) Error() string {
	return fmt.Sprintf("transaction %s failed with status %s", e.Hash, e.Status)
}

// PollTimeoutError means the poll window elapsed while the transaction was
// still pending. The outcome is INDETERMINATE, not failed: the transaction
// may yet land. Callers should re-query state using Hash before assuming
// anything.
type PollTimeoutError struct {
	Hash    string
	Timeout time.Duration
}

func (e *PollTimeoutError) Error() string {
	return fmt.Sprintf("transaction %s still pending after %s: outcome unknown", e.Hash, e.Timeout)
}
