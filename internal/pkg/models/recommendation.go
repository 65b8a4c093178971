package models

import "time"

// Verdict is the engine's binary output
type Verdict string

const (
	VerdictApprove Verdict = "approve"
	VerdictDeny    Verdict = "deny"
)

// DenyReason names the rule or failure behind a verdict
type DenyReason string

const (
	ReasonNone             DenyReason = ""
	ReasonPriorChargeback  DenyReason = "prior_chargeback"
	ReasonVelocity         DenyReason = "velocity"
	ReasonAmount           DenyReason = "amount"
	ReasonInvalidTimestamp DenyReason = "invalid_timestamp"
	ReasonInvalid          DenyReason = "invalid_transaction"
	ReasonDuplicate        DenyReason = "duplicate_transaction"
	ReasonStoreUnavailable DenyReason = "store_unavailable"
	ReasonTimeout          DenyReason = "timeout"
	ReasonLockUnavailable  DenyReason = "lock_unavailable"
	ReasonInternal         DenyReason = "internal_error"
)

// Decision is the result of evaluating one transaction
type Decision struct {
	TransactionID int64      `json:"transaction_id"`
	UserID        int64      `json:"user_id"`
	Verdict       Verdict    `json:"recommendation"`
	Reason        DenyReason `json:"reason,omitempty"`
	EvaluatedAt   time.Time  `json:"evaluated_at"`
}

// Approved reports whether the verdict is approve
func (d Decision) Approved() bool {
	return d.Verdict == VerdictApprove
}

// Recommendation is the outbound response of the decision endpoint
type Recommendation struct {
	TransactionID  int64   `json:"transaction_id"`
	Recommendation Verdict `json:"recommendation"`
	Error          string  `json:"error,omitempty"`
}
