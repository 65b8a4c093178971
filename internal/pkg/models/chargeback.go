package models

import "github.com/shopspring/decimal"

// ChargebackRequest marks a transaction as charged back (or not).
// It is the payload of both the internal HTTP endpoint and the NSQ feed.
type ChargebackRequest struct {
	TransactionID int64 `json:"transaction_id" validate:"required,gt=0"`
	HasChargeback bool  `json:"has_cbk"`
}

// ChargebackResult describes what applying a chargeback changed
type ChargebackResult struct {
	TransactionID int64 `json:"transaction_id"`
	UserID        int64 `json:"user_id,omitempty"`
	Found         bool  `json:"found"`
	UserFlagged   bool  `json:"user_flagged"`
}

// IngestSummary reports the outcome of a bulk historical load
type IngestSummary struct {
	Rows        int `json:"rows"`
	Inserted    int `json:"inserted"`
	Duplicates  int `json:"duplicates"`
	Skipped     int `json:"skipped"`
	Chargebacks int `json:"chargebacks"`
}

// ReplayReport is the confusion matrix of replaying labelled history through the engine
type ReplayReport struct {
	Processed      int `json:"processed"`
	Skipped        int `json:"skipped"`
	CorrectDeny    int `json:"correct_deny"`
	CorrectApprove int `json:"correct_approve"`
	FalsePositive  int `json:"false_positive"`
	FalseNegative  int `json:"false_negative"`

	// money behind the labelled frauds, split by whether they were denied
	CaughtAmount decimal.Decimal `json:"caught_amount"`
	MissedAmount decimal.Decimal `json:"missed_amount"`
}

// Precision is correct denies over all denies
func (r ReplayReport) Precision() float64 {
	denied := r.CorrectDeny + r.FalsePositive
	if denied == 0 {
		return 0
	}
	return float64(r.CorrectDeny) / float64(denied)
}

// Recall is correct denies over all actual frauds
func (r ReplayReport) Recall() float64 {
	frauds := r.CorrectDeny + r.FalseNegative
	if frauds == 0 {
		return 0
	}
	return float64(r.CorrectDeny) / float64(frauds)
}

// Specificity is correct approves over all legitimate transactions
func (r ReplayReport) Specificity() float64 {
	legit := r.CorrectApprove + r.FalsePositive
	if legit == 0 {
		return 0
	}
	return float64(r.CorrectApprove) / float64(legit)
}

// F1 is the harmonic mean of precision and recall
func (r ReplayReport) F1() float64 {
	p, rc := r.Precision(), r.Recall()
	if p+rc == 0 {
		return 0
	}
	return 2 * p * rc / (p + rc)
}

// Accuracy is the share of correct verdicts
func (r ReplayReport) Accuracy() float64 {
	if r.Processed == 0 {
		return 0
	}
	return float64(r.CorrectDeny+r.CorrectApprove) / float64(r.Processed)
}
