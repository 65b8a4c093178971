package models

// User is the per-user risk record. HasPriorChargeback only moves false -> true.
type User struct {
	UserID             int64 `json:"user_id" db:"user_id"`
	HasPriorChargeback bool  `json:"has_prior_cbk" db:"has_prior_cbk"`
}
