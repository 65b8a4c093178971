package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a stored payment transaction. Only ChargedBack ever changes
// after the row is written.
type Transaction struct {
	TransactionID int64           `json:"transaction_id" db:"transaction_id"`
	MerchantID    int64           `json:"merchant_id" db:"merchant_id"`
	UserID        int64           `json:"user_id" db:"user_id"`
	CardHash      string          `json:"-" db:"card_hash"`
	Timestamp     time.Time       `json:"transaction_date" db:"transaction_date"`
	Amount        decimal.Decimal `json:"transaction_amount" db:"transaction_amount"`
	DeviceID      *int64          `json:"device_id,omitempty" db:"device_id"`
	ChargedBack   bool            `json:"has_cbk" db:"has_cbk"`
}

// TransactionRequest is the inbound descriptor accepted by the decision endpoint.
// The timestamp is kept as the raw ISO-8601 string; the engine parses it.
type TransactionRequest struct {
	TransactionID int64           `json:"transaction_id" validate:"required,gt=0"`
	MerchantID    int64           `json:"merchant_id" validate:"required,gt=0"`
	UserID        int64           `json:"user_id" validate:"required,gt=0"`
	CardNumber    string          `json:"card_number" validate:"required,min=16,max=19,card"`
	Timestamp     string          `json:"transaction_date" validate:"required,isotime"`
	Amount        decimal.Decimal `json:"transaction_amount" validate:"amount"`
	DeviceID      *int64          `json:"device_id,omitempty"`
}

// HistoricalRecord is one labelled row of a historical dataset
type HistoricalRecord struct {
	Line          int
	Request       TransactionRequest
	HasChargeback bool
}
