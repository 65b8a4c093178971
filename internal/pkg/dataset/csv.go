// Package dataset reads labelled historical transactions from CSV.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/efkobus/antifraud-system/internal/pkg/models"
	"github.com/shopspring/decimal"
)

// Columns lists the header names every dataset must carry
var Columns = []string{
	"transaction_id",
	"merchant_id",
	"user_id",
	"card_number",
	"transaction_date",
	"transaction_amount",
	"device_id",
	"has_cbk",
}

// ErrMissingColumn is returned when the header lacks a required column
var ErrMissingColumn = errors.New("missing column")

// RowError describes a row that could not be decoded
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying decode error
func (e RowError) Unwrap() error {
	return e.Err
}

// ReadFile opens path and decodes it with Read
func ReadFile(path string) ([]models.HistoricalRecord, []RowError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes every row. Rows that do not decode are returned as RowErrors
// and left out of the records; the timestamp is kept verbatim for the engine
// to judge.
func Read(r io.Reader) ([]models.HistoricalRecord, []RowError, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, col := range Columns {
		if _, ok := index[col]; !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	var (
		records []models.HistoricalRecord
		rowErrs []RowError
	)
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) && !errors.Is(perr.Err, csv.ErrFieldCount) {
				return records, rowErrs, fmt.Errorf("failed to read dataset: %w", err)
			}
			rowErrs = append(rowErrs, RowError{Line: line, Err: err})
			continue
		}

		rec, err := decode(row, index)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: err})
			continue
		}
		rec.Line = line
		records = append(records, rec)
	}

	return records, rowErrs, nil
}

func decode(row []string, index map[string]int) (models.HistoricalRecord, error) {
	field := func(name string) string {
		return strings.TrimSpace(row[index[name]])
	}

	var (
		rec models.HistoricalRecord
		err error
	)
	req := &rec.Request
	if req.TransactionID, err = parseID(field("transaction_id")); err != nil {
		return rec, fmt.Errorf("transaction_id: %w", err)
	}
	if req.MerchantID, err = parseID(field("merchant_id")); err != nil {
		return rec, fmt.Errorf("merchant_id: %w", err)
	}
	if req.UserID, err = parseID(field("user_id")); err != nil {
		return rec, fmt.Errorf("user_id: %w", err)
	}
	req.CardNumber = field("card_number")
	req.Timestamp = field("transaction_date")
	if req.Amount, err = decimal.NewFromString(field("transaction_amount")); err != nil {
		return rec, fmt.Errorf("transaction_amount: %w", err)
	}
	if raw := field("device_id"); raw != "" {
		device, err := parseID(raw)
		if err != nil {
			return rec, fmt.Errorf("device_id: %w", err)
		}
		req.DeviceID = &device
	}
	if rec.HasChargeback, err = parseFlag(field("has_cbk")); err != nil {
		return rec, fmt.Errorf("has_cbk: %w", err)
	}
	return rec, nil
}

// parseID also accepts pandas-style floats such as "285475.0"
func parseID(raw string) (int64, error) {
	raw = strings.TrimSuffix(raw, ".0")
	return strconv.ParseInt(raw, 10, 64)
}

func parseFlag(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "true", "t", "1", "yes":
		return true, nil
	case "false", "f", "0", "no", "":
		return false, nil
	default:
		return false, fmt.Errorf("invalid flag %q", raw)
	}
}
