package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `transaction_id,merchant_id,user_id,card_number,transaction_date,transaction_amount,device_id,has_cbk
21320398,29744,97051,434505******9116,2019-12-01T23:16:32.812632,374.56,285475,FALSE
21320399,92895,2708,444456******4210,2019-12-01T22:45:37.873639,734.87,497105,TRUE
21320400,47759,14777,425850******7024,2019-12-01T22:22:43.021495,760.36,,FALSE
bad,47759,14777,425850******7024,2019-12-01T22:22:43.021495,760.36,,FALSE
21320401,47759,14777,425850******7024,2019-12-01T22:22:43.021495,abc,,FALSE
21320402,1,2
21320403,1,2,425850******7024,not-a-date,10.5,1.0,true
`

func TestRead(t *testing.T) {
	records, rowErrs, err := Read(strings.NewReader(sample))

	require.NoError(t, err)
	require.Len(t, records, 4)
	require.Len(t, rowErrs, 3)

	first := records[0]
	assert.Equal(t, 2, first.Line)
	assert.Equal(t, int64(21320398), first.Request.TransactionID)
	assert.Equal(t, int64(29744), first.Request.MerchantID)
	assert.Equal(t, int64(97051), first.Request.UserID)
	assert.Equal(t, "434505******9116", first.Request.CardNumber)
	assert.Equal(t, "2019-12-01T23:16:32.812632", first.Request.Timestamp)
	assert.Equal(t, "374.56", first.Request.Amount.String())
	require.NotNil(t, first.Request.DeviceID)
	assert.Equal(t, int64(285475), *first.Request.DeviceID)
	assert.False(t, first.HasChargeback)

	assert.True(t, records[1].HasChargeback)
	assert.Nil(t, records[2].Request.DeviceID)

	// timestamps are not judged here
	last := records[3]
	assert.Equal(t, 8, last.Line)
	assert.Equal(t, "not-a-date", last.Request.Timestamp)
	assert.Equal(t, int64(1), *last.Request.DeviceID)
	assert.True(t, last.HasChargeback)

	assert.Equal(t, 5, rowErrs[0].Line)
	assert.Contains(t, rowErrs[0].Error(), "transaction_id")
	assert.Equal(t, 6, rowErrs[1].Line)
	assert.Contains(t, rowErrs[1].Error(), "transaction_amount")
	assert.Equal(t, 7, rowErrs[2].Line)
}

func TestRead_ColumnOrderFromHeader(t *testing.T) {
	data := "has_cbk,transaction_amount,transaction_date,card_number,user_id,merchant_id,transaction_id,device_id\n" +
		"TRUE,10,2019-12-01T10:00:00,434505******9116,3,2,1,\n"

	records, rowErrs, err := Read(strings.NewReader(data))

	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, records, 1)
	assert.Equal(t, int64(1), records[0].Request.TransactionID)
	assert.Equal(t, int64(3), records[0].Request.UserID)
	assert.True(t, records[0].HasChargeback)
}

func TestRead_MissingColumn(t *testing.T) {
	_, _, err := Read(strings.NewReader("transaction_id,merchant_id\n1,2\n"))

	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.csv")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	records, _, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, records, 4)

	_, _, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
