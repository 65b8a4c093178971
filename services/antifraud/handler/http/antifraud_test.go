package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/efkobus/antifraud-system/internal/pkg/models"
	"github.com/efkobus/antifraud-system/services/antifraud"
	"github.com/efkobus/antifraud-system/services/antifraud/mocks"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBody = `{
	"transaction_id": 2342357,
	"merchant_id": 29744,
	"user_id": 97051,
	"card_number": "434505******9116",
	"transaction_date": "2019-11-30T23:16:32.812632",
	"transaction_amount": 373.56,
	"device_id": 285475
}`

func testConfig() *models.Config {
	cfg := &models.Config{}
	cfg.App.Name = "antifraud-service"
	cfg.App.Version = "1.0.0"
	cfg.Metrics.Path = "/metrics"
	cfg.Antifraud.MaxTransactionAmount = decimal.NewFromInt(1000000)
	return cfg
}

func newContext(method, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewRequestValidator(decimal.NewFromInt(1000000))
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestNewAntifraudHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockAntifraudUC(ctrl)
	handler := NewAntifraudHandler(mockUC, testConfig())

	assert.NotNil(t, handler)
	assert.Equal(t, mockUC, handler.antifraudUC)
}

func TestEvaluate_Approve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockAntifraudUC(ctrl)
	handler := NewAntifraudHandler(mockUC, testConfig())

	mockUC.EXPECT().Evaluate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *models.TransactionRequest) (models.Decision, error) {
			assert.Equal(t, int64(2342357), req.TransactionID)
			assert.Equal(t, "373.56", req.Amount.String())
			require.NotNil(t, req.DeviceID)
			assert.Equal(t, int64(285475), *req.DeviceID)
			return models.Decision{TransactionID: req.TransactionID, Verdict: models.VerdictApprove}, nil
		})

	c, rec := newContext(http.MethodPost, validBody)
	err := handler.Evaluate(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"transaction_id":2342357,"recommendation":"approve"}`, rec.Body.String())
}

func TestEvaluate_RuleDenyIsOK(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockAntifraudUC(ctrl)
	handler := NewAntifraudHandler(mockUC, testConfig())

	mockUC.EXPECT().Evaluate(gomock.Any(), gomock.Any()).Return(models.Decision{
		TransactionID: 2342357,
		Verdict:       models.VerdictDeny,
		Reason:        models.ReasonVelocity,
	}, nil)

	c, rec := newContext(http.MethodPost, validBody)
	err := handler.Evaluate(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"transaction_id":2342357,"recommendation":"deny"}`, rec.Body.String())
}

func TestEvaluate_FaultIsServiceUnavailable(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		reason models.DenyReason
		status int
	}{
		{"Store down", antifraud.ErrStoreUnavailable, models.ReasonStoreUnavailable, http.StatusServiceUnavailable},
		{"Timeout", antifraud.ErrTimeout, models.ReasonTimeout, http.StatusServiceUnavailable},
		{"Lock", antifraud.ErrLockUnavailable, models.ReasonLockUnavailable, http.StatusServiceUnavailable},
		{"Panic", errors.New("panic during evaluation: boom"), models.ReasonInternal, http.StatusServiceUnavailable},
		{"Duplicate", fmt.Errorf("%w: 2342357", antifraud.ErrDuplicateTransaction), models.ReasonDuplicate, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockUC := mocks.NewMockAntifraudUC(ctrl)
			handler := NewAntifraudHandler(mockUC, testConfig())

			mockUC.EXPECT().Evaluate(gomock.Any(), gomock.Any()).Return(models.Decision{
				TransactionID: 2342357,
				Verdict:       models.VerdictDeny,
				Reason:        tt.reason,
			}, tt.err)

			c, rec := newContext(http.MethodPost, validBody)
			err := handler.Evaluate(c)

			assert.NoError(t, err)
			assert.Equal(t, tt.status, rec.Code)

			var resp models.Recommendation
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, models.VerdictDeny, resp.Recommendation)
			assert.Equal(t, int64(2342357), resp.TransactionID)
			assert.Equal(t, string(tt.reason), resp.Error)
		})
	}
}

func TestEvaluate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"Missing user", strings.Replace(validBody, `"user_id": 97051`, `"user_id": 0`, 1), "user_id"},
		{"Short card", strings.Replace(validBody, `434505******9116`, `4345059116`, 1), "card_number"},
		{"Letters in unmasked card", strings.Replace(validBody, `434505******9116`, `43450512345abcde`, 1), "card_number"},
		{"Bad date", strings.Replace(validBody, `2019-11-30T23:16:32.812632`, `30/11/2019`, 1), "transaction_date"},
		{"Negative amount", strings.Replace(validBody, `373.56`, `-1`, 1), "transaction_amount"},
		{"Amount over limit", strings.Replace(validBody, `373.56`, `1000000.01`, 1), "transaction_amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// no use case call is expected
			handler := NewAntifraudHandler(mocks.NewMockAntifraudUC(ctrl), testConfig())

			c, rec := newContext(http.MethodPost, tt.body)
			err := handler.Evaluate(c)

			assert.NoError(t, err)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			details, ok := resp["details"].(map[string]interface{})
			require.True(t, ok)
			assert.Contains(t, details, tt.field)
		})
	}
}

func TestEvaluate_InvalidJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewAntifraudHandler(mocks.NewMockAntifraudUC(ctrl), testConfig())

	c, rec := newContext(http.MethodPost, `{"transaction_id": "abc"`)
	err := handler.Evaluate(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChargeback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockAntifraudUC(ctrl)
	handler := NewAntifraudHandler(mockUC, testConfig())

	mockUC.EXPECT().ApplyChargeback(gomock.Any(), int64(2342357), true).
		Return(&models.ChargebackResult{TransactionID: 2342357, UserID: 97051, Found: true, UserFlagged: true}, nil)

	c, rec := newContext(http.MethodPost, `{"transaction_id":2342357,"has_cbk":true}`)
	err := handler.Chargeback(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_flagged":true`)
}

func TestChargeback_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockAntifraudUC(ctrl)
	handler := NewAntifraudHandler(mockUC, testConfig())

	c, rec := newContext(http.MethodPost, `{"has_cbk":true}`)
	assert.NoError(t, handler.Chargeback(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	mockUC.EXPECT().ApplyChargeback(gomock.Any(), int64(1), true).Return(nil, antifraud.ErrStoreUnavailable)
	c, rec = newContext(http.MethodPost, `{"transaction_id":1,"has_cbk":true}`)
	assert.NoError(t, handler.Chargeback(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	mockUC.EXPECT().ApplyChargeback(gomock.Any(), int64(-4), true).Return(nil, antifraud.ErrInvalidTransaction)
	c, rec = newContext(http.MethodPost, `{"transaction_id":-4,"has_cbk":true}`)
	assert.NoError(t, handler.Chargeback(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestInfo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewAntifraudHandler(mocks.NewMockAntifraudUC(ctrl), testConfig())

	c, rec := newContext(http.MethodGet, "")
	err := handler.Info(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"antifraud-service"`)
	assert.Contains(t, rec.Body.String(), `"antifraud":"/antifraud"`)
}

func TestValidCard(t *testing.T) {
	tests := []struct {
		card string
		want bool
	}{
		{"434505******9116", true},
		{"4345051234569116", true},
		{"4345 0512 3456 9116", true},
		{"4345************", false},
		{"434505123456911", false},
		{"43450512345691161234", false},
		{"434505123456911X", false},
		{"434505**abcd9116", true},
	}

	for _, tt := range tests {
		t.Run(tt.card, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidCard(tt.card))
		})
	}
}
