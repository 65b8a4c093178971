package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/efkobus/antifraud-system/internal/pkg/timeutil"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// minVisibleDigits is how many card characters must remain once the mask is removed
const minVisibleDigits = 10

// RequestValidator implements echo.Validator on top of go-playground/validator
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator registers the card, isotime and amount tags. maxAmount
// bounds a single transaction; zero disables the bound.
func NewRequestValidator(maxAmount decimal.Decimal) *RequestValidator {
	v := validator.New()

	// report json names in error details
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// decimals are validated through their canonical string
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("card", func(fl validator.FieldLevel) bool {
		return ValidCard(fl.Field().String())
	})
	_ = v.RegisterValidation("isotime", func(fl validator.FieldLevel) bool {
		return timeutil.Valid(fl.Field().String())
	})
	_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		return validAmount(fl.Field().String(), maxAmount)
	})

	return &RequestValidator{validate: v}
}

// Validate validates a request struct
func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.validate.Struct(i)
}

// ValidCard accepts masked numbers such as 434505******9116. Unmasked numbers
// must be all digits.
func ValidCard(card string) bool {
	if n := len(card); n < 16 || n > 19 {
		return false
	}
	clean := strings.NewReplacer("*", "", " ", "").Replace(card)
	if len(clean) < minVisibleDigits {
		return false
	}
	if strings.Contains(card, "*") {
		return true
	}
	for _, r := range clean {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func validAmount(raw string, maxAmount decimal.Decimal) bool {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return false
	}
	amount = amount.Round(2)
	if !amount.IsPositive() {
		return false
	}
	return !maxAmount.IsPositive() || amount.LessThanOrEqual(maxAmount)
}

// ValidationDetails maps each failing field to a short message
func ValidationDetails(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"request": err.Error()}
	}

	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = fieldMessage(fe)
	}
	return details
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "min", "max":
		return "must be between 16 and 19 characters"
	case "card":
		return "is not a valid card number"
	case "isotime":
		return "must be an ISO-8601 timestamp"
	case "amount":
		return "must be positive and within the per-transaction limit"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
