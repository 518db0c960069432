package validate

import (
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	once     sync.Once
	validate *validator.Validate

	digitsOnly = regexp.MustCompile(`^\d+$`)
	expiryForm = regexp.MustCompile(`^\d{2}/\d{2}$`)
)

// New returns the shared validator with the storefront's custom validations
// registered: price, cardnumber, cardexpiry and cardcvv.
func New() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		_ = validate.RegisterValidation("price", validatePrice)
		_ = validate.RegisterValidation("cardnumber", validateCardNumber)
		_ = validate.RegisterValidation("cardexpiry", validateCardExpiry)
		_ = validate.RegisterValidation("cardcvv", validateCardCvv)
	})
	return validate
}

func decimalValue(field reflect.Value) interface{} {
	d, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	return d.String()
}

func validatePrice(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return false
	}
	return !d.IsNegative()
}

func validateCardNumber(fl validator.FieldLevel) bool {
	digits := strings.NewReplacer("-", "", " ", "").Replace(fl.Field().String())
	if !digitsOnly.MatchString(digits) {
		return false
	}
	return len(digits) >= 16 && len(digits) <= 19
}

func validateCardExpiry(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if !expiryForm.MatchString(value) {
		return false
	}
	expiry, err := time.Parse("01/06", value)
	if err != nil {
		return false
	}
	now := time.Now()
	current, _ := time.Parse("01/06", now.Format("01/06"))
	return !expiry.Before(current)
}

func validateCardCvv(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if !digitsOnly.MatchString(value) {
		return false
	}
	return len(value) >= 3 && len(value) <= 4
}
