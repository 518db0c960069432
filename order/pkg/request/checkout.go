package request

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

// Checkout is the mocked payment form. Card fields use the custom validations
// registered in internal/validate.
type Checkout struct {
	Username   string `validate:"required,min=3"      json:"username"`
	Email      string `validate:"required,email"      json:"email"`
	Address    string `validate:"required"            json:"address"`
	CardNumber string `validate:"required,cardnumber" json:"cardNumber"`
	CardExpiry string `validate:"required,cardexpiry" json:"cardExpirationDate"`
	CardCvv    string `validate:"required,cardcvv"    json:"cardCvv"`
}

func (f Checkout) MarshalZerologObject(e *zerolog.Event) {
	e.Str("username", f.Username).
		Str("email", f.Email).
		Str("address", f.Address).
		Str("cardNumber", "****").
		Str("cardExpirationDate", "****").
		Str("cardCvv", "***")
}

func (f Checkout) MarshalJSON() ([]byte, error) {
	f.CardNumber = "****"
	f.CardExpiry = "****"
	f.CardCvv = "***"
	type F Checkout
	return json.Marshal(F(f))
}
