package request

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

// LoginRequest is posted to /auth/login. MarshalJSON redacts the password so
// the request never leaks through logs, the api client builds the wire payload
// from the fields directly.
type LoginRequest struct {
	Username string `validate:"required,min=3" json:"username"`
	Password string `validate:"required"       json:"password"`
}

func (l LoginRequest) MarshalZerologObject(e *zerolog.Event) {
	e.Str("username", l.Username).Str("password", "***")
}

func (l LoginRequest) MarshalJSON() ([]byte, error) {
	l.Password = "***"
	type L LoginRequest
	return json.Marshal(L(l))
}
