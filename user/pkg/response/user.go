package response

import "encoding/json"

type Name struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// Profile is the subset of GET /users/{id} the storefront consumes, the
// checkout flow prefills the email from it.
type Profile struct {
	Id       json.Number `validate:"required"       json:"id"`
	Email    string      `validate:"required,email" json:"email"`
	Username string      `json:"username"`
	Name     Name        `json:"name"`
}

type Token struct {
	Token string `validate:"required" json:"token"`
}
