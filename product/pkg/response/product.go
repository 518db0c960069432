package response

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ProductId tolerates both string and numeric identifiers, the catalog api
// serves numbers while everything downstream keys on strings.
type ProductId string

func (id *ProductId) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*id = ProductId(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("failed unmarshaling product id with error=%w", err)
	}
	*id = ProductId(s)
	return nil
}

func (id ProductId) String() string { return string(id) }

type Rating struct {
	Rate  float64 `validate:"gte=0,lte=5" json:"rate"`
	Count int     `validate:"gte=0"       json:"count"`
}

type Product struct {
	Id          ProductId       `validate:"required" json:"id"`
	Title       string          `validate:"required" json:"title"`
	Price       decimal.Decimal `validate:"price"   json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Rating      Rating          `json:"rating"`
}
