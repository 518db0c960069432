package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Alturino/storefront/cart/pkg/response"
)

// Order is the mocked checkout confirmation. No payment is processed, the
// reference exists so the user has something to hold on to.
type Order struct {
	Id       uuid.UUID           `json:"id"`
	Email    string              `json:"email"`
	Address  string              `json:"address"`
	Items    []response.CartItem `json:"items"`
	Total    decimal.Decimal     `json:"total"`
	PlacedAt time.Time           `json:"placedAt"`
}
