package response

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/Alturino/storefront/product/pkg/response"
)

// CartItem is a catalog product held in the cart. The embedded product fields
// and the quantity flatten into a single json object, which is also the layout
// of the persisted cart slot.
type CartItem struct {
	response.Product
	Quantity int `validate:"gte=1" json:"quantity"`
}

func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// RemoteCart is the per-user cart resource as the store api serves it.
type RemoteCart struct {
	UserId   json.Number      `json:"userId"`
	Products []RemoteCartItem `json:"products"`
}

type RemoteCartItem struct {
	ProductId response.ProductId `validate:"required" json:"productId"`
	Quantity  int                `validate:"gte=1"    json:"quantity"`
}
