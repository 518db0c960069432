package request

// UpsertCart is the payload for POST /carts. The store api keys line items by
// product id only, prices stay authoritative on the catalog side.
type UpsertCart struct {
	UserId   string       `validate:"required"       json:"userId"`
	Products []UpsertItem `validate:"required,dive"  json:"products"`
}

type UpsertItem struct {
	Id       string `validate:"required" json:"id"`
	Quantity int    `validate:"gte=1"    json:"quantity"`
}
