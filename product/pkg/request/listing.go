package request

// Listing selects one catalog page. Page starts at 1 and Sort is passed
// through to the store api verbatim, the client never re-sorts results.
type Listing struct {
	Page     int    `validate:"gte=1"                    json:"page"`
	Limit    int    `validate:"gte=1"                    json:"limit"`
	Category string `json:"category"`
	Sort     string `validate:"omitempty,oneof=asc desc" json:"sort"`
}
