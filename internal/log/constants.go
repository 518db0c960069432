package log

const (
	KeyAppName   = "app"
	KeyTag       = "tag"
	KeyProcess   = "process"
	KeyConfig    = "config"
	KeyUserId    = "userId"
	KeyProductId = "productId"
	KeyQuantity  = "quantity"
	KeyCategory  = "category"
	KeySort      = "sort"
	KeyPage      = "page"
	KeySearch    = "search"
	KeyUrl       = "url"
	KeyCartItems = "cartItems"
	KeyOrderId   = "orderId"
)
