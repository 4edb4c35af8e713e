package log

const (
	KeyAppName          = "app"
	KeyTag              = "tag"
	KeyProcess          = "process"
	KeyConfig           = "config"
	KeyRequestID        = "requestId"
	KeyRequestBody      = "requestBody"
	KeyRequestHeader    = "requestHeader"
	KeyRequestHost      = "host"
	KeyRequestIp        = "requesterIP"
	KeyRequestMethod    = "requestMethod"
	KeyRequestURI       = "requestURI"
	KeyRequestURL       = "requestURL"
	KeyTraceID          = "traceId"
	KeySpanID           = "spanId"
	KeyUserID           = "userId"
	KeyProductID        = "productId"
	KeyProductSlug      = "productSlug"
	KeyCart             = "cart"
	KeyCartItemID       = "cartItemId"
	KeyCartItems        = "cartItems"
	KeyCartItemQuantity = "cartItemQuantity"
	KeyTotalItems       = "totalItems"
	KeyTotalPrice       = "totalPrice"
	KeyOrder            = "order"
	KeyOrderID          = "orderId"
	KeyOrderItems       = "orderItems"
	KeyPaymentMethod    = "paymentMethod"
	KeyProfile          = "profile"
	KeyNotification     = "notification"
	KeyCacheKey         = "cacheKey"
	KeyDbURL            = "dbURL"
	KeyPathValues       = "pathValues"
)
