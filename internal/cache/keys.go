package cache

const (
	KeyCartByUserId          = "carts:user:%s"
	KeyNotificationsByUserId = "notifications:user:%s"
)
