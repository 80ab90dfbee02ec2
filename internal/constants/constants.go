package constants

// 订单状态常量（正常流转 Pending → Processing → Shipped → Delivered，
// Pending/Processing 可转 Cancelled；边界只校验取值合法，不强制流转顺序）
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// ValidOrderStatuses 合法订单状态集合
var ValidOrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// IsValidOrderStatus 校验订单状态取值
func IsValidOrderStatus(status string) bool {
	for _, s := range ValidOrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// 支付方式常量（仅作为标签存储，不接入支付渠道）
const (
	PaymentMethodCreditCard   = "CreditCard"
	PaymentMethodPaypal       = "PayPal"
	PaymentMethodBankTransfer = "BankTransfer"
)

// 配送方式常量
const (
	DeliveryMethodCourier = "Courier"
	DeliveryMethodPickUp  = "PickUp"
	DeliveryMethodPost    = "Post"
)

// DeliveryMethodDefault 默认配送方式
const DeliveryMethodDefault = DeliveryMethodCourier

// 商品成色常量
const (
	ProductConditionNew  = "New"
	ProductConditionUsed = "Used"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 购物车会话常量
const (
	CartSessionCookie   = "cart_session"
	CartSessionCacheKey = "cart:session"
)

// 队列常量
const (
	QueueDefault    = "default"
	TaskOrderPlaced = "order:placed"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "gf"
)
