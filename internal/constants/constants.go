package constants

// 订单状态常量
const (
	OrderStatusPlaced     = "placed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// 支付方式常量
const (
	PaymentMethodCOD  = "COD"
	PaymentMethodUPI  = "UPI"
	PaymentMethodCard = "Card"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 视图常量
const (
	ViewHome     = "home"
	ViewDetail   = "detail"
	ViewCart     = "cart"
	ViewWishlist = "wishlist"
	ViewOrders   = "orders"
	ViewCheckout = "checkout"
	ViewSuccess  = "success"
)

// 意图分类常量
const (
	IntentSearch   = "search"
	IntentCart     = "cart"
	IntentWishlist = "wishlist"
	IntentOrder    = "order"
	IntentPayment  = "payment"
)

// 意图动作常量
const (
	ActionAdd      = "add"
	ActionBack     = "back"
	ActionList     = "list"
	ActionBuy      = "buy"
	ActionCheckout = "checkout"
	ActionCancel   = "cancel"
	ActionComplete = "complete"
)

// 地址操作常量
const (
	AddressActionOpen = "open"
)

// 结账模式常量
const (
	CheckoutModeSingle = "single"
	CheckoutModeBulk   = "bulk"
)

// 默认值
const (
	DefaultSize          = "M"
	DefaultPaymentMethod = PaymentMethodCOD
	DefaultAddressLabel  = "Default"
)

// 意图服务提供方
const (
	IntentProviderRemote = "remote"
	IntentProviderGemini = "gemini"
)

// 后端模式
const (
	BackendModeLocal  = "local"
	BackendModeRemote = "remote"
)

// 队列与任务
const (
	QueueDefault    = "default"
	QueueCritical   = "critical"
	TaskOrderCancel = "order:cancel"
)

// 订单事件频道
const (
	OrderEventsChannel = "order_events"
)
