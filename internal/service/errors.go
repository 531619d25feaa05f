package service

import "errors"

// 业务错误；文案会透传给助手界面，保持面向用户的表述
var (
	ErrInvalidUser             = errors.New("Invalid user")
	ErrUserNotFound            = errors.New("User not found")
	ErrUserDisabled            = errors.New("User is disabled")
	ErrProductNotFound         = errors.New("Product not found")
	ErrProductNotAvailable     = errors.New("Product is not available")
	ErrInsufficientStock       = errors.New("Not enough stock for this product")
	ErrInvalidQuantity         = errors.New("Quantity must be at least 1")
	ErrCartItemNotFound        = errors.New("Cart item not found")
	ErrCartEmpty               = errors.New("Cart is empty")
	ErrOrderNotFound           = errors.New("Order not found")
	ErrOrderNotCancellable     = errors.New("Order can no longer be cancelled")
	ErrDeliveryAddressRequired = errors.New("Delivery address is required")
	ErrInvalidPaymentMethod    = errors.New("Unsupported payment method")
	ErrAddressLabelRequired    = errors.New("Address label is required")
)
