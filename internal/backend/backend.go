package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fashiopulse/internal/shop"
)

// Backend 购物后端契约：订单、购物车、心愿单与用户资料
type Backend interface {
	FetchOrders(ctx context.Context, userID shop.ID) ([]shop.OrderSummary, error)
	FetchCart(ctx context.Context, userID shop.ID) ([]shop.CartEntry, error)
	FetchWishlist(ctx context.Context, userID shop.ID) ([]shop.WishlistEntry, error)
	AddToCart(ctx context.Context, userID, productID shop.ID, quantity int, size string) error
	UpdateCartQuantity(ctx context.Context, userID, cartID shop.ID, quantity int) error
	RemoveFromCart(ctx context.Context, userID, cartID shop.ID) error
	ClearCart(ctx context.Context, userID shop.ID) error
	ToggleWishlist(ctx context.Context, userID, productID shop.ID) error
	PlaceOrder(ctx context.Context, req OrderRequest) (*shop.OrderConfirmation, error)
	PlaceBulkOrder(ctx context.Context, req BulkOrderRequest) (*shop.BulkOrderConfirmation, error)
	CancelOrder(ctx context.Context, userID, orderID shop.ID) error
	GetProfile(ctx context.Context, userID shop.ID) (*shop.Profile, error)
	SaveAddressBook(ctx context.Context, userID shop.ID, book shop.AddressBook) error
}

// OrderRequest 单品下单请求
type OrderRequest struct {
	UserID          shop.ID `json:"user_id"`
	ProductID       shop.ID `json:"product_id"`
	Quantity        int     `json:"quantity"`
	Size            string  `json:"size"`
	PaymentMethod   string  `json:"payment_method"`
	DeliveryAddress string  `json:"delivery_address"`
}

// BulkOrderItem 整车下单的购物车行
type BulkOrderItem struct {
	CartID    shop.ID `json:"cart_id"`
	ProductID shop.ID `json:"product"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
}

// BulkOrderRequest 整车下单请求
type BulkOrderRequest struct {
	UserID          shop.ID         `json:"user_id"`
	Items           []BulkOrderItem `json:"items"`
	PaymentMethod   string          `json:"payment_method"`
	DeliveryAddress string          `json:"delivery_address"`
}

// BulkItemsFromCart 由购物车行构建整车下单条目
func BulkItemsFromCart(entries []shop.CartEntry) []BulkOrderItem {
	items := make([]BulkOrderItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, BulkOrderItem{
			CartID:    entry.CartID,
			ProductID: entry.ProductID,
			Quantity:  entry.Quantity,
			Size:      entry.Size,
		})
	}
	return items
}

// ErrUnavailable 后端不可达
var ErrUnavailable = errors.New("backend unavailable")

// Error 后端返回的业务错误，Message 原样展示给用户
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message == "" {
		return fmt.Sprintf("backend error: status %d", e.Status)
	}
	return e.Message
}

// Message 提取可展示的错误文案；非业务错误返回 fallback
func Message(err error, fallback string) string {
	var be *Error
	if errors.As(err, &be) && strings.TrimSpace(be.Message) != "" {
		return be.Message
	}
	return fallback
}

// IsAddressError 错误文案是否涉及地址，用于重新打开地址面板
func IsAddressError(err error) bool {
	if err == nil {
		return false
	}
	var be *Error
	if errors.As(err, &be) {
		return strings.Contains(strings.ToLower(be.Message), "address")
	}
	return strings.Contains(strings.ToLower(err.Error()), "address")
}
