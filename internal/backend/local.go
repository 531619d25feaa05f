package backend

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/fashiopulse/internal/models"
	"github.com/fashiopulse/internal/service"
	"github.com/fashiopulse/internal/shop"
)

// Local 进程内后端，直接调用本地服务层
type Local struct {
	cart     *service.CartService
	wishlist *service.WishlistService
	orders   *service.OrderService
	profiles *service.ProfileService
}

// NewLocal 创建本地后端
func NewLocal(cart *service.CartService, wishlist *service.WishlistService, orders *service.OrderService, profiles *service.ProfileService) *Local {
	return &Local{
		cart:     cart,
		wishlist: wishlist,
		orders:   orders,
		profiles: profiles,
	}
}

// FetchOrders 订单列表
func (l *Local) FetchOrders(_ context.Context, userID shop.ID) ([]shop.OrderSummary, error) {
	uid, err := parseUint(userID)
	if err != nil {
		return nil, err
	}
	orders, err := l.orders.ListByUser(uid)
	if err != nil {
		return nil, mapServiceError(err)
	}
	summaries := make([]shop.OrderSummary, 0, len(orders))
	for _, order := range orders {
		summaries = append(summaries, toOrderSummary(order))
	}
	return summaries, nil
}

// FetchCart 购物车
func (l *Local) FetchCart(_ context.Context, userID shop.ID) ([]shop.CartEntry, error) {
	uid, err := parseUint(userID)
	if err != nil {
		return nil, err
	}
	items, err := l.cart.ListByUser(uid)
	if err != nil {
		return nil, mapServiceError(err)
	}
	entries := make([]shop.CartEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, toCartEntry(item))
	}
	return entries, nil
}

// FetchWishlist 心愿单
func (l *Local) FetchWishlist(_ context.Context, userID shop.ID) ([]shop.WishlistEntry, error) {
	uid, err := parseUint(userID)
	if err != nil {
		return nil, err
	}
	items, err := l.wishlist.ListByUser(uid)
	if err != nil {
		return nil, mapServiceError(err)
	}
	entries := make([]shop.WishlistEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, toWishlistEntry(item))
	}
	return entries, nil
}

// AddToCart 加入购物车
func (l *Local) AddToCart(_ context.Context, userID, productID shop.ID, quantity int, size string) error {
	uid, err := parseUint(userID)
	if err != nil {
		return err
	}
	pid, err := parseUint(productID)
	if err != nil {
		return err
	}
	_, err = l.cart.AddItem(service.AddCartItemInput{UserID: uid, ProductID: pid, Quantity: quantity, Size: size})
	return mapServiceError(err)
}

// UpdateCartQuantity 修改数量
func (l *Local) UpdateCartQuantity(_ context.Context, userID, cartID shop.ID, quantity int) error {
	uid, err := parseUint(userID)
	if err != nil {
		return err
	}
	cid, err := parseUint(cartID)
	if err != nil {
		return err
	}
	return mapServiceError(l.cart.UpdateQuantity(uid, cid, quantity))
}

// RemoveFromCart 移除购物车行
func (l *Local) RemoveFromCart(_ context.Context, userID, cartID shop.ID) error {
	uid, err := parseUint(userID)
	if err != nil {
		return err
	}
	cid, err := parseUint(cartID)
	if err != nil {
		return err
	}
	return mapServiceError(l.cart.RemoveItem(uid, cid))
}

// ClearCart 清空购物车
func (l *Local) ClearCart(_ context.Context, userID shop.ID) error {
	uid, err := parseUint(userID)
	if err != nil {
		return err
	}
	return mapServiceError(l.cart.Clear(uid))
}

// ToggleWishlist 切换心愿单
func (l *Local) ToggleWishlist(_ context.Context, userID, productID shop.ID) error {
	uid, err := parseUint(userID)
	if err != nil {
		return err
	}
	pid, err := parseUint(productID)
	if err != nil {
		return err
	}
	_, err = l.wishlist.Toggle(uid, pid)
	return mapServiceError(err)
}

// PlaceOrder 单品下单
func (l *Local) PlaceOrder(_ context.Context, req OrderRequest) (*shop.OrderConfirmation, error) {
	uid, err := parseUint(req.UserID)
	if err != nil {
		return nil, err
	}
	pid, err := parseUint(req.ProductID)
	if err != nil {
		return nil, err
	}
	order, err := l.orders.PlaceOrder(service.PlaceOrderInput{
		UserID:          uid,
		ProductID:       pid,
		Quantity:        req.Quantity,
		Size:            req.Size,
		PaymentMethod:   req.PaymentMethod,
		DeliveryAddress: req.DeliveryAddress,
	})
	if err != nil {
		return nil, mapServiceError(err)
	}
	return &shop.OrderConfirmation{
		OrderID:       shop.IDFromUint(order.ID),
		ProductName:   order.ProductName,
		ProductImage:  order.ProductImage,
		ProductSize:   order.Size,
		Quantity:      order.Quantity,
		PricePerItem:  order.UnitPrice.Decimal,
		Total:         order.TotalAmount.Decimal,
		PaymentMethod: order.PaymentMethod,
		Address:       order.DeliveryAddress,
	}, nil
}

// PlaceBulkOrder 整车下单；本地实现以服务端购物车为准，忽略请求中的条目
func (l *Local) PlaceBulkOrder(_ context.Context, req BulkOrderRequest) (*shop.BulkOrderConfirmation, error) {
	uid, err := parseUint(req.UserID)
	if err != nil {
		return nil, err
	}
	result, err := l.orders.PlaceBulkOrder(service.PlaceBulkOrderInput{
		UserID:          uid,
		PaymentMethod:   req.PaymentMethod,
		DeliveryAddress: req.DeliveryAddress,
	})
	if err != nil {
		return nil, mapServiceError(err)
	}
	ids := make([]shop.ID, 0, len(result.Orders))
	for _, order := range result.Orders {
		ids = append(ids, shop.IDFromUint(order.ID))
	}
	return &shop.BulkOrderConfirmation{
		OrderIDs:      ids,
		TotalAmount:   result.TotalAmount.Decimal,
		ItemCount:     result.ItemCount,
		PaymentMethod: result.PaymentMethod,
		Address:       result.DeliveryAddress,
	}, nil
}

// CancelOrder 取消订单
func (l *Local) CancelOrder(_ context.Context, userID, orderID shop.ID) error {
	uid, err := parseUint(userID)
	if err != nil {
		return err
	}
	oid, err := parseUint(orderID)
	if err != nil {
		return err
	}
	_, err = l.orders.CancelOrder(uid, oid)
	return mapServiceError(err)
}

// GetProfile 用户资料
func (l *Local) GetProfile(_ context.Context, userID shop.ID) (*shop.Profile, error) {
	uid, err := parseUint(userID)
	if err != nil {
		return nil, err
	}
	user, err := l.profiles.GetProfile(uid)
	if err != nil {
		return nil, mapServiceError(err)
	}
	profile := ToProfile(user)
	return &profile, nil
}

// SaveAddressBook 保存地址簿
func (l *Local) SaveAddressBook(_ context.Context, userID shop.ID, book shop.AddressBook) error {
	uid, err := parseUint(userID)
	if err != nil {
		return err
	}
	_, err = l.profiles.SaveAddressBook(uid, book)
	return mapServiceError(err)
}

func parseUint(id shop.ID) (uint, error) {
	v, ok := id.Uint()
	if !ok || v == 0 {
		return 0, &Error{Status: http.StatusBadRequest, Message: "Invalid id: " + strconv.Quote(id.String())}
	}
	return v, nil
}

// serviceErrorStatus 服务层错误到状态码的映射
var serviceErrorStatus = []struct {
	target error
	status int
}{
	{service.ErrInvalidUser, http.StatusBadRequest},
	{service.ErrUserNotFound, http.StatusNotFound},
	{service.ErrUserDisabled, http.StatusForbidden},
	{service.ErrProductNotFound, http.StatusNotFound},
	{service.ErrProductNotAvailable, http.StatusBadRequest},
	{service.ErrInsufficientStock, http.StatusBadRequest},
	{service.ErrInvalidQuantity, http.StatusBadRequest},
	{service.ErrCartItemNotFound, http.StatusNotFound},
	{service.ErrCartEmpty, http.StatusBadRequest},
	{service.ErrOrderNotFound, http.StatusNotFound},
	{service.ErrOrderNotCancellable, http.StatusBadRequest},
	{service.ErrDeliveryAddressRequired, http.StatusBadRequest},
	{service.ErrInvalidPaymentMethod, http.StatusBadRequest},
	{service.ErrAddressLabelRequired, http.StatusBadRequest},
}

func mapServiceError(err error) error {
	if err == nil {
		return nil
	}
	for _, rule := range serviceErrorStatus {
		if errors.Is(err, rule.target) {
			return &Error{Status: rule.status, Message: rule.target.Error()}
		}
	}
	return err
}

func toProduct(p *models.Product) shop.Product {
	if p == nil {
		return shop.Product{}
	}
	return shop.Product{
		ID:          shop.IDFromUint(p.ID),
		Name:        p.Name,
		Image:       p.ImageURL,
		Price:       p.Price.Decimal,
		Category:    p.Category,
		Description: p.Description,
		Stock:       p.Stock,
		Size:        p.Size,
		Color:       p.Color,
	}
}

// ToProduct 模型转换为商品快照，供意图服务的商品检索使用
func ToProduct(p *models.Product) shop.Product {
	return toProduct(p)
}

func toCartEntry(item models.CartItem) shop.CartEntry {
	product := toProduct(item.Product)
	return shop.CartEntry{
		CartID:    shop.IDFromUint(item.ID),
		ProductID: shop.IDFromUint(item.ProductID),
		Quantity:  item.Quantity,
		Size:      item.Size,
		Name:      product.Name,
		Image:     product.Image,
		Price:     product.Price,
	}
}

func toWishlistEntry(item models.WishlistItem) shop.WishlistEntry {
	entry := shop.WishlistEntryFromProduct(toProduct(item.Product))
	entry.WishlistID = shop.IDFromUint(item.ID)
	entry.ProductID = shop.IDFromUint(item.ProductID)
	return entry
}

func toOrderSummary(order models.Order) shop.OrderSummary {
	summary := shop.OrderSummary{
		OrderID:         shop.IDFromUint(order.ID),
		ProductID:       shop.IDFromUint(order.ProductID),
		ProductName:     order.ProductName,
		ProductImage:    order.ProductImage,
		Quantity:        order.Quantity,
		Size:            order.Size,
		TotalAmount:     order.TotalAmount.Decimal,
		Status:          order.Status,
		PaymentMethod:   order.PaymentMethod,
		DeliveryAddress: order.DeliveryAddress,
		CreatedAt:       order.CreatedAt,
	}
	if order.ExpectedDeliveryAt != nil {
		summary.ExpectedDeliveryDate = order.ExpectedDeliveryAt.Format("2006-01-02")
	}
	return summary
}

// ToProfile 用户模型转为资料快照
func ToProfile(user *models.User) shop.Profile {
	return shop.Profile{
		UserID:        shop.IDFromUint(user.ID),
		Name:          user.DisplayName,
		Email:         user.Email,
		Gender:        user.Gender,
		PreferredSize: user.PreferredSize,
		Preferences:   user.Preferences,
		Addresses:     user.Addresses.Clone(),
	}
}
