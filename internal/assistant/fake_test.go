package assistant

import (
	"context"
	"strconv"
	"sync"

	"github.com/fashiopulse/internal/backend"
	"github.com/fashiopulse/internal/intent"
	"github.com/fashiopulse/internal/resolver"
	"github.com/fashiopulse/internal/shop"

	"github.com/shopspring/decimal"
)

// fakeBackend 内存后端，记录调用
type fakeBackend struct {
	mu sync.Mutex

	profile    *shop.Profile
	profileErr error
	cart       []shop.CartEntry
	wishlist   []shop.WishlistEntry
	orders     []shop.OrderSummary
	nextID     int

	placeErr     error
	bulkErr      error
	cancelErr    error
	addGate      chan struct{}
	orderReqs    []backend.OrderRequest
	bulkReqs     []backend.BulkOrderRequest
	cancelled    []shop.ID
	clearCalls   int
	savedBooks   []shop.AddressBook
	fetchCartHit int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		nextID: 100,
		profile: &shop.Profile{
			UserID: "1",
			Name:   "Asha",
			Addresses: shop.NewAddressBook(
				shop.AddressEntry{Label: "Home", Address: "12 Elm St"},
				shop.AddressEntry{Label: "Office", Address: "1 Main Rd"},
			),
		},
	}
}

func (f *fakeBackend) id() shop.ID {
	f.nextID++
	return shop.ID(strconv.Itoa(f.nextID))
}

func (f *fakeBackend) FetchOrders(_ context.Context, _ shop.ID) ([]shop.OrderSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]shop.OrderSummary(nil), f.orders...), nil
}

func (f *fakeBackend) FetchCart(_ context.Context, _ shop.ID) ([]shop.CartEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCartHit++
	return append([]shop.CartEntry(nil), f.cart...), nil
}

func (f *fakeBackend) FetchWishlist(_ context.Context, _ shop.ID) ([]shop.WishlistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]shop.WishlistEntry(nil), f.wishlist...), nil
}

func (f *fakeBackend) AddToCart(_ context.Context, _ shop.ID, productID shop.ID, quantity int, size string) error {
	if f.addGate != nil {
		<-f.addGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cart = append(f.cart, shop.CartEntry{
		CartID:    f.id(),
		ProductID: productID,
		Quantity:  quantity,
		Size:      size,
		Name:      "product-" + productID.String(),
		Price:     decimal.NewFromInt(10),
	})
	return nil
}

func (f *fakeBackend) UpdateCartQuantity(_ context.Context, _ shop.ID, cartID shop.ID, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.cart {
		if f.cart[i].CartID.Equal(cartID) {
			f.cart[i].Quantity = quantity
			return nil
		}
	}
	return &backend.Error{Status: 404, Message: "Cart item not found"}
}

func (f *fakeBackend) RemoveFromCart(_ context.Context, _ shop.ID, cartID shop.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.cart[:0]
	for _, entry := range f.cart {
		if !entry.CartID.Equal(cartID) {
			kept = append(kept, entry)
		}
	}
	f.cart = kept
	return nil
}

func (f *fakeBackend) ClearCart(_ context.Context, _ shop.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clearCalls++
	f.cart = nil
	return nil
}

func (f *fakeBackend) ToggleWishlist(_ context.Context, _ shop.ID, productID shop.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, entry := range f.wishlist {
		if entry.ProductID.Equal(productID) {
			f.wishlist = append(f.wishlist[:i], f.wishlist[i+1:]...)
			return nil
		}
	}
	f.wishlist = append(f.wishlist, shop.WishlistEntry{WishlistID: f.id(), ProductID: productID, Name: "product-" + productID.String()})
	return nil
}

func (f *fakeBackend) PlaceOrder(_ context.Context, req backend.OrderRequest) (*shop.OrderConfirmation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orderReqs = append(f.orderReqs, req)
	if f.placeErr != nil {
		return nil, f.placeErr
	}
	orderID := f.id()
	f.orders = append(f.orders, shop.OrderSummary{OrderID: orderID, ProductID: req.ProductID, Quantity: req.Quantity, Status: "Placed"})
	return &shop.OrderConfirmation{
		OrderID:       orderID,
		Quantity:      req.Quantity,
		ProductSize:   req.Size,
		PaymentMethod: req.PaymentMethod,
		Address:       req.DeliveryAddress,
	}, nil
}

func (f *fakeBackend) PlaceBulkOrder(_ context.Context, req backend.BulkOrderRequest) (*shop.BulkOrderConfirmation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bulkReqs = append(f.bulkReqs, req)
	if f.bulkErr != nil {
		return nil, f.bulkErr
	}
	out := &shop.BulkOrderConfirmation{PaymentMethod: req.PaymentMethod, Address: req.DeliveryAddress}
	for _, item := range req.Items {
		orderID := f.id()
		out.OrderIDs = append(out.OrderIDs, orderID)
		out.ItemCount += item.Quantity
		f.orders = append(f.orders, shop.OrderSummary{OrderID: orderID, ProductID: item.ProductID, Quantity: item.Quantity, Status: "Placed"})
	}
	return out, nil
}

func (f *fakeBackend) CancelOrder(_ context.Context, _ shop.ID, orderID shop.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelled = append(f.cancelled, orderID)
	for i := range f.orders {
		if f.orders[i].OrderID.Equal(orderID) {
			f.orders[i].Status = "Cancelled"
		}
	}
	return nil
}

func (f *fakeBackend) GetProfile(_ context.Context, _ shop.ID) (*shop.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	if f.profile == nil {
		return nil, nil
	}
	p := f.profile.Clone()
	return &p, nil
}

func (f *fakeBackend) SaveAddressBook(_ context.Context, _ shop.ID, book shop.AddressBook) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.savedBooks = append(f.savedBooks, book.Clone())
	if f.profile != nil {
		f.profile.Addresses = book.Clone()
	}
	return nil
}

// fakeIntent 按指令文本返回预置结果
type fakeIntent struct {
	mu      sync.Mutex
	results map[string]*intent.Result
	err     error
	gate    chan struct{}
	entered chan struct{}
}

func newFakeIntent() *fakeIntent {
	return &fakeIntent{results: make(map[string]*intent.Result)}
}

func (f *fakeIntent) on(prompt, message string, it *resolver.Intent, products ...shop.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[prompt] = &intent.Result{Message: message, Intent: it, Candidates: products}
}

func (f *fakeIntent) Query(ctx context.Context, prompt string, _ shop.ID) (*intent.Result, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	result, ok := f.results[prompt]
	if !ok {
		return &intent.Result{Message: "I am not sure what you mean."}, nil
	}
	return result, nil
}

func product(id, name string) shop.Product {
	return shop.Product{ID: shop.ID(id), Name: name, Price: decimal.NewFromInt(10), Size: "L"}
}
