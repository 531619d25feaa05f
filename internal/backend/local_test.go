package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/fashiopulse/internal/constants"
	"github.com/fashiopulse/internal/models"
	"github.com/fashiopulse/internal/repository"
	"github.com/fashiopulse/internal/service"
	"github.com/fashiopulse/internal/shop"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupLocalBackend(t *testing.T) (*Local, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:backend_local_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.CartItem{}, &models.WishlistItem{}, &models.Order{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	local := NewLocal(
		service.NewCartService(cartRepo, productRepo),
		service.NewWishlistService(repository.NewWishlistRepository(db), productRepo),
		service.NewOrderService(repository.NewOrderRepository(db), productRepo, cartRepo),
		service.NewProfileService(repository.NewUserRepository(db)),
	)
	return local, db
}

func seedShop(t *testing.T, db *gorm.DB) (*models.User, []*models.Product) {
	t.Helper()
	user := &models.User{Email: "asha@example.com", DisplayName: "Asha", Status: constants.UserStatusActive}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	var products []*models.Product
	for i, name := range []string{"Linen Shirt", "Denim Jacket"} {
		product := &models.Product{
			Name:     name,
			Category: "tops",
			Price:    models.NewMoneyFromDecimal(decimal.NewFromInt(int64(1000 * (i + 1)))),
			Stock:    10,
			Size:     "M",
			IsActive: true,
		}
		if err := db.Create(product).Error; err != nil {
			t.Fatalf("create product failed: %v", err)
		}
		products = append(products, product)
	}
	return user, products
}

func TestLocalCartAndBulkOrder(t *testing.T) {
	local, db := setupLocalBackend(t)
	user, products := seedShop(t, db)
	ctx := context.Background()
	uid := shop.IDFromUint(user.ID)

	if err := local.AddToCart(ctx, uid, shop.IDFromUint(products[0].ID), 2, "l"); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	if err := local.AddToCart(ctx, uid, shop.IDFromUint(products[1].ID), 1, ""); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	cart, err := local.FetchCart(ctx, uid)
	if err != nil {
		t.Fatalf("fetch cart failed: %v", err)
	}
	if len(cart) != 2 || cart[0].Size != "L" || cart[0].Name != "Linen Shirt" {
		t.Fatalf("unexpected cart: %+v", cart)
	}
	if !shop.CartTotal(cart).Equal(decimal.NewFromInt(4000)) {
		t.Fatalf("unexpected cart total: %s", shop.CartTotal(cart))
	}

	confirmation, err := local.PlaceBulkOrder(ctx, BulkOrderRequest{
		UserID:          uid,
		Items:           BulkItemsFromCart(cart),
		PaymentMethod:   constants.PaymentMethodUPI,
		DeliveryAddress: "12 Elm St",
	})
	if err != nil {
		t.Fatalf("bulk order failed: %v", err)
	}
	if len(confirmation.OrderIDs) != 2 || confirmation.ItemCount != 3 {
		t.Fatalf("unexpected bulk confirmation: %+v", confirmation)
	}
	if !confirmation.TotalAmount.Equal(decimal.NewFromInt(4000)) || confirmation.Address != "12 Elm St" {
		t.Fatalf("unexpected bulk totals: %+v", confirmation)
	}

	if err := local.ClearCart(ctx, uid); err != nil {
		t.Fatalf("clear cart failed: %v", err)
	}
	cart, _ = local.FetchCart(ctx, uid)
	if len(cart) != 0 {
		t.Fatalf("cart should be empty, got %+v", cart)
	}
	orders, err := local.FetchOrders(ctx, uid)
	if err != nil || len(orders) != 2 {
		t.Fatalf("fetch orders failed: %v %+v", err, orders)
	}
	if orders[0].ExpectedDeliveryDate == "" || !orders[0].Cancellable() {
		t.Fatalf("unexpected order summary: %+v", orders[0])
	}
}

func TestLocalPlaceOrderErrorsAreUserFacing(t *testing.T) {
	local, db := setupLocalBackend(t)
	user, products := seedShop(t, db)
	ctx := context.Background()

	_, err := local.PlaceOrder(ctx, OrderRequest{
		UserID:    shop.IDFromUint(user.ID),
		ProductID: shop.IDFromUint(products[0].ID),
		Quantity:  1,
	})
	var be *Error
	if !errors.As(err, &be) || be.Status != http.StatusBadRequest {
		t.Fatalf("want backend error, got %v", err)
	}
	if !IsAddressError(err) {
		t.Fatalf("missing address should be an address error: %v", err)
	}
	if Message(err, "fallback") != service.ErrDeliveryAddressRequired.Error() {
		t.Fatalf("unexpected message: %s", Message(err, "fallback"))
	}

	if _, err := local.PlaceOrder(ctx, OrderRequest{UserID: "abc", ProductID: "1"}); err == nil {
		t.Fatalf("invalid user id should fail")
	}
}

func TestLocalOrderCancelAndProfile(t *testing.T) {
	local, db := setupLocalBackend(t)
	user, products := seedShop(t, db)
	ctx := context.Background()
	uid := shop.IDFromUint(user.ID)

	confirmation, err := local.PlaceOrder(ctx, OrderRequest{
		UserID:          uid,
		ProductID:       shop.IDFromUint(products[1].ID),
		Quantity:        2,
		Size:            "S",
		PaymentMethod:   constants.PaymentMethodCard,
		DeliveryAddress: "1 Main Rd",
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if !confirmation.Total.Equal(decimal.NewFromInt(4000)) || confirmation.ProductSize != "S" {
		t.Fatalf("unexpected confirmation: %+v", confirmation)
	}
	if err := local.CancelOrder(ctx, uid, confirmation.OrderID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if err := local.CancelOrder(ctx, uid, confirmation.OrderID); err == nil {
		t.Fatalf("second cancel should fail")
	}

	book := shop.NewAddressBook(shop.AddressEntry{Label: "Home", Address: "12 Elm St"})
	if err := local.SaveAddressBook(ctx, uid, book); err != nil {
		t.Fatalf("save address book failed: %v", err)
	}
	profile, err := local.GetProfile(ctx, uid)
	if err != nil {
		t.Fatalf("get profile failed: %v", err)
	}
	if addr, ok := profile.Addresses.Lookup("home"); !ok || addr != "12 Elm St" {
		t.Fatalf("unexpected profile addresses: %+v", profile.Addresses)
	}
	if profile.Name != "Asha" || profile.UserID != uid {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestLocalWishlistToggle(t *testing.T) {
	local, db := setupLocalBackend(t)
	user, products := seedShop(t, db)
	ctx := context.Background()
	uid := shop.IDFromUint(user.ID)
	pid := shop.IDFromUint(products[0].ID)

	if err := local.ToggleWishlist(ctx, uid, pid); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	entries, err := local.FetchWishlist(ctx, uid)
	if err != nil || !shop.InWishlist(entries, pid) {
		t.Fatalf("product should be wishlisted: %v %+v", err, entries)
	}
	if entries[0].WishlistID.IsZero() || entries[0].Name != "Linen Shirt" {
		t.Fatalf("unexpected wishlist entry: %+v", entries[0])
	}
	if err := local.ToggleWishlist(ctx, uid, pid); err != nil {
		t.Fatalf("toggle back failed: %v", err)
	}
	entries, _ = local.FetchWishlist(ctx, uid)
	if shop.InWishlist(entries, pid) {
		t.Fatalf("product should be removed from wishlist")
	}
}
