package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/fashiopulse/internal/constants"
	"github.com/fashiopulse/internal/models"
	"github.com/fashiopulse/internal/shop"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupRepositoryTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repository_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.CartItem{}, &models.WishlistItem{}, &models.Order{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func createProduct(t *testing.T, repo *GormProductRepository, name, category, color string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:     name,
		Category: category,
		Color:    color,
		Gender:   "unisex",
		Price:    models.NewMoneyFromDecimal(decimal.NewFromInt(999)),
		Stock:    stock,
		IsActive: true,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestProductRepositorySearch(t *testing.T) {
	repo := NewProductRepository(setupRepositoryTest(t))
	createProduct(t, repo, "Classic Denim Jacket", "jackets", "blue", 10)
	createProduct(t, repo, "Denim Shorts", "shorts", "black", 10)
	createProduct(t, repo, "Linen Shirt", "shirts", "white", 10)

	products, err := repo.Search(ProductSearchFilter{Keywords: []string{"denim"}, OnlyActive: true})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("denim search want 2 got %d", len(products))
	}

	products, err = repo.Search(ProductSearchFilter{Keywords: []string{"denim", "blue"}})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Classic Denim Jacket" {
		t.Fatalf("keywords should be combined with AND, got %+v", products)
	}

	products, err = repo.Search(ProductSearchFilter{Category: "SHIRTS"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("category search want 1 got %d", len(products))
	}

	products, err = repo.Search(ProductSearchFilter{Limit: 1})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("limit should apply, got %d", len(products))
	}
}

func TestProductRepositoryStock(t *testing.T) {
	repo := NewProductRepository(setupRepositoryTest(t))
	product := createProduct(t, repo, "Hoodie", "hoodies", "black", 2)

	affected, err := repo.DecrementStock(product.ID, 3)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("insufficient stock should affect 0 rows, got %d", affected)
	}
	if affected, err = repo.DecrementStock(product.ID, 2); err != nil || affected != 1 {
		t.Fatalf("decrement want 1 row got %d err=%v", affected, err)
	}
	if _, err := repo.RestoreStock(product.ID, 1); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	reloaded, err := repo.GetByID(product.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Stock != 1 {
		t.Fatalf("stock want 1 got %d", reloaded.Stock)
	}
	if _, err := repo.DecrementStock(0, 1); err == nil {
		t.Fatalf("invalid params should fail")
	}
}

func TestCartRepositoryUpsertMergesSameSize(t *testing.T) {
	db := setupRepositoryTest(t)
	product := createProduct(t, NewProductRepository(db), "Tee", "t-shirts", "white", 10)
	repo := NewCartRepository(db)

	for _, item := range []models.CartItem{
		{UserID: 1, ProductID: product.ID, Size: "M", Quantity: 1},
		{UserID: 1, ProductID: product.ID, Size: "M", Quantity: 2},
		{UserID: 1, ProductID: product.ID, Size: "L", Quantity: 1},
	} {
		item := item
		if err := repo.Upsert(&item); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
		if item.ID == 0 {
			t.Fatalf("upsert should populate id")
		}
	}
	items, err := repo.ListByUser(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("want 2 rows got %d", len(items))
	}
	if items[0].Quantity != 3 || items[0].Product == nil {
		t.Fatalf("same size should merge quantity and preload product, got %+v", items[0])
	}

	if err := repo.DeleteByID(1, items[0].ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	readd := models.CartItem{UserID: 1, ProductID: product.ID, Size: "M", Quantity: 1}
	if err := repo.Upsert(&readd); err != nil {
		t.Fatalf("re-adding a removed row should succeed: %v", err)
	}
	if affected, err := repo.UpdateQuantity(2, readd.ID, 5); err != nil || affected != 0 {
		t.Fatalf("other user must not update row, affected=%d err=%v", affected, err)
	}
}

func TestOrderRepositoryTransitionStatus(t *testing.T) {
	repo := NewOrderRepository(setupRepositoryTest(t))
	order := &models.Order{
		OrderNo:         "FP1",
		UserID:          1,
		ProductID:       1,
		Quantity:        1,
		PaymentMethod:   constants.PaymentMethodCOD,
		DeliveryAddress: "12 Elm St",
		Status:          constants.OrderStatusPlaced,
	}
	if err := repo.Create(order); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	cancellable := []string{constants.OrderStatusPlaced, constants.OrderStatusProcessing}
	affected, err := repo.TransitionStatus(order.ID, cancellable, constants.OrderStatusCancelled, nil)
	if err != nil || affected != 1 {
		t.Fatalf("first cancel want 1 row got %d err=%v", affected, err)
	}
	affected, err = repo.TransitionStatus(order.ID, cancellable, constants.OrderStatusCancelled, nil)
	if err != nil || affected != 0 {
		t.Fatalf("second cancel want 0 rows got %d err=%v", affected, err)
	}
	if found, _ := repo.GetByIDAndUser(order.ID, 2); found != nil {
		t.Fatalf("order must not be visible to other users")
	}
}

func TestUserRepositoryAddresses(t *testing.T) {
	repo := NewUserRepository(setupRepositoryTest(t))
	user := &models.User{Email: "asha@example.com", DisplayName: "Asha"}
	if err := repo.Create(user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	book := shop.NewAddressBook(
		shop.AddressEntry{Label: "Home", Address: "12 Elm St"},
		shop.AddressEntry{Label: "Office", Address: "1 Main Rd"},
	)
	if err := repo.UpdateAddresses(user.ID, book); err != nil {
		t.Fatalf("update addresses failed: %v", err)
	}
	reloaded, err := repo.GetByEmail(" ASHA@example.com ")
	if err != nil || reloaded == nil {
		t.Fatalf("get by email failed: %v", err)
	}
	entries := reloaded.Addresses.Entries()
	if len(entries) != 2 || entries[0].Label != "Home" || entries[1].Address != "1 Main Rd" {
		t.Fatalf("address book not persisted in order: %+v", entries)
	}
}
