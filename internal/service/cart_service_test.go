package service

import (
	"errors"
	"testing"
)

func TestCartServiceLifecycle(t *testing.T) {
	svc := setupShopServices(t)
	product := svc.createProduct(t, "Linen Shirt", 1299, 10)

	item, err := svc.cart.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if item.Size != "M" || item.Product == nil {
		t.Fatalf("size should default to product size and product preloaded: %+v", item)
	}
	again, err := svc.cart.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("add again failed: %v", err)
	}
	if again.ID != item.ID || again.Quantity != 3 {
		t.Fatalf("same size add should merge, got %+v", again)
	}

	if err := svc.cart.UpdateQuantity(1, item.ID, 5); err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	if err := svc.cart.UpdateQuantity(1, 999, 2); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("unknown row want ErrCartItemNotFound got %v", err)
	}
	if err := svc.cart.UpdateQuantity(1, item.ID, 0); err != nil {
		t.Fatalf("quantity below 1 should remove, got %v", err)
	}
	items, err := svc.cart.ListByUser(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("cart should be empty, got %d", len(items))
	}
	if err := svc.cart.RemoveItem(1, item.ID); err != nil {
		t.Fatalf("removing an absent row should succeed, got %v", err)
	}
}

func TestCartServiceRejectsInvalidInput(t *testing.T) {
	svc := setupShopServices(t)
	product := svc.createProduct(t, "Linen Shirt", 1299, 10)
	if _, err := svc.cart.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 0}); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("want ErrInvalidQuantity got %v", err)
	}
	if _, err := svc.cart.AddItem(AddCartItemInput{UserID: 1, ProductID: 404, Quantity: 1}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound got %v", err)
	}
	if err := svc.db.Model(product).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if _, err := svc.cart.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("want ErrProductNotAvailable got %v", err)
	}
}

func TestWishlistToggle(t *testing.T) {
	svc := setupShopServices(t)
	product := svc.createProduct(t, "Linen Shirt", 1299, 10)

	added, err := svc.wishlist.Toggle(1, product.ID)
	if err != nil || !added {
		t.Fatalf("first toggle should add, added=%v err=%v", added, err)
	}
	items, err := svc.wishlist.ListByUser(1)
	if err != nil || len(items) != 1 || items[0].Product == nil {
		t.Fatalf("wishlist should contain product, items=%+v err=%v", items, err)
	}
	added, err = svc.wishlist.Toggle(1, product.ID)
	if err != nil || added {
		t.Fatalf("second toggle should remove, added=%v err=%v", added, err)
	}
	if _, err := svc.wishlist.Toggle(1, 404); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound got %v", err)
	}
}

func TestProductSearchKeywords(t *testing.T) {
	got := searchKeywords("Show me some blue Denim jackets, please!")
	want := []string{"blue", "denim", "jacket"}
	if len(got) != len(want) {
		t.Fatalf("keywords want %v got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keywords want %v got %v", want, got)
		}
	}

	svc := setupShopServices(t)
	svc.createProduct(t, "Denim Jacket", 2499, 10)
	svc.createProduct(t, "Linen Shirt", 1299, 10)
	products, err := svc.products.Search(ProductSearchInput{Query: "denim jackets"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Denim Jacket" {
		t.Fatalf("unexpected search result: %+v", products)
	}
}
