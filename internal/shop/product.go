package shop

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultSize 商品未声明尺码时的默认值
const DefaultSize = "M"

// Product 商品快照，获取后不再修改
type Product struct {
	ID          ID              `json:"product_id"`
	Name        string          `json:"product_name"`
	Image       string          `json:"product_image"`
	Price       decimal.Decimal `json:"product_price"`
	Category    string          `json:"product_category"`
	Description string          `json:"product_description"`
	Stock       int             `json:"stock"`
	Size        string          `json:"size"`
	Color       string          `json:"color"`
}

// DefaultSize 返回商品默认尺码
func (p Product) DefaultSize() string {
	if size := strings.TrimSpace(p.Size); size != "" {
		return size
	}
	return DefaultSize
}

// CandidateSet 当前可被序号引用的商品序列
type CandidateSet []Product

// At 越界返回 nil
func (c CandidateSet) At(index int) *Product {
	if index < 0 || index >= len(c) {
		return nil
	}
	p := c[index]
	return &p
}

// CartEntry 购物车行
type CartEntry struct {
	CartID    ID              `json:"cart_id"`
	ProductID ID              `json:"product"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size"`
	Name      string          `json:"product_name"`
	Image     string          `json:"product_image"`
	Price     decimal.Decimal `json:"product_price"`
}

// LineTotal 行小计
func (e CartEntry) LineTotal() decimal.Decimal {
	return e.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// Product 还原为商品快照，用于从购物车进入详情
func (e CartEntry) Product() Product {
	return Product{ID: e.ProductID, Name: e.Name, Image: e.Image, Price: e.Price, Size: e.Size}
}

// CartTotal 购物车合计
func CartTotal(entries []CartEntry) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range entries {
		total = total.Add(entry.LineTotal())
	}
	return total
}

// WishlistEntry 心愿单条目，以商品 ID 为集合键
type WishlistEntry struct {
	WishlistID  ID              `json:"wishlist_id"`
	ProductID   ID              `json:"product"`
	Name        string          `json:"product_name"`
	Image       string          `json:"product_image"`
	Price       decimal.Decimal `json:"product_price"`
	Category    string          `json:"product_category"`
	Description string          `json:"product_description"`
	Color       string          `json:"color"`
	Stock       int             `json:"stock"`
}

// Product 还原为商品快照
func (e WishlistEntry) Product() Product {
	return Product{
		ID:          e.ProductID,
		Name:        e.Name,
		Image:       e.Image,
		Price:       e.Price,
		Category:    e.Category,
		Description: e.Description,
		Color:       e.Color,
		Stock:       e.Stock,
	}
}

// WishlistEntryFromProduct 乐观写入时使用的临时条目
func WishlistEntryFromProduct(p Product) WishlistEntry {
	return WishlistEntry{
		ProductID:   p.ID,
		Name:        p.Name,
		Image:       p.Image,
		Price:       p.Price,
		Category:    p.Category,
		Description: p.Description,
		Color:       p.Color,
		Stock:       p.Stock,
	}
}

// InWishlist 判断商品是否在心愿单中
func InWishlist(entries []WishlistEntry, productID ID) bool {
	for _, entry := range entries {
		if entry.ProductID.Equal(productID) {
			return true
		}
	}
	return false
}

// OrderSummary 订单列表项
type OrderSummary struct {
	OrderID              ID              `json:"order_id"`
	ProductID            ID              `json:"product_id"`
	ProductName          string          `json:"product_name"`
	ProductImage         string          `json:"product_image"`
	Quantity             int             `json:"quantity"`
	Size                 string          `json:"size"`
	TotalAmount          decimal.Decimal `json:"total_amount"`
	Status               string          `json:"order_status"`
	PaymentMethod        string          `json:"payment_method"`
	DeliveryAddress      string          `json:"delivery_address"`
	CreatedAt            time.Time       `json:"created_at"`
	ExpectedDeliveryDate string          `json:"expected_delivery_date,omitempty"`
}

// Cancellable 仅已下单或处理中的订单可取消
func (o OrderSummary) Cancellable() bool {
	switch strings.ToLower(strings.TrimSpace(o.Status)) {
	case "placed", "processing":
		return true
	}
	return false
}

// OrderConfirmation 单品下单回执
type OrderConfirmation struct {
	OrderID       ID              `json:"order_id"`
	ProductName   string          `json:"product_name"`
	ProductImage  string          `json:"product_image"`
	ProductSize   string          `json:"product_size"`
	Quantity      int             `json:"quantity"`
	PricePerItem  decimal.Decimal `json:"price_per_item"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	Address       string          `json:"address"`
}

// BulkOrderConfirmation 整车下单回执
type BulkOrderConfirmation struct {
	OrderIDs      []ID            `json:"order_ids"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	ItemCount     int             `json:"item_count"`
	PaymentMethod string          `json:"payment_method"`
	Address       string          `json:"address"`
}

// OrderStatus 成功页展示的回执，二选一
type OrderStatus struct {
	Bulk   bool                   `json:"bulk"`
	Single *OrderConfirmation     `json:"single,omitempty"`
	Batch  *BulkOrderConfirmation `json:"batch,omitempty"`
}
