package resolver

import (
	"github.com/fashiopulse/internal/constants"
	"github.com/fashiopulse/internal/shop"
)

// OrderDraft 待确认的结账上下文
type OrderDraft struct {
	Mode     string        `json:"mode,omitempty"` // single / bulk，空表示未进入结账
	Product  *shop.Product `json:"product,omitempty"`
	Quantity int           `json:"quantity,omitempty"`
	Size     string        `json:"size,omitempty"`
	Address  string        `json:"address"`
	Payment  string        `json:"payment_method"`
}

// Bulk 是否为整车结账
func (d OrderDraft) Bulk() bool {
	return d.Mode == constants.CheckoutModeBulk
}

// Single 是否为单品结账且已选商品
func (d OrderDraft) Single() bool {
	return d.Mode == constants.CheckoutModeSingle && d.Product != nil
}

// Effect 调度器产出的状态变更命令，由控制器按顺序执行
type Effect interface {
	effectName() string
}

// Navigate 压入视图
type Navigate struct{ View string }

// Back 弹出视图
type Back struct{}

// OpenAddressSurface 打开地址管理面板
type OpenAddressSurface struct{}

// SelectProduct 设置当前聚焦商品
type SelectProduct struct{ Product shop.Product }

// StageCheckout 暂存结账草稿；整车模式清空已选商品
type StageCheckout struct{ Draft OrderDraft }

// UpdateDraft 覆盖草稿中非空字段
type UpdateDraft struct {
	Address string
	Payment string
}

// AddToCart 加入购物车
type AddToCart struct {
	Product  shop.Product
	Quantity int
	Size     string
}

// ToggleWishlist 切换心愿单成员
type ToggleWishlist struct{ Product shop.Product }

// PlaceOrder 单品下单
type PlaceOrder struct {
	Product  shop.Product
	Quantity int
	Size     string
	Address  string
	Payment  string
}

// PlaceBulkOrder 整车下单
type PlaceBulkOrder struct {
	Address string
	Payment string
}

// CancelOrder 取消订单（尽力而为，不回报错误）
type CancelOrder struct{ OrderID shop.ID }

// RefreshOrders 刷新订单列表
type RefreshOrders struct{}

func (Navigate) effectName() string           { return "navigate" }
func (Back) effectName() string               { return "back" }
func (OpenAddressSurface) effectName() string { return "open_address_surface" }
func (SelectProduct) effectName() string      { return "select_product" }
func (StageCheckout) effectName() string      { return "stage_checkout" }
func (UpdateDraft) effectName() string        { return "update_draft" }
func (AddToCart) effectName() string          { return "add_to_cart" }
func (ToggleWishlist) effectName() string     { return "toggle_wishlist" }
func (PlaceOrder) effectName() string         { return "place_order" }
func (PlaceBulkOrder) effectName() string     { return "place_bulk_order" }
func (CancelOrder) effectName() string        { return "cancel_order" }
func (RefreshOrders) effectName() string      { return "refresh_orders" }

// EffectName 日志与指标使用的名称
func EffectName(e Effect) string {
	if e == nil {
		return ""
	}
	return e.effectName()
}

// Decision 一次调度的结果；Message 为空时沿用语言模型的回复
type Decision struct {
	Message string
	Effects []Effect
}

func (d *Decision) add(effects ...Effect) {
	d.Effects = append(d.Effects, effects...)
}

// EffectNames 返回命令名称序列
func (d Decision) EffectNames() []string {
	names := make([]string, 0, len(d.Effects))
	for _, e := range d.Effects {
		names = append(names, EffectName(e))
	}
	return names
}
