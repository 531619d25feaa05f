package assistant

import (
	"context"
	"strings"

	"github.com/fashiopulse/internal/backend"
	"github.com/fashiopulse/internal/constants"
	"github.com/fashiopulse/internal/resolver"
	"github.com/fashiopulse/internal/shop"
)

const msgSaveAddressFailed = "Failed to save address. Please try again."

var knownViews = map[string]bool{
	constants.ViewHome:     true,
	constants.ViewDetail:   true,
	constants.ViewCart:     true,
	constants.ViewWishlist: true,
	constants.ViewOrders:   true,
	constants.ViewCheckout: true,
	constants.ViewSuccess:  true,
}

// action 执行一个同步界面操作并返回快照
func (c *Controller) action(fn func() error) (AppState, error) {
	c.touch()
	var snap AppState
	var actionErr error
	err := c.exec(func() {
		if actionErr = fn(); actionErr != nil {
			return
		}
		snap = c.snapshot()
	})
	if err != nil {
		return AppState{}, err
	}
	if actionErr != nil {
		return AppState{}, actionErr
	}
	return snap, nil
}

// findProduct 在候选集、已选商品、心愿单与购物车中查找商品
func (c *Controller) findProduct(productID shop.ID) (shop.Product, bool) {
	for _, p := range c.state.Candidates {
		if p.ID.Equal(productID) {
			return p, true
		}
	}
	if c.state.Selected != nil && c.state.Selected.ID.Equal(productID) {
		return *c.state.Selected, true
	}
	for _, entry := range c.state.Wishlist {
		if entry.ProductID.Equal(productID) {
			return entry.Product(), true
		}
	}
	for _, entry := range c.state.Cart {
		if entry.ProductID.Equal(productID) {
			return entry.Product(), true
		}
	}
	return shop.Product{}, false
}

// OpenProduct 打开商品详情
func (c *Controller) OpenProduct(productID shop.ID) (AppState, error) {
	return c.action(func() error {
		product, ok := c.findProduct(productID)
		if !ok {
			return ErrProductNotInView
		}
		c.state.Selected = &product
		c.state.DetailQuantity = 1
		c.state.DetailSize = product.DefaultSize()
		c.state.Draft.Mode = ""
		c.state.Draft.Product = nil
		c.navigate(constants.ViewDetail)
		return nil
	})
}

// SetDetail 设置详情页数量与尺码
func (c *Controller) SetDetail(quantity int, size string) (AppState, error) {
	return c.action(func() error {
		if quantity >= 1 {
			c.state.DetailQuantity = quantity
		}
		if size = strings.ToUpper(strings.TrimSpace(size)); size != "" {
			c.state.DetailSize = size
		}
		return nil
	})
}

// Navigate 切换视图
func (c *Controller) Navigate(ctx context.Context, view string) (AppState, error) {
	view = strings.ToLower(strings.TrimSpace(view))
	if !knownViews[view] {
		return AppState{}, ErrInvalidView
	}
	return c.action(func() error {
		c.navigate(view)
		if view == constants.ViewOrders {
			c.refreshOrders(ctx)
		}
		return nil
	})
}

// Back 返回上一视图
func (c *Controller) Back() (AppState, error) {
	return c.action(func() error {
		c.back()
		return nil
	})
}

// ShopMore 下单成功后继续购物：导航栈重置为首页
func (c *Controller) ShopMore() (AppState, error) {
	return c.action(func() error {
		c.state.Candidates = nil
		c.state.HasInteracted = false
		c.state.OrderStatus = nil
		c.state.Selected = nil
		c.state.Draft = resolver.OrderDraft{Address: c.state.Draft.Address, Payment: c.state.Draft.Payment}
		c.nav.Reset()
		return nil
	})
}

// IncrementCartItem 数量加一
func (c *Controller) IncrementCartItem(ctx context.Context, cartID shop.ID) (AppState, error) {
	return c.action(func() error {
		if !c.changeCartQuantity(ctx, cartID, 1) {
			return ErrCartItemNotFound
		}
		return nil
	})
}

// DecrementCartItem 数量减一，减到 0 时删除
func (c *Controller) DecrementCartItem(ctx context.Context, cartID shop.ID) (AppState, error) {
	return c.action(func() error {
		if !c.changeCartQuantity(ctx, cartID, -1) {
			return ErrCartItemNotFound
		}
		return nil
	})
}

// RemoveCartItem 删除购物车行，重复删除不报错
func (c *Controller) RemoveCartItem(ctx context.Context, cartID shop.ID) (AppState, error) {
	return c.action(func() error {
		c.removeFromCart(ctx, cartID)
		return nil
	})
}

// ToggleWishlist 切换心愿单
func (c *Controller) ToggleWishlist(ctx context.Context, productID shop.ID) (AppState, error) {
	return c.action(func() error {
		product, ok := c.findProduct(productID)
		if !ok {
			return ErrProductNotInView
		}
		c.toggleWishlist(ctx, product)
		return nil
	})
}

// AddSelectedToCart 详情页加入购物车
func (c *Controller) AddSelectedToCart(ctx context.Context) (AppState, error) {
	return c.action(func() error {
		if c.state.Selected == nil {
			return ErrNoSelectedProduct
		}
		c.addToCart(ctx, *c.state.Selected, c.state.DetailQuantity, c.state.DetailSize)
		return nil
	})
}

// BuySelected 详情页立即购买：暂存单品草稿并进入结账
func (c *Controller) BuySelected() (AppState, error) {
	return c.action(func() error {
		if c.state.Selected == nil {
			return ErrNoSelectedProduct
		}
		product := *c.state.Selected
		c.state.Draft = resolver.OrderDraft{
			Mode:     constants.CheckoutModeSingle,
			Product:  &product,
			Quantity: c.state.DetailQuantity,
			Size:     c.state.DetailSize,
			Address:  c.defaultAddress(),
			Payment:  c.draftPayment(),
		}
		c.navigate(constants.ViewCheckout)
		return nil
	})
}

// CheckoutAll 整车结账，清空已选商品
func (c *Controller) CheckoutAll() (AppState, error) {
	return c.action(func() error {
		if len(c.state.Cart) == 0 {
			c.state.Message = resolver.MsgCartEmpty
			return nil
		}
		c.state.Selected = nil
		c.state.Draft = resolver.OrderDraft{
			Mode:    constants.CheckoutModeBulk,
			Address: c.defaultAddress(),
			Payment: c.draftPayment(),
		}
		c.navigate(constants.ViewCheckout)
		return nil
	})
}

// UpdateCheckout 选择地址或支付方式
func (c *Controller) UpdateCheckout(address, payment string) (AppState, error) {
	return c.action(func() error {
		if address = strings.TrimSpace(address); address != "" {
			c.state.Draft.Address = address
		}
		if payment = resolver.CanonicalPaymentMethod(payment); payment != "" {
			c.state.Draft.Payment = payment
		}
		return nil
	})
}

// SetAddressSurface 打开或关闭地址管理面板
func (c *Controller) SetAddressSurface(open bool) (AppState, error) {
	return c.action(func() error {
		c.state.AddressSurfaceOpen = open
		return nil
	})
}

// CancelOrder 取消订单，结果通过消息与订单列表异步体现
func (c *Controller) CancelOrder(ctx context.Context, orderID shop.ID) (AppState, error) {
	if orderID.IsZero() {
		return AppState{}, ErrInvalidOrderID
	}
	return c.action(func() error {
		c.state.Message = resolver.MsgCancellingOrder(orderID.String())
		c.cancelOrder(ctx, orderID)
		return nil
	})
}

// ConfirmOrder 结账页确认下单
func (c *Controller) ConfirmOrder(ctx context.Context) (AppState, error) {
	c.touch()
	if err := c.acquire(); err != nil {
		return AppState{}, err
	}
	var pending *placement
	err := c.exec(func() {
		decision := resolver.ContinueCheckout(c.input(&resolver.Intent{Category: constants.IntentOrder}))
		if decision.Message != "" {
			c.state.Message = decision.Message
		}
		pending = c.apply(ctx, decision.Effects)
	})
	if err != nil {
		return AppState{}, err
	}
	if pending != nil {
		c.place(ctx, pending)
	} else {
		c.release()
	}
	return c.State()
}

// SaveAddress 保存地址到地址簿并选为当前配送地址
func (c *Controller) SaveAddress(ctx context.Context, label, address string) (AppState, error) {
	label = strings.TrimSpace(label)
	address = strings.TrimSpace(address)
	if label == "" || address == "" {
		return AppState{}, ErrInvalidAddress
	}
	c.touch()
	if err := c.acquire(); err != nil {
		return AppState{}, err
	}
	defer c.release()

	var book shop.AddressBook
	if err := c.exec(func() {
		book = c.state.Profile.Addresses.Clone()
		book.Set(label, address)
	}); err != nil {
		return AppState{}, err
	}
	saveErr := c.deps.Backend.SaveAddressBook(ctx, c.userID, book)
	err := c.exec(func() {
		if saveErr != nil {
			c.log.Warnw("assistant_address_save_failed", "label", label, "error", saveErr)
			c.state.Message = backend.Message(saveErr, msgSaveAddressFailed)
			return
		}
		c.state.Profile.Addresses = book
		c.state.Draft.Address = address
		c.state.AddressSurfaceOpen = false
		c.state.Message = resolver.MsgAddressSaved
		c.saveSession(ctx)
	})
	if err != nil {
		return AppState{}, err
	}
	return c.State()
}

// defaultAddress 已选地址优先，否则使用地址簿第一项
func (c *Controller) defaultAddress() string {
	if c.state.Draft.Address != "" {
		return c.state.Draft.Address
	}
	address, _ := c.state.Profile.Addresses.First()
	return address
}

func (c *Controller) draftPayment() string {
	if c.state.Draft.Payment != "" {
		return c.state.Draft.Payment
	}
	return c.deps.DefaultPayment
}
