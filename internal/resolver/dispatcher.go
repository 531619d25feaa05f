package resolver

import (
	"strings"

	"github.com/fashiopulse/internal/constants"
	"github.com/fashiopulse/internal/shop"
)

// Input 调度所需的完整上下文快照
type Input struct {
	Intent         *Intent
	View           string
	Selected       *shop.Product
	Draft          OrderDraft
	Candidates     shop.CandidateSet
	Addresses      shop.AddressBook
	Cart           []shop.CartEntry
	Wishlist       []shop.WishlistEntry
	DetailQuantity int
	DetailSize     string
	DefaultPayment string
}

func (in Input) defaultPayment() string {
	if p := strings.TrimSpace(in.DefaultPayment); p != "" {
		return p
	}
	return constants.DefaultPaymentMethod
}

func (in Input) product() *shop.Product {
	return ResolveReference(in.Intent.ProductReference, in.Candidates, in.Selected, in.View)
}

// Dispatch 根据意图、当前视图与上下文决定要执行的命令
// 纯函数，不做任何 I/O
func Dispatch(in Input) Decision {
	var d Decision
	it := in.Intent
	if it == nil {
		return d
	}
	if it.AddressAction == constants.AddressActionOpen {
		d.add(OpenAddressSurface{})
	}

	switch it.Category {
	case constants.IntentSearch:
		if it.Action == constants.ActionBack {
			d.add(Back{})
		} else {
			d.add(Navigate{View: constants.ViewHome})
		}
	case constants.IntentCart:
		dispatchCart(in, &d)
	case constants.IntentWishlist:
		dispatchWishlist(in, &d)
	case constants.IntentOrder:
		dispatchOrder(in, &d)
	case constants.IntentPayment:
		if it.Action == constants.ActionComplete {
			dispatchPaymentComplete(in, &d)
		}
	}
	return d
}

func dispatchCart(in Input, d *Decision) {
	if in.Intent.Action != constants.ActionAdd {
		d.add(Navigate{View: constants.ViewCart})
		return
	}
	product := in.product()
	if product == nil {
		d.Message = MsgWhichCartItem
		return
	}
	qty := in.Intent.Quantity
	if qty < 1 {
		qty = 1
	}
	d.Message = MsgAddingToCart(product.Name)
	d.add(AddToCart{Product: *product, Quantity: qty, Size: product.DefaultSize()})
}

func dispatchWishlist(in Input, d *Decision) {
	if in.Intent.Action != constants.ActionAdd {
		d.add(Navigate{View: constants.ViewWishlist})
		return
	}
	product := in.product()
	if product == nil {
		d.Message = MsgWhichWishlistItem
		return
	}
	// 已在心愿单时不切换，避免误删
	if shop.InWishlist(in.Wishlist, product.ID) {
		d.Message = MsgAlreadyInWishlist(product.Name)
		return
	}
	d.Message = MsgAddingToWishlist(product.Name)
	d.add(ToggleWishlist{Product: *product})
}

func dispatchOrder(in Input, d *Decision) {
	it := in.Intent
	switch it.Action {
	case constants.ActionCancel:
		if it.OrderID.IsZero() {
			d.Message = MsgAskCancelOrderID
			d.add(Navigate{View: constants.ViewOrders})
			return
		}
		d.Message = MsgCancellingOrder(it.OrderID.String())
		d.add(CancelOrder{OrderID: it.OrderID})
		return
	case constants.ActionList:
		d.Message = MsgShowingOrders
		d.add(RefreshOrders{}, Navigate{View: constants.ViewOrders})
		return
	}

	switch in.View {
	case constants.ViewCart:
		if it.Action == "" || it.Action == constants.ActionBuy || it.Action == constants.ActionCheckout {
			checkoutFromCart(in, d)
			return
		}
	case constants.ViewCheckout:
		merge(d, ContinueCheckout(in))
		return
	}

	if product := in.product(); product != nil {
		directOrder(in, *product, d)
		return
	}
	if it.Action == constants.ActionCheckout {
		if len(in.Cart) == 0 {
			d.Message = MsgCartEmptyNoProduct
			return
		}
		stage, resolved := stageBulk(in)
		d.add(stage, Navigate{View: constants.ViewCheckout})
		if !resolved {
			d.Message = MsgAddressLabelUnknown
			d.add(OpenAddressSurface{})
		}
		return
	}
	// 指代无法解析时请用户澄清，不猜测商品
	if it.ProductReference != "" || it.Action == constants.ActionBuy {
		d.Message = MsgWhichOrderItem
	}
}

// checkoutFromCart 购物车页下单：暂存整车草稿，无覆盖字段时直接视为确认
func checkoutFromCart(in Input, d *Decision) {
	if len(in.Cart) == 0 {
		d.Message = MsgCartEmpty
		return
	}
	stage, resolved := stageBulk(in)
	d.add(stage, Navigate{View: constants.ViewCheckout})
	if !resolved {
		d.Message = MsgAddressLabelUnknown
		d.add(OpenAddressSurface{})
		return
	}
	if in.Intent.HasDraftOverrides() {
		d.Message = MsgProceedingToCheckout
		return
	}
	in.Draft = stage.Draft
	merge(d, confirm(in))
}

// stageBulk 暂存整车草稿；用户给出的地址无法解析时 resolved 为 false
func stageBulk(in Input) (stage StageCheckout, resolved bool) {
	it := in.Intent
	hinted := ResolveAddress(AddressQuery{
		Manual: it.ManualAddress,
		Label:  it.AddressLabel,
		Book:   in.Addresses,
	})
	resolved = hinted != "" || !it.HasAddressHint()
	address := hinted
	if address == "" {
		address = in.Draft.Address
	}
	if address == "" {
		address, _ = in.Addresses.First()
	}
	payment := it.PaymentMethod
	if payment == "" {
		payment = in.Draft.Payment
	}
	if payment == "" {
		payment = in.defaultPayment()
	}
	stage = StageCheckout{Draft: OrderDraft{
		Mode:    constants.CheckoutModeBulk,
		Address: address,
		Payment: payment,
	}}
	return stage, resolved
}

// directOrder 首页/详情/搜索上下文的直购快速通道，不经过结账确认
func directOrder(in Input, product shop.Product, d *Decision) {
	it := in.Intent
	address := ResolveAddress(AddressQuery{
		Manual:     it.ManualAddress,
		Label:      it.AddressLabel,
		Book:       in.Addresses,
		RequireAny: true,
	})
	qty := it.Quantity
	if qty < 1 && in.View == constants.ViewDetail {
		qty = in.DetailQuantity
	}
	if qty < 1 {
		qty = 1
	}
	size := product.DefaultSize()
	if in.View == constants.ViewDetail && strings.TrimSpace(in.DetailSize) != "" {
		size = in.DetailSize
	}
	payment := it.PaymentMethod
	if payment == "" {
		payment = in.defaultPayment()
	}

	if address != "" {
		d.Message = MsgDirectOrdering(qty, product.Name, address)
		d.add(PlaceOrder{Product: product, Quantity: qty, Size: size, Address: address, Payment: payment})
		return
	}

	stage := StageCheckout{Draft: OrderDraft{
		Mode:     constants.CheckoutModeSingle,
		Product:  &product,
		Quantity: qty,
		Size:     size,
		Address:  in.Draft.Address,
		Payment:  payment,
	}}
	if it.HasAddressHint() {
		d.Message = MsgAddressUnresolved
	}
	d.add(SelectProduct{Product: product}, stage, Navigate{View: constants.ViewCheckout})
}

// ContinueCheckout 结账页的后续意图
// 携带支付/地址字段时只更新草稿并要求确认；不携带任何字段时视为确认下单
func ContinueCheckout(in Input) Decision {
	var d Decision
	it := in.Intent
	if it == nil {
		return d
	}
	if it.HasDraftOverrides() {
		address := ResolveAddress(AddressQuery{
			Manual: it.ManualAddress,
			Label:  it.AddressLabel,
			Book:   in.Addresses,
		})
		d.add(UpdateDraft{Address: address, Payment: it.PaymentMethod})
		if it.HasAddressHint() && address == "" {
			d.Message = MsgAddressLabelUnknown
			d.add(OpenAddressSurface{})
			return d
		}
		d.Message = MsgDraftUpdated
		return d
	}
	return confirm(in)
}

func confirm(in Input) Decision {
	var d Decision
	draft := in.Draft
	payment := draft.Payment
	if payment == "" {
		payment = in.defaultPayment()
	}
	switch {
	case draft.Bulk():
		if len(in.Cart) == 0 {
			d.Message = MsgCartEmpty
			return d
		}
		if draft.Address == "" {
			d.Message = MsgSelectAddressToOrder
			d.add(OpenAddressSurface{})
			return d
		}
		d.add(PlaceBulkOrder{Address: draft.Address, Payment: payment})
	case draft.Single():
		if draft.Address == "" {
			d.Message = MsgSelectAddressToOrder
			d.add(OpenAddressSurface{})
			return d
		}
		qty := draft.Quantity
		if qty < 1 {
			qty = 1
		}
		size := draft.Size
		if size == "" {
			size = draft.Product.DefaultSize()
		}
		d.add(PlaceOrder{Product: *draft.Product, Quantity: qty, Size: size, Address: draft.Address, Payment: payment})
	default:
		d.Message = MsgNothingToCheckout
	}
	return d
}

func dispatchPaymentComplete(in Input, d *Decision) {
	if in.View != constants.ViewCheckout || !in.Draft.Single() {
		d.Message = MsgNotAtPaymentStage
		return
	}
	merge(d, confirm(in))
}

func merge(d *Decision, other Decision) {
	if other.Message != "" {
		d.Message = other.Message
	}
	d.add(other.Effects...)
}
