package assistant

import (
	"github.com/fashiopulse/internal/constants"
	"github.com/fashiopulse/internal/resolver"
	"github.com/fashiopulse/internal/shop"
)

// AppState 助手会话的界面状态，只由控制器队列修改
type AppState struct {
	View               string               `json:"view"`
	Navigation         []string             `json:"navigation"`
	Candidates         shop.CandidateSet    `json:"products"`
	Selected           *shop.Product        `json:"selected_product,omitempty"`
	Draft              resolver.OrderDraft  `json:"draft"`
	Profile            shop.Profile         `json:"user"`
	Cart               []shop.CartEntry     `json:"cart"`
	Wishlist           []shop.WishlistEntry `json:"wishlist"`
	Orders             []shop.OrderSummary  `json:"orders"`
	Message            string               `json:"message"`
	OrderStatus        *shop.OrderStatus    `json:"order_status,omitempty"`
	AddressSurfaceOpen bool                 `json:"address_surface_open"`
	DetailQuantity     int                  `json:"detail_quantity"`
	DetailSize         string               `json:"detail_size"`
	Loading            bool                 `json:"loading"`
	HasInteracted      bool                 `json:"has_interacted"`
}

func newAppState(defaultSize string) AppState {
	return AppState{
		View:           constants.ViewHome,
		Navigation:     []string{constants.ViewHome},
		DetailQuantity: 1,
		DetailSize:     defaultSize,
	}
}

// CartTotal 购物车合计
func (s AppState) CartTotal() string {
	return shop.CartTotal(s.Cart).StringFixed(2)
}

// clone 深拷贝，返回给调用方的快照不与队列内状态共享底层数组
func (s AppState) clone() AppState {
	out := s
	out.Navigation = append([]string(nil), s.Navigation...)
	out.Candidates = append(shop.CandidateSet(nil), s.Candidates...)
	out.Cart = append([]shop.CartEntry(nil), s.Cart...)
	out.Wishlist = append([]shop.WishlistEntry(nil), s.Wishlist...)
	out.Orders = append([]shop.OrderSummary(nil), s.Orders...)
	out.Profile = s.Profile.Clone()
	if s.Selected != nil {
		p := *s.Selected
		out.Selected = &p
	}
	if s.Draft.Product != nil {
		p := *s.Draft.Product
		out.Draft.Product = &p
	}
	if s.OrderStatus != nil {
		status := *s.OrderStatus
		if status.Single != nil {
			single := *status.Single
			status.Single = &single
		}
		if status.Batch != nil {
			batch := *status.Batch
			batch.OrderIDs = append([]shop.ID(nil), batch.OrderIDs...)
			status.Batch = &batch
		}
		out.OrderStatus = &status
	}
	return out
}
