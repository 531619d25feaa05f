package public

import (
	"github.com/fashiopulse/internal/assistant"
	"github.com/fashiopulse/internal/http/response"
	"github.com/fashiopulse/internal/shop"

	"github.com/gin-gonic/gin"
)

// CommandRequest 自然语言指令
type CommandRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// NavigateRequest 视图切换
type NavigateRequest struct {
	View string `json:"view" binding:"required"`
}

// ProductRequest 商品操作
type ProductRequest struct {
	ProductID shop.ID `json:"product_id" binding:"required"`
}

// DetailRequest 详情页数量与尺码
type DetailRequest struct {
	Quantity int    `json:"quantity"`
	Size     string `json:"size"`
}

// CheckoutRequest 结账页地址与支付方式
type CheckoutRequest struct {
	Address       string `json:"address"`
	PaymentMethod string `json:"payment_method"`
}

// AddressSurfaceRequest 地址面板开关
type AddressSurfaceRequest struct {
	Open bool `json:"open"`
}

// SaveAddressRequest 保存地址
type SaveAddressRequest struct {
	Label   string `json:"label" binding:"required"`
	Address string `json:"address" binding:"required"`
}

// StateResponse 助手状态响应
type StateResponse struct {
	assistant.AppState
	CartTotal string `json:"cart_total"`
}

// session 获取当前用户的助手会话，失败时已写入响应
func (h *Handler) session(c *gin.Context) (*assistant.Controller, bool) {
	uid, ok := getShopUserID(c)
	if !ok {
		return nil, false
	}
	ctrl, err := h.Assistant.Get(c.Request.Context(), uid)
	if err != nil {
		respondWithMappedError(c, err, assistantErrorRules, response.CodeInternal, msgAssistantFailed)
		return nil, false
	}
	return ctrl, true
}

func respondState(c *gin.Context, state assistant.AppState, err error) {
	if err != nil {
		respondWithMappedError(c, err, assistantErrorRules, response.CodeInternal, msgAssistantFailed)
		return
	}
	response.Success(c, StateResponse{AppState: state, CartTotal: state.CartTotal()})
}

// AssistantCommand 处理自然语言指令
func (h *Handler) AssistantCommand(c *gin.Context) {
	var req CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgBadRequest, nil)
		return
	}
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	state, err := ctrl.HandleCommand(c.Request.Context(), req.Prompt)
	respondState(c, state, err)
}

// AssistantState 获取当前状态
func (h *Handler) AssistantState(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	state, err := ctrl.State()
	respondState(c, state, err)
}

// AssistantNavigate 切换视图
func (h *Handler) AssistantNavigate(c *gin.Context) {
	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgBadRequest, nil)
		return
	}
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	state, err := ctrl.Navigate(c.Request.Context(), req.View)
	respondState(c, state, err)
}

// AssistantBack 返回上一视图
func (h *Handler) AssistantBack(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	state, err := ctrl.Back()
	respondState(c, state, err)
}

// AssistantShopMore 下单后继续购物
func (h *Handler) AssistantShopMore(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	state, err := ctrl.ShopMore()
	respondState(c, state, err)
}

// AssistantSelectProduct 打开商品详情
func (h *Handler) AssistantSelectProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgBadRequest, nil)
		return
	}
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	state, err := ctrl.OpenProduct(req.ProductID)
	respondState(c, state, err)
}

// AssistantUpdateDetail 设置详情页数量与尺码
func (h *Handler) AssistantUpdateDetail(c *gin.Context) {
	var req DetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgBadRequest, nil)
		return
	}
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	state, err := ctrl.SetDetail(req.Quantity, req.Size)
	respondState(c, state, err)
}

// AssistantDetailAddToCart 详情页加入购物车
func (h *Handler) AssistantDetailAddToCart(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	state, err := ctrl.AddSelectedToCart(c.Request.Context())
	respondState(c, state, err)
}

// AssistantDetailBuyNow 详情页立即购买
func (h *Handler) AssistantDetailBuyNow(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	state, err := ctrl.BuySelected()
	respondState(c, state, err)
}

// AssistantCartIncrement 购物车行数量加一
func (h *Handler) AssistantCartIncrement(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	state, err := ctrl.IncrementCartItem(c.Request.Context(), shop.ParseID(c.Param("cart_id")))
	respondState(c, state, err)
}

// AssistantCartDecrement 购物车行数量减一
func (h *Handler) AssistantCartDecrement(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	state, err := ctrl.DecrementCartItem(c.Request.Context(), shop.ParseID(c.Param("cart_id")))
	respondState(c, state, err)
}

// AssistantCartRemove 删除购物车行
func (h *Handler) AssistantCartRemove(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	state, err := ctrl.RemoveCartItem(c.Request.Context(), shop.ParseID(c.Param("cart_id")))
	respondState(c, state, err)
}

// AssistantWishlistToggle 切换心愿单
func (h *Handler) AssistantWishlistToggle(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgBadRequest, nil)
		return
	}
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	state, err := ctrl.ToggleWishlist(c.Request.Context(), req.ProductID)
	respondState(c, state, err)
}

// AssistantCheckoutAll 整车结账
func (h *Handler) AssistantCheckoutAll(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	state, err := ctrl.CheckoutAll()
	respondState(c, state, err)
}

// AssistantUpdateCheckout 选择地址或支付方式
func (h *Handler) AssistantUpdateCheckout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgBadRequest, nil)
		return
	}
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	state, err := ctrl.UpdateCheckout(req.Address, req.PaymentMethod)
	respondState(c, state, err)
}

// AssistantConfirmOrder 确认下单
func (h *Handler) AssistantConfirmOrder(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	state, err := ctrl.ConfirmOrder(c.Request.Context())
	respondState(c, state, err)
}

// AssistantAddressSurface 打开或关闭地址面板
func (h *Handler) AssistantAddressSurface(c *gin.Context) {
	var req AddressSurfaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgBadRequest, nil)
		return
	}
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	state, err := ctrl.SetAddressSurface(req.Open)
	respondState(c, state, err)
}

// AssistantSaveAddress 保存地址
func (h *Handler) AssistantSaveAddress(c *gin.Context) {
	var req SaveAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgBadRequest, nil)
		return
	}
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	state, err := ctrl.SaveAddress(c.Request.Context(), req.Label, req.Address)
	respondState(c, state, err)
}

// AssistantCancelOrder 取消订单
func (h *Handler) AssistantCancelOrder(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	state, err := ctrl.CancelOrder(c.Request.Context(), shop.ParseID(c.Param("order_id")))
	respondState(c, state, err)
}

// AssistantLogout 结束会话
func (h *Handler) AssistantLogout(c *gin.Context) {
	uid, ok := getShopUserID(c)
	if !ok {
		return
	}
	h.Assistant.Logout(c.Request.Context(), uid)
	response.Success(c, gin.H{"logged_out": true})
}
