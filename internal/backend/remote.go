package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fashiopulse/internal/shop"
)

var (
	ErrRequestFailed   = errors.New("backend request failed")
	ErrResponseInvalid = errors.New("backend response invalid")
)

const defaultTimeout = 15 * time.Second

// Remote 通过 REST 契约访问外部购物后端
type Remote struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
}

// NewRemote 创建远程后端；timeout<=0 时使用默认超时
func NewRemote(baseURL string, timeout time.Duration, client *http.Client) *Remote {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Remote{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		timeout: timeout,
		client:  client,
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type orderResponse struct {
	OrderDetails *shop.OrderConfirmation `json:"order_details"`
}

type bulkOrderResponse struct {
	BulkDetails *shop.BulkOrderConfirmation `json:"bulk_details"`
}

type profileResponse struct {
	User *shop.Profile `json:"user"`
}

// FetchOrders 订单列表
func (r *Remote) FetchOrders(ctx context.Context, userID shop.ID) ([]shop.OrderSummary, error) {
	var orders []shop.OrderSummary
	endpoint := "/orders/" + url.PathEscape(userID.String()) + "/"
	if err := r.call(ctx, http.MethodGet, endpoint, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// FetchCart 购物车
func (r *Remote) FetchCart(ctx context.Context, userID shop.ID) ([]shop.CartEntry, error) {
	var entries []shop.CartEntry
	endpoint := "/cart/?user_id=" + url.QueryEscape(userID.String())
	if err := r.call(ctx, http.MethodGet, endpoint, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// FetchWishlist 心愿单
func (r *Remote) FetchWishlist(ctx context.Context, userID shop.ID) ([]shop.WishlistEntry, error) {
	var entries []shop.WishlistEntry
	endpoint := "/wishlist/?user_id=" + url.QueryEscape(userID.String())
	if err := r.call(ctx, http.MethodGet, endpoint, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// AddToCart 加入购物车
func (r *Remote) AddToCart(ctx context.Context, userID, productID shop.ID, quantity int, size string) error {
	body := map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
		"size":       size,
	}
	return r.call(ctx, http.MethodPost, "/cart/add/", body, nil)
}

// UpdateCartQuantity 修改数量
func (r *Remote) UpdateCartQuantity(ctx context.Context, userID, cartID shop.ID, quantity int) error {
	body := map[string]interface{}{
		"user_id":  userID,
		"cart_id":  cartID,
		"quantity": quantity,
	}
	return r.call(ctx, http.MethodPut, "/cart/update/", body, nil)
}

// RemoveFromCart 移除购物车行
func (r *Remote) RemoveFromCart(ctx context.Context, userID, cartID shop.ID) error {
	body := map[string]interface{}{
		"user_id": userID,
		"cart_id": cartID,
	}
	return r.call(ctx, http.MethodDelete, "/cart/remove/", body, nil)
}

// ClearCart 清空购物车
func (r *Remote) ClearCart(ctx context.Context, userID shop.ID) error {
	return r.call(ctx, http.MethodDelete, "/cart/clear/", map[string]interface{}{"user_id": userID}, nil)
}

// ToggleWishlist 切换心愿单
func (r *Remote) ToggleWishlist(ctx context.Context, userID, productID shop.ID) error {
	body := map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	}
	return r.call(ctx, http.MethodPost, "/wishlist/toggle/", body, nil)
}

// PlaceOrder 单品下单
func (r *Remote) PlaceOrder(ctx context.Context, req OrderRequest) (*shop.OrderConfirmation, error) {
	var resp orderResponse
	if err := r.call(ctx, http.MethodPost, "/order/", req, &resp); err != nil {
		return nil, err
	}
	if resp.OrderDetails == nil {
		return nil, fmt.Errorf("%w: missing order_details", ErrResponseInvalid)
	}
	return resp.OrderDetails, nil
}

// PlaceBulkOrder 整车下单
func (r *Remote) PlaceBulkOrder(ctx context.Context, req BulkOrderRequest) (*shop.BulkOrderConfirmation, error) {
	var resp bulkOrderResponse
	if err := r.call(ctx, http.MethodPost, "/bulk-order/", req, &resp); err != nil {
		return nil, err
	}
	if resp.BulkDetails == nil {
		return nil, fmt.Errorf("%w: missing bulk_details", ErrResponseInvalid)
	}
	details := resp.BulkDetails
	if details.PaymentMethod == "" {
		details.PaymentMethod = req.PaymentMethod
	}
	if details.Address == "" {
		details.Address = req.DeliveryAddress
	}
	return details, nil
}

// CancelOrder 取消订单
func (r *Remote) CancelOrder(ctx context.Context, userID, orderID shop.ID) error {
	body := map[string]interface{}{
		"user_id":  userID,
		"order_id": orderID,
	}
	return r.call(ctx, http.MethodPost, "/cancel-order/", body, nil)
}

// GetProfile 用户资料；兼容 {"user": {...}} 与裸对象两种返回
func (r *Remote) GetProfile(ctx context.Context, userID shop.ID) (*shop.Profile, error) {
	endpoint := "/profile/" + url.PathEscape(userID.String()) + "/"
	raw, err := r.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	var wrapped profileResponse
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.User != nil {
		return wrapped.User, nil
	}
	var profile shop.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("%w: decode profile", ErrResponseInvalid)
	}
	if profile.UserID.IsZero() {
		profile.UserID = userID
	}
	return &profile, nil
}

// SaveAddressBook 保存地址簿
func (r *Remote) SaveAddressBook(ctx context.Context, userID shop.ID, book shop.AddressBook) error {
	endpoint := "/profile/" + url.PathEscape(userID.String()) + "/"
	return r.call(ctx, http.MethodPost, endpoint, map[string]interface{}{"address": book}, nil)
}

func (r *Remote) call(ctx context.Context, method, endpoint string, payload interface{}, out interface{}) error {
	var body []byte
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%w: encode request", ErrRequestFailed)
		}
		body = encoded
	}
	raw, err := r.do(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode %s", ErrResponseInvalid, endpoint)
	}
	return nil
}

func (r *Remote) do(ctx context.Context, method, endpoint string, body []byte) ([]byte, error) {
	if r.baseURL == "" {
		return nil, ErrUnavailable
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := r.withDefaultTimeout(ctx)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response failed", ErrRequestFailed)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeError(resp.StatusCode, respBody)
	}
	return respBody, nil
}

func (r *Remote) withDefaultTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func decodeError(status int, body []byte) error {
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil {
		if msg := strings.TrimSpace(parsed.Error); msg != "" {
			return &Error{Status: status, Message: msg}
		}
		if msg := strings.TrimSpace(parsed.Message); msg != "" {
			return &Error{Status: status, Message: msg}
		}
	}
	return &Error{Status: status}
}
