package public

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fashiopulse/internal/assistant"
	"github.com/fashiopulse/internal/backend"
	"github.com/fashiopulse/internal/constants"
	"github.com/fashiopulse/internal/intent"
	"github.com/fashiopulse/internal/models"
	"github.com/fashiopulse/internal/provider"
	"github.com/fashiopulse/internal/repository"
	"github.com/fashiopulse/internal/service"
	"github.com/fashiopulse/internal/shop"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// scriptedGenerator 按指令返回固定的模型回复
type scriptedGenerator map[string]string

func (g scriptedGenerator) Generate(_ context.Context, _ string, prompt string) (string, error) {
	if reply, ok := g[prompt]; ok {
		return reply, nil
	}
	return `{"message":"Sorry, I did not get that.","machine_readable_json":null}`, nil
}

type testEnv struct {
	router *gin.Engine
	user   *models.User
	orders *service.OrderService
}

func setupHandlerEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:handler_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.CartItem{}, &models.WishlistItem{}, &models.Order{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	user := &models.User{
		Email:       "asha@example.com",
		DisplayName: "Asha",
		Status:      constants.UserStatusActive,
		Addresses:   shop.NewAddressBook(shop.AddressEntry{Label: "Home", Address: "12 Elm St"}),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	for _, name := range []string{"Linen Shirt", "Denim Jacket"} {
		product := &models.Product{
			Name:     name,
			Category: "tops",
			Price:    models.NewMoneyFromDecimal(decimal.NewFromInt(1200)),
			Stock:    5,
			Size:     "M",
			IsActive: true,
		}
		if err := db.Create(product).Error; err != nil {
			t.Fatalf("create product failed: %v", err)
		}
	}

	c := &provider.Container{
		UserRepo:     repository.NewUserRepository(db),
		ProductRepo:  repository.NewProductRepository(db),
		CartRepo:     repository.NewCartRepository(db),
		WishlistRepo: repository.NewWishlistRepository(db),
		OrderRepo:    repository.NewOrderRepository(db),
	}
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ProductRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.CartRepo)
	c.ProfileService = service.NewProfileService(c.UserRepo)
	c.Backend = backend.NewLocal(c.CartService, c.WishlistService, c.OrderService, c.ProfileService)
	c.Intent = intent.NewGemini(scriptedGenerator{
		"show me shirts": `{"message":"Here are some shirts.","machine_readable_json":{"intent":"search","search_query":"shirts"}}`,
		"buy the first one": "```json\n" + `{"message":"Placing your order.","machine_readable_json":{"intent":"order","action":"buy","product_reference":"first"}}` + "\n```",
	}, c.ProductService, 5)
	c.Assistant = assistant.NewManager(assistant.Deps{Backend: c.Backend, Intent: c.Intent}, time.Minute)
	t.Cleanup(func() {
		_ = c.Assistant.Stop(context.Background())
	})

	h := New(c)
	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(func(ctx *gin.Context) {
		ctx.Set("user_id", user.ID)
		ctx.Next()
	})
	api.GET("/me", h.GetCurrentUser)
	api.PUT("/me/profile", h.UpdateUserProfile)
	api.POST("/assistant/command", h.AssistantCommand)
	api.GET("/assistant/state", h.AssistantState)
	api.POST("/assistant/navigate", h.AssistantNavigate)
	api.POST("/assistant/products/select", h.AssistantSelectProduct)
	api.POST("/assistant/detail/add-to-cart", h.AssistantDetailAddToCart)
	api.POST("/assistant/logout", h.AssistantLogout)
	return &testEnv{router: r, user: user, orders: c.OrderService}
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func (e *testEnv) call(t *testing.T, method, path, body string) envelope {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	e.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("%s %s http status want 200 got %d", method, path, w.Code)
	}
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v body=%s", err, w.Body.String())
	}
	return resp
}

type stateBody struct {
	View        string            `json:"view"`
	Message     string            `json:"message"`
	Products    []shop.Product    `json:"products"`
	Cart        []shop.CartEntry  `json:"cart"`
	OrderStatus *shop.OrderStatus `json:"order_status"`
	CartTotal   string            `json:"cart_total"`
}

func decodeState(t *testing.T, resp envelope) stateBody {
	t.Helper()
	if resp.StatusCode != 0 {
		t.Fatalf("want success got %d: %s", resp.StatusCode, resp.Msg)
	}
	var state stateBody
	if err := json.Unmarshal(resp.Data, &state); err != nil {
		t.Fatalf("decode state failed: %v", err)
	}
	return state
}

func TestAssistantCommandSearchAndOrder(t *testing.T) {
	env := setupHandlerEnv(t)

	state := decodeState(t, env.call(t, http.MethodPost, "/api/v1/assistant/command", `{"prompt":"show me shirts"}`))
	if len(state.Products) != 1 || state.Products[0].Name != "Linen Shirt" {
		t.Fatalf("unexpected search products: %+v", state.Products)
	}
	if state.Message != "Here are some shirts." {
		t.Fatalf("unexpected message: %q", state.Message)
	}

	state = decodeState(t, env.call(t, http.MethodPost, "/api/v1/assistant/command", `{"prompt":"buy the first one"}`))
	if state.View != constants.ViewSuccess || state.OrderStatus == nil || state.OrderStatus.Single == nil {
		t.Fatalf("direct order should reach success: %+v", state)
	}
	if state.OrderStatus.Single.Address != "12 Elm St" {
		t.Fatalf("order should use the first saved address, got %q", state.OrderStatus.Single.Address)
	}
	orders, err := env.orders.ListByUser(env.user.ID)
	if err != nil || len(orders) != 1 {
		t.Fatalf("want one persisted order, got %d err=%v", len(orders), err)
	}
}

func TestAssistantSelectAndAddToCart(t *testing.T) {
	env := setupHandlerEnv(t)
	state := decodeState(t, env.call(t, http.MethodPost, "/api/v1/assistant/command", `{"prompt":"show me shirts"}`))
	productID := state.Products[0].ID.String()

	state = decodeState(t, env.call(t, http.MethodPost, "/api/v1/assistant/products/select", fmt.Sprintf(`{"product_id":%s}`, productID)))
	if state.View != constants.ViewDetail {
		t.Fatalf("select should open detail, got %s", state.View)
	}
	decodeState(t, env.call(t, http.MethodPost, "/api/v1/assistant/detail/add-to-cart", ""))

	var cart []shop.CartEntry
	for i := 0; i < 50; i++ {
		state = decodeState(t, env.call(t, http.MethodGet, "/api/v1/assistant/state", ""))
		if cart = state.Cart; len(cart) == 1 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if len(cart) != 1 || cart[0].Quantity != 1 {
		t.Fatalf("cart should reconcile with the backend: %+v", cart)
	}
	if state.CartTotal != "1200.00" {
		t.Fatalf("unexpected cart total: %s", state.CartTotal)
	}
}

func TestAssistantRequestErrors(t *testing.T) {
	env := setupHandlerEnv(t)

	if resp := env.call(t, http.MethodPost, "/api/v1/assistant/command", `{}`); resp.StatusCode != 400 {
		t.Fatalf("missing prompt want 400 got %d", resp.StatusCode)
	}
	if resp := env.call(t, http.MethodPost, "/api/v1/assistant/navigate", `{"view":"settings"}`); resp.StatusCode != 400 {
		t.Fatalf("unknown view want 400 got %d", resp.StatusCode)
	}
	if resp := env.call(t, http.MethodPost, "/api/v1/assistant/products/select", `{"product_id":999}`); resp.StatusCode != 404 {
		t.Fatalf("unknown product want 404 got %d", resp.StatusCode)
	}
	if resp := env.call(t, http.MethodPost, "/api/v1/assistant/detail/add-to-cart", ""); resp.StatusCode != 400 {
		t.Fatalf("add without selection want 400 got %d", resp.StatusCode)
	}
}

func TestCurrentUserAndProfileUpdate(t *testing.T) {
	env := setupHandlerEnv(t)

	resp := env.call(t, http.MethodGet, "/api/v1/me", "")
	var profile shop.Profile
	if resp.StatusCode != 0 || json.Unmarshal(resp.Data, &profile) != nil {
		t.Fatalf("get profile failed: %+v", resp)
	}
	if profile.Name != "Asha" || profile.Addresses.Len() != 1 {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	resp = env.call(t, http.MethodPut, "/api/v1/me/profile", `{"preferred_size":"L","preferences":"linen, earthy tones"}`)
	if resp.StatusCode != 0 || json.Unmarshal(resp.Data, &profile) != nil {
		t.Fatalf("update profile failed: %+v", resp)
	}
	if profile.PreferredSize != "L" || profile.Preferences != "linen, earthy tones" {
		t.Fatalf("profile not updated: %+v", profile)
	}

	if resp := env.call(t, http.MethodPost, "/api/v1/assistant/logout", ""); resp.StatusCode != 0 {
		t.Fatalf("logout failed: %+v", resp)
	}
}
