package provider

import (
	"context"
	"strings"
	"time"

	"github.com/fashiopulse/internal/assistant"
	"github.com/fashiopulse/internal/backend"
	"github.com/fashiopulse/internal/cache"
	"github.com/fashiopulse/internal/config"
	"github.com/fashiopulse/internal/constants"
	"github.com/fashiopulse/internal/intent"
	"github.com/fashiopulse/internal/logger"
	"github.com/fashiopulse/internal/models"
	"github.com/fashiopulse/internal/queue"
	"github.com/fashiopulse/internal/repository"
	"github.com/fashiopulse/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo     repository.UserRepository
	ProductRepo  repository.ProductRepository
	CartRepo     repository.CartRepository
	WishlistRepo repository.WishlistRepository
	OrderRepo    repository.OrderRepository

	// Services
	ProductService   *service.ProductService
	CartService      *service.CartService
	WishlistService  *service.WishlistService
	OrderService     *service.OrderService
	ProfileService   *service.ProfileService
	UserTokenService *service.UserTokenService

	// Assistant
	Backend   backend.Backend
	Intent    intent.Service
	Assistant *assistant.Manager
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	// 3. 初始化助手依赖
	c.initAssistant()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
}

func (c *Container) initServices() {
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ProductRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.CartRepo)
	c.ProfileService = service.NewProfileService(c.UserRepo)
	c.UserTokenService = service.NewUserTokenService(c.Config.UserJWT)
}

func (c *Container) initAssistant() {
	c.Backend = c.buildBackend()
	c.Intent = c.buildIntentService()

	deps := assistant.Deps{
		Backend:        c.Backend,
		Intent:         c.Intent,
		DefaultPayment: c.Config.Checkout.DefaultPaymentMethod,
		DefaultSize:    c.Config.Checkout.DefaultSize,
		CommandTimeout: time.Duration(c.Config.Session.CommandTimeoutSecs) * time.Second,
		SessionTTL:     time.Duration(c.Config.Session.TTLMinutes) * time.Minute,
	}
	if c.Config.Checkout.QueuedCancel && c.QueueClient != nil {
		deps.Canceller = assistant.NewQueueCanceller(c.QueueClient)
	}
	idle := time.Duration(c.Config.Session.IdleEvictMinutes) * time.Minute
	c.Assistant = assistant.NewManager(deps, idle)
}

func (c *Container) buildBackend() backend.Backend {
	cfg := c.Config.Backend
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if strings.EqualFold(strings.TrimSpace(cfg.Mode), constants.BackendModeRemote) {
		logger.Infow("provider_backend_remote", "base_url", cfg.BaseURL)
		return backend.NewRemote(cfg.BaseURL, timeout, nil)
	}
	return backend.NewLocal(c.CartService, c.WishlistService, c.OrderService, c.ProfileService)
}

func (c *Container) buildIntentService() intent.Service {
	cfg := c.Config.Assistant
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if !strings.EqualFold(strings.TrimSpace(cfg.Provider), constants.IntentProviderGemini) {
		return intent.NewRemote(cfg.BaseURL, timeout, nil)
	}
	generator, err := intent.NewGenAIGenerator(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Temperature)
	if err != nil {
		// 回退到远程意图服务，指令会得到离线提示而不是启动失败
		logger.Errorw("provider_init_gemini_failed", "error", err)
		return intent.NewRemote(cfg.BaseURL, timeout, nil)
	}
	return intent.NewGemini(generator, c.ProductService, cfg.SearchLimit)
}
