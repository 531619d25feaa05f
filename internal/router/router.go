package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/fashiopulse/internal/cache"
	"github.com/fashiopulse/internal/config"
	publichandlers "github.com/fashiopulse/internal/http/handlers/public"
	"github.com/fashiopulse/internal/logger"
	"github.com/fashiopulse/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const msgCommandTooFrequent = "You are sending commands too quickly, please retry in %d seconds"

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "fp"
	}
	commandRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:command", redisPrefix),
		WindowSeconds: cfg.Security.CommandRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CommandRateLimit.MaxRequests,
		Message:       msgCommandTooFrequent,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := r.Group("/api/v1")
	{
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetCurrentUser)
			user.PUT("/me/profile", publicHandler.UpdateUserProfile)

			assistant := user.Group("/assistant")
			assistant.POST("/command", RateLimitMiddleware(cache.Client(), commandRule, KeyByUser), publicHandler.AssistantCommand)
			assistant.GET("/state", publicHandler.AssistantState)
			assistant.POST("/navigate", publicHandler.AssistantNavigate)
			assistant.POST("/back", publicHandler.AssistantBack)
			assistant.POST("/shop-more", publicHandler.AssistantShopMore)
			assistant.POST("/products/select", publicHandler.AssistantSelectProduct)
			assistant.PUT("/detail", publicHandler.AssistantUpdateDetail)
			assistant.POST("/detail/add-to-cart", publicHandler.AssistantDetailAddToCart)
			assistant.POST("/detail/buy-now", publicHandler.AssistantDetailBuyNow)
			assistant.POST("/cart/:cart_id/increment", publicHandler.AssistantCartIncrement)
			assistant.POST("/cart/:cart_id/decrement", publicHandler.AssistantCartDecrement)
			assistant.DELETE("/cart/:cart_id", publicHandler.AssistantCartRemove)
			assistant.POST("/wishlist/toggle", publicHandler.AssistantWishlistToggle)
			assistant.POST("/checkout/all", publicHandler.AssistantCheckoutAll)
			assistant.PUT("/checkout", publicHandler.AssistantUpdateCheckout)
			assistant.POST("/checkout/confirm", publicHandler.AssistantConfirmOrder)
			assistant.POST("/address-surface", publicHandler.AssistantAddressSurface)
			assistant.POST("/addresses", publicHandler.AssistantSaveAddress)
			assistant.POST("/orders/:order_id/cancel", publicHandler.AssistantCancelOrder)
			assistant.POST("/logout", publicHandler.AssistantLogout)
		}
	}

	return r
}
