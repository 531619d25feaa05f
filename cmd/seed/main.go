package main

import (
	"flag"
	"fmt"

	"github.com/fashiopulse/internal/config"
	"github.com/fashiopulse/internal/constants"
	"github.com/fashiopulse/internal/logger"
	"github.com/fashiopulse/internal/models"
	"github.com/fashiopulse/internal/service"
	"github.com/fashiopulse/internal/shop"
)

// 开发环境种子数据：演示商品、演示用户以及可直接调用接口的 Token
func main() {
	var email string
	flag.StringVar(&email, "email", "demo@fashiopulse.local", "演示用户邮箱")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, true); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 演示商品
	if err := models.InitDefaultCatalog(); err != nil {
		stdLog.Fatalf("Failed to seed catalog: %v", err)
	}

	// 演示用户
	var user models.User
	if err := models.DB.Where("email = ?", email).First(&user).Error; err != nil {
		user = models.User{
			Email:         email,
			DisplayName:   "Demo Shopper",
			PreferredSize: "M",
			Preferences:   "casual, cotton, earthy colours",
			Status:        constants.UserStatusActive,
			Addresses: shop.NewAddressBook(
				shop.AddressEntry{Label: "Home", Address: "221B Baker Street, London"},
				shop.AddressEntry{Label: "Office", Address: "1 Canada Square, London"},
			),
		}
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Fatalf("Failed to create user %s: %v", email, err)
		}
		stdLog.Printf("Created user: %s", email)
	} else {
		stdLog.Printf("User already exists: %s", email)
	}

	token, expiresAt, err := service.NewUserTokenService(cfg.UserJWT).GenerateUserJWT(&user, 0)
	if err != nil {
		stdLog.Fatalf("Failed to issue token: %v", err)
	}
	fmt.Printf("user_id: %d\n", user.ID)
	fmt.Printf("token:   %s\n", token)
	fmt.Printf("expires: %s\n", expiresAt.Format("2006-01-02 15:04:05"))
}
