package models

import (
	"time"

	"github.com/fashiopulse/internal/shop"

	"gorm.io/gorm"
)

// User 用户表
type User struct {
	ID            uint             `gorm:"primarykey" json:"id"`              // 主键
	Email         string           `gorm:"uniqueIndex;not null" json:"email"` // 邮箱
	DisplayName   string           `gorm:"default:''" json:"display_name"`    // 昵称
	Gender        string           `gorm:"default:''" json:"gender"`          // 性别
	PreferredSize string           `gorm:"default:''" json:"preferred_size"`  // 常用尺码
	Preferences   string           `gorm:"type:text" json:"preferences"`      // 偏好描述
	Addresses     shop.AddressBook `gorm:"type:text" json:"address"`          // 地址簿（标签 -> 地址）
	Status        string           `gorm:"default:'active'" json:"status"`    // 账号状态
	TokenVersion  uint64           `gorm:"not null;default:0" json:"-"`       // Token 版本（用于全量失效）
	LastLoginAt   *time.Time       `json:"last_login_at"`                     // 最后登录时间
	CreatedAt     time.Time        `gorm:"index" json:"created_at"`           // 创建时间
	UpdatedAt     time.Time        `gorm:"index" json:"updated_at"`           // 更新时间
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`                    // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
