package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`                               // 主键
	Name        string         `gorm:"type:varchar(200);not null;index" json:"name"`       // 商品名称
	Category    string         `gorm:"type:varchar(60);index" json:"category"`             // 分类
	Description string         `gorm:"type:text" json:"description"`                       // 描述
	ImageURL    string         `gorm:"type:varchar(500)" json:"image_url"`                 // 主图
	Price       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 单价
	Stock       int            `gorm:"not null;default:0" json:"stock"`                    // 库存
	Size        string         `gorm:"type:varchar(20)" json:"size"`                       // 默认尺码
	Color       string         `gorm:"type:varchar(40)" json:"color"`                      // 颜色
	Gender      string         `gorm:"type:varchar(20);index" json:"gender"`               // 适用性别
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`                // 是否上架
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`                  // 排序权重
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                         // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
