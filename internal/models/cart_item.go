package models

import "time"

// CartItem 购物车项，同一商品不同尺码为不同行；删除为物理删除以便重复加购
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                                                     // 主键
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_product_size" json:"user_id"`                           // 用户ID
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_user_product_size" json:"product_id"`                        // 商品ID
	Size      string    `gorm:"type:varchar(20);not null;default:'M';uniqueIndex:idx_cart_user_product_size" json:"size"` // 尺码
	Quantity  int       `gorm:"not null" json:"quantity"`                                                                 // 数量
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                                                  // 创建时间
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`                                                                  // 更新时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
