package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表，整车下单时每个购物车行生成一条订单并共享 BatchNo
type Order struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                      // 主键
	OrderNo            string         `gorm:"uniqueIndex;not null" json:"order_no"`                      // 订单编号
	BatchNo            string         `gorm:"type:varchar(64);index" json:"batch_no,omitempty"`          // 整车批次号
	UserID             uint           `gorm:"index;not null" json:"user_id"`                             // 用户ID
	ProductID          uint           `gorm:"index;not null" json:"product_id"`                          // 商品ID
	ProductName        string         `gorm:"type:varchar(200)" json:"product_name"`                     // 商品名称快照
	ProductImage       string         `gorm:"type:varchar(500)" json:"product_image"`                    // 商品图片快照
	Size               string         `gorm:"type:varchar(20)" json:"size"`                              // 尺码
	Quantity           int            `gorm:"not null" json:"quantity"`                                  // 数量
	UnitPrice          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`   // 单价快照
	TotalAmount        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 实付金额
	PaymentMethod      string         `gorm:"type:varchar(20);not null" json:"payment_method"`           // 支付方式
	DeliveryAddress    string         `gorm:"type:text;not null" json:"delivery_address"`                // 收货地址
	Status             string         `gorm:"index;not null" json:"status"`                              // 订单状态
	ExpectedDeliveryAt *time.Time     `json:"expected_delivery_at"`                                      // 预计送达
	CanceledAt         *time.Time     `gorm:"index" json:"canceled_at"`                                  // 取消时间
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
