package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表（total_amount 为下单时冻结的行小计之和）
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                        // 主键
	OrderNo         string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"order_no"`       // 订单号
	UserID          uint           `gorm:"not null;index" json:"user_id"`                               // 买家ID
	TotalAmount     Money          `gorm:"type:decimal(18,2);not null;default:0" json:"total_amount"`   // 订单总额
	Status          string         `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"` // 订单状态
	PaymentMethod   string         `gorm:"type:varchar(30)" json:"payment_method"`                      // 支付方式标签
	DeliveryMethod  string         `gorm:"type:varchar(30);not null;default:'Courier'" json:"delivery_method"` // 配送方式
	DeliveryAddress string         `gorm:"type:varchar(500)" json:"delivery_address"`                   // 配送地址
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                     // 下单时间
	UpdatedAt       time.Time      `json:"updated_at"`                                                  // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间

	// 关联
	User  *User       `gorm:"foreignKey:UserID" json:"user,omitempty"` // 买家信息
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单行
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
