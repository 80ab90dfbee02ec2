package models

import (
	"time"
)

// OrderItem 订单行表（product_name/unit_price 为下单时快照，商品改价不影响历史订单）
type OrderItem struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                      // 主键
	OrderID     uint      `gorm:"not null;index" json:"order_id"`                            // 订单ID
	ProductID   uint      `gorm:"not null;index" json:"product_id"`                          // 商品ID
	ProductName string    `gorm:"type:varchar(200);not null" json:"product_name"`            // 商品名称快照
	Quantity    int       `gorm:"not null" json:"quantity"`                                  // 购买数量
	UnitPrice   Money     `gorm:"type:decimal(18,2);not null;default:0" json:"unit_price"`   // 单价快照
	TotalPrice  Money     `gorm:"type:decimal(18,2);not null;default:0" json:"total_price"`  // 行小计
	CreatedAt   time.Time `json:"created_at"`                                                // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`                                                // 更新时间

	// 关联
	Order   *Order   `gorm:"foreignKey:OrderID" json:"order,omitempty"`     // 所属订单
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 商品信息
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
