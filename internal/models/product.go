package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表（quantity 为库存数量，结账通过条件扣减保证不为负）
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                 // 主键
	SellerID    uint           `gorm:"not null;index" json:"seller_id"`                      // 卖家ID
	CategoryID  uint           `gorm:"not null;index" json:"category_id"`                    // 分类ID
	Name        string         `gorm:"type:varchar(200);not null" json:"name"`               // 商品名称
	Description string         `gorm:"type:varchar(2000)" json:"description"`                // 商品描述
	Price       Money          `gorm:"type:decimal(18,2);not null;default:0" json:"price"`   // 单价
	Quantity    int            `gorm:"not null;default:0" json:"quantity"`                   // 库存数量
	ImageURL    string         `gorm:"type:varchar(500)" json:"image_url"`                   // 图片地址
	Condition   string         `gorm:"type:varchar(20);not null;default:'New'" json:"condition"` // 成色（New/Used）
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`                  // 是否上架
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                              // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                           // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                       // 软删除时间

	// 关联
	Seller   *User     `gorm:"foreignKey:SellerID" json:"seller,omitempty"`     // 卖家信息
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
