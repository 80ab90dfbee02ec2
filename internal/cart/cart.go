package cart

import (
	"github.com/globalforge/marketplace/internal/models"

	"github.com/shopspring/decimal"
)

// Line 购物车行（unit_price 为加入时快照并在结账时冻结到订单行，
// available_stock 为加入时库存快照，仅作展示参考不参与校验）
type Line struct {
	ProductID      uint         `json:"product_id"`
	ProductName    string       `json:"product_name"`
	UnitPrice      models.Money `json:"unit_price"`
	Quantity       int          `json:"quantity"`
	ImageURL       string       `json:"image_url"`
	AvailableStock int          `json:"available_stock"`
}

// LineTotal 行小计
func (l Line) LineTotal() models.Money {
	return models.NewMoneyFromDecimal(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
}

// Cart 会话购物车（整体序列化为 JSON 存储，行按加入顺序保持稳定）
type Cart struct {
	Lines []Line `json:"lines"`
}

// New 创建空购物车
func New() *Cart {
	return &Cart{Lines: []Line{}}
}

// AddItem 添加商品（同商品合并数量并保留首次加入的快照，新商品追加到末尾）
func (c *Cart) AddItem(line Line) {
	if line.Quantity <= 0 {
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == line.ProductID {
			c.Lines[i].Quantity += line.Quantity
			return
		}
	}
	c.Lines = append(c.Lines, line)
}

// UpdateQuantity 设置商品数量（不是累加；quantity <= 0 时移除该行，商品不在车中时不做任何事）
func (c *Cart) UpdateQuantity(productID uint, quantity int) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			if quantity <= 0 {
				c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			} else {
				c.Lines[i].Quantity = quantity
			}
			return
		}
	}
}

// RemoveItem 移除商品（商品不在车中时为空操作）
func (c *Cart) RemoveItem(productID uint) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Clear 清空购物车
func (c *Cart) Clear() {
	c.Lines = []Line{}
}

// IsEmpty 判断购物车是否为空
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// QuantityOf 返回指定商品在车中的数量（不存在时为 0）
func (c *Cart) QuantityOf(productID uint) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return c.Lines[i].Quantity
		}
	}
	return 0
}

// TotalAmount 购物车总金额（各行小计之和）
func (c *Cart) TotalAmount() models.Money {
	total := decimal.Zero
	for i := range c.Lines {
		total = total.Add(c.Lines[i].LineTotal().Decimal)
	}
	return models.NewMoneyFromDecimal(total)
}

// TotalItems 购物车商品总件数（各行数量之和）
func (c *Cart) TotalItems() int {
	count := 0
	for i := range c.Lines {
		count += c.Lines[i].Quantity
	}
	return count
}
