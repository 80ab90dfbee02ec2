package service

import (
	"context"

	"github.com/globalforge/marketplace/internal/cart"
	"github.com/globalforge/marketplace/internal/models"
)

// CartView 购物车视图（每次变更后整车返回，含总额与总件数）
type CartView struct {
	Lines       []cart.Line  `json:"lines"`
	TotalAmount models.Money `json:"total_amount"`
	TotalItems  int          `json:"total_items"`
}

// CartService 购物车服务（读改写整车快照，存储按会话隔离）
type CartService struct {
	store     cart.Store
	inventory *InventoryService
}

// NewCartService 创建购物车服务
func NewCartService(store cart.Store, inventory *InventoryService) *CartService {
	return &CartService{store: store, inventory: inventory}
}

func buildCartView(c *cart.Cart) *CartView {
	return &CartView{
		Lines:       c.Lines,
		TotalAmount: c.TotalAmount(),
		TotalItems:  c.TotalItems(),
	}
}

// Get 获取购物车
func (s *CartService) Get(ctx context.Context, sessionID string) (*CartView, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, ErrCartStoreFailed
	}
	return buildCartView(c), nil
}

// AddItem 添加商品（同商品合并数量；快照加入时的名称、单价、图片与库存，
// 结账时以该单价快照冻结订单行）
func (s *CartService) AddItem(ctx context.Context, sessionID string, productID uint, quantity int) (*CartView, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, ErrCartStoreFailed
	}
	product, err := s.inventory.CheckAvailability(productID, quantity, c.QuantityOf(productID))
	if err != nil {
		return nil, err
	}
	c.AddItem(cart.Line{
		ProductID:      product.ID,
		ProductName:    product.Name,
		UnitPrice:      product.Price,
		Quantity:       quantity,
		ImageURL:       product.ImageURL,
		AvailableStock: product.Quantity,
	})
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, ErrCartStoreFailed
	}
	return buildCartView(c), nil
}

// UpdateQuantity 设置商品数量（不是累加；quantity <= 0 时移除该行）
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, productID uint, quantity int) (*CartView, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, ErrCartStoreFailed
	}
	if quantity > 0 {
		// 设置为绝对数量，按目标数量整体校验库存
		if _, err := s.inventory.CheckAvailability(productID, quantity, 0); err != nil {
			return nil, err
		}
	}
	c.UpdateQuantity(productID, quantity)
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, ErrCartStoreFailed
	}
	return buildCartView(c), nil
}

// RemoveItem 移除商品
func (s *CartService) RemoveItem(ctx context.Context, sessionID string, productID uint) (*CartView, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, ErrCartStoreFailed
	}
	c.RemoveItem(productID)
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, ErrCartStoreFailed
	}
	return buildCartView(c), nil
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, sessionID string) (*CartView, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, ErrCartStoreFailed
	}
	c.Clear()
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, ErrCartStoreFailed
	}
	return buildCartView(c), nil
}
