package service

import (
	"github.com/globalforge/marketplace/internal/models"
	"github.com/globalforge/marketplace/internal/repository"
)

// InventoryService 库存校验服务（只读闸门，真正的扣减发生在结账事务内）
type InventoryService struct {
	productRepo repository.ProductRepository
}

// NewInventoryService 创建库存校验服务
func NewInventoryService(productRepo repository.ProductRepository) *InventoryService {
	return &InventoryService{productRepo: productRepo}
}

// CheckAvailability 校验商品可购性：商品存在、已上架且库存足够。
// alreadyInCart 为车中已有数量，MaxPurchasable 按剩余可加购数量计算。
// 校验通过返回商品快照；校验只是乐观预检，不保证结账时库存仍然充足。
func (s *InventoryService) CheckAvailability(productID uint, quantity, alreadyInCart int) (*models.Product, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.IsActive {
		return nil, &AvailabilityError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Inactive:    true,
		}
	}
	max := product.Quantity - alreadyInCart
	if max < 0 {
		max = 0
	}
	if quantity > max {
		return nil, &AvailabilityError{
			ProductID:      product.ID,
			ProductName:    product.Name,
			MaxPurchasable: max,
		}
	}
	return product, nil
}
