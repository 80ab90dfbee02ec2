package service

import (
	"github.com/globalforge/marketplace/internal/models"
	"github.com/globalforge/marketplace/internal/repository"
)

// ProductService 商品浏览服务（买家侧只读）
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// List 商品列表（仅上架商品）
func (s *ProductService) List(page, pageSize int, categoryID uint, search string) ([]models.Product, int64, error) {
	return s.productRepo.List(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: categoryID,
		Search:     search,
		OnlyActive: true,
	})
}

// GetByID 商品详情（下架商品对买家不可见）
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}
