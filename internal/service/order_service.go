package service

import (
	"errors"

	"github.com/globalforge/marketplace/internal/constants"
	"github.com/globalforge/marketplace/internal/logger"
	"github.com/globalforge/marketplace/internal/models"
	"github.com/globalforge/marketplace/internal/repository"

	"gorm.io/gorm"
)

// OrderService 订单查询与状态管理服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo, productRepo: productRepo}
}

// ListByUser 获取用户订单列表
func (s *OrderService) ListByUser(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	if userID == 0 {
		return nil, 0, ErrAuthenticationRequired
	}
	orders, total, err := s.orderRepo.ListByUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
	})
	if err != nil {
		return nil, 0, ErrOrderFetchFailed
	}
	return orders, total, nil
}

// GetByIDAndUser 获取订单详情（仅订单所有者可见，他人访问返回授权错误）
func (s *OrderService) GetByIDAndUser(id, userID uint) (*models.Order, error) {
	if userID == 0 {
		return nil, ErrAuthenticationRequired
	}
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.UserID != userID {
		return nil, ErrOrderAccessDenied
	}
	return order, nil
}

// ListSoldLinesBySeller 获取卖家已售订单行（跨所有买家订单）
func (s *OrderService) ListSoldLinesBySeller(sellerID uint, page, pageSize int) ([]models.OrderItem, int64, error) {
	if sellerID == 0 {
		return nil, 0, ErrAuthenticationRequired
	}
	items, total, err := s.orderRepo.ListSoldLinesBySeller(repository.SoldLinesFilter{
		Page:     page,
		PageSize: pageSize,
		SellerID: sellerID,
	})
	if err != nil {
		return nil, 0, ErrOrderFetchFailed
	}
	return items, total, nil
}

// UpdateStatus 更新订单状态（只校验取值合法，不强制流转顺序）。
// 转入 Cancelled 时回补各行库存；转出 Cancelled 时重新条件扣减，
// 库存不足则整次变更回滚。
func (s *OrderService) UpdateStatus(id uint, status string) (*models.Order, error) {
	if !constants.IsValidOrderStatus(status) {
		return nil, ErrOrderStatusInvalid
	}
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == status {
		return order, nil
	}

	cancelling := status == constants.OrderStatusCancelled
	reviving := order.Status == constants.OrderStatusCancelled

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)

		if err := orderRepo.UpdateStatus(id, status); err != nil {
			return err
		}
		if cancelling {
			for _, item := range order.Items {
				if _, err := productRepo.RestoreStock(item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
		}
		if reviving {
			for _, item := range order.Items {
				affected, err := productRepo.DeductStock(item.ProductID, item.Quantity)
				if err != nil {
					return err
				}
				if affected == 0 {
					current, readErr := productRepo.GetByID(item.ProductID)
					if readErr != nil {
						return readErr
					}
					availErr := &AvailabilityError{
						ProductID:   item.ProductID,
						ProductName: item.ProductName,
					}
					if current == nil || !current.IsActive {
						availErr.Inactive = true
					} else {
						availErr.MaxPurchasable = current.Quantity
					}
					return availErr
				}
			}
		}
		return nil
	})
	if err != nil {
		var availErr *AvailabilityError
		if errors.As(err, &availErr) {
			return nil, availErr
		}
		logger.Errorw("order_status_update_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"to", status,
			"error", err,
		)
		return nil, ErrOrderUpdateFailed
	}

	logger.Infow("order_status_updated",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"from", order.Status,
		"to", status,
	)
	order.Status = status
	return order, nil
}
