package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/globalforge/marketplace/internal/cart"
	"github.com/globalforge/marketplace/internal/constants"
	"github.com/globalforge/marketplace/internal/logger"
	"github.com/globalforge/marketplace/internal/models"
	"github.com/globalforge/marketplace/internal/queue"
	"github.com/globalforge/marketplace/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PlaceOrderInput 结账输入
type PlaceOrderInput struct {
	PaymentMethod   string
	DeliveryMethod  string
	DeliveryAddress string
}

// CheckoutService 结账服务（购物车转订单的唯一入口）
type CheckoutService struct {
	store       cart.Store
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
	queueClient *queue.Client
}

// NewCheckoutService 创建结账服务
func NewCheckoutService(
	store cart.Store,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	queueClient *queue.Client,
) *CheckoutService {
	return &CheckoutService{
		store:       store,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		queueClient: queueClient,
	}
}

// PlaceOrder 结账下单：预检通过后在单个事务内创建订单并条件扣减库存，
// 任一行扣减失败整单回滚且库存零变更；成功后清空购物车并投递异步任务。
func (s *CheckoutService) PlaceOrder(ctx context.Context, sessionID string, userID uint, input PlaceOrderInput) (*models.Order, error) {
	// 先拒空车，再解析买家
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, ErrCartStoreFailed
	}
	if c.IsEmpty() {
		return nil, ErrCartEmpty
	}

	if userID == 0 {
		return nil, ErrAuthenticationRequired
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// 乐观预检：按行顺序校验，遇到第一个不可购行即失败返回（fail-fast）。
	// 预检不持锁，最终一致性由事务内的条件扣减保证。
	productIDs := make([]uint, 0, len(c.Lines))
	for _, line := range c.Lines {
		productIDs = append(productIDs, line.ProductID)
	}
	products, err := s.productRepo.ListByIDs(productIDs)
	if err != nil {
		return nil, err
	}
	productByID := make(map[uint]*models.Product, len(products))
	for i := range products {
		productByID[products[i].ID] = &products[i]
	}

	items := make([]models.OrderItem, 0, len(c.Lines))
	total := decimal.Zero
	for _, line := range c.Lines {
		product, ok := productByID[line.ProductID]
		if !ok || !product.IsActive {
			name := line.ProductName
			if ok {
				name = product.Name
			}
			return nil, &AvailabilityError{ProductID: line.ProductID, ProductName: name, Inactive: true}
		}
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if line.Quantity > product.Quantity {
			return nil, &AvailabilityError{
				ProductID:      product.ID,
				ProductName:    product.Name,
				MaxPurchasable: product.Quantity,
			}
		}

		// 以车内加入时的价格快照冻结订单行，事务中不回读商品价格
		lineTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, models.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			TotalPrice:  models.NewMoneyFromDecimal(lineTotal),
		})
		total = total.Add(lineTotal)
	}

	deliveryMethod := strings.TrimSpace(input.DeliveryMethod)
	if deliveryMethod == "" {
		deliveryMethod = constants.DeliveryMethodDefault
	}

	now := time.Now()
	order := &models.Order{
		OrderNo:         uuid.NewString(),
		UserID:          userID,
		TotalAmount:     models.NewMoneyFromDecimal(total),
		Status:          constants.OrderStatusPending,
		PaymentMethod:   strings.TrimSpace(input.PaymentMethod),
		DeliveryMethod:  deliveryMethod,
		DeliveryAddress: strings.TrimSpace(input.DeliveryAddress),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)

		if err := orderRepo.Create(order, items); err != nil {
			return err
		}
		for i := range items {
			affected, err := productRepo.DeductStock(items[i].ProductID, items[i].Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				// 预检之后库存被并发消耗，读取事务内最新库存构造可购上限
				current, readErr := productRepo.GetByID(items[i].ProductID)
				if readErr != nil {
					return readErr
				}
				availErr := &AvailabilityError{
					ProductID:   items[i].ProductID,
					ProductName: items[i].ProductName,
				}
				if current == nil || !current.IsActive {
					availErr.Inactive = true
				} else {
					availErr.MaxPurchasable = current.Quantity
				}
				return availErr
			}
		}
		return nil
	})
	if err != nil {
		var availErr *AvailabilityError
		if errors.As(err, &availErr) {
			return nil, availErr
		}
		logger.Errorw("checkout_transaction_failed",
			"user_id", userID,
			"order_no", order.OrderNo,
			"error", err,
		)
		return nil, ErrOrderCreateFailed
	}
	order.Items = items

	// 购物车清理与任务投递在事务外，失败只记录不影响已提交订单
	if err := s.store.Delete(ctx, sessionID); err != nil {
		logger.Warnw("checkout_cart_clear_failed",
			"session_id", sessionID,
			"order_no", order.OrderNo,
			"error", err,
		)
	}
	if s.queueClient != nil {
		if err := s.queueClient.EnqueueOrderPlaced(queue.OrderPlacedPayload{
			OrderID: order.ID,
			OrderNo: order.OrderNo,
			UserID:  userID,
		}); err != nil {
			logger.Warnw("checkout_enqueue_order_placed_failed",
				"order_id", order.ID,
				"order_no", order.OrderNo,
				"error", err,
			)
		}
	}

	logger.Infow("order_placed",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"user_id", userID,
		"total_amount", order.TotalAmount.String(),
		"line_count", len(items),
	)
	return order, nil
}
