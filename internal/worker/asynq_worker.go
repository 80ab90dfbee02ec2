package worker

import (
	"context"
	"encoding/json"

	"github.com/globalforge/marketplace/internal/logger"
	"github.com/globalforge/marketplace/internal/provider"
	"github.com/globalforge/marketplace/internal/queue"

	"github.com/hibiken/asynq"
)

// lowStockThreshold 库存告警阈值
const lowStockThreshold = 3

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderPlaced, c.handleOrderPlaced)
}

// handleOrderPlaced 下单完成后的售后处理：记录成交日志并对低库存商品发告警
func (c *Consumer) handleOrderPlaced(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_placed_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderPlacedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_placed_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_placed_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_placed_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_placed_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}

	logger.Infow("worker_order_placed",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"user_id", order.UserID,
		"total_amount", order.TotalAmount.String(),
		"line_count", len(order.Items),
	)

	productIDs := make([]uint, 0, len(order.Items))
	for _, item := range order.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := c.ProductRepo.ListByIDs(productIDs)
	if err != nil {
		logger.Warnw("worker_order_placed_fetch_products_failed", "order_id", order.ID, "error", err)
		return err
	}
	for _, product := range products {
		if product.Quantity <= lowStockThreshold {
			logger.Warnw("worker_product_low_stock",
				"product_id", product.ID,
				"product_name", product.Name,
				"seller_id", product.SellerID,
				"quantity", product.Quantity,
			)
		}
	}
	return nil
}
