package queue

import (
	"encoding/json"

	"github.com/globalforge/marketplace/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderPlaced 下单完成任务
	TaskOrderPlaced = constants.TaskOrderPlaced
)

// OrderPlacedPayload 下单完成任务载荷
type OrderPlacedPayload struct {
	OrderID uint   `json:"order_id"`
	OrderNo string `json:"order_no"`
	UserID  uint   `json:"user_id"`
}

// NewOrderPlacedTask 创建下单完成任务
func NewOrderPlacedTask(payload OrderPlacedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderPlaced, body), nil
}
