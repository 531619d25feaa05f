package queue

import (
	"encoding/json"

	"github.com/fashiopulse/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderCancel 取消订单任务
	TaskOrderCancel = constants.TaskOrderCancel
)

// OrderCancelPayload 取消订单任务载荷
type OrderCancelPayload struct {
	UserID  string `json:"user_id"`
	OrderID string `json:"order_id"`
}

// NewOrderCancelTask 创建取消订单任务
func NewOrderCancelTask(payload OrderCancelPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderCancel, body), nil
}
