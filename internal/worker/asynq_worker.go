package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fashiopulse/internal/backend"
	"github.com/fashiopulse/internal/cache"
	"github.com/fashiopulse/internal/logger"
	"github.com/fashiopulse/internal/metrics"
	"github.com/fashiopulse/internal/provider"
	"github.com/fashiopulse/internal/queue"
	"github.com/fashiopulse/internal/shop"

	"github.com/hibiken/asynq"
)

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
	mux.HandleFunc(queue.TaskOrderCancel, c.handleOrderCancel)
}

// handleOrderCancel 业务拒绝不重试，仅后端不可达时返回错误交给 asynq 重试
func (c *Consumer) handleOrderCancel(ctx context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || task == nil {
		logger.Debugw("worker_order_cancel_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderCancelPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_cancel_unmarshal_failed", "error", err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	userID := shop.ParseID(payload.UserID)
	orderID := shop.ParseID(payload.OrderID)
	if userID.IsZero() || orderID.IsZero() {
		logger.Debugw("worker_order_cancel_skip_invalid_payload", "user_id", payload.UserID, "order_id", payload.OrderID)
		return nil
	}
	if c.Backend == nil {
		logger.Warnw("worker_order_cancel_skip_backend_nil", "order_id", payload.OrderID)
		return nil
	}

	err := c.Backend.CancelOrder(ctx, userID, orderID)
	event := cache.OrderEvent{
		Type:    cache.OrderEventCancelled,
		UserID:  userID.String(),
		OrderID: orderID.String(),
	}
	if err != nil {
		var be *backend.Error
		if !errors.As(err, &be) {
			logger.Warnw("worker_order_cancel_backend_failed", "order_id", payload.OrderID, "error", err)
			return err
		}
		logger.Debugw("worker_order_cancel_rejected", "order_id", payload.OrderID, "status", be.Status, "message", be.Message)
		metrics.OrderCancellations.WithLabelValues(metrics.OutcomeFailed).Inc()
		event.Type = cache.OrderEventCancelFailed
		event.Message = be.Message
	} else {
		metrics.OrderCancellations.WithLabelValues(metrics.OutcomeSuccess).Inc()
	}
	if err := cache.PublishOrderEvent(ctx, event); err != nil {
		logger.Warnw("worker_order_cancel_publish_failed", "order_id", payload.OrderID, "error", err)
	}
	return nil
}
