package assistant

import (
	"context"

	"github.com/fashiopulse/internal/queue"
	"github.com/fashiopulse/internal/shop"
)

// Canceller 异步取消订单的投递方
type Canceller interface {
	EnqueueCancel(ctx context.Context, userID, orderID shop.ID) error
}

// QueueCanceller 通过 asynq 投递取消任务，由 worker 执行并发布订单事件
type QueueCanceller struct {
	client *queue.Client
}

// NewQueueCanceller 创建队列取消器
func NewQueueCanceller(client *queue.Client) *QueueCanceller {
	return &QueueCanceller{client: client}
}

// EnqueueCancel 投递取消任务；队列未启用时返回 queue.ErrQueueDisabled
func (q *QueueCanceller) EnqueueCancel(_ context.Context, userID, orderID shop.ID) error {
	if q == nil || !q.client.Enabled() {
		return queue.ErrQueueDisabled
	}
	return q.client.EnqueueOrderCancel(queue.OrderCancelPayload{
		UserID:  userID.String(),
		OrderID: orderID.String(),
	})
}
