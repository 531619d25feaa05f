package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fashiopulse/internal/constants"
	"github.com/fashiopulse/internal/logger"
)

// 订单事件类型
const (
	OrderEventCancelled    = "order_cancelled"
	OrderEventCancelFailed = "order_cancel_failed"
)

// OrderEvent 订单异步处理结果
type OrderEvent struct {
	Type       string `json:"type"`
	UserID     string `json:"user_id"`
	OrderID    string `json:"order_id"`
	Message    string `json:"message,omitempty"`
	OccurredAt int64  `json:"occurred_at"`
}

// PublishOrderEvent 发布订单事件
func PublishOrderEvent(ctx context.Context, event OrderEvent) error {
	if event.OccurredAt == 0 {
		event.OccurredAt = time.Now().Unix()
	}
	return Publish(ctx, constants.OrderEventsChannel, event)
}

// SubscribeOrderEvents 订阅订单事件直到 ctx 结束；未启用 Redis 时返回 false
func SubscribeOrderEvents(ctx context.Context, handle func(OrderEvent)) bool {
	sub := Subscribe(ctx, constants.OrderEventsChannel)
	if sub == nil {
		return false
	}
	// 等待订阅确认，避免紧随其后的发布丢失
	if _, err := sub.Receive(ctx); err != nil {
		logger.Warnw("order_events_subscribe_failed", "error", err)
		_ = sub.Close()
		return false
	}
	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event OrderEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					logger.Warnw("order_event_decode_failed", "error", err)
					continue
				}
				handle(event)
			}
		}
	}()
	return true
}
