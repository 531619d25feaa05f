package assistant

import (
	"context"

	"github.com/fashiopulse/internal/backend"
	"github.com/fashiopulse/internal/cache"
	"github.com/fashiopulse/internal/constants"
	"github.com/fashiopulse/internal/metrics"
	"github.com/fashiopulse/internal/resolver"
	"github.com/fashiopulse/internal/shop"
)

const (
	placementSingle = "single"
	placementBulk   = "bulk"
)

// placement 待执行的下单，调用期间保持 loading
type placement struct {
	single *resolver.PlaceOrder
	bulk   *resolver.PlaceBulkOrder
	items  []backend.BulkOrderItem
}

// place 在队列外调用后端下单，结果回到队列；结束时释放 loading
func (c *Controller) place(ctx context.Context, p *placement) {
	defer c.release()
	ctx = detached(ctx)
	switch {
	case p.single != nil:
		c.placeSingle(ctx, *p.single)
	case p.bulk != nil:
		c.placeBulk(ctx, *p.bulk, p.items)
	}
}

func (c *Controller) placeSingle(ctx context.Context, eff resolver.PlaceOrder) {
	confirmation, err := c.deps.Backend.PlaceOrder(ctx, backend.OrderRequest{
		UserID:          c.userID,
		ProductID:       eff.Product.ID,
		Quantity:        eff.Quantity,
		Size:            eff.Size,
		PaymentMethod:   eff.Payment,
		DeliveryAddress: eff.Address,
	})
	_ = c.exec(func() {
		if err != nil {
			c.placementFailed(placementSingle, err, resolver.MsgOrderFailed)
			return
		}
		metrics.OrdersPlaced.WithLabelValues(placementSingle, metrics.OutcomeSuccess).Inc()
		c.log.Infow("assistant_order_placed", "order_id", confirmation.OrderID.String(), "product_id", eff.Product.ID.String())
		c.state.OrderStatus = &shop.OrderStatus{Single: confirmation}
		c.state.Message = resolver.MsgOrderPlaced(confirmation.OrderID.String())
		c.state.AddressSurfaceOpen = false
		c.refreshOrders(ctx)
		c.navigate(constants.ViewSuccess)
	})
}

func (c *Controller) placeBulk(ctx context.Context, eff resolver.PlaceBulkOrder, items []backend.BulkOrderItem) {
	confirmation, err := c.deps.Backend.PlaceBulkOrder(ctx, backend.BulkOrderRequest{
		UserID:          c.userID,
		Items:           items,
		PaymentMethod:   eff.Payment,
		DeliveryAddress: eff.Address,
	})
	if err == nil {
		if clearErr := c.deps.Backend.ClearCart(ctx, c.userID); clearErr != nil {
			c.log.Warnw("assistant_bulk_order_clear_cart_failed", "error", clearErr)
		}
	}
	_ = c.exec(func() {
		if err != nil {
			c.placementFailed(placementBulk, err, resolver.MsgBulkOrderFailed)
			return
		}
		metrics.OrdersPlaced.WithLabelValues(placementBulk, metrics.OutcomeSuccess).Inc()
		c.log.Infow("assistant_bulk_order_placed", "order_count", len(confirmation.OrderIDs), "item_count", confirmation.ItemCount)
		c.state.OrderStatus = &shop.OrderStatus{Bulk: true, Batch: confirmation}
		c.state.Message = resolver.MsgBulkOrderPlaced
		c.state.AddressSurfaceOpen = false
		c.state.Cart = nil
		c.resyncCart(ctx)
		c.refreshOrders(ctx)
		c.navigate(constants.ViewSuccess)
	})
}

// placementFailed 原样展示后端错误文案，涉及地址时重新打开地址面板
func (c *Controller) placementFailed(mode string, err error, fallback string) {
	metrics.OrdersPlaced.WithLabelValues(mode, metrics.OutcomeFailed).Inc()
	c.log.Warnw("assistant_order_failed", "mode", mode, "error", err)
	c.state.Message = backend.Message(err, fallback)
	if backend.IsAddressError(err) {
		c.state.AddressSurfaceOpen = true
	}
}

// cancelOrder 尽力而为：优先投递队列，失败时直接调用后端；错误只记录日志
func (c *Controller) cancelOrder(ctx context.Context, orderID shop.ID) {
	ctx = detached(ctx)
	c.background(func() {
		if c.deps.Canceller != nil {
			err := c.deps.Canceller.EnqueueCancel(ctx, c.userID, orderID)
			if err == nil {
				c.log.Debugw("assistant_order_cancel_enqueued", "order_id", orderID.String())
				return
			}
			c.log.Debugw("assistant_order_cancel_enqueue_failed", "order_id", orderID.String(), "error", err)
		}
		if err := c.deps.Backend.CancelOrder(ctx, c.userID, orderID); err != nil {
			metrics.OrderCancellations.WithLabelValues(metrics.OutcomeFailed).Inc()
			c.log.Warnw("assistant_order_cancel_failed", "order_id", orderID.String(), "error", err)
			return
		}
		metrics.OrderCancellations.WithLabelValues(metrics.OutcomeSuccess).Inc()
		_ = c.exec(func() {
			c.orderCancelled(ctx, orderID)
		})
	})
}

func (c *Controller) orderCancelled(ctx context.Context, orderID shop.ID) {
	c.state.Message = resolver.MsgOrderCancelled(orderID.String())
	c.refreshOrders(ctx)
}

// ApplyOrderEvent 处理队列 worker 发布的订单事件
func (c *Controller) ApplyOrderEvent(ctx context.Context, event cache.OrderEvent) error {
	return c.exec(func() {
		switch event.Type {
		case cache.OrderEventCancelled:
			c.orderCancelled(ctx, shop.ParseID(event.OrderID))
		case cache.OrderEventCancelFailed:
			c.log.Warnw("assistant_order_cancel_rejected", "order_id", event.OrderID, "message", event.Message)
		}
	})
}
