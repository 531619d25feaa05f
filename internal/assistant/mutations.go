package assistant

import (
	"context"

	"github.com/fashiopulse/internal/metrics"
	"github.com/fashiopulse/internal/resolver"
	"github.com/fashiopulse/internal/shop"
)

const (
	collectionCart     = "cart"
	collectionWishlist = "wishlist"
)

// collectionSync 单个集合的对账序号
// version 每次乐观变更递增；inflight 为尚未返回的远程变更数
// 只有最后一个返回的变更触发对账，且对账结果仅在期间没有新变更时生效
type collectionSync struct {
	version  uint64
	inflight int
}

// mutate 在队列协程内登记一次变更，并在后台执行远程调用
func (c *Controller) mutate(ctx context.Context, collection, kind string, remote func(context.Context) error, onSuccess func()) {
	s := c.syncs[collection]
	s.version++
	s.inflight++
	ctx = detached(ctx)
	c.background(func() {
		err := remote(ctx)
		_ = c.exec(func() {
			c.finishMutation(ctx, collection, kind, err, onSuccess)
		})
	})
}

func (c *Controller) finishMutation(ctx context.Context, collection, kind string, err error, onSuccess func()) {
	s := c.syncs[collection]
	s.inflight--
	if err != nil {
		metrics.Mutations.WithLabelValues(kind, metrics.OutcomeFailed).Inc()
		// 失败时不手工回滚，统一以后端数据为准重新拉取
		c.log.Warnw("mutation_failed_resync", "kind", kind, "error", err)
	} else {
		metrics.Mutations.WithLabelValues(kind, metrics.OutcomeSuccess).Inc()
		if onSuccess != nil {
			onSuccess()
		}
	}
	if s.inflight == 0 {
		c.reconcile(ctx, collection)
	}
}

// reconcile 拉取权威数据；结果回到队列时若已有更新的变更则丢弃
func (c *Controller) reconcile(ctx context.Context, collection string) {
	s := c.syncs[collection]
	version := s.version
	ctx = detached(ctx)
	c.background(func() {
		switch collection {
		case collectionCart:
			entries, err := c.deps.Backend.FetchCart(ctx, c.userID)
			_ = c.exec(func() {
				if c.acceptReconcile(collection, version, err) {
					c.state.Cart = entries
				}
			})
		case collectionWishlist:
			entries, err := c.deps.Backend.FetchWishlist(ctx, c.userID)
			_ = c.exec(func() {
				if c.acceptReconcile(collection, version, err) {
					c.state.Wishlist = entries
				}
			})
		}
	})
}

func (c *Controller) acceptReconcile(collection string, version uint64, err error) bool {
	if err != nil {
		metrics.Reconciliations.WithLabelValues(collection, metrics.OutcomeFailed).Inc()
		c.log.Warnw("mutation_reconcile_fetch_failed", "collection", collection, "error", err)
		return false
	}
	s := c.syncs[collection]
	if s.version != version || s.inflight > 0 {
		metrics.Reconciliations.WithLabelValues(collection, metrics.OutcomeStale).Inc()
		c.log.Debugw("mutation_reconcile_stale_dropped", "collection", collection, "version", version, "current", s.version)
		return false
	}
	metrics.Reconciliations.WithLabelValues(collection, metrics.OutcomeSuccess).Inc()
	return true
}

// addToCart 行 ID 由后端分配，不做乐观插入，只登记版本
func (c *Controller) addToCart(ctx context.Context, product shop.Product, quantity int, size string) {
	if quantity < 1 {
		quantity = 1
	}
	if size == "" {
		size = product.DefaultSize()
	}
	c.mutate(ctx, collectionCart, "cart_add", func(ctx context.Context) error {
		return c.deps.Backend.AddToCart(ctx, c.userID, product.ID, quantity, size)
	}, func() {
		c.state.Message = resolver.MsgAddedToCart(quantity, product.Name, size)
	})
}

// removeFromCart 对不存在的行同样发起远程删除，本地过滤天然幂等
func (c *Controller) removeFromCart(ctx context.Context, cartID shop.ID) {
	kept := c.state.Cart[:0:0]
	for _, entry := range c.state.Cart {
		if !entry.CartID.Equal(cartID) {
			kept = append(kept, entry)
		}
	}
	c.state.Cart = kept
	c.mutate(ctx, collectionCart, "cart_remove", func(ctx context.Context) error {
		return c.deps.Backend.RemoveFromCart(ctx, c.userID, cartID)
	}, nil)
}

// changeCartQuantity 数量减到 1 以下视为删除
func (c *Controller) changeCartQuantity(ctx context.Context, cartID shop.ID, delta int) bool {
	idx := -1
	for i, entry := range c.state.Cart {
		if entry.CartID.Equal(cartID) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	quantity := c.state.Cart[idx].Quantity + delta
	if quantity < 1 {
		c.removeFromCart(ctx, cartID)
		return true
	}
	cart := append([]shop.CartEntry(nil), c.state.Cart...)
	cart[idx].Quantity = quantity
	c.state.Cart = cart
	c.mutate(ctx, collectionCart, "cart_quantity", func(ctx context.Context) error {
		return c.deps.Backend.UpdateCartQuantity(ctx, c.userID, cartID, quantity)
	}, nil)
	return true
}

// toggleWishlist 存在则移除，不存在则加入
func (c *Controller) toggleWishlist(ctx context.Context, product shop.Product) {
	if shop.InWishlist(c.state.Wishlist, product.ID) {
		kept := c.state.Wishlist[:0:0]
		for _, entry := range c.state.Wishlist {
			if !entry.ProductID.Equal(product.ID) {
				kept = append(kept, entry)
			}
		}
		c.state.Wishlist = kept
	} else {
		wishlist := append([]shop.WishlistEntry(nil), c.state.Wishlist...)
		c.state.Wishlist = append(wishlist, shop.WishlistEntryFromProduct(product))
	}
	c.mutate(ctx, collectionWishlist, "wishlist_toggle", func(ctx context.Context) error {
		return c.deps.Backend.ToggleWishlist(ctx, c.userID, product.ID)
	}, nil)
}

// refreshOrders 后台刷新订单列表
func (c *Controller) refreshOrders(ctx context.Context) {
	ctx = detached(ctx)
	c.background(func() {
		orders, err := c.deps.Backend.FetchOrders(ctx, c.userID)
		if err != nil {
			c.log.Warnw("orders_refresh_failed", "error", err)
			return
		}
		_ = c.exec(func() {
			c.state.Orders = orders
		})
	})
}

// resyncCart 整车下单清空购物车后使用，登记版本使进行中的旧对账失效
func (c *Controller) resyncCart(ctx context.Context) {
	c.syncs[collectionCart].version++
	if c.syncs[collectionCart].inflight == 0 {
		c.reconcile(ctx, collectionCart)
	}
}
