package assistant

import (
	"context"
	"errors"
	"time"

	"github.com/fashiopulse/internal/backend"
	"github.com/fashiopulse/internal/cache"
	"github.com/fashiopulse/internal/shop"

	"golang.org/x/sync/errgroup"
)

// Load 建立会话：资料优先取缓存快照，未命中时请求后端；随后并行拉取购物车、心愿单与订单
// 后端明确拒绝（如用户不存在）时返回错误；不可达时以空资料降级
func (c *Controller) Load(ctx context.Context) error {
	profile, navigation, err := c.loadProfile(ctx)
	if err != nil {
		return err
	}

	var (
		cart     []shop.CartEntry
		wishlist []shop.WishlistEntry
		orders   []shop.OrderSummary
		g        errgroup.Group
	)
	g.Go(func() error {
		entries, err := c.deps.Backend.FetchCart(ctx, c.userID)
		if err != nil {
			c.log.Warnw("session_cart_fetch_failed", "error", err)
			return nil
		}
		cart = entries
		return nil
	})
	g.Go(func() error {
		entries, err := c.deps.Backend.FetchWishlist(ctx, c.userID)
		if err != nil {
			c.log.Warnw("session_wishlist_fetch_failed", "error", err)
			return nil
		}
		wishlist = entries
		return nil
	})
	g.Go(func() error {
		entries, err := c.deps.Backend.FetchOrders(ctx, c.userID)
		if err != nil {
			c.log.Warnw("session_orders_fetch_failed", "error", err)
			return nil
		}
		orders = entries
		return nil
	})
	_ = g.Wait()

	return c.exec(func() {
		c.state.Profile = profile
		c.state.Cart = cart
		c.state.Wishlist = wishlist
		c.state.Orders = orders
		if address, ok := profile.Addresses.First(); ok && c.state.Draft.Address == "" {
			c.state.Draft.Address = address
		}
		if len(navigation) > 0 {
			c.nav.Restore(navigation)
		}
		c.saveSession(ctx)
	})
}

func (c *Controller) loadProfile(ctx context.Context) (shop.Profile, []string, error) {
	snapshot, hit, err := cache.GetSession(ctx, c.userID.String())
	if err != nil {
		c.log.Warnw("session_cache_read_failed", "error", err)
	}
	if hit && snapshot != nil {
		return snapshot.Profile, snapshot.Navigation, nil
	}

	profile, err := c.deps.Backend.GetProfile(ctx, c.userID)
	if err != nil {
		var backendErr *backend.Error
		if errors.As(err, &backendErr) {
			return shop.Profile{}, nil, err
		}
		c.log.Warnw("session_profile_fetch_failed", "error", err)
		return shop.Profile{UserID: c.userID}, nil, nil
	}
	if profile == nil {
		return shop.Profile{UserID: c.userID}, nil, nil
	}
	return *profile, nil, nil
}

// saveSession 后台写入会话快照；只在队列协程内调用
func (c *Controller) saveSession(ctx context.Context) {
	if !cache.Enabled() {
		return
	}
	snapshot := &cache.SessionSnapshot{
		UserID:     c.userID.String(),
		Profile:    c.state.Profile.Clone(),
		Navigation: c.nav.Entries(),
	}
	ttl := c.deps.SessionTTL
	ctx = detached(ctx)
	c.background(func() {
		writeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := cache.SetSession(writeCtx, snapshot, ttl); err != nil {
			c.log.Warnw("session_cache_write_failed", "error", err)
		}
	})
}

// clearSession 删除会话快照
func (c *Controller) clearSession(ctx context.Context) {
	if err := cache.DelSession(ctx, c.userID.String()); err != nil {
		c.log.Warnw("session_cache_delete_failed", "error", err)
	}
}
