package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fashiopulse/internal/backend"
	"github.com/fashiopulse/internal/constants"
	"github.com/fashiopulse/internal/intent"
	"github.com/fashiopulse/internal/metrics"
	"github.com/fashiopulse/internal/resolver"
)

const msgAnalyzing = "Analyzing request..."

// HandleCommand 处理一条自然语言指令
// 快捷指令本地处理；其余交给意图服务，再由调度器决定状态变更
func (c *Controller) HandleCommand(ctx context.Context, prompt string) (AppState, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return AppState{}, ErrEmptyPrompt
	}
	c.touch()
	if shortcut, ok := resolver.MatchShortcut(prompt); ok {
		return c.runShortcut(ctx, shortcut)
	}
	if err := c.acquire(); err != nil {
		return AppState{}, err
	}

	result, queryErr := c.queryIntent(ctx, prompt)
	var pending *placement
	err := c.exec(func() {
		c.state.HasInteracted = true
		if queryErr != nil {
			c.log.Warnw("assistant_intent_query_failed", "error", queryErr)
			c.state.Message = resolver.MsgAssistantOffline
			return
		}
		pending = c.applyResult(ctx, result)
	})
	if err != nil {
		return AppState{}, err
	}
	if pending != nil {
		c.place(ctx, pending)
	} else {
		c.release()
	}
	return c.State()
}

func (c *Controller) queryIntent(ctx context.Context, prompt string) (*intent.Result, error) {
	if c.deps.Intent == nil {
		return nil, intent.ErrUnavailable
	}
	queryCtx, cancel := context.WithTimeout(ctx, c.deps.CommandTimeout)
	defer cancel()
	started := time.Now()
	result, err := c.deps.Intent.Query(queryCtx, prompt, c.userID)
	outcome := metrics.OutcomeSuccess
	if err == nil && result == nil {
		err = intent.ErrUnavailable
	}
	if err != nil {
		outcome = metrics.OutcomeFailed
	}
	metrics.IntentQueryDuration.WithLabelValues(outcome).Observe(time.Since(started).Seconds())
	return result, err
}

// applyResult 只在队列协程内调用；返回需要在队列外执行的下单
func (c *Controller) applyResult(ctx context.Context, result *intent.Result) *placement {
	c.state.Message = result.Message
	if c.state.Message == "" {
		c.state.Message = msgAnalyzing
	}
	if result.NewSearch() {
		c.state.Candidates = result.Candidates
	}
	if result.Intent == nil {
		metrics.AssistantCommands.WithLabelValues("none").Inc()
		return nil
	}
	it := result.Intent
	decision := resolver.Dispatch(c.input(it))
	metrics.AssistantCommands.WithLabelValues(intentLabel(it.Category)).Inc()
	c.log.Infow("assistant_command_dispatched",
		"intent", it.Category,
		"action", it.Action,
		"view", c.nav.Current(),
		"effects", decision.EffectNames(),
	)
	if decision.Message != "" {
		c.state.Message = decision.Message
	}
	return c.apply(ctx, decision.Effects)
}

// apply 按顺序执行调度命令；草稿修改同步生效，后续读取立即可见
func (c *Controller) apply(ctx context.Context, effects []resolver.Effect) *placement {
	var pending *placement
	for _, e := range effects {
		switch eff := e.(type) {
		case resolver.Navigate:
			c.navigate(eff.View)
		case resolver.Back:
			c.back()
		case resolver.OpenAddressSurface:
			c.state.AddressSurfaceOpen = true
		case resolver.SelectProduct:
			product := eff.Product
			c.state.Selected = &product
		case resolver.StageCheckout:
			c.state.Draft = eff.Draft
			if eff.Draft.Bulk() {
				c.state.Selected = nil
			}
		case resolver.UpdateDraft:
			if eff.Address != "" {
				c.state.Draft.Address = eff.Address
			}
			if eff.Payment != "" {
				c.state.Draft.Payment = eff.Payment
			}
		case resolver.AddToCart:
			c.addToCart(ctx, eff.Product, eff.Quantity, eff.Size)
		case resolver.ToggleWishlist:
			c.toggleWishlist(ctx, eff.Product)
		case resolver.CancelOrder:
			c.cancelOrder(ctx, eff.OrderID)
		case resolver.RefreshOrders:
			c.refreshOrders(ctx)
		case resolver.PlaceOrder:
			pending = &placement{single: &eff}
		case resolver.PlaceBulkOrder:
			pending = &placement{bulk: &eff, items: backend.BulkItemsFromCart(c.state.Cart)}
		}
	}
	return pending
}

func (c *Controller) runShortcut(ctx context.Context, shortcut resolver.Shortcut) (AppState, error) {
	var snap AppState
	var busy bool
	err := c.exec(func() {
		if c.state.Loading {
			busy = true
			return
		}
		switch shortcut.Kind {
		case resolver.ShortcutHome:
			c.state.Candidates = nil
			c.state.Selected = nil
			c.state.Message = ""
			c.state.HasInteracted = false
			c.navigate(constants.ViewHome)
		case resolver.ShortcutBack:
			c.back()
		case resolver.ShortcutOpen:
			c.navigate(shortcut.View)
			if shortcut.View == constants.ViewOrders {
				c.refreshOrders(ctx)
			}
		}
		snap = c.snapshot()
	})
	if err != nil {
		return AppState{}, err
	}
	if busy {
		return AppState{}, ErrBusy
	}
	return snap, nil
}

func intentLabel(category string) string {
	switch category {
	case constants.IntentSearch, constants.IntentCart, constants.IntentWishlist, constants.IntentOrder, constants.IntentPayment:
		return category
	}
	return "other"
}

// IsBusy 判断是否为并发指令被拒绝
func IsBusy(err error) bool {
	return errors.Is(err, ErrBusy)
}
