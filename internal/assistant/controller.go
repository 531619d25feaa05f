package assistant

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fashiopulse/internal/backend"
	"github.com/fashiopulse/internal/constants"
	"github.com/fashiopulse/internal/intent"
	"github.com/fashiopulse/internal/logger"
	"github.com/fashiopulse/internal/resolver"
	"github.com/fashiopulse/internal/shop"

	"go.uber.org/zap"
)

const defaultCommandTimeout = 45 * time.Second

// Deps 控制器依赖
type Deps struct {
	Backend        backend.Backend
	Intent         intent.Service
	Canceller      Canceller
	DefaultPayment string
	DefaultSize    string
	CommandTimeout time.Duration
	SessionTTL     time.Duration
}

func (d Deps) normalized() Deps {
	if strings.TrimSpace(d.DefaultPayment) == "" {
		d.DefaultPayment = constants.DefaultPaymentMethod
	}
	if strings.TrimSpace(d.DefaultSize) == "" {
		d.DefaultSize = constants.DefaultSize
	}
	if d.CommandTimeout <= 0 {
		d.CommandTimeout = defaultCommandTimeout
	}
	return d
}

// Controller 单个用户的助手会话
// 所有状态修改都经由 ops 队列串行执行；后端调用在队列外进行，结果再投递回队列
type Controller struct {
	userID shop.ID
	deps   Deps
	log    *zap.SugaredLogger

	ops       chan func()
	done      chan struct{}
	closeOnce sync.Once
	bg        sync.WaitGroup
	lastSeen  atomic.Int64

	// 以下字段仅在队列协程内读写
	state AppState
	nav   *resolver.NavigationStack
	syncs map[string]*collectionSync
}

// NewController 创建控制器并启动队列协程
func NewController(userID shop.ID, deps Deps) *Controller {
	deps = deps.normalized()
	c := &Controller{
		userID: userID,
		deps:   deps,
		log:    logger.SW("user_id", userID.String()),
		ops:    make(chan func()),
		done:   make(chan struct{}),
		state:  newAppState(deps.DefaultSize),
		nav:    resolver.NewNavigationStack(),
		syncs: map[string]*collectionSync{
			collectionCart:     {},
			collectionWishlist: {},
		},
	}
	c.touch()
	go c.run()
	return c
}

// UserID 会话用户
func (c *Controller) UserID() shop.ID {
	return c.userID
}

func (c *Controller) run() {
	for {
		select {
		case op := <-c.ops:
			op()
		case <-c.done:
			return
		}
	}
}

// exec 在队列协程内执行 fn 并等待完成
// 不能在队列协程内部调用，否则会死锁
func (c *Controller) exec(fn func()) error {
	if c.Closed() {
		return ErrClosed
	}
	finished := make(chan struct{})
	select {
	case c.ops <- func() {
		defer close(finished)
		fn()
	}:
	case <-c.done:
		return ErrClosed
	}
	<-finished
	return nil
}

// background 启动后台任务；只在队列协程内调用
func (c *Controller) background(fn func()) {
	c.bg.Add(1)
	go func() {
		defer c.bg.Done()
		fn()
	}()
}

// Wait 等待所有后台变更与对账完成
func (c *Controller) Wait() {
	c.bg.Wait()
}

// Close 停止队列协程；进行中的后台任务结果会被丢弃
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// Closed 是否已关闭
func (c *Controller) Closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func (c *Controller) touch() {
	c.lastSeen.Store(time.Now().UnixNano())
}

// IdleSince 最近一次交互时间
func (c *Controller) IdleSince() time.Time {
	return time.Unix(0, c.lastSeen.Load())
}

// State 当前状态快照
func (c *Controller) State() (AppState, error) {
	var snap AppState
	err := c.exec(func() {
		snap = c.snapshot()
	})
	return snap, err
}

// snapshot 只在队列协程内调用
func (c *Controller) snapshot() AppState {
	c.state.View = c.nav.Current()
	c.state.Navigation = c.nav.Entries()
	return c.state.clone()
}

// acquire 设置 loading 标记；已在处理中时返回 ErrBusy
func (c *Controller) acquire() error {
	var busy bool
	err := c.exec(func() {
		if c.state.Loading {
			busy = true
			return
		}
		c.state.Loading = true
	})
	if err != nil {
		return err
	}
	if busy {
		return ErrBusy
	}
	return nil
}

func (c *Controller) release() {
	_ = c.exec(func() {
		c.state.Loading = false
	})
}

// detached 后台任务使用的上下文，不随请求取消
func detached(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return context.WithoutCancel(ctx)
}

func (c *Controller) navigate(view string) {
	c.nav.Push(view)
}

func (c *Controller) back() {
	c.nav.Pop()
}

func (c *Controller) input(it *resolver.Intent) resolver.Input {
	return resolver.Input{
		Intent:         it,
		View:           c.nav.Current(),
		Selected:       c.state.Selected,
		Draft:          c.state.Draft,
		Candidates:     c.state.Candidates,
		Addresses:      c.state.Profile.Addresses,
		Cart:           c.state.Cart,
		Wishlist:       c.state.Wishlist,
		DetailQuantity: c.state.DetailQuantity,
		DetailSize:     c.state.DetailSize,
		DefaultPayment: c.deps.DefaultPayment,
	}
}
