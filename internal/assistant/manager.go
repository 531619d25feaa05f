package assistant

import (
	"context"
	"sync"
	"time"

	"github.com/fashiopulse/internal/cache"
	"github.com/fashiopulse/internal/logger"
	"github.com/fashiopulse/internal/metrics"
	"github.com/fashiopulse/internal/shop"
)

const (
	defaultIdleTimeout   = 30 * time.Minute
	defaultEvictInterval = time.Minute
)

type managerEntry struct {
	ready chan struct{}
	ctrl  *Controller
	err   error
}

// Manager 按用户维护助手会话
type Manager struct {
	deps          Deps
	idleTimeout   time.Duration
	evictInterval time.Duration

	mu      sync.Mutex
	entries map[string]*managerEntry
}

// NewManager 创建会话管理器；idleTimeout<=0 时使用默认值
func NewManager(deps Deps, idleTimeout time.Duration) *Manager {
	if idleTimeout <= 0 {
		idleTimeout = defaultIdleTimeout
	}
	return &Manager{
		deps:          deps.normalized(),
		idleTimeout:   idleTimeout,
		evictInterval: defaultEvictInterval,
		entries:       make(map[string]*managerEntry),
	}
}

// Get 获取用户会话，首次访问时加载；并发首访只加载一次
func (m *Manager) Get(ctx context.Context, userID shop.ID) (*Controller, error) {
	if userID.IsZero() {
		return nil, ErrNoUser
	}
	key := userID.String()

	m.mu.Lock()
	entry, ok := m.entries[key]
	if !ok {
		entry = &managerEntry{ready: make(chan struct{})}
		m.entries[key] = entry
	}
	m.mu.Unlock()

	if ok {
		select {
		case <-entry.ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if entry.err != nil {
			return nil, entry.err
		}
		if entry.ctrl.Closed() {
			m.remove(key, entry)
			return m.Get(ctx, userID)
		}
		return entry.ctrl, nil
	}

	ctrl := NewController(userID, m.deps)
	if err := ctrl.Load(ctx); err != nil {
		ctrl.Close()
		entry.err = err
		m.remove(key, entry)
		close(entry.ready)
		logger.Warnw("assistant_session_load_failed", "user_id", key, "error", err)
		return nil, err
	}
	entry.ctrl = ctrl
	close(entry.ready)
	metrics.ActiveSessions.Inc()
	logger.Debugw("assistant_session_created", "user_id", key)
	return ctrl, nil
}

// Lookup 返回已存在的会话，不触发加载
func (m *Manager) Lookup(userID shop.ID) (*Controller, bool) {
	m.mu.Lock()
	entry, ok := m.entries[userID.String()]
	m.mu.Unlock()
	if !ok {
		return nil, false
	}
	select {
	case <-entry.ready:
	default:
		return nil, false
	}
	if entry.ctrl == nil || entry.ctrl.Closed() {
		return nil, false
	}
	return entry.ctrl, true
}

// Logout 关闭会话并删除缓存快照
func (m *Manager) Logout(ctx context.Context, userID shop.ID) {
	if ctrl, ok := m.Lookup(userID); ok {
		ctrl.clearSession(ctx)
	} else if err := cache.DelSession(ctx, userID.String()); err != nil {
		logger.Warnw("assistant_session_delete_failed", "user_id", userID.String(), "error", err)
	}
	m.Evict(userID)
}

// Evict 关闭并移除会话
func (m *Manager) Evict(userID shop.ID) {
	key := userID.String()
	m.mu.Lock()
	entry, ok := m.entries[key]
	if ok {
		select {
		case <-entry.ready:
			delete(m.entries, key)
		default:
			ok = false
		}
	}
	m.mu.Unlock()
	if ok && entry.ctrl != nil {
		entry.ctrl.Close()
		metrics.ActiveSessions.Dec()
	}
}

// Len 当前会话数
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// HandleOrderEvent 把 worker 发布的订单事件转给对应会话；会话不存在时忽略
func (m *Manager) HandleOrderEvent(ctx context.Context, event cache.OrderEvent) {
	ctrl, ok := m.Lookup(shop.ParseID(event.UserID))
	if !ok {
		return
	}
	if err := ctrl.ApplyOrderEvent(ctx, event); err != nil {
		logger.Debugw("assistant_order_event_dropped", "user_id", event.UserID, "order_id", event.OrderID, "error", err)
	}
}

// EvictIdle 关闭超过空闲时长的会话
func (m *Manager) EvictIdle(now time.Time) int {
	var idle []shop.ID
	m.mu.Lock()
	for _, entry := range m.entries {
		select {
		case <-entry.ready:
		default:
			continue
		}
		if entry.ctrl != nil && now.Sub(entry.ctrl.IdleSince()) > m.idleTimeout {
			idle = append(idle, entry.ctrl.UserID())
		}
	}
	m.mu.Unlock()
	for _, userID := range idle {
		m.Evict(userID)
	}
	if len(idle) > 0 {
		logger.Infow("assistant_sessions_evicted", "count", len(idle))
	}
	return len(idle)
}

func (m *Manager) remove(key string, entry *managerEntry) {
	m.mu.Lock()
	if current, ok := m.entries[key]; ok && current == entry {
		delete(m.entries, key)
	}
	m.mu.Unlock()
}

// Name 服务名称
func (m *Manager) Name() string {
	return "assistant"
}

// Start 订阅订单事件并定期清理空闲会话，直到 ctx 结束
func (m *Manager) Start(ctx context.Context) error {
	if cache.SubscribeOrderEvents(ctx, func(event cache.OrderEvent) {
		m.HandleOrderEvent(ctx, event)
	}) {
		logger.Infow("assistant_order_events_subscribed")
	}
	ticker := time.NewTicker(m.evictInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			m.EvictIdle(now)
		}
	}
}

// Stop 关闭全部会话
func (m *Manager) Stop(ctx context.Context) error {
	_ = ctx
	m.mu.Lock()
	entries := m.entries
	m.entries = make(map[string]*managerEntry)
	m.mu.Unlock()
	for _, entry := range entries {
		select {
		case <-entry.ready:
		default:
			continue
		}
		if entry.ctrl != nil {
			entry.ctrl.Close()
			metrics.ActiveSessions.Dec()
		}
	}
	return nil
}
