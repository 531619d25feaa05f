package assistant

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fashiopulse/internal/backend"
	"github.com/fashiopulse/internal/cache"
	"github.com/fashiopulse/internal/resolver"
	"github.com/fashiopulse/internal/shop"
)

func TestManagerGetLoadsOnce(t *testing.T) {
	fb := newFakeBackend()
	m := NewManager(Deps{Backend: fb, Intent: newFakeIntent()}, time.Minute)
	defer m.Stop(context.Background())

	var wg sync.WaitGroup
	ctrls := make([]*Controller, 8)
	for i := range ctrls {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := m.Get(context.Background(), "1")
			if err != nil {
				t.Errorf("get session failed: %v", err)
				return
			}
			ctrls[i] = c
		}(i)
	}
	wg.Wait()
	for _, c := range ctrls {
		if c != ctrls[0] {
			t.Fatalf("concurrent gets should share one controller")
		}
	}
	if m.Len() != 1 || fb.fetchCartHit != 1 {
		t.Fatalf("session should load once: len=%d fetches=%d", m.Len(), fb.fetchCartHit)
	}
	if _, err := m.Get(context.Background(), ""); !errors.Is(err, ErrNoUser) {
		t.Fatalf("want ErrNoUser got %v", err)
	}
}

func TestManagerLoadFailureIsNotCached(t *testing.T) {
	fb := newFakeBackend()
	fb.profileErr = &backend.Error{Status: 404, Message: "User not found"}
	m := NewManager(Deps{Backend: fb}, time.Minute)
	defer m.Stop(context.Background())

	if _, err := m.Get(context.Background(), "1"); err == nil {
		t.Fatalf("load failure should be returned")
	}
	if m.Len() != 0 {
		t.Fatalf("failed session should not be kept")
	}
	fb.profileErr = nil
	if _, err := m.Get(context.Background(), "1"); err != nil {
		t.Fatalf("retry should succeed: %v", err)
	}
}

func TestManagerEvictIdleAndLogout(t *testing.T) {
	m := NewManager(Deps{Backend: newFakeBackend()}, time.Minute)
	defer m.Stop(context.Background())

	first, err := m.Get(context.Background(), "1")
	if err != nil {
		t.Fatalf("get session failed: %v", err)
	}
	if n := m.EvictIdle(time.Now()); n != 0 {
		t.Fatalf("fresh session should not be evicted, got %d", n)
	}
	if n := m.EvictIdle(time.Now().Add(2 * time.Minute)); n != 1 {
		t.Fatalf("idle session should be evicted, got %d", n)
	}
	if !first.Closed() || m.Len() != 0 {
		t.Fatalf("evicted session should be closed and removed")
	}

	second, err := m.Get(context.Background(), "1")
	if err != nil || second == first {
		t.Fatalf("get after eviction should build a new session: %v", err)
	}
	m.Logout(context.Background(), "1")
	if !second.Closed() {
		t.Fatalf("logout should close the session")
	}
	if _, ok := m.Lookup("1"); ok {
		t.Fatalf("lookup after logout should miss")
	}
}

func TestManagerRoutesOrderEvents(t *testing.T) {
	m := NewManager(Deps{Backend: newFakeBackend()}, time.Minute)
	c, err := m.Get(context.Background(), "1")
	if err != nil {
		t.Fatalf("get session failed: %v", err)
	}

	m.HandleOrderEvent(context.Background(), cache.OrderEvent{Type: cache.OrderEventCancelled, UserID: "1", OrderID: "55"})
	m.HandleOrderEvent(context.Background(), cache.OrderEvent{Type: cache.OrderEventCancelled, UserID: "2", OrderID: "56"})
	c.Wait()
	state, err := c.State()
	if err != nil {
		t.Fatalf("state failed: %v", err)
	}
	if state.Message != resolver.MsgOrderCancelled("55") {
		t.Fatalf("want cancelled message got %q", state.Message)
	}

	if err := m.Stop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if !c.Closed() || m.Len() != 0 {
		t.Fatalf("stop should close every session")
	}
}

func TestManagerStartStopsWithContext(t *testing.T) {
	m := NewManager(Deps{Backend: newFakeBackend()}, time.Minute)
	m.evictInterval = 10 * time.Millisecond
	if _, err := m.Get(context.Background(), shop.ID("1")); err != nil {
		t.Fatalf("get session failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- m.Start(ctx)
	}()
	time.Sleep(30 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("start should exit cleanly, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("start did not exit after cancel")
	}
	if m.Len() != 1 {
		t.Fatalf("active session should survive the evictor, got %d", m.Len())
	}
	m.Stop(context.Background())
}
