package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/fashiopulse/internal/shop"
)

const defaultSessionTTL = 24 * time.Hour

// SessionSnapshot 助手会话快照：登录用户资料与导航位置
type SessionSnapshot struct {
	UserID     string       `json:"user_id"`
	Profile    shop.Profile `json:"profile"`
	Navigation []string     `json:"navigation,omitempty"`
	SavedAt    int64        `json:"saved_at"`
}

func sessionKey(userID string) string {
	return fmt.Sprintf("assistant:session:%s", userID)
}

// GetSession 读取会话快照
func GetSession(ctx context.Context, userID string) (*SessionSnapshot, bool, error) {
	if userID == "" {
		return nil, false, nil
	}
	var snapshot SessionSnapshot
	hit, err := GetJSON(ctx, sessionKey(userID), &snapshot)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &snapshot, true, nil
}

// SetSession 写入会话快照；ttl<=0 时使用默认值
func SetSession(ctx context.Context, snapshot *SessionSnapshot, ttl time.Duration) error {
	if snapshot == nil || snapshot.UserID == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	snapshot.SavedAt = time.Now().Unix()
	return SetJSON(ctx, sessionKey(snapshot.UserID), snapshot, ttl)
}

// DelSession 删除会话快照
func DelSession(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	return Del(ctx, sessionKey(userID))
}
