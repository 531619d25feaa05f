package public

import "github.com/fashiopulse/internal/provider"

// Handler 用户侧接口处理器入口
// 说明：助手会话与个人资料接口均要求用户 JWT。
type Handler struct {
	*provider.Container
}

// New 创建处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
