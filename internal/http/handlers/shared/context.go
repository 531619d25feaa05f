package shared

import (
	"github.com/fashiopulse/internal/http/response"

	"github.com/gin-gonic/gin"
)

const (
	msgUnauthorized     = "Please sign in first"
	msgUserIDInvalid    = "Invalid user id"
	msgUserIDTypeBroken = "Unexpected user id type"
)

// GetContextUint 从上下文读取 uint 值并统一处理错误响应。
func GetContextUint(c *gin.Context, key string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, msgUnauthorized, nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, msgUserIDInvalid, nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, msgUserIDInvalid, nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, msgUserIDTypeBroken, nil)
		return 0, false
	}
}
