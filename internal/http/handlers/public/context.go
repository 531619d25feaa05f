package public

import (
	handlershared "github.com/fashiopulse/internal/http/handlers/shared"
	"github.com/fashiopulse/internal/shop"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "user_id")
}

func getShopUserID(c *gin.Context) (shop.ID, bool) {
	uid, ok := getUserID(c)
	if !ok {
		return "", false
	}
	return shop.IDFromUint(uid), true
}
