package public

import (
	"github.com/fashiopulse/internal/backend"
	"github.com/fashiopulse/internal/http/response"
	"github.com/fashiopulse/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateProfileRequest 资料更新请求，缺省字段保持不变
type UpdateProfileRequest struct {
	Name          *string `json:"name"`
	Gender        *string `json:"gender"`
	PreferredSize *string `json:"preferred_size"`
	Preferences   *string `json:"preferences"`
}

// GetCurrentUser 获取当前用户资料
func (h *Handler) GetCurrentUser(c *gin.Context) {
	uid, ok := getShopUserID(c)
	if !ok {
		return
	}
	profile, err := h.Backend.GetProfile(c.Request.Context(), uid)
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, msgProfileFailed)
		return
	}
	response.Success(c, profile)
}

// UpdateUserProfile 更新资料；会话会在下次访问时以新资料重建
func (h *Handler) UpdateUserProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgBadRequest, nil)
		return
	}
	user, err := h.ProfileService.UpdateProfile(uid, service.UpdateProfileInput{
		DisplayName:   req.Name,
		Gender:        req.Gender,
		PreferredSize: req.PreferredSize,
		Preferences:   req.Preferences,
	})
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, msgProfileUpdateErr)
		return
	}
	profile := backend.ToProfile(user)
	h.Assistant.Logout(c.Request.Context(), profile.UserID)
	response.Success(c, profile)
}
