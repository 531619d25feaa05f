package public

import (
	"errors"

	"github.com/fashiopulse/internal/assistant"
	"github.com/fashiopulse/internal/backend"
	"github.com/fashiopulse/internal/http/response"
	"github.com/fashiopulse/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgBadRequest       = "Invalid request"
	msgAssistantFailed  = "The assistant could not handle this request"
	msgProfileFailed    = "Failed to load profile"
	msgProfileUpdateErr = "Failed to update profile"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			msg := rule.msg
			if msg == "" {
				msg = rule.target.Error()
			}
			respondError(c, rule.code, msg, nil)
			return
		}
	}
	var backendErr *backend.Error
	if errors.As(err, &backendErr) {
		code := backendErr.Status
		if code < 400 || code > 599 {
			code = response.CodeBadRequest
		}
		respondError(c, code, backendErr.Message, nil)
		return
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var assistantErrorRules = []mappedHandlerError{
	{target: assistant.ErrBusy, code: response.CodeConflict, msg: "Still working on your previous request"},
	{target: assistant.ErrClosed, code: response.CodeServiceUnavailable, msg: "Assistant session expired, please retry"},
	{target: assistant.ErrNoUser, code: response.CodeUnauthorized},
	{target: assistant.ErrEmptyPrompt, code: response.CodeBadRequest},
	{target: assistant.ErrInvalidView, code: response.CodeBadRequest},
	{target: assistant.ErrProductNotInView, code: response.CodeNotFound},
	{target: assistant.ErrNoSelectedProduct, code: response.CodeBadRequest},
	{target: assistant.ErrInvalidAddress, code: response.CodeBadRequest},
	{target: assistant.ErrInvalidOrderID, code: response.CodeBadRequest},
	{target: assistant.ErrCartItemNotFound, code: response.CodeNotFound},
	{target: backend.ErrUnavailable, code: response.CodeServiceUnavailable, msg: "Shop backend is unavailable"},
}

var profileErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidUser, code: response.CodeBadRequest},
	{target: service.ErrUserNotFound, code: response.CodeNotFound},
	{target: service.ErrUserDisabled, code: response.CodeForbidden},
	{target: backend.ErrUnavailable, code: response.CodeServiceUnavailable, msg: "Shop backend is unavailable"},
}
