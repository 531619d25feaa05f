package intent

import (
	"context"
	"errors"

	"github.com/fashiopulse/internal/constants"
	"github.com/fashiopulse/internal/resolver"
	"github.com/fashiopulse/internal/shop"
)

// ErrUnavailable 意图服务不可用
var ErrUnavailable = errors.New("intent service unavailable")

// Result 一次意图查询的结果
type Result struct {
	Message    string
	Intent     *resolver.Intent
	Candidates shop.CandidateSet
}

// NewSearch 是否应替换候选集：搜索意图或返回了商品
func (r *Result) NewSearch() bool {
	if r == nil {
		return false
	}
	if r.Intent != nil && r.Intent.Category == constants.IntentSearch {
		return true
	}
	return len(r.Candidates) > 0
}

// Service 把自然语言指令转换为结构化意图
type Service interface {
	Query(ctx context.Context, prompt string, userID shop.ID) (*Result, error)
}
