package intent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fashiopulse/internal/resolver"
	"github.com/fashiopulse/internal/shop"
)

const defaultTimeout = 30 * time.Second

// Remote 调用外部 /ai-query/ 服务
type Remote struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
}

// NewRemote 创建远程意图服务
func NewRemote(baseURL string, timeout time.Duration, client *http.Client) *Remote {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Remote{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		timeout: timeout,
		client:  client,
	}
}

type queryRequest struct {
	Prompt string  `json:"prompt"`
	UserID shop.ID `json:"user_id"`
}

type queryResponse struct {
	Message  string          `json:"message"`
	Intent   json.RawMessage `json:"machine_readable_json"`
	Products []shop.Product  `json:"products"`
}

// Query 发送指令；意图字段解析失败时按无意图处理，仅保留文案与商品
func (r *Remote) Query(ctx context.Context, prompt string, userID shop.ID) (*Result, error) {
	if r.baseURL == "" {
		return nil, ErrUnavailable
	}
	body, err := json.Marshal(queryRequest{Prompt: prompt, UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request", ErrUnavailable)
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/ai-query/", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request failed", ErrUnavailable)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response failed", ErrUnavailable)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var parsed queryResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: decode response", ErrUnavailable)
	}
	result := &Result{
		Message:    strings.TrimSpace(parsed.Message),
		Candidates: shop.CandidateSet(parsed.Products),
	}
	if it, err := resolver.ParseIntent(parsed.Intent); err == nil {
		result.Intent = it
	}
	return result, nil
}
