package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fashiopulse/internal/backend"
	"github.com/fashiopulse/internal/constants"
	"github.com/fashiopulse/internal/logger"
	"github.com/fashiopulse/internal/models"
	"github.com/fashiopulse/internal/resolver"
	"github.com/fashiopulse/internal/service"
	"github.com/fashiopulse/internal/shop"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

const systemInstruction = `You are the intent parser of a fashion shopping assistant.
Reply with a single JSON object and nothing else:
{"message": "<short reply to show the user>",
 "machine_readable_json": {
   "intent": "search|cart|wishlist|order|payment",
   "action": "add|back|list|buy|checkout|cancel|complete|null",
   "search_query": "<catalog keywords or null>",
   "product_reference": "<first, 2nd, last, this, or null>",
   "payment_method": "COD|UPI|Card|null",
   "shipping_address_label": "<saved address label or null>",
   "manual_full_address": "<full address typed by the user or null>",
   "quantity": <integer or null>,
   "order_id": "<order number or null>",
   "address_action": "open|null"}}
Use "search" with a search_query whenever the user describes products to look at.
Never invent address labels; copy them from the user's words.`

// Generator 文本生成接口，便于替换模型客户端
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// ProductSearcher 商品检索接口
type ProductSearcher interface {
	Search(input service.ProductSearchInput) ([]models.Product, error)
}

// Gemini 基于 Gemini 模型的意图服务，检索走本地商品目录
type Gemini struct {
	generator Generator
	products  ProductSearcher
	limit     int
}

// NewGemini 创建 Gemini 意图服务；products 为空时不返回候选商品
func NewGemini(generator Generator, products ProductSearcher, limit int) *Gemini {
	return &Gemini{generator: generator, products: products, limit: limit}
}

type geminiReply struct {
	Message string          `json:"message"`
	Intent  json.RawMessage `json:"machine_readable_json"`
}

// Query 解析指令并按需检索商品
func (g *Gemini) Query(ctx context.Context, prompt string, userID shop.ID) (*Result, error) {
	if g.generator == nil {
		return nil, ErrUnavailable
	}
	text, err := g.generator.Generate(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	var reply geminiReply
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &reply); err != nil {
		return nil, fmt.Errorf("%w: decode model reply", ErrUnavailable)
	}
	result := &Result{Message: strings.TrimSpace(reply.Message)}
	it, err := resolver.ParseIntent(reply.Intent)
	if err != nil {
		logger.Warnw("intent_model_reply_invalid", "user_id", userID.String(), "error", err)
	}
	result.Intent = it
	if it == nil || it.Category != constants.IntentSearch || g.products == nil {
		return result, nil
	}

	query := it.SearchQuery
	if query == "" {
		query = prompt
	}
	products, err := g.products.Search(service.ProductSearchInput{Query: query, Limit: g.limit})
	if err != nil {
		logger.Warnw("intent_catalog_search_failed", "user_id", userID.String(), "query", query, "error", err)
		return result, nil
	}
	result.Candidates = make(shop.CandidateSet, 0, len(products))
	for i := range products {
		result.Candidates = append(result.Candidates, backend.ToProduct(&products[i]))
	}
	if result.Message == "" {
		result.Message = fmt.Sprintf("Found %d products for %q.", len(result.Candidates), query)
	}
	return result, nil
}

// stripCodeFence 去掉模型偶尔包裹的 ```json 代码块
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimPrefix(text, "json")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// GenAIGenerator 基于 google genai SDK 的生成器
type GenAIGenerator struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGenAIGenerator 创建 genai 客户端
func NewGenAIGenerator(ctx context.Context, apiKey, model string, temperature float32) (*GenAIGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultGeminiModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GenAIGenerator{client: client, model: model, temperature: temperature}, nil
}

// Generate 生成 JSON 文本
func (g *GenAIGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		Temperature:       genai.Ptr(g.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("genai generate failed: %w", err)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("genai returned empty text")
	}
	return text, nil
}
