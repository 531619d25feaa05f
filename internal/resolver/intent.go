package resolver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fashiopulse/internal/constants"
	"github.com/fashiopulse/internal/shop"
)

// Intent 语言模型服务输出的结构化意图，全部字段均不可信
type Intent struct {
	Category         string  `json:"intent"`
	Action           string  `json:"action"`
	ProductReference string  `json:"product_reference,omitempty"`
	PaymentMethod    string  `json:"payment_method,omitempty"`
	AddressLabel     string  `json:"shipping_address_label,omitempty"`
	ManualAddress    string  `json:"manual_full_address,omitempty"`
	Quantity         int     `json:"quantity,omitempty"`
	OrderID          shop.ID `json:"order_id,omitempty"`
	AddressAction    string  `json:"address_action,omitempty"`
	SearchQuery      string  `json:"search_query,omitempty"`
}

// HasDraftOverrides 是否携带支付方式或地址字段
func (i Intent) HasDraftOverrides() bool {
	return i.PaymentMethod != "" || i.HasAddressHint()
}

// HasAddressHint 是否携带地址标签或手填地址
func (i Intent) HasAddressHint() bool {
	return i.AddressLabel != "" || i.ManualAddress != ""
}

// ParseIntent 宽松解析意图；空值返回 nil
// 字段类型错误时丢弃该字段而不是整体失败
func ParseIntent(raw []byte) (*Intent, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	// 部分模型会把 JSON 再包一层字符串
	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return nil, err
		}
		return ParseIntent([]byte(inner))
	}
	var fields map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("decode intent: %w", err)
	}
	intent := &Intent{
		Category:         lowerText(fields["intent"]),
		Action:           lowerText(fields["action"]),
		ProductReference: text(fields["product_reference"]),
		PaymentMethod:    CanonicalPaymentMethod(text(fields["payment_method"])),
		AddressLabel:     text(fields["shipping_address_label"]),
		ManualAddress:    text(fields["manual_full_address"]),
		Quantity:         quantity(fields["quantity"]),
		OrderID:          shop.ParseID(text(fields["order_id"])),
		AddressAction:    lowerText(fields["address_action"]),
		SearchQuery:      text(fields["search_query"]),
	}
	return intent, nil
}

// Normalize 规范化已解码的意图
func (i *Intent) Normalize() {
	if i == nil {
		return
	}
	i.Category = strings.ToLower(strings.TrimSpace(i.Category))
	i.Action = strings.ToLower(strings.TrimSpace(i.Action))
	i.AddressAction = strings.ToLower(strings.TrimSpace(i.AddressAction))
	i.ProductReference = strings.TrimSpace(i.ProductReference)
	i.PaymentMethod = CanonicalPaymentMethod(i.PaymentMethod)
	i.AddressLabel = strings.TrimSpace(i.AddressLabel)
	i.ManualAddress = strings.TrimSpace(i.ManualAddress)
	i.SearchQuery = strings.TrimSpace(i.SearchQuery)
	i.OrderID = shop.ParseID(string(i.OrderID))
	if i.Quantity < 1 {
		i.Quantity = 0
	}
}

// CanonicalPaymentMethod 识别常见支付方式写法
func CanonicalPaymentMethod(raw string) string {
	value := strings.TrimSpace(raw)
	switch strings.ToLower(value) {
	case "":
		return ""
	case "cod", "cash", "cash on delivery", "cash-on-delivery":
		return constants.PaymentMethodCOD
	case "upi", "gpay", "phonepe", "paytm":
		return constants.PaymentMethodUPI
	case "card", "credit card", "debit card", "credit", "debit":
		return constants.PaymentMethodCard
	}
	return value
}

func text(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		if strings.EqualFold(strings.TrimSpace(val), "null") {
			return ""
		}
		return strings.TrimSpace(val)
	case json.Number:
		return val.String()
	default:
		return ""
	}
}

func lowerText(v interface{}) string {
	return strings.ToLower(text(v))
}

func quantity(v interface{}) int {
	var n float64
	switch val := v.(type) {
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0
		}
		n = f
	default:
		return 0
	}
	if n < 1 || n > math.MaxInt32 || n != math.Trunc(n) {
		return 0
	}
	return int(n)
}
