package shop

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ID 统一标识符
// 后端返回整型主键，语言模型服务可能返回字符串，统一按规范化字符串比较
type ID string

// IDFromUint 从数据库主键构建标识
func IDFromUint(v uint) ID {
	if v == 0 {
		return ""
	}
	return ID(strconv.FormatUint(uint64(v), 10))
}

// ParseID 规范化任意文本标识
func ParseID(raw string) ID {
	return ID(normalizeID(raw))
}

// String 返回规范化文本
func (id ID) String() string {
	return normalizeID(string(id))
}

// IsZero 是否为空标识
func (id ID) IsZero() bool {
	return id.String() == ""
}

// Equal 按规范化字符串比较
func (id ID) Equal(other ID) bool {
	return id.String() == other.String()
}

// Uint 转换为数据库主键
func (id ID) Uint() (uint, bool) {
	v, err := strconv.ParseUint(id.String(), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

// MarshalJSON 数字标识按数字输出，其余按字符串输出
func (id ID) MarshalJSON() ([]byte, error) {
	text := id.String()
	if text == "" {
		return []byte("null"), nil
	}
	if _, ok := id.Uint(); ok {
		return []byte(text), nil
	}
	return json.Marshal(text)
}

// UnmarshalJSON 接受数字、字符串或 null
func (id *ID) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "" || raw == "null" {
		*id = ""
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ParseID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ParseID(n.String())
	return nil
}

func normalizeID(raw string) string {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "#")
	if text == "" {
		return ""
	}
	// 12.0 与 12 视为同一主键
	if d, err := decimal.NewFromString(text); err == nil && d.IsInteger() && !d.IsNegative() {
		return d.String()
	}
	return text
}
