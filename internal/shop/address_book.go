package shop

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DefaultAddressLabel 旧版单字符串地址迁移后的标签
const DefaultAddressLabel = "Default"

// AddressEntry 地址簿条目
type AddressEntry struct {
	Label   string `json:"label"`
	Address string `json:"address"`
}

// AddressBook 标签到地址的有序映射
// 查找不区分大小写，存储保留原始大小写，顺序为插入顺序
type AddressBook struct {
	entries []AddressEntry
}

// NewAddressBook 按顺序构建地址簿
func NewAddressBook(entries ...AddressEntry) AddressBook {
	var book AddressBook
	for _, entry := range entries {
		book.Set(entry.Label, entry.Address)
	}
	return book
}

// Len 条目数量
func (b AddressBook) Len() int {
	return len(b.entries)
}

// Entries 返回条目副本
func (b AddressBook) Entries() []AddressEntry {
	out := make([]AddressEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Clone 深拷贝
func (b AddressBook) Clone() AddressBook {
	return AddressBook{entries: b.Entries()}
}

// Lookup 按标签查找（不区分大小写）
func (b AddressBook) Lookup(label string) (string, bool) {
	idx := b.indexOf(label)
	if idx < 0 {
		return "", false
	}
	return b.entries[idx].Address, true
}

// First 第一个条目（插入顺序）
func (b AddressBook) First() (string, bool) {
	if len(b.entries) == 0 {
		return "", false
	}
	return b.entries[0].Address, true
}

// Set 写入地址；已有同名标签（不区分大小写）时覆盖值并保留原标签
func (b *AddressBook) Set(label, address string) {
	label = strings.TrimSpace(label)
	address = strings.TrimSpace(address)
	if label == "" || address == "" {
		return
	}
	if idx := b.indexOf(label); idx >= 0 {
		b.entries[idx].Address = address
		return
	}
	b.entries = append(b.entries, AddressEntry{Label: label, Address: address})
}

// Remove 删除标签
func (b *AddressBook) Remove(label string) bool {
	idx := b.indexOf(label)
	if idx < 0 {
		return false
	}
	b.entries = append(b.entries[:idx], b.entries[idx+1:]...)
	return true
}

func (b AddressBook) indexOf(label string) int {
	key := strings.TrimSpace(label)
	if key == "" {
		return -1
	}
	for i, entry := range b.entries {
		if strings.EqualFold(entry.Label, key) {
			return i
		}
	}
	return -1
}

// MarshalJSON 按插入顺序输出 JSON 对象
func (b AddressBook) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range b.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Label)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(entry.Address)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON 兼容对象、旧版字符串以及字符串化的对象
func (b *AddressBook) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	b.entries = nil
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return err
		}
		*b = ParseAddressBook(text)
		return nil
	}
	if raw[0] != '{' {
		return fmt.Errorf("address book: unexpected json %q", string(raw[:1]))
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		label, ok := tok.(string)
		if !ok {
			return errors.New("address book: non-string label")
		}
		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return err
		}
		if text, ok := value.(string); ok {
			b.Set(label, text)
		}
	}
	_, err := dec.Token()
	return err
}

// ParseAddressBook 解析旧版存储：JSON 对象文本，否则整体作为 Default 地址
func ParseAddressBook(text string) AddressBook {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return AddressBook{}
	}
	if strings.HasPrefix(trimmed, "{") {
		var book AddressBook
		if err := book.UnmarshalJSON([]byte(trimmed)); err == nil {
			return book
		}
	}
	return NewAddressBook(AddressEntry{Label: DefaultAddressLabel, Address: trimmed})
}

// Value 数据库写入
func (b AddressBook) Value() (driver.Value, error) {
	data, err := b.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan 数据库读取
func (b *AddressBook) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		b.entries = nil
		return nil
	case string:
		*b = ParseAddressBook(v)
		return nil
	case []byte:
		*b = ParseAddressBook(string(v))
		return nil
	default:
		return fmt.Errorf("address book: unsupported scan type %T", value)
	}
}
