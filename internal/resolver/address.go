package resolver

import (
	"strings"

	"github.com/fashiopulse/internal/shop"
)

// AddressQuery 地址解析输入
// 单品直购、整车结账、结账页修改共用同一条优先级链，调用方只在 Fallback/RequireAny 上不同
type AddressQuery struct {
	Manual     string
	Label      string
	Book       shop.AddressBook
	Fallback   string
	RequireAny bool
}

// ResolveAddress 按优先级解析收货地址，未解析到返回空串
// 手填地址 > 标签匹配 > 地址簿首项(RequireAny) > Fallback
func ResolveAddress(q AddressQuery) string {
	if manual := strings.TrimSpace(q.Manual); manual != "" {
		return manual
	}
	if label := strings.TrimSpace(q.Label); label != "" {
		if addr, ok := q.Book.Lookup(label); ok {
			return addr
		}
	}
	if q.RequireAny {
		if addr, ok := q.Book.First(); ok {
			return addr
		}
	}
	return strings.TrimSpace(q.Fallback)
}
