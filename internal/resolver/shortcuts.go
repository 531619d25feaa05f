package resolver

import (
	"strings"

	"github.com/fashiopulse/internal/constants"
)

// ShortcutKind 本地快捷指令类型
type ShortcutKind int

const (
	// ShortcutHome 回到首页并清空候选与选中商品
	ShortcutHome ShortcutKind = iota + 1
	// ShortcutBack 返回上一视图
	ShortcutBack
	// ShortcutOpen 打开指定视图
	ShortcutOpen
)

// Shortcut 无需调用语言模型即可处理的导航指令
type Shortcut struct {
	Kind ShortcutKind
	View string
}

var shortcutTable = map[string]Shortcut{
	"home":          {Kind: ShortcutHome, View: constants.ViewHome},
	"go home":       {Kind: ShortcutHome, View: constants.ViewHome},
	"back to home":  {Kind: ShortcutBack},
	"main page":     {Kind: ShortcutHome, View: constants.ViewHome},
	"back":          {Kind: ShortcutBack},
	"go back":       {Kind: ShortcutBack},
	"open wishlist": {Kind: ShortcutOpen, View: constants.ViewWishlist},
	"show wishlist": {Kind: ShortcutOpen, View: constants.ViewWishlist},
	"open cart":     {Kind: ShortcutOpen, View: constants.ViewCart},
	"show cart":     {Kind: ShortcutOpen, View: constants.ViewCart},
	"open orders":   {Kind: ShortcutOpen, View: constants.ViewOrders},
	"show orders":   {Kind: ShortcutOpen, View: constants.ViewOrders},
	"order history": {Kind: ShortcutOpen, View: constants.ViewOrders},
	"my orders":     {Kind: ShortcutOpen, View: constants.ViewOrders},
}

// MatchShortcut 匹配本地快捷指令
func MatchShortcut(prompt string) (Shortcut, bool) {
	key := strings.ToLower(strings.TrimSpace(prompt))
	key = strings.TrimRight(key, ".!? ")
	key = strings.Join(strings.Fields(key), " ")
	s, ok := shortcutTable[key]
	return s, ok
}
