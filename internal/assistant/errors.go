package assistant

import "errors"

var (
	// ErrBusy 上一条指令或阻塞操作尚未完成
	ErrBusy = errors.New("assistant is busy with the previous request")
	// ErrClosed 会话已关闭
	ErrClosed = errors.New("assistant session closed")
	// ErrNoUser 缺少用户标识
	ErrNoUser = errors.New("assistant session requires a user")
	// ErrEmptyPrompt 空指令
	ErrEmptyPrompt = errors.New("prompt is empty")
	// ErrInvalidView 未知视图
	ErrInvalidView = errors.New("unknown view")
	// ErrProductNotInView 商品不在当前可见范围
	ErrProductNotInView = errors.New("product is not in the current view")
	// ErrNoSelectedProduct 未选中商品
	ErrNoSelectedProduct = errors.New("no product selected")
	// ErrInvalidAddress 地址标签或内容为空
	ErrInvalidAddress = errors.New("address label and text are required")
)

// ErrCartItemNotFound 购物车行不存在
var ErrCartItemNotFound = errors.New("cart item not found")

// ErrInvalidOrderID 订单号为空
var ErrInvalidOrderID = errors.New("order id is required")
