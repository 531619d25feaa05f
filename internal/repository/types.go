package repository

// ProductSearchFilter 商品检索条件
type ProductSearchFilter struct {
	Keywords   []string
	Category   string
	Color      string
	Gender     string
	OnlyActive bool
	Limit      int
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	Status   string
	BatchNo  string
}
