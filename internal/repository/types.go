package repository

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page       int
	PageSize   int
	CategoryID uint
	SellerID   uint
	Search     string
	OnlyActive bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	Status   string
	OrderNo  string
}

// SoldLinesFilter 查询卖家已售订单行的过滤条件
type SoldLinesFilter struct {
	Page     int
	PageSize int
	SellerID uint
}
