package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page           int
	PageSize       int
	CategorySlug   string
	Search         string
	OnlyActive     bool
	IncludeIgnored bool
	WithVariants   bool
}

// SyncRunListFilter 查询同步记录列表的过滤条件
type SyncRunListFilter struct {
	Page        int
	PageSize    int
	Status      string
	Operation   string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// OrderListFilter 查询订单转发记录列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	Status      string
	Email       string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// SyncRunPatch 同步记录的增量更新字段，nil 字段不更新
type SyncRunPatch struct {
	Status            *string
	CurrentStep       *string
	Progress          *int
	TotalProducts     *int
	CurrentIndex      *int
	CurrentProduct    *string
	ProductsProcessed *int
	ProductsCreated   *int
	ProductsUpdated   *int
	ProductsDeleted   *int
	VariantsProcessed *int
	EstimatedLeftMS   *int64
	Warnings          []string
	Errors            []string
	ErrorMessage      *string
	CompletedAt       *time.Time
	DurationMS        *int64
}
