package models

import (
	"time"
)

// Product 商品表（从 Printful 同步的本地商品）
type Product struct {
	ID           uint      `gorm:"primarykey" json:"id"`                         // 主键
	RemoteID     int64     `gorm:"uniqueIndex;not null" json:"remote_id"`        // Printful sync product ID（唯一且不可变）
	ExternalID   string    `gorm:"type:varchar(64);index" json:"external_id"`    // Printful external ID
	Slug         string    `gorm:"uniqueIndex;not null" json:"slug"`             // 唯一标识
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`       // 商品名称
	ThumbnailURL string    `gorm:"type:varchar(500)" json:"thumbnail_url"`       // 缩略图地址
	IsActive     bool      `gorm:"default:true;index" json:"is_active"`          // 是否上架
	IsIgnored    bool      `gorm:"default:false;index" json:"is_ignored"`        // 是否忽略（后台隐藏）
	CreatedAt    time.Time `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt    time.Time `json:"updated_at"`                                   // 更新时间

	// 关联
	Variants    []ProductVariant  `gorm:"foreignKey:ProductID" json:"variants,omitempty"`    // 变体列表
	Categories  []ProductCategory `gorm:"foreignKey:ProductID" json:"categories,omitempty"`  // 分类关联
	Enhancement *Enhancement      `gorm:"foreignKey:ProductID" json:"enhancement,omitempty"` // 内容增强（可选）
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// ProductCategory 商品-分类关联表（is_primary 标记主分类）
type ProductCategory struct {
	ID         uint      `gorm:"primarykey" json:"id"`                                              // 主键
	ProductID  uint      `gorm:"not null;index;uniqueIndex:idx_product_category" json:"product_id"` // 商品ID
	CategoryID uint      `gorm:"not null;index;uniqueIndex:idx_product_category" json:"category_id"` // 分类ID
	IsPrimary  bool      `gorm:"default:false" json:"is_primary"`                                   // 是否主分类
	CreatedAt  time.Time `json:"created_at"`                                                        // 创建时间

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (ProductCategory) TableName() string {
	return "product_categories"
}
