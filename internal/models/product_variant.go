package models

import (
	"time"
)

// ProductVariant 商品变体表（颜色/尺码维度）
type ProductVariant struct {
	ID            uint        `gorm:"primarykey" json:"id"`                                                    // 主键
	ProductID     uint        `gorm:"not null;index;uniqueIndex:idx_product_variant_remote" json:"product_id"` // 商品ID
	RemoteID      int64       `gorm:"not null;uniqueIndex:idx_product_variant_remote" json:"remote_id"`        // Printful sync variant ID
	ExternalID    string      `gorm:"type:varchar(64);index" json:"external_id"`                               // Printful external ID
	Name          string      `gorm:"type:varchar(255);not null" json:"name"`                                  // 变体名称
	Color         string      `gorm:"type:varchar(64)" json:"color"`                                           // 颜色
	Size          string      `gorm:"type:varchar(32)" json:"size"`                                            // 尺码
	RetailPrice   Money       `gorm:"type:decimal(20,2);not null;default:0" json:"retail_price"`               // 零售价
	Currency      string      `gorm:"type:varchar(8);not null;default:'EUR'" json:"currency"`                  // 币种
	PreviewImages StringArray `gorm:"type:json" json:"preview_images"`                                         // 预览图（仅 preview 类型文件）
	IsEnabled     bool        `gorm:"default:true;index" json:"is_enabled"`                                    // 是否启用
	InStock       bool        `gorm:"default:true" json:"in_stock"`                                            // 是否有货
	CreatedAt     time.Time   `gorm:"index" json:"created_at"`                                                 // 创建时间
	UpdatedAt     time.Time   `json:"updated_at"`                                                              // 更新时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (ProductVariant) TableName() string {
	return "product_variants"
}
