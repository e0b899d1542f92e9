package models

import (
	"time"
)

// Enhancement 商品内容增强表（人工维护的描述/图片/规格，一旦存在同步不再覆盖）
type Enhancement struct {
	ID                      uint        `gorm:"primarykey" json:"id"`                            // 主键
	ProductID               uint        `gorm:"uniqueIndex;not null" json:"product_id"`          // 商品ID（一对一）
	Description             string      `gorm:"type:text" json:"description"`                    // 详细描述（Markdown）
	ShortDescription        string      `gorm:"type:varchar(500)" json:"short_description"`      // 短描述
	Features                StringArray `gorm:"type:json" json:"features"`                       // 特性列表
	Specs                   JSON        `gorm:"type:json" json:"specs"`                          // 规格键值
	AdditionalImages        StringArray `gorm:"type:json" json:"additional_images"`              // 额外图片
	SeoMeta                 JSON        `gorm:"type:json" json:"seo_meta"`                       // SEO 元数据
	DefaultVariantExternalID string     `gorm:"type:varchar(64)" json:"default_variant_external_id"` // 默认变体 external ID
	CreatedAt               time.Time   `json:"created_at"`                                      // 创建时间
	UpdatedAt               time.Time   `json:"updated_at"`                                      // 更新时间
}

// TableName 指定表名
func (Enhancement) TableName() string {
	return "enhancements"
}
