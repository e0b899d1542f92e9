package models

import (
	"time"
)

// Order 订单转发记录表（Snipcart 回调 → Printful 下单）
type Order struct {
	ID              uint       `gorm:"primarykey" json:"id"`                                   // 主键
	SnipcartToken   string     `gorm:"uniqueIndex;not null" json:"snipcart_token"`             // Snipcart 订单 token（幂等键）
	ExternalID      string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"external_id"` // 转发用 external ID（uuid）
	PrintfulOrderID int64      `gorm:"index" json:"printful_order_id"`                         // Printful 订单 ID
	Status          string     `gorm:"type:varchar(32);not null;index" json:"status"`          // 转发状态（received/forwarded/failed）
	Email           string     `gorm:"type:varchar(255)" json:"email"`                         // 买家邮箱
	ItemsJSON       JSON       `gorm:"type:json" json:"items"`                                 // 原始条目快照
	AmountTotal     Money      `gorm:"type:decimal(20,2);not null;default:0" json:"amount_total"` // 订单总额
	Currency        string     `gorm:"type:varchar(8);not null;default:'EUR'" json:"currency"` // 币种
	ErrorMessage    string     `gorm:"type:text" json:"error_message"`                         // 转发失败原因
	ForwardedAt     *time.Time `json:"forwarded_at,omitempty"`                                 // 转发成功时间
	CreatedAt       time.Time  `gorm:"index" json:"created_at"`                                // 创建时间
	UpdatedAt       time.Time  `json:"updated_at"`                                             // 更新时间
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
