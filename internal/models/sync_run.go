package models

import (
	"time"
)

// SyncRun 同步运行记录表（追加写入，供前端轮询进度）
type SyncRun struct {
	ID                uint        `gorm:"primarykey" json:"id"`                              // 主键
	Operation         string      `gorm:"type:varchar(32);not null" json:"operation"`        // 操作标签（full_sync/manual_sync）
	Status            string      `gorm:"type:varchar(32);not null;index" json:"status"`     // 运行状态
	CurrentStep       string      `gorm:"type:varchar(255)" json:"current_step"`             // 当前步骤描述
	Progress          int         `gorm:"not null;default:0" json:"progress"`                // 进度百分比（0-100，单调递增）
	TotalProducts     int         `gorm:"not null;default:0" json:"total_products"`          // 远端商品总数
	CurrentIndex      int         `gorm:"not null;default:0" json:"current_index"`           // 当前处理序号
	CurrentProduct    string      `gorm:"type:varchar(255)" json:"current_product"`          // 当前处理商品名
	ProductsProcessed int         `gorm:"not null;default:0" json:"products_processed"`      // 已处理商品数
	ProductsCreated   int         `gorm:"not null;default:0" json:"products_created"`        // 创建商品数
	ProductsUpdated   int         `gorm:"not null;default:0" json:"products_updated"`        // 更新商品数
	ProductsDeleted   int         `gorm:"not null;default:0" json:"products_deleted"`        // 删除商品数
	VariantsProcessed int         `gorm:"not null;default:0" json:"variants_processed"`      // 已处理变体数
	EstimatedLeftMS   int64       `gorm:"not null;default:0" json:"estimated_left_ms"`       // 预估剩余时间（毫秒）
	Warnings          StringArray `gorm:"type:json" json:"warnings"`                         // 警告列表
	Errors            StringArray `gorm:"type:json" json:"errors"`                           // 条目级错误列表
	ErrorMessage      string      `gorm:"type:text" json:"error_message"`                    // 致命错误信息
	StartedAt         time.Time   `gorm:"index" json:"started_at"`                           // 开始时间
	CompletedAt       *time.Time  `json:"completed_at,omitempty"`                            // 完成时间
	DurationMS        int64       `gorm:"not null;default:0" json:"duration_ms"`             // 运行时长（毫秒）
	CreatedAt         time.Time   `gorm:"index" json:"created_at"`                           // 创建时间
	UpdatedAt         time.Time   `json:"updated_at"`                                        // 更新时间
}

// TableName 指定表名
func (SyncRun) TableName() string {
	return "sync_runs"
}

// IsTerminal 判断是否终态
func (r *SyncRun) IsTerminal() bool {
	if r == nil {
		return false
	}
	switch r.Status {
	case "success", "partial", "error":
		return true
	default:
		return false
	}
}
