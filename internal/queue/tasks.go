package queue

import (
	"encoding/json"

	"github.com/bombershop-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskCatalogSync 商品目录同步任务
	TaskCatalogSync = constants.TaskCatalogSync
	// TaskOrderRelay 订单转发任务
	TaskOrderRelay = constants.TaskOrderRelay
)

// CatalogSyncPayload 目录同步任务载荷
type CatalogSyncPayload struct {
	SyncRunID uint   `json:"sync_run_id"`
	Operation string `json:"operation"`
}

// OrderRelayPayload 订单转发任务载荷
type OrderRelayPayload struct {
	OrderID uint `json:"order_id"`
}

// NewCatalogSyncTask 创建目录同步任务
func NewCatalogSyncTask(payload CatalogSyncPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCatalogSync, body), nil
}

// NewOrderRelayTask 创建订单转发任务
func NewOrderRelayTask(payload OrderRelayPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderRelay, body), nil
}
