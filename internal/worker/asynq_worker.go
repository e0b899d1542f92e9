package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/bombershop-next/internal/logger"
	"github.com/bombershop-next/internal/provider"
	"github.com/bombershop-next/internal/queue"
	"github.com/bombershop-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCatalogSync, c.handleCatalogSync)
	mux.HandleFunc(queue.TaskOrderRelay, c.handleOrderRelay)
}

// handleCatalogSync 执行目录同步运行。
// 运行结果已持久化在 SyncRun 上；partial 返回 nil 避免队列重放整轮同步。
func (c *Consumer) handleCatalogSync(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_catalog_sync_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CatalogSyncPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_catalog_sync_unmarshal_failed", "error", err)
		return err
	}
	if payload.SyncRunID == 0 {
		logger.Debugw("worker_catalog_sync_skip_invalid_payload", "sync_run_id", payload.SyncRunID)
		return nil
	}
	if c.SyncService == nil {
		logger.Warnw("worker_catalog_sync_skip_service_nil", "sync_run_id", payload.SyncRunID)
		return nil
	}
	if err := c.SyncService.Run(ctx, payload.SyncRunID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			logger.Debugw("worker_catalog_sync_skip_run_not_found", "sync_run_id", payload.SyncRunID)
			return nil
		}
		logger.Warnw("worker_catalog_sync_failed", "sync_run_id", payload.SyncRunID, "error", err)
		// 终态已写入 SyncRun，重放不会得到更好的结果
		return nil
	}
	return nil
}

// handleOrderRelay 转发订单到 Printful，失败返回错误交给队列按策略重试
func (c *Consumer) handleOrderRelay(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_relay_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderRelayPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_relay_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_relay_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.OrderService == nil {
		logger.Warnw("worker_order_relay_skip_service_nil", "order_id", payload.OrderID)
		return nil
	}
	if err := c.OrderService.Relay(ctx, payload.OrderID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			logger.Debugw("worker_order_relay_skip_order_not_found", "order_id", payload.OrderID)
			return nil
		}
		logger.Warnw("worker_order_relay_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	return nil
}
