package constants

// 同步运行状态常量
const (
	SyncStatusQueued             = "queued"
	SyncStatusFetchingProducts   = "fetching_products"
	SyncStatusProcessingProducts = "processing_products"
	SyncStatusFinalizing         = "finalizing"
	SyncStatusSuccess            = "success"
	SyncStatusPartial            = "partial"
	SyncStatusError              = "error"
)

// 同步操作标签常量
const (
	SyncOperationFull   = "full_sync"
	SyncOperationManual = "manual_sync"
)

// 同步进度区间常量（百分比，保持单调递增的进度条）
const (
	SyncBandFetchStart   = 5
	SyncBandFetchEnd     = 15
	SyncBandProcessStart = 15
	SyncBandProcessEnd   = 85
	SyncBandCleanupStart = 85
	SyncBandCleanupEnd   = 95
	SyncBandComplete     = 100
)

// Printful 文件类型常量（仅 preview 为真实商品图）
const (
	PrintfulFileTypePreview = "preview"
)

// 订单转发状态常量
const (
	RelayStatusReceived  = "received"
	RelayStatusForwarded = "forwarded"
	RelayStatusFailed    = "failed"
)

// Snipcart 事件类型常量
const (
	SnipcartEventOrderCompleted = "order.completed"
)

// 队列名称常量
const (
	QueueDefault = "default"
	QueueSync    = "sync"
)

// 异步任务类型常量
const (
	TaskCatalogSync = "catalog:sync"
	TaskOrderRelay  = "order:relay"
)
