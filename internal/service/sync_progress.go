package service

import (
	"time"

	"github.com/bombershop-next/internal/constants"
)

// ProgressSnapshot 同步进度快照，供持久层写入 SyncRun
type ProgressSnapshot struct {
	Status            string
	CurrentStep       string
	Progress          int
	TotalProducts     int
	CurrentIndex      int
	CurrentProduct    string
	ProductsProcessed int
	ProductsCreated   int
	ProductsUpdated   int
	ProductsDeleted   int
	VariantsProcessed int
	EstimatedLeftMS   int64
	Warnings          []string
	Errors            []string
	ErrorMessage      string
}

// ItemResult 单个商品的处理结果
type ItemResult struct {
	Created  bool
	Updated  bool
	Variants int
}

// ProgressTracker 将同步生命周期事件翻译为进度快照。
// 百分比在各阶段固定区间内推进，整个运行期间单调不减。
type ProgressTracker struct {
	total     int
	index     int
	current   string
	processed int
	created   int
	updated   int
	deleted   int
	variants  int
	warnings  []string
	errors    []string

	lastPercent int
	startedAt   time.Time

	now func() time.Time
}

// NewProgressTracker 创建进度跟踪器
func NewProgressTracker() *ProgressTracker {
	t := &ProgressTracker{now: time.Now}
	t.startedAt = t.now()
	return t
}

// StartFetch 进入抓取阶段
func (t *ProgressTracker) StartFetch() ProgressSnapshot {
	return t.snapshot(constants.SyncStatusFetchingProducts, "fetching remote catalog", constants.SyncBandFetchStart)
}

// FetchProgress 抓取阶段按已取数量推进百分比
func (t *ProgressTracker) FetchProgress(fetched, total int) ProgressSnapshot {
	percent := constants.SyncBandFetchStart
	if total > 0 {
		span := constants.SyncBandFetchEnd - constants.SyncBandFetchStart
		percent = constants.SyncBandFetchStart + fetched*span/total
	}
	return t.snapshot(constants.SyncStatusFetchingProducts, "fetching remote catalog", percent)
}

// Initialize 进入处理阶段并重置条目计数
func (t *ProgressTracker) Initialize(totalItems int) ProgressSnapshot {
	t.total = totalItems
	t.index = 0
	t.current = ""
	t.processed = 0
	t.created = 0
	t.updated = 0
	t.variants = 0
	return t.snapshot(constants.SyncStatusProcessingProducts, "processing products", constants.SyncBandProcessStart)
}

// StartItem 记录当前处理条目并换算百分比
func (t *ProgressTracker) StartItem(index int, displayName string) ProgressSnapshot {
	t.index = index
	t.current = displayName
	percent := constants.SyncBandProcessStart
	if t.total > 0 {
		span := constants.SyncBandProcessEnd - constants.SyncBandProcessStart
		percent = constants.SyncBandProcessStart + index*span/t.total
	}
	return t.snapshot(constants.SyncStatusProcessingProducts, "processing products", percent)
}

// CompleteItem 累加条目结果并重新估算剩余时间
func (t *ProgressTracker) CompleteItem(result ItemResult) ProgressSnapshot {
	t.processed++
	if result.Created {
		t.created++
	}
	if result.Updated {
		t.updated++
	}
	t.variants += result.Variants

	percent := constants.SyncBandProcessStart
	if t.total > 0 {
		span := constants.SyncBandProcessEnd - constants.SyncBandProcessStart
		percent = constants.SyncBandProcessStart + t.processed*span/t.total
	}
	return t.snapshot(constants.SyncStatusProcessingProducts, "processing products", percent)
}

// StartCleanup 进入孤儿清理阶段
func (t *ProgressTracker) StartCleanup() ProgressSnapshot {
	return t.snapshot(constants.SyncStatusProcessingProducts, "cleaning up orphans", constants.SyncBandCleanupStart)
}

// CompleteCleanup 清理结束，记录删除数
func (t *ProgressTracker) CompleteCleanup(deleted int) ProgressSnapshot {
	t.deleted += deleted
	return t.snapshot(constants.SyncStatusFinalizing, "finalizing", constants.SyncBandCleanupEnd)
}

// AddWarning 追加警告，不产生快照
func (t *ProgressTracker) AddWarning(message string) {
	if message == "" {
		return
	}
	t.warnings = append(t.warnings, message)
}

// AddError 追加条目级错误，不产生快照
func (t *ProgressTracker) AddError(message string) {
	if message == "" {
		return
	}
	t.errors = append(t.errors, message)
}

// Warnings 当前警告列表
func (t *ProgressTracker) Warnings() []string {
	return t.warnings
}

// Errors 当前条目级错误列表
func (t *ProgressTracker) Errors() []string {
	return t.errors
}

// Complete 产生终态快照。
// errorMessage 非空表示运行中止（error）；否则有条目级错误为 partial，无错误为 success。
func (t *ProgressTracker) Complete(errorMessage string) ProgressSnapshot {
	status := constants.SyncStatusSuccess
	switch {
	case errorMessage != "":
		status = constants.SyncStatusError
	case len(t.errors) > 0:
		status = constants.SyncStatusPartial
	}

	percent := constants.SyncBandComplete
	if status == constants.SyncStatusError {
		// 中止的运行保持中止时的进度
		percent = t.lastPercent
	}

	snapshot := t.snapshot(status, "done", percent)
	snapshot.ErrorMessage = errorMessage
	snapshot.EstimatedLeftMS = 0
	return snapshot
}

func (t *ProgressTracker) snapshot(status, step string, percent int) ProgressSnapshot {
	if percent < t.lastPercent {
		percent = t.lastPercent
	}
	if percent > 100 {
		percent = 100
	}
	t.lastPercent = percent

	return ProgressSnapshot{
		Status:            status,
		CurrentStep:       step,
		Progress:          percent,
		TotalProducts:     t.total,
		CurrentIndex:      t.index,
		CurrentProduct:    t.current,
		ProductsProcessed: t.processed,
		ProductsCreated:   t.created,
		ProductsUpdated:   t.updated,
		ProductsDeleted:   t.deleted,
		VariantsProcessed: t.variants,
		EstimatedLeftMS:   t.estimateLeftMS(),
		Warnings:          t.warnings,
		Errors:            t.errors,
	}
}

// estimateLeftMS 线性外推：elapsed / itemsDone * itemsRemaining
func (t *ProgressTracker) estimateLeftMS() int64 {
	if t.processed <= 0 || t.total <= 0 || t.processed >= t.total {
		return 0
	}
	elapsed := t.now().Sub(t.startedAt)
	remaining := t.total - t.processed
	return int64(elapsed/time.Millisecond) * int64(remaining) / int64(t.processed)
}
