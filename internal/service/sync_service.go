package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bombershop-next/internal/cache"
	"github.com/bombershop-next/internal/config"
	"github.com/bombershop-next/internal/constants"
	"github.com/bombershop-next/internal/logger"
	"github.com/bombershop-next/internal/models"
	"github.com/bombershop-next/internal/printful"
	"github.com/bombershop-next/internal/queue"
	"github.com/bombershop-next/internal/repository"

	"github.com/shopspring/decimal"
)

// RemoteCatalog 远端商品目录接口
type RemoteCatalog interface {
	ListProducts(ctx context.Context, offset, limit int) (*printful.ProductList, error)
	GetProduct(ctx context.Context, id int64) (*printful.ProductDetail, error)
	Ping(ctx context.Context) error
}

// SyncService 商品目录同步服务。
// 将 Printful 店铺目录与本地商品表对账：新建、更新、删除孤儿，
// 运行状态写入 SyncRun 供前端轮询。
type SyncService struct {
	cfg             *config.Config
	catalog         RemoteCatalog
	productRepo     repository.ProductRepository
	variantRepo     repository.VariantRepository
	categoryRepo    repository.CategoryRepository
	enhancementRepo repository.EnhancementRepository
	runRepo         repository.SyncRunRepository
	enhancements    *EnhancementConfig
	variantCache    *cache.VariantCache
	queueClient     *queue.Client

	sleep func(time.Duration)
	now   func() time.Time
}

// NewSyncService 创建同步服务
func NewSyncService(
	cfg *config.Config,
	catalog RemoteCatalog,
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	categoryRepo repository.CategoryRepository,
	enhancementRepo repository.EnhancementRepository,
	runRepo repository.SyncRunRepository,
	enhancements *EnhancementConfig,
	variantCache *cache.VariantCache,
	queueClient *queue.Client,
) *SyncService {
	return &SyncService{
		cfg:             cfg,
		catalog:         catalog,
		productRepo:     productRepo,
		variantRepo:     variantRepo,
		categoryRepo:    categoryRepo,
		enhancementRepo: enhancementRepo,
		runRepo:         runRepo,
		enhancements:    enhancements,
		variantCache:    variantCache,
		queueClient:     queueClient,
		sleep:           time.Sleep,
		now:             time.Now,
	}
}

// Trigger 创建同步运行并异步执行，立即返回运行记录。
// 已有非终态运行时拒绝新触发。
func (s *SyncService) Trigger(operation string) (*models.SyncRun, error) {
	if operation == "" {
		operation = constants.SyncOperationManual
	}

	active, err := s.runRepo.GetActive()
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, ErrSyncRunActive
	}

	run := &models.SyncRun{
		Operation: operation,
		Status:    constants.SyncStatusQueued,
		StartedAt: s.now(),
	}
	if err := s.runRepo.Create(run); err != nil {
		return nil, err
	}

	if s.queueClient.Enabled() {
		err = s.queueClient.EnqueueCatalogSync(queue.CatalogSyncPayload{
			SyncRunID: run.ID,
			Operation: operation,
		})
		if err != nil {
			// 入队失败必须把运行落到终态，否则 GetActive 会一直挡住后续触发
			s.failRun(run.ID, fmt.Sprintf("enqueue failed: %v", err))
			return nil, err
		}
		return run, nil
	}

	// 队列未启用时在进程内异步执行
	go func() {
		if runErr := s.Run(context.Background(), run.ID); runErr != nil {
			logger.Errorw("catalog_sync_failed", "run_id", run.ID, "error", runErr)
		}
	}()
	return run, nil
}

// GetRun 查询同步运行记录
func (s *SyncService) GetRun(id uint) (*models.SyncRun, error) {
	run, err := s.runRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, ErrNotFound
	}
	return run, nil
}

// LatestRun 最近一次同步运行记录
func (s *SyncService) LatestRun() (*models.SyncRun, error) {
	run, err := s.runRepo.GetLatest()
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, ErrNotFound
	}
	return run, nil
}

// ListRuns 同步运行记录列表
func (s *SyncService) ListRuns(filter repository.SyncRunListFilter) ([]models.SyncRun, int64, error) {
	return s.runRepo.List(filter)
}

// Run 执行一次完整对账。
// runID 为 0 时创建新运行记录；整个运行受总超时约束，
// 超时或探活失败标记 error，条目级失败标记 partial。
func (s *SyncService) Run(ctx context.Context, runID uint) error {
	run, err := s.resolveRun(runID)
	if err != nil {
		return err
	}

	syncCfg := s.cfg.Sync
	runTimeout := time.Duration(syncCfg.RunTimeoutSeconds) * time.Second
	runCtx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()
	deadline, _ := runCtx.Deadline()

	breaker := NewCircuitBreaker(
		syncCfg.BreakerThreshold,
		time.Duration(syncCfg.BreakerTimeoutSeconds)*time.Second,
		time.Duration(syncCfg.BreakerCooldownSeconds)*time.Second,
	)

	tracker := NewProgressTracker()
	startedAt := s.now()

	logger.Infow("catalog_sync_started",
		"run_id", run.ID,
		"operation", run.Operation,
		"run_timeout_s", syncCfg.RunTimeoutSeconds,
	)

	finish := func(abortMessage string) error {
		snapshot := tracker.Complete(abortMessage)
		duration := s.now().Sub(startedAt)
		s.persistFinal(run.ID, snapshot, duration)
		s.invalidateCatalogCache()

		logger.Infow("catalog_sync_finished",
			"run_id", run.ID,
			"status", snapshot.Status,
			"created", snapshot.ProductsCreated,
			"updated", snapshot.ProductsUpdated,
			"deleted", snapshot.ProductsDeleted,
			"variants", snapshot.VariantsProcessed,
			"warnings", len(snapshot.Warnings),
			"errors", len(snapshot.Errors),
			"duration_ms", duration.Milliseconds(),
		)
		if snapshot.Status == constants.SyncStatusError {
			return fmt.Errorf("sync run %d failed: %s", run.ID, abortMessage)
		}
		return nil
	}

	// 探活：本地存储与远端接口各一次，失败直接中止
	if err := s.probe(runCtx, breaker); err != nil {
		return finish(fmt.Sprintf("environment probe failed: %v", err))
	}

	// 抓取阶段
	s.persistSnapshot(run.ID, tracker.StartFetch())
	details, err := s.fetchCatalog(runCtx, breaker, tracker, run.ID)
	if err != nil {
		if runCtx.Err() != nil {
			return finish(s.abortMessage(runCtx, runTimeout))
		}
		return finish(fmt.Sprintf("fetch phase failed: %v", err))
	}

	// 处理阶段。孤儿判定以抓取结果为准：
	// 条目处理失败的商品远端仍然存在，绝不能进清理集合。
	s.persistSnapshot(run.ID, tracker.Initialize(len(details)))
	seenRemoteIDs := make(map[int64]bool, len(details))
	for _, detail := range details {
		seenRemoteIDs[detail.Product.ID] = true
	}
	if err := s.processAll(runCtx, details, tracker, run.ID); err != nil {
		return finish(s.abortMessage(runCtx, runTimeout))
	}

	// 清理阶段：距离总超时不足安全余量时跳过
	margin := time.Duration(syncCfg.CleanupMarginSeconds) * time.Second
	if time.Until(deadline) > margin {
		s.persistSnapshot(run.ID, tracker.StartCleanup())
		deleted := s.cleanupOrphans(seenRemoteIDs, tracker)
		s.persistSnapshot(run.ID, tracker.CompleteCleanup(deleted))
	} else {
		tracker.AddWarning("cleanup skipped: not enough time before run timeout")
	}

	return finish("")
}

func (s *SyncService) resolveRun(runID uint) (*models.SyncRun, error) {
	if runID > 0 {
		run, err := s.runRepo.GetByID(runID)
		if err != nil {
			return nil, err
		}
		if run == nil {
			return nil, ErrNotFound
		}
		return run, nil
	}
	run := &models.SyncRun{
		Operation: constants.SyncOperationFull,
		Status:    constants.SyncStatusQueued,
		StartedAt: s.now(),
	}
	if err := s.runRepo.Create(run); err != nil {
		return nil, err
	}
	return run, nil
}

func (s *SyncService) probe(ctx context.Context, breaker *CircuitBreaker) error {
	if _, err := s.runRepo.GetLatest(); err != nil {
		return fmt.Errorf("local store unreachable: %w", err)
	}
	err := breaker.Execute(ctx, func(callCtx context.Context) error {
		return s.catalog.Ping(callCtx)
	})
	if err != nil {
		return fmt.Errorf("remote api unreachable: %w", err)
	}
	return nil
}

// fetchCatalog 分页抓取目录并逐个取详情。
// 整个阶段最多重试 FetchRetries 次；单品详情失败只记警告。
func (s *SyncService) fetchCatalog(ctx context.Context, breaker *CircuitBreaker, tracker *ProgressTracker, runID uint) ([]*printful.ProductDetail, error) {
	syncCfg := s.cfg.Sync
	attempts := syncCfg.FetchRetries
	if attempts < 1 {
		attempts = 1
	}
	delay := time.Duration(syncCfg.FetchRetryDelayMS) * time.Millisecond

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		details, err := s.fetchOnce(ctx, breaker, tracker, runID)
		if err == nil {
			return details, nil
		}
		lastErr = err
		logger.Warnw("catalog_fetch_attempt_failed",
			"run_id", runID,
			"attempt", attempt,
			"max_attempts", attempts,
			"error", err,
		)
		if attempt < attempts {
			s.sleep(delay)
		}
	}
	return nil, lastErr
}

func (s *SyncService) fetchOnce(ctx context.Context, breaker *CircuitBreaker, tracker *ProgressTracker, runID uint) ([]*printful.ProductDetail, error) {
	syncCfg := s.cfg.Sync
	pageSize := syncCfg.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	maxProducts := syncCfg.MaxProducts

	var summaries []printful.SyncProduct
	offset := 0
	total := 0
	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var page *printful.ProductList
		err := breaker.Execute(ctx, func(callCtx context.Context) error {
			var listErr error
			page, listErr = s.catalog.ListProducts(callCtx, offset, pageSize)
			return listErr
		})
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, page.Items...)
		total = page.Total
		offset += len(page.Items)
		s.persistSnapshot(runID, tracker.FetchProgress(len(summaries), total))

		if len(page.Items) == 0 || offset >= total {
			break
		}
		if maxProducts > 0 && len(summaries) >= maxProducts {
			break
		}
	}
	if maxProducts > 0 && len(summaries) > maxProducts {
		summaries = summaries[:maxProducts]
	}

	details := make([]*printful.ProductDetail, 0, len(summaries))
	for _, summary := range summaries {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var detail *printful.ProductDetail
		err := breaker.Execute(ctx, func(callCtx context.Context) error {
			var detailErr error
			detail, detailErr = s.catalog.GetProduct(callCtx, summary.ID)
			return detailErr
		})
		if err != nil {
			tracker.AddWarning(fmt.Sprintf("product %d (%s) skipped: detail fetch failed: %v", summary.ID, summary.Name, err))
			continue
		}
		details = append(details, detail)
	}
	return details, nil
}

// processAll 按固定批次顺序处理，批内严格串行，批结束后落一次进度。
// 返回非 nil 仅表示总超时触发。
func (s *SyncService) processAll(ctx context.Context, details []*printful.ProductDetail, tracker *ProgressTracker, runID uint) error {
	syncCfg := s.cfg.Sync
	batchSize := syncCfg.BatchSize
	if batchSize <= 0 {
		batchSize = 5
	}
	batchTimeout := time.Duration(syncCfg.BatchTimeoutSeconds) * time.Second

	for start := 0; start < len(details); start += batchSize {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		end := start + batchSize
		if end > len(details) {
			end = len(details)
		}
		batch := details[start:end]
		batchDeadline := s.now().Add(batchTimeout)

		for i, detail := range batch {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if s.now().After(batchDeadline) {
				// 批超时：整批剩余条目视为失败，继续下一批
				abandoned := len(batch) - i
				tracker.AddError(fmt.Sprintf("batch starting at %d abandoned after %s timeout, %d items unprocessed", start, batchTimeout, abandoned))
				break
			}
			index := start + i
			tracker.StartItem(index, detail.Product.Name)
			result, warnings, itemErr := s.processItem(detail)
			for _, warning := range warnings {
				tracker.AddWarning(warning)
			}
			if itemErr != nil {
				tracker.AddError(fmt.Sprintf("product %d (%s): %v", detail.Product.ID, detail.Product.Name, itemErr))
				continue
			}
			tracker.CompleteItem(result)
		}

		s.persistSnapshot(runID, tracker.StartItem(end, ""))
	}
	return nil
}

// processItem 处理单个商品，整体重试 ItemRetries 次
func (s *SyncService) processItem(detail *printful.ProductDetail) (ItemResult, []string, error) {
	syncCfg := s.cfg.Sync
	attempts := syncCfg.ItemRetries
	if attempts < 1 {
		attempts = 1
	}
	delay := time.Duration(syncCfg.ItemRetryDelayMS) * time.Millisecond

	var result ItemResult
	var warnings []string
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		result, warnings, lastErr = s.upsertProduct(detail)
		if lastErr == nil {
			return result, warnings, nil
		}
		if attempt < attempts {
			s.sleep(delay)
		}
	}
	return ItemResult{}, nil, lastErr
}

func (s *SyncService) upsertProduct(detail *printful.ProductDetail) (ItemResult, []string, error) {
	remote := detail.Product
	existing, err := s.productRepo.GetByRemoteID(remote.ID)
	if err != nil {
		return ItemResult{}, nil, err
	}

	var product *models.Product
	created := false
	if existing == nil {
		slug, slugErr := s.uniqueSlug(remote.Name)
		if slugErr != nil {
			return ItemResult{}, nil, slugErr
		}
		product = &models.Product{
			RemoteID:     remote.ID,
			ExternalID:   remote.ExternalID,
			Slug:         slug,
			Name:         remote.Name,
			ThumbnailURL: remote.ThumbnailURL,
			IsActive:     true,
		}
		if err := s.productRepo.Create(product); err != nil {
			return ItemResult{}, nil, err
		}
		created = true
	} else {
		product = existing
		product.Name = remote.Name
		product.ExternalID = remote.ExternalID
		product.ThumbnailURL = remote.ThumbnailURL
		if err := s.productRepo.Update(product); err != nil {
			return ItemResult{}, nil, err
		}
	}

	variantCount, err := s.upsertVariants(product, detail.Variants)
	if err != nil {
		return ItemResult{}, nil, err
	}

	// 新建商品的元数据补全失败只降级为警告，随运行记录落库
	var warnings []string
	if created {
		if err := s.assignCategories(product); err != nil {
			logger.Warnw("category_assign_failed", "product_id", product.ID, "error", err)
			warnings = append(warnings, fmt.Sprintf("product %d (%s): category assign failed: %v", remote.ID, remote.Name, err))
		}
		if err := s.copyEnhancement(product); err != nil {
			logger.Warnw("enhancement_copy_failed", "product_id", product.ID, "error", err)
			warnings = append(warnings, fmt.Sprintf("product %d (%s): enhancement copy failed: %v", remote.ID, remote.Name, err))
		}
	}

	return ItemResult{Created: created, Updated: !created, Variants: variantCount}, warnings, nil
}

func (s *SyncService) upsertVariants(product *models.Product, remoteVariants []printful.SyncVariant) (int, error) {
	keep := make([]int64, 0, len(remoteVariants))
	count := 0
	for _, remote := range remoteVariants {
		price := decimal.Zero
		if remote.RetailPrice != "" {
			parsed, err := decimal.NewFromString(remote.RetailPrice)
			if err != nil {
				return count, fmt.Errorf("variant %d: invalid retail price %q", remote.ID, remote.RetailPrice)
			}
			price = parsed
		}

		existing, err := s.variantRepo.GetByRemoteID(product.ID, remote.ID)
		if err != nil {
			return count, err
		}
		if existing == nil {
			variant := &models.ProductVariant{
				ProductID:     product.ID,
				RemoteID:      remote.ID,
				ExternalID:    remote.ExternalID,
				Name:          remote.Name,
				Color:         remote.Color,
				Size:          remote.Size,
				RetailPrice:   models.NewMoneyFromDecimal(price),
				Currency:      remote.Currency,
				PreviewImages: models.StringArray(remote.PreviewImages()),
				IsEnabled:     !remote.IsIgnored,
				InStock:       remote.InStock,
			}
			if err := s.variantRepo.Create(variant); err != nil {
				return count, err
			}
		} else {
			existing.ExternalID = remote.ExternalID
			existing.Name = remote.Name
			existing.Color = remote.Color
			existing.Size = remote.Size
			existing.RetailPrice = models.NewMoneyFromDecimal(price)
			existing.Currency = remote.Currency
			existing.PreviewImages = models.StringArray(remote.PreviewImages())
			existing.IsEnabled = !remote.IsIgnored
			existing.InStock = remote.InStock
			if err := s.variantRepo.Update(existing); err != nil {
				return count, err
			}
		}

		if s.variantCache != nil {
			s.variantCache.Set(remote.ExternalID, remote.ID)
		}
		keep = append(keep, remote.ID)
		count++
	}

	if _, err := s.variantRepo.DeleteMissing(product.ID, keep); err != nil {
		return count, err
	}
	return count, nil
}

// assignCategories 按名称关键词挂接已有分类，首个命中为主分类
func (s *SyncService) assignCategories(product *models.Product) error {
	categories, err := s.categoryRepo.List()
	if err != nil {
		return err
	}
	name := strings.ToLower(product.Name)
	joins := make([]models.ProductCategory, 0, 2)
	for _, category := range categories {
		keyword := strings.ToLower(strings.TrimSpace(category.Name))
		if keyword == "" || !strings.Contains(name, keyword) {
			continue
		}
		joins = append(joins, models.ProductCategory{
			CategoryID: category.ID,
			IsPrimary:  len(joins) == 0,
		})
	}
	if len(joins) == 0 {
		return nil
	}
	return s.productRepo.ReplaceCategories(product.ID, joins)
}

// copyEnhancement 首次创建时复制静态增强内容；已存在的记录绝不覆盖
func (s *SyncService) copyEnhancement(product *models.Product) error {
	preset := s.enhancements.GetByExternalID(product.ExternalID)
	if preset == nil {
		return nil
	}
	existing, err := s.enhancementRepo.GetByProductID(product.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	return s.enhancementRepo.Create(preset.BuildEnhancement(product.ID))
}

// cleanupOrphans 删除远端不再存在的本地商品，单次运行删除数受上限约束
func (s *SyncService) cleanupOrphans(seen map[int64]bool, tracker *ProgressTracker) int {
	locals, err := s.productRepo.ListAll(true)
	if err != nil {
		tracker.AddWarning(fmt.Sprintf("cleanup skipped: list local products failed: %v", err))
		return 0
	}

	budget := s.cfg.Sync.MaxDeletionsPerRun
	deleted := 0
	for _, local := range locals {
		if seen[local.RemoteID] {
			continue
		}
		if budget > 0 && deleted >= budget {
			tracker.AddWarning(fmt.Sprintf("cleanup stopped at deletion cap %d, remaining orphans kept for next run", budget))
			break
		}
		if err := s.productRepo.DeleteCascade(local.ID); err != nil {
			tracker.AddWarning(fmt.Sprintf("orphan %s (remote %d) delete failed: %v", local.Slug, local.RemoteID, err))
			continue
		}
		logger.Infow("orphan_product_deleted", "product_id", local.ID, "remote_id", local.RemoteID, "slug", local.Slug)
		deleted++
	}
	return deleted
}

func (s *SyncService) uniqueSlug(name string) (string, error) {
	base := slugify(name)
	slug := base
	for i := 2; ; i++ {
		count, err := s.productRepo.CountBySlug(slug, nil)
		if err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "product"
	}
	return slug
}

// abortMessage 区分总超时与上层取消（如 worker 停机），不把取消谎报成超时
func (s *SyncService) abortMessage(runCtx context.Context, timeout time.Duration) string {
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return fmt.Sprintf("sync run timed out after %s", timeout)
	}
	return fmt.Sprintf("sync run canceled: %v", runCtx.Err())
}

func (s *SyncService) persistSnapshot(runID uint, snapshot ProgressSnapshot) {
	patch := repository.SyncRunPatch{
		Status:            &snapshot.Status,
		CurrentStep:       &snapshot.CurrentStep,
		Progress:          &snapshot.Progress,
		TotalProducts:     &snapshot.TotalProducts,
		CurrentIndex:      &snapshot.CurrentIndex,
		CurrentProduct:    &snapshot.CurrentProduct,
		ProductsProcessed: &snapshot.ProductsProcessed,
		ProductsCreated:   &snapshot.ProductsCreated,
		ProductsUpdated:   &snapshot.ProductsUpdated,
		ProductsDeleted:   &snapshot.ProductsDeleted,
		VariantsProcessed: &snapshot.VariantsProcessed,
		EstimatedLeftMS:   &snapshot.EstimatedLeftMS,
	}
	if err := s.runRepo.Patch(runID, patch); err != nil {
		logger.Warnw("sync_progress_persist_failed", "run_id", runID, "error", err)
	}
}

func (s *SyncService) persistFinal(runID uint, snapshot ProgressSnapshot, duration time.Duration) {
	completedAt := s.now()
	durationMS := duration.Milliseconds()
	warnings := snapshot.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	itemErrors := snapshot.Errors
	if itemErrors == nil {
		itemErrors = []string{}
	}
	patch := repository.SyncRunPatch{
		Status:            &snapshot.Status,
		CurrentStep:       &snapshot.CurrentStep,
		Progress:          &snapshot.Progress,
		TotalProducts:     &snapshot.TotalProducts,
		ProductsProcessed: &snapshot.ProductsProcessed,
		ProductsCreated:   &snapshot.ProductsCreated,
		ProductsUpdated:   &snapshot.ProductsUpdated,
		ProductsDeleted:   &snapshot.ProductsDeleted,
		VariantsProcessed: &snapshot.VariantsProcessed,
		EstimatedLeftMS:   &snapshot.EstimatedLeftMS,
		Warnings:          warnings,
		Errors:            itemErrors,
		ErrorMessage:      &snapshot.ErrorMessage,
		CompletedAt:       &completedAt,
		DurationMS:        &durationMS,
	}
	if err := s.runRepo.Patch(runID, patch); err != nil {
		logger.Errorw("sync_final_persist_failed", "run_id", runID, "error", err)
	}
}

// failRun 把运行直接落到 error 终态，用于尚未进入执行阶段的失败
func (s *SyncService) failRun(runID uint, message string) {
	status := constants.SyncStatusError
	completedAt := s.now()
	patch := repository.SyncRunPatch{
		Status:       &status,
		ErrorMessage: &message,
		CompletedAt:  &completedAt,
	}
	if err := s.runRepo.Patch(runID, patch); err != nil {
		logger.Errorw("sync_run_fail_persist_failed", "run_id", runID, "error", err)
	}
}

func (s *SyncService) invalidateCatalogCache() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := cache.DelByPrefix(ctx, "catalog:"); err != nil {
		logger.Warnw("catalog_cache_invalidate_failed", "error", err)
	}
}
