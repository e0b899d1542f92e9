package repository

import (
	"errors"

	"github.com/bombershop-next/internal/constants"
	"github.com/bombershop-next/internal/models"

	"gorm.io/gorm"
)

// SyncRunRepository 同步记录数据访问接口
type SyncRunRepository interface {
	Create(run *models.SyncRun) error
	GetByID(id uint) (*models.SyncRun, error)
	GetActive() (*models.SyncRun, error)
	GetLatest() (*models.SyncRun, error)
	Patch(id uint, patch SyncRunPatch) error
	List(filter SyncRunListFilter) ([]models.SyncRun, int64, error)
	WithTx(tx *gorm.DB) SyncRunRepository
}

// GormSyncRunRepository GORM 实现
type GormSyncRunRepository struct {
	db *gorm.DB
}

// NewSyncRunRepository 创建同步记录仓库
func NewSyncRunRepository(db *gorm.DB) *GormSyncRunRepository {
	return &GormSyncRunRepository{db: db}
}

// WithTx 绑定事务
func (r *GormSyncRunRepository) WithTx(tx *gorm.DB) SyncRunRepository {
	if tx == nil {
		return r
	}
	return &GormSyncRunRepository{db: tx}
}

// Create 创建同步记录
func (r *GormSyncRunRepository) Create(run *models.SyncRun) error {
	return r.db.Create(run).Error
}

// GetByID 根据 ID 获取同步记录
func (r *GormSyncRunRepository) GetByID(id uint) (*models.SyncRun, error) {
	var run models.SyncRun
	if err := r.db.First(&run, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

// GetActive 获取未结束的同步记录
func (r *GormSyncRunRepository) GetActive() (*models.SyncRun, error) {
	var run models.SyncRun
	err := r.db.
		Where("status NOT IN ?", []string{
			constants.SyncStatusSuccess,
			constants.SyncStatusPartial,
			constants.SyncStatusError,
		}).
		Order("id DESC").
		First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

// GetLatest 获取最近一次同步记录
func (r *GormSyncRunRepository) GetLatest() (*models.SyncRun, error) {
	var run models.SyncRun
	if err := r.db.Order("id DESC").First(&run).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

// Patch 增量更新同步记录，nil 字段不更新
func (r *GormSyncRunRepository) Patch(id uint, patch SyncRunPatch) error {
	if id == 0 {
		return nil
	}
	values := map[string]interface{}{}
	if patch.Status != nil {
		values["status"] = *patch.Status
	}
	if patch.CurrentStep != nil {
		values["current_step"] = *patch.CurrentStep
	}
	if patch.Progress != nil {
		values["progress"] = *patch.Progress
	}
	if patch.TotalProducts != nil {
		values["total_products"] = *patch.TotalProducts
	}
	if patch.CurrentIndex != nil {
		values["current_index"] = *patch.CurrentIndex
	}
	if patch.CurrentProduct != nil {
		values["current_product"] = *patch.CurrentProduct
	}
	if patch.ProductsProcessed != nil {
		values["products_processed"] = *patch.ProductsProcessed
	}
	if patch.ProductsCreated != nil {
		values["products_created"] = *patch.ProductsCreated
	}
	if patch.ProductsUpdated != nil {
		values["products_updated"] = *patch.ProductsUpdated
	}
	if patch.ProductsDeleted != nil {
		values["products_deleted"] = *patch.ProductsDeleted
	}
	if patch.VariantsProcessed != nil {
		values["variants_processed"] = *patch.VariantsProcessed
	}
	if patch.EstimatedLeftMS != nil {
		values["estimated_left_ms"] = *patch.EstimatedLeftMS
	}
	if patch.Warnings != nil {
		values["warnings"] = models.StringArray(patch.Warnings)
	}
	if patch.Errors != nil {
		values["errors"] = models.StringArray(patch.Errors)
	}
	if patch.ErrorMessage != nil {
		values["error_message"] = *patch.ErrorMessage
	}
	if patch.CompletedAt != nil {
		values["completed_at"] = *patch.CompletedAt
	}
	if patch.DurationMS != nil {
		values["duration_ms"] = *patch.DurationMS
	}
	if len(values) == 0 {
		return nil
	}
	return r.db.Model(&models.SyncRun{}).Where("id = ?", id).Updates(values).Error
}

// List 同步记录列表
func (r *GormSyncRunRepository) List(filter SyncRunListFilter) ([]models.SyncRun, int64, error) {
	var runs []models.SyncRun

	query := r.db.Model(&models.SyncRun{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Operation != "" {
		query = query.Where("operation = ?", filter.Operation)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id DESC").Find(&runs).Error; err != nil {
		return nil, 0, err
	}

	return runs, total, nil
}
