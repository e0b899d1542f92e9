package repository

import (
	"errors"

	"github.com/bombershop-next/internal/models"

	"gorm.io/gorm"
)

// VariantRepository 商品变体数据访问接口
type VariantRepository interface {
	ListByProduct(productID uint) ([]models.ProductVariant, error)
	GetByRemoteID(productID uint, remoteID int64) (*models.ProductVariant, error)
	GetByExternalID(externalID string) (*models.ProductVariant, error)
	Create(variant *models.ProductVariant) error
	Update(variant *models.ProductVariant) error
	DeleteMissing(productID uint, keepRemoteIDs []int64) (int64, error)
	WithTx(tx *gorm.DB) VariantRepository
}

// GormVariantRepository GORM 实现
type GormVariantRepository struct {
	db *gorm.DB
}

// NewVariantRepository 创建商品变体仓库
func NewVariantRepository(db *gorm.DB) *GormVariantRepository {
	return &GormVariantRepository{db: db}
}

// WithTx 绑定事务
func (r *GormVariantRepository) WithTx(tx *gorm.DB) VariantRepository {
	if tx == nil {
		return r
	}
	return &GormVariantRepository{db: tx}
}

// ListByProduct 获取商品下全部变体
func (r *GormVariantRepository) ListByProduct(productID uint) ([]models.ProductVariant, error) {
	var variants []models.ProductVariant
	if err := r.db.Where("product_id = ?", productID).Order("id ASC").Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// GetByRemoteID 根据 Printful 变体 ID 获取变体
func (r *GormVariantRepository) GetByRemoteID(productID uint, remoteID int64) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.Where("product_id = ? AND remote_id = ?", productID, remoteID).First(&variant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

// GetByExternalID 根据 Printful external ID 获取变体（下单路径用）
func (r *GormVariantRepository) GetByExternalID(externalID string) (*models.ProductVariant, error) {
	if externalID == "" {
		return nil, nil
	}
	var variant models.ProductVariant
	if err := r.db.Where("external_id = ?", externalID).First(&variant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

// Create 创建变体
func (r *GormVariantRepository) Create(variant *models.ProductVariant) error {
	return r.db.Create(variant).Error
}

// Update 更新变体
func (r *GormVariantRepository) Update(variant *models.ProductVariant) error {
	return r.db.Save(variant).Error
}

// DeleteMissing 删除不在保留列表中的变体，返回删除数量
func (r *GormVariantRepository) DeleteMissing(productID uint, keepRemoteIDs []int64) (int64, error) {
	if productID == 0 {
		return 0, nil
	}
	query := r.db.Where("product_id = ?", productID)
	if len(keepRemoteIDs) > 0 {
		query = query.Where("remote_id NOT IN ?", keepRemoteIDs)
	}
	result := query.Delete(&models.ProductVariant{})
	return result.RowsAffected, result.Error
}
