package repository

import (
	"errors"

	"github.com/bombershop-next/internal/models"

	"gorm.io/gorm"
)

// EnhancementRepository 商品增强内容数据访问接口
type EnhancementRepository interface {
	GetByProductID(productID uint) (*models.Enhancement, error)
	Create(enhancement *models.Enhancement) error
	Update(enhancement *models.Enhancement) error
	DeleteByProductID(productID uint) error
	WithTx(tx *gorm.DB) EnhancementRepository
}

// GormEnhancementRepository GORM 实现
type GormEnhancementRepository struct {
	db *gorm.DB
}

// NewEnhancementRepository 创建增强内容仓库
func NewEnhancementRepository(db *gorm.DB) *GormEnhancementRepository {
	return &GormEnhancementRepository{db: db}
}

// WithTx 绑定事务
func (r *GormEnhancementRepository) WithTx(tx *gorm.DB) EnhancementRepository {
	if tx == nil {
		return r
	}
	return &GormEnhancementRepository{db: tx}
}

// GetByProductID 根据商品 ID 获取增强内容
func (r *GormEnhancementRepository) GetByProductID(productID uint) (*models.Enhancement, error) {
	var enhancement models.Enhancement
	if err := r.db.Where("product_id = ?", productID).First(&enhancement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &enhancement, nil
}

// Create 创建增强内容
func (r *GormEnhancementRepository) Create(enhancement *models.Enhancement) error {
	return r.db.Create(enhancement).Error
}

// Update 更新增强内容
func (r *GormEnhancementRepository) Update(enhancement *models.Enhancement) error {
	return r.db.Save(enhancement).Error
}

// DeleteByProductID 删除商品的增强内容
func (r *GormEnhancementRepository) DeleteByProductID(productID uint) error {
	if productID == 0 {
		return nil
	}
	return r.db.Where("product_id = ?", productID).Delete(&models.Enhancement{}).Error
}
