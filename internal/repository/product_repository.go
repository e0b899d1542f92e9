package repository

import (
	"errors"
	"strings"

	"github.com/bombershop-next/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	ListAll(includeIgnored bool) ([]models.Product, error)
	GetBySlug(slug string, onlyActive bool) (*models.Product, error)
	GetByID(id uint) (*models.Product, error)
	GetByRemoteID(remoteID int64) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	UpdateColumns(id uint, values map[string]interface{}) error
	DeleteCascade(id uint) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
	ReplaceCategories(productID uint, joins []models.ProductCategory) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product

	query := r.db.Model(&models.Product{})
	if filter.WithVariants {
		if filter.OnlyActive {
			query = query.Preload("Variants", func(db *gorm.DB) *gorm.DB {
				return db.Where("is_enabled = ?", true).Order("id ASC")
			})
		} else {
			query = query.Preload("Variants", func(db *gorm.DB) *gorm.DB {
				return db.Order("id ASC")
			})
		}
		query = query.Preload("Enhancement")
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if !filter.IncludeIgnored {
		query = query.Where("is_ignored = ?", false)
	}
	if filter.CategorySlug != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM product_categories pc JOIN categories c ON c.id = pc.category_id AND c.deleted_at IS NULL WHERE pc.product_id = products.id AND c.slug = ?)",
			filter.CategorySlug,
		)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR slug LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("name ASC, id ASC").Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// ListAll 获取全部商品（同步对账用，附带变体与增强内容）
func (r *GormProductRepository) ListAll(includeIgnored bool) ([]models.Product, error) {
	var products []models.Product
	query := r.db.Preload("Variants").Preload("Enhancement")
	if !includeIgnored {
		query = query.Where("is_ignored = ?", false)
	}
	if err := query.Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetBySlug 根据 slug 获取商品
func (r *GormProductRepository) GetBySlug(slug string, onlyActive bool) (*models.Product, error) {
	query := r.db.Preload("Enhancement").Where("slug = ?", slug)
	if onlyActive {
		query = query.Where("is_active = ? AND is_ignored = ?", true, false)
		query = query.Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_enabled = ?", true).Order("id ASC")
		})
	} else {
		query = query.Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		})
	}

	var product models.Product
	if err := query.First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetByID 根据 ID 获取商品
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Enhancement").
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetByRemoteID 根据 Printful 商品 ID 获取商品
func (r *GormProductRepository) GetByRemoteID(remoteID int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Variants").Preload("Enhancement").
		Where("remote_id = ?", remoteID).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// UpdateColumns 更新指定字段
func (r *GormProductRepository) UpdateColumns(id uint, values map[string]interface{}) error {
	if id == 0 || len(values) == 0 {
		return nil
	}
	return r.db.Model(&models.Product{}).Where("id = ?", id).Updates(values).Error
}

// DeleteCascade 删除商品及其变体、分类关联与增强内容
func (r *GormProductRepository) DeleteCascade(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductVariant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.Enhancement{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, id).Error
	})
}

// CountBySlug 统计 slug 数量
func (r *GormProductRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Product{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ReplaceCategories 重建商品的分类关联
func (r *GormProductRepository) ReplaceCategories(productID uint, joins []models.ProductCategory) error {
	if productID == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&models.ProductCategory{}).Error; err != nil {
			return err
		}
		for i := range joins {
			joins[i].ProductID = productID
		}
		if len(joins) == 0 {
			return nil
		}
		return tx.Create(&joins).Error
	})
}
