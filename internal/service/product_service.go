package service

import (
	"strings"

	"github.com/bombershop-next/internal/models"
	"github.com/bombershop-next/internal/repository"
)

// ProductService 商品业务服务
type ProductService struct {
	productRepo     repository.ProductRepository
	enhancementRepo repository.EnhancementRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, enhancementRepo repository.EnhancementRepository) *ProductService {
	return &ProductService{
		productRepo:     productRepo,
		enhancementRepo: enhancementRepo,
	}
}

// List 商品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// GetBySlug 根据 slug 获取商品
func (s *ProductService) GetBySlug(slug string, onlyActive bool) (*models.Product, error) {
	product, err := s.productRepo.GetBySlug(slug, onlyActive)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// GetByID 根据 ID 获取商品
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// UpdateProductInput 商品本地属性更新输入，nil 字段不更新
type UpdateProductInput struct {
	Slug      *string
	IsActive  *bool
	IsIgnored *bool
}

// Update 更新商品本地属性。
// 远端镜像字段（名称、缩略图、变体）由同步维护，不在此处修改。
func (s *ProductService) Update(id uint, input UpdateProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	values := map[string]interface{}{}
	if input.Slug != nil {
		slug := strings.TrimSpace(*input.Slug)
		if slug == "" {
			return nil, ErrInvalidInput
		}
		count, err := s.productRepo.CountBySlug(slug, &id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSlugExists
		}
		values["slug"] = slug
	}
	if input.IsActive != nil {
		values["is_active"] = *input.IsActive
	}
	if input.IsIgnored != nil {
		values["is_ignored"] = *input.IsIgnored
	}
	if len(values) > 0 {
		if err := s.productRepo.UpdateColumns(id, values); err != nil {
			return nil, err
		}
	}
	return s.productRepo.GetByID(id)
}

// SetCategories 设置商品分类，首个为主分类
func (s *ProductService) SetCategories(id uint, categoryIDs []uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	joins := make([]models.ProductCategory, 0, len(categoryIDs))
	for i, categoryID := range categoryIDs {
		joins = append(joins, models.ProductCategory{
			CategoryID: categoryID,
			IsPrimary:  i == 0,
		})
	}
	return s.productRepo.ReplaceCategories(id, joins)
}

// UpsertEnhancementInput 增强内容编辑输入
type UpsertEnhancementInput struct {
	Description              string
	ShortDescription         string
	Features                 []string
	Specs                    map[string]interface{}
	AdditionalImages         []string
	SeoMeta                  map[string]interface{}
	DefaultVariantExternalID string
}

// UpsertEnhancement 管理端编辑增强内容。
// 此处写入的内容对同步是权威的，后续同步不会覆盖。
func (s *ProductService) UpsertEnhancement(productID uint, input UpsertEnhancementInput) (*models.Enhancement, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	enhancement, err := s.enhancementRepo.GetByProductID(productID)
	if err != nil {
		return nil, err
	}
	if enhancement == nil {
		enhancement = &models.Enhancement{ProductID: productID}
	}

	enhancement.Description = input.Description
	enhancement.ShortDescription = input.ShortDescription
	enhancement.Features = models.StringArray(input.Features)
	enhancement.Specs = models.JSON(input.Specs)
	enhancement.AdditionalImages = models.StringArray(input.AdditionalImages)
	enhancement.SeoMeta = models.JSON(input.SeoMeta)
	enhancement.DefaultVariantExternalID = input.DefaultVariantExternalID

	if enhancement.ID == 0 {
		if err := s.enhancementRepo.Create(enhancement); err != nil {
			return nil, err
		}
	} else {
		if err := s.enhancementRepo.Update(enhancement); err != nil {
			return nil, err
		}
	}
	return enhancement, nil
}

// DeleteEnhancement 删除商品增强内容
func (s *ProductService) DeleteEnhancement(productID uint) error {
	return s.enhancementRepo.DeleteByProductID(productID)
}
