package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/bombershop-next/internal/http/response"
	"github.com/bombershop-next/internal/repository"
	"github.com/bombershop-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminProducts 获取商品列表 (Admin)
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	categorySlug := strings.TrimSpace(c.Query("category"))
	search := strings.TrimSpace(c.Query("search"))
	includeIgnored := c.Query("include_ignored") == "true"

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:           page,
		PageSize:       pageSize,
		CategorySlug:   categorySlug,
		Search:         search,
		IncludeIgnored: includeIgnored,
		WithVariants:   true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch products", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, products, pagination)
}

// GetAdminProduct 获取商品详情 (Admin)
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.ProductService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to fetch product", err)
		return
	}

	response.Success(c, product)
}

// UpdateProductRequest 商品本地属性更新请求
type UpdateProductRequest struct {
	Slug      *string `json:"slug"`
	IsActive  *bool   `json:"is_active"`
	IsIgnored *bool   `json:"is_ignored"`
}

// UpdateAdminProduct 更新商品本地属性 (Admin)
func (h *Handler) UpdateAdminProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	product, err := h.ProductService.Update(id, service.UpdateProductInput{
		Slug:      req.Slug,
		IsActive:  req.IsActive,
		IsIgnored: req.IsIgnored,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "product not found", nil)
		case errors.Is(err, service.ErrSlugExists):
			respondError(c, response.CodeBadRequest, "slug already exists", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "slug must not be empty", nil)
		default:
			respondError(c, response.CodeInternal, "failed to update product", err)
		}
		return
	}

	response.Success(c, product)
}

// SetProductCategoriesRequest 商品分类设置请求，首个分类为主分类
type SetProductCategoriesRequest struct {
	CategoryIDs []uint `json:"category_ids"`
}

// SetAdminProductCategories 设置商品分类 (Admin)
func (h *Handler) SetAdminProductCategories(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req SetProductCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	if err := h.ProductService.SetCategories(id, req.CategoryIDs); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to set categories", err)
		return
	}

	response.Success(c, nil)
}

// UpsertEnhancementRequest 增强内容编辑请求
type UpsertEnhancementRequest struct {
	Description              string                 `json:"description"`
	ShortDescription         string                 `json:"short_description"`
	Features                 []string               `json:"features"`
	Specs                    map[string]interface{} `json:"specs"`
	AdditionalImages         []string               `json:"additional_images"`
	SeoMeta                  map[string]interface{} `json:"seo_meta"`
	DefaultVariantExternalID string                 `json:"default_variant_external_id"`
}

// UpsertAdminProductEnhancement 编辑商品增强内容 (Admin)
func (h *Handler) UpsertAdminProductEnhancement(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpsertEnhancementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	enhancement, err := h.ProductService.UpsertEnhancement(id, service.UpsertEnhancementInput{
		Description:              req.Description,
		ShortDescription:         req.ShortDescription,
		Features:                 req.Features,
		Specs:                    req.Specs,
		AdditionalImages:         req.AdditionalImages,
		SeoMeta:                  req.SeoMeta,
		DefaultVariantExternalID: req.DefaultVariantExternalID,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to save enhancement", err)
		return
	}

	response.Success(c, enhancement)
}

// DeleteAdminProductEnhancement 删除商品增强内容 (Admin)
func (h *Handler) DeleteAdminProductEnhancement(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.ProductService.DeleteEnhancement(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to delete enhancement", err)
		return
	}

	response.Success(c, nil)
}

func parseIDParam(c *gin.Context) (uint, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid id", nil)
		return 0, false
	}
	return uint(id), true
}
