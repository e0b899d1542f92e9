package public

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bombershop-next/internal/cache"
	"github.com/bombershop-next/internal/http/response"
	"github.com/bombershop-next/internal/models"
	"github.com/bombershop-next/internal/repository"
	"github.com/bombershop-next/internal/service"

	"github.com/gin-gonic/gin"
)

const catalogCacheTTLDefault = 60 * time.Second

// cachedProductPage 商品列表缓存结构
type cachedProductPage struct {
	Items []models.Product `json:"items"`
	Total int64            `json:"total"`
}

func (h *Handler) catalogCacheTTL() time.Duration {
	if h.Config != nil && h.Config.Catalog.CacheTTLSeconds > 0 {
		return time.Duration(h.Config.Catalog.CacheTTLSeconds) * time.Second
	}
	return catalogCacheTTLDefault
}

// GetProducts 获取商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	categorySlug := strings.TrimSpace(c.Query("category"))
	search := strings.TrimSpace(c.Query("search"))

	cacheKey := fmt.Sprintf("catalog:products:%s:%s:%d:%d", categorySlug, search, page, pageSize)
	var cached cachedProductPage
	if hit, err := cache.GetJSON(c.Request.Context(), cacheKey, &cached); err == nil && hit {
		response.SuccessWithPage(c, cached.Items, buildPagination(page, pageSize, cached.Total))
		return
	}

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategorySlug: categorySlug,
		Search:       search,
		OnlyActive:   true,
		WithVariants: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch products", err)
		return
	}

	_ = cache.SetJSON(c.Request.Context(), cacheKey, cachedProductPage{Items: products, Total: total}, h.catalogCacheTTL())
	response.SuccessWithPage(c, products, buildPagination(page, pageSize, total))
}

// GetProductBySlug 获取商品详情
func (h *Handler) GetProductBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		respondError(c, response.CodeBadRequest, "slug is required", nil)
		return
	}

	cacheKey := "catalog:product:" + slug
	var cached models.Product
	if hit, err := cache.GetJSON(c.Request.Context(), cacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	product, err := h.ProductService.GetBySlug(slug, true)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to fetch product", err)
		return
	}

	_ = cache.SetJSON(c.Request.Context(), cacheKey, product, h.catalogCacheTTL())
	response.Success(c, product)
}

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	cacheKey := "catalog:categories"
	var cached []models.Category
	if hit, err := cache.GetJSON(c.Request.Context(), cacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch categories", err)
		return
	}

	_ = cache.SetJSON(c.Request.Context(), cacheKey, categories, h.catalogCacheTTL())
	response.Success(c, categories)
}

func buildPagination(page, pageSize int, total int64) response.Pagination {
	return response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
}
