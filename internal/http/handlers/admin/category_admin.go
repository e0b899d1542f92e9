package admin

import (
	"errors"

	"github.com/bombershop-next/internal/http/response"
	"github.com/bombershop-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminCategories 获取分类列表 (Admin)
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch categories", err)
		return
	}

	response.Success(c, categories)
}

// CategoryRequest 分类创建/更新请求
type CategoryRequest struct {
	Slug      string `json:"slug" binding:"required"`
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

// CreateAdminCategory 创建分类 (Admin)
func (h *Handler) CreateAdminCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	category, err := h.CategoryService.Create(service.CreateCategoryInput{
		Slug:      req.Slug,
		Name:      req.Name,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSlugExists):
			respondError(c, response.CodeBadRequest, "slug already exists", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "slug and name are required", nil)
		default:
			respondError(c, response.CodeInternal, "failed to create category", err)
		}
		return
	}

	response.Success(c, category)
}

// UpdateAdminCategory 更新分类 (Admin)
func (h *Handler) UpdateAdminCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	category, err := h.CategoryService.Update(id, service.CreateCategoryInput{
		Slug:      req.Slug,
		Name:      req.Name,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "category not found", nil)
		case errors.Is(err, service.ErrSlugExists):
			respondError(c, response.CodeBadRequest, "slug already exists", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "slug and name are required", nil)
		default:
			respondError(c, response.CodeInternal, "failed to update category", err)
		}
		return
	}

	response.Success(c, category)
}

// DeleteAdminCategory 删除分类 (Admin)
func (h *Handler) DeleteAdminCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.CategoryService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "category not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to delete category", err)
		return
	}

	response.Success(c, nil)
}
