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

// GetAdminOrders 获取订单转发记录列表 (Admin)
func (h *Handler) GetAdminOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.List(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		Email:    strings.TrimSpace(c.Query("email")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch orders", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, orders, pagination)
}

// GetAdminOrder 获取订单转发记录详情 (Admin)
func (h *Handler) GetAdminOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := h.OrderService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to fetch order", err)
		return
	}

	response.Success(c, order)
}

// RetryAdminOrderRelay 重试订单转发 (Admin)。
// 同步执行转发并返回最新记录，已转发的订单直接返回。
func (h *Handler) RetryAdminOrderRelay(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.OrderService.Relay(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "order relay failed", err)
		return
	}

	order, err := h.OrderService.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch order", err)
		return
	}

	response.Success(c, order)
}
