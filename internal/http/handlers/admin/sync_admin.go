package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/bombershop-next/internal/constants"
	"github.com/bombershop-next/internal/http/response"
	"github.com/bombershop-next/internal/repository"
	"github.com/bombershop-next/internal/service"

	"github.com/gin-gonic/gin"
)

// TriggerSyncRequest 同步触发请求
type TriggerSyncRequest struct {
	Operation string `json:"operation"`
}

// TriggerAdminSync 触发目录同步 (Admin)。
// 返回排队中的同步记录，前端据此轮询进度。
func (h *Handler) TriggerAdminSync(c *gin.Context) {
	var req TriggerSyncRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "invalid request", err)
			return
		}
	}

	operation := strings.TrimSpace(req.Operation)
	if operation == "" {
		operation = constants.SyncOperationManual
	}
	if operation != constants.SyncOperationFull && operation != constants.SyncOperationManual {
		respondError(c, response.CodeBadRequest, "unknown operation", nil)
		return
	}

	run, err := h.SyncService.Trigger(operation)
	if err != nil {
		if errors.Is(err, service.ErrSyncRunActive) {
			respondError(c, response.CodeBadRequest, "a sync run is already in progress", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to trigger sync", err)
		return
	}

	requestLog(c).Infow("sync_triggered", "sync_run_id", run.ID, "operation", operation)
	response.Success(c, run)
}

// GetAdminSyncRun 获取同步记录详情 (Admin)
func (h *Handler) GetAdminSyncRun(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	run, err := h.SyncService.GetRun(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "sync run not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to fetch sync run", err)
		return
	}

	response.Success(c, run)
}

// GetAdminLatestSyncRun 获取最近一次同步记录 (Admin)
func (h *Handler) GetAdminLatestSyncRun(c *gin.Context) {
	run, err := h.SyncService.LatestRun()
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "no sync run yet", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to fetch sync run", err)
		return
	}

	response.Success(c, run)
}

// GetAdminSyncRuns 获取同步记录列表 (Admin)
func (h *Handler) GetAdminSyncRuns(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	runs, total, err := h.SyncService.ListRuns(repository.SyncRunListFilter{
		Page:      page,
		PageSize:  pageSize,
		Status:    strings.TrimSpace(c.Query("status")),
		Operation: strings.TrimSpace(c.Query("operation")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch sync runs", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, runs, pagination)
}
