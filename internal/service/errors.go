package service

import "errors"

var (
	// ErrNotFound 资源不存在
	ErrNotFound = errors.New("resource not found")
	// ErrSlugExists slug 已被占用
	ErrSlugExists = errors.New("slug already exists")
	// ErrInvalidCredentials 用户名或密码错误
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidPassword 原密码错误
	ErrInvalidPassword = errors.New("invalid password")
	// ErrInvalidInput 参数不合法
	ErrInvalidInput = errors.New("invalid input")
	// ErrSyncRunActive 已有同步在执行中
	ErrSyncRunActive = errors.New("another sync run is active")
	// ErrQueueDisabled 队列未启用
	ErrQueueDisabled = errors.New("task queue is disabled")
	// ErrDuplicateWebhook 重复的回调事件
	ErrDuplicateWebhook = errors.New("webhook event already processed")
	// ErrWebhookTokenInvalid 回调校验失败
	ErrWebhookTokenInvalid = errors.New("webhook token invalid")
)
