package main

import (
	"context"
	"flag"
	"time"

	"github.com/bombershop-next/internal/config"
	"github.com/bombershop-next/internal/constants"
	"github.com/bombershop-next/internal/logger"
	"github.com/bombershop-next/internal/models"
	"github.com/bombershop-next/internal/provider"
)

// 一次性目录同步：partial 视为完成（退出码 0），仅 error 状态退出非零。
func main() {
	var runID uint64
	flag.Uint64Var(&runID, "run-id", 0, "复用已有同步记录 ID（0 表示新建）")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("数据库迁移失败: %v", err)
	}

	c := provider.NewContainer(cfg)

	if runID == 0 {
		active, err := c.SyncRunRepo.GetActive()
		if err != nil {
			stdLog.Fatalf("查询运行中的同步记录失败: %v", err)
		}
		if active != nil {
			stdLog.Fatalf("已有同步在运行中 (sync_run_id=%d)，拒绝并发触发", active.ID)
		}
		run := &models.SyncRun{
			Operation: constants.SyncOperationFull,
			Status:    constants.SyncStatusQueued,
			StartedAt: time.Now(),
		}
		if err := c.SyncRunRepo.Create(run); err != nil {
			stdLog.Fatalf("创建同步记录失败: %v", err)
		}
		runID = uint64(run.ID)
	}

	if err := c.SyncService.Run(context.Background(), uint(runID)); err != nil {
		stdLog.Fatalf("同步失败 (sync_run_id=%d): %v", runID, err)
	}
	stdLog.Printf("同步完成 (sync_run_id=%d)", runID)
}
