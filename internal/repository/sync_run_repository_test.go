package repository

import (
	"testing"
	"time"

	"github.com/bombershop-next/internal/constants"
	"github.com/bombershop-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupSyncRunRepositoryTest(t *testing.T) *GormSyncRunRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.SyncRun{}); err != nil {
		t.Fatalf("migrate sync run failed: %v", err)
	}
	// 共享内存库可能残留上一个测试的数据
	if err := db.Where("1 = 1").Delete(&models.SyncRun{}).Error; err != nil {
		t.Fatalf("reset sync runs failed: %v", err)
	}
	return NewSyncRunRepository(db)
}

func TestSyncRunPatchAndActive(t *testing.T) {
	repo := setupSyncRunRepositoryTest(t)

	run := &models.SyncRun{
		Operation: constants.SyncOperationManual,
		Status:    constants.SyncStatusQueued,
		StartedAt: time.Now(),
	}
	if err := repo.Create(run); err != nil {
		t.Fatalf("create sync run failed: %v", err)
	}

	active, err := repo.GetActive()
	if err != nil {
		t.Fatalf("get active failed: %v", err)
	}
	if active == nil || active.ID != run.ID {
		t.Fatalf("active run want %d got %+v", run.ID, active)
	}

	status := constants.SyncStatusProcessingProducts
	progress := 42
	currentProduct := "Classic Tee"
	warnings := []string{"product 7 skipped: invalid thumbnail"}
	err = repo.Patch(run.ID, SyncRunPatch{
		Status:         &status,
		Progress:       &progress,
		CurrentProduct: &currentProduct,
		Warnings:       warnings,
	})
	if err != nil {
		t.Fatalf("patch sync run failed: %v", err)
	}

	loaded, err := repo.GetByID(run.ID)
	if err != nil {
		t.Fatalf("get sync run failed: %v", err)
	}
	if loaded.Status != constants.SyncStatusProcessingProducts {
		t.Fatalf("status want %s got %s", constants.SyncStatusProcessingProducts, loaded.Status)
	}
	if loaded.Progress != 42 {
		t.Fatalf("progress want 42 got %d", loaded.Progress)
	}
	if loaded.CurrentProduct != currentProduct {
		t.Fatalf("current product want %q got %q", currentProduct, loaded.CurrentProduct)
	}
	if len(loaded.Warnings) != 1 {
		t.Fatalf("warnings want 1 got %d", len(loaded.Warnings))
	}

	// 终态后不再视为活跃
	final := constants.SyncStatusSuccess
	now := time.Now()
	duration := int64(1234)
	err = repo.Patch(run.ID, SyncRunPatch{Status: &final, CompletedAt: &now, DurationMS: &duration})
	if err != nil {
		t.Fatalf("patch final status failed: %v", err)
	}
	active, err = repo.GetActive()
	if err != nil {
		t.Fatalf("get active after finish failed: %v", err)
	}
	if active != nil {
		t.Fatalf("active run after finish want nil got %+v", active)
	}
}
