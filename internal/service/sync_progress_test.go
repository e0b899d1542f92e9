package service

import (
	"testing"
	"time"

	"github.com/bombershop-next/internal/constants"
)

func TestProgressTrackerBandsAndCounters(t *testing.T) {
	tracker := NewProgressTracker()

	snap := tracker.StartFetch()
	if snap.Progress != constants.SyncBandFetchStart {
		t.Fatalf("fetch start progress want %d got %d", constants.SyncBandFetchStart, snap.Progress)
	}
	snap = tracker.FetchProgress(10, 20)
	if snap.Progress != 10 {
		t.Fatalf("half fetched progress want 10 got %d", snap.Progress)
	}

	snap = tracker.Initialize(4)
	if snap.Status != constants.SyncStatusProcessingProducts {
		t.Fatalf("status want processing got %s", snap.Status)
	}
	if snap.Progress != constants.SyncBandProcessStart {
		t.Fatalf("process start progress want %d got %d", constants.SyncBandProcessStart, snap.Progress)
	}

	snap = tracker.StartItem(2, "Classic Tee")
	if snap.CurrentProduct != "Classic Tee" {
		t.Fatalf("current product want Classic Tee got %s", snap.CurrentProduct)
	}
	if snap.Progress != 50 {
		t.Fatalf("item 2/4 progress want 50 got %d", snap.Progress)
	}

	snap = tracker.CompleteItem(ItemResult{Created: true, Variants: 2})
	if snap.ProductsCreated != 1 || snap.VariantsProcessed != 2 {
		t.Fatalf("counters want created=1 variants=2 got %+v", snap)
	}

	tracker.AddWarning("product 9 skipped")
	snap = tracker.StartCleanup()
	if snap.Progress != constants.SyncBandCleanupStart {
		t.Fatalf("cleanup start progress want %d got %d", constants.SyncBandCleanupStart, snap.Progress)
	}
	snap = tracker.CompleteCleanup(1)
	if snap.ProductsDeleted != 1 {
		t.Fatalf("deleted want 1 got %d", snap.ProductsDeleted)
	}

	final := tracker.Complete("")
	if final.Status != constants.SyncStatusSuccess {
		t.Fatalf("final status want success got %s", final.Status)
	}
	if final.Progress != constants.SyncBandComplete {
		t.Fatalf("final progress want 100 got %d", final.Progress)
	}
	if len(final.Warnings) != 1 {
		t.Fatalf("warnings want 1 got %d", len(final.Warnings))
	}
}

func TestProgressTrackerMonotonicPercent(t *testing.T) {
	tracker := NewProgressTracker()

	last := -1
	check := func(snap ProgressSnapshot) {
		t.Helper()
		if snap.Progress < last {
			t.Fatalf("progress decreased: %d -> %d", last, snap.Progress)
		}
		last = snap.Progress
	}

	check(tracker.StartFetch())
	check(tracker.FetchProgress(20, 20))
	check(tracker.Initialize(3))
	for i := 0; i < 3; i++ {
		check(tracker.StartItem(i, "item"))
		check(tracker.CompleteItem(ItemResult{Updated: true}))
	}
	check(tracker.StartCleanup())
	check(tracker.CompleteCleanup(0))
	check(tracker.Complete(""))
}

func TestProgressTrackerFinalStatus(t *testing.T) {
	tracker := NewProgressTracker()
	tracker.Initialize(2)
	tracker.CompleteItem(ItemResult{Created: true})
	tracker.AddError("product 2: upsert failed")

	final := tracker.Complete("")
	if final.Status != constants.SyncStatusPartial {
		t.Fatalf("status with item errors want partial got %s", final.Status)
	}

	aborted := NewProgressTracker()
	aborted.Initialize(5)
	aborted.StartItem(1, "item")
	final = aborted.Complete("sync timed out after 300s")
	if final.Status != constants.SyncStatusError {
		t.Fatalf("status with abort want error got %s", final.Status)
	}
	if final.ErrorMessage == "" {
		t.Fatal("aborted run must carry error message")
	}
	if final.Progress == constants.SyncBandComplete {
		t.Fatal("aborted run must not report 100 percent")
	}
}

func TestProgressTrackerEstimatesRemaining(t *testing.T) {
	tracker := NewProgressTracker()
	start := time.Now()
	tracker.now = func() time.Time { return start }
	tracker.startedAt = start

	tracker.Initialize(4)
	tracker.now = func() time.Time { return start.Add(2 * time.Second) }
	snap := tracker.CompleteItem(ItemResult{Updated: true})

	// 1 条耗时 2s，剩余 3 条应估算约 6s
	if snap.EstimatedLeftMS != 6000 {
		t.Fatalf("estimated left want 6000 got %d", snap.EstimatedLeftMS)
	}
}
