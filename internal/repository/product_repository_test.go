package repository

import (
	"testing"

	"github.com/bombershop-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	err = db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.ProductCategory{},
		&models.Enhancement{},
	)
	if err != nil {
		t.Fatalf("migrate product tables failed: %v", err)
	}
	return NewProductRepository(db), db
}

func createSyncedProduct(t *testing.T, repo *GormProductRepository, remoteID int64, slug string) *models.Product {
	t.Helper()
	product := &models.Product{
		RemoteID:     remoteID,
		ExternalID:   slug + "-ext",
		Slug:         slug,
		Name:         "Test Product " + slug,
		ThumbnailURL: "https://files.example.com/" + slug + ".png",
		IsActive:     true,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func createVariant(t *testing.T, db *gorm.DB, productID uint, remoteID int64, name string) *models.ProductVariant {
	t.Helper()
	variant := &models.ProductVariant{
		ProductID:   productID,
		RemoteID:    remoteID,
		ExternalID:  name + "-ext",
		Name:        name,
		RetailPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(25)),
		Currency:    "EUR",
		IsEnabled:   true,
		InStock:     true,
	}
	if err := db.Create(variant).Error; err != nil {
		t.Fatalf("create variant failed: %v", err)
	}
	return variant
}

func TestProductGetByRemoteID(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createSyncedProduct(t, repo, 9001, "remote-lookup-tee")
	createVariant(t, db, product.ID, 90011, "Remote Lookup Tee / M")

	found, err := repo.GetByRemoteID(9001)
	if err != nil {
		t.Fatalf("get by remote id failed: %v", err)
	}
	if found == nil {
		t.Fatal("get by remote id returned nil")
	}
	if found.ID != product.ID {
		t.Fatalf("product id want %d got %d", product.ID, found.ID)
	}
	if len(found.Variants) != 1 {
		t.Fatalf("preloaded variants want 1 got %d", len(found.Variants))
	}

	missing, err := repo.GetByRemoteID(424242)
	if err != nil {
		t.Fatalf("get missing remote id failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("missing remote id should return nil, got %+v", missing)
	}
}

func TestProductDeleteCascade(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createSyncedProduct(t, repo, 9002, "cascade-hoodie")
	createVariant(t, db, product.ID, 90021, "Cascade Hoodie / L")
	createVariant(t, db, product.ID, 90022, "Cascade Hoodie / XL")

	enhancement := &models.Enhancement{
		ProductID:   product.ID,
		Description: "Hand-finished hoodie",
	}
	if err := db.Create(enhancement).Error; err != nil {
		t.Fatalf("create enhancement failed: %v", err)
	}
	category := &models.Category{Slug: "hoodies", Name: "Hoodies"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	join := &models.ProductCategory{ProductID: product.ID, CategoryID: category.ID, IsPrimary: true}
	if err := db.Create(join).Error; err != nil {
		t.Fatalf("create product category failed: %v", err)
	}

	if err := repo.DeleteCascade(product.ID); err != nil {
		t.Fatalf("delete cascade failed: %v", err)
	}

	var variantCount int64
	db.Model(&models.ProductVariant{}).Where("product_id = ?", product.ID).Count(&variantCount)
	if variantCount != 0 {
		t.Fatalf("variant count after cascade want 0 got %d", variantCount)
	}
	var joinCount int64
	db.Model(&models.ProductCategory{}).Where("product_id = ?", product.ID).Count(&joinCount)
	if joinCount != 0 {
		t.Fatalf("category join count after cascade want 0 got %d", joinCount)
	}
	var enhancementCount int64
	db.Model(&models.Enhancement{}).Where("product_id = ?", product.ID).Count(&enhancementCount)
	if enhancementCount != 0 {
		t.Fatalf("enhancement count after cascade want 0 got %d", enhancementCount)
	}
	gone, err := repo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("get deleted product failed: %v", err)
	}
	if gone != nil {
		t.Fatalf("deleted product should return nil, got %+v", gone)
	}
}

func TestProductListFiltersIgnoredAndInactive(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	active := createSyncedProduct(t, repo, 9003, "visible-mug")
	ignored := createSyncedProduct(t, repo, 9004, "hidden-mug")
	ignored.IsIgnored = true
	if err := repo.Update(ignored); err != nil {
		t.Fatalf("update ignored product failed: %v", err)
	}
	inactive := createSyncedProduct(t, repo, 9005, "retired-mug")
	inactive.IsActive = false
	if err := repo.Update(inactive); err != nil {
		t.Fatalf("update inactive product failed: %v", err)
	}

	products, _, err := repo.List(ProductListFilter{
		Page:       1,
		PageSize:   50,
		Search:     "mug",
		OnlyActive: true,
	})
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	for _, p := range products {
		if p.ID == ignored.ID {
			t.Fatal("ignored product leaked into active listing")
		}
		if p.ID == inactive.ID {
			t.Fatal("inactive product leaked into active listing")
		}
	}
	found := false
	for _, p := range products {
		if p.ID == active.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("active product missing from listing")
	}
}

func TestVariantDeleteMissing(t *testing.T) {
	_, db := setupProductRepositoryTest(t)
	productRepo := NewProductRepository(db)
	variantRepo := NewVariantRepository(db)

	product := createSyncedProduct(t, productRepo, 9006, "trim-tee")
	createVariant(t, db, product.ID, 90061, "Trim Tee / S")
	createVariant(t, db, product.ID, 90062, "Trim Tee / M")
	createVariant(t, db, product.ID, 90063, "Trim Tee / L")

	deleted, err := variantRepo.DeleteMissing(product.ID, []int64{90061, 90063})
	if err != nil {
		t.Fatalf("delete missing variants failed: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("deleted variants want 1 got %d", deleted)
	}

	remaining, err := variantRepo.ListByProduct(product.ID)
	if err != nil {
		t.Fatalf("list variants failed: %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("remaining variants want 2 got %d", len(remaining))
	}
	for _, v := range remaining {
		if v.RemoteID == 90062 {
			t.Fatal("variant 90062 should have been deleted")
		}
	}
}
