package main

import (
	"github.com/bombershop-next/internal/config"
	"github.com/bombershop-next/internal/logger"
	"github.com/bombershop-next/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类（同步时按商品名关键词自动归类）
	categories := []models.Category{
		{Slug: "t-shirts", Name: "T-Shirt", SortOrder: 10},
		{Slug: "hoodies", Name: "Hoodie", SortOrder: 20},
		{Slug: "posters", Name: "Poster", SortOrder: 30},
		{Slug: "mugs", Name: "Mug", SortOrder: 40},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			// 不存在则创建
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 添加演示商品（本地占位数据，正式数据由目录同步写入）
	var count int64
	models.DB.Model(&models.Product{}).Count(&count)
	if count > 0 {
		stdLog.Printf("Products already present, skipping demo product")
		return
	}

	product := models.Product{
		RemoteID:     900000001,
		ExternalID:   "demo-tshirt",
		Slug:         "demo-logo-t-shirt",
		Name:         "Demo Logo T-Shirt",
		ThumbnailURL: "https://files.cdn.printful.com/demo/thumbnail.png",
		IsActive:     true,
	}
	if err := models.DB.Create(&product).Error; err != nil {
		stdLog.Fatalf("Failed to create demo product: %v", err)
	}

	variants := []models.ProductVariant{
		{
			ProductID:   product.ID,
			RemoteID:    900000101,
			ExternalID:  "demo-tshirt-s",
			Name:        "Demo Logo T-Shirt / S",
			Size:        "S",
			RetailPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(19.95)),
			Currency:    "EUR",
			IsEnabled:   true,
			InStock:     true,
		},
		{
			ProductID:   product.ID,
			RemoteID:    900000102,
			ExternalID:  "demo-tshirt-m",
			Name:        "Demo Logo T-Shirt / M",
			Size:        "M",
			RetailPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(19.95)),
			Currency:    "EUR",
			IsEnabled:   true,
			InStock:     true,
		},
	}
	for _, variant := range variants {
		if err := models.DB.Create(&variant).Error; err != nil {
			stdLog.Printf("Failed to create demo variant %s: %v", variant.ExternalID, err)
		}
	}

	var tshirtCategory models.Category
	if err := models.DB.Where("slug = ?", "t-shirts").First(&tshirtCategory).Error; err == nil {
		join := models.ProductCategory{
			ProductID:  product.ID,
			CategoryID: tshirtCategory.ID,
			IsPrimary:  true,
		}
		if err := models.DB.Create(&join).Error; err != nil {
			stdLog.Printf("Failed to link demo product category: %v", err)
		}
	}

	enhancement := models.Enhancement{
		ProductID:        product.ID,
		ShortDescription: "Soft cotton tee with the shop logo.",
		Description:      "## Demo Logo T-Shirt\n\nPrinted on demand, shipped worldwide.",
		Features:         models.StringArray{"100% cotton", "Unisex fit"},
	}
	if err := models.DB.Create(&enhancement).Error; err != nil {
		stdLog.Printf("Failed to create demo enhancement: %v", err)
	}

	stdLog.Printf("Seed completed")
}
