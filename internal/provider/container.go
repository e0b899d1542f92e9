package provider

import (
	"github.com/bombershop-next/internal/cache"
	"github.com/bombershop-next/internal/config"
	"github.com/bombershop-next/internal/logger"
	"github.com/bombershop-next/internal/models"
	"github.com/bombershop-next/internal/printful"
	"github.com/bombershop-next/internal/queue"
	"github.com/bombershop-next/internal/repository"
	"github.com/bombershop-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config       *config.Config
	QueueClient  *queue.Client
	Printful     *printful.Client
	VariantCache *cache.VariantCache
	Enhancements *service.EnhancementConfig

	// Repositories
	AdminRepo       repository.AdminRepository
	ProductRepo     repository.ProductRepository
	VariantRepo     repository.VariantRepository
	CategoryRepo    repository.CategoryRepository
	EnhancementRepo repository.EnhancementRepository
	SyncRunRepo     repository.SyncRunRepository
	OrderRepo       repository.OrderRepository

	// Services
	AuthService     *service.AuthService
	ProductService  *service.ProductService
	CategoryService *service.CategoryService
	SyncService     *service.SyncService
	OrderService    *service.OrderService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	// 初始化 Printful 客户端
	if cfg.Printful.APIKey == "" {
		logger.Warnw("provider_printful_api_key_missing")
	}
	printfulClient := printful.NewClient(printful.Config{
		BaseURL:   cfg.Printful.BaseURL,
		APIKey:    cfg.Printful.APIKey,
		StoreID:   cfg.Printful.StoreID,
		TimeoutMS: cfg.Printful.TimeoutMS,
	})

	// 加载静态增强内容配置
	enhancements, err := service.LoadEnhancementConfig(cfg.Catalog.EnhancementsFile)
	if err != nil {
		logger.Warnw("provider_load_enhancements_failed", "file", cfg.Catalog.EnhancementsFile, "error", err)
		enhancements, _ = service.LoadEnhancementConfig("")
	} else if enhancements.Len() > 0 {
		logger.Infow("provider_enhancements_loaded", "file", cfg.Catalog.EnhancementsFile, "count", enhancements.Len())
	}

	c := &Container{
		Config:       cfg,
		QueueClient:  queueClient,
		Printful:     printfulClient,
		VariantCache: cache.NewVariantCache(),
		Enhancements: enhancements,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.VariantRepo = repository.NewVariantRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.EnhancementRepo = repository.NewEnhancementRepository(db)
	c.SyncRunRepo = repository.NewSyncRunRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.EnhancementRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.SyncService = service.NewSyncService(
		c.Config,
		c.Printful,
		c.ProductRepo,
		c.VariantRepo,
		c.CategoryRepo,
		c.EnhancementRepo,
		c.SyncRunRepo,
		c.Enhancements,
		c.VariantCache,
		c.QueueClient,
	)
	c.OrderService = service.NewOrderService(
		c.Config,
		c.OrderRepo,
		c.VariantRepo,
		c.Printful,
		c.VariantCache,
		c.QueueClient,
	)
}
