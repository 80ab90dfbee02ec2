package provider

import (
	"time"

	"github.com/globalforge/marketplace/internal/cache"
	"github.com/globalforge/marketplace/internal/cart"
	"github.com/globalforge/marketplace/internal/config"
	"github.com/globalforge/marketplace/internal/logger"
	"github.com/globalforge/marketplace/internal/models"
	"github.com/globalforge/marketplace/internal/queue"
	"github.com/globalforge/marketplace/internal/repository"
	"github.com/globalforge/marketplace/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	CartStore   cart.Store

	// Repositories
	UserRepo     repository.UserRepository
	ProductRepo  repository.ProductRepository
	OrderRepo    repository.OrderRepository
	CategoryRepo repository.CategoryRepository

	// Services
	UserAuthService  *service.UserAuthService
	ProductService   *service.ProductService
	InventoryService *service.InventoryService
	CartService      *service.CartService
	CheckoutService  *service.CheckoutService
	OrderService     *service.OrderService
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

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initCartStore()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
}

func (c *Container) initCartStore() {
	ttl := time.Duration(c.Config.Session.TTLHours) * time.Hour
	if cache.Enabled() {
		c.CartStore = cart.NewRedisStore(ttl)
		return
	}
	logger.Warnw("provider_cart_store_fallback_memory", "reason", "redis_disabled")
	c.CartStore = cart.NewMemoryStore()
}

func (c *Container) initServices() {
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.InventoryService = service.NewInventoryService(c.ProductRepo)
	c.CartService = service.NewCartService(c.CartStore, c.InventoryService)
	c.CheckoutService = service.NewCheckoutService(c.CartStore, c.ProductRepo, c.OrderRepo, c.UserRepo, c.QueueClient)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo)
}
