package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/globalforge/marketplace/internal/cart"
	"github.com/globalforge/marketplace/internal/constants"
	"github.com/globalforge/marketplace/internal/models"
	"github.com/globalforge/marketplace/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type checkoutTestEnv struct {
	db       *gorm.DB
	store    cart.Store
	checkout *CheckoutService
	buyer    *models.User
	seller   *models.User
}

func setupCheckoutTest(t *testing.T) *checkoutTestEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:checkout_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	buyer := &models.User{Email: "buyer@example.com", PasswordHash: "x", DisplayName: "Buyer", Status: constants.UserStatusActive}
	if err := db.Create(buyer).Error; err != nil {
		t.Fatalf("create buyer failed: %v", err)
	}
	seller := &models.User{Email: "seller@example.com", PasswordHash: "x", DisplayName: "Seller", Status: constants.UserStatusActive}
	if err := db.Create(seller).Error; err != nil {
		t.Fatalf("create seller failed: %v", err)
	}

	store := cart.NewMemoryStore()
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)
	checkout := NewCheckoutService(store, productRepo, orderRepo, userRepo, nil)

	return &checkoutTestEnv{db: db, store: store, checkout: checkout, buyer: buyer, seller: seller}
}

func (env *checkoutTestEnv) createProduct(t *testing.T, name, price string, quantity int, active bool) *models.Product {
	t.Helper()
	m, err := models.NewMoneyFromString(price)
	if err != nil {
		t.Fatalf("parse price failed: %v", err)
	}
	product := models.Product{
		SellerID: env.seller.ID,
		Name:     name,
		Price:    m,
		Quantity: quantity,
		IsActive: active,
	}
	if err := env.db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if !active {
		// gorm:"default:true" makes Create skip the zero-valued false.
		if err := env.db.Model(&product).Update("is_active", false).Error; err != nil {
			t.Fatalf("deactivate product failed: %v", err)
		}
	}
	return &product
}

func (env *checkoutTestEnv) fillCart(t *testing.T, sessionID string, lines ...cart.Line) {
	t.Helper()
	c := cart.New()
	for _, line := range lines {
		c.AddItem(line)
	}
	if err := env.store.Save(context.Background(), sessionID, c); err != nil {
		t.Fatalf("save cart failed: %v", err)
	}
}

func (env *checkoutTestEnv) productQuantity(t *testing.T, id uint) int {
	t.Helper()
	var product models.Product
	if err := env.db.First(&product, id).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	return product.Quantity
}

func (env *checkoutTestEnv) orderCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	if err := env.db.Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	return count
}

func TestPlaceOrderSuccess(t *testing.T) {
	env := setupCheckoutTest(t)
	product := env.createProduct(t, "Headphones", "10.00", 5, true)
	env.fillCart(t, "s1", cart.Line{ProductID: product.ID, ProductName: product.Name, UnitPrice: product.Price, Quantity: 2})

	order, err := env.checkout.PlaceOrder(context.Background(), "s1", env.buyer.ID, PlaceOrderInput{
		PaymentMethod:   constants.PaymentMethodCreditCard,
		DeliveryAddress: "1 Main St",
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if order.OrderNo == "" {
		t.Fatalf("expected order no assigned")
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("expected status Pending, got %s", order.Status)
	}
	if order.DeliveryMethod != constants.DeliveryMethodCourier {
		t.Fatalf("expected default delivery method, got %s", order.DeliveryMethod)
	}
	if order.TotalAmount.String() != "20.00" {
		t.Fatalf("expected total 20.00, got %s", order.TotalAmount)
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items: %+v", order.Items)
	}

	if got := env.productQuantity(t, product.ID); got != 3 {
		t.Fatalf("expected stock 3 after checkout, got %d", got)
	}

	// 成功后购物车清空
	c, err := env.store.Load(context.Background(), "s1")
	if err != nil {
		t.Fatalf("load cart failed: %v", err)
	}
	if !c.IsEmpty() {
		t.Fatalf("expected cart cleared, got %+v", c.Lines)
	}
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	env := setupCheckoutTest(t)
	product := env.createProduct(t, "Headphones", "10.00", 3, true)
	env.fillCart(t, "s1", cart.Line{ProductID: product.ID, ProductName: product.Name, UnitPrice: product.Price, Quantity: 5})

	_, err := env.checkout.PlaceOrder(context.Background(), "s1", env.buyer.ID, PlaceOrderInput{})
	var availErr *AvailabilityError
	if !errors.As(err, &availErr) {
		t.Fatalf("expected AvailabilityError, got %v", err)
	}
	if availErr.MaxPurchasable != 3 {
		t.Fatalf("expected max purchasable 3, got %d", availErr.MaxPurchasable)
	}
	if env.orderCount(t) != 0 {
		t.Fatalf("expected no orders created")
	}
	if got := env.productQuantity(t, product.ID); got != 3 {
		t.Fatalf("expected stock unchanged at 3, got %d", got)
	}
}

func TestPlaceOrderInactiveProduct(t *testing.T) {
	env := setupCheckoutTest(t)
	product := env.createProduct(t, "Headphones", "10.00", 5, false)
	env.fillCart(t, "s1", cart.Line{ProductID: product.ID, ProductName: product.Name, UnitPrice: product.Price, Quantity: 1})

	_, err := env.checkout.PlaceOrder(context.Background(), "s1", env.buyer.ID, PlaceOrderInput{})
	var availErr *AvailabilityError
	if !errors.As(err, &availErr) {
		t.Fatalf("expected AvailabilityError, got %v", err)
	}
	if !availErr.Inactive {
		t.Fatalf("expected inactive flag set")
	}
	if env.orderCount(t) != 0 {
		t.Fatalf("expected no orders created")
	}
}

// drainBeforeDeduct 在扣减目标商品前把库存抽干，
// 模拟预检通过后库存被并发消耗的竞争场景。
type drainBeforeDeduct struct {
	repository.ProductRepository
	db     *gorm.DB
	target uint
}

func (r *drainBeforeDeduct) WithTx(tx *gorm.DB) repository.ProductRepository {
	if tx == nil {
		return r
	}
	return &drainBeforeDeduct{ProductRepository: r.ProductRepository.WithTx(tx), db: tx, target: r.target}
}

func (r *drainBeforeDeduct) DeductStock(productID uint, quantity int) (int64, error) {
	if productID == r.target {
		if err := r.db.Model(&models.Product{}).Where("id = ?", productID).Update("quantity", 0).Error; err != nil {
			return 0, err
		}
	}
	return r.ProductRepository.DeductStock(productID, quantity)
}

// 多行结账任一行扣减失败整单回滚，已扣减的行必须恢复。
func TestPlaceOrderRollbackOnPartialFailure(t *testing.T) {
	env := setupCheckoutTest(t)
	good := env.createProduct(t, "Headphones", "10.00", 5, true)
	scarce := env.createProduct(t, "Plant Pot", "14.00", 1, true)
	env.fillCart(t, "s1",
		cart.Line{ProductID: good.ID, ProductName: good.Name, UnitPrice: good.Price, Quantity: 2},
		cart.Line{ProductID: scarce.ID, ProductName: scarce.Name, UnitPrice: scarce.Price, Quantity: 1},
	)

	racyRepo := &drainBeforeDeduct{
		ProductRepository: repository.NewProductRepository(env.db),
		db:                env.db,
		target:            scarce.ID,
	}
	checkout := NewCheckoutService(env.store, racyRepo, repository.NewOrderRepository(env.db), repository.NewUserRepository(env.db), nil)

	_, err := checkout.PlaceOrder(context.Background(), "s1", env.buyer.ID, PlaceOrderInput{})
	var availErr *AvailabilityError
	if !errors.As(err, &availErr) {
		t.Fatalf("expected AvailabilityError, got %v", err)
	}
	if availErr.ProductID != scarce.ID {
		t.Fatalf("expected failure on scarce product, got %d", availErr.ProductID)
	}
	if availErr.MaxPurchasable != 0 {
		t.Fatalf("expected max purchasable 0, got %d", availErr.MaxPurchasable)
	}

	if env.orderCount(t) != 0 {
		t.Fatalf("expected rollback to leave no orders")
	}
	if got := env.productQuantity(t, good.ID); got != 5 {
		t.Fatalf("expected first line stock restored to 5, got %d", got)
	}

	// 失败结账不清空购物车
	c, err := env.store.Load(context.Background(), "s1")
	if err != nil {
		t.Fatalf("load cart failed: %v", err)
	}
	if c.IsEmpty() {
		t.Fatalf("expected cart kept after failed checkout")
	}
}

// 两个会话先后买空同一商品：一单成功一单失败，库存归零不超卖。
func TestPlaceOrderNoOversell(t *testing.T) {
	env := setupCheckoutTest(t)
	product := env.createProduct(t, "Headphones", "10.00", 3, true)

	line := cart.Line{ProductID: product.ID, ProductName: product.Name, UnitPrice: product.Price, Quantity: 3}
	env.fillCart(t, "s1", line)
	env.fillCart(t, "s2", line)

	if _, err := env.checkout.PlaceOrder(context.Background(), "s1", env.buyer.ID, PlaceOrderInput{}); err != nil {
		t.Fatalf("first checkout failed: %v", err)
	}

	_, err := env.checkout.PlaceOrder(context.Background(), "s2", env.buyer.ID, PlaceOrderInput{})
	var availErr *AvailabilityError
	if !errors.As(err, &availErr) {
		t.Fatalf("expected AvailabilityError on second checkout, got %v", err)
	}
	if availErr.MaxPurchasable != 0 {
		t.Fatalf("expected max purchasable 0, got %d", availErr.MaxPurchasable)
	}
	if env.orderCount(t) != 1 {
		t.Fatalf("expected exactly 1 order, got %d", env.orderCount(t))
	}
	if got := env.productQuantity(t, product.ID); got != 0 {
		t.Fatalf("expected stock 0, got %d", got)
	}
}

// 行价按加入购物车时的快照冻结，结账与事后改价都不改变订单金额。
func TestPlaceOrderFreezesCartSnapshotPrice(t *testing.T) {
	env := setupCheckoutTest(t)
	product := env.createProduct(t, "Headphones", "10.00", 5, true)
	env.fillCart(t, "s1", cart.Line{ProductID: product.ID, ProductName: product.Name, UnitPrice: product.Price, Quantity: 2})

	// 加购后涨价，车内快照价不受影响
	if err := env.db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("price", decimal.RequireFromString("12.50")).Error; err != nil {
		t.Fatalf("update price failed: %v", err)
	}

	order, err := env.checkout.PlaceOrder(context.Background(), "s1", env.buyer.ID, PlaceOrderInput{})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if order.Items[0].UnitPrice.String() != "10.00" {
		t.Fatalf("expected cart snapshot price 10.00, got %s", order.Items[0].UnitPrice)
	}
	if order.TotalAmount.String() != "20.00" {
		t.Fatalf("expected total 20.00, got %s", order.TotalAmount)
	}

	// 成交后再次改价，已存订单金额不变
	if err := env.db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("price", decimal.RequireFromString("99.99")).Error; err != nil {
		t.Fatalf("update price failed: %v", err)
	}
	var stored models.Order
	if err := env.db.Preload("Items").First(&stored, order.ID).Error; err != nil {
		t.Fatalf("load order failed: %v", err)
	}
	if stored.TotalAmount.String() != "20.00" {
		t.Fatalf("expected stored total 20.00, got %s", stored.TotalAmount)
	}
	if stored.Items[0].UnitPrice.String() != "10.00" {
		t.Fatalf("expected stored unit price 10.00, got %s", stored.Items[0].UnitPrice)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	env := setupCheckoutTest(t)

	_, err := env.checkout.PlaceOrder(context.Background(), "empty", env.buyer.ID, PlaceOrderInput{})
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

// 空车先于买家校验：即使买家缺失或不存在，空车结账也报购物车为空。
func TestPlaceOrderEmptyCartCheckedBeforeBuyer(t *testing.T) {
	env := setupCheckoutTest(t)

	if _, err := env.checkout.PlaceOrder(context.Background(), "empty", 0, PlaceOrderInput{}); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty for missing buyer with empty cart, got %v", err)
	}
	if _, err := env.checkout.PlaceOrder(context.Background(), "empty", 9999, PlaceOrderInput{}); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty for unknown buyer with empty cart, got %v", err)
	}
}

func TestPlaceOrderRequiresAuthentication(t *testing.T) {
	env := setupCheckoutTest(t)
	product := env.createProduct(t, "Headphones", "10.00", 5, true)
	env.fillCart(t, "s1", cart.Line{ProductID: product.ID, ProductName: product.Name, UnitPrice: product.Price, Quantity: 1})

	_, err := env.checkout.PlaceOrder(context.Background(), "s1", 0, PlaceOrderInput{})
	if !errors.Is(err, ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
	}
}

func TestPlaceOrderUnknownUser(t *testing.T) {
	env := setupCheckoutTest(t)
	product := env.createProduct(t, "Headphones", "10.00", 5, true)
	env.fillCart(t, "s1", cart.Line{ProductID: product.ID, ProductName: product.Name, UnitPrice: product.Price, Quantity: 1})

	_, err := env.checkout.PlaceOrder(context.Background(), "s1", 9999, PlaceOrderInput{})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPlaceOrderKeepsExplicitDeliveryMethod(t *testing.T) {
	env := setupCheckoutTest(t)
	product := env.createProduct(t, "Headphones", "10.00", 5, true)
	env.fillCart(t, "s1", cart.Line{ProductID: product.ID, ProductName: product.Name, UnitPrice: product.Price, Quantity: 1})

	order, err := env.checkout.PlaceOrder(context.Background(), "s1", env.buyer.ID, PlaceOrderInput{
		DeliveryMethod: constants.DeliveryMethodPickUp,
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if order.DeliveryMethod != constants.DeliveryMethodPickUp {
		t.Fatalf("expected PickUp, got %s", order.DeliveryMethod)
	}
}
