package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/globalforge/marketplace/internal/constants"
	"github.com/globalforge/marketplace/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderRepoTest(t *testing.T) (*GormOrderRepository, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:order_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewOrderRepository(db), db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{
		Email:        email,
		PasswordHash: "x",
		DisplayName:  email,
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return &user
}

func createSellerProduct(t *testing.T, db *gorm.DB, sellerID uint, name string) *models.Product {
	t.Helper()
	product := models.Product{
		SellerID: sellerID,
		Name:     name,
		Price:    models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		Quantity: 100,
		IsActive: true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return &product
}

func TestOrderCreateWiresItemOrderID(t *testing.T) {
	repo, db := setupOrderRepoTest(t)
	buyer := createTestUser(t, db, "buyer@example.com")
	seller := createTestUser(t, db, "seller@example.com")
	product := createSellerProduct(t, db, seller.ID, "Headphones")

	order := &models.Order{
		OrderNo:     "no-1",
		UserID:      buyer.ID,
		TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
		Status:      constants.OrderStatusPending,
	}
	items := []models.OrderItem{
		{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    2,
			UnitPrice:   product.Price,
			TotalPrice:  models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
		},
	}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.ID == 0 {
		t.Fatalf("expected order id assigned")
	}

	got, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got.Items))
	}
	if got.Items[0].OrderID != order.ID {
		t.Fatalf("expected item order id %d, got %d", order.ID, got.Items[0].OrderID)
	}
	if got.Items[0].ProductName != "Headphones" {
		t.Fatalf("expected snapshot product name, got %s", got.Items[0].ProductName)
	}
}

func TestGetByIDMissingOrderReturnsNil(t *testing.T) {
	repo, _ := setupOrderRepoTest(t)

	got, err := repo.GetByID(9999)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing order, got %+v", got)
	}
}

func TestListByUserNewestFirst(t *testing.T) {
	repo, db := setupOrderRepoTest(t)
	buyer := createTestUser(t, db, "buyer@example.com")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		order := models.Order{
			OrderNo:     fmt.Sprintf("no-%d", i),
			UserID:      buyer.ID,
			TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(int64(i + 1))),
			Status:      constants.OrderStatusPending,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(&order).Error; err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}

	orders, total, err := repo.ListByUser(OrderListFilter{Page: 1, PageSize: 10, UserID: buyer.ID})
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if total != 3 || len(orders) != 3 {
		t.Fatalf("expected 3 orders, got total=%d len=%d", total, len(orders))
	}
	if orders[0].OrderNo != "no-2" || orders[2].OrderNo != "no-0" {
		t.Fatalf("expected newest first, got %s .. %s", orders[0].OrderNo, orders[2].OrderNo)
	}
}

func TestListSoldLinesBySellerAcrossBuyers(t *testing.T) {
	repo, db := setupOrderRepoTest(t)
	seller := createTestUser(t, db, "seller@example.com")
	rival := createTestUser(t, db, "rival@example.com")
	buyerA := createTestUser(t, db, "buyer-a@example.com")
	buyerB := createTestUser(t, db, "buyer-b@example.com")

	mine := createSellerProduct(t, db, seller.ID, "Headphones")
	theirs := createSellerProduct(t, db, rival.ID, "Plant Pot")

	for i, buyer := range []*models.User{buyerA, buyerB} {
		order := &models.Order{
			OrderNo:     fmt.Sprintf("no-%d", i),
			UserID:      buyer.ID,
			TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(30)),
			Status:      constants.OrderStatusPending,
		}
		items := []models.OrderItem{
			{ProductID: mine.ID, ProductName: mine.Name, Quantity: 1, UnitPrice: mine.Price, TotalPrice: mine.Price},
			{ProductID: theirs.ID, ProductName: theirs.Name, Quantity: 2, UnitPrice: theirs.Price, TotalPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(20))},
		}
		if err := repo.Create(order, items); err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}

	lines, total, err := repo.ListSoldLinesBySeller(SoldLinesFilter{Page: 1, PageSize: 10, SellerID: seller.ID})
	if err != nil {
		t.Fatalf("list sold lines failed: %v", err)
	}
	if total != 2 || len(lines) != 2 {
		t.Fatalf("expected 2 sold lines, got total=%d len=%d", total, len(lines))
	}
	for _, line := range lines {
		if line.ProductID != mine.ID {
			t.Fatalf("expected only seller's product lines, got product %d", line.ProductID)
		}
		if line.Order == nil {
			t.Fatalf("expected order preloaded")
		}
	}
}

func TestUpdateStatus(t *testing.T) {
	repo, db := setupOrderRepoTest(t)
	buyer := createTestUser(t, db, "buyer@example.com")

	order := &models.Order{
		OrderNo:     "no-1",
		UserID:      buyer.ID,
		TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		Status:      constants.OrderStatusPending,
	}
	if err := repo.Create(order, nil); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if err := repo.UpdateStatus(order.ID, constants.OrderStatusShipped); err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	got, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if got.Status != constants.OrderStatusShipped {
		t.Fatalf("expected status Shipped, got %s", got.Status)
	}
}
