package main

import (
	"github.com/globalforge/marketplace/internal/config"
	"github.com/globalforge/marketplace/internal/constants"
	"github.com/globalforge/marketplace/internal/logger"
	"github.com/globalforge/marketplace/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
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

	// 添加演示用户（买家与卖家）
	users := []struct {
		Email       string
		Password    string
		DisplayName string
	}{
		{Email: "seller@example.com", Password: "Seller123!", DisplayName: "Demo Seller"},
		{Email: "buyer@example.com", Password: "Buyer123!", DisplayName: "Demo Buyer"},
	}
	userIDs := map[string]uint{}
	for _, u := range users {
		var existing models.User
		if err := models.DB.Where("email = ?", u.Email).First(&existing).Error; err == nil {
			stdLog.Printf("User already exists: %s", u.Email)
			userIDs[u.Email] = existing.ID
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Fatalf("Failed to hash password: %v", err)
		}
		user := models.User{
			Email:        u.Email,
			PasswordHash: string(hash),
			DisplayName:  u.DisplayName,
			Status:       constants.UserStatusActive,
		}
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Printf("Failed to create user %s: %v", u.Email, err)
			continue
		}
		stdLog.Printf("Created user: %s", u.Email)
		userIDs[u.Email] = user.ID
	}

	// 添加分类
	categories := []models.Category{
		{Name: "Electronics", Slug: "electronics", SortOrder: 1},
		{Name: "Books", Slug: "books", SortOrder: 2},
		{Name: "Home & Garden", Slug: "home-garden", SortOrder: 3},
	}
	categoryIDs := map[string]uint{}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err == nil {
			stdLog.Printf("Category already exists: %s", cat.Slug)
			categoryIDs[cat.Slug] = existing.ID
			continue
		}
		if err := models.DB.Create(&cat).Error; err != nil {
			stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			continue
		}
		stdLog.Printf("Created category: %s", cat.Slug)
		categoryIDs[cat.Slug] = cat.ID
	}

	sellerID := userIDs["seller@example.com"]
	if sellerID == 0 {
		stdLog.Fatalf("Seed aborted: seller user missing")
	}

	// 添加演示商品
	products := []models.Product{
		{
			SellerID:    sellerID,
			CategoryID:  categoryIDs["electronics"],
			Name:        "Wireless Headphones",
			Description: "Over-ear wireless headphones with noise cancelling.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(89.99)),
			Quantity:    25,
			Condition:   constants.ProductConditionNew,
			IsActive:    true,
		},
		{
			SellerID:    sellerID,
			CategoryID:  categoryIDs["books"],
			Name:        "The Go Programming Language",
			Description: "Classic reference for Go developers, lightly used.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(24.50)),
			Quantity:    5,
			Condition:   constants.ProductConditionUsed,
			IsActive:    true,
		},
		{
			SellerID:    sellerID,
			CategoryID:  categoryIDs["home-garden"],
			Name:        "Ceramic Plant Pot",
			Description: "Hand-glazed ceramic pot, 20cm diameter.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(14.00)),
			Quantity:    40,
			Condition:   constants.ProductConditionNew,
			IsActive:    true,
		},
	}
	for _, p := range products {
		var existing models.Product
		if err := models.DB.Where("seller_id = ? AND name = ?", p.SellerID, p.Name).First(&existing).Error; err == nil {
			stdLog.Printf("Product already exists: %s", p.Name)
			continue
		}
		if err := models.DB.Create(&p).Error; err != nil {
			stdLog.Printf("Failed to create product %s: %v", p.Name, err)
			continue
		}
		stdLog.Printf("Created product: %s", p.Name)
	}

	stdLog.Printf("Seed completed")
}
