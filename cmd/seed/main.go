// seed 为本地联调准备一套演示数据：三种角色的账号、
// 若干商品，并把商品库存播种到 Redis。可重复执行（按唯一键跳过）。
package main

import (
	"context"
	"errors"
	"log"

	"garment_track/internal/config"
	"garment_track/internal/lifecycle"
	"garment_track/internal/model"
	rediskey "garment_track/pkg/redis"

	"github.com/joho/godotenv"
	rd "github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Product{}); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	rdb := rd.NewClient(&rd.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	ctx := context.Background()

	users := []model.User{
		{Email: "admin@garment.local", Name: "Site Admin", Role: lifecycle.RoleAdmin, Status: lifecycle.UserActive},
		{Email: "manager@garment.local", Name: "Floor Manager", Role: lifecycle.RoleManager, Status: lifecycle.UserActive},
		{Email: "buyer@garment.local", Name: "Demo Buyer", Role: lifecycle.RoleBuyer, Status: lifecycle.UserActive},
	}
	for _, u := range users {
		if err := upsertUser(db, u); err != nil {
			log.Fatalf("seed user %s: %v", u.Email, err)
		}
	}

	products := []model.Product{
		{Title: "Classic Denim Jacket", Category: "Outerwear", Price: 24.50, Quantity: 500, MOQ: 50, PaymentOption: lifecycle.PayFirst, ManagerEmail: "manager@garment.local", ShowOnHome: true},
		{Title: "Organic Cotton Tee", Category: "Tops", Price: 4.80, Quantity: 2000, MOQ: 100, PaymentOption: lifecycle.PayCashOnDelivery, ManagerEmail: "manager@garment.local", ShowOnHome: true},
		{Title: "Cargo Work Pants", Category: "Bottoms", Price: 12.00, Quantity: 800, MOQ: 60, PaymentOption: lifecycle.PayCashOnDelivery, ManagerEmail: "manager@garment.local"},
	}
	for i := range products {
		p := &products[i]
		if err := upsertProduct(db, p); err != nil {
			log.Fatalf("seed product %s: %v", p.Title, err)
		}
		if err := rediskey.SeedStock(ctx, rdb, p.ID, p.Quantity); err != nil {
			log.Fatalf("seed stock %s: %v", p.Title, err)
		}
	}

	log.Printf("seeded %d users, %d products", len(users), len(products))
}

func upsertUser(db *gorm.DB, u model.User) error {
	var existing model.User
	err := db.Where("email = ?", u.Email).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(&u).Error
	}
	return err
}

func upsertProduct(db *gorm.DB, p *model.Product) error {
	var existing model.Product
	err := db.Where("title = ?", p.Title).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(p).Error
	}
	if err == nil {
		*p = existing
	}
	return err
}
