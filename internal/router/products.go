package router

import (
	"net/http"

	"garment_track/internal/lifecycle"
	"garment_track/internal/middleware"
	"garment_track/internal/model"
	rediskey "garment_track/pkg/redis"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// listProducts 公开商品目录，支持 category 过滤与首页精选。
func listProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Model(&model.Product{})
		if cat := c.Query("category"); cat != "" {
			q = q.Where("category = ?", cat)
		}
		if c.Query("home") == "true" {
			q = q.Where("show_on_home = ?", true)
		}
		var list []model.Product
		if err := q.Order("created_at DESC").Find(&list).Error; err != nil {
			respondErr(c, err)
			return
		}
		respondOK(c, list)
	}
}

func getProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c, "id")
		if err != nil {
			respondFail(c, http.StatusBadRequest, err.Error())
			return
		}
		var p model.Product
		if err := db.First(&p, id).Error; err != nil {
			respondErr(c, err)
			return
		}
		respondOK(c, p)
	}
}

// productPayload 创建/更新商品共用的请求体。
type productPayload struct {
	Title         string  `json:"title" binding:"required"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	Quantity      int64   `json:"quantity" binding:"required,min=1"`
	MOQ           int     `json:"moq" binding:"required,min=1"`
	PaymentOption string  `json:"paymentOption" binding:"required"`
	DemoVideo     string  `json:"demoVideo"`
}

// createProduct 经理新增商品，同时把库存播种到 Redis。
func createProduct(db *gorm.DB, rdb *rd.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := middleware.CurrentPrincipal(c)

		var req productPayload
		if err := c.ShouldBindJSON(&req); err != nil {
			respondFail(c, http.StatusBadRequest, err.Error())
			return
		}
		method := lifecycle.PaymentMethod(req.PaymentOption)
		if !method.Valid() {
			respondFail(c, http.StatusBadRequest, "paymentOption must be cash-on-delivery or pay-first")
			return
		}

		prod := &model.Product{
			Title:         req.Title,
			Description:   req.Description,
			Category:      req.Category,
			Price:         req.Price,
			Quantity:      req.Quantity,
			MOQ:           req.MOQ,
			PaymentOption: method,
			ManagerEmail:  p.Email,
			DemoVideo:     req.DemoVideo,
		}
		if err := db.Create(prod).Error; err != nil {
			respondErr(c, err)
			return
		}
		if err := rediskey.SeedStock(c.Request.Context(), rdb, prod.ID, prod.Quantity); err != nil {
			respondErr(c, err)
			return
		}
		respondOK(c, prod)
	}
}

// updateProduct 经理更新自己名下商品。
func updateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := middleware.CurrentPrincipal(c)

		id, err := paramID(c, "id")
		if err != nil {
			respondFail(c, http.StatusBadRequest, err.Error())
			return
		}
		var prod model.Product
		if err := db.First(&prod, id).Error; err != nil {
			respondErr(c, err)
			return
		}
		if prod.ManagerEmail != p.Email && p.Role != lifecycle.RoleAdmin {
			respondFail(c, http.StatusForbidden, "not your product")
			return
		}

		var req productPayload
		if err := c.ShouldBindJSON(&req); err != nil {
			respondFail(c, http.StatusBadRequest, err.Error())
			return
		}
		method := lifecycle.PaymentMethod(req.PaymentOption)
		if !method.Valid() {
			respondFail(c, http.StatusBadRequest, "paymentOption must be cash-on-delivery or pay-first")
			return
		}

		updates := map[string]any{
			"title":          req.Title,
			"description":    req.Description,
			"category":       req.Category,
			"price":          req.Price,
			"quantity":       req.Quantity,
			"moq":            req.MOQ,
			"payment_option": method,
			"demo_video":     req.DemoVideo,
		}
		if err := db.Model(&prod).Updates(updates).Error; err != nil {
			respondErr(c, err)
			return
		}
		respondOK(c, prod)
	}
}

// myProducts 经理名下商品清单。
func myProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := middleware.CurrentPrincipal(c)
		var list []model.Product
		if err := db.Where("manager_email = ?", p.Email).
			Order("created_at DESC").Find(&list).Error; err != nil {
			respondErr(c, err)
			return
		}
		respondOK(c, list)
	}
}

// deleteOwnProduct 经理删除自己名下商品（软删除）。
func deleteOwnProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := middleware.CurrentPrincipal(c)
		id, err := paramID(c, "id")
		if err != nil {
			respondFail(c, http.StatusBadRequest, err.Error())
			return
		}
		var prod model.Product
		if err := db.First(&prod, id).Error; err != nil {
			respondErr(c, err)
			return
		}
		if prod.ManagerEmail != p.Email {
			respondFail(c, http.StatusForbidden, "not your product")
			return
		}
		if err := db.Delete(&prod).Error; err != nil {
			respondErr(c, err)
			return
		}
		respondMsg(c, "product deleted")
	}
}

// adminListProducts 管理员全量商品清单，支持标题搜索。
func adminListProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Model(&model.Product{})
		if search := c.Query("search"); search != "" {
			q = q.Where("title LIKE ?", "%"+search+"%")
		}
		var list []model.Product
		if err := q.Order("created_at DESC").Find(&list).Error; err != nil {
			respondErr(c, err)
			return
		}
		respondOK(c, list)
	}
}

func adminDeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c, "id")
		if err != nil {
			respondFail(c, http.StatusBadRequest, err.Error())
			return
		}
		var prod model.Product
		if err := db.First(&prod, id).Error; err != nil {
			respondErr(c, err)
			return
		}
		if err := db.Delete(&prod).Error; err != nil {
			respondErr(c, err)
			return
		}
		respondMsg(c, "product deleted")
	}
}

// toggleProductHome 管理员切换是否首页精选。
func toggleProductHome(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c, "id")
		if err != nil {
			respondFail(c, http.StatusBadRequest, err.Error())
			return
		}
		var prod model.Product
		if err := db.First(&prod, id).Error; err != nil {
			respondErr(c, err)
			return
		}
		if err := db.Model(&prod).Update("show_on_home", !prod.ShowOnHome).Error; err != nil {
			respondErr(c, err)
			return
		}
		respondOK(c, prod)
	}
}
