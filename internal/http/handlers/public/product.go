package public

import (
	"strconv"

	"github.com/globalforge/marketplace/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListProducts 商品列表（仅上架商品）
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := parsePageParams(c)
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)
	search := c.Query("search")

	products, total, err := h.ProductService.List(page, pageSize, uint(categoryID), search)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, products, buildPagination(page, pageSize, total))
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	rawID := c.Param("id")
	productID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || productID == 0 {
		response.BadRequest(c, "商品 ID 不合法")
		return
	}
	product, err := h.ProductService.GetByID(uint(productID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// ListCategories 分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryRepo.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, categories)
}
