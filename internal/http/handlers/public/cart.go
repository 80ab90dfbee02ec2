package public

import (
	"strconv"

	"github.com/globalforge/marketplace/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CartItemRequest 购物车项请求
type CartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	sid, ok := getSessionID(c)
	if !ok {
		return
	}
	view, err := h.CartService.Get(c.Request.Context(), sid)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, view)
}

// AddCartItem 添加商品到购物车（同商品合并数量）
func (h *Handler) AddCartItem(c *gin.Context) {
	sid, ok := getSessionID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}
	view, err := h.CartService.AddItem(c.Request.Context(), sid, req.ProductID, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, view)
}

// UpdateCartItem 设置购物车商品数量（quantity <= 0 时移除该行）
func (h *Handler) UpdateCartItem(c *gin.Context) {
	sid, ok := getSessionID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}
	view, err := h.CartService.UpdateQuantity(c.Request.Context(), sid, req.ProductID, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, view)
}

// DeleteCartItem 移除购物车商品
func (h *Handler) DeleteCartItem(c *gin.Context) {
	sid, ok := getSessionID(c)
	if !ok {
		return
	}
	rawID := c.Param("product_id")
	productID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || productID == 0 {
		response.BadRequest(c, "商品 ID 不合法")
		return
	}
	view, err := h.CartService.RemoveItem(c.Request.Context(), sid, uint(productID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, view)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	sid, ok := getSessionID(c)
	if !ok {
		return
	}
	view, err := h.CartService.Clear(c.Request.Context(), sid)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, view)
}
