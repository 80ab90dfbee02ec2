package public

import (
	"strconv"

	"github.com/globalforge/marketplace/internal/http/response"

	"github.com/gin-gonic/gin"
)

func parsePageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func buildPagination(page, pageSize int, total int64) response.Pagination {
	totalPage := int64(0)
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	}
}

// ListOrders 获取我的订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := parsePageParams(c)
	orders, total, err := h.OrderService.ListByUser(uid, page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, orders, buildPagination(page, pageSize, total))
}

// GetOrder 获取我的订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	rawID := c.Param("id")
	orderID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || orderID == 0 {
		response.BadRequest(c, "订单 ID 不合法")
		return
	}
	order, err := h.OrderService.GetByIDAndUser(uint(orderID), uid)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// ListSoldItems 获取我作为卖家的已售订单行
func (h *Handler) ListSoldItems(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := parsePageParams(c)
	items, total, err := h.OrderService.ListSoldLinesBySeller(uid, page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, items, buildPagination(page, pageSize, total))
}

// UpdateOrderStatusRequest 订单状态更新请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus 更新订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		return
	}
	rawID := c.Param("id")
	orderID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || orderID == 0 {
		response.BadRequest(c, "订单 ID 不合法")
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}
	order, err := h.OrderService.UpdateStatus(uint(orderID), req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}
