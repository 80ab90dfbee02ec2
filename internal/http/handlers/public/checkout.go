package public

import (
	"github.com/globalforge/marketplace/internal/http/response"
	"github.com/globalforge/marketplace/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 结账请求
type CheckoutRequest struct {
	PaymentMethod   string `json:"payment_method"`
	DeliveryMethod  string `json:"delivery_method"`
	DeliveryAddress string `json:"delivery_address"`
}

// Checkout 购物车结账下单
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	sid, ok := getSessionID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}
	order, err := h.CheckoutService.PlaceOrder(c.Request.Context(), sid, uid, service.PlaceOrderInput{
		PaymentMethod:   req.PaymentMethod,
		DeliveryMethod:  req.DeliveryMethod,
		DeliveryAddress: req.DeliveryAddress,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}
