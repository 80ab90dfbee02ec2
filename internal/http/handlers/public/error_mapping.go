package public

import (
	"errors"

	"github.com/globalforge/marketplace/internal/http/response"
	"github.com/globalforge/marketplace/internal/service"

	"github.com/gin-gonic/gin"
)

// respondServiceError 将服务层错误映射为统一错误响应。
// 库存类错误附带结构化数据，前端可直接提示最大可购数量。
func respondServiceError(c *gin.Context, err error) {
	var availErr *service.AvailabilityError
	if errors.As(err, &availErr) {
		response.ErrorWithData(c, response.CodeBadRequest, availErr.Error(), gin.H{
			"product_id":      availErr.ProductID,
			"product_name":    availErr.ProductName,
			"max_purchasable": availErr.MaxPurchasable,
			"inactive":        availErr.Inactive,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrAuthenticationRequired),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUserDisabled):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrOrderAccessDenied):
		response.Error(c, response.CodeForbidden, err.Error())
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrCartEmpty),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrProductNotAvailable),
		errors.Is(err, service.ErrOrderStatusInvalid):
		response.BadRequest(c, err.Error())
	default:
		response.Error(c, response.CodeInternal, "服务器内部错误")
	}
}
