package service

import (
	"errors"
	"fmt"
)

// 服务层统一错误（处理器通过 errors.Is / errors.As 映射为响应码）
var (
	ErrCartEmpty              = errors.New("购物车为空")
	ErrInvalidQuantity        = errors.New("数量不合法")
	ErrAuthenticationRequired = errors.New("请先登录")
	ErrUserNotFound           = errors.New("用户不存在")
	ErrInvalidCredentials     = errors.New("邮箱或密码错误")
	ErrUserDisabled           = errors.New("账号已禁用")
	ErrProductNotFound        = errors.New("商品不存在")
	ErrProductNotAvailable    = errors.New("商品不可购买")
	ErrOrderNotFound          = errors.New("订单不存在")
	ErrOrderAccessDenied      = errors.New("无权访问该订单")
	ErrOrderStatusInvalid     = errors.New("订单状态不合法")
	ErrOrderCreateFailed      = errors.New("订单创建失败")
	ErrOrderFetchFailed       = errors.New("订单查询失败")
	ErrOrderUpdateFailed      = errors.New("订单更新失败")
	ErrCartStoreFailed        = errors.New("购物车存储失败")
)

// AvailabilityError 库存校验失败（携带当前最多可购数量，供前端直接提示）
type AvailabilityError struct {
	ProductID      uint
	ProductName    string
	MaxPurchasable int
	Inactive       bool
}

// Error 实现 error 接口
func (e *AvailabilityError) Error() string {
	if e.Inactive {
		return fmt.Sprintf("商品 %s 已下架", e.ProductName)
	}
	return fmt.Sprintf("商品 %s 库存不足，最多可购买 %d 件", e.ProductName, e.MaxPurchasable)
}
