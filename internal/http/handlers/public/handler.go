package public

import "github.com/globalforge/marketplace/internal/provider"

// Handler 买家/卖家侧 API 处理器入口
type Handler struct {
	*provider.Container
}

// New 创建处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
