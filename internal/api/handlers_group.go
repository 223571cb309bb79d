package api

import "PriceTracker/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	TrackingHandler *handler.TrackingHandler
	UserHandler     *handler.UserHandler
}
