package middleware

import (
	"PriceTracker/internal/api/config"
	"PriceTracker/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware 校验当前用户是否在配置的管理员名单内，需在 AuthMiddleware 之后挂载
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64("user_id")

		for _, adminID := range config.Cfg.Admin.UserIDs {
			if adminID == userID {
				c.Next()
				return
			}
		}

		response.Fail(c, response.Forbidden, "权限不足")
		c.Abort()
	}
}
