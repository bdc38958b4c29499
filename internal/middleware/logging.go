// Package middleware 存放 Gin 框架的中间件。
package middleware

import (
	"time"

	"health-dashboard-go/internal/model"
	"health-dashboard-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// RequestLogger 是一个 Gin 中间件，记录每个请求的状态码、耗时和来源。
// 请求体和响应体包含密码与健康数据，不写入日志。
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		// 路由模板不包含路径参数里的 token
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []interface{}{
			"statusCode", c.Writer.Status(),
			"latency", time.Since(startTime).String(),
			"clientIP", c.ClientIP(),
			"method", c.Request.Method,
			"path", path,
		}
		if v, ok := c.Get("user"); ok {
			if user, ok := v.(*model.User); ok {
				fields = append(fields, "userId", user.ID)
			}
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}
		log.Infow("HTTP Request Log", fields...)
	}
}
